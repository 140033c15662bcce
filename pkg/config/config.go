package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	JWT      JWTConfig
	Pipeline PipelineConfig
	Operador OperadorConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL para la traza de auditoría.
// La auditoría es opcional: sin DATABASE_URL ni DB_HOST queda desactivada.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Habilitada indica si hay destino de auditoría configurado.
func (c DBConfig) Habilitada() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN: DATABASE_URL si está definido, si no el
// construido desde los campos sueltos.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de los tokens de la API.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// PipelineConfig parámetros normativos del pipeline. Son configuración y no
// constantes: el índice y la tabla cambian por regulación sin tocar el núcleo.
type PipelineConfig struct {
	IndiceMensual string // coeficiente IPC mensual, ej. "0.00407" (5 % anual)
	MesesRT54     int    // atraso de registración por defecto
	Tolerancia    string // tolerancia absoluta de partida doble
	Trabajadores  int    // tamaño del pool; 0 = NumCPU
	ClaveCUIT     string // clave simétrica en base64 para cifrar CUIT
}

// OperadorConfig credenciales del operador de la API (login → JWT).
type OperadorConfig struct {
	Usuario      string
	PasswordHash string // hash bcrypt
}

// Load lee la configuración desde variables de entorno y, si existe, desde
// un archivo .env en el directorio de trabajo. Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "asientos-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "contabilidad"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "asientos-api"),
		},
		Pipeline: PipelineConfig{
			IndiceMensual: getString(v, "IPC_MENSUAL", "0.00407"),
			MesesRT54:     getInt(v, "MESES_RT54", 3),
			Tolerancia:    getString(v, "TOLERANCIA_BALANCE", "1"),
			Trabajadores:  getInt(v, "PIPELINE_TRABAJADORES", 0),
			ClaveCUIT:     getString(v, "CUIT_KEY", ""),
		},
		Operador: OperadorConfig{
			Usuario:      getString(v, "OPERADOR_USUARIO", ""),
			PasswordHash: getString(v, "OPERADOR_PASSWORD_HASH", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
