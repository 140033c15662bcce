// Comando procesar: corre el pipeline por lotes sobre un export de compras
// de AFIP y deja el libro diario en CSV y PDF más un metadata.json con la
// huella del archivo de origen, para reproceso auditable sin levantar la API.
package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cvallejos/asientos-api/internal/application/asientos"
	"github.com/cvallejos/asientos-api/internal/application/dto"
	"github.com/cvallejos/asientos-api/internal/domain/contable"
	"github.com/cvallejos/asientos-api/internal/domain/repository"
	"github.com/cvallejos/asientos-api/internal/infrastructure/crypto"
	"github.com/cvallejos/asientos-api/internal/infrastructure/csvfile"
	infrapdf "github.com/cvallejos/asientos-api/internal/infrastructure/pdf"
	"github.com/cvallejos/asientos-api/internal/infrastructure/postgres"
	"github.com/cvallejos/asientos-api/pkg/config"
	"github.com/cvallejos/asientos-api/pkg/logger"
)

// metadata acompaña a cada corrida para poder reproducirla: con el hash del
// crudo y los parámetros usados, el mismo binario regenera el mismo libro.
type metadata struct {
	LoteID        string          `json:"lote_id"`
	Archivo       string          `json:"archivo"`
	SHA256        string          `json:"sha256"`
	IndiceMensual string          `json:"indice_mensual"`
	MesesRT54     int             `json:"meses_rt54"`
	GeneradoEn    time.Time       `json:"generado_en"`
	Resumen       dto.ResumenLote `json:"resumen"`
}

func main() {
	var (
		entrada = flag.String("in", "", "ruta del export de compras (CSV de AFIP)")
		salida  = flag.String("out", "salida", "directorio de salida")
		sinPDF  = flag.Bool("sin-pdf", false, "omitir la generación del PDF")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *entrada == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := correr(context.Background(), cfg, log, *entrada, *salida, !*sinPDF); err != nil {
		log.Fatal().Err(err).Msg("procesamiento fallido")
	}
}

func correr(ctx context.Context, cfg *config.Config, log *logger.Logger, entrada, salida string, conPDF bool) error {
	indice, err := decimal.NewFromString(cfg.Pipeline.IndiceMensual)
	if err != nil {
		return fmt.Errorf("índice mensual %q: %w", cfg.Pipeline.IndiceMensual, err)
	}
	tolerancia, err := decimal.NewFromString(cfg.Pipeline.Tolerancia)
	if err != nil {
		return fmt.Errorf("tolerancia %q: %w", cfg.Pipeline.Tolerancia, err)
	}
	cifrador, err := crypto.NewCifradorCUIT(cfg.Pipeline.ClaveCUIT)
	if err != nil {
		return err
	}

	var auditoriaRepo repository.AuditoriaRepository
	if cfg.DB.Habilitada() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		auditoriaRepo = postgres.NewAuditoriaRepository(pool)
	}

	uc, err := asientos.NewProcesarLoteUseCase(asientos.Config{
		IndiceMensual: indice,
		Alicuotas:     contable.TablaAlicuotasRG4115(),
		Tolerancia:    tolerancia,
		Trabajadores:  cfg.Pipeline.Trabajadores,
	}, cifrador, auditoriaRepo, log)
	if err != nil {
		return err
	}

	crudo, err := os.ReadFile(entrada)
	if err != nil {
		return fmt.Errorf("leer %s: %w", entrada, err)
	}
	huella := sha256.Sum256(crudo)

	filas, err := csvfile.NewLector(cfg.Pipeline.MesesRT54).Leer(bytes.NewReader(crudo))
	if err != nil {
		return err
	}

	res, err := uc.Procesar(ctx, filas)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(salida, 0o755); err != nil {
		return err
	}
	if err := escribirLibroCSV(filepath.Join(salida, "libro.csv"), res); err != nil {
		return err
	}
	if conPDF {
		doc, err := infrapdf.NewMarotoLibroGenerator().GenerarLibroPDF(ctx, res.Libro, res.Resumen())
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(salida, "libro.pdf"), doc, 0o644); err != nil {
			return err
		}
	}

	meta := metadata{
		LoteID:        res.LoteID,
		Archivo:       filepath.Base(entrada),
		SHA256:        hex.EncodeToString(huella[:]),
		IndiceMensual: cfg.Pipeline.IndiceMensual,
		MesesRT54:     cfg.Pipeline.MesesRT54,
		GeneradoEn:    time.Now(),
		Resumen:       res.Resumen(),
	}
	if err := escribirMetadata(filepath.Join(salida, "metadata.json"), meta); err != nil {
		return err
	}

	log.Info().
		Str("lote", res.LoteID).
		Str("salida", salida).
		Int("lineas", len(res.Libro.Lineas)).
		Int("descartados", len(res.Descartes)).
		Msg("libro generado")
	return nil
}

// escribirLibroCSV exporta el libro con el mismo separador ';' del export de
// origen, para que las planillas locales lo abran sin reconfigurar.
func escribirLibroCSV(ruta string, res *asientos.ResultadoLote) error {
	f, err := os.Create(ruta)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write([]string{"fecha", "leyenda", "cuenta", "debe", "haber", "moneda"}); err != nil {
		return err
	}
	for _, ln := range res.Libro.Lineas {
		registro := []string{
			ln.Fecha.Format("2006-01-02"),
			ln.Descripcion,
			ln.Cuenta,
			ln.Debe.StringFixed(2),
			ln.Haber.StringFixed(2),
			ln.Moneda,
		}
		if err := w.Write(registro); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func escribirMetadata(ruta string, meta metadata) error {
	f, err := os.Create(ruta)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
