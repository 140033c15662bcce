// Package auth autentica al operador de la API contra las credenciales
// configuradas y emite los tokens de acceso.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cvallejos/asientos-api/internal/domain"
	"github.com/cvallejos/asientos-api/pkg/config"
	"github.com/cvallejos/asientos-api/pkg/jwt"
)

// AuthUseCase login del operador. No hay registro de usuarios: las
// credenciales son configuración (un operador por despliegue).
type AuthUseCase struct {
	operador config.OperadorConfig
	jwtCfg   config.JWTConfig
}

// NewAuthUseCase construye el caso de uso. Sin credenciales o secret
// configurados el login queda inoperable y se rechaza en el arranque.
func NewAuthUseCase(operador config.OperadorConfig, jwtCfg config.JWTConfig) (*AuthUseCase, error) {
	if operador.Usuario == "" || operador.PasswordHash == "" {
		return nil, fmt.Errorf("credenciales de operador: %w", domain.ErrConfigFaltante)
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("JWT secret: %w", domain.ErrConfigFaltante)
	}
	return &AuthUseCase{operador: operador, jwtCfg: jwtCfg}, nil
}

// Login compara usuario y password contra la configuración y devuelve un
// token firmado.
func (uc *AuthUseCase) Login(usuario, password string) (string, error) {
	usuarioOK := subtle.ConstantTimeCompare([]byte(usuario), []byte(uc.operador.Usuario)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(uc.operador.PasswordHash), []byte(password)) == nil
	if !usuarioOK || !passwordOK {
		return "", domain.ErrCredencialesInvalidas
	}
	return jwt.Generate(uc.jwtCfg.Secret, usuario, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
}
