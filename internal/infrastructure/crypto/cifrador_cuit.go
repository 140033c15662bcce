// Package crypto implementa el cifrado simétrico del CUIT (Ley 25.326).
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/cvallejos/asientos-api/internal/domain"
)

// CifradorCUIT cifra y descifra el CUIT con XChaCha20-Poly1305. El token es
// nonce||ciphertext en base64 URL-safe: no determinista, así que cualquier
// deduplicación por identificador debe hacerse sobre el texto plano antes de
// cifrar, nunca sobre el token.
type CifradorCUIT struct {
	clave []byte
}

// NewCifradorCUIT recibe la clave simétrica en base64 estándar (32 bytes
// decodificados). La clave es configuración externa de solo lectura, cargada
// una vez por invocación del pipeline.
func NewCifradorCUIT(claveBase64 string) (*CifradorCUIT, error) {
	if claveBase64 == "" {
		return nil, fmt.Errorf("clave de cifrado CUIT: %w", domain.ErrConfigFaltante)
	}
	clave, err := base64.StdEncoding.DecodeString(claveBase64)
	if err != nil {
		return nil, fmt.Errorf("clave de cifrado CUIT: base64 inválido: %w", err)
	}
	if len(clave) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("clave de cifrado CUIT: se requieren %d bytes, hay %d: %w",
			chacha20poly1305.KeySize, len(clave), domain.ErrConfigFaltante)
	}
	return &CifradorCUIT{clave: clave}, nil
}

// GenerarClave genera una clave nueva en base64, para provisioning.
func GenerarClave() (string, error) {
	clave := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(clave); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(clave), nil
}

// Cifrar devuelve el token opaco del CUIT.
func (c *CifradorCUIT) Cifrar(cuit string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.clave)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sellado := aead.Seal(nonce, nonce, []byte(cuit), nil)
	return base64.URLEncoding.EncodeToString(sellado), nil
}

// Descifrar recupera el CUIT original a partir del token. Solo para quien
// tiene la clave (vínculo de auditoría), nunca en el camino del libro.
func (c *CifradorCUIT) Descifrar(token string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.clave)
	if err != nil {
		return "", err
	}
	sellado, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("token inválido: %w", err)
	}
	if len(sellado) < aead.NonceSize() {
		return "", fmt.Errorf("token inválido: demasiado corto")
	}
	nonce, ciphertext := sellado[:aead.NonceSize()], sellado[aead.NonceSize():]
	plano, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("descifrar CUIT: %w", err)
	}
	return string(plano), nil
}
