package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvallejos/asientos-api/internal/domain"
	"github.com/cvallejos/asientos-api/internal/infrastructure/crypto"
)

func TestCifradorCUIT_IdaYVuelta(t *testing.T) {
	clave, err := crypto.GenerarClave()
	require.NoError(t, err)
	cifrador, err := crypto.NewCifradorCUIT(clave)
	require.NoError(t, err)

	const cuit = "30712345678"
	token, err := cifrador.Cifrar(cuit)
	require.NoError(t, err)
	assert.NotContains(t, token, cuit, "el token no debe exponer el CUIT")

	plano, err := cifrador.Descifrar(token)
	require.NoError(t, err)
	assert.Equal(t, cuit, plano)
}

func TestCifradorCUIT_ClaveDistintaNoDescifra(t *testing.T) {
	claveA, _ := crypto.GenerarClave()
	claveB, _ := crypto.GenerarClave()
	cifA, err := crypto.NewCifradorCUIT(claveA)
	require.NoError(t, err)
	cifB, err := crypto.NewCifradorCUIT(claveB)
	require.NoError(t, err)

	token, err := cifA.Cifrar("30712345678")
	require.NoError(t, err)
	_, err = cifB.Descifrar(token)
	assert.Error(t, err)
}

func TestNewCifradorCUIT_ClaveInvalida(t *testing.T) {
	_, err := crypto.NewCifradorCUIT("")
	assert.ErrorIs(t, err, domain.ErrConfigFaltante)

	_, err = crypto.NewCifradorCUIT("Y29ydGE=") // "corta": menos de 32 bytes
	assert.ErrorIs(t, err, domain.ErrConfigFaltante)

	_, err = crypto.NewCifradorCUIT("no es base64 !!!")
	assert.Error(t, err)
}
