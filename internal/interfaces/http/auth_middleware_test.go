package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cvallejos/asientos-api/internal/application/auth"
	"github.com/cvallejos/asientos-api/internal/domain"
	apphttp "github.com/cvallejos/asientos-api/internal/interfaces/http"
	"github.com/cvallejos/asientos-api/pkg/config"
	pkgjwt "github.com/cvallejos/asientos-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsuario   = "contadora"
	testIssuer    = "asientos-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con una ruta protegida
// que devuelve el usuario extraído del token.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"usuario": apphttp.GetUsuario(c),
			})
		},
	)
	return app
}

func tokenDePrueba(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUsuario, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_TokenValido_ExtraeUsuario(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenDePrueba(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUsuario, body["usuario"], "el usuario debe venir del token")
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUsuario, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUsuario, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Login del operador contra credenciales de configuración.

func authUseCaseDePrueba(t *testing.T, password string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	uc, err := auth.NewAuthUseCase(
		config.OperadorConfig{Usuario: testUsuario, PasswordHash: string(hash)},
		config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, Issuer: testIssuer},
	)
	require.NoError(t, err)
	return uc
}

func loginApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	handler := apphttp.NewAuthHandler(authUseCaseDePrueba(t, "clave-segura"))
	app.Post("/api/auth/login", handler.Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLogin_CredencialesValidas_EmiteToken(t *testing.T) {
	app := loginApp(t)
	resp := postLogin(t, app, `{"usuario":"contadora","password":"clave-segura"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["token"])

	// El token emitido debe ser válido contra el mismo secret.
	usuario, err := pkgjwt.Parse(testJWTSecret, body["token"])
	require.NoError(t, err)
	assert.Equal(t, testUsuario, usuario)
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app := loginApp(t)
	resp := postLogin(t, app, `{"usuario":"contadora","password":"otra-clave"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestLogin_CamposFaltantes_Retorna400(t *testing.T) {
	app := loginApp(t)
	resp := postLogin(t, app, `{"usuario":"contadora"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthUseCase_SinCredenciales_RechazaArranque(t *testing.T) {
	_, err := auth.NewAuthUseCase(
		config.OperadorConfig{},
		config.JWTConfig{Secret: testJWTSecret},
	)
	require.ErrorIs(t, err, domain.ErrConfigFaltante)
}
