package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvallejos/asientos-api/internal/application/asientos"
	"github.com/cvallejos/asientos-api/internal/application/dto"
	"github.com/cvallejos/asientos-api/internal/domain/contable"
	apphttp "github.com/cvallejos/asientos-api/internal/interfaces/http"
	"github.com/cvallejos/asientos-api/internal/infrastructure/csvfile"
	"github.com/cvallejos/asientos-api/pkg/logger"
)

const exportTest = "Tipo de Comprobante;Punto de Venta;Número Desde;Fecha de Emisión;Nro. Doc. Emisor;Cód. Autorización;Imp. Neto Gravado Total;Total IVA;Imp. Total\n" +
	"1;0003;00012345;15/02/2025;30712345678;74123456789012;1.000,00;210,00;1.210,00\n"

type cifradorEco struct{}

func (cifradorEco) Cifrar(cuit string) (string, error) { return "enc:" + cuit, nil }

func asientosApp(t *testing.T) *fiber.App {
	t.Helper()
	uc, err := asientos.NewProcesarLoteUseCase(asientos.Config{
		IndiceMensual: decimal.RequireFromString("0.004"),
		Alicuotas:     contable.TablaAlicuotasRG4115(),
		Tolerancia:    decimal.NewFromInt(1),
		Trabajadores:  2,
	}, cifradorEco{}, nil, logger.New(logger.Config{Env: "production", Level: "error"}))
	require.NoError(t, err)

	handler := apphttp.NewAsientosHandler(csvfile.NewLector(3), uc, nil)
	app := fiber.New()
	app.Post("/api/asientos/procesar", handler.Procesar)
	return app
}

func postMultipart(t *testing.T, app *fiber.App, campo, contenido string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if campo != "" {
		fw, err := w.CreateFormFile(campo, "compras.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(contenido))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/asientos/procesar", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAsientosHandler_ProcesarExportValido(t *testing.T) {
	app := asientosApp(t)
	resp := postMultipart(t, app, "archivo", exportTest)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LibroResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "cuadrado", out.Resumen.Estado)
	assert.Equal(t, 1, out.Resumen.Procesados)
	assert.Equal(t, 0, out.Resumen.Descartados)
	// 3 meses al 0.004: compras, IVA, par de ajuste y proveedores.
	assert.Len(t, out.Lineas, 5)
	assert.Equal(t, out.Resumen.TotalDebe, out.Resumen.TotalHaber)
}

func TestAsientosHandler_SinArchivoRetorna400(t *testing.T) {
	app := asientosApp(t)
	resp := postMultipart(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestAsientosHandler_ColumnasFaltantesRetorna400(t *testing.T) {
	app := asientosApp(t)
	resp := postMultipart(t, app, "archivo", "Tipo de Comprobante;Punto de Venta\n1;0001\n")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
