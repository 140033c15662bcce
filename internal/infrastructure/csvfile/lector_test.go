package csvfile_test

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvallejos/asientos-api/internal/infrastructure/csvfile"
)

const encabezado = "Tipo de Comprobante;Punto de Venta;Número Desde;Fecha de Emisión;Nro. Doc. Emisor;Cód. Autorización;Imp. Neto Gravado Total;Total IVA;Imp. Total\n"

func TestLector_ExportUTF8(t *testing.T) {
	archivo := encabezado +
		"1;0003;00012345;15/02/2025;30712345678;74123456789012;1.000,00;210,00;1.210,00\n" +
		"11;0003;00000077;2025-02-20;30712345678;74123456789013;0;0;500,00\n"

	lector := csvfile.NewLector(3)
	filas, err := lector.Leer(strings.NewReader(archivo))
	require.NoError(t, err)
	require.Len(t, filas, 2)

	fc := filas[0]
	assert.Equal(t, 1, fc.TipoCodigo)
	assert.Equal(t, "0003", fc.PuntoVenta)
	assert.Equal(t, "00012345", fc.Numero)
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), fc.Fecha)
	assert.Equal(t, "30712345678", fc.CUITProveedor)
	assert.Equal(t, "74123456789012", fc.CAE)
	assert.Equal(t, "1.000,00", fc.MontoNeto)
	assert.Equal(t, "210,00", fc.IVA)
	assert.Equal(t, "1.210,00", fc.ImporteTotal)
	assert.Equal(t, 5, fc.CodTributo)
	assert.Equal(t, 3, fc.MesesRT54)

	nc := filas[1]
	assert.Equal(t, 11, nc.TipoCodigo)
	assert.Equal(t, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), nc.Fecha)
	assert.Equal(t, 0, nc.CodTributo, "sin IVA no computa alícuota")
}

func TestLector_ExportLatin1(t *testing.T) {
	// "Número Desde" y "Cód. Autorización" llevan acentos: en latin-1 esos
	// bytes no son UTF-8 válido y fuerzan la decodificación de respaldo.
	var b bytes.Buffer
	for _, r := range encabezado + "1;0001;00000001;01/03/2025;30500000000;74000000000001;100,00;21,00;121,00\n" {
		if r < 256 {
			b.WriteByte(byte(r))
		}
	}
	require.False(t, utf8.Valid(b.Bytes()), "el fixture debe ser latin-1 real")

	filas, err := csvfile.NewLector(3).Leer(&b)
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "74000000000001", filas[0].CAE)
	assert.Equal(t, "100,00", filas[0].MontoNeto)
}

func TestLector_ColumnaFaltante(t *testing.T) {
	archivo := "Tipo de Comprobante;Punto de Venta\n1;0001\n"
	_, err := csvfile.NewLector(3).Leer(strings.NewReader(archivo))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columna requerida")
}
