package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cvallejos/asientos-api/internal/domain/entity"
)

var tolerancia = decimal.NewFromInt(1)

func linea(debe, haber string) entity.LineaAsiento {
	return entity.LineaAsiento{
		Cuenta: entity.CuentaCompras,
		Debe:   decimal.RequireFromString(debe),
		Haber:  decimal.RequireFromString(haber),
		Moneda: entity.MonedaARS,
	}
}

func TestLibro_VerificarCuadrado(t *testing.T) {
	l := &entity.Libro{Lineas: []entity.LineaAsiento{
		linea("1210.00", "0"),
		linea("0", "1210.00"),
	}}
	assert.Equal(t, entity.SinVerificar, l.Estado)

	estado, dif := l.Verificar(tolerancia)
	assert.Equal(t, entity.Cuadrado, estado)
	assert.True(t, dif.IsZero())
}

func TestLibro_VerificarToleranciaDeRedondeo(t *testing.T) {
	// Diferencia de 0.99 dentro de la tolerancia de $1.
	l := &entity.Libro{Lineas: []entity.LineaAsiento{
		linea("1000.99", "0"),
		linea("0", "1000.00"),
	}}
	estado, _ := l.Verificar(tolerancia)
	assert.Equal(t, entity.Cuadrado, estado)
}

func TestLibro_VerificarDescuadrado(t *testing.T) {
	l := &entity.Libro{Lineas: []entity.LineaAsiento{
		linea("1002.00", "0"),
		linea("0", "1000.00"),
	}}
	estado, dif := l.Verificar(tolerancia)
	assert.Equal(t, entity.Descuadrado, estado)
	assert.Equal(t, "2.00", dif.StringFixed(2))
}

func TestNaturaleza_SignoYPartida(t *testing.T) {
	monto := decimal.NewFromInt(100)

	debe, haber := entity.Factura.Partida(monto)
	assert.True(t, debe.Equal(monto))
	assert.True(t, haber.IsZero())
	assert.Equal(t, 1, entity.Factura.Signo())

	debe, haber = entity.NotaCredito.Partida(monto)
	assert.True(t, debe.IsZero())
	assert.True(t, haber.Equal(monto))
	assert.Equal(t, -1, entity.NotaCredito.Signo())

	// La partida inversa es el espejo exacto.
	debe, haber = entity.Factura.PartidaInversa(monto)
	assert.True(t, debe.IsZero())
	assert.True(t, haber.Equal(monto))
}

func TestTipoDesdeCodigoAFIP(t *testing.T) {
	assert.Equal(t, entity.Factura, entity.TipoDesdeCodigoAFIP(1).Naturaleza)
	assert.Equal(t, entity.NotaCredito, entity.TipoDesdeCodigoAFIP(11).Naturaleza)
	assert.Equal(t, entity.Factura, entity.TipoDesdeCodigoAFIP(6).Naturaleza)
	assert.Equal(t, "FC 1", entity.TipoDesdeCodigoAFIP(1).String())
	assert.Equal(t, "NC 11", entity.TipoDesdeCodigoAFIP(11).String())
}
