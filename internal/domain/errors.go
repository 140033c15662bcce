package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrMontoInvalido          = errors.New("monto sin contenido numérico")
	ErrPeriodoAjusteInvalido  = errors.New("período de ajuste negativo")
	ErrMontoAsientoNoPositivo = errors.New("monto de asiento cero o negativo")
	ErrConfigFaltante         = errors.New("configuración obligatoria ausente")
	ErrLibroDescuadrado       = errors.New("el libro no cuadra")
	ErrCredencialesInvalidas  = errors.New("credenciales inválidas")
)

// DescuadreError detalla un libro descuadrado: totales del debe y del haber
// y la diferencia que excedió la tolerancia. Envuelve ErrLibroDescuadrado.
type DescuadreError struct {
	TotalDebe  decimal.Decimal
	TotalHaber decimal.Decimal
	Diferencia decimal.Decimal
	Tolerancia decimal.Decimal
}

func (e *DescuadreError) Error() string {
	return fmt.Sprintf("el libro no cuadra: debe=%s haber=%s diferencia=%s (tolerancia %s)",
		e.TotalDebe.StringFixed(2), e.TotalHaber.StringFixed(2),
		e.Diferencia.StringFixed(2), e.Tolerancia.StringFixed(2))
}

func (e *DescuadreError) Unwrap() error { return ErrLibroDescuadrado }
