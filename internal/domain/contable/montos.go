// Package contable reúne las reglas puras del régimen de compras: la
// normalización de montos del export AFIP, la validación del CAE, el ajuste
// por inflación RT 54 y la deducibilidad de IVA RG 4115/2017. No hace I/O y
// no conoce configuración global: índices, tablas y tolerancias se inyectan.
package contable

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cvallejos/asientos-api/internal/domain"
)

// NormalizarMonto convierte una representación heterogénea de importe
// (símbolo de moneda, separador de miles, coma o punto decimal) a decimal.
//
// Convención de separadores del export: si aparecen coma y punto a la vez,
// la coma es el decimal y el punto separa miles ("1.234,56"); si solo hay
// coma, es el decimal ("1234,56"). Cadena vacía equivale a cero, como el
// fillna("") del export. Si después de limpiar no queda contenido numérico,
// devuelve ErrMontoInvalido: la política de descartar o anular la fila es
// del llamador.
func NormalizarMonto(valor string) (decimal.Decimal, error) {
	s := strings.TrimSpace(valor)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}

	if !contieneDigito(s) {
		return decimal.Zero, fmt.Errorf("normalizar %q: %w", valor, domain.ErrMontoInvalido)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("normalizar %q: %w", valor, domain.ErrMontoInvalido)
	}
	return d, nil
}

func contieneDigito(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
