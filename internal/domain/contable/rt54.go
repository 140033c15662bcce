package contable

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cvallejos/asientos-api/internal/domain"
)

var uno = decimal.NewFromInt(1)

// AjustarRT54 reexpresa un importe histórico por inflación según RT 54:
// monto × (1 + indiceMensual)^meses. El índice mensual es configuración
// inyectada (cambia por norma, no por código).
//
// Con meses == 0 devuelve el monto original sin tocar (identidad exacta, no
// una aproximación a 1.0). Meses negativos es un defecto de datos y devuelve
// ErrPeriodoAjusteInvalido en lugar de recortarse en silencio.
//
// Convención de redondeo: el resultado se redondea a 2 decimales acá, en el
// momento del ajuste; los deltas de ajuste se calculan sobre estos valores
// ya redondeados.
func AjustarRT54(monto decimal.Decimal, meses int, indiceMensual decimal.Decimal) (decimal.Decimal, error) {
	if meses < 0 {
		return decimal.Zero, fmt.Errorf("ajustar RT 54 con meses=%d: %w", meses, domain.ErrPeriodoAjusteInvalido)
	}
	if meses == 0 || monto.IsZero() {
		return monto, nil
	}
	factor := uno.Add(indiceMensual).Pow(decimal.NewFromInt(int64(meses)))
	return monto.Mul(factor).Round(2), nil
}
