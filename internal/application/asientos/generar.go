// Package asientos implementa el núcleo del pipeline: la generación de las
// líneas de asiento por comprobante y el procesamiento del lote completo con
// verificación de partida doble.
package asientos

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cvallejos/asientos-api/internal/domain"
	"github.com/cvallejos/asientos-api/internal/domain/entity"
)

// deltaMinimo: los ajustes por debajo de un centavo no se asientan.
var deltaMinimo = decimal.RequireFromString("0.01")

// GenerarAsientos emite las líneas de asiento de un comprobante ya derivado.
// Grupos, en orden:
//
//  1. Compras por el neto original (FC al debe, NC al haber). Siempre.
//  2. IVA crédito fiscal por el IVA original, mismo sentido que compras.
//     Solo cuando el comprobante trae IVA.
//  3. Ajuste RT 54: la diferencia entre importes ajustados y originales va a
//     compras en el sentido del grupo 1 y su contrapartida a la cuenta de
//     ajuste, sin volver a tocar el saldo original de compras. Solo cuando el
//     delta alcanza el centavo.
//  4. Proveedores por el total original sin ajustar (FC al haber, NC al
//     debe): la obligación con el proveedor queda fijada al importe
//     facturado. Siempre.
//
// La NC es el espejo exacto debe/haber de la FC equivalente. Un importe cero
// o negativo en un grupo obligatorio es un defecto (ErrMontoAsientoNoPositivo),
// no se asienta en cero. Las líneas de cada comprobante netean a cero entre sí.
func GenerarAsientos(c *entity.Comprobante) ([]entity.LineaAsiento, error) {
	nat := c.Tipo.Naturaleza
	neto := c.MontoNeto.Abs().Round(2)
	iva := c.IVA.Abs().Round(2)

	if err := exigirPositivo(neto, "compras", c); err != nil {
		return nil, err
	}

	lineas := make([]entity.LineaAsiento, 0, 5)

	// 1) Compras, neto original.
	debe, haber := nat.Partida(neto)
	lineas = append(lineas, nuevaLinea(c, entity.CuentaCompras, c.Leyenda(), debe, haber))

	// 2) IVA crédito fiscal, IVA original.
	if !iva.IsZero() {
		if iva.IsNegative() {
			return nil, errMontoNoPositivo("iva", c, iva)
		}
		debe, haber = nat.Partida(iva)
		lineas = append(lineas, nuevaLinea(c, entity.CuentaIVACredito, c.Leyenda(), debe, haber))
	}

	// 3) Ajuste RT 54: delta entre valores ajustados y originales.
	deltaNeto := c.NetoAjustado.Abs().Sub(neto)
	deltaIVA := c.IVAAjustado.Abs().Sub(iva)
	delta := deltaNeto.Add(deltaIVA).Round(2)
	if delta.Abs().GreaterThanOrEqual(deltaMinimo) {
		if delta.IsNegative() {
			return nil, errMontoNoPositivo("ajuste RT 54", c, delta)
		}
		leyenda := "Ajuste RT54 " + c.Leyenda()
		debe, haber = nat.Partida(delta)
		lineas = append(lineas, nuevaLinea(c, entity.CuentaCompras, leyenda, debe, haber))
		debe, haber = nat.PartidaInversa(delta)
		lineas = append(lineas, nuevaLinea(c, entity.CuentaAjusteRT54, leyenda, debe, haber))
	}

	// 4) Proveedores, total original sin ajustar.
	total := neto.Add(iva)
	if err := exigirPositivo(total, "proveedores", c); err != nil {
		return nil, err
	}
	debe, haber = nat.PartidaInversa(total)
	lineas = append(lineas, nuevaLinea(c, entity.CuentaProveedores, c.Leyenda(), debe, haber))

	return lineas, nil
}

func nuevaLinea(c *entity.Comprobante, cuenta, descripcion string, debe, haber decimal.Decimal) entity.LineaAsiento {
	return entity.LineaAsiento{
		Fecha:       c.Fecha,
		Descripcion: descripcion,
		Cuenta:      cuenta,
		Debe:        debe,
		Haber:       haber,
		Moneda:      entity.MonedaARS,
	}
}

func exigirPositivo(monto decimal.Decimal, grupo string, c *entity.Comprobante) error {
	if monto.IsPositive() {
		return nil
	}
	return errMontoNoPositivo(grupo, c, monto)
}

func errMontoNoPositivo(grupo string, c *entity.Comprobante, monto decimal.Decimal) error {
	return fmt.Errorf("comprobante %s, grupo %s, monto %s: %w",
		c.ID(), grupo, monto.StringFixed(2), domain.ErrMontoAsientoNoPositivo)
}
