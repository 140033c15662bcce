package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Naturaleza indica el efecto económico del comprobante sobre el libro.
// Cada variante lleva como dato el signo y la asignación debe/haber, de modo
// que el generador de asientos no ramifica sobre booleanos sueltos.
type Naturaleza int

const (
	// Factura aumenta compras e IVA al debe y proveedores al haber.
	Factura Naturaleza = iota
	// NotaCredito revierte el efecto de la factura: espejo exacto debe/haber.
	NotaCredito
)

func (n Naturaleza) String() string {
	if n == NotaCredito {
		return "NC"
	}
	return "FC"
}

// Signo devuelve el multiplicador direccional: +1 factura, -1 nota de crédito.
func (n Naturaleza) Signo() int {
	if n == NotaCredito {
		return -1
	}
	return 1
}

// Partida asigna un monto al debe o al haber según la naturaleza.
// Para la factura el monto va al debe; la nota de crédito lo espeja al haber.
func (n Naturaleza) Partida(monto decimal.Decimal) (debe, haber decimal.Decimal) {
	if n == NotaCredito {
		return decimal.Zero, monto
	}
	return monto, decimal.Zero
}

// PartidaInversa asigna el monto al lado opuesto de Partida. Es el lado que
// usan la contrapartida de proveedores y la cuenta de ajuste RT 54.
func (n Naturaleza) PartidaInversa(monto decimal.Decimal) (debe, haber decimal.Decimal) {
	if n == NotaCredito {
		return monto, decimal.Zero
	}
	return decimal.Zero, monto
}

// TipoComprobante es el tipo AFIP del comprobante (código + naturaleza).
type TipoComprobante struct {
	Codigo     int // código AFIP: 1 = FC A, 11 = NC C, etc.
	Naturaleza Naturaleza
}

// TipoDesdeCodigoAFIP mapea el código AFIP del export a un tipo interno.
// Código 11 se trata como nota de crédito; el resto como factura/débito.
func TipoDesdeCodigoAFIP(codigo int) TipoComprobante {
	if codigo == 11 {
		return TipoComprobante{Codigo: codigo, Naturaleza: NotaCredito}
	}
	return TipoComprobante{Codigo: codigo, Naturaleza: Factura}
}

func (t TipoComprobante) String() string {
	return fmt.Sprintf("%s %d", t.Naturaleza, t.Codigo)
}

// Comprobante es la fila normalizada del export de compras: la unidad de
// trabajo del pipeline. Los campos derivados se calculan una sola vez y no
// se mutan después del cifrado.
type Comprobante struct {
	Tipo          TipoComprobante
	PuntoVenta    string
	Numero        string
	Fecha         time.Time
	CUITProveedor string // texto plano; nunca sale del pipeline
	CAE           string
	MontoNeto     decimal.Decimal // neto original, ya normalizado
	IVA           decimal.Decimal // IVA original, ya normalizado
	CodTributo    int             // código de alícuota para RG 4115
	MesesRT54     int             // meses transcurridos para el ajuste

	// Derivados (inmutables una vez calculados por el pipeline).
	NetoAjustado decimal.Decimal
	IVAAjustado  decimal.Decimal
	IVADeducible decimal.Decimal
	CUITCifrado  string
}

// ID identifica el comprobante dentro del lote (tipo + punto de venta + número).
func (c *Comprobante) ID() string {
	return fmt.Sprintf("%s %s-%s", c.Tipo, c.PuntoVenta, c.Numero)
}

// Leyenda arma la descripción humana que llevan las líneas de asiento.
func (c *Comprobante) Leyenda() string {
	return fmt.Sprintf("%s CAE %s", c.ID(), c.CAE)
}

// MontoTotal es el total original (neto + IVA), sin ajustar: la obligación
// con el proveedor queda fijada al importe facturado.
func (c *Comprobante) MontoTotal() decimal.Decimal {
	return c.MontoNeto.Add(c.IVA)
}
