package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan de cuentas mínimo del libro de compras.
const (
	CuentaProveedores = "2.1.01"
	CuentaIVACredito  = "1.1.04"
	CuentaCompras     = "5.1.01"
	CuentaAjusteRT54  = "6.1.01" // resultado por exposición a la inflación
)

// MonedaARS es la única moneda del pipeline (sin conversión multi-moneda).
const MonedaARS = "ARS"

// LineaAsiento es una línea del libro diario. Invariante: exactamente uno de
// Debe/Haber es distinto de cero, nunca ambos.
type LineaAsiento struct {
	Fecha       time.Time       `json:"fecha"`
	Descripcion string          `json:"descripcion"`
	Cuenta      string          `json:"cuenta"`
	Debe        decimal.Decimal `json:"debe"`
	Haber       decimal.Decimal `json:"haber"`
	Moneda      string          `json:"moneda"`
}

// EstadoBalance es el estado de verificación de partida doble del libro.
type EstadoBalance int

const (
	SinVerificar EstadoBalance = iota
	Cuadrado
	Descuadrado
)

func (e EstadoBalance) String() string {
	switch e {
	case Cuadrado:
		return "cuadrado"
	case Descuadrado:
		return "descuadrado"
	default:
		return "sin verificar"
	}
}

// Libro es la secuencia ordenada de líneas generadas para un lote, junto con
// su estado de verificación. El orden sigue al archivo de origen para que la
// auditoría sea reproducible.
type Libro struct {
	Lineas []LineaAsiento
	Estado EstadoBalance
}

// Totales suma el debe y el haber de todo el libro.
func (l *Libro) Totales() (debe, haber decimal.Decimal) {
	debe, haber = decimal.Zero, decimal.Zero
	for _, ln := range l.Lineas {
		debe = debe.Add(ln.Debe)
		haber = haber.Add(ln.Haber)
	}
	return debe, haber
}

// Verificar compara los totales de debe y haber contra la tolerancia y
// transiciona SinVerificar → Cuadrado | Descuadrado. Descuadrado es terminal:
// el libro no debe entregarse en ese estado.
func (l *Libro) Verificar(tolerancia decimal.Decimal) (EstadoBalance, decimal.Decimal) {
	debe, haber := l.Totales()
	diferencia := debe.Sub(haber)
	if diferencia.Abs().GreaterThan(tolerancia) {
		l.Estado = Descuadrado
	} else {
		l.Estado = Cuadrado
	}
	return l.Estado, diferencia
}
