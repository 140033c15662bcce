package contable

import (
	"github.com/shopspring/decimal"

	"github.com/cvallejos/asientos-api/internal/domain/entity"
)

// Alicuota describe una alícuota de IVA del nomenclador AFIP y si su crédito
// fiscal es computable bajo RG 4115/2017 + Ley 27.430.
type Alicuota struct {
	Tasa      decimal.Decimal
	Deducible bool
}

// TablaAlicuotas mapea código de tributo AFIP → alícuota. Se inyecta en el
// pipeline; TablaAlicuotasRG4115 da los valores vigentes por defecto.
type TablaAlicuotas map[int]Alicuota

// TablaAlicuotasRG4115 devuelve el nomenclador vigente: los códigos
// 4, 5, 6, 8 y 9 (10,5 %, 21 %, 27 %, 5 % y 2,5 %) computan crédito fiscal.
func TablaAlicuotasRG4115() TablaAlicuotas {
	return TablaAlicuotas{
		3: {Tasa: decimal.Zero, Deducible: false},
		4: {Tasa: decimal.RequireFromString("0.105"), Deducible: true},
		5: {Tasa: decimal.RequireFromString("0.21"), Deducible: true},
		6: {Tasa: decimal.RequireFromString("0.27"), Deducible: true},
		8: {Tasa: decimal.RequireFromString("0.05"), Deducible: true},
		9: {Tasa: decimal.RequireFromString("0.025"), Deducible: true},
	}
}

// ResolverDeducibilidad decide si el IVA del comprobante computa crédito
// fiscal y con qué signo direccional se aplica a todos los importes derivados
// de la fila: +1 factura, -1 nota de crédito (la NC revierte el efecto
// económico de la factura original). No redondea; el redondeo es del
// generador de asientos al escribir las líneas.
func ResolverDeducibilidad(tipo entity.TipoComprobante, codTributo int, tabla TablaAlicuotas) (deducible bool, signo int) {
	signo = tipo.Naturaleza.Signo()
	alic, ok := tabla[codTributo]
	if !ok {
		return false, signo
	}
	return alic.Deducible, signo
}
