package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistroAuditoria es la traza por comprobante que se persiste para el
// vínculo de auditoría (Ley 25.326): solo viaja el CUIT cifrado, nunca el
// texto plano.
type RegistroAuditoria struct {
	ID           string
	LoteID       string
	CUITCifrado  string
	CAE          string
	NetoOriginal decimal.Decimal
	NetoAjustado decimal.Decimal
	IVADeducible decimal.Decimal
	FechaCarga   time.Time
}
