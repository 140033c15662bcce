package contable

// CAELen es el largo fijo del Código de Autorización Electrónico de AFIP.
const CAELen = 14

// ValidarCAE acepta únicamente 14 dígitos numéricos, sin separadores.
// Las filas que no pasan se excluyen del libro y se cuentan como descartes;
// el lote sigue procesándose.
func ValidarCAE(cae string) bool {
	if len(cae) != CAELen {
		return false
	}
	for _, r := range cae {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
