// Package csvfile lee el export de compras de AFIP ("Mis Comprobantes"):
// CSV separado por punto y coma, codificado en UTF-8 o en cp1252/latin-1
// según el navegador que lo haya bajado.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/cvallejos/asientos-api/internal/application/dto"
)

// Columnas requeridas del export.
const (
	colTipo   = "Tipo de Comprobante"
	colPtoVta = "Punto de Venta"
	colNumero = "Número Desde"
	colFecha  = "Fecha de Emisión"
	colCUIT   = "Nro. Doc. Emisor"
	colCAE    = "Cód. Autorización"
	colNeto   = "Imp. Neto Gravado Total"
	colIVA    = "Total IVA"
	colTotal  = "Imp. Total"
)

var columnasRequeridas = []string{colTipo, colPtoVta, colNumero, colFecha, colCUIT, colCAE, colNeto, colIVA, colTotal}

// formatos de fecha que aparecen en los exports.
var formatosFecha = []string{"02/01/2006", "02-01-2006", "2006-01-02"}

// Lector mapea el export a filas del pipeline.
type Lector struct {
	// MesesRT54 se aplica a cada fila: meses de atraso entre emisión y
	// registración para el ajuste por inflación.
	MesesRT54 int
}

// NewLector construye el lector con el atraso de registración configurado.
func NewLector(mesesRT54 int) *Lector {
	return &Lector{MesesRT54: mesesRT54}
}

// Leer decodifica el archivo completo y devuelve las filas crudas en el
// orden del archivo. Los importes no se normalizan acá: esa decisión
// (descartar o procesar) es del pipeline.
func (l *Lector) Leer(r io.Reader) ([]dto.FilaCompra, error) {
	contenido, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	contenido, err = decodificar(contenido)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(contenido))
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	encabezado, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	indice, err := mapearColumnas(encabezado)
	if err != nil {
		return nil, err
	}

	var filas []dto.FilaCompra
	for {
		registro, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila %d: %w", len(filas)+2, err)
		}
		filas = append(filas, l.mapearFila(registro, indice))
	}
	return filas, nil
}

// decodificar devuelve el contenido en UTF-8. Si los bytes no son UTF-8
// válido se asume cp1252 (cubre también latin-1 para este export).
func decodificar(contenido []byte) ([]byte, error) {
	if utf8.Valid(contenido) {
		return contenido, nil
	}
	decodificado, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), contenido)
	if err == nil {
		return decodificado, nil
	}
	decodificado, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), contenido)
	if err != nil {
		return nil, fmt.Errorf("no se pudo decodificar el archivo: %w", err)
	}
	return decodificado, nil
}

func mapearColumnas(encabezado []string) (map[string]int, error) {
	indice := make(map[string]int, len(encabezado))
	for i, nombre := range encabezado {
		indice[strings.TrimSpace(strings.TrimPrefix(nombre, "\uFEFF"))] = i
	}
	for _, col := range columnasRequeridas {
		if _, ok := indice[col]; !ok {
			return nil, fmt.Errorf("columna requerida %q no encontrada en el CSV", col)
		}
	}
	return indice, nil
}

func (l *Lector) mapearFila(registro []string, indice map[string]int) dto.FilaCompra {
	campo := func(col string) string {
		i := indice[col]
		if i >= len(registro) {
			return ""
		}
		return strings.TrimSpace(registro[i])
	}

	tipoCodigo, _ := strconv.Atoi(campo(colTipo))
	return dto.FilaCompra{
		TipoCodigo:    tipoCodigo,
		PuntoVenta:    campo(colPtoVta),
		Numero:        campo(colNumero),
		Fecha:         parsearFecha(campo(colFecha)),
		CUITProveedor: campo(colCUIT),
		CAE:           campo(colCAE),
		MontoNeto:     campo(colNeto),
		IVA:           campo(colIVA),
		ImporteTotal:  campo(colTotal),
		CodTributo:    codTributo(campo(colIVA)),
		MesesRT54:     l.MesesRT54,
	}
}

func parsearFecha(s string) time.Time {
	for _, formato := range formatosFecha {
		if t, err := time.Parse(formato, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// codTributo asume la alícuota general (código 5, 21 %) cuando el
// comprobante trae IVA; sin IVA informa 0, que no computa crédito fiscal.
func codTributo(iva string) int {
	for _, r := range iva {
		if r >= '1' && r <= '9' {
			return 5
		}
	}
	return 0
}
