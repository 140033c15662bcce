// Package pdf genera la representación en PDF del libro diario: una tabla
// fecha / leyenda / cuenta / debe / haber más el resumen del lote.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cvallejos/asientos-api/internal/application/asientos"
	"github.com/cvallejos/asientos-api/internal/application/dto"
	"github.com/cvallejos/asientos-api/internal/domain/entity"
)

var (
	colorEncabezado = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGris       = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ asientos.GeneradorLibroPDF = (*MarotoLibroGenerator)(nil)

// MarotoLibroGenerator implementa asientos.GeneradorLibroPDF con Maroto v2.
type MarotoLibroGenerator struct{}

// NewMarotoLibroGenerator construye el generador.
func NewMarotoLibroGenerator() *MarotoLibroGenerator { return &MarotoLibroGenerator{} }

// GenerarLibroPDF genera el PDF del libro y devuelve sus bytes.
func (g *MarotoLibroGenerator) GenerarLibroPDF(_ context.Context, libro *entity.Libro, resumen dto.ResumenLote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Libro diario de compras", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(tituloRow(resumen))
	m.AddRows(line.NewRow(1, props.Line{Color: colorEncabezado, Thickness: 0.5}))
	m.AddRows(encabezadoTablaRow())
	for _, ln := range libro.Lineas {
		m.AddRows(lineaRow(ln))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorEncabezado, Thickness: 0.3}))
	m.AddRows(totalesRow(resumen))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del libro: %w", err)
	}
	return doc.GetBytes(), nil
}

func tituloRow(resumen dto.ResumenLote) core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New("Libro diario de compras", props.Text{
				Size: 12, Style: fontstyle.Bold, Color: colorEncabezado,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Lote %s", resumen.LoteID), props.Text{
				Size: 7, Align: align.Right, Color: colorGris,
			}),
		),
	)
}

func encabezadoTablaRow() core.Row {
	estilo := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorEncabezado}
	derecha := estilo
	derecha.Align = align.Right
	return row.New(6).Add(
		col.New(2).Add(text.New("Fecha", estilo)),
		col.New(4).Add(text.New("Leyenda", estilo)),
		col.New(2).Add(text.New("Cuenta", estilo)),
		col.New(2).Add(text.New("Debe", derecha)),
		col.New(2).Add(text.New("Haber", derecha)),
	)
}

func lineaRow(ln entity.LineaAsiento) core.Row {
	derecha := props.Text{Size: 8, Align: align.Right}
	return row.New(5).Add(
		col.New(2).Add(text.New(ln.Fecha.Format("02/01/2006"), props.Text{Size: 8})),
		col.New(4).Add(text.New(ln.Descripcion, props.Text{Size: 7})),
		col.New(2).Add(text.New(ln.Cuenta, props.Text{Size: 8})),
		col.New(2).Add(text.New(ln.Debe.StringFixed(2), derecha)),
		col.New(2).Add(text.New(ln.Haber.StringFixed(2), derecha)),
	)
}

func totalesRow(resumen dto.ResumenLote) core.Row {
	negrita := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	return row.New(8).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Procesados: %d / Descartados: %d", resumen.Procesados, resumen.Descartados),
			props.Text{Size: 8, Color: colorGris},
		)),
		col.New(2).Add(text.New("Totales", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(2).Add(text.New(resumen.TotalDebe, negrita)),
		col.New(2).Add(text.New(resumen.TotalHaber, negrita)),
	)
}
