package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/cvallejos/asientos-api/internal/application/asientos"
	"github.com/cvallejos/asientos-api/internal/application/dto"
	"github.com/cvallejos/asientos-api/internal/domain"
	"github.com/cvallejos/asientos-api/internal/infrastructure/csvfile"
)

// AsientosHandler expone el procesamiento de lotes: recibe el export de
// compras de AFIP y devuelve el libro diario en JSON o PDF.
type AsientosHandler struct {
	lector   *csvfile.Lector
	procesar *asientos.ProcesarLoteUseCase
	pdf      asientos.GeneradorLibroPDF
}

// NewAsientosHandler construye el handler de asientos.
func NewAsientosHandler(lector *csvfile.Lector, procesar *asientos.ProcesarLoteUseCase, pdf asientos.GeneradorLibroPDF) *AsientosHandler {
	return &AsientosHandler{lector: lector, procesar: procesar, pdf: pdf}
}

// Procesar recibe el CSV del export (multipart, campo "archivo") y devuelve
// el libro diario cuadrado con su resumen.
func (h *AsientosHandler) Procesar(c *fiber.Ctx) error {
	filas, err := h.leerArchivo(c)
	if err != nil {
		return responderValidacion(c, err)
	}
	res, err := h.procesar.Procesar(c.Context(), filas)
	if err != nil {
		return responderErrorLote(c, err)
	}
	return c.JSON(armarLibroResponse(res))
}

// ProcesarPDF corre el mismo pipeline y devuelve el libro como PDF.
func (h *AsientosHandler) ProcesarPDF(c *fiber.Ctx) error {
	filas, err := h.leerArchivo(c)
	if err != nil {
		return responderValidacion(c, err)
	}
	res, err := h.procesar.Procesar(c.Context(), filas)
	if err != nil {
		return responderErrorLote(c, err)
	}
	doc, err := h.pdf.GenerarLibroPDF(c.Context(), res.Libro, res.Resumen())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="libro-%s.pdf"`, res.LoteID))
	return c.Send(doc)
}

// leerArchivo extrae y parsea el CSV del multipart.
func (h *AsientosHandler) leerArchivo(c *fiber.Ctx) ([]dto.FilaCompra, error) {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return nil, errors.New("campo multipart \"archivo\" requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("no se pudo abrir el archivo")
	}
	defer f.Close()

	filas, err := h.lector.Leer(f)
	if err != nil {
		return nil, err
	}
	if len(filas) == 0 {
		return nil, errors.New("el archivo no contiene comprobantes")
	}
	return filas, nil
}

func responderValidacion(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
}

// responderErrorLote mapea los errores del pipeline a HTTP. Los defectos de
// datos que abortan el lote son 422; lo demás es 500.
func responderErrorLote(c *fiber.Ctx, err error) error {
	var descuadre *domain.DescuadreError
	if errors.As(err, &descuadre) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "DESCUADRE", Message: descuadre.Error()})
	}
	if errors.Is(err, domain.ErrPeriodoAjusteInvalido) || errors.Is(err, domain.ErrMontoAsientoNoPositivo) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "LOTE_INVALIDO", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// armarLibroResponse proyecta el resultado al contrato de salida.
func armarLibroResponse(res *asientos.ResultadoLote) dto.LibroResponse {
	out := dto.LibroResponse{
		Resumen: res.Resumen(),
		Lineas:  make([]dto.LineaLibro, 0, len(res.Libro.Lineas)),
	}
	for _, ln := range res.Libro.Lineas {
		out.Lineas = append(out.Lineas, dto.LineaLibro{
			Fecha:       ln.Fecha.Format("2006-01-02"),
			Descripcion: ln.Descripcion,
			Cuenta:      ln.Cuenta,
			Debe:        ln.Debe.StringFixed(2),
			Haber:       ln.Haber.StringFixed(2),
			Moneda:      ln.Moneda,
		})
	}
	return out
}
