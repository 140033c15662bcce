package asientos

import (
	"context"

	"github.com/cvallejos/asientos-api/internal/application/dto"
	"github.com/cvallejos/asientos-api/internal/domain/entity"
)

// CifradorCUIT cifra el identificador tributario antes de que salga del
// pipeline. La implementación decide el esquema simétrico; el contrato solo
// exige confidencialidad y reversibilidad para quien tenga la clave.
type CifradorCUIT interface {
	Cifrar(cuit string) (string, error)
}

// GeneradorLibroPDF renderiza el libro diario a PDF.
type GeneradorLibroPDF interface {
	GenerarLibroPDF(ctx context.Context, libro *entity.Libro, resumen dto.ResumenLote) ([]byte, error)
}
