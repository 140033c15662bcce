package repository

import (
	"context"

	"github.com/cvallejos/asientos-api/internal/domain/entity"
)

// AuditoriaRepository persiste las trazas de auditoría de un lote procesado.
type AuditoriaRepository interface {
	Guardar(ctx context.Context, registros []*entity.RegistroAuditoria) error
}
