package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cvallejos/asientos-api/internal/domain/entity"
	"github.com/cvallejos/asientos-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación pgx de AuditoriaRepository.
type AuditoriaRepo struct {
	pool *pgxpool.Pool
}

// NewAuditoriaRepository construye el adaptador.
func NewAuditoriaRepository(pool *pgxpool.Pool) *AuditoriaRepo {
	return &AuditoriaRepo{pool: pool}
}

// Guardar inserta los registros del lote en un solo batch.
func (r *AuditoriaRepo) Guardar(ctx context.Context, registros []*entity.RegistroAuditoria) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO auditoria (id, lote_id, cuit_enc, cae, neto_original, neto_ajustado, iva_deducible, fecha_carga)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, reg := range registros {
		if reg.ID == "" {
			reg.ID = uuid.New().String()
		}
		batch.Queue(query,
			reg.ID, reg.LoteID, reg.CUITCifrado, reg.CAE,
			reg.NetoOriginal, reg.NetoAjustado, reg.IVADeducible, reg.FechaCarga,
		)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insertar auditoría (%d registros): %w", len(registros), err)
	}
	return nil
}

// ContarPorLote devuelve la cantidad de registros persistidos de un lote.
func (r *AuditoriaRepo) ContarPorLote(ctx context.Context, loteID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM auditoria WHERE lote_id = $1`, loteID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar auditoría del lote %s: %w", loteID, err)
	}
	return n, nil
}
