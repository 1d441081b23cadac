package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
)

var _ repository.ExportRepository = (*ExportRepo)(nil)

// ExportRepo historial de exportaciones sobre PostgreSQL. El total usa el codec
// NUMERIC ↔ shopspring/decimal registrado en el pool.
type ExportRepo struct {
	q Querier
}

// NewExportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExportRepository(q Querier) *ExportRepo {
	return &ExportRepo{q: q}
}

// Create persiste un registro de exportación.
func (r *ExportRepo) Create(ctx context.Context, rec *entity.ExportRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_exports (id, invoice_number, format, file_name, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.InvoiceNumber, rec.Format, rec.FileName, rec.Total, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas exportaciones, más recientes primero.
func (r *ExportRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ExportRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_number, format, file_name, total, created_at
		FROM invoice_exports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var list []*entity.ExportRecord
	for rows.Next() {
		var rec entity.ExportRecord
		if err := rows.Scan(&rec.ID, &rec.InvoiceNumber, &rec.Format, &rec.FileName, &rec.Total, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return list, nil
}
