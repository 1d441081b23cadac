package repository

import (
	"context"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// ExportRepository define el puerto de persistencia del historial de exportaciones.
type ExportRepository interface {
	Create(ctx context.Context, rec *entity.ExportRecord) error
	ListRecent(ctx context.Context, limit int) ([]*entity.ExportRecord, error)
}
