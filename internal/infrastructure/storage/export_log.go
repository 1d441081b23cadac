package storage

import (
	"context"
	"sync"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
)

var _ repository.ExportRepository = (*ExportLog)(nil)

// ExportLog historial de exportaciones en memoria, acotado a capacity registros.
type ExportLog struct {
	mu       sync.Mutex
	records  []*entity.ExportRecord
	capacity int
}

// NewExportLog construye el historial; capacity <= 0 usa 200.
func NewExportLog(capacity int) *ExportLog {
	if capacity <= 0 {
		capacity = 200
	}
	return &ExportLog{capacity: capacity}
}

// Create agrega el registro descartando el más antiguo si se supera la capacidad.
func (l *ExportLog) Create(_ context.Context, rec *entity.ExportRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *rec
	l.records = append(l.records, &cp)
	if len(l.records) > l.capacity {
		l.records = l.records[len(l.records)-l.capacity:]
	}
	return nil
}

// ListRecent devuelve los últimos limit registros, más recientes primero.
func (l *ExportLog) ListRecent(_ context.Context, limit int) ([]*entity.ExportRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.records)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*entity.ExportRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		cp := *l.records[i]
		out = append(out, &cp)
	}
	return out, nil
}
