package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// execRecorder Querier mínimo: registra Exec y devuelve err.
type execRecorder struct {
	sql  string
	args []any
	err  error
}

func (r *execRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql, r.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), r.err
}

func (r *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no usado")
}

func (r *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func TestExportRepo_CreatePassesRecordColumns(t *testing.T) {
	q := &execRecorder{}
	at := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	rec := &entity.ExportRecord{
		ID: "7f1c", InvoiceNumber: "INV-2026-1234", Format: "pdf",
		FileName: "invoice-INV-2026-1234.pdf", Total: decimal.RequireFromString("577.50"), CreatedAt: at,
	}

	require.NoError(t, NewExportRepository(q).Create(context.Background(), rec))
	assert.Contains(t, q.sql, "INSERT INTO invoice_exports")
	require.Len(t, q.args, 6)
	assert.Equal(t, "INV-2026-1234", q.args[1])
	assert.Equal(t, at, q.args[5])
}

func TestExportRepo_CreateWrapsDriverErrors(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	q := &execRecorder{err: pgErr}

	err := NewExportRepository(q).Create(context.Background(), &entity.ExportRecord{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert export")
	var got *pgconn.PgError
	assert.True(t, errors.As(err, &got))
}
