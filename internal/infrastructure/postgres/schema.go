package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea las tablas del servicio si no existen.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_exports (
		id             UUID PRIMARY KEY,
		invoice_number TEXT NOT NULL,
		format         TEXT NOT NULL,
		file_name      TEXT NOT NULL,
		total          NUMERIC(14,2) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_exports_created_at ON invoice_exports (created_at DESC)`,
}

// EnsureSchema aplica el esquema mínimo (idempotente).
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}
