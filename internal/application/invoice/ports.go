package invoice

import (
	"context"

	"github.com/jhoicas/freshfruits-billing/internal/domain/billing"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// InvoiceRenderer genera el artefacto exportable (PDF, XML) a partir del documento y sus totales.
type InvoiceRenderer interface {
	Render(ctx context.Context, doc *entity.Invoice, totals billing.Totals) ([]byte, error)
}
