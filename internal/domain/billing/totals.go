// Package billing contiene los cálculos puros de la factura (servicios de dominio sin estado).
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals montos derivados de la factura, redondeados a 2 decimales para mostrar.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals calcula:
//
//	subtotal = Σ(cantidad × precio)
//	tax      = subtotal × taxRate/100
//	discount = subtotal × discountPercent/100
//	total    = subtotal + tax − discount
//
// Solo se redondean los cuatro resultados finales; las sumas intermedias van sin redondeo.
func ComputeTotals(items []entity.LineItem, taxRate, discountPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.Mul(taxRate).Div(hundred)
	discount := subtotal.Mul(discountPercent).Div(hundred)
	total := subtotal.Add(tax).Sub(discount)

	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Discount: discount.Round(2),
		Total:    total.Round(2),
	}
}

// InvoiceTotals atajo sobre el documento completo.
func InvoiceTotals(inv *entity.Invoice) Totals {
	return ComputeTotals(inv.Items, inv.TaxRate, inv.Discount)
}
