package billing

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// Textos por defecto de una factura nueva.
const (
	DefaultNotes = "Thank you for your business! Please make payment within 7 days."
	DefaultTerms = "Payment due within 7 days. Late payments subject to 1.5% monthly interest."

	dateLayout     = "2006-01-02"
	defaultDueDays = 7
)

// IntN fuente de aleatoriedad para el sufijo del número (inyectable en tests).
type IntN func(n int) int

// NewInvoiceNumber genera INV-<año>-<1000..9999>. No se verifica contra el historial:
// el número es "normalmente único", no garantizado.
func NewInvoiceNumber(now time.Time, intN IntN) string {
	if intN == nil {
		intN = rand.IntN
	}
	return fmt.Sprintf("INV-%d-%d", now.Year(), 1000+intN(9000))
}

// NewDefaultInvoice construye el documento inicial: número nuevo, fecha de hoy,
// vencimiento a 7 días, sin ítems, impuesto y descuento en cero.
func NewDefaultInvoice(now time.Time, company entity.CompanyProfile, intN IntN) *entity.Invoice {
	return &entity.Invoice{
		InvoiceNumber:  NewInvoiceNumber(now, intN),
		Date:           now.UTC().Format(dateLayout),
		DueDate:        now.UTC().AddDate(0, 0, defaultDueDays).Format(dateLayout),
		CompanyName:    company.Name,
		CompanyEmail:   company.Email,
		CompanyPhone:   company.Phone,
		CompanyAddress: company.Address,
		Items:          []entity.LineItem{},
		TaxRate:        decimal.Zero,
		Discount:       decimal.Zero,
		Notes:          DefaultNotes,
		Terms:          DefaultTerms,
	}
}
