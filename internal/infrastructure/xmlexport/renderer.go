// Package xmlexport serializa la factura como documento XML plano para
// importaciones contables.
package xmlexport

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	appinvoice "github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/domain/billing"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// Currency es el código ISO 4217 de los importes exportados.
const Currency = "INR"

// Renderer implementa invoice.InvoiceRenderer generando XML con etree.
type Renderer struct {
	indent int
}

var _ appinvoice.InvoiceRenderer = (*Renderer)(nil)

// NewRenderer construye el renderer con indentación de 2 espacios.
func NewRenderer() *Renderer { return &Renderer{indent: 2} }

// Render arma el árbol <Invoice> y lo serializa.
func (r *Renderer) Render(_ context.Context, doc *entity.Invoice, totals billing.Totals) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("xmlexport: documento nil")
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("Invoice")
	root.CreateAttr("number", doc.InvoiceNumber)
	root.CreateAttr("currency", Currency)

	text(root, "IssueDate", doc.Date)
	text(root, "DueDate", doc.DueDate)

	seller := root.CreateElement("Seller")
	text(seller, "Name", doc.CompanyName)
	text(seller, "Email", doc.CompanyEmail)
	text(seller, "Phone", doc.CompanyPhone)
	text(seller, "Address", doc.CompanyAddress)

	buyer := root.CreateElement("Customer")
	text(buyer, "Name", doc.CustomerName)
	text(buyer, "Email", doc.CustomerEmail)
	text(buyer, "Phone", doc.CustomerPhone)
	text(buyer, "Address", doc.CustomerAddress)

	lines := root.CreateElement("Lines")
	lines.CreateAttr("count", strconv.Itoa(len(doc.Items)))
	for i, it := range doc.Items {
		ln := lines.CreateElement("Line")
		ln.CreateAttr("seq", strconv.Itoa(i+1))
		ln.CreateAttr("productId", it.ProductID)
		text(ln, "Description", it.Name)
		text(ln, "Quantity", strconv.Itoa(it.Quantity))
		text(ln, "UnitPrice", amount(it.Price))
		text(ln, "LineTotal", amount(it.LineTotal()))
	}

	sum := root.CreateElement("Totals")
	text(sum, "Subtotal", amount(totals.Subtotal))
	tax := text(sum, "Tax", amount(totals.Tax))
	tax.CreateAttr("rate", doc.TaxRate.String())
	disc := text(sum, "Discount", amount(totals.Discount))
	disc.CreateAttr("rate", doc.Discount.String())
	text(sum, "Total", amount(totals.Total))

	if doc.Notes != "" {
		text(root, "Notes", doc.Notes)
	}
	if doc.Terms != "" {
		text(root, "Terms", doc.Terms)
	}

	x.Indent(r.indent)

	var out bytes.Buffer
	if _, err := x.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func text(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	return el
}

func amount(d decimal.Decimal) string { return d.StringFixed(2) }
