// Package pdf genera la factura descargable con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + dirección/contacto │ INVOICE + N° + fechas │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: nombre / dirección / email / teléfono             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: S.No | Description | Price | Qty | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Subtotal / Tax (r%) / Discount (d%) / Total       │
//	│  NOTES + TERMS & CONDITIONS                                 │
//	│  FOOTER: Thank you for your business!                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinvoice "github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/domain/billing"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 197, Blue: 94}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 150, Green: 150, Blue: 150}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa invoice.InvoiceRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ appinvoice.InvoiceRenderer = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(
	_ context.Context,
	doc *entity.Invoice,
	totals billing.Totals,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Invoice "+doc.InvoiceNumber, true).
		WithAuthor(doc.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(footerRow()); err != nil {
		return nil, fmt.Errorf("pdf: registrar footer: %w", err)
	}

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(doc))
	m.AddRows(row.New(6))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(doc.Items)...)

	m.AddRows(row.New(8))
	m.AddRows(summaryRows(doc, totals)...)

	m.AddRows(row.New(8))
	m.AddRows(noteRows("Notes:", doc.Notes)...)
	m.AddRows(noteRows("Terms & Conditions:", doc.Terms)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: identidad de la empresa (izq) y título + número + fechas (der).
func headerRow(doc *entity.Invoice) core.Row {
	return row.New(30).Add(
		col.New(7).Add(
			text.New(doc.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 20, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.CompanyAddress, props.Text{Size: 9, Top: 12, Color: colorGray}),
			text.New("Email: "+doc.CompanyEmail, props.Text{Size: 9, Top: 17, Color: colorGray}),
			text.New("Phone: "+doc.CompanyPhone, props.Text{Size: 9, Top: 22, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 18, Align: align.Right, Top: 1,
			}),
			text.New("Invoice #: "+doc.InvoiceNumber, props.Text{Size: 9, Align: align.Right, Top: 12}),
			text.New("Date: "+doc.Date, props.Text{Size: 9, Align: align.Right, Top: 17}),
			text.New("Due Date: "+doc.DueDate, props.Text{Size: 9, Align: align.Right, Top: 22}),
		),
	)
}

// billToRow: datos del cliente con valores de relleno cuando faltan.
func billToRow(doc *entity.Invoice) core.Row {
	return row.New(28).Add(
		col.New(12).Add(
			text.New("Bill To:", props.Text{Style: fontstyle.Bold, Size: 12, Top: 1}),
			text.New(nonEmpty(doc.CustomerName, "Customer Name"), props.Text{Size: 10, Top: 8}),
			text.New(nonEmpty(doc.CustomerAddress, "Address"), props.Text{Size: 9, Top: 13, Color: colorGray}),
			text.New("Email: "+nonEmpty(doc.CustomerEmail, "N/A"), props.Text{Size: 9, Top: 18, Color: colorGray}),
			text.New("Phone: "+nonEmpty(doc.CustomerPhone, "N/A"), props.Text{Size: 9, Top: 23, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo verde.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorWhite, Top: 2, Left: 2, Right: 2,
		}))
	}
	return row.New(8).Add(
		h("S.No", 1, align.Center),
		h("Description", 5, align.Left),
		h("Price", 2, align.Right),
		h("Qty", 1, align.Center),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por línea, con filas alternas sombreadas.
func tableItemRows(items []entity.LineItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		r := row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 9, Align: align.Center, Top: 1.5})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 9, Align: align.Left, Top: 1.5, Left: 2})),
			col.New(2).Add(text.New(money.FormatINR(it.Price), props.Text{Size: 9, Align: align.Right, Top: 1.5, Right: 2})),
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1.5})),
			col.New(3).Add(text.New(money.FormatINR(it.LineTotal()), props.Text{Size: 9, Align: align.Right, Top: 1.5, Right: 2})),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

// summaryRows: bloque de totales alineado a la derecha.
func summaryRows(doc *entity.Invoice, t billing.Totals) []core.Row {
	pair := func(label, value string, bold bool, size float64) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(size*0.6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{Style: style, Size: size, Align: align.Left})),
			col.New(3).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Right: 2})),
		)
	}
	return []core.Row{
		pair("Subtotal:", money.FormatINR(t.Subtotal), false, 10),
		pair(fmt.Sprintf("Tax (%s%%):", doc.TaxRate.String()), money.FormatINR(t.Tax), false, 10),
		pair(fmt.Sprintf("Discount (%s%%):", doc.Discount.String()), "-"+money.FormatINR(t.Discount), false, 10),
		line.NewRow(3, props.Line{Color: colorLight, Thickness: 0.2}),
		pair("Total:", money.FormatINR(t.Total), true, 14),
	}
}

// noteRows: título + texto libre; la fila crece con el texto.
func noteRows(title, body string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
		)),
		text.NewAutoRow(body, props.Text{Size: 9, Color: colorGray, Top: 1}),
	}
}

// footerRow: leyenda centrada en cada página.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Thank you for your business!", props.Text{
			Size: 8, Align: align.Center, Color: colorLight, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
