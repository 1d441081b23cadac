package http

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshfruits-billing/internal/application/dto"
	"github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/domain/billing"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/pkg/money"
)

//go:embed templates/print.html
var templatesFS embed.FS

var printTmpl = template.Must(template.New("print.html").Funcs(template.FuncMap{
	"rupee": money.FormatRupee,
	"inc":   func(i int) int { return i + 1 },
}).ParseFS(templatesFS, "templates/print.html"))

type printView struct {
	Invoice   *entity.Invoice
	Totals    billing.Totals
	AutoPrint bool
}

// PrintHandler vista imprimible de la factura actual.
type PrintHandler struct {
	session *invoice.Session
}

// NewPrintHandler construye el handler.
func NewPrintHandler(session *invoice.Session) *PrintHandler {
	return &PrintHandler{session: session}
}

// Print godoc
// @Summary      Vista HTML imprimible (abre el diálogo de impresión salvo ?auto=false)
// @Tags         export
// @Produce      html
// @Param        auto  query  bool  false  "lanzar window.print() al cargar"
// @Success      200
// @Router       /print [get]
func (h *PrintHandler) Print(c *fiber.Ctx) error {
	doc, totals := h.session.Snapshot()
	view := printView{Invoice: doc, Totals: totals, AutoPrint: c.QueryBool("auto", true)}

	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, view); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
