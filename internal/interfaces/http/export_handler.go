package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshfruits-billing/internal/application/dto"
	"github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
)

// ExportHandler descargas de la factura e historial de exportaciones.
type ExportHandler struct {
	uc       *invoice.ExportUseCase
	notifier ports.Notifier
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *invoice.ExportUseCase, notifier ports.Notifier) *ExportHandler {
	return &ExportHandler{uc: uc, notifier: notifier}
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoice/export.pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	return h.send(c, h.uc.ExportPDF, "PDF")
}

// XML godoc
// @Summary      Descargar la factura en XML
// @Tags         export
// @Produce      application/xml
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoice/export.xml [get]
func (h *ExportHandler) XML(c *fiber.Ctx) error {
	return h.send(c, h.uc.ExportXML, "XML")
}

func (h *ExportHandler) send(c *fiber.Ctx, export func(context.Context) ([]byte, string, error), label string) error {
	data, filename, err := export(c.Context())
	if err != nil {
		if h.notifier != nil {
			h.notifier.Notify(ports.LevelError, "Error generating "+label)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Attachment(filename)
	return c.Send(data)
}

// History godoc
// @Summary      Últimas exportaciones
// @Tags         export
// @Produce      json
// @Param        limit  query  int  false  "máximo 100, por defecto 20"
// @Success      200  {object}  dto.ExportListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/exports [get]
func (h *ExportHandler) History(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit inválido"})
	}
	q.DefaultLimit()
	list, err := h.uc.History(c.Context(), q.Limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.ExportListResponse{Items: make([]dto.ExportRecordResponse, 0, len(list))}
	for _, r := range list {
		out.Items = append(out.Items, dto.ToExportRecordResponse(r))
	}
	return c.JSON(out)
}
