package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/freshfruits-billing/internal/application/catalog"
	"github.com/jhoicas/freshfruits-billing/internal/application/dto"
	"github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/domain"
)

// InvoiceHandler expone la sesión de facturación del operador.
type InvoiceHandler struct {
	session *invoice.Session
	catalog catalog.Catalog
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(session *invoice.Session, cat catalog.Catalog) *InvoiceHandler {
	return &InvoiceHandler{session: session, catalog: cat}
}

func (h *InvoiceHandler) current() dto.InvoiceResponse {
	doc, totals := h.session.Snapshot()
	return dto.InvoiceResponse{Invoice: doc, Totals: totals}
}

// Get godoc
// @Summary      Factura actual con totales
// @Tags         invoice
// @Produce      json
// @Success      200  {object}  dto.InvoiceResponse
// @Router       /api/invoice [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.current())
}

// UpdateField godoc
// @Summary      Editar un campo escalar (cliente, fechas, notas, impuesto, descuento...)
// @Tags         invoice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateFieldRequest  true  "field, value"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoice/fields [patch]
func (h *InvoiceHandler) UpdateField(c *fiber.Ctx) error {
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Field == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "field requerido"})
	}
	// El valor queda en la factura: copia propia, no el buffer de fasthttp.
	if err := h.session.UpdateField(c.Context(), utils.CopyString(in.Field), utils.CopyString(in.Value)); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.current())
}

// AddItem godoc
// @Summary      Agregar producto del catálogo (o +1 si ya está)
// @Tags         invoice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "productId"
// @Success      200   {object}  dto.AddItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoice/items [post]
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId requerido"})
	}
	product, ok := h.catalog.Find(c.Context(), in.ProductID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	item := h.session.AddProduct(c.Context(), product)
	return c.JSON(dto.AddItemResponse{Item: item, InvoiceResponse: h.current()})
}

// SetQuantity godoc
// @Summary      Cambiar cantidad de una línea (cantidades < 1 se ignoran)
// @Tags         invoice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id de la línea"
// @Param        body  body  dto.SetQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoice/items/{id} [put]
func (h *InvoiceHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.session.SetQuantity(c.Context(), c.Params("id"), in.Quantity)
	return c.JSON(h.current())
}

// RemoveItem godoc
// @Summary      Quitar una línea (idempotente)
// @Tags         invoice
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id de la línea"
// @Success      200  {object}  dto.InvoiceResponse
// @Router       /api/invoice/items/{id} [delete]
func (h *InvoiceHandler) RemoveItem(c *fiber.Ctx) error {
	h.session.RemoveItem(c.Context(), c.Params("id"))
	return c.JSON(h.current())
}

// RegenerateNumber godoc
// @Summary      Generar un nuevo número de factura
// @Tags         invoice
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InvoiceNumberResponse
// @Router       /api/invoice/number [post]
func (h *InvoiceHandler) RegenerateNumber(c *fiber.Ctx) error {
	return c.JSON(dto.InvoiceNumberResponse{InvoiceNumber: h.session.RegenerateInvoiceNumber(c.Context())})
}

// Clear godoc
// @Summary      Reiniciar la factura (requiere ?confirm=true)
// @Tags         invoice
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "confirmación del operador"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoice [delete]
func (h *InvoiceHandler) Clear(c *fiber.Ctx) error {
	confirmed := c.QueryBool("confirm", false)
	err := h.session.ClearAll(c.Context(), func(string) bool { return confirmed })
	if err != nil {
		if errors.Is(err, domain.ErrNotConfirmed) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_CONFIRMED", Message: invoice.ClearPrompt})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.current())
}
