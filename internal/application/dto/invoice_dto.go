package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshfruits-billing/internal/domain/billing"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// InvoiceResponse documento actual + totales derivados para GET /api/invoice.
type InvoiceResponse struct {
	Invoice *entity.Invoice `json:"invoice"`
	Totals  billing.Totals  `json:"totals"`
}

// UpdateFieldRequest body para PATCH /api/invoice/fields.
type UpdateFieldRequest struct {
	Field string `json:"field" form:"field"`
	Value string `json:"value" form:"value"`
}

// AddItemRequest body para POST /api/invoice/items.
type AddItemRequest struct {
	ProductID string `json:"productId"`
}

// AddItemResponse línea afectada + documento resultante.
type AddItemResponse struct {
	Item entity.LineItem `json:"item"`
	InvoiceResponse
}

// SetQuantityRequest body para PUT /api/invoice/items/:id.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// InvoiceNumberResponse respuesta de POST /api/invoice/number.
type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoiceNumber"`
}

// ExportRecordResponse entrada del historial de exportaciones.
type ExportRecordResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Format        string          `json:"format"`
	FileName      string          `json:"fileName"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ExportListResponse respuesta de GET /api/exports.
type ExportListResponse struct {
	Items []ExportRecordResponse `json:"items"`
}

// ToExportRecordResponse mapea la entidad al DTO.
func ToExportRecordResponse(r *entity.ExportRecord) ExportRecordResponse {
	return ExportRecordResponse{
		ID:            r.ID,
		InvoiceNumber: r.InvoiceNumber,
		Format:        r.Format,
		FileName:      r.FileName,
		Total:         r.Total,
		CreatedAt:     r.CreatedAt,
	}
}
