package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// ProductResponse producto del catálogo. Key cambia si cambia el precio.
type ProductResponse struct {
	ID       string          `json:"id"`
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// ProductListResponse respuesta de GET /api/products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
}

// ToProductListResponse mapea la lista de entidades al DTO.
func ToProductListResponse(list []entity.Product) ProductListResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ProductResponse{
			ID:       p.ID,
			Key:      p.RenderKey(),
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
		})
	}
	return ProductListResponse{Items: items, Count: len(items)}
}
