package entity

import "github.com/shopspring/decimal"

// Product es un producto vendible del catálogo (tabla fija o feed remoto).
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// RenderKey identifica el producto para la UI: un cambio de precio en el feed produce otra clave.
func (p Product) RenderKey() string {
	return p.ID + ":" + p.Price.String()
}
