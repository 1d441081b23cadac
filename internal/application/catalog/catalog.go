// Package catalog resuelve la lista de productos vendibles: una tabla fija o un feed remoto
// detrás de una caché de dos niveles con expiración.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// Catalog contrato común de las dos variantes de catálogo.
type Catalog interface {
	// Load resuelve los productos; forceRefresh ignora cualquier caché.
	Load(ctx context.Context, forceRefresh bool) []entity.Product
	// Refresh recarga a pedido del operador.
	Refresh(ctx context.Context) []entity.Product
	// ClearCaches invalida las cachés y recarga.
	ClearCaches(ctx context.Context) []entity.Product
	// Find busca un producto por ID en la lista vigente.
	Find(ctx context.Context, id string) (entity.Product, bool)
}

// Feed puerto de la fuente remota de productos.
type Feed interface {
	FetchProducts(ctx context.Context) ([]entity.Product, error)
}

// StaticProducts tabla fija de frutas de la tienda.
func StaticProducts() []entity.Product {
	p := func(id, name string, price int64) entity.Product {
		return entity.Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Category: "Fruits"}
	}
	return []entity.Product{
		p("1", "Apple", 150),
		p("2", "Banana", 80),
		p("3", "Orange", 120),
		p("4", "Mango", 250),
		p("5", "Pineapple", 300),
		p("6", "Watermelon", 450),
		p("7", "Grapes", 280),
		p("8", "Strawberry", 350),
		p("9", "Kiwi", 180),
		p("10", "Pomegranate", 220),
	}
}

// Static catálogo en memoria sin caché ni red.
type Static struct {
	products []entity.Product
	notifier ports.Notifier
}

var _ Catalog = (*Static)(nil)

// NewStatic construye el catálogo fijo; products nil usa StaticProducts.
func NewStatic(products []entity.Product, notifier ports.Notifier) *Static {
	if products == nil {
		products = StaticProducts()
	}
	return &Static{products: products, notifier: notifier}
}

// Load devuelve siempre la tabla fija.
func (s *Static) Load(_ context.Context, _ bool) []entity.Product {
	return cloneProducts(s.products)
}

// Refresh no tiene nada que recargar.
func (s *Static) Refresh(ctx context.Context) []entity.Product {
	s.notifyStatic()
	return s.Load(ctx, true)
}

// ClearCaches no tiene cachés que invalidar.
func (s *Static) ClearCaches(ctx context.Context) []entity.Product {
	s.notifyStatic()
	return s.Load(ctx, true)
}

// Find busca en la tabla fija.
func (s *Static) Find(_ context.Context, id string) (entity.Product, bool) {
	return findProduct(s.products, id)
}

func (s *Static) notifyStatic() {
	if s.notifier != nil {
		s.notifier.Notify(ports.LevelInfo, "Static catalog: nothing to refresh")
	}
}

func findProduct(list []entity.Product, id string) (entity.Product, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func cloneProducts(list []entity.Product) []entity.Product {
	out := make([]entity.Product, len(list))
	copy(out, list)
	return out
}
