package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshfruits-billing/internal/application/catalog"
	"github.com/jhoicas/freshfruits-billing/internal/application/dto"
)

// CatalogHandler lista de productos y control de la caché.
type CatalogHandler struct {
	catalog catalog.Catalog
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(cat catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// List godoc
// @Summary      Productos disponibles (desde caché si está vigente)
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ToProductListResponse(h.catalog.Load(c.Context(), false)))
}

// Refresh godoc
// @Summary      Forzar recarga del feed de productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/refresh [post]
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	return c.JSON(dto.ToProductListResponse(h.catalog.Refresh(c.Context())))
}

// ClearCache godoc
// @Summary      Invalidar ambas cachés y recargar
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/cache [delete]
func (h *CatalogHandler) ClearCache(c *fiber.Ctx) error {
	return c.JSON(dto.ToProductListResponse(h.catalog.ClearCaches(c.Context())))
}
