package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshfruits-billing/internal/application/auth"
	"github.com/jhoicas/freshfruits-billing/internal/application/catalog"
	"github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
	"github.com/jhoicas/freshfruits-billing/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session       *invoice.Session
	Catalog       catalog.Catalog
	Export        *invoice.ExportUseCase
	AuthUC        *auth.AuthUseCase
	Notifications notificationSource
	Notifier      ports.Notifier
	ServiceName   string
}

// AppConfig configuración de fiber para la API.
// Immutable: los valores del request no se reciclan entre peticiones, la sesión los conserva.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
// Las lecturas son públicas; las escrituras exigen token solo si el login de operador está configurado.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	printHandler := NewPrintHandler(deps.Session)
	app.Get("/print", printHandler.Print)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	guard := []fiber.Handler{OptionalAuth(deps.AuthUC.Enabled(), deps.AuthUC.Secret())}
	if deps.AuthUC.Enabled() {
		guard = append(guard, RequireRole(jwt.RoleOperator))
	}
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	// Invoice
	invoiceHandler := NewInvoiceHandler(deps.Session, deps.Catalog)
	inv := api.Group("/invoice")
	inv.Get("/", invoiceHandler.Get)
	inv.Patch("/fields", write(invoiceHandler.UpdateField)...)
	inv.Post("/items", write(invoiceHandler.AddItem)...)
	inv.Put("/items/:id", write(invoiceHandler.SetQuantity)...)
	inv.Delete("/items/:id", write(invoiceHandler.RemoveItem)...)
	inv.Post("/number", write(invoiceHandler.RegenerateNumber)...)
	inv.Delete("/", write(invoiceHandler.Clear)...)

	// Exports
	exportHandler := NewExportHandler(deps.Export, deps.Notifier)
	inv.Get("/export.pdf", exportHandler.PDF)
	inv.Get("/export.xml", exportHandler.XML)
	api.Get("/exports", exportHandler.History)

	// Products
	catalogHandler := NewCatalogHandler(deps.Catalog)
	products := api.Group("/products")
	products.Get("/", catalogHandler.List)
	products.Post("/refresh", write(catalogHandler.Refresh)...)
	products.Delete("/cache", write(catalogHandler.ClearCache)...)

	// Notifications
	notificationHandler := NewNotificationHandler(deps.Notifications)
	api.Get("/notifications", notificationHandler.Drain)
}
