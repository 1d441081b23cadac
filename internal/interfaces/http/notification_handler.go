package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
)

// notificationSource lo implementa *notify.Feed.
type notificationSource interface {
	Drain() []ports.Notification
}

// NotificationHandler entrega los avisos pendientes al operador.
type NotificationHandler struct {
	feed notificationSource
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(feed notificationSource) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// Drain godoc
// @Summary      Avisos pendientes (se consumen al leerlos)
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  ports.Notification
// @Router       /api/notifications [get]
func (h *NotificationHandler) Drain(c *fiber.Ctx) error {
	return c.JSON(h.feed.Drain())
}
