package handlers

import (
	"cleanhub/internal/app"
	notificationController "cleanhub/internal/controllers/notification"
	"cleanhub/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	Handler
	notificationController notificationController.NotificationControllerInterface
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	return &NotificationHandler{
		notificationController: app.Controllers.Notification,
		Handler:                newHandler(app, router, "notification_handler"),
	}
}

func (h *NotificationHandler) Register() {
	notifications := h.router.Group("/notification", h.middleware.RequireAuth())

	notifications.Get("", h.list)
	notifications.Patch("/:id/read", h.markRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	notifications, err := h.notificationController.List(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
	})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid notification id.")
	}

	if err := h.notificationController.MarkRead(c.UserContext(), user, id); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read.",
	})
}
