package handlers

import (
	"cleanhub/internal/app"
	supportController "cleanhub/internal/controllers/support"
	"cleanhub/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
)

type SupportHandler struct {
	Handler
	supportController supportController.SupportControllerInterface
}

func NewSupportHandler(app app.App, router fiber.Router) *SupportHandler {
	return &SupportHandler{
		supportController: app.Controllers.Support,
		Handler:           newHandler(app, router, "support_handler"),
	}
}

func (h *SupportHandler) Register() {
	h.router.Post("/support", h.middleware.RequireAuth(), h.send)
}

func (h *SupportHandler) send(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req supportController.SupportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.supportController.Send(c.UserContext(), user, &req); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Support request sent.",
	})
}
