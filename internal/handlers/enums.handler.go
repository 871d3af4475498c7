package handlers

import (
	"cleanhub/internal/app"
	enumsController "cleanhub/internal/controllers/enums"

	"github.com/gofiber/fiber/v2"
)

type EnumsHandler struct {
	Handler
	enumsController enumsController.EnumsControllerInterface
}

func NewEnumsHandler(app app.App, router fiber.Router) *EnumsHandler {
	return &EnumsHandler{
		enumsController: app.Controllers.Enums,
		Handler:         newHandler(app, router, "enums_handler"),
	}
}

func (h *EnumsHandler) Register() {
	h.router.Get("/enum/enums", h.get)
}

func (h *EnumsHandler) get(c *fiber.Ctx) error {
	enums, err := h.enumsController.Get(c.UserContext(), c.Query("enumType"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(enums)
}
