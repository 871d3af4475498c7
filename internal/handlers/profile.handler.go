package handlers

import (
	"cleanhub/internal/app"
	profileController "cleanhub/internal/controllers/profile"
	"cleanhub/internal/handlers/middleware"
	. "cleanhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Handler
	profileController profileController.ProfileControllerInterface
}

func NewProfileHandler(app app.App, router fiber.Router) *ProfileHandler {
	return &ProfileHandler{
		profileController: app.Controllers.Profile,
		Handler:           newHandler(app, router, "profile_handler"),
	}
}

func (h *ProfileHandler) Register() {
	profile := h.router.Group("/cleaner/profile",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(RoleCleaner),
	)

	profile.Get("", h.getCleaner)
	profile.Put("", h.updateCleaner)
}

func (h *ProfileHandler) getCleaner(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	cleaner, err := h.profileController.GetCleaner(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"cleaner": cleaner,
	})
}

func (h *ProfileHandler) updateCleaner(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req profileController.UpdateCleanerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cleaner, err := h.profileController.UpdateCleaner(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"cleaner": cleaner,
	})
}
