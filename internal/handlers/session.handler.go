package handlers

import (
	"cleanhub/internal/app"
	sessionController "cleanhub/internal/controllers/session"
	"cleanhub/internal/handlers/middleware"
	. "cleanhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	Handler
	sessionController sessionController.SessionControllerInterface
}

func NewSessionHandler(app app.App, router fiber.Router) *SessionHandler {
	return &SessionHandler{
		sessionController: app.Controllers.Session,
		Handler:           newHandler(app, router, "session_handler"),
	}
}

func (h *SessionHandler) Register() {
	sessions := h.router.Group("/loggedInUser", h.middleware.RequireAuth())

	sessions.Post("", h.create)
	sessions.Get("", h.middleware.RequireRole(RoleAdmin), h.list)
	sessions.Post("/logout", h.logout)
}

func (h *SessionHandler) create(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req sessionController.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.sessionController.Create(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session": session,
	})
}

func (h *SessionHandler) list(c *fiber.Ctx) error {
	sessions, err := h.sessionController.List(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
	})
}

func (h *SessionHandler) logout(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req sessionController.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.sessionController.Logout(c.UserContext(), user, &req); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Logged out.",
	})
}
