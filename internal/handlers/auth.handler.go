package handlers

import (
	"cleanhub/internal/app"
	authController "cleanhub/internal/controllers/auth"
	"cleanhub/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler:        newHandler(app, router, "auth_handler"),
	}
}

func (h *AuthHandler) Register() {
	h.router.Post("/signup", h.signup)
	h.router.Post("/signin", h.signin)
	h.router.Post("/refresh-token", h.refresh)

	// Per-route so the auth check does not leak onto sibling /api routes.
	requireAuth := h.middleware.RequireAuth()
	h.router.Post("/signout", requireAuth, h.signout)
	h.router.Put("/editUser", requireAuth, h.editUser)
	h.router.Get("/me", requireAuth, h.me)
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	var req authController.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Function("signup").TraceFromContext(c.UserContext()).
			Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	response, err := h.authController.Signup(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *AuthHandler) signin(c *fiber.Ctx) error {
	var req authController.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	response, err := h.authController.Signin(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(response)
}

// refresh accepts the refresh token as a bearer token or as {"refreshToken": ...}.
func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.BodyParser(&body)
		token = body.RefreshToken
	}

	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Refresh token required",
		})
	}

	pair, err := h.authController.Refresh(c.UserContext(), token)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(pair)
}

// signout revokes the refresh token in {"refreshToken": ...} when one is sent.
func (h *AuthHandler) signout(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.BodyParser(&body)

	if err := h.authController.Signout(c.UserContext(), user, body.RefreshToken); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Signed out.",
	})
}

func (h *AuthHandler) editUser(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req authController.EditUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.authController.EditUser(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": profile,
	})
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	response, err := h.authController.Me(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(response)
}
