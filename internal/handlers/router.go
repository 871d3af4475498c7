package handlers

import (
	"errors"

	"cleanhub/internal/app"
	"cleanhub/internal/handlers/middleware"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app app.App, router fiber.Router, file string) Handler {
	return Handler{
		log:        logger.New("handlers").File(file),
		router:     router,
		middleware: app.Middleware,
	}
}

func Router(router fiber.Router, app *app.App) (err error) {
	WebSocketHandler(router, app.Websocket)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewBookingHandler(*app, api).Register()
	NewMessageHandler(*app, api).Register()
	NewNotificationHandler(*app, api).Register()
	NewSessionHandler(*app, api).Register()
	NewProfileHandler(*app, api).Register()
	NewPropertyHandler(*app, api).Register()
	NewSupportHandler(*app, api).Register()
	NewEnumsHandler(*app, api).Register()

	return nil
}

var errorStatuses = []struct {
	sentinel error
	status   int
}{
	{types.ErrValidation, fiber.StatusBadRequest},
	{types.ErrUnauthorized, fiber.StatusUnauthorized},
	{types.ErrForbidden, fiber.StatusForbidden},
	{types.ErrNotFound, fiber.StatusNotFound},
	{types.ErrConflict, fiber.StatusConflict},
	{types.ErrUpstream, fiber.StatusBadGateway},
}

func statusFor(err error) int {
	for _, mapping := range errorStatuses {
		if errors.Is(err, mapping.sentinel) {
			return mapping.status
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes {"error": msg} with the status matching the error's type.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		h.log.Function("respondError").TraceFromContext(c.UserContext()).
			Er("unhandled error", err, "path", c.Path(), "method", c.Method())
	}

	return c.Status(status).JSON(fiber.Map{
		"error": types.ErrorMessage(err),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Authentication required",
	})
}
