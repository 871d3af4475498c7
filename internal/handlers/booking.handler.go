package handlers

import (
	"context"

	"cleanhub/internal/app"
	bookingController "cleanhub/internal/controllers/booking"
	"cleanhub/internal/handlers/middleware"
	. "cleanhub/internal/models"
	"cleanhub/internal/types"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Handler
	bookingController bookingController.BookingControllerInterface
}

func NewBookingHandler(app app.App, router fiber.Router) *BookingHandler {
	return &BookingHandler{
		bookingController: app.Controllers.Booking,
		Handler:           newHandler(app, router, "booking_handler"),
	}
}

func (h *BookingHandler) Register() {
	booking := h.router.Group("/booking", h.middleware.RequireAuth())

	owners := h.middleware.RequireRole(RoleHomeOwner, RolePropertyManager)
	cleaners := h.middleware.RequireRole(RoleCleaner)

	booking.Post("/create", owners, h.createBooking)
	booking.Get("", owners, h.listOwnerBookings)
	booking.Post("/homeowner-action", h.middleware.RequireRole(RoleHomeOwner), h.homeOwnerAction)

	booking.Get("/nearby", cleaners, h.nearbyBookings)
	booking.Get("/cleaner-bookings", cleaners, h.cleanerBookings)
	booking.Post("/action", cleaners, h.cleanerAction)

	booking.Get("/cleaning-types", h.listCleaningTypes)
	booking.Post("/cleaning-types", h.middleware.RequireRole(RoleAdmin), h.createCleaningType)
}

func (h *BookingHandler) createBooking(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req bookingController.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Function("createBooking").TraceFromContext(c.UserContext()).
			Warn("Invalid request body", "error", err, "userID", user.ID)
		return badRequest(c, "Invalid request body")
	}

	booking, err := h.bookingController.CreateBooking(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"booking": booking,
	})
}

func (h *BookingHandler) listOwnerBookings(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	bookings, err := h.bookingController.ListOwnerBookings(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
	})
}

func (h *BookingHandler) nearbyBookings(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	bookings, err := h.bookingController.NearbyBookings(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
	})
}

func (h *BookingHandler) cleanerBookings(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	bookings, err := h.bookingController.CleanerBookings(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
	})
}

func (h *BookingHandler) cleanerAction(c *fiber.Ctx) error {
	return h.action(c, h.bookingController.CleanerAction)
}

func (h *BookingHandler) homeOwnerAction(c *fiber.Ctx) error {
	return h.action(c, h.bookingController.HomeOwnerAction)
}

type actionFunc func(
	ctx context.Context,
	user types.AuthUser,
	request *bookingController.ActionRequest,
) (*bookingController.ActionResult, error)

func (h *BookingHandler) action(c *fiber.Ctx, run actionFunc) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req bookingController.ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := run(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(result)
}

func (h *BookingHandler) listCleaningTypes(c *fiber.Ctx) error {
	cleaningTypes, err := h.bookingController.ListCleaningTypes(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"cleaningTypes": cleaningTypes,
	})
}

func (h *BookingHandler) createCleaningType(c *fiber.Ctx) error {
	var req bookingController.CleaningTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cleaningType, err := h.bookingController.CreateCleaningType(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"cleaningType": cleaningType,
	})
}
