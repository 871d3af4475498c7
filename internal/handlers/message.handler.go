package handlers

import (
	"cleanhub/internal/app"
	messageController "cleanhub/internal/controllers/message"
	"cleanhub/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageHandler struct {
	Handler
	messageController messageController.MessageControllerInterface
}

func NewMessageHandler(app app.App, router fiber.Router) *MessageHandler {
	return &MessageHandler{
		messageController: app.Controllers.Message,
		Handler:           newHandler(app, router, "message_handler"),
	}
}

func (h *MessageHandler) Register() {
	messages := h.router.Group("/messages", h.middleware.RequireAuth())

	messages.Get("", h.listConversations)
	messages.Post("", h.send)
	messages.Post("/delivered", h.markDelivered)
	messages.Post("/read", h.markRead)
	messages.Get("/:id", h.conversation)
}

func (h *MessageHandler) send(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req messageController.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	message, err := h.messageController.Send(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}

func (h *MessageHandler) conversation(c *fiber.Ctx) error {
	log := h.log.Function("conversation").TraceFromContext(c.UserContext())

	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	otherID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Info("invalid user id", "id", c.Params("id"))
		return badRequest(c, "Invalid user id.")
	}

	var query messageController.ConversationQuery
	if err := c.QueryParser(&query); err != nil {
		return badRequest(c, "Invalid query parameters.")
	}

	messages, err := h.messageController.Conversation(c.UserContext(), user, otherID, query)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

func (h *MessageHandler) markDelivered(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req messageController.MarkDeliveredRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.messageController.MarkDelivered(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(result)
}

func (h *MessageHandler) markRead(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req messageController.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.messageController.MarkRead(c.UserContext(), user, &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(result)
}

func (h *MessageHandler) listConversations(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return unauthorized(c)
	}

	conversations, err := h.messageController.ListConversations(c.UserContext(), user)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"conversations": conversations,
	})
}
