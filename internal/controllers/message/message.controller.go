package messageController

import (
	"context"
	"slices"
	"time"

	"cleanhub/internal/database"
	"cleanhub/internal/events"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/types"
	"cleanhub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DEFAULT_PAGE_SIZE = 10
	MAX_PAGE_SIZE     = 100
)

type MessageController struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	userRepo         repositories.UserRepository
	transaction      *services.TransactionService
	notifier         services.Notifier
	db               database.DB
	log              logger.Logger
}

type SendRequest struct {
	RecipientID *uuid.UUID `json:"recipientId"`
	Message     string     `json:"message"`
}

type ConversationQuery struct {
	Limit           int    `query:"limit"`
	LastMessageTime string `query:"lastMessageTime"`
}

// MarkDeliveredRequest names the senders whose messages reached the caller.
// recipientIds is accepted as an alias for older clients.
type MarkDeliveredRequest struct {
	SenderIDs    []uuid.UUID `json:"senderIds"`
	RecipientIDs []uuid.UUID `json:"recipientIds"`
}

type MarkReadRequest struct {
	RecipientID *uuid.UUID `json:"recipientId"`
}

type UpdateResult struct {
	Message string      `json:"message"`
	Updated []uuid.UUID `json:"updated"`
}

type MessageControllerInterface interface {
	Send(ctx context.Context, user types.AuthUser, request *SendRequest) (*Message, error)
	Conversation(ctx context.Context, user types.AuthUser, otherID uuid.UUID, query ConversationQuery) ([]Message, error)
	MarkDelivered(ctx context.Context, user types.AuthUser, request *MarkDeliveredRequest) (*UpdateResult, error)
	MarkRead(ctx context.Context, user types.AuthUser, request *MarkReadRequest) (*UpdateResult, error)
	ListConversations(ctx context.Context, user types.AuthUser) ([]ConversationSummary, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) MessageControllerInterface {
	return &MessageController{
		conversationRepo: repos.Conversation,
		messageRepo:      repos.Message,
		userRepo:         repos.User,
		transaction:      services.Transaction,
		notifier:         services.Notification,
		db:               db,
		log:              logger.New("messageController"),
	}
}

func (c *MessageController) Send(
	ctx context.Context,
	user types.AuthUser,
	request *SendRequest,
) (*Message, error) {
	log := c.log.Function("Send").TraceFromContext(ctx)

	if request.RecipientID == nil || *request.RecipientID == uuid.Nil {
		return nil, log.ErrorWithType(types.ErrValidation, "recipientId is required")
	}
	text := utils.CleanText(request.Message)
	if text == "" {
		return nil, log.ErrorWithType(types.ErrValidation, "message is required")
	}
	recipientID := *request.RecipientID
	if recipientID == user.ID {
		return nil, log.ErrorWithType(types.ErrValidation, "You cannot send a message to yourself.")
	}

	if _, err := c.userRepo.GetByID(ctx, c.db.SQLWithContext(ctx), recipientID); err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "Recipient not found.")
		}
		return nil, err
	}

	var message *Message
	err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		conversation, err := c.conversationRepo.FindOrCreate(ctx, tx, user.ID, recipientID)
		if err != nil {
			return err
		}

		message = &Message{
			ConversationID: conversation.ID,
			SenderID:       user.ID,
			RecipientID:    recipientID,
			Message:        text,
			Status:         MessageSent,
		}
		return c.messageRepo.Create(ctx, tx, message)
	})
	if err != nil {
		return nil, err
	}

	c.notifier.PushToUser(ctx, recipientID, services.PushMessage{
		Title: "New Message",
		Body:  text,
		Data: map[string]string{
			"conversationId": message.ConversationID.String(),
			"messageId":      message.ID.String(),
			"senderId":       user.ID.String(),
		},
	})
	c.notifier.Publish(ctx, recipientID, events.MESSAGE_NEW, map[string]any{"message": message})

	log.Info("Message sent", "conversationID", message.ConversationID, "messageID", message.ID)
	return message, nil
}

func (c *MessageController) Conversation(
	ctx context.Context,
	user types.AuthUser,
	otherID uuid.UUID,
	query ConversationQuery,
) ([]Message, error) {
	log := c.log.Function("Conversation").TraceFromContext(ctx)

	limit := query.Limit
	switch {
	case limit <= 0:
		limit = DEFAULT_PAGE_SIZE
	case limit > MAX_PAGE_SIZE:
		limit = MAX_PAGE_SIZE
	}

	var before *time.Time
	if query.LastMessageTime != "" {
		parsed, err := time.Parse(time.RFC3339, query.LastMessageTime)
		if err != nil {
			return nil, log.ErrorWithType(types.ErrValidation, "Invalid lastMessageTime.")
		}
		before = &parsed
	}

	db := c.db.SQLWithContext(ctx)
	conversation, err := c.conversationRepo.FindBetween(ctx, db, user.ID, otherID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "Conversation not found.")
		}
		return nil, err
	}

	return c.messageRepo.ListByConversation(ctx, db, conversation.ID, before, limit)
}

func uniqueSenders(callerID uuid.UUID, groups ...[]uuid.UUID) []uuid.UUID {
	var senders []uuid.UUID
	for _, group := range groups {
		for _, id := range group {
			if id == uuid.Nil || id == callerID || slices.Contains(senders, id) {
				continue
			}
			senders = append(senders, id)
		}
	}
	return senders
}

func nothingToUpdate() *UpdateResult {
	return &UpdateResult{Message: "No messages to update.", Updated: []uuid.UUID{}}
}

func (c *MessageController) MarkDelivered(
	ctx context.Context,
	user types.AuthUser,
	request *MarkDeliveredRequest,
) (*UpdateResult, error) {
	log := c.log.Function("MarkDelivered").TraceFromContext(ctx)

	senders := uniqueSenders(user.ID, request.SenderIDs, request.RecipientIDs)
	if len(senders) == 0 {
		return nothingToUpdate(), nil
	}

	ids, err := c.messageRepo.MarkDelivered(ctx, c.db.SQLWithContext(ctx), user.ID, senders)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nothingToUpdate(), nil
	}

	c.announce(ctx, append([]uuid.UUID{user.ID}, senders...), events.MESSAGE_DELIVERED, MessageDelivered, ids)

	log.Info("Messages delivered", "recipientID", user.ID, "count", len(ids))
	return &UpdateResult{Message: "Messages marked as delivered.", Updated: ids}, nil
}

func (c *MessageController) MarkRead(
	ctx context.Context,
	user types.AuthUser,
	request *MarkReadRequest,
) (*UpdateResult, error) {
	log := c.log.Function("MarkRead").TraceFromContext(ctx)

	if request.RecipientID == nil || *request.RecipientID == uuid.Nil {
		return nil, log.ErrorWithType(types.ErrValidation, "recipientId is required")
	}
	senderID := *request.RecipientID

	var ids []uuid.UUID
	err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		ids, err = c.messageRepo.MarkRead(ctx, tx, user.ID, senderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nothingToUpdate(), nil
	}

	c.announce(ctx, []uuid.UUID{user.ID, senderID}, events.MESSAGE_READ, MessageRead, ids)

	log.Info("Messages read", "recipientID", user.ID, "senderID", senderID, "count", len(ids))
	return &UpdateResult{Message: "Messages marked as read.", Updated: ids}, nil
}

func (c *MessageController) announce(
	ctx context.Context,
	userIDs []uuid.UUID,
	eventType events.MessageType,
	status MessageStatus,
	messageIDs []uuid.UUID,
) {
	data := map[string]any{"messageIds": messageIDs, "status": status}
	for _, userID := range userIDs {
		c.notifier.Publish(ctx, userID, eventType, data)
	}
}

// ListConversations returns the caller's conversations, most recently active first.
func (c *MessageController) ListConversations(
	ctx context.Context,
	user types.AuthUser,
) ([]ConversationSummary, error) {
	db := c.db.SQLWithContext(ctx)

	conversations, err := c.conversationRepo.ListForUser(ctx, db, user.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(conversations))
	for _, conversation := range conversations {
		ids = append(ids, conversation.ID)
	}

	latest, err := c.messageRepo.LatestForConversations(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		summary := ConversationSummary{Conversation: conversation}
		if message, ok := latest[conversation.ID]; ok {
			summary.LastMessage = &message
		}
		summaries = append(summaries, summary)
	}

	slices.SortStableFunc(summaries, func(a, b ConversationSummary) int {
		return lastActivity(b).Compare(lastActivity(a))
	})

	return summaries, nil
}

func lastActivity(summary ConversationSummary) time.Time {
	if summary.LastMessage != nil {
		return summary.LastMessage.CreatedAt
	}
	return summary.UpdatedAt
}
