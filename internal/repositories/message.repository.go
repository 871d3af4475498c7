package repositories

import (
	"context"
	"time"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository interface {
	Create(ctx context.Context, tx *gorm.DB, message *Message) error
	ListByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, before *time.Time, limit int) ([]Message, error)
	MarkDelivered(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, senderIDs []uuid.UUID) ([]uuid.UUID, error)
	MarkRead(ctx context.Context, tx *gorm.DB, recipientID, senderID uuid.UUID) ([]uuid.UUID, error)
	LatestForConversations(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) (map[uuid.UUID]Message, error)
}

type messageRepository struct {
	log logger.Logger
}

func NewMessageRepository() MessageRepository {
	return &messageRepository{
		log: logger.New("messageRepository"),
	}
}

func (r *messageRepository) Create(ctx context.Context, tx *gorm.DB, message *Message) error {
	log := r.log.Function("Create")

	if message.Status == "" {
		message.Status = MessageSent
	}

	if err := gorm.G[Message](tx).Create(ctx, message); err != nil {
		return log.Err("failed to create message", err, "conversationID", message.ConversationID)
	}

	return nil
}

// ListByConversation returns messages newest first, strictly older than before when set.
func (r *messageRepository) ListByConversation(
	ctx context.Context,
	tx *gorm.DB,
	conversationID uuid.UUID,
	before *time.Time,
	limit int,
) ([]Message, error) {
	log := r.log.Function("ListByConversation")

	query := tx.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var messages []Message
	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, log.Err("failed to list messages", err, "conversationID", conversationID)
	}

	return messages, nil
}

// advance moves messages from one status to the next and returns the ids it touched.
func (r *messageRepository) advance(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uuid.UUID,
	senderIDs []uuid.UUID,
	from, to MessageStatus,
) ([]uuid.UUID, error) {
	var updated []Message
	err := tx.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("recipient_id = ? AND sender_id IN ? AND status = ?", recipientID, senderIDs, from).
		Updates(map[string]any{"status": to}).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(updated))
	for _, message := range updated {
		ids = append(ids, message.ID)
	}

	return ids, nil
}

func (r *messageRepository) MarkDelivered(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uuid.UUID,
	senderIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	log := r.log.Function("MarkDelivered")

	if len(senderIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	ids, err := r.advance(ctx, tx, recipientID, senderIDs, MessageSent, MessageDelivered)
	if err != nil {
		return nil, log.Err("failed to mark messages delivered", err, "recipientID", recipientID)
	}

	return ids, nil
}

// MarkRead promotes sent messages to delivered first, then everything delivered to read.
func (r *messageRepository) MarkRead(
	ctx context.Context,
	tx *gorm.DB,
	recipientID, senderID uuid.UUID,
) ([]uuid.UUID, error) {
	log := r.log.Function("MarkRead")

	senders := []uuid.UUID{senderID}
	if _, err := r.advance(ctx, tx, recipientID, senders, MessageSent, MessageDelivered); err != nil {
		return nil, log.Err("failed to mark messages delivered", err, "recipientID", recipientID)
	}

	ids, err := r.advance(ctx, tx, recipientID, senders, MessageDelivered, MessageRead)
	if err != nil {
		return nil, log.Err("failed to mark messages read", err, "recipientID", recipientID)
	}

	return ids, nil
}

func (r *messageRepository) LatestForConversations(
	ctx context.Context,
	tx *gorm.DB,
	conversationIDs []uuid.UUID,
) (map[uuid.UUID]Message, error) {
	log := r.log.Function("LatestForConversations")

	latest := make(map[uuid.UUID]Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return latest, nil
	}

	var messages []Message
	err := tx.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (conversation_id) * FROM messages
			WHERE conversation_id IN ? AND deleted_at IS NULL
			ORDER BY conversation_id, created_at DESC`, conversationIDs).
		Scan(&messages).Error
	if err != nil {
		return nil, log.Err("failed to load latest messages", err)
	}

	for _, message := range messages {
		latest[message.ConversationID] = message
	}

	return latest, nil
}
