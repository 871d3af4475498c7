package repositories

import (
	"context"
	"errors"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepository interface {
	FindBetween(ctx context.Context, tx *gorm.DB, a, b uuid.UUID) (*Conversation, error)
	FindOrCreate(ctx context.Context, tx *gorm.DB, a, b uuid.UUID) (*Conversation, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]Conversation, error)
}

type conversationRepository struct {
	log logger.Logger
}

func NewConversationRepository() ConversationRepository {
	return &conversationRepository{
		log: logger.New("conversationRepository"),
	}
}

// FindBetween returns gorm.ErrRecordNotFound when the pair has never talked.
func (r *conversationRepository) FindBetween(
	ctx context.Context,
	tx *gorm.DB,
	a, b uuid.UUID,
) (*Conversation, error) {
	log := r.log.Function("FindBetween")

	first, second := OrderedPair(a, b)
	conversations, err := gorm.G[Conversation](tx).
		Where("first_user_id = ? AND second_user_id = ?", first, second).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to find conversation", err, "first", first, "second", second)
	}

	if len(conversations) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &conversations[0], nil
}

func (r *conversationRepository) FindOrCreate(
	ctx context.Context,
	tx *gorm.DB,
	a, b uuid.UUID,
) (*Conversation, error) {
	log := r.log.Function("FindOrCreate")

	existing, err := r.FindBetween(ctx, tx, a, b)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	first, second := OrderedPair(a, b)
	conversation := Conversation{FirstUserID: first, SecondUserID: second}
	err = tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "first_user_id"}, {Name: "second_user_id"}},
			DoNothing: true,
		}).
		Create(&conversation).Error
	if err != nil {
		return nil, log.Err("failed to create conversation", err, "first", first, "second", second)
	}

	// A concurrent insert wins the conflict and leaves our id unset.
	if conversation.ID == uuid.Nil {
		return r.FindBetween(ctx, tx, a, b)
	}

	return &conversation, nil
}

func (r *conversationRepository) ListForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]Conversation, error) {
	log := r.log.Function("ListForUser")

	conversations, err := gorm.G[Conversation](tx).
		Preload("FirstUser", nil).
		Preload("SecondUser", nil).
		Where("first_user_id = ? OR second_user_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list conversations", err, "userID", userID)
	}

	return conversations, nil
}
