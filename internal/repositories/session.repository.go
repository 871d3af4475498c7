package repositories

import (
	"context"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *LoggedInUser) error
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role UserRole) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]LoggedInUser, error)
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role UserRole) (bool, error)
	TokensForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error)
}

type sessionRepository struct {
	log logger.Logger
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		log: logger.New("sessionRepository"),
	}
}

func (r *sessionRepository) Create(ctx context.Context, tx *gorm.DB, session *LoggedInUser) error {
	log := r.log.Function("Create")

	if err := gorm.G[LoggedInUser](tx).Create(ctx, session); err != nil {
		return log.Err("failed to create session", err, "userID", session.UserID, "role", session.Role)
	}

	return nil
}

func (r *sessionRepository) Exists(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	role UserRole,
) (bool, error) {
	log := r.log.Function("Exists")

	var count int64
	err := tx.WithContext(ctx).
		Model(&LoggedInUser{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check session", err, "userID", userID)
	}

	return count > 0, nil
}

func (r *sessionRepository) List(ctx context.Context, tx *gorm.DB) ([]LoggedInUser, error) {
	log := r.log.Function("List")

	sessions, err := gorm.G[LoggedInUser](tx).Order("created_at DESC").Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list sessions", err)
	}

	return sessions, nil
}

// Delete is a hard delete so the (user, role) unique index frees up for the next login.
func (r *sessionRepository) Delete(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	role UserRole,
) (bool, error) {
	log := r.log.Function("Delete")

	result := tx.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&LoggedInUser{})
	if result.Error != nil {
		return false, log.Err("failed to delete session", result.Error, "userID", userID)
	}

	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) TokensForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]string, error) {
	log := r.log.Function("TokensForUser")

	var tokens []string
	err := tx.WithContext(ctx).
		Model(&LoggedInUser{}).
		Where("user_id = ? AND fcm_token <> ''", userID).
		Pluck("fcm_token", &tokens).Error
	if err != nil {
		return nil, log.Err("failed to load push tokens", err, "userID", userID)
	}

	return tokens, nil
}
