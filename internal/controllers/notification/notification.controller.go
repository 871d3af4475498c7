package notificationController

import (
	"context"

	"cleanhub/internal/database"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type NotificationController struct {
	notificationRepo repositories.NotificationRepository
	db               database.DB
	log              logger.Logger
}

type NotificationControllerInterface interface {
	List(ctx context.Context, user types.AuthUser) ([]Notification, error)
	MarkRead(ctx context.Context, user types.AuthUser, id uuid.UUID) error
}

func New(repos repositories.Repository, db database.DB) NotificationControllerInterface {
	return &NotificationController{
		notificationRepo: repos.Notification,
		db:               db,
		log:              logger.New("notificationController"),
	}
}

// List returns notifications addressed to the caller in their current role, newest first.
func (c *NotificationController) List(ctx context.Context, user types.AuthUser) ([]Notification, error) {
	return c.notificationRepo.ListForRecipient(ctx, c.db.SQLWithContext(ctx), user.ID, UserRole(user.Role))
}

func (c *NotificationController) MarkRead(ctx context.Context, user types.AuthUser, id uuid.UUID) error {
	log := c.log.Function("MarkRead").TraceFromContext(ctx)

	updated, err := c.notificationRepo.MarkRead(ctx, c.db.SQLWithContext(ctx), id, user.ID)
	if err != nil {
		return err
	}
	if !updated {
		return log.ErrorWithType(types.ErrNotFound, "Notification not found.")
	}

	return nil
}
