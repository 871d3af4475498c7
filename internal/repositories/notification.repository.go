package repositories

import (
	"context"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *Notification) error
	CreateBatch(ctx context.Context, tx *gorm.DB, notifications []Notification) error
	ListForRecipient(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, role UserRole) ([]Notification, error)
	MarkRead(ctx context.Context, tx *gorm.DB, id, recipientID uuid.UUID) (bool, error)
	ExistsForBooking(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, notificationType NotificationType) (bool, error)
}

type notificationRepository struct {
	log logger.Logger
}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{
		log: logger.New("notificationRepository"),
	}
}

func (r *notificationRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	notification *Notification,
) error {
	log := r.log.Function("Create")

	if err := gorm.G[Notification](tx).Create(ctx, notification); err != nil {
		return log.Err("failed to create notification", err, "recipientID", notification.RecipientID)
	}

	return nil
}

func (r *notificationRepository) CreateBatch(
	ctx context.Context,
	tx *gorm.DB,
	notifications []Notification,
) error {
	log := r.log.Function("CreateBatch")

	if len(notifications) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).CreateInBatches(&notifications, 100).Error; err != nil {
		return log.Err("failed to create notifications", err, "count", len(notifications))
	}

	return nil
}

func (r *notificationRepository) ListForRecipient(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uuid.UUID,
	role UserRole,
) ([]Notification, error) {
	log := r.log.Function("ListForRecipient")

	notifications, err := gorm.G[Notification](tx).
		Where("recipient_id = ? AND recipient_type = ?", recipientID, role).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list notifications", err, "recipientID", recipientID)
	}

	return notifications, nil
}

// MarkRead reports false when the notification does not belong to the recipient.
func (r *notificationRepository) MarkRead(
	ctx context.Context,
	tx *gorm.DB,
	id, recipientID uuid.UUID,
) (bool, error) {
	log := r.log.Function("MarkRead")

	result := tx.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return false, log.Err("failed to mark notification read", result.Error, "notificationID", id)
	}

	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) ExistsForBooking(
	ctx context.Context,
	tx *gorm.DB,
	bookingID uuid.UUID,
	notificationType NotificationType,
) (bool, error) {
	log := r.log.Function("ExistsForBooking")

	var count int64
	err := tx.WithContext(ctx).
		Model(&Notification{}).
		Where("booking_id = ? AND notification_type = ?", bookingID, notificationType).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check notification", err, "bookingID", bookingID)
	}

	return count > 0, nil
}
