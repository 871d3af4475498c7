package repositories

import (
	"context"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CleanerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, cleaner *Cleaner) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Cleaner, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*Cleaner, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
	AddIgnored(ctx context.Context, tx *gorm.DB, cleanerID, bookingID uuid.UUID) error
	GetIgnoredBookingIDs(ctx context.Context, tx *gorm.DB, cleanerID uuid.UUID) ([]uuid.UUID, error)
}

type cleanerRepository struct {
	log logger.Logger
}

func NewCleanerRepository() CleanerRepository {
	return &cleanerRepository{
		log: logger.New("cleanerRepository"),
	}
}

func (r *cleanerRepository) Create(ctx context.Context, tx *gorm.DB, cleaner *Cleaner) error {
	log := r.log.Function("Create")

	if err := gorm.G[Cleaner](tx).Create(ctx, cleaner); err != nil {
		return log.Err("failed to create cleaner", err, "userID", cleaner.UserID)
	}

	return nil
}

func (r *cleanerRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Cleaner, error) {
	log := r.log.Function("GetByID")

	cleaner, err := gorm.G[Cleaner](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, log.Err("failed to get cleaner", err, "cleanerID", id)
	}

	return &cleaner, nil
}

func (r *cleanerRepository) GetByUserID(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (*Cleaner, error) {
	log := r.log.Function("GetByUserID")

	cleaner, err := gorm.G[Cleaner](tx).
		Preload("User.Address", nil).
		Where("user_id = ?", userID).
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to get cleaner", err, "userID", userID)
	}

	return &cleaner, nil
}

func (r *cleanerRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	updates map[string]any,
) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Model(&Cleaner{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return log.Err("failed to update cleaner", err, "cleanerID", id)
	}

	return nil
}

// AddIgnored is idempotent; ignoring the same booking twice keeps one row.
func (r *cleanerRepository) AddIgnored(
	ctx context.Context,
	tx *gorm.DB,
	cleanerID, bookingID uuid.UUID,
) error {
	log := r.log.Function("AddIgnored")

	ignored := CleanerIgnoredBooking{CleanerID: cleanerID, BookingID: bookingID}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ignored).Error
	if err != nil {
		return log.Err("failed to record ignored booking", err,
			"cleanerID", cleanerID, "bookingID", bookingID)
	}

	return nil
}

func (r *cleanerRepository) GetIgnoredBookingIDs(
	ctx context.Context,
	tx *gorm.DB,
	cleanerID uuid.UUID,
) ([]uuid.UUID, error) {
	log := r.log.Function("GetIgnoredBookingIDs")

	var ids []uuid.UUID
	err := tx.WithContext(ctx).
		Model(&CleanerIgnoredBooking{}).
		Where("cleaner_id = ?", cleanerID).
		Pluck("booking_id", &ids).Error
	if err != nil {
		return nil, log.Err("failed to get ignored bookings", err, "cleanerID", cleanerID)
	}

	return ids, nil
}
