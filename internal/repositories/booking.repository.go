package repositories

import (
	"context"
	"time"

	. "cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transition is a conditional status write. It only applies when the booking is
// currently in one of From, owned by CleanerID when set, and Active when
// OnlyActive is set.
type Transition struct {
	BookingID  uuid.UUID
	From       []BookingStatus
	CleanerID  *uuid.UUID
	OnlyActive bool
	Updates    map[string]any
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *Booking) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Booking, error)
	GetForOwner(ctx context.Context, tx *gorm.DB, id, ownerID uuid.UUID) (*Booking, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]Booking, error)
	ListPendingForServices(ctx context.Context, tx *gorm.DB, services []string) ([]Booking, error)
	ListByCleaner(ctx context.Context, tx *gorm.DB, cleanerID uuid.UUID) ([]Booking, error)
	ListUpcomingAssigned(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]Booking, error)
	Transition(ctx context.Context, tx *gorm.DB, t Transition) (bool, error)
	AssignCleaner(ctx context.Context, tx *gorm.DB, bookingID, cleanerID uuid.UUID) (bool, error)
}

type bookingRepository struct {
	log logger.Logger
}

func NewBookingRepository() BookingRepository {
	return &bookingRepository{
		log: logger.New("bookingRepository"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *Booking) error {
	log := r.log.Function("Create")

	if err := gorm.G[Booking](tx).Create(ctx, booking); err != nil {
		return log.Err("failed to create booking", err, "propertyID", booking.PropertyID)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Booking, error) {
	log := r.log.Function("GetByID")

	booking, err := gorm.G[Booking](tx).
		Preload("Property", nil).
		Preload("Property.Address", nil).
		Where("id = ?", id).
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to get booking", err, "bookingID", id)
	}

	return &booking, nil
}

func (r *bookingRepository) GetForOwner(
	ctx context.Context,
	tx *gorm.DB,
	id, ownerID uuid.UUID,
) (*Booking, error) {
	log := r.log.Function("GetForOwner")

	var booking Booking
	err := tx.WithContext(ctx).
		Preload("Property.Address").
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("bookings.id = ? AND properties.owner_id = ?", id, ownerID).
		First(&booking).Error
	if err != nil {
		return nil, log.Err("failed to get booking for owner", err, "bookingID", id, "ownerID", ownerID)
	}

	return &booking, nil
}

func (r *bookingRepository) ListByOwner(
	ctx context.Context,
	tx *gorm.DB,
	ownerID uuid.UUID,
) ([]Booking, error) {
	log := r.log.Function("ListByOwner")

	var bookings []Booking
	err := tx.WithContext(ctx).
		Preload("Property.Address").
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("bookings.cleaning_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, log.Err("failed to list bookings for owner", err, "ownerID", ownerID)
	}

	return bookings, nil
}

func (r *bookingRepository) ListPendingForServices(
	ctx context.Context,
	tx *gorm.DB,
	services []string,
) ([]Booking, error) {
	log := r.log.Function("ListPendingForServices")

	if len(services) == 0 {
		return []Booking{}, nil
	}

	bookings, err := gorm.G[Booking](tx).
		Preload("Property", nil).
		Preload("Property.Address", nil).
		Where("status = ? AND booking_status = ? AND cleaning_type IN ?",
			StatusActive, BookingPending, services).
		Order("cleaning_time ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list pending bookings", err)
	}

	return bookings, nil
}

func (r *bookingRepository) ListByCleaner(
	ctx context.Context,
	tx *gorm.DB,
	cleanerID uuid.UUID,
) ([]Booking, error) {
	log := r.log.Function("ListByCleaner")

	var bookings []Booking
	err := tx.WithContext(ctx).
		Preload("Property.Address").
		Joins("JOIN cleaner_bookings ON cleaner_bookings.booking_id = bookings.id").
		Where("cleaner_bookings.cleaner_id = ?", cleanerID).
		Order("bookings.cleaning_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, log.Err("failed to list cleaner bookings", err, "cleanerID", cleanerID)
	}

	return bookings, nil
}

// ListUpcomingAssigned returns active assigned bookings starting in [from, to).
func (r *bookingRepository) ListUpcomingAssigned(
	ctx context.Context,
	tx *gorm.DB,
	from, to time.Time,
) ([]Booking, error) {
	log := r.log.Function("ListUpcomingAssigned")

	bookings, err := gorm.G[Booking](tx).
		Where("status = ? AND booking_status IN ? AND cleaner_id IS NOT NULL AND cleaning_time >= ? AND cleaning_time < ?",
			StatusActive,
			[]BookingStatus{BookingInProgress, BookingRescheduled},
			from,
			to,
		).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list upcoming bookings", err, "from", from, "to", to)
	}

	return bookings, nil
}

// Transition reports false, with no error, when the guard did not match.
func (r *bookingRepository) Transition(ctx context.Context, tx *gorm.DB, t Transition) (bool, error) {
	log := r.log.Function("Transition")

	query := tx.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND booking_status IN ?", t.BookingID, t.From)
	if t.CleanerID != nil {
		query = query.Where("cleaner_id = ?", *t.CleanerID)
	}
	if t.OnlyActive {
		query = query.Where("status = ?", StatusActive)
	}

	result := query.Updates(t.Updates)
	if result.Error != nil {
		return false, log.Err("failed to transition booking", result.Error, "bookingID", t.BookingID)
	}

	return result.RowsAffected == 1, nil
}

// AssignCleaner claims an active pending booking for one cleaner. At most one
// caller wins.
func (r *bookingRepository) AssignCleaner(
	ctx context.Context,
	tx *gorm.DB,
	bookingID, cleanerID uuid.UUID,
) (bool, error) {
	log := r.log.Function("AssignCleaner")

	won, err := r.Transition(ctx, tx, Transition{
		BookingID:  bookingID,
		From:       []BookingStatus{BookingPending},
		OnlyActive: true,
		Updates: map[string]any{
			"booking_status": BookingInProgress,
			"cleaner_id":     cleanerID,
		},
	})
	if err != nil || !won {
		return won, err
	}

	link := CleanerBooking{CleanerID: cleanerID, BookingID: bookingID}
	if err := tx.WithContext(ctx).Create(&link).Error; err != nil {
		return false, log.Err("failed to link cleaner to booking", err,
			"bookingID", bookingID, "cleanerID", cleanerID)
	}

	return true, nil
}
