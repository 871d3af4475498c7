package bookingController

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cleanhub/config"
	"cleanhub/internal/database"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/types"
	"cleanhub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingController struct {
	bookingRepo      repositories.BookingRepository
	propertyRepo     repositories.PropertyRepository
	addressRepo      repositories.AddressRepository
	cleanerRepo      repositories.CleanerRepository
	userRepo         repositories.UserRepository
	cleaningTypeRepo repositories.CleaningTypeRepository
	transaction      *services.TransactionService
	notifier         services.Notifier
	matching         *services.MatchingService
	distance         *services.DistanceService
	db               database.DB
	Config           config.Config
	log              logger.Logger
}

type CreateBookingRequest struct {
	PropertyID         *uuid.UUID      `json:"propertyId,omitempty"`
	Type               string          `json:"type"`
	Images             []string        `json:"images"`
	CleaningType       ServiceType     `json:"cleaningType"`
	CleaningTime       string          `json:"cleaningTime"`
	NumberOfRooms      int             `json:"numberOfRooms"`
	NumberOfBathrooms  int             `json:"numberOfBathrooms"`
	CleanerPreferences string          `json:"cleanerPreferences"`
	StaffingType       StaffingType    `json:"staffingType"`
	ChecklistDetails   *Checklist      `json:"checklistDetails,omitempty"`
	Price              decimal.Decimal `json:"price"`

	// Used to create the homeowner's first property when none exists.
	NameOfProperty string       `json:"nameOfProperty"`
	PropertyType   PropertyType `json:"propertyType"`
	Address        string       `json:"address"`
	Street         string       `json:"street"`
	City           string       `json:"city"`
	State          string       `json:"state"`
	Country        string       `json:"country"`
	ZipCode        string       `json:"zipCode"`
}

type CleaningTypeRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type BookingControllerInterface interface {
	CreateBooking(ctx context.Context, user types.AuthUser, request *CreateBookingRequest) (*Booking, error)
	ListOwnerBookings(ctx context.Context, user types.AuthUser) ([]Booking, error)
	NearbyBookings(ctx context.Context, user types.AuthUser) ([]NearbyBooking, error)
	CleanerBookings(ctx context.Context, user types.AuthUser) ([]Booking, error)
	CleanerAction(ctx context.Context, user types.AuthUser, request *ActionRequest) (*ActionResult, error)
	HomeOwnerAction(ctx context.Context, user types.AuthUser, request *ActionRequest) (*ActionResult, error)
	ListCleaningTypes(ctx context.Context) ([]CleaningType, error)
	CreateCleaningType(ctx context.Context, request *CleaningTypeRequest) (*CleaningType, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) BookingControllerInterface {
	return &BookingController{
		bookingRepo:      repos.Booking,
		propertyRepo:     repos.Property,
		addressRepo:      repos.Address,
		cleanerRepo:      repos.Cleaner,
		userRepo:         repos.User,
		cleaningTypeRepo: repos.CleaningType,
		transaction:      services.Transaction,
		notifier:         services.Notification,
		matching:         services.Matching,
		distance:         services.Distance,
		db:               db,
		Config:           config,
		log:              logger.New("bookingController"),
	}
}

func (c *BookingController) CreateBooking(
	ctx context.Context,
	user types.AuthUser,
	request *CreateBookingRequest,
) (*Booking, error) {
	log := c.log.Function("CreateBooking").TraceFromContext(ctx)

	if !UserRole(user.Role).OwnsProperties() {
		return nil, log.ErrorWithType(types.ErrForbidden, "Only homeowners and property managers can create bookings.")
	}

	if request.CleaningType == "" {
		return nil, log.ErrorWithType(types.ErrValidation, "cleaningType is required")
	}
	if !slices.Contains(ServiceTypes, request.CleaningType) {
		return nil, log.ErrorWithType(types.ErrValidation, "Invalid cleaningType.")
	}
	if strings.TrimSpace(request.CleaningTime) == "" {
		return nil, log.ErrorWithType(types.ErrValidation, "cleaningTime is required")
	}
	if request.StaffingType != "" && !slices.Contains(StaffingTypes, request.StaffingType) {
		return nil, log.ErrorWithType(types.ErrValidation, "Invalid staffingType.")
	}

	cleaningTime, err := utils.ParseTime(request.CleaningTime, c.Config.Location())
	if err != nil {
		return nil, log.ErrorWithType(types.ErrValidation, "Invalid cleaningTime.")
	}

	var booking *Booking
	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		property, err := c.resolveProperty(ctx, tx, user, request)
		if err != nil {
			return err
		}

		booking = &Booking{
			PropertyID:         property.ID,
			Type:               request.Type,
			Images:             request.Images,
			CleaningType:       request.CleaningType,
			CleaningTime:       cleaningTime,
			NumberOfRooms:      request.NumberOfRooms,
			NumberOfBathrooms:  request.NumberOfBathrooms,
			CleanerPreferences: request.CleanerPreferences,
			StaffingType:       request.StaffingType,
			ChecklistDetails:   request.ChecklistDetails,
			Price:              request.Price,
			PaymentStatus:      PaymentPending,
			Status:             StatusActive,
			BookingStatus:      BookingPending,
		}
		if booking.NumberOfRooms == 0 {
			booking.NumberOfRooms = property.NumberOfRooms
		}
		if booking.NumberOfBathrooms == 0 {
			booking.NumberOfBathrooms = property.NumberOfBathrooms
		}

		if err := c.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		booking.Property = property
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Booking created", "bookingID", booking.ID, "ownerID", user.ID)

	c.announceBooking(ctx, user, booking)

	return booking, nil
}

// resolveProperty picks the property a new booking is attached to. A homeowner
// with no properties gets one built from the address in the request.
func (c *BookingController) resolveProperty(
	ctx context.Context,
	tx *gorm.DB,
	user types.AuthUser,
	request *CreateBookingRequest,
) (*Property, error) {
	log := c.log.Function("resolveProperty").TraceFromContext(ctx)
	role := UserRole(user.Role)

	if request.PropertyID != nil {
		property, err := c.propertyRepo.GetOwned(ctx, tx, *request.PropertyID, user.ID)
		if err != nil {
			if types.IsNotFound(err) {
				return nil, log.ErrorWithType(types.ErrNotFound, "Property not found.")
			}
			return nil, err
		}
		return property, nil
	}

	if role == RolePropertyManager {
		return nil, log.ErrorWithType(types.ErrNotFound, "Property not found.")
	}

	property, err := c.propertyRepo.FirstByOwner(ctx, tx, user.ID)
	if err == nil {
		return property, nil
	}
	if !types.IsNotFound(err) {
		return nil, err
	}

	if strings.TrimSpace(request.City) == "" || strings.TrimSpace(request.State) == "" {
		return nil, log.ErrorWithType(types.ErrValidation, "A property or address is required.")
	}

	address := &Address{
		Address: request.Address,
		Street:  request.Street,
		City:    request.City,
		State:   request.State,
		Country: request.Country,
		ZipCode: request.ZipCode,
	}
	if err := c.addressRepo.Create(ctx, tx, address); err != nil {
		return nil, err
	}

	name := request.NameOfProperty
	if name == "" {
		name = fmt.Sprintf("%s Property - %s", role, user.ID)
	}

	property = &Property{
		OwnerID:           user.ID,
		AddressID:         address.ID,
		Type:              request.PropertyType,
		NameOfProperty:    name,
		NumberOfUnits:     1,
		NumberOfRooms:     request.NumberOfRooms,
		NumberOfBathrooms: request.NumberOfBathrooms,
		Status:            StatusActive,
	}
	if err := c.propertyRepo.Create(ctx, tx, property); err != nil {
		return nil, err
	}
	property.Address = address

	log.Info("Created property for booking", "propertyID", property.ID, "ownerID", user.ID)
	return property, nil
}

func (c *BookingController) announceBooking(ctx context.Context, user types.AuthUser, booking *Booking) {
	log := c.log.Function("announceBooking").TraceFromContext(ctx)

	cleanerIDs, err := c.userRepo.ListIDsByRole(ctx, c.db.SQLWithContext(ctx), RoleCleaner)
	if err != nil {
		log.Warn("failed to load cleaners for new booking", "bookingID", booking.ID, "error", err)
		return
	}

	err = c.notifier.NotifyAll(ctx, cleanerIDs, services.Notice{
		RecipientRole: RoleCleaner,
		SenderID:      &user.ID,
		Type:          NotificationNewBooking,
		Message:       fmt.Sprintf("A new %s booking is available", strings.ToLower(strings.ReplaceAll(string(booking.CleaningType), "_", " "))),
		BookingID:     &booking.ID,
	})
	if err != nil {
		log.Warn("failed to notify cleaners of new booking", "bookingID", booking.ID, "error", err)
	}
}

func (c *BookingController) ListOwnerBookings(ctx context.Context, user types.AuthUser) ([]Booking, error) {
	log := c.log.Function("ListOwnerBookings").TraceFromContext(ctx)

	bookings, err := c.bookingRepo.ListByOwner(ctx, c.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		return nil, log.Err("failed to list bookings", err, "ownerID", user.ID)
	}

	return bookings, nil
}

func (c *BookingController) cleanerFor(ctx context.Context, user types.AuthUser) (*Cleaner, error) {
	log := c.log.Function("cleanerFor").TraceFromContext(ctx)

	cleaner, err := c.cleanerRepo.GetByUserID(ctx, c.db.SQLWithContext(ctx), user.ID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "Cleaner profile not found.")
		}
		return nil, err
	}

	return cleaner, nil
}

// NearbyBookings lists pending bookings that fit the cleaner's preferences,
// nearest first.
func (c *BookingController) NearbyBookings(ctx context.Context, user types.AuthUser) ([]NearbyBooking, error) {
	log := c.log.Function("NearbyBookings").TraceFromContext(ctx)

	cleaner, err := c.cleanerFor(ctx, user)
	if err != nil {
		return nil, err
	}

	db := c.db.SQLWithContext(ctx)

	ignored, err := c.cleanerRepo.GetIgnoredBookingIDs(ctx, db, cleaner.ID)
	if err != nil {
		return nil, err
	}

	candidates, err := c.bookingRepo.ListPendingForServices(ctx, db, cleaner.Services)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return nil, log.ErrorWithType(types.ErrNotFound, "No bookings available at this time.")
	}

	matched := c.matching.Filter(cleaner, candidates, ignored)
	if len(matched) == 0 {
		return nil, log.ErrorWithType(types.ErrNotFound, "No bookings match your preferences.")
	}

	var origin string
	if cleaner.User != nil {
		origin = cleaner.User.Address.OriginString()
	}

	log.Debug("Matched bookings", "cleanerID", cleaner.ID, "candidates", len(candidates), "matched", len(matched))

	return c.distance.Annotate(ctx, origin, matched), nil
}

func (c *BookingController) CleanerBookings(ctx context.Context, user types.AuthUser) ([]Booking, error) {
	cleaner, err := c.cleanerFor(ctx, user)
	if err != nil {
		return nil, err
	}

	return c.bookingRepo.ListByCleaner(ctx, c.db.SQLWithContext(ctx), cleaner.ID)
}

func (c *BookingController) ListCleaningTypes(ctx context.Context) ([]CleaningType, error) {
	return c.cleaningTypeRepo.List(ctx, c.db.SQLWithContext(ctx))
}

func (c *BookingController) CreateCleaningType(
	ctx context.Context,
	request *CleaningTypeRequest,
) (*CleaningType, error) {
	log := c.log.Function("CreateCleaningType").TraceFromContext(ctx)

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, log.ErrorWithType(types.ErrValidation, "name is required")
	}

	cleaningType := &CleaningType{
		Name:        name,
		Description: request.Description,
		Images:      request.Images,
	}

	if err := c.cleaningTypeRepo.Create(ctx, c.db.SQLWithContext(ctx), cleaningType); err != nil {
		if types.IsDuplicate(err) {
			return nil, log.ErrorWithType(types.ErrConflict, "Cleaning type already exists.")
		}
		return nil, err
	}

	return cleaningType, nil
}
