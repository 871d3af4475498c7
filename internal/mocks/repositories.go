// Package mocks holds testify mocks of the repository and notifier interfaces.
package mocks

import (
	"context"
	"time"

	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepository) GetForOwner(ctx context.Context, tx *gorm.DB, id, ownerID uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, tx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]Booking, error) {
	args := m.Called(ctx, tx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepository) ListPendingForServices(ctx context.Context, tx *gorm.DB, services []string) ([]Booking, error) {
	args := m.Called(ctx, tx, services)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCleaner(ctx context.Context, tx *gorm.DB, cleanerID uuid.UUID) ([]Booking, error) {
	args := m.Called(ctx, tx, cleanerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepository) ListUpcomingAssigned(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]Booking, error) {
	args := m.Called(ctx, tx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepository) Transition(ctx context.Context, tx *gorm.DB, t repositories.Transition) (bool, error) {
	args := m.Called(ctx, tx, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) AssignCleaner(ctx context.Context, tx *gorm.DB, bookingID, cleanerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, bookingID, cleanerID)
	return args.Bool(0), args.Error(1)
}

type MockCleanerRepository struct {
	mock.Mock
}

func (m *MockCleanerRepository) Create(ctx context.Context, tx *gorm.DB, cleaner *Cleaner) error {
	args := m.Called(ctx, tx, cleaner)
	return args.Error(0)
}

func (m *MockCleanerRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Cleaner, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cleaner), args.Error(1)
}

func (m *MockCleanerRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*Cleaner, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cleaner), args.Error(1)
}

func (m *MockCleanerRepository) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	args := m.Called(ctx, tx, id, updates)
	return args.Error(0)
}

func (m *MockCleanerRepository) AddIgnored(ctx context.Context, tx *gorm.DB, cleanerID, bookingID uuid.UUID) error {
	args := m.Called(ctx, tx, cleanerID, bookingID)
	return args.Error(0)
}

func (m *MockCleanerRepository) GetIgnoredBookingIDs(ctx context.Context, tx *gorm.DB, cleanerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tx, cleanerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error) {
	args := m.Called(ctx, tx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	args := m.Called(ctx, tx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	args := m.Called(ctx, tx, id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) ListIDsByRole(ctx context.Context, tx *gorm.DB, role UserRole) ([]uuid.UUID, error) {
	args := m.Called(ctx, tx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, tx *gorm.DB, address *Address) error {
	args := m.Called(ctx, tx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	args := m.Called(ctx, tx, id, updates)
	return args.Error(0)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, tx *gorm.DB, property *Property) error {
	args := m.Called(ctx, tx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Property, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

func (m *MockPropertyRepository) GetOwned(ctx context.Context, tx *gorm.DB, id, ownerID uuid.UUID) (*Property, error) {
	args := m.Called(ctx, tx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

func (m *MockPropertyRepository) FirstByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*Property, error) {
	args := m.Called(ctx, tx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

func (m *MockPropertyRepository) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]Property, error) {
	args := m.Called(ctx, tx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Property), args.Error(1)
}

func (m *MockPropertyRepository) SetImages(ctx context.Context, tx *gorm.DB, id uuid.UUID, images []string) error {
	args := m.Called(ctx, tx, id, images)
	return args.Error(0)
}

type MockCleaningTypeRepository struct {
	mock.Mock
}

func (m *MockCleaningTypeRepository) List(ctx context.Context, tx *gorm.DB) ([]CleaningType, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CleaningType), args.Error(1)
}

func (m *MockCleaningTypeRepository) Create(ctx context.Context, tx *gorm.DB, cleaningType *CleaningType) error {
	args := m.Called(ctx, tx, cleaningType)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, tx *gorm.DB, notification *Notification) error {
	args := m.Called(ctx, tx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, tx *gorm.DB, notifications []Notification) error {
	args := m.Called(ctx, tx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForRecipient(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, role UserRole) ([]Notification, error) {
	args := m.Called(ctx, tx, recipientID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, tx *gorm.DB, id, recipientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, id, recipientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) ExistsForBooking(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, notificationType NotificationType) (bool, error) {
	args := m.Called(ctx, tx, bookingID, notificationType)
	return args.Bool(0), args.Error(1)
}

type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) FindBetween(ctx context.Context, tx *gorm.DB, a, b uuid.UUID) (*Conversation, error) {
	args := m.Called(ctx, tx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, a, b uuid.UUID) (*Conversation, error) {
	args := m.Called(ctx, tx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]Conversation, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Conversation), args.Error(1)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, tx *gorm.DB, message *Message) error {
	args := m.Called(ctx, tx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, before *time.Time, limit int) ([]Message, error) {
	args := m.Called(ctx, tx, conversationID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockMessageRepository) MarkDelivered(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, senderIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tx, recipientID, senderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, tx *gorm.DB, recipientID, senderID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tx, recipientID, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockMessageRepository) LatestForConversations(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) (map[uuid.UUID]Message, error) {
	args := m.Called(ctx, tx, conversationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]Message), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *LoggedInUser) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role UserRole) (bool, error) {
	args := m.Called(ctx, tx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context, tx *gorm.DB) ([]LoggedInUser, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LoggedInUser), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role UserRole) (bool, error) {
	args := m.Called(ctx, tx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) TokensForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var (
	_ repositories.UserRepository         = (*MockUserRepository)(nil)
	_ repositories.AddressRepository      = (*MockAddressRepository)(nil)
	_ repositories.CleanerRepository      = (*MockCleanerRepository)(nil)
	_ repositories.PropertyRepository     = (*MockPropertyRepository)(nil)
	_ repositories.BookingRepository      = (*MockBookingRepository)(nil)
	_ repositories.CleaningTypeRepository = (*MockCleaningTypeRepository)(nil)
	_ repositories.NotificationRepository = (*MockNotificationRepository)(nil)
	_ repositories.ConversationRepository = (*MockConversationRepository)(nil)
	_ repositories.MessageRepository      = (*MockMessageRepository)(nil)
	_ repositories.SessionRepository      = (*MockSessionRepository)(nil)
	_ services.Notifier                   = (*MockNotifier)(nil)
)
