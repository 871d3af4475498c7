package services

import (
	"context"

	"cleanhub/internal/events"
	"cleanhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	args := m.Called(ctx, tx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, tx *gorm.DB, notifications []models.Notification) error {
	args := m.Called(ctx, tx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForRecipient(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, role models.UserRole) ([]models.Notification, error) {
	args := m.Called(ctx, tx, recipientID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, tx *gorm.DB, id, recipientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, id, recipientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) ExistsForBooking(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, notificationType models.NotificationType) (bool, error) {
	args := m.Called(ctx, tx, bookingID, notificationType)
	return args.Bool(0), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *models.LoggedInUser) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role models.UserRole) (bool, error) {
	args := m.Called(ctx, tx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context, tx *gorm.DB) ([]models.LoggedInUser, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoggedInUser), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role models.UserRole) (bool, error) {
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

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) SendToToken(ctx context.Context, token string, message PushMessage) error {
	args := m.Called(ctx, token, message)
	return args.Error(0)
}

func (m *MockPusher) SendToTopic(ctx context.Context, topic string, message PushMessage) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockPusher) SubscribeToTopic(ctx context.Context, token string, topic string) error {
	args := m.Called(ctx, token, topic)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishToUser(userID uuid.UUID, eventType events.MessageType, data map[string]any) error {
	args := m.Called(userID, eventType, data)
	return args.Error(0)
}
