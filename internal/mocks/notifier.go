package mocks

import (
	"context"

	"cleanhub/internal/events"
	. "cleanhub/internal/models"
	"cleanhub/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notice services.Notice) (*Notification, error) {
	args := m.Called(ctx, notice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Notification), args.Error(1)
}

func (m *MockNotifier) NotifyAll(ctx context.Context, recipientIDs []uuid.UUID, notice services.Notice) error {
	args := m.Called(ctx, recipientIDs, notice)
	return args.Error(0)
}

func (m *MockNotifier) PushToUser(ctx context.Context, userID uuid.UUID, message services.PushMessage) {
	m.Called(ctx, userID, message)
}

func (m *MockNotifier) SubscribeCleaner(ctx context.Context, token string) {
	m.Called(ctx, token)
}

func (m *MockNotifier) Publish(ctx context.Context, userID uuid.UUID, eventType events.MessageType, data map[string]any) {
	m.Called(ctx, userID, eventType, data)
}
