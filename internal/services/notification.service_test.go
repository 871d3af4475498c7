package services

import (
	"context"
	"errors"
	"testing"

	"cleanhub/internal/database"
	"cleanhub/internal/events"
	"cleanhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	service       *NotificationService
	notifications *MockNotificationRepository
	sessions      *MockSessionRepository
	push          *MockPusher
	bus           *MockPublisher
}

func newNotificationFixture(t *testing.T) notificationFixture {
	gormDB, _ := setupTestDB(t)
	f := notificationFixture{
		notifications: &MockNotificationRepository{},
		sessions:      &MockSessionRepository{},
		push:          &MockPusher{},
		bus:           &MockPublisher{},
	}
	f.service = NewNotificationService(
		database.DB{SQL: gormDB},
		f.notifications,
		f.sessions,
		f.push,
		f.bus,
	)
	return f
}

func TestNotificationService_Notify_StoresPushesAndPublishes(t *testing.T) {
	f := newNotificationFixture(t)
	recipient := uuid.New()
	bookingID := uuid.New()

	f.notifications.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == recipient &&
			n.NotificationType == models.NotificationBookingAccepted &&
			n.RecipientType == models.RoleHomeOwner
	})).Return(nil)
	f.sessions.On("TokensForUser", mock.Anything, mock.Anything, recipient).Return([]string{"device-1"}, nil)
	f.push.On("SendToToken", mock.Anything, "device-1", mock.MatchedBy(func(m PushMessage) bool {
		return m.Title == "Booking Accepted" && m.Data["bookingId"] == bookingID.String()
	})).Return(nil)
	f.bus.On("PublishToUser", recipient, events.NOTIFICATION, mock.Anything).Return(nil)

	notification, err := f.service.Notify(context.Background(), Notice{
		RecipientID:   recipient,
		RecipientRole: models.RoleHomeOwner,
		Type:          models.NotificationBookingAccepted,
		Message:       "Your booking has been accepted by the cleaner",
		BookingID:     &bookingID,
	})

	require.NoError(t, err)
	assert.Equal(t, "Your booking has been accepted by the cleaner", notification.Message)
	f.notifications.AssertExpectations(t)
	f.push.AssertExpectations(t)
	f.bus.AssertExpectations(t)
}

func TestNotificationService_Notify_PushFailureIsNotFatal(t *testing.T) {
	f := newNotificationFixture(t)
	recipient := uuid.New()

	f.notifications.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.sessions.On("TokensForUser", mock.Anything, mock.Anything, recipient).Return([]string{"device-1"}, nil)
	f.push.On("SendToToken", mock.Anything, "device-1", mock.Anything).Return(errors.New("fcm unavailable"))
	f.bus.On("PublishToUser", recipient, events.NOTIFICATION, mock.Anything).Return(errors.New("valkey down"))

	_, err := f.service.Notify(context.Background(), Notice{
		RecipientID: recipient,
		Type:        models.NotificationBookingCancelled,
	})

	assert.NoError(t, err)
}

func TestNotificationService_Notify_NoTokenSkipsPush(t *testing.T) {
	f := newNotificationFixture(t)
	recipient := uuid.New()

	f.notifications.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.sessions.On("TokensForUser", mock.Anything, mock.Anything, recipient).Return([]string{}, nil)
	f.bus.On("PublishToUser", recipient, events.NOTIFICATION, mock.Anything).Return(nil)

	_, err := f.service.Notify(context.Background(), Notice{RecipientID: recipient})

	assert.NoError(t, err)
	f.push.AssertNotCalled(t, "SendToToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_Notify_StoreFailureIsReturned(t *testing.T) {
	f := newNotificationFixture(t)

	f.notifications.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.service.Notify(context.Background(), Notice{RecipientID: uuid.New()})

	assert.Error(t, err)
	f.sessions.AssertNotCalled(t, "TokensForUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_NotifyAll_CleanersUseTopic(t *testing.T) {
	f := newNotificationFixture(t)
	cleaners := []uuid.UUID{uuid.New(), uuid.New()}
	bookingID := uuid.New()

	f.notifications.On("CreateBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(rows []models.Notification) bool {
		return len(rows) == 2 && rows[0].RecipientID == cleaners[0] && rows[1].RecipientID == cleaners[1]
	})).Return(nil)
	f.push.On("SendToTopic", mock.Anything, CLEANERS_TOPIC, mock.Anything).Return(nil)
	f.bus.On("PublishToUser", mock.Anything, events.NOTIFICATION, mock.Anything).Return(nil)

	err := f.service.NotifyAll(context.Background(), cleaners, Notice{
		RecipientRole: models.RoleCleaner,
		Type:          models.NotificationNewBooking,
		Message:       "A new booking is available",
		BookingID:     &bookingID,
	})

	require.NoError(t, err)
	f.push.AssertExpectations(t)
	f.bus.AssertNumberOfCalls(t, "PublishToUser", 2)
}

func TestNotificationService_NotifyAll_NoRecipients(t *testing.T) {
	f := newNotificationFixture(t)

	err := f.service.NotifyAll(context.Background(), nil, Notice{Type: models.NotificationNewBooking})

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleFor(t *testing.T) {
	for _, notificationType := range models.NotificationTypes {
		assert.NotEqual(t, "Notification", TitleFor(notificationType), notificationType)
	}
	assert.Equal(t, "Notification", TitleFor(models.NotificationType("Other")))
}
