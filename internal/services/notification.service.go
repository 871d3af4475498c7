package services

import (
	"context"

	"cleanhub/internal/database"
	"cleanhub/internal/events"
	"cleanhub/internal/models"
	"cleanhub/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// Notice describes one notification before it is stored.
type Notice struct {
	RecipientID   uuid.UUID
	RecipientRole models.UserRole
	SenderID      *uuid.UUID
	Type          models.NotificationType
	Message       string
	BookingID     *uuid.UUID
}

// Notifier is what controllers use to reach users outside the request.
type Notifier interface {
	Notify(ctx context.Context, notice Notice) (*models.Notification, error)
	NotifyAll(ctx context.Context, recipientIDs []uuid.UUID, notice Notice) error
	PushToUser(ctx context.Context, userID uuid.UUID, message PushMessage)
	SubscribeCleaner(ctx context.Context, token string)
	Publish(ctx context.Context, userID uuid.UUID, eventType events.MessageType, data map[string]any)
}

// NotificationService stores notifications and fans them out to push and
// websocket delivery. Only the store step can fail a call.
type NotificationService struct {
	db            database.DB
	notifications repositories.NotificationRepository
	sessions      repositories.SessionRepository
	push          Pusher
	bus           events.Publisher
	log           logger.Logger
}

func NewNotificationService(
	db database.DB,
	notifications repositories.NotificationRepository,
	sessions repositories.SessionRepository,
	push Pusher,
	bus events.Publisher,
) *NotificationService {
	return &NotificationService{
		db:            db,
		notifications: notifications,
		sessions:      sessions,
		push:          push,
		bus:           bus,
		log:           logger.New("notificationService"),
	}
}

func TitleFor(notificationType models.NotificationType) string {
	switch notificationType {
	case models.NotificationNewBooking:
		return "New Booking"
	case models.NotificationJobReminder:
		return "Job Reminder"
	case models.NotificationBookingAccepted:
		return "Booking Accepted"
	case models.NotificationBookingRejected:
		return "Booking Rejected"
	case models.NotificationBookingRescheduled:
		return "Booking Rescheduled"
	case models.NotificationBookingCancelled:
		return "Booking Cancelled"
	case models.NotificationBookingCompleted:
		return "Booking Completed"
	case models.NotificationBookingIgnored:
		return "Booking Ignored"
	}
	return "Notification"
}

func (n Notice) toModel() models.Notification {
	return models.Notification{
		RecipientID:      n.RecipientID,
		RecipientType:    n.RecipientRole,
		SenderID:         n.SenderID,
		Message:          n.Message,
		NotificationType: n.Type,
		BookingID:        n.BookingID,
	}
}

func pushDataFor(notification *models.Notification) map[string]string {
	data := map[string]string{
		"notificationId":   notification.ID.String(),
		"notificationType": string(notification.NotificationType),
	}
	if notification.BookingID != nil {
		data["bookingId"] = notification.BookingID.String()
	}
	return data
}

func (s *NotificationService) Notify(ctx context.Context, notice Notice) (*models.Notification, error) {
	log := s.log.Function("Notify").TraceFromContext(ctx)

	notification := notice.toModel()
	if err := s.notifications.Create(ctx, s.db.SQLWithContext(ctx), &notification); err != nil {
		return nil, log.Err("failed to store notification", err,
			"recipientID", notice.RecipientID, "type", notice.Type)
	}

	s.PushToUser(ctx, notice.RecipientID, PushMessage{
		Title: TitleFor(notice.Type),
		Body:  notice.Message,
		Data:  pushDataFor(&notification),
	})
	s.Publish(ctx, notice.RecipientID, events.NOTIFICATION, map[string]any{"notification": notification})

	return &notification, nil
}

// NotifyAll stores one row per recipient. Cleaners are reached through the
// shared topic rather than per device.
func (s *NotificationService) NotifyAll(
	ctx context.Context,
	recipientIDs []uuid.UUID,
	notice Notice,
) error {
	log := s.log.Function("NotifyAll").TraceFromContext(ctx)

	if len(recipientIDs) == 0 {
		log.Info("No recipients to notify", "type", notice.Type)
		return nil
	}

	rows := make([]models.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		row := notice
		row.RecipientID = recipientID
		rows = append(rows, row.toModel())
	}

	if err := s.notifications.CreateBatch(ctx, s.db.SQLWithContext(ctx), rows); err != nil {
		return log.Err("failed to store notifications", err, "count", len(rows), "type", notice.Type)
	}

	message := PushMessage{Title: TitleFor(notice.Type), Body: notice.Message}
	if notice.BookingID != nil {
		message.Data = map[string]string{
			"bookingId":        notice.BookingID.String(),
			"notificationType": string(notice.Type),
		}
	}

	if notice.RecipientRole == models.RoleCleaner {
		if err := s.push.SendToTopic(ctx, CLEANERS_TOPIC, message); err != nil {
			log.Warn("topic push failed", "topic", CLEANERS_TOPIC, "error", err)
		}
	}

	for i := range rows {
		s.Publish(ctx, rows[i].RecipientID, events.NOTIFICATION, map[string]any{"notification": rows[i]})
	}

	log.Info("Notified recipients", "count", len(rows), "type", notice.Type)
	return nil
}

// PushToUser pushes to every device the user is signed in on. A user with no
// session simply gets nothing.
func (s *NotificationService) PushToUser(ctx context.Context, userID uuid.UUID, message PushMessage) {
	log := s.log.Function("PushToUser").TraceFromContext(ctx)

	tokens, err := s.sessions.TokensForUser(ctx, s.db.SQLWithContext(ctx), userID)
	if err != nil {
		log.Warn("failed to load push tokens", "userID", userID, "error", err)
		return
	}

	if len(tokens) == 0 {
		log.Debug("User has no push token, skipping push", "userID", userID)
		return
	}

	for _, token := range tokens {
		if err := s.push.SendToToken(ctx, token, message); err != nil {
			log.Warn("push failed", "userID", userID, "error", err)
		}
	}
}

func (s *NotificationService) SubscribeCleaner(ctx context.Context, token string) {
	log := s.log.Function("SubscribeCleaner").TraceFromContext(ctx)

	if err := s.push.SubscribeToTopic(ctx, token, CLEANERS_TOPIC); err != nil {
		log.Warn("failed to subscribe cleaner to topic", "topic", CLEANERS_TOPIC, "error", err)
	}
}

func (s *NotificationService) Publish(
	ctx context.Context,
	userID uuid.UUID,
	eventType events.MessageType,
	data map[string]any,
) {
	if s.bus == nil {
		return
	}

	if err := s.bus.PublishToUser(userID, eventType, data); err != nil {
		s.log.Function("Publish").TraceFromContext(ctx).
			Warn("failed to publish realtime event", "userID", userID, "type", eventType, "error", err)
	}
}
