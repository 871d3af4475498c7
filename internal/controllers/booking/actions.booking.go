package bookingController

import (
	"context"
	"fmt"
	"strings"

	"cleanhub/internal/events"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/types"
	"cleanhub/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActionRequest struct {
	BookingID   uuid.UUID     `json:"bookingId"`
	Action      BookingAction `json:"action"`
	NewDatetime string        `json:"newDatetime"`
	Reason      string        `json:"reason"`
	Checklist   *Checklist    `json:"checklist,omitempty"`
}

type ActionResult struct {
	Message string   `json:"message"`
	Booking *Booking `json:"booking"`
}

var assignedStatuses = []BookingStatus{BookingInProgress, BookingRescheduled}

var cleanerNotifications = map[BookingAction]NotificationType{
	ActionAccept:     NotificationBookingAccepted,
	ActionIgnore:     NotificationBookingIgnored,
	ActionReschedule: NotificationBookingRescheduled,
	ActionCancel:     NotificationBookingRejected,
	ActionComplete:   NotificationBookingCompleted,
}

var homeOwnerNotifications = map[BookingAction]NotificationType{
	ActionReschedule: NotificationBookingRescheduled,
	ActionCancel:     NotificationBookingCancelled,
	ActionRenotify:   NotificationNewBooking,
}

func normalizeAction(action BookingAction) BookingAction {
	return BookingAction(strings.ToUpper(strings.TrimSpace(string(action))))
}

func assignedTo(booking *Booking, cleanerID uuid.UUID) bool {
	return booking.CleanerID != nil && *booking.CleanerID == cleanerID
}

// CleanerAction applies accept, ignore, reschedule, cancel or complete on
// behalf of the calling cleaner.
func (c *BookingController) CleanerAction(
	ctx context.Context,
	user types.AuthUser,
	request *ActionRequest,
) (*ActionResult, error) {
	log := c.log.Function("CleanerAction").TraceFromContext(ctx)

	if request.BookingID == uuid.Nil {
		return nil, log.ErrorWithType(types.ErrValidation, "bookingId is required")
	}
	action := normalizeAction(request.Action)

	cleaner, err := c.cleanerFor(ctx, user)
	if err != nil {
		return nil, err
	}

	booking, err := c.bookingRepo.GetByID(ctx, c.db.SQLWithContext(ctx), request.BookingID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "Booking not found.")
		}
		return nil, err
	}

	if booking.BookingStatus == BookingPending {
		switch action {
		case ActionAccept:
			err = c.accept(ctx, cleaner, booking)
		case ActionIgnore:
			err = c.cleanerRepo.AddIgnored(ctx, c.db.SQLWithContext(ctx), cleaner.ID, booking.ID)
		default:
			return nil, log.ErrorWithType(types.ErrValidation, "Only accept or ignore are allowed on pending bookings.")
		}
	} else {
		switch action {
		case ActionAccept:
			return nil, log.ErrorWithType(types.ErrValidation, "Only pending bookings can be accepted.")
		case ActionIgnore:
			return nil, log.ErrorWithType(types.ErrValidation, "Only pending bookings can be ignored.")
		case ActionReschedule:
			err = c.cleanerReschedule(ctx, cleaner, booking, request)
		case ActionCancel:
			err = c.cleanerCancel(ctx, cleaner, booking, request)
		case ActionComplete:
			err = c.complete(ctx, cleaner, booking, request)
		default:
			return nil, log.ErrorWithType(types.ErrValidation, "Invalid action.")
		}
	}
	if err != nil {
		return nil, err
	}

	log.Info("Cleaner action applied", "bookingID", booking.ID, "cleanerID", cleaner.ID, "action", action)

	c.notifyOwner(ctx, user.ID, booking, cleanerNotifications[action],
		fmt.Sprintf("Your booking has been %s by the cleaner", action.PastTense()))

	return c.result(ctx, action, booking), nil
}

func (c *BookingController) accept(ctx context.Context, cleaner *Cleaner, booking *Booking) error {
	log := c.log.Function("accept").TraceFromContext(ctx)

	return c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		won, err := c.bookingRepo.AssignCleaner(ctx, tx, booking.ID, cleaner.ID)
		if err != nil {
			return err
		}
		if !won {
			return log.ErrorWithType(types.ErrConflict, "Booking was modified by another request.")
		}
		return nil
	})
}

func (c *BookingController) cleanerReschedule(
	ctx context.Context,
	cleaner *Cleaner,
	booking *Booking,
	request *ActionRequest,
) error {
	log := c.log.Function("cleanerReschedule").TraceFromContext(ctx)

	if strings.TrimSpace(request.NewDatetime) == "" {
		return log.ErrorWithType(types.ErrValidation, "Reschedule requires a new datetime.")
	}
	if !assignedTo(booking, cleaner.ID) {
		return log.ErrorWithType(types.ErrForbidden, "You can only reschedule bookings you have accepted and are in progress.")
	}
	if !booking.BookingStatus.IsAssigned() {
		return log.ErrorWithType(types.ErrValidation, "Only in-progress bookings can be rescheduled.")
	}

	return c.reschedule(ctx, booking, &cleaner.ID, request)
}

func (c *BookingController) reschedule(
	ctx context.Context,
	booking *Booking,
	cleanerID *uuid.UUID,
	request *ActionRequest,
) error {
	log := c.log.Function("reschedule").TraceFromContext(ctx)

	cleaningTime, err := utils.ParseTime(request.NewDatetime, c.Config.Location())
	if err != nil {
		return log.ErrorWithType(types.ErrValidation, "Invalid newDatetime.")
	}

	return c.transition(ctx, repositories.Transition{
		BookingID: booking.ID,
		From:      assignedStatuses,
		CleanerID: cleanerID,
		Updates: map[string]any{
			"booking_status":    BookingRescheduled,
			"cleaning_time":     cleaningTime,
			"reschedule_reason": request.Reason,
		},
	})
}

func (c *BookingController) cleanerCancel(
	ctx context.Context,
	cleaner *Cleaner,
	booking *Booking,
	request *ActionRequest,
) error {
	log := c.log.Function("cleanerCancel").TraceFromContext(ctx)

	if !assignedTo(booking, cleaner.ID) {
		return log.ErrorWithType(types.ErrForbidden, "You can only cancel bookings you accepted.")
	}
	if booking.BookingStatus.IsTerminal() {
		return log.ErrorWithType(types.ErrValidation, "Completed or cancelled bookings cannot be changed.")
	}

	return c.cancel(ctx, booking, &cleaner.ID, request)
}

func (c *BookingController) cancel(
	ctx context.Context,
	booking *Booking,
	cleanerID *uuid.UUID,
	request *ActionRequest,
) error {
	return c.transition(ctx, repositories.Transition{
		BookingID: booking.ID,
		From:      assignedStatuses,
		CleanerID: cleanerID,
		Updates: map[string]any{
			"booking_status": BookingCancelled,
			"cancel_reason":  request.Reason,
		},
	})
}

func (c *BookingController) complete(
	ctx context.Context,
	cleaner *Cleaner,
	booking *Booking,
	request *ActionRequest,
) error {
	log := c.log.Function("complete").TraceFromContext(ctx)

	if request.Checklist.IsEmpty() {
		return log.ErrorWithType(types.ErrValidation, "Completion requires a checklist.")
	}
	if !assignedTo(booking, cleaner.ID) {
		return log.ErrorWithType(types.ErrForbidden, "You can only complete bookings you accepted.")
	}
	if !booking.BookingStatus.IsAssigned() {
		return log.ErrorWithType(types.ErrValidation, "Only in-progress bookings can be completed.")
	}

	return c.transition(ctx, repositories.Transition{
		BookingID: booking.ID,
		From:      assignedStatuses,
		CleanerID: &cleaner.ID,
		Updates: map[string]any{
			"booking_status":    BookingCompleted,
			"checklist_details": datatypes.NewJSONType(*request.Checklist),
		},
	})
}

// HomeOwnerAction reschedules, cancels or renotifies a booking on one of the
// caller's properties. All three need an assigned cleaner.
func (c *BookingController) HomeOwnerAction(
	ctx context.Context,
	user types.AuthUser,
	request *ActionRequest,
) (*ActionResult, error) {
	log := c.log.Function("HomeOwnerAction").TraceFromContext(ctx)

	if request.BookingID == uuid.Nil {
		return nil, log.ErrorWithType(types.ErrValidation, "bookingId is required")
	}
	action := normalizeAction(request.Action)

	booking, err := c.bookingRepo.GetForOwner(ctx, c.db.SQLWithContext(ctx), request.BookingID, user.ID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, log.ErrorWithType(types.ErrNotFound, "Booking not found.")
		}
		return nil, err
	}

	if booking.CleanerID == nil {
		return nil, log.ErrorWithType(types.ErrValidation, "Booking does not have an assigned cleaner to notify.")
	}

	switch action {
	case ActionReschedule:
		if strings.TrimSpace(request.NewDatetime) == "" {
			return nil, log.ErrorWithType(types.ErrValidation, "Reschedule requires a new datetime.")
		}
		if booking.BookingStatus.IsTerminal() {
			return nil, log.ErrorWithType(types.ErrValidation, "Completed or cancelled bookings cannot be changed.")
		}
		err = c.reschedule(ctx, booking, nil, request)
	case ActionCancel:
		if booking.BookingStatus.IsTerminal() {
			return nil, log.ErrorWithType(types.ErrValidation, "Completed or cancelled bookings cannot be changed.")
		}
		err = c.cancel(ctx, booking, nil, request)
	case ActionRenotify:
		if booking.BookingStatus != BookingInProgress {
			return nil, log.ErrorWithType(types.ErrValidation, "Only in-progress bookings can be renotified.")
		}
	default:
		return nil, log.ErrorWithType(types.ErrValidation, "Invalid action.")
	}
	if err != nil {
		return nil, err
	}

	log.Info("Homeowner action applied", "bookingID", booking.ID, "ownerID", user.ID, "action", action)

	message := fmt.Sprintf("A booking assigned to you has been %s by the homeowner", action.PastTense())
	if action == ActionRenotify {
		message = "Reminder: you have an upcoming booking"
	}
	c.notifyCleaner(ctx, user.ID, booking, homeOwnerNotifications[action], message)

	return c.result(ctx, action, booking), nil
}

func (c *BookingController) transition(ctx context.Context, t repositories.Transition) error {
	log := c.log.Function("transition").TraceFromContext(ctx)

	won, err := c.bookingRepo.Transition(ctx, c.db.SQLWithContext(ctx), t)
	if err != nil {
		return err
	}
	if !won {
		return log.ErrorWithType(types.ErrConflict, "Booking was modified by another request.")
	}

	return nil
}

// result re-reads the booking so the response carries the committed state.
func (c *BookingController) result(ctx context.Context, action BookingAction, booking *Booking) *ActionResult {
	updated, err := c.bookingRepo.GetByID(ctx, c.db.SQLWithContext(ctx), booking.ID)
	if err != nil {
		c.log.Function("result").TraceFromContext(ctx).
			Warn("failed to reload booking after action", "bookingID", booking.ID, "error", err)
		updated = booking
	}

	return &ActionResult{
		Message: fmt.Sprintf("Booking %s successfully.", action.PastTense()),
		Booking: updated,
	}
}

func (c *BookingController) notifyOwner(
	ctx context.Context,
	senderID uuid.UUID,
	booking *Booking,
	notificationType NotificationType,
	message string,
) {
	log := c.log.Function("notifyOwner").TraceFromContext(ctx)

	if booking.Property == nil {
		log.Warn("booking has no property loaded, owner not notified", "bookingID", booking.ID)
		return
	}

	owner, err := c.userRepo.GetByID(ctx, c.db.SQLWithContext(ctx), booking.Property.OwnerID)
	if err != nil {
		log.Warn("could not resolve booking owner", "bookingID", booking.ID, "error", err)
		return
	}

	c.send(ctx, services.Notice{
		RecipientID:   booking.Property.OwnerID,
		RecipientRole: owner.Role,
		SenderID:      &senderID,
		Type:          notificationType,
		Message:       message,
		BookingID:     &booking.ID,
	})
}

func (c *BookingController) notifyCleaner(
	ctx context.Context,
	senderID uuid.UUID,
	booking *Booking,
	notificationType NotificationType,
	message string,
) {
	log := c.log.Function("notifyCleaner").TraceFromContext(ctx)

	cleaner, err := c.cleanerRepo.GetByID(ctx, c.db.SQLWithContext(ctx), *booking.CleanerID)
	if err != nil {
		log.Warn("could not resolve assigned cleaner", "bookingID", booking.ID, "error", err)
		return
	}

	c.send(ctx, services.Notice{
		RecipientID:   cleaner.UserID,
		RecipientRole: RoleCleaner,
		SenderID:      &senderID,
		Type:          notificationType,
		Message:       message,
		BookingID:     &booking.ID,
	})
}

func (c *BookingController) send(ctx context.Context, notice services.Notice) {
	if _, err := c.notifier.Notify(ctx, notice); err != nil {
		c.log.Function("send").TraceFromContext(ctx).
			Warn("failed to notify counterparty", "bookingID", notice.BookingID, "error", err)
	}

	c.notifier.Publish(ctx, notice.RecipientID, events.BOOKING_UPDATED, map[string]any{
		"bookingId": notice.BookingID,
		"type":      notice.Type,
	})
}
