package jobs

import (
	"context"
	"fmt"
	"time"

	"cleanhub/internal/database"
	. "cleanhub/internal/models"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	JOB_REMINDER          = "JobReminder"
	REMINDER_LOCK_KEY     = "jobs:job-reminder:lock"
	REMINDER_LOCK_TTL     = 25 * time.Minute
	REMINDER_WINDOW_START = 11 * time.Hour
	REMINDER_WINDOW_END   = 12 * time.Hour
	REMINDER_TIME_FORMAT  = "Mon 02 Jan 2006, 15:04"
)

var remindersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cleanhub_job_reminders_total",
	Help: "Job reminder outcomes per sweep.",
}, []string{"outcome"})

type ReminderJob struct {
	bookings      repositories.BookingRepository
	cleaners      repositories.CleanerRepository
	notifications repositories.NotificationRepository
	notifier      services.Notifier
	lock          Locker
	db            database.DB
	location      *time.Location
	now           func() time.Time
	schedule      services.Schedule
	log           logger.Logger
}

func NewReminderJob(
	repos repositories.Repository,
	notifier services.Notifier,
	lock Locker,
	db database.DB,
	location *time.Location,
	schedule services.Schedule,
) *ReminderJob {
	return &ReminderJob{
		bookings:      repos.Booking,
		cleaners:      repos.Cleaner,
		notifications: repos.Notification,
		notifier:      notifier,
		lock:          lock,
		db:            db,
		location:      location,
		now:           time.Now,
		schedule:      schedule,
		log:           logger.New("reminderJob"),
	}
}

func (j *ReminderJob) Name() string {
	return JOB_REMINDER
}

func (j *ReminderJob) Schedule() services.Schedule {
	return j.schedule
}

// Execute reminds the assigned cleaner of every booking starting 11 to 12
// hours from now. Bookings that already have a reminder are skipped, so a
// booking is reminded once even though consecutive windows overlap it.
func (j *ReminderJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute").TraceFromContext(ctx)

	acquired, err := j.lock.Acquire(ctx, REMINDER_LOCK_KEY, REMINDER_LOCK_TTL)
	if err != nil {
		return log.Err("failed to acquire reminder lock", err)
	}
	if !acquired {
		log.Info("Reminder sweep already running on another replica")
		return nil
	}
	defer j.lock.Release(ctx, REMINDER_LOCK_KEY)

	now := j.now()
	from, to := now.Add(REMINDER_WINDOW_START), now.Add(REMINDER_WINDOW_END)

	db := j.db.SQLWithContext(ctx)
	bookings, err := j.bookings.ListUpcomingAssigned(ctx, db, from, to)
	if err != nil {
		return err
	}

	var sent, skipped, failed int
	for i := range bookings {
		booking := &bookings[i]

		reminded, err := j.remind(ctx, booking)
		switch {
		case err != nil:
			failed++
			log.Warn("failed to send reminder", "bookingID", booking.ID, "error", err)
		case reminded:
			sent++
		default:
			skipped++
		}
	}

	remindersTotal.WithLabelValues("sent").Add(float64(sent))
	remindersTotal.WithLabelValues("skipped").Add(float64(skipped))
	remindersTotal.WithLabelValues("failed").Add(float64(failed))

	log.Info("Reminder sweep finished",
		"candidates", len(bookings), "sent", sent, "skipped", skipped, "failed", failed)

	if failed > 0 {
		return log.Error("some reminders could not be sent", "failed", failed)
	}
	return nil
}

func (j *ReminderJob) remind(ctx context.Context, booking *Booking) (bool, error) {
	if booking.CleanerID == nil {
		return false, nil
	}

	db := j.db.SQLWithContext(ctx)
	exists, err := j.notifications.ExistsForBooking(ctx, db, booking.ID, NotificationJobReminder)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	cleaner, err := j.cleaners.GetByID(ctx, db, *booking.CleanerID)
	if err != nil {
		return false, err
	}

	location := j.location
	if location == nil {
		location = time.UTC
	}

	_, err = j.notifier.Notify(ctx, services.Notice{
		RecipientID:   cleaner.UserID,
		RecipientRole: RoleCleaner,
		Type:          NotificationJobReminder,
		Message: fmt.Sprintf("Reminder: your cleaning job starts at %s",
			booking.CleaningTime.In(location).Format(REMINDER_TIME_FORMAT)),
		BookingID: &booking.ID,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
