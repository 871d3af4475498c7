package jobs

import (
	"cleanhub/config"
	"cleanhub/internal/database"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	svc services.Service,
	repos repositories.Repository,
	db database.DB,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	log.Info("Registering jobs")

	reminderJob := NewReminderJob(
		repos,
		svc.Notification,
		NewValkeyLocker(db.Cache.General),
		db,
		config.Location(),
		services.EveryThirtyMinutes,
	)
	if err := schedulerService.AddJob(reminderJob); err != nil {
		return log.Err("failed to register reminder job", err)
	}

	log.Info("Jobs registered", "count", schedulerService.GetJobCount())
	return nil
}
