package services

import (
	"context"

	"cleanhub/config"
	"cleanhub/internal/database"
	"cleanhub/internal/events"
	"cleanhub/internal/repositories"
)

type Service struct {
	Transaction  *TransactionService
	Scheduler    *SchedulerService
	Token        *TokenService
	Notification *NotificationService
	Matching     *MatchingService
	Distance     *DistanceService
	Storage      *StorageService
	Email        *EmailService
}

func New(
	ctx context.Context,
	db database.DB,
	repos repositories.Repository,
	config config.Config,
	eventBus *events.EventBus,
) (Service, error) {
	pushService, err := NewPushService(ctx, config)
	if err != nil {
		return Service{}, err
	}

	storageService, err := NewStorageService(ctx, config)
	if err != nil {
		return Service{}, err
	}

	var publisher events.Publisher
	if eventBus != nil {
		publisher = eventBus
	}

	return Service{
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(config.Location()),
		Token:       NewTokenService(config, NewCacheRevokedTokens(db.Cache.Session)),
		Notification: NewNotificationService(
			db,
			repos.Notification,
			repos.Session,
			pushService,
			publisher,
		),
		Matching: NewMatchingService(config.Location()),
		Distance: NewDistanceService(config, db.Cache.ClientAPI),
		Storage:  storageService,
		Email:    NewEmailService(config),
	}, nil
}
