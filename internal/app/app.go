package app

import (
	"context"

	"cleanhub/config"
	"cleanhub/internal/controllers"
	"cleanhub/internal/database"
	"cleanhub/internal/events"
	"cleanhub/internal/handlers/middleware"
	"cleanhub/internal/jobs"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"
	"cleanhub/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New(ctx context.Context) (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)
	repos := repositories.New(db)

	services, err := services.New(ctx, db, repos, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	websocket, err := websockets.New(eventBus, services.Token)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware.New(services.Token, config),
		Websocket:   websocket,
		EventBus:    eventBus,
		Services:    services,
		Repos:       repos,
		Controllers: controllers.New(services, repos, config, db),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	if err := jobs.RegisterAllJobs(services.Scheduler, config, services, repos, db); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	if config.SchedulerEnabled {
		if err := services.Scheduler.Start(ctx); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := map[string]any{
		"websocket":    a.Websocket,
		"eventBus":     a.EventBus,
		"transaction":  a.Services.Transaction,
		"scheduler":    a.Services.Scheduler,
		"token":        a.Services.Token,
		"notification": a.Services.Notification,
		"storage":      a.Services.Storage,
		"authCtrl":     a.Controllers.Auth,
		"bookingCtrl":  a.Controllers.Booking,
		"messageCtrl":  a.Controllers.Message,
		"userRepo":     a.Repos.User,
		"bookingRepo":  a.Repos.Booking,
		"sessionRepo":  a.Repos.Session,
	}

	for name, check := range nilChecks {
		if check == nil {
			return log.Error("nil check failed", "component", name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
