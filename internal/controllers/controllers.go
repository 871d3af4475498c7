package controllers

import (
	"cleanhub/config"
	"cleanhub/internal/database"
	"cleanhub/internal/repositories"
	"cleanhub/internal/services"

	authController "cleanhub/internal/controllers/auth"
	bookingController "cleanhub/internal/controllers/booking"
	enumsController "cleanhub/internal/controllers/enums"
	messageController "cleanhub/internal/controllers/message"
	notificationController "cleanhub/internal/controllers/notification"
	profileController "cleanhub/internal/controllers/profile"
	propertyController "cleanhub/internal/controllers/property"
	sessionController "cleanhub/internal/controllers/session"
	supportController "cleanhub/internal/controllers/support"
)

type Controllers struct {
	Auth         authController.AuthControllerInterface
	Booking      bookingController.BookingControllerInterface
	Message      messageController.MessageControllerInterface
	Notification notificationController.NotificationControllerInterface
	Session      sessionController.SessionControllerInterface
	Profile      profileController.ProfileControllerInterface
	Property     propertyController.PropertyControllerInterface
	Support      supportController.SupportControllerInterface
	Enums        enumsController.EnumsControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:         authController.New(repos, services, db),
		Booking:      bookingController.New(repos, services, config, db),
		Message:      messageController.New(repos, services, db),
		Notification: notificationController.New(repos, db),
		Session:      sessionController.New(repos, services, db),
		Profile:      profileController.New(repos, db),
		Property:     propertyController.New(repos, services, db),
		Support:      supportController.New(repos, services, db),
		Enums:        enumsController.New(),
	}
}
