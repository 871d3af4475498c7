package repositories

import (
	"cleanhub/internal/database"
)

type Repository struct {
	User         UserRepository
	Address      AddressRepository
	Cleaner      CleanerRepository
	Property     PropertyRepository
	Booking      BookingRepository
	CleaningType CleaningTypeRepository
	Notification NotificationRepository
	Conversation ConversationRepository
	Message      MessageRepository
	Session      SessionRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:         NewUserRepository(db.Cache.General),
		Address:      NewAddressRepository(),
		Cleaner:      NewCleanerRepository(),
		Property:     NewPropertyRepository(),
		Booking:      NewBookingRepository(),
		CleaningType: NewCleaningTypeRepository(),
		Notification: NewNotificationRepository(),
		Conversation: NewConversationRepository(),
		Message:      NewMessageRepository(),
		Session:      NewSessionRepository(),
	}
}
