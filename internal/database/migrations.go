package database

import (
	"cleanhub/internal/models"
)

// ModelsToMigrate lists every gorm model in dependency order.
func ModelsToMigrate() []any {
	return []any{
		&models.Address{},
		&models.User{},
		&models.Cleaner{},
		&models.Property{},
		&models.CleaningType{},
		&models.Booking{},
		&models.CleanerBooking{},
		&models.CleanerIgnoredBooking{},
		&models.Notification{},
		&models.Conversation{},
		&models.Message{},
		&models.LoggedInUser{},
	}
}
