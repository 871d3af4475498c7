package models

import "github.com/google/uuid"

// LoggedInUser maps a signed-in user and role to the push token of their device.
type LoggedInUser struct {
	BaseUUIDModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_logged_in_users_user_role" json:"userId"`
	Role     UserRole  `gorm:"type:text;not null;uniqueIndex:idx_logged_in_users_user_role" json:"role"`
	Username string    `gorm:"type:text"                                                     json:"username,omitempty"`
	FCMToken string    `gorm:"type:text;not null"                                            json:"fcmToken"`
}
