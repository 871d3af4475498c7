package models

import "github.com/google/uuid"

type Notification struct {
	BaseUUIDModel
	RecipientID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_recipient" json:"recipientId"`
	RecipientType    UserRole         `gorm:"type:text;not null;index:idx_notifications_recipient" json:"recipientType"`
	SenderID         *uuid.UUID       `gorm:"type:uuid"                                             json:"senderId,omitempty"`
	Message          string           `gorm:"type:text;not null"                                    json:"message"`
	NotificationType NotificationType `gorm:"type:text;not null"                                    json:"notificationType"`
	BookingID        *uuid.UUID       `gorm:"type:uuid;index"                                       json:"bookingId,omitempty"`
	IsRead           bool             `gorm:"not null;default:false"                                json:"isRead"`
}
