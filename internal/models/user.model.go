package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	BaseUUIDModel
	FirstName string        `gorm:"type:text;not null"                json:"firstName"`
	LastName  string        `gorm:"type:text;not null"                json:"lastName"`
	Email     string        `gorm:"type:text;uniqueIndex;not null"    json:"email"`
	Password  string        `gorm:"type:text;not null"                json:"-"`
	Role      UserRole      `gorm:"type:text;not null;index"          json:"role"`
	Status    GenericStatus `gorm:"type:text;not null;default:Active" json:"status"`
	AddressID *uuid.UUID    `gorm:"type:uuid"                         json:"addressId,omitempty"`
	Address   *Address      `gorm:"foreignKey:AddressID"              json:"address,omitempty"`
	FCMToken  *string       `gorm:"type:text"                         json:"fcmToken,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserProfile represents public user profile information
type UserProfile struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	FullName  string        `json:"fullName"`
	Email     string        `json:"email"`
	Role      UserRole      `json:"role"`
	Status    GenericStatus `json:"status"`
	Address   *Address      `json:"address,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		Address:   u.Address,
	}
}
