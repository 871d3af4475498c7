package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Cleaner struct {
	BaseUUIDModel
	UserID             uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User               *User                       `gorm:"foreignKey:UserID"              json:"user,omitempty"`
	PreferredLocations datatypes.JSONSlice[string] `gorm:"type:jsonb"                     json:"preferredLocations"`
	Services           datatypes.JSONSlice[string] `gorm:"type:jsonb"                     json:"services"`
	Availability       datatypes.JSONSlice[string] `gorm:"type:jsonb"                     json:"availability"`
	AvailabilityTime   datatypes.JSONSlice[string] `gorm:"type:jsonb"                     json:"availabilityTime"`
	PreferredJobType   JobType                     `gorm:"type:text"                      json:"preferredJobType,omitempty"`
}

// CleanerBooking records a booking accepted by (assigned to) a cleaner.
type CleanerBooking struct {
	CleanerID uuid.UUID `gorm:"type:uuid;primaryKey"   json:"cleanerId"`
	BookingID uuid.UUID `gorm:"type:uuid;primaryKey"   json:"bookingId"`
	CreatedAt time.Time `gorm:"autoCreateTime"         json:"createdAt"`
	Cleaner   *Cleaner  `gorm:"foreignKey:CleanerID"   json:"-"`
	Booking   *Booking  `gorm:"foreignKey:BookingID"   json:"booking,omitempty"`
}

// CleanerIgnoredBooking records a booking a cleaner opted out of.
type CleanerIgnoredBooking struct {
	CleanerID uuid.UUID `gorm:"type:uuid;primaryKey"   json:"cleanerId"`
	BookingID uuid.UUID `gorm:"type:uuid;primaryKey"   json:"bookingId"`
	CreatedAt time.Time `gorm:"autoCreateTime"         json:"createdAt"`
	Cleaner   *Cleaner  `gorm:"foreignKey:CleanerID"   json:"-"`
	Booking   *Booking  `gorm:"foreignKey:BookingID"   json:"-"`
}

func allOf[T ~string](values []string, allowed []T) bool {
	for _, v := range values {
		if !slices.Contains(allowed, T(v)) {
			return false
		}
	}
	return true
}

// InvalidPreference names the first preference field holding a value outside
// its enum, or returns "" when every value is known.
func (c *Cleaner) InvalidPreference() string {
	switch {
	case !allOf(c.Services, ServiceTypes):
		return "services"
	case !allOf(c.Availability, DayTypes):
		return "availability"
	case !allOf(c.AvailabilityTime, Periods):
		return "availabilityTime"
	case c.PreferredJobType != "" && !slices.Contains(JobTypes, c.PreferredJobType):
		return "preferredJobType"
	}
	return ""
}
