package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ChecklistTask struct {
	TaskName  string `json:"taskName"`
	Completed bool   `json:"completed"`
}

type Checklist struct {
	GeneralAreasTasks []ChecklistTask `json:"generalAreasTasks"`
	KitchenTasks      []ChecklistTask `json:"kitchenTasks"`
	BathroomTasks     []ChecklistTask `json:"bathroomTasks"`
}

func (c *Checklist) IsEmpty() bool {
	return c == nil ||
		len(c.GeneralAreasTasks) == 0 && len(c.KitchenTasks) == 0 && len(c.BathroomTasks) == 0
}

type Booking struct {
	BaseUUIDModel
	PropertyID         uuid.UUID                   `gorm:"type:uuid;not null;index"                      json:"propertyId"`
	Property           *Property                   `gorm:"foreignKey:PropertyID"                         json:"property,omitempty"`
	Type               string                      `gorm:"type:text"                                     json:"type,omitempty"`
	Images             datatypes.JSONSlice[string] `gorm:"type:jsonb"                                    json:"images"`
	CleaningType       ServiceType                 `gorm:"type:text;not null;index"                      json:"cleaningType"`
	CleaningTime       time.Time                   `gorm:"not null;index"                                json:"cleaningTime"`
	NumberOfRooms      int                         `gorm:"default:0"                                     json:"numberOfRooms"`
	NumberOfBathrooms  int                         `gorm:"default:0"                                     json:"numberOfBathrooms"`
	CleanerPreferences string                      `gorm:"type:text"                                     json:"cleanerPreferences,omitempty"`
	StaffingType       StaffingType                `gorm:"type:text"                                     json:"staffingType,omitempty"`
	ChecklistDetails   *Checklist                  `gorm:"type:jsonb;serializer:json"                    json:"checklistDetails,omitempty"`
	Price              decimal.Decimal             `gorm:"type:numeric(12,2);default:0"                  json:"price"`
	PaymentStatus      PaymentStatus               `gorm:"type:text;not null;default:Pending"            json:"paymentStatus"`
	Status             GenericStatus               `gorm:"type:text;not null;default:Active;index"       json:"status"`
	BookingStatus      BookingStatus               `gorm:"type:text;not null;default:PENDING;index"      json:"bookingStatus"`
	CleanerID          *uuid.UUID                  `gorm:"type:uuid;index"                               json:"cleanerId,omitempty"`
	Cleaner            *Cleaner                    `gorm:"foreignKey:CleanerID"                          json:"cleaner,omitempty"`
	CancelReason       *string                     `gorm:"type:text"                                     json:"cancelReason,omitempty"`
	RescheduleReason   *string                     `gorm:"type:text"                                     json:"rescheduleReason,omitempty"`
}

// NearbyBooking is a matched booking annotated with its travel distance in meters.
type NearbyBooking struct {
	Booking
	Distance int `json:"distance"`
}

type CleaningType struct {
	BaseUUIDModel
	Name        string                      `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Description string                      `gorm:"type:text"                      json:"description"`
	Images      datatypes.JSONSlice[string] `gorm:"type:jsonb"                     json:"images"`
}
