package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Property struct {
	BaseUUIDModel
	OwnerID           uuid.UUID                   `gorm:"type:uuid;not null;index"         json:"ownerId"`
	Owner             *User                       `gorm:"foreignKey:OwnerID"               json:"owner,omitempty"`
	AddressID         uuid.UUID                   `gorm:"type:uuid;not null"               json:"addressId"`
	Address           *Address                    `gorm:"foreignKey:AddressID"             json:"address,omitempty"`
	Type              PropertyType                `gorm:"type:text"                        json:"type,omitempty"`
	NameOfProperty    string                      `gorm:"type:text"                        json:"nameOfProperty"`
	NumberOfUnits     int                         `gorm:"default:1"                        json:"numberOfUnits"`
	NumberOfRooms     int                         `gorm:"default:0"                        json:"numberOfRooms"`
	NumberOfBathrooms int                         `gorm:"default:0"                        json:"numberOfBathrooms"`
	Images            datatypes.JSONSlice[string] `gorm:"type:jsonb"                       json:"images"`
	Status            GenericStatus               `gorm:"type:text;not null;default:Active" json:"status"`
}
