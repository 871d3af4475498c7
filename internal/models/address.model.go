package models

import "strings"

type Location struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type Address struct {
	BaseUUIDModel
	Address    string    `gorm:"type:text"             json:"address"`
	Street     string    `gorm:"type:text"             json:"street"`
	UnitNumber string    `gorm:"type:text"             json:"unitNumber,omitempty"`
	City       string    `gorm:"type:text;index"       json:"city"`
	State      string    `gorm:"type:text;index"       json:"state"`
	Country    string    `gorm:"type:text"             json:"country"`
	ZipCode    string    `gorm:"type:text"             json:"zipCode,omitempty"`
	Location   *Location `gorm:"serializer:json"       json:"location,omitempty"`
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// OriginString is the geocodable form used for a cleaner's home address.
func (a *Address) OriginString() string {
	if a == nil {
		return ""
	}
	return joinNonEmpty(a.Address, a.City, a.State, a.Country)
}

// DestinationString is the geocodable form used for a property's address.
func (a *Address) DestinationString() string {
	if a == nil {
		return ""
	}
	street := a.Street
	if street == "" {
		street = a.Address
	}
	return joinNonEmpty(street, a.City, a.State, a.Country)
}
