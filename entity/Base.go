package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base replaces gorm.Model: ids are opaque uuids and rows are hard-deleted.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// GeoPoint is the structured location produced by geocoding an address.
type GeoPoint struct {
	Type             string  `gorm:"size:16" json:"type,omitempty"`
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	Street           string  `json:"street,omitempty"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Zipcode          string  `json:"zipcode,omitempty"`
	Country          string  `json:"country,omitempty"`
}

func (p GeoPoint) IsZero() bool { return p.Type == "" }
