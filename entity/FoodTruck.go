package entity

const DefaultFoodTruckPhoto = "no-foodtruck-photo.jpg"

type FoodTruck struct {
	Base
	Name        string `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"index" json:"slug"`
	Description string `gorm:"size:500;not null" json:"description"`

	// free-text address, only accepted on create and never stored
	CentralLocation string   `gorm:"-" json:"centralLocation,omitempty"`
	Location        GeoPoint `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	Radius        float64  `gorm:"not null" json:"radius"`
	MinOrder      float64  `json:"minOrder"`
	AverageRating *float64 `json:"averageRating"`
	Photo         string   `gorm:"not null;default:no-foodtruck-photo.jpg" json:"photo"`

	UserID string `gorm:"type:varchar(36);index;not null" json:"user"`
}
