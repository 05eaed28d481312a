package entity

const DefaultUserGroupPhoto = "no-usergroup-photo.jpg"

type UserGroup struct {
	Base
	Name        string `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"index" json:"slug"`
	Description string `gorm:"size:500" json:"description"`

	// free-text address, geocoded into Location on create
	Address  string   `gorm:"-" json:"address,omitempty"`
	Location GeoPoint `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	AverageRating *float64 `json:"averageRating"`
	Photo         string   `gorm:"not null;default:no-usergroup-photo.jpg" json:"photo"`

	OwnerID string `gorm:"type:varchar(36);index;not null" json:"owner"`
}
