package entity

const (
	RoleUser     = "user"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

type User struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"size:16;not null;default:user" json:"role"`

	// set through /auth/updateLocation
	Location GeoPoint `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	// derived from ratings given by operators
	AverageRating *float64 `json:"averageRating"`
}
