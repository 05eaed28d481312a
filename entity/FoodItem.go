package entity

const DefaultFoodItemPhoto = "no-fooditem-photo.jpg"

type FoodItem struct {
	Base
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Ingredients string  `json:"ingredients"`
	Nutrition   string  `json:"nutrition"`
	Price       float64 `gorm:"not null" json:"price"`
	Photo       string  `gorm:"not null;default:no-fooditem-photo.jpg" json:"photo"`

	FoodTruckID string `gorm:"type:varchar(36);index;not null" json:"foodtruck"`
	UserID      string `gorm:"type:varchar(36);index;not null" json:"user"`
}
