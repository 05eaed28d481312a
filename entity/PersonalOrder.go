package entity

type PersonalOrder struct {
	Base
	UserID      string `gorm:"type:varchar(36);index;not null" json:"user"`
	FoodTruckID string `gorm:"type:varchar(36);index;not null" json:"foodtruck"`

	// sum of item costs
	Cost float64 `gorm:"not null;default:0" json:"cost"`
}

type PersonalOrderItem struct {
	Base
	PersonalOrderID string `gorm:"type:varchar(36);index;not null" json:"personalorder"`
	FoodItemID      string `gorm:"type:varchar(36);index;not null" json:"fooditem"`
	Customization   string `gorm:"size:500" json:"customization"`

	// price of the food item when the line was added
	Cost float64 `gorm:"not null" json:"cost"`
}
