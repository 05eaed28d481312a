package entity

import "time"

type GroupOrder struct {
	Base
	UserGroupID string     `gorm:"type:varchar(36);index;not null" json:"usergroup"`
	FoodTruckID string     `gorm:"type:varchar(36);index;not null" json:"foodtruck"`
	UserID      string     `gorm:"type:varchar(36);index;not null" json:"user"`
	IsPlaced    bool       `json:"isPlaced"`
	WhenPlaced  *time.Time `json:"whenPlaced"`

	// sum of member order costs
	Cost float64 `gorm:"not null;default:0" json:"cost"`
}

type GroupMemberOrder struct {
	Base
	GroupOrderID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_member_order_pair;index" json:"grouporder"`
	PersonalOrderID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_member_order_pair;index" json:"personalorder"`
	UserID          string `gorm:"type:varchar(36);index;not null" json:"user"`
	Instructions    string `gorm:"size:500" json:"instructions"`

	// follows the linked personal order's cost
	Cost float64 `gorm:"not null;default:0" json:"cost"`
}
