package entity

type Message struct {
	Base
	SenderID   string `gorm:"type:varchar(36);index;not null" json:"sender"`
	ReceiverID string `gorm:"type:varchar(36);index;not null" json:"receiver"`
	Body       string `gorm:"not null" json:"body"`
}
