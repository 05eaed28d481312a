package entity

type Membership struct {
	Base
	UserID      string `gorm:"type:varchar(36);not null;uniqueIndex:idx_membership_pair" json:"user"`
	UserGroupID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_membership_pair;index" json:"usergroup"`
}
