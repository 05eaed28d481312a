package entity

type RatingKind string

const (
	RatingFoodTruck RatingKind = "foodtruck"
	RatingUser      RatingKind = "user"
	RatingUserGroup RatingKind = "usergroup"
)

func (k RatingKind) Valid() bool {
	switch k {
	case RatingFoodTruck, RatingUser, RatingUserGroup:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 10
)

// Rating covers all three rating variants. Food truck ratings are given by
// users; user and group ratings are given by an operator's food truck.
type Rating struct {
	Base
	Kind      RatingKind `gorm:"size:16;not null;uniqueIndex:idx_rating_pair" json:"kind"`
	SubjectID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_pair" json:"subject"`
	RaterID   string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_pair" json:"rater"`
	AuthorID  string     `gorm:"type:varchar(36);not null;index" json:"author"`
	Rating    int        `gorm:"not null" json:"rating"`
}
