package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type RatingRepository struct {
	store[entity.Rating]
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{store[entity.Rating]{DB: db}}
}

func (r *RatingRepository) WithTx(tx *gorm.DB) *RatingRepository {
	return NewRatingRepository(tx)
}

func (r *RatingRepository) FindBySubject(ctx context.Context, kind entity.RatingKind, subjectID string) ([]entity.Rating, error) {
	return r.List(ctx, map[string]any{"kind": kind, "subject_id": subjectID}, Page{})
}

func (r *RatingRepository) PairExists(ctx context.Context, kind entity.RatingKind, subjectID, raterID string) (bool, error) {
	return r.Exists(ctx, map[string]any{"kind": kind, "subject_id": subjectID, "rater_id": raterID})
}

func (r *RatingRepository) DeleteBySubject(ctx context.Context, kind entity.RatingKind, subjectID string) error {
	return r.DeleteWhere(ctx, map[string]any{"kind": kind, "subject_id": subjectID})
}
