package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/events"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

// RatingService handles all three rating kinds through one table.
type RatingService struct {
	Repo   *repository.RatingRepository
	Trucks *repository.FoodTruckRepository
	Users  *repository.UserRepository
	Groups *repository.UserGroupRepository
	Rollup *Rollup
	Events *publisher
}

type RatingIn struct {
	Rating int `json:"rating" binding:"required,min=1,max=10"`
}

func checkRating(v int) error {
	if v < entity.MinRating || v > entity.MaxRating {
		return apperr.Validation("Please add a rating between %d and %d", entity.MinRating, entity.MaxRating)
	}
	return nil
}

func (s *RatingService) List(ctx context.Context, kind string, p repository.Page) ([]entity.Rating, error) {
	filter := map[string]any{}
	if kind != "" {
		k := entity.RatingKind(kind)
		if !k.Valid() {
			return nil, apperr.Validation("Unknown rating kind %q", kind)
		}
		filter["kind"] = k
	}
	ratings, err := s.Repo.List(ctx, filter, p)
	if err != nil {
		return nil, apperr.Internal(err, "list ratings failed")
	}
	return ratings, nil
}

func (s *RatingService) ListForSubject(ctx context.Context, kind entity.RatingKind, subjectID string) ([]entity.Rating, error) {
	if err := s.subjectExists(ctx, kind, subjectID); err != nil {
		return nil, err
	}
	ratings, err := s.Repo.FindBySubject(ctx, kind, subjectID)
	if err != nil {
		return nil, apperr.Internal(err, "list ratings failed")
	}
	return ratings, nil
}

func (s *RatingService) Get(ctx context.Context, id string) (*entity.Rating, error) {
	r, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No rating found with the id of %s", id)
	}
	return r, nil
}

// Create records p's rating of a subject. Trucks are rated by users; users
// and groups are rated by the truck the principal operates. A subject can be
// rated once per rater.
func (s *RatingService) Create(ctx context.Context, p Principal, kind entity.RatingKind, subjectID string, in RatingIn) (*entity.Rating, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("Unknown rating kind %q", kind)
	}
	if err := checkRating(in.Rating); err != nil {
		return nil, err
	}

	raterID, err := s.raterFor(ctx, p, kind)
	if err != nil {
		return nil, err
	}
	if err := s.subjectExists(ctx, kind, subjectID); err != nil {
		return nil, err
	}

	dup, err := s.Repo.PairExists(ctx, kind, subjectID, raterID)
	if err != nil {
		return nil, apperr.Internal(err, "create rating failed")
	}
	if dup {
		return nil, apperr.Validation("This %s has already been rated by %s", kind, raterID)
	}

	r := &entity.Rating{
		Kind:      kind,
		SubjectID: subjectID,
		RaterID:   raterID,
		AuthorID:  p.ID,
		Rating:    in.Rating,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, persistErr(err)
	}

	s.Rollup.Trigger(ctx, rollupForRating(kind), subjectID)
	s.Events.publish(ctx, events.RatingCreated, subjectID, r)
	return r, nil
}

func (s *RatingService) Update(ctx context.Context, p Principal, id string, in RatingIn) (*entity.Rating, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownerOrElevated(r.AuthorID, p) {
		return nil, apperr.Unauthorized("Not authorized to update rating")
	}
	if err := checkRating(in.Rating); err != nil {
		return nil, err
	}
	if err := s.Repo.Updates(ctx, id, map[string]any{"rating": in.Rating}); err != nil {
		return nil, persistErr(err)
	}
	s.Rollup.Trigger(ctx, rollupForRating(r.Kind), r.SubjectID)
	return s.Get(ctx, id)
}

func (s *RatingService) Delete(ctx context.Context, p Principal, id string) (*entity.Rating, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownerOrElevated(r.AuthorID, p) {
		return nil, apperr.Unauthorized("Not authorized to delete rating")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, persistErr(err)
	}
	s.Rollup.Trigger(ctx, rollupForRating(r.Kind), r.SubjectID)
	return r, nil
}

func (s *RatingService) raterFor(ctx context.Context, p Principal, kind entity.RatingKind) (string, error) {
	if kind == entity.RatingFoodTruck {
		return p.ID, nil
	}
	ft, err := s.Trucks.FindByOwner(ctx, p.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.NotFound("There is no food truck associated with the logged in operator")
	}
	if err != nil {
		return "", apperr.Internal(err, "lookup operator food truck failed")
	}
	return ft.ID, nil
}

func (s *RatingService) subjectExists(ctx context.Context, kind entity.RatingKind, id string) error {
	var err error
	switch kind {
	case entity.RatingFoodTruck:
		if _, err = s.Trucks.FindByID(ctx, id); err != nil {
			return lookupErr(err, "No food truck with the id of %s", id)
		}
	case entity.RatingUser:
		if _, err = s.Users.FindByID(ctx, id); err != nil {
			return lookupErr(err, "There is no user with an id of %s", id)
		}
	case entity.RatingUserGroup:
		if _, err = s.Groups.FindByID(ctx, id); err != nil {
			return lookupErr(err, "There is no group with id %s", id)
		}
	default:
		return apperr.Validation("Unknown rating kind %q", kind)
	}
	return nil
}
