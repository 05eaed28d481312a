package services

import (
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geo"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geocoder"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

type FoodTruckService struct {
	DB       *gorm.DB
	Repo     *repository.FoodTruckRepository
	Items    *repository.FoodItemRepository
	Ratings  *repository.RatingRepository
	Geocoder geocoder.Geocoder
	Index    geo.Index
	Photos   *photoSaver
	Log      *logrus.Logger
}

type CreateFoodTruckIn struct {
	Name            string  `json:"name" binding:"required,max=80"`
	Description     string  `json:"description" binding:"required,max=500"`
	CentralLocation string  `json:"centralLocation" binding:"required"`
	Radius          float64 `json:"radius" binding:"required,gt=0"`
	MinOrder        float64 `json:"minOrder" binding:"gte=0"`
}

type UpdateFoodTruckIn struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=80"`
	Description *string  `json:"description" binding:"omitempty,min=1,max=500"`
	Radius      *float64 `json:"radius" binding:"omitempty,gt=0"`
	MinOrder    *float64 `json:"minOrder" binding:"omitempty,gte=0"`
}

func (s *FoodTruckService) List(ctx context.Context, p repository.Page) ([]entity.FoodTruck, error) {
	trucks, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list food trucks failed")
	}
	return trucks, nil
}

func (s *FoodTruckService) Get(ctx context.Context, id string) (*entity.FoodTruck, error) {
	ft, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Foodtruck not found with id of %s", id)
	}
	return ft, nil
}

// Create geocodes the central location and stores the truck for p. Nothing
// is written when geocoding fails.
func (s *FoodTruckService) Create(ctx context.Context, p Principal, in CreateFoodTruckIn) (*entity.FoodTruck, error) {
	if !p.IsAdmin() {
		_, err := s.Repo.FindByOwner(ctx, p.ID)
		if err == nil {
			return nil, apperr.Validation("The user with ID %s has already published a food truck", p.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err, "create food truck failed")
		}
	}

	loc, err := locate(ctx, s.Geocoder, in.CentralLocation)
	if err != nil {
		return nil, err
	}

	ft := &entity.FoodTruck{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Location:    loc,
		Radius:      in.Radius,
		MinOrder:    in.MinOrder,
		Photo:       entity.DefaultFoodTruckPhoto,
		UserID:      p.ID,
	}
	ft.Slug = slugOf(ft.Name)
	if err := s.Repo.Create(ctx, ft); err != nil {
		return nil, persistErr(err)
	}
	s.index(ctx, ft)
	return ft, nil
}

func (s *FoodTruckService) Update(ctx context.Context, p Principal, id string, in UpdateFoodTruckIn) (*entity.FoodTruck, error) {
	ft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ft.UserID, p, "update", "this food truck"); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
		fields["slug"] = slugOf(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Radius != nil {
		fields["radius"] = *in.Radius
	}
	if in.MinOrder != nil {
		fields["min_order"] = *in.MinOrder
	}
	if len(fields) > 0 {
		if err := s.Repo.Updates(ctx, id, fields); err != nil {
			return nil, persistErr(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the truck with its menu and the ratings about it.
func (s *FoodTruckService) Delete(ctx context.Context, p Principal, id string) (*entity.FoodTruck, error) {
	ft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ft.UserID, p, "delete", "this food truck"); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Items.WithTx(tx).DeleteByTruck(ctx, id); err != nil {
			return err
		}
		if err := s.Ratings.WithTx(tx).DeleteBySubject(ctx, entity.RatingFoodTruck, id); err != nil {
			return err
		}
		return s.Repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return nil, persistErr(err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.Log.WithError(err).WithField("foodtruck", id).Warn("geo index remove failed")
		}
	}
	return ft, nil
}

// InRadius lists trucks whose location lies within miles of lat/lng.
func (s *FoodTruckService) InRadius(ctx context.Context, lat, lng, miles float64) ([]entity.FoodTruck, error) {
	if !geo.ValidCoords(lat, lng) {
		return nil, apperr.Validation("Invalid coordinates %v,%v", lat, lng)
	}
	if miles < 0 {
		return nil, apperr.Validation("Distance must not be negative")
	}

	if s.Index != nil {
		ids, err := s.Index.Within(ctx, lat, lng, miles)
		if err == nil {
			trucks, err := s.Repo.FindByIDs(ctx, ids)
			if err != nil {
				return nil, apperr.Internal(err, "radius search failed")
			}
			return orderByIDs(trucks, ids), nil
		}
		s.Log.WithError(err).Warn("geo index search failed, scanning")
	}

	located, err := s.Repo.ListLocated(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "radius search failed")
	}
	type hit struct {
		ft   entity.FoodTruck
		dist float64
	}
	hits := make([]hit, 0, len(located))
	for _, ft := range located {
		d := geo.HaversineMiles(lat, lng, ft.Location.Latitude, ft.Location.Longitude)
		if d <= miles {
			hits = append(hits, hit{ft, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	out := make([]entity.FoodTruck, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.ft)
	}
	return out, nil
}

func (s *FoodTruckService) UploadPhoto(ctx context.Context, p Principal, id string, fh *multipart.FileHeader) (*entity.FoodTruck, error) {
	ft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ft.UserID, p, "update", "this food truck"); err != nil {
		return nil, err
	}
	photo, err := s.Photos.save(ctx, id, fh)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Updates(ctx, id, map[string]any{"photo": photo}); err != nil {
		return nil, persistErr(err)
	}
	ft.Photo = photo
	return ft, nil
}

// ReindexAll pushes every located truck into the geo index.
func (s *FoodTruckService) ReindexAll(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	located, err := s.Repo.ListLocated(ctx)
	if err != nil {
		return 0, err
	}
	for i := range located {
		ft := located[i]
		if err := s.Index.Upsert(ctx, ft.ID, ft.Location.Latitude, ft.Location.Longitude); err != nil {
			return i, err
		}
	}
	return len(located), nil
}

func (s *FoodTruckService) index(ctx context.Context, ft *entity.FoodTruck) {
	if s.Index == nil || ft.Location.IsZero() {
		return
	}
	if err := s.Index.Upsert(ctx, ft.ID, ft.Location.Latitude, ft.Location.Longitude); err != nil {
		s.Log.WithError(err).WithField("foodtruck", ft.ID).Warn("geo index upsert failed")
	}
}

func orderByIDs(trucks []entity.FoodTruck, ids []string) []entity.FoodTruck {
	byID := make(map[string]entity.FoodTruck, len(trucks))
	for _, ft := range trucks {
		byID[ft.ID] = ft
	}
	out := make([]entity.FoodTruck, 0, len(trucks))
	for _, id := range ids {
		if ft, ok := byID[id]; ok {
			out = append(out, ft)
		}
	}
	return out
}
