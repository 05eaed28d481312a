package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

type FoodItemService struct {
	Repo   *repository.FoodItemRepository
	Trucks *repository.FoodTruckRepository
	Photos *photoSaver
}

type CreateFoodItemIn struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Ingredients string   `json:"ingredients"`
	Nutrition   string   `json:"nutrition"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
}

type UpdateFoodItemIn struct {
	Title       *string  `json:"title" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Ingredients *string  `json:"ingredients"`
	Nutrition   *string  `json:"nutrition"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

func (s *FoodItemService) List(ctx context.Context, p repository.Page) ([]entity.FoodItem, error) {
	items, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list food items failed")
	}
	return items, nil
}

func (s *FoodItemService) ListByTruck(ctx context.Context, truckID string) ([]entity.FoodItem, error) {
	if _, err := s.Trucks.FindByID(ctx, truckID); err != nil {
		return nil, lookupErr(err, "Foodtruck not found with id of %s", truckID)
	}
	items, err := s.Repo.FindByTruck(ctx, truckID)
	if err != nil {
		return nil, apperr.Internal(err, "list food items failed")
	}
	return items, nil
}

func (s *FoodItemService) Get(ctx context.Context, id string) (*entity.FoodItem, error) {
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No food item with the id of %s", id)
	}
	return item, nil
}

// Create adds a menu item to a truck the principal operates.
func (s *FoodItemService) Create(ctx context.Context, p Principal, truckID string, in CreateFoodItemIn) (*entity.FoodItem, error) {
	ft, err := s.Trucks.FindByID(ctx, truckID)
	if err != nil {
		return nil, lookupErr(err, "No food truck with the id of %s", truckID)
	}
	if err := requireOwner(ft.UserID, p, "add a food item to", fmt.Sprintf("food truck %s", ft.ID)); err != nil {
		return nil, err
	}

	item := &entity.FoodItem{
		Title:       in.Title,
		Description: in.Description,
		Ingredients: in.Ingredients,
		Nutrition:   in.Nutrition,
		Price:       *in.Price,
		Photo:       entity.DefaultFoodItemPhoto,
		FoodTruckID: ft.ID,
		UserID:      p.ID,
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, persistErr(err)
	}
	return item, nil
}

// Update never touches costs already copied into order items.
func (s *FoodItemService) Update(ctx context.Context, p Principal, id string, in UpdateFoodItemIn) (*entity.FoodItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(item.UserID, p, "update", fmt.Sprintf("food item %s", id)); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Ingredients != nil {
		fields["ingredients"] = *in.Ingredients
	}
	if in.Nutrition != nil {
		fields["nutrition"] = *in.Nutrition
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if len(fields) > 0 {
		if err := s.Repo.Updates(ctx, id, fields); err != nil {
			return nil, persistErr(err)
		}
	}
	return s.Get(ctx, id)
}

func (s *FoodItemService) Delete(ctx context.Context, p Principal, id string) (*entity.FoodItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(item.UserID, p, "delete", fmt.Sprintf("food item %s", id)); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, persistErr(err)
	}
	return item, nil
}

func (s *FoodItemService) UploadPhoto(ctx context.Context, p Principal, id string, fh *multipart.FileHeader) (*entity.FoodItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(item.UserID, p, "update", fmt.Sprintf("food item %s", id)); err != nil {
		return nil, err
	}
	photo, err := s.Photos.save(ctx, id, fh)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Updates(ctx, id, map[string]any{"photo": photo}); err != nil {
		return nil, persistErr(err)
	}
	item.Photo = photo
	return item, nil
}
