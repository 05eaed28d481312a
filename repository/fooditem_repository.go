package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type FoodItemRepository struct {
	store[entity.FoodItem]
}

func NewFoodItemRepository(db *gorm.DB) *FoodItemRepository {
	return &FoodItemRepository{store[entity.FoodItem]{DB: db}}
}

func (r *FoodItemRepository) WithTx(tx *gorm.DB) *FoodItemRepository {
	return NewFoodItemRepository(tx)
}

func (r *FoodItemRepository) FindByTruck(ctx context.Context, truckID string) ([]entity.FoodItem, error) {
	return r.List(ctx, map[string]any{"food_truck_id": truckID}, Page{})
}

func (r *FoodItemRepository) DeleteByTruck(ctx context.Context, truckID string) error {
	return r.DeleteWhere(ctx, map[string]any{"food_truck_id": truckID})
}
