package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type FoodTruckRepository struct {
	store[entity.FoodTruck]
}

func NewFoodTruckRepository(db *gorm.DB) *FoodTruckRepository {
	return &FoodTruckRepository{store[entity.FoodTruck]{DB: db}}
}

func (r *FoodTruckRepository) WithTx(tx *gorm.DB) *FoodTruckRepository {
	return NewFoodTruckRepository(tx)
}

// FindByOwner returns the first truck operated by userID.
func (r *FoodTruckRepository) FindByOwner(ctx context.Context, userID string) (*entity.FoodTruck, error) {
	var ft entity.FoodTruck
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").First(&ft).Error
	if err != nil {
		return nil, err
	}
	return &ft, nil
}

// ListLocated returns every truck that has a geocoded location.
func (r *FoodTruckRepository) ListLocated(ctx context.Context) ([]entity.FoodTruck, error) {
	var out []entity.FoodTruck
	err := r.DB.WithContext(ctx).Where("location_type <> ''").Find(&out).Error
	return out, err
}
