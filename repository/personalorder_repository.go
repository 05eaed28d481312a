package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type PersonalOrderRepository struct {
	store[entity.PersonalOrder]
}

func NewPersonalOrderRepository(db *gorm.DB) *PersonalOrderRepository {
	return &PersonalOrderRepository{store[entity.PersonalOrder]{DB: db}}
}

func (r *PersonalOrderRepository) WithTx(tx *gorm.DB) *PersonalOrderRepository {
	return NewPersonalOrderRepository(tx)
}

func (r *PersonalOrderRepository) IDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&entity.PersonalOrder{}).Pluck("id", &ids).Error
	return ids, err
}

type PersonalOrderItemRepository struct {
	store[entity.PersonalOrderItem]
}

func NewPersonalOrderItemRepository(db *gorm.DB) *PersonalOrderItemRepository {
	return &PersonalOrderItemRepository{store[entity.PersonalOrderItem]{DB: db}}
}

func (r *PersonalOrderItemRepository) WithTx(tx *gorm.DB) *PersonalOrderItemRepository {
	return NewPersonalOrderItemRepository(tx)
}

func (r *PersonalOrderItemRepository) FindByOrder(ctx context.Context, orderID string) ([]entity.PersonalOrderItem, error) {
	return r.List(ctx, map[string]any{"personal_order_id": orderID}, Page{})
}

func (r *PersonalOrderItemRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	return r.DeleteWhere(ctx, map[string]any{"personal_order_id": orderID})
}
