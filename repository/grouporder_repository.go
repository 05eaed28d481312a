package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type GroupOrderRepository struct {
	store[entity.GroupOrder]
}

func NewGroupOrderRepository(db *gorm.DB) *GroupOrderRepository {
	return &GroupOrderRepository{store[entity.GroupOrder]{DB: db}}
}

func (r *GroupOrderRepository) WithTx(tx *gorm.DB) *GroupOrderRepository {
	return NewGroupOrderRepository(tx)
}

func (r *GroupOrderRepository) IDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&entity.GroupOrder{}).Pluck("id", &ids).Error
	return ids, err
}

type GroupMemberOrderRepository struct {
	store[entity.GroupMemberOrder]
}

func NewGroupMemberOrderRepository(db *gorm.DB) *GroupMemberOrderRepository {
	return &GroupMemberOrderRepository{store[entity.GroupMemberOrder]{DB: db}}
}

func (r *GroupMemberOrderRepository) WithTx(tx *gorm.DB) *GroupMemberOrderRepository {
	return NewGroupMemberOrderRepository(tx)
}

func (r *GroupMemberOrderRepository) FindByGroupOrder(ctx context.Context, groupOrderID string) ([]entity.GroupMemberOrder, error) {
	return r.List(ctx, map[string]any{"group_order_id": groupOrderID}, Page{})
}

func (r *GroupMemberOrderRepository) FindByPersonalOrder(ctx context.Context, personalOrderID string) ([]entity.GroupMemberOrder, error) {
	return r.List(ctx, map[string]any{"personal_order_id": personalOrderID}, Page{})
}

func (r *GroupMemberOrderRepository) DeleteByGroupOrder(ctx context.Context, groupOrderID string) error {
	return r.DeleteWhere(ctx, map[string]any{"group_order_id": groupOrderID})
}

// SetCostByPersonalOrder copies a personal order's cost onto every member
// order that links it.
func (r *GroupMemberOrderRepository) SetCostByPersonalOrder(ctx context.Context, personalOrderID string, cost float64) error {
	return r.DB.WithContext(ctx).Model(&entity.GroupMemberOrder{}).
		Where("personal_order_id = ?", personalOrderID).
		Update("cost", cost).Error
}
