package repository

import (
	"context"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type UserGroupRepository struct {
	store[entity.UserGroup]
}

func NewUserGroupRepository(db *gorm.DB) *UserGroupRepository {
	return &UserGroupRepository{store[entity.UserGroup]{DB: db}}
}

func (r *UserGroupRepository) WithTx(tx *gorm.DB) *UserGroupRepository {
	return NewUserGroupRepository(tx)
}

func (r *UserGroupRepository) FindByOwner(ctx context.Context, ownerID string) ([]entity.UserGroup, error) {
	return r.List(ctx, map[string]any{"owner_id": ownerID}, Page{})
}

func (r *UserGroupRepository) IDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&entity.UserGroup{}).Pluck("id", &ids).Error
	return ids, err
}
