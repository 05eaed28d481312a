package repository

import (
	"context"
	"strings"

	"github.com/bigbadbobbo/foodtruck-api/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	store[entity.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{store[entity.User]{DB: db}}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&entity.User{}).
		Where("email = ?", strings.ToLower(email)).Count(&count).Error
	return count, err
}
