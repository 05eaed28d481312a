package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

// UserService is the admin-only user management surface.
type UserService struct {
	DB   *gorm.DB
	Repo *repository.UserRepository
}

func NewUserService(db *gorm.DB, repo *repository.UserRepository) *UserService {
	return &UserService{DB: db, Repo: repo}
}

type CreateUserIn struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user operator admin"`
}

type UpdateUserIn struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
	Role *string `json:"role" binding:"omitempty,oneof=user operator admin"`
}

func (s *UserService) List(ctx context.Context, p repository.Page) ([]entity.User, error) {
	users, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list users failed")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No user with the id of %s", id)
	}
	return u, nil
}

// Create lets an admin pick any role, admin included.
func (s *UserService) Create(ctx context.Context, in CreateUserIn) (*entity.User, error) {
	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	count, err := s.Repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err, "create user failed")
	}
	if count > 0 {
		return nil, apperr.Validation("Duplicate field value entered")
	}
	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashed,
		Role:     in.Role,
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, persistErr(err)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserIn) (*entity.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if len(fields) > 0 {
		if err := s.Repo.Updates(ctx, id, fields); err != nil {
			return nil, persistErr(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the user together with the ratings given about them.
func (s *UserService) Delete(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewRatingRepository(tx).DeleteBySubject(ctx, entity.RatingUser, id); err != nil {
			return err
		}
		return repository.NewUserRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		return nil, persistErr(err)
	}
	return u, nil
}
