package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geocoder"
	"github.com/bigbadbobbo/foodtruck-api/repository"
	"github.com/bigbadbobbo/foodtruck-api/utils"
)

// AuthService handles register/login and token issuing.
type AuthService struct {
	userRepo  *repository.UserRepository
	geocoder  geocoder.Geocoder
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, g geocoder.Geocoder, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		geocoder:  g,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type RegisterIn struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user operator"`
}

type LoginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateDetailsIn struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type UpdatePasswordIn struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type UpdateLocationIn struct {
	Address string `json:"address" binding:"required"`
}

func hashPassword(pw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal(err, "hash password failed")
	}
	return string(hashed), nil
}

// Register creates a user or operator account. Admins are only seeded.
func (s *AuthService) Register(ctx context.Context, in RegisterIn) (string, *entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	count, err := s.userRepo.CountByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Internal(err, "register failed")
	}
	if count > 0 {
		return "", nil, apperr.Validation("Duplicate field value entered")
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, persistErr(err)
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, in LoginIn) (string, *entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return "", nil, apperr.Internal(err, "login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}

	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, p Principal) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, lookupErr(err, "No user with the id of %s", p.ID)
	}
	return user, nil
}

// UpdateDetails changes the caller's own name or email. Role changes go
// through the admin user routes.
func (s *AuthService) UpdateDetails(ctx context.Context, p Principal, in UpdateDetailsIn) (*entity.User, error) {
	if _, err := s.Me(ctx, p); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := s.emailFree(ctx, email, p.ID); err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if len(fields) > 0 {
		if err := s.userRepo.Updates(ctx, p.ID, fields); err != nil {
			return nil, persistErr(err)
		}
	}
	return s.Me(ctx, p)
}

// UpdatePassword checks the current password before storing the new one
// and hands back a fresh token.
func (s *AuthService) UpdatePassword(ctx context.Context, p Principal, in UpdatePasswordIn) (string, *entity.User, error) {
	user, err := s.Me(ctx, p)
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return "", nil, apperr.Unauthorized("Password is incorrect")
	}
	hashed, err := hashPassword(in.NewPassword)
	if err != nil {
		return "", nil, err
	}
	if err := s.userRepo.Updates(ctx, user.ID, map[string]any{"password": hashed}); err != nil {
		return "", nil, persistErr(err)
	}
	user.Password = hashed
	return s.issue(user)
}

// UpdateLocation geocodes address onto the caller. A failed lookup leaves
// the stored location untouched.
func (s *AuthService) UpdateLocation(ctx context.Context, p Principal, in UpdateLocationIn) (*entity.User, error) {
	user, err := s.Me(ctx, p)
	if err != nil {
		return nil, err
	}
	loc, err := locate(ctx, s.geocoder, strings.TrimSpace(in.Address))
	if err != nil {
		return nil, err
	}
	user.Location = loc
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, persistErr(err)
	}
	return user, nil
}

// emailFree rejects an email held by anyone but self.
func (s *AuthService) emailFree(ctx context.Context, email, self string) error {
	u, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return apperr.Internal(err, "email lookup failed")
	case u.ID != self:
		return apperr.Validation("Duplicate field value entered")
	}
	return nil
}

func (s *AuthService) issue(user *entity.User) (string, *entity.User, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Internal(err, "cannot generate token")
	}
	return token, user, nil
}
