package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geocoder"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

type UserGroupService struct {
	DB          *gorm.DB
	Repo        *repository.UserGroupRepository
	Memberships *repository.MembershipRepository
	Ratings     *repository.RatingRepository
	Geocoder    geocoder.Geocoder
	Photos      *photoSaver
}

type CreateUserGroupIn struct {
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"max=500"`
	Address     string `json:"address"`
}

type UpdateUserGroupIn struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=80"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func (s *UserGroupService) List(ctx context.Context, p repository.Page) ([]entity.UserGroup, error) {
	groups, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list user groups failed")
	}
	return groups, nil
}

// ListOwnedBy returns the groups ownerID created.
func (s *UserGroupService) ListOwnedBy(ctx context.Context, ownerID string) ([]entity.UserGroup, error) {
	groups, err := s.Repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err, "list user groups failed")
	}
	return groups, nil
}

func (s *UserGroupService) Get(ctx context.Context, id string) (*entity.UserGroup, error) {
	g, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No user group with the id of %s", id)
	}
	return g, nil
}

// Create stores a group owned by p. A non-empty address is geocoded first
// and a failed lookup aborts the create.
func (s *UserGroupService) Create(ctx context.Context, p Principal, in CreateUserGroupIn) (*entity.UserGroup, error) {
	if err := rejectOperator(p, "create user groups"); err != nil {
		return nil, err
	}

	g := &entity.UserGroup{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Photo:       entity.DefaultUserGroupPhoto,
		OwnerID:     p.ID,
	}
	g.Slug = slugOf(g.Name)
	if addr := strings.TrimSpace(in.Address); addr != "" {
		loc, err := locate(ctx, s.Geocoder, addr)
		if err != nil {
			return nil, err
		}
		g.Location = loc
	}
	if err := s.Repo.Create(ctx, g); err != nil {
		return nil, persistErr(err)
	}
	return g, nil
}

func (s *UserGroupService) Update(ctx context.Context, p Principal, id string, in UpdateUserGroupIn) (*entity.UserGroup, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(g.OwnerID, p, "update", fmt.Sprintf("user group %s", id)); err != nil {
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
	if len(fields) > 0 {
		if err := s.Repo.Updates(ctx, id, fields); err != nil {
			return nil, persistErr(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the group, its memberships, its ratings and its group
// orders with their member orders.
func (s *UserGroupService) Delete(ctx context.Context, p Principal, id string) (*entity.UserGroup, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(g.OwnerID, p, "delete", fmt.Sprintf("user group %s", id)); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []string
		if err := tx.Model(&entity.GroupOrder{}).Where("user_group_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("group_order_id IN ?", orderIDs).Delete(&entity.GroupMemberOrder{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", orderIDs).Delete(&entity.GroupOrder{}).Error; err != nil {
				return err
			}
		}
		if err := s.Memberships.WithTx(tx).DeleteByGroup(ctx, id); err != nil {
			return err
		}
		if err := s.Ratings.WithTx(tx).DeleteBySubject(ctx, entity.RatingUserGroup, id); err != nil {
			return err
		}
		return s.Repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return nil, persistErr(err)
	}
	return g, nil
}

func (s *UserGroupService) UploadPhoto(ctx context.Context, p Principal, id string, fh *multipart.FileHeader) (*entity.UserGroup, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(g.OwnerID, p, "update", fmt.Sprintf("user group %s", id)); err != nil {
		return nil, err
	}
	photo, err := s.Photos.save(ctx, id, fh)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Updates(ctx, id, map[string]any{"photo": photo}); err != nil {
		return nil, persistErr(err)
	}
	g.Photo = photo
	return g, nil
}
