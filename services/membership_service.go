package services

import (
	"context"
	"fmt"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

type MembershipService struct {
	Repo   *repository.MembershipRepository
	Groups *repository.UserGroupRepository
}

func (s *MembershipService) List(ctx context.Context, p repository.Page) ([]entity.Membership, error) {
	ms, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list memberships failed")
	}
	return ms, nil
}

func (s *MembershipService) ListByGroup(ctx context.Context, groupID string) ([]entity.Membership, error) {
	if _, err := s.Groups.FindByID(ctx, groupID); err != nil {
		return nil, lookupErr(err, "There is no group with id %s", groupID)
	}
	ms, err := s.Repo.List(ctx, map[string]any{"user_group_id": groupID}, repository.Page{})
	if err != nil {
		return nil, apperr.Internal(err, "list memberships failed")
	}
	return ms, nil
}

func (s *MembershipService) ListByUser(ctx context.Context, userID string) ([]entity.Membership, error) {
	ms, err := s.Repo.List(ctx, map[string]any{"user_id": userID}, repository.Page{})
	if err != nil {
		return nil, apperr.Internal(err, "list memberships failed")
	}
	return ms, nil
}

func (s *MembershipService) Get(ctx context.Context, id string) (*entity.Membership, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No membership with the id of %s", id)
	}
	return m, nil
}

// Join makes p a member of the group.
func (s *MembershipService) Join(ctx context.Context, p Principal, groupID string) (*entity.Membership, error) {
	if _, err := s.Groups.FindByID(ctx, groupID); err != nil {
		return nil, lookupErr(err, "There is no group with id %s", groupID)
	}
	if err := rejectOperator(p, "join groups"); err != nil {
		return nil, err
	}

	already, err := s.Repo.IsMember(ctx, p.ID, groupID)
	if err != nil {
		return nil, apperr.Internal(err, "join group failed")
	}
	if already {
		return nil, apperr.Validation("User %s is already a member of group %s", p.ID, groupID)
	}

	m := &entity.Membership{UserID: p.ID, UserGroupID: groupID}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, persistErr(err)
	}
	return m, nil
}

func (s *MembershipService) Delete(ctx context.Context, p Principal, id string) (*entity.Membership, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(m.UserID, p, "delete", fmt.Sprintf("membership %s", id)); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, persistErr(err)
	}
	return m, nil
}
