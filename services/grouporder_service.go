package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/events"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

type GroupOrderService struct {
	DB           *gorm.DB
	Repo         *repository.GroupOrderRepository
	MemberOrders *repository.GroupMemberOrderRepository
	Groups       *repository.UserGroupRepository
	Memberships  *repository.MembershipRepository
	Trucks       *repository.FoodTruckRepository
	Events       *publisher
}

type CreateGroupOrderIn struct {
	FoodTruck string `json:"foodtruck" binding:"required"`
	UserGroup string `json:"usergroup" binding:"required"`
}

type UpdateGroupOrderIn struct {
	IsPlaced *bool `json:"isPlaced" binding:"required"`
}

// inGroup lets admins, the group owner and members act on a group's orders.
func inGroup(ctx context.Context, groups *repository.UserGroupRepository, memberships *repository.MembershipRepository, p Principal, groupID string) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	g, err := groups.FindByID(ctx, groupID)
	if err != nil {
		return false, lookupErr(err, "There is no group with id %s", groupID)
	}
	if g.OwnerID == p.ID {
		return true, nil
	}
	ok, err := memberships.IsMember(ctx, p.ID, groupID)
	if err != nil {
		return false, apperr.Internal(err, "membership lookup failed")
	}
	return ok, nil
}

func (s *GroupOrderService) List(ctx context.Context, p repository.Page) ([]entity.GroupOrder, error) {
	orders, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list group orders failed")
	}
	return orders, nil
}

func (s *GroupOrderService) Get(ctx context.Context, id string) (*entity.GroupOrder, error) {
	o, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No group order with the id of %s", id)
	}
	return o, nil
}

func (s *GroupOrderService) ListMemberOrders(ctx context.Context, id string) ([]entity.GroupMemberOrder, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	mos, err := s.MemberOrders.FindByGroupOrder(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "list member orders failed")
	}
	return mos, nil
}

func (s *GroupOrderService) Create(ctx context.Context, p Principal, in CreateGroupOrderIn) (*entity.GroupOrder, error) {
	if _, err := s.Trucks.FindByID(ctx, in.FoodTruck); err != nil {
		return nil, lookupErr(err, "There is no foodtruck with id %s", in.FoodTruck)
	}
	if _, err := s.Groups.FindByID(ctx, in.UserGroup); err != nil {
		return nil, lookupErr(err, "There is no group with id %s", in.UserGroup)
	}
	if err := rejectOperator(p, "make orders"); err != nil {
		return nil, err
	}
	ok, err := inGroup(ctx, s.Groups, s.Memberships, p, in.UserGroup)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Unauthorized("User %s is not authorized to order for group %s", p.ID, in.UserGroup)
	}

	o := &entity.GroupOrder{UserGroupID: in.UserGroup, FoodTruckID: in.FoodTruck, UserID: p.ID}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, persistErr(err)
	}
	s.Events.publish(ctx, events.GroupOrderCreated, in.FoodTruck, o)
	return o, nil
}

// Update places or reopens the order.
func (s *GroupOrderService) Update(ctx context.Context, p Principal, id string, in UpdateGroupOrderIn) (*entity.GroupOrder, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := inGroup(ctx, s.Groups, s.Memberships, p, o.UserGroupID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Unauthorized("User %s is not authorized to update group order %s", p.ID, id)
	}

	fields := map[string]any{"is_placed": *in.IsPlaced}
	switch {
	case *in.IsPlaced && !o.IsPlaced:
		fields["when_placed"] = time.Now().UTC()
	case !*in.IsPlaced:
		fields["when_placed"] = gorm.Expr("NULL")
	}
	if err := s.Repo.Updates(ctx, id, fields); err != nil {
		return nil, persistErr(err)
	}
	return s.Get(ctx, id)
}

// Delete is reserved to admins and takes the member orders with it.
func (s *GroupOrderService) Delete(ctx context.Context, p Principal, id string) (*entity.GroupOrder, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, apperr.Unauthorized("User %s is not authorized to delete group order %s", p.ID, id)
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.MemberOrders.WithTx(tx).DeleteByGroupOrder(ctx, id); err != nil {
			return err
		}
		return s.Repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return nil, persistErr(err)
	}
	return o, nil
}

type GroupMemberOrderService struct {
	Repo        *repository.GroupMemberOrderRepository
	GroupOrders *repository.GroupOrderRepository
	Personal    *repository.PersonalOrderRepository
	Groups      *repository.UserGroupRepository
	Memberships *repository.MembershipRepository
	Rollup      *Rollup
}

type CreateMemberOrderIn struct {
	GroupOrder    string `json:"grouporder" binding:"required"`
	PersonalOrder string `json:"personalorder" binding:"required"`
	Instructions  string `json:"instructions" binding:"max=500"`
}

type UpdateMemberOrderIn struct {
	Instructions *string `json:"instructions" binding:"omitempty,max=500"`
}

func (s *GroupMemberOrderService) List(ctx context.Context, p repository.Page) ([]entity.GroupMemberOrder, error) {
	mos, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list member orders failed")
	}
	return mos, nil
}

func (s *GroupMemberOrderService) Get(ctx context.Context, id string) (*entity.GroupMemberOrder, error) {
	mo, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No groupmemberorder with the id of %s", id)
	}
	return mo, nil
}

// Create links one of p's personal orders into a group order. The member
// order starts with the personal order's cost and follows it afterwards.
func (s *GroupMemberOrderService) Create(ctx context.Context, p Principal, in CreateMemberOrderIn) (*entity.GroupMemberOrder, error) {
	g, err := s.GroupOrders.FindByID(ctx, in.GroupOrder)
	if err != nil {
		return nil, lookupErr(err, "There is no group order with id %s", in.GroupOrder)
	}
	po, err := s.Personal.FindByID(ctx, in.PersonalOrder)
	if err != nil {
		return nil, lookupErr(err, "There is no personal order with id %s", in.PersonalOrder)
	}
	if err := s.requireGroup(ctx, p, g.UserGroupID, "add to group order", g.ID); err != nil {
		return nil, err
	}
	if err := requireOwner(po.UserID, p, "link", fmt.Sprintf("personal order %s", po.ID)); err != nil {
		return nil, err
	}
	if g.IsPlaced {
		return nil, apperr.Validation("Group order %s has already been placed", g.ID)
	}
	if po.FoodTruckID != g.FoodTruckID {
		return nil, apperr.Validation("Personal order %s is for a different food truck than group order %s", po.ID, g.ID)
	}
	dup, err := s.Repo.Exists(ctx, map[string]any{"group_order_id": g.ID, "personal_order_id": po.ID})
	if err != nil {
		return nil, apperr.Internal(err, "create member order failed")
	}
	if dup {
		return nil, apperr.Validation("Personal order %s is already part of group order %s", po.ID, g.ID)
	}

	mo := &entity.GroupMemberOrder{
		GroupOrderID:    g.ID,
		PersonalOrderID: po.ID,
		UserID:          p.ID,
		Instructions:    in.Instructions,
		Cost:            po.Cost,
	}
	if err := s.Repo.Create(ctx, mo); err != nil {
		return nil, persistErr(err)
	}
	// po.Cost may be stale by now; recompute under the personal order lock,
	// which also rewrites mo and chains into the group order.
	s.Rollup.Trigger(ctx, RollupPersonalOrderCost, po.ID)
	return s.Get(ctx, mo.ID)
}

func (s *GroupMemberOrderService) Update(ctx context.Context, p Principal, id string, in UpdateMemberOrderIn) (*entity.GroupMemberOrder, error) {
	mo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := s.GroupOrders.FindByID(ctx, mo.GroupOrderID)
	if err != nil {
		return nil, lookupErr(err, "No grouporder with the id of %s", mo.GroupOrderID)
	}
	if err := s.requireGroup(ctx, p, g.UserGroupID, "update group member order", id); err != nil {
		return nil, err
	}
	if in.Instructions != nil {
		if err := s.Repo.Updates(ctx, id, map[string]any{"instructions": *in.Instructions}); err != nil {
			return nil, persistErr(err)
		}
	}
	s.Rollup.Trigger(ctx, RollupGroupOrderCost, g.ID)
	return s.Get(ctx, id)
}

func (s *GroupMemberOrderService) Delete(ctx context.Context, p Principal, id string) (*entity.GroupMemberOrder, error) {
	mo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := s.GroupOrders.FindByID(ctx, mo.GroupOrderID)
	if err != nil {
		return nil, lookupErr(err, "No grouporder with the id of %s", mo.GroupOrderID)
	}
	if err := s.requireGroup(ctx, p, g.UserGroupID, "delete group member order", id); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, persistErr(err)
	}
	s.Rollup.Trigger(ctx, RollupGroupOrderCost, g.ID)
	return mo, nil
}

func (s *GroupMemberOrderService) requireGroup(ctx context.Context, p Principal, groupID, action, id string) error {
	ok, err := inGroup(ctx, s.Groups, s.Memberships, p, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Unauthorized("User %s is not authorized to %s %s", p.ID, action, id)
	}
	return nil
}
