package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/events"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

// PersonalOrderService manages personal orders and their line items.
type PersonalOrderService struct {
	DB           *gorm.DB
	Repo         *repository.PersonalOrderRepository
	Items        *repository.PersonalOrderItemRepository
	FoodItems    *repository.FoodItemRepository
	Trucks       *repository.FoodTruckRepository
	MemberOrders *repository.GroupMemberOrderRepository
	Rollup       *Rollup
	Events       *publisher
}

type AddItemIn struct {
	FoodItem      string `json:"fooditem" binding:"required"`
	Customization string `json:"customization" binding:"max=500"`
}

func (s *PersonalOrderService) List(ctx context.Context, p repository.Page) ([]entity.PersonalOrder, error) {
	orders, err := s.Repo.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list personal orders failed")
	}
	return orders, nil
}

func (s *PersonalOrderService) ListByTruck(ctx context.Context, truckID string) ([]entity.PersonalOrder, error) {
	if _, err := s.Trucks.FindByID(ctx, truckID); err != nil {
		return nil, lookupErr(err, "There is no foodtruck with id %s", truckID)
	}
	orders, err := s.Repo.List(ctx, map[string]any{"food_truck_id": truckID}, repository.Page{})
	if err != nil {
		return nil, apperr.Internal(err, "list personal orders failed")
	}
	return orders, nil
}

func (s *PersonalOrderService) ListByUser(ctx context.Context, userID string) ([]entity.PersonalOrder, error) {
	orders, err := s.Repo.List(ctx, map[string]any{"user_id": userID}, repository.Page{})
	if err != nil {
		return nil, apperr.Internal(err, "list personal orders failed")
	}
	return orders, nil
}

func (s *PersonalOrderService) Get(ctx context.Context, id string) (*entity.PersonalOrder, error) {
	o, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No personal order with the id of %s", id)
	}
	return o, nil
}

// Create opens an empty order for p at a truck.
func (s *PersonalOrderService) Create(ctx context.Context, p Principal, truckID string) (*entity.PersonalOrder, error) {
	if _, err := s.Trucks.FindByID(ctx, truckID); err != nil {
		return nil, lookupErr(err, "There is no foodtruck with id %s", truckID)
	}
	if err := rejectOperator(p, "make orders"); err != nil {
		return nil, err
	}

	o := &entity.PersonalOrder{UserID: p.ID, FoodTruckID: truckID}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, persistErr(err)
	}
	s.Events.publish(ctx, events.PersonalOrderCreated, truckID, o)
	return o, nil
}

// Delete removes the order, its items and every group link to it, then
// refreshes the group orders that lost a member order.
func (s *PersonalOrderService) Delete(ctx context.Context, p Principal, id string) (*entity.PersonalOrder, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(o.UserID, p, "delete", fmt.Sprintf("personal order %s", id)); err != nil {
		return nil, err
	}

	var groupOrderIDs []string
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links, err := s.MemberOrders.WithTx(tx).FindByPersonalOrder(ctx, id)
		if err != nil {
			return err
		}
		for _, l := range links {
			groupOrderIDs = append(groupOrderIDs, l.GroupOrderID)
		}
		if err := s.MemberOrders.WithTx(tx).DeleteWhere(ctx, map[string]any{"personal_order_id": id}); err != nil {
			return err
		}
		if err := s.Items.WithTx(tx).DeleteByOrder(ctx, id); err != nil {
			return err
		}
		return s.Repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return nil, persistErr(err)
	}
	for _, gid := range groupOrderIDs {
		s.Rollup.Trigger(ctx, RollupGroupOrderCost, gid)
	}
	return o, nil
}

func (s *PersonalOrderService) ListAllItems(ctx context.Context, p repository.Page) ([]entity.PersonalOrderItem, error) {
	items, err := s.Items.List(ctx, nil, p)
	if err != nil {
		return nil, apperr.Internal(err, "list personal order items failed")
	}
	return items, nil
}

func (s *PersonalOrderService) ListItems(ctx context.Context, orderID string) ([]entity.PersonalOrderItem, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := s.Items.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, apperr.Internal(err, "list personal order items failed")
	}
	return items, nil
}

func (s *PersonalOrderService) GetItem(ctx context.Context, id string) (*entity.PersonalOrderItem, error) {
	it, err := s.Items.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "No personal order item with the id of %s", id)
	}
	return it, nil
}

// AddItem appends a menu item to the order. The item's cost is the food
// item's price at this moment and is not touched by later price changes.
func (s *PersonalOrderService) AddItem(ctx context.Context, p Principal, orderID string, in AddItemIn) (*entity.PersonalOrderItem, error) {
	o, err := s.Repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "There is no order with id %s", orderID)
	}
	if err := requireOwner(o.UserID, p, "add to", fmt.Sprintf("order %s", orderID)); err != nil {
		return nil, err
	}
	fi, err := s.FoodItems.FindByID(ctx, in.FoodItem)
	if err != nil {
		return nil, lookupErr(err, "No food item with the id of %s", in.FoodItem)
	}
	if fi.FoodTruckID != o.FoodTruckID {
		return nil, apperr.Validation("Food item %s is not on the menu of food truck %s", fi.ID, o.FoodTruckID)
	}

	it := &entity.PersonalOrderItem{
		PersonalOrderID: orderID,
		FoodItemID:      fi.ID,
		Customization:   in.Customization,
		Cost:            fi.Price,
	}
	if err := s.Items.Create(ctx, it); err != nil {
		return nil, persistErr(err)
	}
	s.Rollup.Trigger(ctx, RollupPersonalOrderCost, orderID)
	return it, nil
}

func (s *PersonalOrderService) DeleteItem(ctx context.Context, p Principal, id string) (*entity.PersonalOrderItem, error) {
	it, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	o, err := s.Get(ctx, it.PersonalOrderID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(o.UserID, p, "delete", fmt.Sprintf("personal order item %s", id)); err != nil {
		return nil, err
	}
	if err := s.Items.Delete(ctx, id); err != nil {
		return nil, persistErr(err)
	}
	s.Rollup.Trigger(ctx, RollupPersonalOrderCost, o.ID)
	return it, nil
}
