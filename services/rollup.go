package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/metrics"
)

// RollupKind names one derived field and the children it is computed from.
type RollupKind string

const (
	RollupFoodTruckRating   RollupKind = "foodtruck_rating"
	RollupUserRating        RollupKind = "user_rating"
	RollupUserGroupRating   RollupKind = "usergroup_rating"
	RollupPersonalOrderCost RollupKind = "personalorder_cost"
	RollupGroupOrderCost    RollupKind = "grouporder_cost"
)

// rollupForRating maps a rating kind onto the average it feeds.
func rollupForRating(k entity.RatingKind) RollupKind {
	switch k {
	case entity.RatingUser:
		return RollupUserRating
	case entity.RatingUserGroup:
		return RollupUserGroupRating
	default:
		return RollupFoodTruckRating
	}
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// Rollup recomputes derived aggregates. Recomputation for one parent is
// serialized so the stored value always matches some complete snapshot of
// its children.
type Rollup struct {
	db  *gorm.DB
	log *logrus.Logger

	mu    sync.Mutex
	locks map[string]*keyLock
}

func NewRollup(db *gorm.DB, log *logrus.Logger) *Rollup {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Rollup{db: db, log: log, locks: make(map[string]*keyLock)}
}

func (r *Rollup) lock(key string) func() {
	r.mu.Lock()
	l, ok := r.locks[key]
	if !ok {
		l = &keyLock{}
		r.locks[key] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		r.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.locks, key)
		}
		r.mu.Unlock()
	}
}

// Trigger recomputes and swallows the error after logging it. Callers have
// already committed the child mutation and must not fail because of this.
func (r *Rollup) Trigger(ctx context.Context, kind RollupKind, parentID string) {
	if parentID == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := r.Recompute(ctx, kind, parentID); err != nil {
		r.log.WithError(err).
			WithField("kind", kind).
			WithField("parent", parentID).
			Error("rollup failed")
	}
}

// Recompute rewrites the aggregate of one parent and follows the cost chain
// from personal orders into the group orders that link them.
func (r *Rollup) Recompute(ctx context.Context, kind RollupKind, parentID string) error {
	err := r.recompute(ctx, kind, parentID)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.RollupsTotal.WithLabelValues(string(kind), result).Inc()
	if err != nil || kind != RollupPersonalOrderCost {
		return err
	}

	// the personal order lock is released before group orders are touched
	var groupOrderIDs []string
	err = r.db.WithContext(ctx).Model(&entity.GroupMemberOrder{}).
		Where("personal_order_id = ?", parentID).
		Distinct().Pluck("group_order_id", &groupOrderIDs).Error
	if err != nil {
		return fmt.Errorf("rollup: linked group orders of %s: %w", parentID, err)
	}
	var errs []error
	for _, id := range groupOrderIDs {
		if err := r.Recompute(ctx, RollupGroupOrderCost, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type aggregate struct {
	N int64
	V sql.NullFloat64
}

func (r *Rollup) recompute(ctx context.Context, kind RollupKind, parentID string) error {
	unlock := r.lock(string(kind) + ":" + parentID)
	defer unlock()

	db := r.db.WithContext(ctx)
	var agg aggregate

	switch kind {
	case RollupFoodTruckRating, RollupUserRating, RollupUserGroupRating:
		var ratingKind entity.RatingKind
		var parent any
		switch kind {
		case RollupFoodTruckRating:
			ratingKind, parent = entity.RatingFoodTruck, &entity.FoodTruck{}
		case RollupUserRating:
			ratingKind, parent = entity.RatingUser, &entity.User{}
		default:
			ratingKind, parent = entity.RatingUserGroup, &entity.UserGroup{}
		}
		err := db.Model(&entity.Rating{}).
			Select("COUNT(*) AS n, AVG(rating) AS v").
			Where("kind = ? AND subject_id = ?", ratingKind, parentID).
			Scan(&agg).Error
		if err != nil {
			return fmt.Errorf("rollup %s: aggregate %s: %w", kind, parentID, err)
		}
		var value any = gorm.Expr("NULL")
		if agg.N > 0 && agg.V.Valid {
			value = agg.V.Float64
		}
		return r.write(db.Model(parent), kind, parentID, "average_rating", value)

	case RollupPersonalOrderCost:
		err := db.Model(&entity.PersonalOrderItem{}).
			Select("COUNT(*) AS n, SUM(cost) AS v").
			Where("personal_order_id = ?", parentID).
			Scan(&agg).Error
		if err != nil {
			return fmt.Errorf("rollup %s: aggregate %s: %w", kind, parentID, err)
		}
		if err := r.write(db.Model(&entity.PersonalOrder{}), kind, parentID, "cost", costOf(agg)); err != nil {
			return err
		}
		// member orders mirror the personal order they link
		err = db.Model(&entity.GroupMemberOrder{}).
			Where("personal_order_id = ?", parentID).
			Update("cost", costOf(agg)).Error
		if err != nil {
			return fmt.Errorf("rollup %s: sync member orders of %s: %w", kind, parentID, err)
		}
		return nil

	case RollupGroupOrderCost:
		err := db.Model(&entity.GroupMemberOrder{}).
			Select("COUNT(*) AS n, SUM(cost) AS v").
			Where("group_order_id = ?", parentID).
			Scan(&agg).Error
		if err != nil {
			return fmt.Errorf("rollup %s: aggregate %s: %w", kind, parentID, err)
		}
		return r.write(db.Model(&entity.GroupOrder{}), kind, parentID, "cost", costOf(agg))
	}
	return fmt.Errorf("rollup: unknown kind %q", kind)
}

func costOf(agg aggregate) float64 {
	if agg.N == 0 || !agg.V.Valid {
		return 0
	}
	return agg.V.Float64
}

func (r *Rollup) write(q *gorm.DB, kind RollupKind, parentID, column string, value any) error {
	res := q.Where("id = ?", parentID).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("rollup %s: update %s: %w", kind, parentID, res.Error)
	}
	// parent already gone; nothing to keep in sync
	if res.RowsAffected == 0 {
		r.log.WithField("kind", kind).WithField("parent", parentID).Debug("rollup parent missing")
	}
	return nil
}

// RecomputeAll sweeps every parent. Personal orders go first so group order
// totals see fresh member costs.
func (r *Rollup) RecomputeAll(ctx context.Context) error {
	sweeps := []struct {
		kind  RollupKind
		model any
	}{
		{RollupFoodTruckRating, &entity.FoodTruck{}},
		{RollupUserRating, &entity.User{}},
		{RollupUserGroupRating, &entity.UserGroup{}},
		{RollupPersonalOrderCost, &entity.PersonalOrder{}},
		{RollupGroupOrderCost, &entity.GroupOrder{}},
	}

	var errs []error
	for _, s := range sweeps {
		var ids []string
		if err := r.db.WithContext(ctx).Model(s.model).Pluck("id", &ids).Error; err != nil {
			errs = append(errs, fmt.Errorf("rollup %s: list parents: %w", s.kind, err))
			continue
		}
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			// the chain is re-run by the group order sweep anyway
			if err := r.recompute(ctx, s.kind, id); err != nil {
				errs = append(errs, err)
			}
		}
		r.log.WithField("kind", s.kind).WithField("parents", len(ids)).Info("rollup sweep done")
	}
	return errors.Join(errs...)
}
