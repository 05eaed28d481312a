package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/pkg/events"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geo"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geocoder"
	"github.com/bigbadbobbo/foodtruck-api/pkg/metrics"
	"github.com/bigbadbobbo/foodtruck-api/pkg/upload"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

// Notifier pushes a payload to every live connection of a user.
type Notifier interface {
	Notify(userID string, v any)
}

type Options struct {
	Geocoder  geocoder.Geocoder
	Index     geo.Index
	Photos    upload.Store
	MaxUpload int64
	Publisher events.Publisher
	Notifier  Notifier
	JWTSecret string
	JWTTTL    time.Duration
	Log       *logrus.Logger
}

// Registry wires every service over one database handle.
type Registry struct {
	Rollup            *Rollup
	Auth              *AuthService
	Users             *UserService
	FoodTrucks        *FoodTruckService
	FoodItems         *FoodItemService
	Ratings           *RatingService
	UserGroups        *UserGroupService
	Memberships       *MembershipService
	PersonalOrders    *PersonalOrderService
	GroupOrders       *GroupOrderService
	GroupMemberOrders *GroupMemberOrderService
	Messages          *MessageService
}

func New(db *gorm.DB, opts Options) *Registry {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.JWTTTL == 0 {
		opts.JWTTTL = 24 * time.Hour
	}

	users := repository.NewUserRepository(db)
	trucks := repository.NewFoodTruckRepository(db)
	items := repository.NewFoodItemRepository(db)
	groups := repository.NewUserGroupRepository(db)
	memberships := repository.NewMembershipRepository(db)
	personal := repository.NewPersonalOrderRepository(db)
	personalItems := repository.NewPersonalOrderItemRepository(db)
	groupOrders := repository.NewGroupOrderRepository(db)
	memberOrders := repository.NewGroupMemberOrderRepository(db)
	ratings := repository.NewRatingRepository(db)
	messages := repository.NewMessageRepository(db)

	rollup := NewRollup(db, opts.Log)
	pub := &publisher{pub: opts.Publisher, log: opts.Log}
	photos := &photoSaver{store: opts.Photos, maxBytes: opts.MaxUpload}

	return &Registry{
		Rollup: rollup,
		Auth:   NewAuthService(users, opts.Geocoder, opts.JWTSecret, opts.JWTTTL),
		Users:  NewUserService(db, users),
		FoodTrucks: &FoodTruckService{
			DB: db, Repo: trucks, Items: items, Ratings: ratings,
			Geocoder: opts.Geocoder, Index: opts.Index, Photos: photos, Log: opts.Log,
		},
		FoodItems: &FoodItemService{Repo: items, Trucks: trucks, Photos: photos},
		Ratings: &RatingService{
			Repo: ratings, Trucks: trucks, Users: users, Groups: groups,
			Rollup: rollup, Events: pub,
		},
		UserGroups: &UserGroupService{
			DB: db, Repo: groups, Memberships: memberships, Ratings: ratings,
			Geocoder: opts.Geocoder, Photos: photos,
		},
		Memberships: &MembershipService{Repo: memberships, Groups: groups},
		PersonalOrders: &PersonalOrderService{
			DB: db, Repo: personal, Items: personalItems, FoodItems: items, Trucks: trucks,
			MemberOrders: memberOrders, Rollup: rollup, Events: pub,
		},
		GroupOrders: &GroupOrderService{
			DB: db, Repo: groupOrders, MemberOrders: memberOrders, Groups: groups,
			Memberships: memberships, Trucks: trucks, Events: pub,
		},
		GroupMemberOrders: &GroupMemberOrderService{
			Repo: memberOrders, GroupOrders: groupOrders, Personal: personal,
			Groups: groups, Memberships: memberships, Rollup: rollup,
		},
		Messages: &MessageService{Repo: messages, Users: users, Notifier: opts.Notifier, Events: pub},
	}
}

// publisher sends domain events without ever failing the caller.
type publisher struct {
	pub events.Publisher
	log *logrus.Logger
}

func (p *publisher) publish(ctx context.Context, typ, key string, payload any) {
	err := p.pub.Publish(context.WithoutCancel(ctx), events.New(typ, key, payload))
	result := "ok"
	if err != nil {
		result = "error"
		p.log.WithError(err).WithField("type", typ).WithField("key", key).Warn("publish event failed")
	}
	metrics.EventsTotal.WithLabelValues(typ, result).Inc()
}
