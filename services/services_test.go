package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/configs"
	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geocoder"
	"github.com/bigbadbobbo/foodtruck-api/pkg/upload"
	"github.com/bigbadbobbo/foodtruck-api/repository"
)

type fakeGeocoder struct {
	locs []geocoder.Location
	err  error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) ([]geocoder.Location, error) {
	return f.locs, f.err
}

var austin = geocoder.Location{
	Latitude: 30.2672, Longitude: -97.7431,
	FormattedAddress: "100 Congress Ave, Austin, TX 78701, US",
	StreetName:       "100 Congress Ave", City: "Austin", StateCode: "TX", Zipcode: "78701", CountryCode: "US",
}

type fixture struct {
	db  *gorm.DB
	reg *Registry
	geo *fakeGeocoder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := configs.OpenDB("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))

	store, err := upload.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	g := &fakeGeocoder{locs: []geocoder.Location{austin}}
	reg := New(db, Options{
		Geocoder:  g,
		Photos:    store,
		MaxUpload: 1 << 20,
		JWTSecret: "test-secret",
		Log:       log,
	})
	return &fixture{db: db, reg: reg, geo: g}
}

func (f *fixture) user(t *testing.T, role string) Principal {
	t.Helper()
	u := &entity.User{Name: role, Email: uuid.NewString() + "@example.com", Role: role}
	require.NoError(t, f.db.Create(u).Error)
	return Principal{ID: u.ID, Role: u.Role}
}

func (f *fixture) truck(t *testing.T, owner Principal) *entity.FoodTruck {
	t.Helper()
	ft, err := f.reg.FoodTrucks.Create(context.Background(), owner, CreateFoodTruckIn{
		Name:            "Truck " + uuid.NewString()[:8],
		Description:     "tacos and more",
		CentralLocation: "100 Congress Ave, Austin TX",
		Radius:          5,
	})
	require.NoError(t, err)
	return ft
}

func (f *fixture) item(t *testing.T, owner Principal, truckID string, price float64) *entity.FoodItem {
	t.Helper()
	it, err := f.reg.FoodItems.Create(context.Background(), owner, truckID, CreateFoodItemIn{Title: "Taco", Price: &price})
	require.NoError(t, err)
	return it
}

func kindOf(err error) apperr.Kind { return apperr.KindOf(err) }

func TestFoodTruckCreateGeocodes(t *testing.T) {
	f := newFixture(t)
	op := f.user(t, entity.RoleOperator)

	ft := f.truck(t, op)
	assert.Equal(t, "Point", ft.Location.Type)
	assert.Equal(t, "Austin", ft.Location.City)
	assert.InDelta(t, 30.2672, ft.Location.Latitude, 1e-9)
	assert.NotEmpty(t, ft.Slug)
	assert.Nil(t, ft.AverageRating)
}

func TestFoodTruckCreateSecondTruckRejected(t *testing.T) {
	f := newFixture(t)
	op := f.user(t, entity.RoleOperator)
	f.truck(t, op)

	_, err := f.reg.FoodTrucks.Create(context.Background(), op, CreateFoodTruckIn{
		Name: "Another", Description: "d", CentralLocation: "x", Radius: 1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, kindOf(err))

	admin := f.user(t, entity.RoleAdmin)
	f.truck(t, admin)
	f.truck(t, admin)
}

func TestFoodTruckCreateGeocodeFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	op := f.user(t, entity.RoleOperator)
	ctx := context.Background()
	in := CreateFoodTruckIn{Name: "Nowhere", Description: "d", CentralLocation: "???", Radius: 1}

	f.geo.locs, f.geo.err = nil, geocoder.ErrNoMatch
	_, err := f.reg.FoodTrucks.Create(ctx, op, in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, kindOf(err))

	f.geo.err = errors.New("provider down")
	_, err = f.reg.FoodTrucks.Create(ctx, op, in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, kindOf(err))

	var n int64
	require.NoError(t, f.db.Model(&entity.FoodTruck{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRatingDuplicateRejectedForEveryKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, entity.RoleUser)
	op := f.user(t, entity.RoleOperator)
	ft := f.truck(t, op)
	g, err := f.reg.UserGroups.Create(ctx, u, CreateUserGroupIn{Name: "Lunch crew"})
	require.NoError(t, err)

	cases := []struct {
		kind    entity.RatingKind
		rater   Principal
		subject string
	}{
		{entity.RatingFoodTruck, u, ft.ID},
		{entity.RatingUser, op, u.ID},
		{entity.RatingUserGroup, op, g.ID},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			_, err := f.reg.Ratings.Create(ctx, tc.rater, tc.kind, tc.subject, RatingIn{Rating: 7})
			require.NoError(t, err)

			_, err = f.reg.Ratings.Create(ctx, tc.rater, tc.kind, tc.subject, RatingIn{Rating: 3})
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, kindOf(err))

			ratings, err := f.reg.Ratings.ListForSubject(ctx, tc.kind, tc.subject)
			require.NoError(t, err)
			assert.Len(t, ratings, 1)
		})
	}
}

func TestRatingOperatorWithoutTruck(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, entity.RoleUser)
	op := f.user(t, entity.RoleOperator)

	_, err := f.reg.Ratings.Create(context.Background(), op, entity.RatingUser, u.ID, RatingIn{Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, kindOf(err))
}

func TestRatingAverageFollowsChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	ft := f.truck(t, op)
	u1 := f.user(t, entity.RoleUser)
	u2 := f.user(t, entity.RoleUser)

	r1, err := f.reg.Ratings.Create(ctx, u1, entity.RatingFoodTruck, ft.ID, RatingIn{Rating: 8})
	require.NoError(t, err)
	r2, err := f.reg.Ratings.Create(ctx, u2, entity.RatingFoodTruck, ft.ID, RatingIn{Rating: 5})
	require.NoError(t, err)

	got, err := f.reg.FoodTrucks.Get(ctx, ft.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AverageRating)
	assert.InDelta(t, 6.5, *got.AverageRating, 1e-9)

	_, err = f.reg.Ratings.Update(ctx, u2, r2.ID, RatingIn{Rating: 10})
	require.NoError(t, err)
	got, _ = f.reg.FoodTrucks.Get(ctx, ft.ID)
	assert.InDelta(t, 9.0, *got.AverageRating, 1e-9)

	_, err = f.reg.Ratings.Delete(ctx, u1, r1.ID)
	require.NoError(t, err)
	_, err = f.reg.Ratings.Delete(ctx, u2, r2.ID)
	require.NoError(t, err)

	got, _ = f.reg.FoodTrucks.Get(ctx, ft.ID)
	assert.Nil(t, got.AverageRating)
}

func TestRatingUnauthorizedEditLeavesRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	ft := f.truck(t, op)
	author := f.user(t, entity.RoleUser)
	other := f.user(t, entity.RoleUser)

	r, err := f.reg.Ratings.Create(ctx, author, entity.RatingFoodTruck, ft.ID, RatingIn{Rating: 4})
	require.NoError(t, err)

	_, err = f.reg.Ratings.Update(ctx, other, r.ID, RatingIn{Rating: 1})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
	_, err = f.reg.Ratings.Delete(ctx, other, r.ID)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))

	got, err := f.reg.Ratings.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
}

func TestFoodItemUnauthorizedEditLeavesRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, entity.RoleOperator)
	intruder := f.user(t, entity.RoleOperator)
	ft := f.truck(t, owner)
	it := f.item(t, owner, ft.ID, 5)

	title := "Burrito"
	_, err := f.reg.FoodItems.Update(ctx, intruder, it.ID, UpdateFoodItemIn{Title: &title})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
	_, err = f.reg.FoodItems.Delete(ctx, intruder, it.ID)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))

	got, err := f.reg.FoodItems.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taco", got.Title)

	admin := f.user(t, entity.RoleAdmin)
	got, err = f.reg.FoodItems.Update(ctx, admin, it.ID, UpdateFoodItemIn{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Burrito", got.Title)
}

func TestFoodItemCreateOnForeignTruck(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, entity.RoleOperator)
	other := f.user(t, entity.RoleOperator)
	ft := f.truck(t, owner)

	price := 5.0
	_, err := f.reg.FoodItems.Create(context.Background(), other, ft.ID, CreateFoodItemIn{Title: "Taco", Price: &price})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
}

func TestPersonalOrderItemCostIsPriceSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	u := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)
	it := f.item(t, op, ft.ID, 5)

	po, err := f.reg.PersonalOrders.Create(ctx, u, ft.ID)
	require.NoError(t, err)
	line, err := f.reg.PersonalOrders.AddItem(ctx, u, po.ID, AddItemIn{FoodItem: it.ID})
	require.NoError(t, err)
	assert.Equal(t, 5.0, line.Cost)

	price := 9.0
	_, err = f.reg.FoodItems.Update(ctx, op, it.ID, UpdateFoodItemIn{Price: &price})
	require.NoError(t, err)

	got, err := f.reg.PersonalOrders.GetItem(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Cost)
	order, err := f.reg.PersonalOrders.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, order.Cost)
}

func TestPersonalOrderRejectsOperatorsAndForeignItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	op2 := f.user(t, entity.RoleOperator)
	u := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)
	ft2 := f.truck(t, op2)
	foreign := f.item(t, op2, ft2.ID, 3)

	_, err := f.reg.PersonalOrders.Create(ctx, op, ft.ID)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))

	po, err := f.reg.PersonalOrders.Create(ctx, u, ft.ID)
	require.NoError(t, err)
	_, err = f.reg.PersonalOrders.AddItem(ctx, u, po.ID, AddItemIn{FoodItem: foreign.ID})
	assert.Equal(t, apperr.KindValidation, kindOf(err))
}

func TestPersonalOrderCostResetsWhenEmptied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	u := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)
	it := f.item(t, op, ft.ID, 4.5)

	po, err := f.reg.PersonalOrders.Create(ctx, u, ft.ID)
	require.NoError(t, err)
	a, err := f.reg.PersonalOrders.AddItem(ctx, u, po.ID, AddItemIn{FoodItem: it.ID})
	require.NoError(t, err)
	b, err := f.reg.PersonalOrders.AddItem(ctx, u, po.ID, AddItemIn{FoodItem: it.ID})
	require.NoError(t, err)

	order, _ := f.reg.PersonalOrders.Get(ctx, po.ID)
	assert.Equal(t, 9.0, order.Cost)

	_, err = f.reg.PersonalOrders.DeleteItem(ctx, u, a.ID)
	require.NoError(t, err)
	_, err = f.reg.PersonalOrders.DeleteItem(ctx, u, b.ID)
	require.NoError(t, err)

	order, _ = f.reg.PersonalOrders.Get(ctx, po.ID)
	assert.Equal(t, 0.0, order.Cost)
}

func TestPersonalOrderConcurrentItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	u := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)
	it := f.item(t, op, ft.ID, 2.5)

	po, err := f.reg.PersonalOrders.Create(ctx, u, ft.ID)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.reg.PersonalOrders.AddItem(ctx, u, po.ID, AddItemIn{FoodItem: it.ID})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	order, err := f.reg.PersonalOrders.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, order.Cost)
}

func TestGroupOrderCostFollowsMemberOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	owner := f.user(t, entity.RoleUser)
	member := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)
	taco := f.item(t, op, ft.ID, 5)
	soda := f.item(t, op, ft.ID, 3)

	g, err := f.reg.UserGroups.Create(ctx, owner, CreateUserGroupIn{Name: "Office"})
	require.NoError(t, err)
	_, err = f.reg.Memberships.Join(ctx, member, g.ID)
	require.NoError(t, err)

	gor, err := f.reg.GroupOrders.Create(ctx, owner, CreateGroupOrderIn{FoodTruck: ft.ID, UserGroup: g.ID})
	require.NoError(t, err)

	po, err := f.reg.PersonalOrders.Create(ctx, member, ft.ID)
	require.NoError(t, err)
	_, err = f.reg.PersonalOrders.AddItem(ctx, member, po.ID, AddItemIn{FoodItem: taco.ID})
	require.NoError(t, err)

	mo, err := f.reg.GroupMemberOrders.Create(ctx, member, CreateMemberOrderIn{GroupOrder: gor.ID, PersonalOrder: po.ID})
	require.NoError(t, err)
	assert.Equal(t, 5.0, mo.Cost)

	got, _ := f.reg.GroupOrders.Get(ctx, gor.ID)
	assert.Equal(t, 5.0, got.Cost)

	_, err = f.reg.GroupMemberOrders.Create(ctx, member, CreateMemberOrderIn{GroupOrder: gor.ID, PersonalOrder: po.ID})
	assert.Equal(t, apperr.KindValidation, kindOf(err))

	// item added after linking flows through to the member and group order
	_, err = f.reg.PersonalOrders.AddItem(ctx, member, po.ID, AddItemIn{FoodItem: soda.ID})
	require.NoError(t, err)
	linked, _ := f.reg.GroupMemberOrders.Get(ctx, mo.ID)
	assert.Equal(t, 8.0, linked.Cost)
	got, _ = f.reg.GroupOrders.Get(ctx, gor.ID)
	assert.Equal(t, 8.0, got.Cost)

	_, err = f.reg.PersonalOrders.Delete(ctx, member, po.ID)
	require.NoError(t, err)
	got, _ = f.reg.GroupOrders.Get(ctx, gor.ID)
	assert.Equal(t, 0.0, got.Cost)
}

func TestGroupMemberOrderCreateSeesItemAddedMidway(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	member := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)
	taco := f.item(t, op, ft.ID, 5)

	g, err := f.reg.UserGroups.Create(ctx, member, CreateUserGroupIn{Name: "Night shift"})
	require.NoError(t, err)
	gor, err := f.reg.GroupOrders.Create(ctx, member, CreateGroupOrderIn{FoodTruck: ft.ID, UserGroup: g.ID})
	require.NoError(t, err)
	po, err := f.reg.PersonalOrders.Create(ctx, member, ft.ID)
	require.NoError(t, err)

	// add an item right after the member order create has read the personal order
	var armed atomic.Bool
	var addErr error
	require.NoError(t, f.db.Callback().Query().After("gorm:query").Register("test:add_item_midway", func(tx *gorm.DB) {
		if tx.Statement.Table != "personal_orders" || !armed.CompareAndSwap(true, false) {
			return
		}
		_, addErr = f.reg.PersonalOrders.AddItem(ctx, member, po.ID, AddItemIn{FoodItem: taco.ID})
	}))

	armed.Store(true)
	mo, err := f.reg.GroupMemberOrders.Create(ctx, member, CreateMemberOrderIn{GroupOrder: gor.ID, PersonalOrder: po.ID})
	require.NoError(t, err)
	require.NoError(t, addErr)
	require.False(t, armed.Load())

	personal, err := f.reg.PersonalOrders.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, personal.Cost)
	assert.Equal(t, 5.0, mo.Cost)
	got, err := f.reg.GroupOrders.Get(ctx, gor.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Cost)
}

func TestGroupOrderRequiresMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	owner := f.user(t, entity.RoleUser)
	stranger := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)

	g, err := f.reg.UserGroups.Create(ctx, owner, CreateUserGroupIn{Name: "Private"})
	require.NoError(t, err)

	_, err = f.reg.GroupOrders.Create(ctx, stranger, CreateGroupOrderIn{FoodTruck: ft.ID, UserGroup: g.ID})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
}

func TestRecomputeAllRepairsDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	u := f.user(t, entity.RoleUser)
	ft := f.truck(t, op)
	it := f.item(t, op, ft.ID, 6)

	po, err := f.reg.PersonalOrders.Create(ctx, u, ft.ID)
	require.NoError(t, err)
	_, err = f.reg.PersonalOrders.AddItem(ctx, u, po.ID, AddItemIn{FoodItem: it.ID})
	require.NoError(t, err)
	_, err = f.reg.Ratings.Create(ctx, u, entity.RatingFoodTruck, ft.ID, RatingIn{Rating: 6})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&entity.PersonalOrder{}).Where("id = ?", po.ID).Update("cost", 99).Error)
	require.NoError(t, f.db.Model(&entity.FoodTruck{}).Where("id = ?", ft.ID).Update("average_rating", 1).Error)

	require.NoError(t, f.reg.Rollup.RecomputeAll(ctx))

	order, _ := f.reg.PersonalOrders.Get(ctx, po.ID)
	assert.Equal(t, 6.0, order.Cost)
	truck, _ := f.reg.FoodTrucks.Get(ctx, ft.ID)
	require.NotNil(t, truck.AverageRating)
	assert.Equal(t, 6.0, *truck.AverageRating)
}

func photoHeader(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PUT", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestFoodTruckPhotoRejectsNonImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	ft := f.truck(t, op)

	_, err := f.reg.FoodTrucks.UploadPhoto(ctx, op, ft.ID, photoHeader(t, "notes.txt", "text/plain", []byte("hello")))
	require.Error(t, err)
	assert.Equal(t, apperr.KindUploadRejected, kindOf(err))

	got, err := f.reg.FoodTrucks.Get(ctx, ft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultFoodTruckPhoto, got.Photo)
}

func TestFoodTruckPhotoUnauthorized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	other := f.user(t, entity.RoleOperator)
	ft := f.truck(t, op)

	_, err := f.reg.FoodTrucks.UploadPhoto(ctx, other, ft.ID, photoHeader(t, "a.txt", "text/plain", []byte("x")))
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
}

func TestAuthRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, u, err := f.reg.Auth.Register(ctx, RegisterIn{Name: "Ana", Email: "Ana@Example.com", Password: "secret1", Role: entity.RoleOperator})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RoleOperator, u.Role)

	_, _, err = f.reg.Auth.Register(ctx, RegisterIn{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	assert.Equal(t, apperr.KindValidation, kindOf(err))

	_, _, err = f.reg.Auth.Login(ctx, LoginIn{Email: "ana@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))

	token, u2, err := f.reg.Auth.Login(ctx, LoginIn{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, u2.ID)
}

func TestAuthAccountUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, u, err := f.reg.Auth.Register(ctx, RegisterIn{Name: "Bo", Email: "bo@example.com", Password: "secret1"})
	require.NoError(t, err)
	p := Principal{ID: u.ID, Role: u.Role}
	_, _, err = f.reg.Auth.Register(ctx, RegisterIn{Name: "Cy", Email: "cy@example.com", Password: "secret1"})
	require.NoError(t, err)

	name, email := "Bo Jr", "BoJr@Example.com"
	got, err := f.reg.Auth.UpdateDetails(ctx, p, UpdateDetailsIn{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Bo Jr", got.Name)
	assert.Equal(t, "bojr@example.com", got.Email)
	assert.Equal(t, entity.RoleUser, got.Role)

	taken := "cy@example.com"
	_, err = f.reg.Auth.UpdateDetails(ctx, p, UpdateDetailsIn{Email: &taken})
	assert.Equal(t, apperr.KindValidation, kindOf(err))

	_, _, err = f.reg.Auth.UpdatePassword(ctx, p, UpdatePasswordIn{CurrentPassword: "nope", NewPassword: "secret2"})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
	token, _, err := f.reg.Auth.UpdatePassword(ctx, p, UpdatePasswordIn{CurrentPassword: "secret1", NewPassword: "secret2"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = f.reg.Auth.Login(ctx, LoginIn{Email: "bojr@example.com", Password: "secret1"})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
	_, _, err = f.reg.Auth.Login(ctx, LoginIn{Email: "bojr@example.com", Password: "secret2"})
	require.NoError(t, err)

	located, err := f.reg.Auth.UpdateLocation(ctx, p, UpdateLocationIn{Address: "100 Congress Ave"})
	require.NoError(t, err)
	assert.Equal(t, "Austin", located.Location.City)

	f.geo.locs, f.geo.err = nil, geocoder.ErrNoMatch
	_, err = f.reg.Auth.UpdateLocation(ctx, p, UpdateLocationIn{Address: "???"})
	assert.Equal(t, apperr.KindValidation, kindOf(err))
	me, err := f.reg.Auth.Me(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Austin", me.Location.City)
	_, _, err = f.reg.Auth.Login(ctx, LoginIn{Email: "bojr@example.com", Password: "secret2"})
	require.NoError(t, err)
}

func TestUserCreateByAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.reg.Users.Create(ctx, CreateUserIn{Name: "Root Two", Email: "Root2@example.com", Password: "secret1", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	_, _, err = f.reg.Auth.Login(ctx, LoginIn{Email: "root2@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.reg.Users.Create(ctx, CreateUserIn{Name: "Dup", Email: "root2@example.com", Password: "secret1"})
	assert.Equal(t, apperr.KindValidation, kindOf(err))

	plain, err := f.reg.Users.Create(ctx, CreateUserIn{Name: "Plain", Email: "plain@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, plain.Role)
}

func TestFoodTruckInRadiusScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.user(t, entity.RoleOperator)
	ft := f.truck(t, op)

	near, err := f.reg.FoodTrucks.InRadius(ctx, 30.27, -97.74, 1)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, ft.ID, near[0].ID)

	// Dallas is roughly 180 miles away
	far, err := f.reg.FoodTrucks.InRadius(ctx, 32.7767, -96.797, 10)
	require.NoError(t, err)
	assert.Empty(t, far)

	_, err = f.reg.FoodTrucks.InRadius(ctx, 120, 0, 10)
	assert.Equal(t, apperr.KindValidation, kindOf(err))
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[string]int
}

func (r *recordingNotifier) Notify(userID string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[userID]++
}

func TestMessageSendPushesAndRestrictsReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := &recordingNotifier{sent: map[string]int{}}
	f.reg.Messages.Notifier = n

	alice := f.user(t, entity.RoleUser)
	bob := f.user(t, entity.RoleOperator)
	eve := f.user(t, entity.RoleUser)

	m, err := f.reg.Messages.Send(ctx, alice, SendMessageIn{Receiver: bob.ID, Body: " is the truck open? "})
	require.NoError(t, err)
	assert.Equal(t, "is the truck open?", m.Body)
	assert.Equal(t, 1, n.sent[bob.ID])

	_, err = f.reg.Messages.Get(ctx, bob, m.ID)
	require.NoError(t, err)
	_, err = f.reg.Messages.Get(ctx, eve, m.ID)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))

	inbox, err := f.reg.Messages.List(ctx, eve, repository.NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, inbox)

	_, err = f.reg.Messages.Send(ctx, alice, SendMessageIn{Receiver: uuid.NewString(), Body: "hi"})
	assert.Equal(t, apperr.KindNotFound, kindOf(err))
}
