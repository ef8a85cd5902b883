package listing

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/adapter/cache"
	"github.com/onyxdragun/yardsalefndr/internal/domain/account"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/platform/metrics"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetListing(ctx context.Context, id int64) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out a copy so the service cannot mutate the fixture
	l := *args.Get(0).(*listing.Listing)
	return &l, args.Error(1)
}

func (m *MockStore) CreateListing(ctx context.Context, l *listing.Listing, categoryIDs []int64) error {
	args := m.Called(ctx, l, categoryIDs)
	if args.Error(0) == nil {
		l.ID = 42
	}
	return args.Error(0)
}

func (m *MockStore) UpdateListing(ctx context.Context, l *listing.Listing, categoryIDs []int64) error {
	args := m.Called(ctx, l, categoryIDs)
	return args.Error(0)
}

func (m *MockStore) DeleteListing(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ListByOwner(ctx context.Context, ownerID int64) ([]listing.Listing, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockStore) IncrementViews(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) CompleteExpired(ctx context.Context, today listing.Date) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) FindBySlugs(ctx context.Context, slugs []string) ([]listing.Category, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Category), args.Error(1)
}

type MockQuota struct {
	mock.Mock
}

func (m *MockQuota) Reserve(ctx context.Context, userID int64) (*account.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Reservation), args.Error(1)
}

func (m *MockQuota) Release(ctx context.Context, r *account.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockQuota) Limits(ctx context.Context, userID int64) (account.Limits, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(account.Limits), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt listing.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type fixture struct {
	store      *MockStore
	categories *MockCategories
	quota      *MockQuota
	publisher  *MockPublisher
	views      *cache.MemoryStore
	service    *Service
}

var fixedNow = time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		store:      new(MockStore),
		categories: new(MockCategories),
		quota:      new(MockQuota),
		publisher:  new(MockPublisher),
		views:      cache.NewMemoryStore(),
	}
	f.service = NewService(f.store, f.categories, f.quota, f.publisher, f.views, metrics.New("test"), Config{}, zap.NewNop())
	f.service.now = func() time.Time { return fixedNow }
	return f
}

func eventOfType(t listing.EventType) interface{} {
	return mock.MatchedBy(func(e listing.Event) bool { return e.Type == t })
}

func ownedSale(id, owner int64) *listing.Listing {
	return &listing.Listing{
		ID:        id,
		OwnerID:   owner,
		Title:     "Yard sale",
		Address:   "1 Main St",
		StartDate: listing.Date{Year: 2025, Month: time.June, Day: 7},
		EndDate:   listing.Date{Year: 2025, Month: time.June, Day: 8},
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    listing.StatusActive,
	}
}
