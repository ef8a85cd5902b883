package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/onyxdragun/yardsalefndr/internal/domain/account"
	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/server/middleware"
	listingsvc "github.com/onyxdragun/yardsalefndr/internal/service/listing"
)

// serve routes a single request through pattern so chi URL params resolve.
// A non-zero userID is attached as the authenticated caller.
func serve(method, pattern, target string, h http.HandlerFunc, body string, userID int64) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "198.51.100.7:4000"
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type MockSearcher struct{ mock.Mock }

func (m *MockSearcher) Search(ctx context.Context, q listing.SearchQuery) (*listing.SearchResult, error) {
	args := m.Called(ctx, q)
	if r := args.Get(0); r != nil {
		return r.(*listing.SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSearcher) SearchAll(ctx context.Context, q listing.SearchQuery) (*listing.SearchResult, error) {
	args := m.Called(ctx, q)
	if r := args.Get(0); r != nil {
		return r.(*listing.SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFavorites struct{ mock.Mock }

func (m *MockFavorites) Annotate(ctx context.Context, userID int64, listings []listing.Listing) error {
	args := m.Called(ctx, userID, listings)
	for i := range listings {
		listings[i].IsFavorited = true
	}
	return args.Error(0)
}

func (m *MockFavorites) Add(ctx context.Context, userID, saleID int64) error {
	return m.Called(ctx, userID, saleID).Error(0)
}

func (m *MockFavorites) Remove(ctx context.Context, userID, saleID int64) error {
	return m.Called(ctx, userID, saleID).Error(0)
}

func (m *MockFavorites) List(ctx context.Context, userID int64, page, size int) (*listing.SearchResult, error) {
	args := m.Called(ctx, userID, page, size)
	if r := args.Get(0); r != nil {
		return r.(*listing.SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockListings struct{ mock.Mock }

func (m *MockListings) Get(ctx context.Context, id int64) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*listing.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListings) ListByOwner(ctx context.Context, ownerID int64) ([]listing.Listing, error) {
	args := m.Called(ctx, ownerID)
	if r := args.Get(0); r != nil {
		return r.([]listing.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListings) Create(ctx context.Context, ownerID int64, in listing.CreateInput) (*listing.Listing, error) {
	args := m.Called(ctx, ownerID, in)
	if r := args.Get(0); r != nil {
		return r.(*listing.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListings) Update(ctx context.Context, callerID, id int64, patch listing.UpdateInput) (*listing.Listing, error) {
	args := m.Called(ctx, callerID, id, patch)
	if r := args.Get(0); r != nil {
		return r.(*listing.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListings) Delete(ctx context.Context, callerID, id int64) error {
	return m.Called(ctx, callerID, id).Error(0)
}

func (m *MockListings) RecordView(ctx context.Context, viewer listingsvc.Viewer, id int64) (*listingsvc.ViewResult, error) {
	args := m.Called(ctx, viewer, id)
	if r := args.Get(0); r != nil {
		return r.(*listingsvc.ViewResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListings) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategories struct{ mock.Mock }

func (m *MockCategories) ListActive(ctx context.Context) ([]listing.Category, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]listing.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUsage struct{ mock.Mock }

func (m *MockUsage) Usage(ctx context.Context, userID int64) (*account.Usage, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*account.Usage), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	args := m.Called(ctx, address)
	if r := args.Get(0); r != nil {
		return r.(*geo.GeocodeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// fakeBus records the feed subscription so tests can push messages
type fakeBus struct {
	mu          sync.Mutex
	subject     string
	fn          func([]byte)
	unsubscribe chan struct{}
}

func newFakeBus() *fakeBus {
	return &fakeBus{unsubscribe: make(chan struct{}, 1)}
}

func (b *fakeBus) Subscribe(subject string, fn func([]byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subject = subject
	b.fn = fn
	return func() { b.unsubscribe <- struct{}{} }, nil
}

func (b *fakeBus) publish(data []byte) {
	b.mu.Lock()
	fn := b.fn
	b.mu.Unlock()
	fn(data)
}

func (b *fakeBus) subscribedTo() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subject
}
