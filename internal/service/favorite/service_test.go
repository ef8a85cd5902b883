package favorite

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/service/search"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddFavorite(ctx context.Context, userID, saleID int64) error {
	return m.Called(ctx, userID, saleID).Error(0)
}

func (m *MockStore) RemoveFavorite(ctx context.Context, userID, saleID int64) error {
	return m.Called(ctx, userID, saleID).Error(0)
}

func (m *MockStore) ListFavorites(ctx context.Context, userID int64, today listing.Date) ([]listing.Listing, error) {
	args := m.Called(ctx, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockStore) FavoriteIDs(ctx context.Context, userID int64, saleIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, saleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type MockListings struct {
	mock.Mock
}

func (m *MockListings) GetListing(ctx context.Context, id int64) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

func newTestService(store Store, listings ListingGetter) *Service {
	s := NewService(store, listings, search.Config{DefaultPageSize: 2, MaxPageSize: 3}, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestAdd(t *testing.T) {
	store, listings := new(MockStore), new(MockListings)
	listings.On("GetListing", mock.Anything, int64(5)).Return(&listing.Listing{ID: 5}, nil)
	store.On("AddFavorite", mock.Anything, int64(1), int64(5)).Return(nil)

	require.NoError(t, newTestService(store, listings).Add(context.Background(), 1, 5))
	store.AssertExpectations(t)
}

func TestAdd_MissingListing(t *testing.T) {
	store, listings := new(MockStore), new(MockListings)
	listings.On("GetListing", mock.Anything, int64(5)).Return(nil, listing.ErrNotFound)

	err := newTestService(store, listings).Add(context.Background(), 1, 5)
	assert.ErrorIs(t, err, listing.ErrNotFound)
	store.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_Paginates(t *testing.T) {
	store := new(MockStore)
	store.On("ListFavorites", mock.Anything, int64(1), listing.Date{Year: 2025, Month: time.June, Day: 1}).
		Return([]listing.Listing{{ID: 3}, {ID: 1}, {ID: 2}}, nil)

	svc := newTestService(store, new(MockListings))
	res, err := svc.List(context.Background(), 1, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 2, res.TotalPages)
	assert.True(t, res.HasMore)
	require.Len(t, res.GarageSales, 2)
	assert.Equal(t, int64(3), res.GarageSales[0].ID)
	assert.True(t, res.GarageSales[0].IsFavorited)

	res, err = svc.List(context.Background(), 1, 1, 50)
	require.NoError(t, err)
	assert.Len(t, res.GarageSales, 3)

	_, err = svc.List(context.Background(), 1, 1, -1)
	assert.ErrorIs(t, err, listing.ErrInvalidQuery)
}

func TestList_UsesLocalDate(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	require.NoError(t, err)

	store := new(MockStore)
	// 03:00 UTC on the 15th is still the evening of the 14th in Vancouver.
	store.On("ListFavorites", mock.Anything, int64(1), listing.Date{Year: 2025, Month: time.June, Day: 14}).
		Return([]listing.Listing{{ID: 4}}, nil)

	svc := NewService(store, new(MockListings), search.Config{Location: vancouver}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC) }

	res, err := svc.List(context.Background(), 1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)
	store.AssertExpectations(t)
}

func TestAnnotate(t *testing.T) {
	store := new(MockStore)
	store.On("FavoriteIDs", mock.Anything, int64(1), []int64{4, 5}).Return(map[int64]bool{5: true}, nil)

	listings := []listing.Listing{{ID: 4}, {ID: 5}}
	require.NoError(t, newTestService(store, new(MockListings)).Annotate(context.Background(), 1, listings))
	assert.False(t, listings[0].IsFavorited)
	assert.True(t, listings[1].IsFavorited)
}
