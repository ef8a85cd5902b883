package category

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/adapter/cache"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListActive(ctx context.Context) ([]listing.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Category), args.Error(1)
}

func TestListActive_ReadThrough(t *testing.T) {
	store := new(MockStore)
	want := []listing.Category{{ID: 1, Name: "Books", Slug: "books", IsActive: true}}
	store.On("ListActive", mock.Anything).Return(want, nil).Once()

	svc := NewService(store, cache.NewMemoryStore(), time.Minute, zap.NewNop())

	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	store.AssertNumberOfCalls(t, "ListActive", 1)
}
