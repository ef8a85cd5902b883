package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, m.Set(ctx, "forever", []byte("v"), 0))

	now = now.Add(2 * time.Minute)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = m.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryStore_MarkOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	first, err := m.MarkOnce(ctx, "view:1.2.3.4:7:2025-06-01", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := m.MarkOnce(ctx, "view:1.2.3.4:7:2025-06-01", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, m.Sweep())

	afterExpiry, err := m.MarkOnce(ctx, "view:1.2.3.4:7:2025-06-01", time.Hour)
	require.NoError(t, err)
	assert.True(t, afterExpiry)
}
