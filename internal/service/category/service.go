package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/adapter/cache"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

const cacheKey = "categories:active"

// Store defines the storage interface for categories
type Store interface {
	ListActive(ctx context.Context) ([]listing.Category, error)
}

// Cache is a byte cache with per-key TTL
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Service serves the category list through a read-through cache
type Service struct {
	store  Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates a new category service
func NewService(store Store, c Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{store: store, cache: c, ttl: ttl, logger: logger}
}

// ListActive returns active categories ordered for display
func (s *Service) ListActive(ctx context.Context) ([]listing.Category, error) {
	if data, err := s.cache.Get(ctx, cacheKey); err == nil {
		var categories []listing.Category
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
		s.logger.Warn("discarding corrupt category cache entry")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("category cache unavailable", zap.Error(err))
	}

	categories, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := s.cache.Set(ctx, cacheKey, data, s.ttl); err != nil {
			s.logger.Warn("failed to cache categories", zap.Error(err))
		}
	}
	return categories, nil
}
