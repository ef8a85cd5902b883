package favorite

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/service/search"
)

// Store defines the storage interface for favorites
type Store interface {
	AddFavorite(ctx context.Context, userID, saleID int64) error
	RemoveFavorite(ctx context.Context, userID, saleID int64) error
	ListFavorites(ctx context.Context, userID int64, today listing.Date) ([]listing.Listing, error)
	FavoriteIDs(ctx context.Context, userID int64, saleIDs []int64) (map[int64]bool, error)
}

// ListingGetter loads a single garage sale
type ListingGetter interface {
	GetListing(ctx context.Context, id int64) (*listing.Listing, error)
}

// Service manages user favorites
type Service struct {
	store    Store
	listings ListingGetter
	pageSize int
	maxPage  int
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new favorite service. Page sizes follow the search defaults.
func NewService(store Store, listings ListingGetter, cfg search.Config, logger *zap.Logger) *Service {
	def := search.DefaultConfig()
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = def.DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = def.MaxPageSize
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	return &Service{
		store:    store,
		listings: listings,
		pageSize: cfg.DefaultPageSize,
		maxPage:  cfg.MaxPageSize,
		location: cfg.Location,
		logger:   logger,
		now:      time.Now,
	}
}

// Add favorites a garage sale; favoriting twice is a no-op
func (s *Service) Add(ctx context.Context, userID, saleID int64) error {
	if _, err := s.listings.GetListing(ctx, saleID); err != nil {
		return err
	}
	if err := s.store.AddFavorite(ctx, userID, saleID); err != nil {
		return err
	}
	s.logger.Debug("favorite added", zap.Int64("user_id", userID), zap.Int64("garage_sale_id", saleID))
	return nil
}

// Remove unfavorites a garage sale
func (s *Service) Remove(ctx context.Context, userID, saleID int64) error {
	return s.store.RemoveFavorite(ctx, userID, saleID)
}

// List returns one page of the user's active favorites, newest favorite first
func (s *Service) List(ctx context.Context, userID int64, page, size int) (*listing.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	switch {
	case size < 0:
		return nil, fmt.Errorf("%w: page size must be positive", listing.ErrInvalidQuery)
	case size == 0:
		size = s.pageSize
	case size > s.maxPage:
		size = s.maxPage
	}

	favorites, err := s.store.ListFavorites(ctx, userID, listing.DateOf(s.now().In(s.location)))
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	for i := range favorites {
		favorites[i].IsFavorited = true
	}

	p := search.Paginate(favorites, page, size)
	return &listing.SearchResult{
		GarageSales: p.Items,
		TotalCount:  p.TotalCount,
		Page:        p.Page,
		TotalPages:  p.TotalPages,
		HasMore:     p.HasMore,
	}, nil
}

// Annotate sets IsFavorited on each listing the user has favorited
func (s *Service) Annotate(ctx context.Context, userID int64, listings []listing.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]int64, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}

	favorited, err := s.store.FavoriteIDs(ctx, userID, ids)
	if err != nil {
		return fmt.Errorf("error loading favorites: %w", err)
	}
	for i := range listings {
		listings[i].IsFavorited = favorited[listings[i].ID]
	}
	return nil
}
