// internal/service/search/service.go

package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	geosvc "github.com/onyxdragun/yardsalefndr/internal/service/geo"
)

// CandidateSource supplies the listings a search runs over
type CandidateSource interface {
	// FindCandidates returns non-draft listings ending on or after today
	FindCandidates(ctx context.Context, today listing.Date) ([]listing.Listing, error)

	// FindAll returns every listing regardless of status or dates
	FindAll(ctx context.Context) ([]listing.Listing, error)
}

// Config contains configuration for the search service
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
	Location        *time.Location
}

// DefaultConfig returns the default search configuration
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		Location:        time.UTC,
	}
}

// Service filters, ranks and paginates garage sales
type Service struct {
	source CandidateSource
	config Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new search service
func NewService(source CandidateSource, config Config, logger *zap.Logger) *Service {
	def := DefaultConfig()
	if config.DefaultPageSize <= 0 {
		config.DefaultPageSize = def.DefaultPageSize
	}
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = def.MaxPageSize
	}
	if config.Location == nil {
		config.Location = def.Location
	}
	return &Service{
		source: source,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Today returns the current calendar date in the configured zone
func (s *Service) Today() listing.Date {
	return listing.DateOf(s.now().In(s.config.Location))
}

// Search runs a public search. Draft, cancelled and expired listings never match.
func (s *Service) Search(ctx context.Context, q listing.SearchQuery) (*listing.SearchResult, error) {
	q, err := s.Normalize(q)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	candidates, err := s.source.FindCandidates(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("error fetching candidates: %w", err)
	}

	return s.run(q, candidates, BuildFilter(q, today), today), nil
}

// SearchAll runs q over every stored listing without the eligibility rule
func (s *Service) SearchAll(ctx context.Context, q listing.SearchQuery) (*listing.SearchResult, error) {
	q, err := s.Normalize(q)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	candidates, err := s.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching listings: %w", err)
	}

	return s.run(q, candidates, All(queryPredicates(q)...), today), nil
}

// run filters, then ranks, then paginates. today is the date the filter
// was built for and is reused for status derivation.
func (s *Service) run(q listing.SearchQuery, candidates []listing.Listing, pred Predicate, today listing.Date) *listing.SearchResult {
	matched := Apply(candidates, pred)

	var center *geo.Point
	if c, ok := q.Center(); ok {
		center = &c
	}
	ranked := Rank(matched, q.SortBy, q.SortOrder, center)
	page := Paginate(ranked, q.Page, q.PageSize)

	items := make([]listing.Listing, len(page.Items))
	copy(items, page.Items)
	for i := range items {
		l := &items[i]
		l.Status = EffectiveStatus(today, l.StartDate, l.EndDate, l.Status)
		if center != nil {
			if p, ok := l.Point(); ok {
				d := geosvc.Distance(*center, p)
				l.DistanceKm = &d
			}
		}
	}

	s.logger.Debug("search completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("matched", page.TotalCount),
		zap.Int("page", page.Page),
	)

	return &listing.SearchResult{
		GarageSales: items,
		TotalCount:  page.TotalCount,
		Page:        page.Page,
		TotalPages:  page.TotalPages,
		HasMore:     page.HasMore,
	}
}

// Normalize validates q and fills in defaults
func (s *Service) Normalize(q listing.SearchQuery) (listing.SearchQuery, error) {
	if (q.Latitude == nil) != (q.Longitude == nil) {
		return q, fmt.Errorf("%w: latitude and longitude must be provided together", listing.ErrInvalidQuery)
	}
	if c, ok := q.Center(); ok && !c.Valid() {
		return q, fmt.Errorf("%w: coordinates out of range", listing.ErrInvalidQuery)
	}
	if q.RadiusKm < 0 {
		return q, fmt.Errorf("%w: radius must not be negative", listing.ErrInvalidQuery)
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return q, fmt.Errorf("%w: end date is before start date", listing.ErrInvalidQuery)
	}

	switch q.SortBy {
	case "":
		q.SortBy = listing.SortDate
	case listing.SortDate, listing.SortDistance, listing.SortTitle, listing.SortCreated:
	default:
		return q, fmt.Errorf("%w: unknown sort key %q", listing.ErrInvalidQuery, q.SortBy)
	}
	switch q.SortOrder {
	case "":
		q.SortOrder = listing.SortAsc
	case listing.SortAsc, listing.SortDesc:
	default:
		return q, fmt.Errorf("%w: unknown sort order %q", listing.ErrInvalidQuery, q.SortOrder)
	}

	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PageSize < 0:
		return q, fmt.Errorf("%w: page size must be positive", listing.ErrInvalidQuery)
	case q.PageSize == 0:
		q.PageSize = s.config.DefaultPageSize
	case q.PageSize > s.config.MaxPageSize:
		q.PageSize = s.config.MaxPageSize
	}
	return q, nil
}
