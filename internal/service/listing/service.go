// internal/service/listing/service.go

package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/account"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/platform/metrics"
	"github.com/onyxdragun/yardsalefndr/internal/service/search"
)

// Store defines the storage interface for garage sales
type Store interface {
	GetListing(ctx context.Context, id int64) (*listing.Listing, error)
	CreateListing(ctx context.Context, l *listing.Listing, categoryIDs []int64) error
	UpdateListing(ctx context.Context, l *listing.Listing, categoryIDs []int64) error
	DeleteListing(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]listing.Listing, error)
	IncrementViews(ctx context.Context, id int64) (int64, error)
	CompleteExpired(ctx context.Context, today listing.Date) (int64, error)
}

// CategoryResolver maps category slugs to categories
type CategoryResolver interface {
	FindBySlugs(ctx context.Context, slugs []string) ([]listing.Category, error)
}

// Quota enforces the monthly listing allowance
type Quota interface {
	Reserve(ctx context.Context, userID int64) (*account.Reservation, error)
	Release(ctx context.Context, r *account.Reservation) error
	Limits(ctx context.Context, userID int64) (account.Limits, error)
}

// Publisher sends garage sale events to the message bus
type Publisher interface {
	Publish(ctx context.Context, evt listing.Event) error
}

// ViewMarker remembers keys for a while and reports first sightings
type ViewMarker interface {
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Config contains configuration for the listing service
type Config struct {
	ViewDedupTTL time.Duration
	Location     *time.Location
}

// Service manages the garage sale lifecycle
type Service struct {
	store      Store
	categories CategoryResolver
	quota      Quota
	publisher  Publisher
	views      ViewMarker
	metrics    *metrics.Metrics
	config     Config
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new listing service
func NewService(
	store Store,
	categories CategoryResolver,
	quota Quota,
	publisher Publisher,
	views ViewMarker,
	m *metrics.Metrics,
	config Config,
	logger *zap.Logger,
) *Service {
	if config.ViewDedupTTL <= 0 {
		config.ViewDedupTTL = 25 * time.Hour
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &Service{
		store:      store,
		categories: categories,
		quota:      quota,
		publisher:  publisher,
		views:      views,
		metrics:    m,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) today() listing.Date {
	return listing.DateOf(s.now().In(s.config.Location))
}

// withEffectiveStatus replaces the stored status with the date-derived one
func (s *Service) withEffectiveStatus(l *listing.Listing) *listing.Listing {
	l.Status = search.EffectiveStatus(s.today(), l.StartDate, l.EndDate, l.Status)
	return l
}

// Get returns a garage sale by ID
func (s *Service) Get(ctx context.Context, id int64) (*listing.Listing, error) {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatus(l), nil
}

// ListByOwner returns every garage sale of the owner, newest first
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]listing.Listing, error) {
	listings, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing garage sales: %w", err)
	}
	for i := range listings {
		s.withEffectiveStatus(&listings[i])
	}
	return listings, nil
}

// Create validates the input, claims a monthly slot and stores the garage sale
func (s *Service) Create(ctx context.Context, ownerID int64, in listing.CreateInput) (*listing.Listing, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	limits, err := s.quota.Limits(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, in.Categories, limits.MaxCategories)
	if err != nil {
		return nil, err
	}

	reservation, err := s.quota.Reserve(ctx, ownerID)
	if err != nil {
		if errors.Is(err, account.ErrLimitReached) {
			s.metrics.QuotaRejections.Inc()
			return nil, fmt.Errorf("%w: %d listings per month", listing.ErrQuotaExceeded, limits.MonthlySales)
		}
		return nil, err
	}

	l := in.Listing(ownerID)
	if err := s.store.CreateListing(ctx, l, categoryIDs(categories)); err != nil {
		if releaseErr := s.quota.Release(ctx, reservation); releaseErr != nil {
			s.logger.Error("failed to release usage slot", zap.Int64("user_id", ownerID), zap.Error(releaseErr))
		}
		return nil, fmt.Errorf("error creating garage sale: %w", err)
	}
	l.Categories = categories

	s.metrics.ListingsCreated.Inc()
	s.logger.Info("garage sale created",
		zap.Int64("id", l.ID),
		zap.Int64("user_id", ownerID),
		zap.Int("month_used", reservation.Used),
	)
	s.publish(ctx, listing.NewEvent(listing.EventCreated, l))

	return s.withEffectiveStatus(l), nil
}

// Update applies a partial update. Only the owner may update.
func (s *Service) Update(ctx context.Context, callerID, id int64, patch listing.UpdateInput) (*listing.Listing, error) {
	current, err := s.ownedListing(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if err := patch.Apply(&updated); err != nil {
		return nil, err
	}

	var ids []int64
	if patch.Categories != nil {
		limits, err := s.quota.Limits(ctx, callerID)
		if err != nil {
			return nil, err
		}
		categories, err := s.resolveCategories(ctx, patch.Categories, limits.MaxCategories)
		if err != nil {
			return nil, err
		}
		updated.Categories = categories
		ids = categoryIDs(categories)
	}

	if err := s.store.UpdateListing(ctx, &updated, ids); err != nil {
		return nil, fmt.Errorf("error updating garage sale: %w", err)
	}

	s.logger.Info("garage sale updated", zap.Int64("id", id), zap.Int64("user_id", callerID))
	s.publish(ctx, listing.NewEvent(listing.EventUpdated, &updated))

	return s.withEffectiveStatus(&updated), nil
}

// Delete removes a garage sale. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	current, err := s.ownedListing(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteListing(ctx, id); err != nil {
		return fmt.Errorf("error deleting garage sale: %w", err)
	}

	s.metrics.ListingsDeleted.Inc()
	s.logger.Info("garage sale deleted", zap.Int64("id", id), zap.Int64("user_id", callerID))
	s.publish(ctx, listing.NewEvent(listing.EventDeleted, current))
	return nil
}

func (s *Service) ownedListing(ctx context.Context, callerID, id int64) (*listing.Listing, error) {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != callerID {
		return nil, listing.ErrForbidden
	}
	return l, nil
}

// Viewer identifies who is looking at a garage sale
type Viewer struct {
	ClientIP string
	UserID   int64 // 0 when anonymous
}

// ViewResult reports the outcome of RecordView
type ViewResult struct {
	Counted    bool  `json:"counted"`
	ViewsCount int64 `json:"viewsCount"`
}

// RecordView counts at most one view per client, listing and day. Owners
// viewing their own sale are never counted.
func (s *Service) RecordView(ctx context.Context, viewer Viewer, id int64) (*ViewResult, error) {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer.UserID != 0 && viewer.UserID == l.OwnerID {
		s.metrics.ViewsDeduplicated.Inc()
		return &ViewResult{ViewsCount: l.ViewsCount}, nil
	}

	key := viewKey(viewer.ClientIP, id, listing.DateOf(s.now().UTC()))
	first, err := s.views.MarkOnce(ctx, key, s.config.ViewDedupTTL)
	if err != nil {
		s.logger.Warn("view tracker unavailable", zap.String("key", key), zap.Error(err))
		return &ViewResult{ViewsCount: l.ViewsCount}, nil
	}
	if !first {
		s.metrics.ViewsDeduplicated.Inc()
		return &ViewResult{ViewsCount: l.ViewsCount}, nil
	}

	views, err := s.store.IncrementViews(ctx, id)
	if err != nil {
		// unmark so the client's next view is counted
		if derr := s.views.Delete(ctx, key); derr != nil {
			s.logger.Warn("error releasing view mark", zap.String("key", key), zap.Error(derr))
		}
		return nil, fmt.Errorf("error recording view: %w", err)
	}
	s.metrics.ViewsCounted.Inc()
	return &ViewResult{Counted: true, ViewsCount: views}, nil
}

// viewKey identifies one client's view of a listing on a UTC calendar day
func viewKey(clientIP string, id int64, day listing.Date) string {
	return fmt.Sprintf("view:%s:%d:%s", clientIP, id, day)
}

// SweepExpired marks active garage sales that ended before today as completed.
// Search eligibility is date-derived and does not depend on this.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.store.CompleteExpired(ctx, s.today())
	if err != nil {
		return 0, fmt.Errorf("error sweeping expired garage sales: %w", err)
	}

	s.metrics.ListingsSwept.Add(float64(n))
	if n > 0 {
		s.logger.Info("expired garage sales completed", zap.Int64("count", n))
		evt := listing.NewEvent(listing.EventSwept, nil)
		evt.Count = n
		s.publish(ctx, evt)
	}
	return n, nil
}

func (s *Service) resolveCategories(ctx context.Context, slugs []string, maxCategories int) ([]listing.Category, error) {
	seen := make(map[string]struct{}, len(slugs))
	normalized := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = listing.NormalizeSlug(slug)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		normalized = append(normalized, slug)
	}
	if maxCategories > 0 && len(normalized) > maxCategories {
		normalized = normalized[:maxCategories]
	}
	if len(normalized) == 0 {
		return []listing.Category{}, nil
	}

	categories, err := s.categories.FindBySlugs(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("error resolving categories: %w", err)
	}
	return categories, nil
}

func (s *Service) publish(ctx context.Context, evt listing.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("failed to publish event", zap.String("subject", evt.Subject()), zap.Error(err))
	}
}

func categoryIDs(categories []listing.Category) []int64 {
	ids := make([]int64, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}
