// internal/server/handlers/search.go

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/platform/metrics"
	"github.com/onyxdragun/yardsalefndr/internal/server/middleware"
)

// Searcher runs public garage sale searches
type Searcher interface {
	Search(ctx context.Context, q listing.SearchQuery) (*listing.SearchResult, error)
}

// FavoriteAnnotator marks listings the caller has favorited
type FavoriteAnnotator interface {
	Annotate(ctx context.Context, userID int64, listings []listing.Listing) error
}

// SearchHandler handles garage sale search requests
type SearchHandler struct {
	search    Searcher
	favorites FavoriteAnnotator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search Searcher, favorites FavoriteAnnotator, m *metrics.Metrics, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		search:    search,
		favorites: favorites,
		metrics:   m,
		logger:    logger,
	}
}

// Search returns one page of eligible garage sales
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := ParseSearchQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.search.Search(r.Context(), q)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to fetch garage sales", err)
		return
	}
	h.metrics.SearchResults.Observe(float64(result.TotalCount))

	if userID, ok := middleware.UserID(r.Context()); ok {
		// Favorites are decoration; a failure here still returns the page.
		if err := h.favorites.Annotate(r.Context(), userID, result.GarageSales); err != nil {
			h.logger.Warn("failed to annotate favorites", zap.Int64("user_id", userID), zap.Error(err))
		}
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ParseSearchQuery converts URL query parameters into a SearchQuery.
// Semantic validation is left to the search service.
func ParseSearchQuery(v url.Values) (listing.SearchQuery, error) {
	q := listing.SearchQuery{
		Keywords:  strings.TrimSpace(v.Get("keywords")),
		Location:  strings.TrimSpace(v.Get("location")),
		SortBy:    listing.SortKey(v.Get("sortBy")),
		SortOrder: listing.SortOrder(v.Get("sortOrder")),
	}

	var err error
	if q.Latitude, err = optionalFloat(v, "userLat"); err != nil {
		return q, err
	}
	if q.Longitude, err = optionalFloat(v, "userLng"); err != nil {
		return q, err
	}
	if s := v.Get("radius"); s != "" {
		if q.RadiusKm, err = strconv.ParseFloat(s, 64); err != nil {
			return q, fmt.Errorf("invalid radius %q", s)
		}
	}

	if s := v.Get("categories"); s != "" {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return q, fmt.Errorf("invalid category id %q", part)
			}
			q.CategoryIDs = append(q.CategoryIDs, id)
		}
	}

	if q.StartDate, err = optionalDate(v, "startDate"); err != nil {
		return q, err
	}
	if q.EndDate, err = optionalDate(v, "endDate"); err != nil {
		return q, err
	}

	if q.Page, err = atoiDefault(v.Get("page"), 1); err != nil {
		return q, fmt.Errorf("invalid page %q", v.Get("page"))
	}
	if q.PageSize, err = atoiDefault(v.Get("limit"), 0); err != nil {
		return q, fmt.Errorf("invalid limit %q", v.Get("limit"))
	}

	return q, nil
}

func optionalFloat(v url.Values, key string) (*float64, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}
	return &f, nil
}

func optionalDate(v url.Values, key string) (*listing.Date, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	d, err := listing.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}
	return &d, nil
}
