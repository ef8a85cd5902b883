package listing

import "github.com/onyxdragun/yardsalefndr/internal/domain/geo"

// SortKey selects the ranking key for search results
type SortKey string

const (
	SortDate     SortKey = "date"
	SortDistance SortKey = "distance"
	SortTitle    SortKey = "title"
	SortCreated  SortKey = "created"
)

// SortOrder is the ranking direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchQuery holds every constraint a caller can put on a search.
// Zero values mean "no constraint".
type SearchQuery struct {
	Keywords    string
	Location    string
	Latitude    *float64
	Longitude   *float64
	RadiusKm    float64
	CategoryIDs []int64
	StartDate   *Date
	EndDate     *Date
	SortBy      SortKey
	SortOrder   SortOrder
	Page        int
	PageSize    int
}

// Center returns the query center point, if both coordinates are set
func (q SearchQuery) Center() (geo.Point, bool) {
	if q.Latitude == nil || q.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *q.Latitude, Lng: *q.Longitude}, true
}

// HasRadius reports whether a radius filter is active
func (q SearchQuery) HasRadius() bool {
	return q.RadiusKm > 0
}

// SearchResult is one page of ranked listings
type SearchResult struct {
	GarageSales []Listing `json:"garageSales"`
	TotalCount  int       `json:"totalCount"`
	Page        int       `json:"page"`
	TotalPages  int       `json:"totalPages"`
	HasMore     bool      `json:"hasMore"`
}
