package search

import (
	"strings"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/service/geo"
)

// Predicate reports whether a listing satisfies one search constraint
type Predicate func(l *listing.Listing) bool

// All combines predicates conjunctively. With no predicates it matches everything.
func All(preds ...Predicate) Predicate {
	return func(l *listing.Listing) bool {
		for _, p := range preds {
			if !p(l) {
				return false
			}
		}
		return true
	}
}

// Eligible keeps listings that are publicly visible and not yet over
func Eligible(today listing.Date) Predicate {
	return func(l *listing.Listing) bool {
		if l.EndDate.Before(today) {
			return false
		}
		return EffectiveStatus(today, l.StartDate, l.EndDate, l.Status).Visible()
	}
}

// Radius keeps listings with coordinates within radiusKm of the query center.
// Without a center it only requires the listing to have coordinates.
func Radius(q listing.SearchQuery) Predicate {
	center, hasCenter := q.Center()
	return func(l *listing.Listing) bool {
		p, ok := l.Point()
		if !ok {
			return false
		}
		if !hasCenter {
			return true
		}
		return geo.WithinRadius(center, p, q.RadiusKm)
	}
}

// Keywords matches the term against title, description, address and city
func Keywords(term string) Predicate {
	needle := strings.ToLower(term)
	return func(l *listing.Listing) bool {
		return containsFold(l.Title, needle) ||
			containsFold(l.Description, needle) ||
			containsFold(l.Address, needle) ||
			containsFold(l.City, needle)
	}
}

// Location matches the term against city and address
func Location(term string) Predicate {
	needle := strings.ToLower(term)
	return func(l *listing.Listing) bool {
		return containsFold(l.City, needle) || containsFold(l.Address, needle)
	}
}

// Categories keeps listings carrying at least one of ids
func Categories(ids []int64) Predicate {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(l *listing.Listing) bool {
		return l.HasCategory(set)
	}
}

// DateRange keeps listings starting on or after from and ending on or before to.
// Either bound may be nil.
func DateRange(from, to *listing.Date) Predicate {
	return func(l *listing.Listing) bool {
		if from != nil && l.StartDate.Before(*from) {
			return false
		}
		if to != nil && l.EndDate.After(*to) {
			return false
		}
		return true
	}
}

// BuildFilter returns the predicate for q. Empty query fields add no constraint.
func BuildFilter(q listing.SearchQuery, today listing.Date) Predicate {
	preds := []Predicate{Eligible(today)}
	preds = append(preds, queryPredicates(q)...)
	return All(preds...)
}

func queryPredicates(q listing.SearchQuery) []Predicate {
	var preds []Predicate
	if q.HasRadius() {
		preds = append(preds, Radius(q))
	}
	if kw := strings.TrimSpace(q.Keywords); kw != "" {
		preds = append(preds, Keywords(kw))
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		preds = append(preds, Location(loc))
	}
	if len(q.CategoryIDs) > 0 {
		preds = append(preds, Categories(q.CategoryIDs))
	}
	if q.StartDate != nil || q.EndDate != nil {
		preds = append(preds, DateRange(q.StartDate, q.EndDate))
	}
	return preds
}

// Apply returns the listings matching pred in their original order
func Apply(listings []listing.Listing, pred Predicate) []listing.Listing {
	out := make([]listing.Listing, 0, len(listings))
	for i := range listings {
		if pred(&listings[i]) {
			out = append(out, listings[i])
		}
	}
	return out
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
