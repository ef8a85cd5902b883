package search

import (
	"sort"
	"strings"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	geosvc "github.com/onyxdragun/yardsalefndr/internal/service/geo"
)

// Rank returns a sorted copy of listings. Every key ends with an id ascending
// tie-break so equal inputs always produce the same order.
// Sorting by distance without a center falls back to date ordering.
func Rank(listings []listing.Listing, key listing.SortKey, order listing.SortOrder, center *geo.Point) []listing.Listing {
	out := make([]listing.Listing, len(listings))
	copy(out, listings)

	desc := order == listing.SortDesc
	if key == listing.SortDistance && center == nil {
		key = listing.SortDate
	}

	var less func(a, b *listing.Listing) bool
	switch key {
	case listing.SortDistance:
		less = byDistance(*center, desc)
	case listing.SortTitle:
		less = byTitle(desc)
	case listing.SortCreated:
		less = byCreated(desc)
	default:
		less = byDate(desc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

// directed applies the sort direction to a three-way comparison,
// falling through to id ascending on ties
func directed(c int, desc bool, a, b *listing.Listing) bool {
	if c != 0 {
		if desc {
			return c > 0
		}
		return c < 0
	}
	return a.ID < b.ID
}

func byDate(desc bool) func(a, b *listing.Listing) bool {
	return func(a, b *listing.Listing) bool {
		c := a.StartDate.Compare(b.StartDate)
		if c == 0 {
			c = strings.Compare(a.StartTime, b.StartTime)
		}
		return directed(c, desc, a, b)
	}
}

func byTitle(desc bool) func(a, b *listing.Listing) bool {
	return func(a, b *listing.Listing) bool {
		c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		return directed(c, desc, a, b)
	}
}

func byCreated(desc bool) func(a, b *listing.Listing) bool {
	return func(a, b *listing.Listing) bool {
		return directed(a.CreatedAt.Compare(b.CreatedAt), desc, a, b)
	}
}

// byDistance puts listings without coordinates last in either direction
func byDistance(center geo.Point, desc bool) func(a, b *listing.Listing) bool {
	return func(a, b *listing.Listing) bool {
		pa, okA := a.Point()
		pb, okB := b.Point()
		switch {
		case !okA && !okB:
			return a.ID < b.ID
		case !okA:
			return false
		case !okB:
			return true
		}
		da, db := geosvc.Distance(center, pa), geosvc.Distance(center, pb)
		c := 0
		if da < db {
			c = -1
		} else if da > db {
			c = 1
		}
		return directed(c, desc, a, b)
	}
}
