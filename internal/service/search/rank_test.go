package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

func TestRank_Date(t *testing.T) {
	a := sale(3, "a", "2025-06-08", "2025-06-08")
	b := sale(1, "b", "2025-06-07", "2025-06-07")
	b.StartTime = "10:00"
	c := sale(2, "c", "2025-06-07", "2025-06-07")
	c.StartTime = "08:00"
	d := sale(4, "d", "2025-06-07", "2025-06-07")
	d.StartTime = "08:00"

	input := []listing.Listing{a, b, d, c}

	asc := Rank(input, listing.SortDate, listing.SortAsc, nil)
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(asc))

	desc := Rank(input, listing.SortDate, listing.SortDesc, nil)
	assert.Equal(t, []int64{3, 1, 2, 4}, ids(desc))

	// input untouched
	assert.Equal(t, []int64{3, 1, 4, 2}, ids(input))
}

func TestRank_Title(t *testing.T) {
	input := []listing.Listing{
		sale(3, "banana", "2025-06-07", "2025-06-07"),
		sale(2, "Apple", "2025-06-07", "2025-06-07"),
		sale(1, "apple", "2025-06-07", "2025-06-07"),
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(Rank(input, listing.SortTitle, listing.SortAsc, nil)))
	assert.Equal(t, []int64{3, 1, 2}, ids(Rank(input, listing.SortTitle, listing.SortDesc, nil)))
}

func TestRank_Distance(t *testing.T) {
	center := geo.Point{Lat: 49.69, Lng: -125.0}
	input := []listing.Listing{
		at(sale(1, "far", "2025-06-07", "2025-06-07"), 49.25, -123.10),
		sale(2, "nowhere", "2025-06-07", "2025-06-07"),
		at(sale(3, "near", "2025-06-07", "2025-06-07"), 49.70, -125.01),
		at(sale(4, "near twin", "2025-06-07", "2025-06-07"), 49.70, -125.01),
	}

	asc := Rank(input, listing.SortDistance, listing.SortAsc, &center)
	assert.Equal(t, []int64{3, 4, 1, 2}, ids(asc))

	desc := Rank(input, listing.SortDistance, listing.SortDesc, &center)
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(desc))
}

func TestRank_DistanceWithoutCenterFallsBackToDate(t *testing.T) {
	input := []listing.Listing{
		at(sale(1, "later", "2025-06-09", "2025-06-09"), 0, 0),
		at(sale(2, "sooner", "2025-06-07", "2025-06-07"), 45, 45),
	}

	got := Rank(input, listing.SortDistance, listing.SortAsc, nil)
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestRank_Created(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	a := sale(1, "a", "2025-06-07", "2025-06-07")
	a.CreatedAt = base.Add(time.Hour)
	b := sale(2, "b", "2025-06-07", "2025-06-07")
	b.CreatedAt = base

	assert.Equal(t, []int64{2, 1}, ids(Rank([]listing.Listing{a, b}, listing.SortCreated, listing.SortAsc, nil)))
	assert.Equal(t, []int64{1, 2}, ids(Rank([]listing.Listing{a, b}, listing.SortCreated, listing.SortDesc, nil)))
}

func TestRank_Deterministic(t *testing.T) {
	var input []listing.Listing
	for i := int64(20); i > 0; i-- {
		input = append(input, sale(i, "same", "2025-06-07", "2025-06-07"))
	}

	first := Rank(input, listing.SortTitle, listing.SortAsc, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, ids(first), ids(Rank(input, listing.SortTitle, listing.SortAsc, nil)))
	}
	assert.Equal(t, int64(1), first[0].ID)
}
