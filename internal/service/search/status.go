package search

import "github.com/onyxdragun/yardsalefndr/internal/domain/listing"

// EffectiveStatus derives the status a listing has on the given day.
// Draft and cancelled are owner decisions and are never overridden by dates.
func EffectiveStatus(today, start, end listing.Date, stored listing.Status) listing.Status {
	if stored == listing.StatusDraft || stored == listing.StatusCancelled {
		return stored
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return stored
	}

	switch {
	case today.Before(start):
		return listing.StatusScheduled
	case today.After(end):
		return listing.StatusCompleted
	default:
		return listing.StatusActive
	}
}
