package search

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

type MockCandidateSource struct {
	mock.Mock
}

func (m *MockCandidateSource) FindCandidates(ctx context.Context, today listing.Date) ([]listing.Listing, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockCandidateSource) FindAll(ctx context.Context) ([]listing.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

var testToday = listing.Date{Year: 2025, Month: time.June, Day: 1}

func newTestService(source CandidateSource) *Service {
	s := NewService(source, DefaultConfig(), zap.NewNop())
	s.now = func() time.Time { return testToday.Time().Add(10 * time.Hour) }
	return s
}

func date(s string) listing.Date {
	d, err := listing.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *listing.Date {
	d := date(s)
	return &d
}

func f64(v float64) *float64 { return &v }

// sale builds an active listing running from start to end
func sale(id int64, title, start, end string) listing.Listing {
	return listing.Listing{
		ID:        id,
		Title:     title,
		Status:    listing.StatusActive,
		StartDate: date(start),
		EndDate:   date(end),
		StartTime: listing.DefaultStartTime,
		EndTime:   listing.DefaultEndTime,
	}
}

func at(l listing.Listing, lat, lng float64) listing.Listing {
	l.Latitude = f64(lat)
	l.Longitude = f64(lng)
	return l
}

func withCategories(l listing.Listing, cats ...listing.Category) listing.Listing {
	l.Categories = cats
	return l
}

func ids(ls []listing.Listing) []int64 {
	out := make([]int64, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}
