package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/account"
	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

func TestCategoryHandler_List(t *testing.T) {
	svc := new(MockCategories)
	h := NewCategoryHandler(svc, zap.NewNop())
	svc.On("ListActive", mock.Anything).Return([]listing.Category{{ID: 1, Name: "Tools", Slug: "tools"}}, nil).Once()
	svc.On("ListActive", mock.Anything).Return(nil, errors.New("boom")).Once()

	rec := serve(http.MethodGet, "/categories", "/categories", h.List, "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"tools"`)

	rec = serve(http.MethodGet, "/categories", "/categories", h.List, "", 0)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUsageHandler_Get(t *testing.T) {
	svc := new(MockUsage)
	h := NewUsageHandler(svc, zap.NewNop())
	usage := account.NewUsage("2025-06", 1, 2, account.TierRegistered)
	svc.On("Usage", mock.Anything, int64(5)).Return(&usage, nil)
	svc.On("Usage", mock.Anything, int64(6)).Return(nil, account.ErrUserNotFound)

	rec := serve(http.MethodGet, "/usage", "/usage", h.Get, "", 5)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body account.Usage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Remaining)
	assert.True(t, body.CanCreate)

	rec = serve(http.MethodGet, "/usage", "/usage", h.Get, "", 6)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(http.MethodGet, "/usage", "/usage", h.Get, "", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGeoHandler_Geocode(t *testing.T) {
	geocoder := new(MockGeocoder)
	h := NewGeoHandler(geocoder, zap.NewNop())
	geocoder.On("Geocode", mock.Anything, "1 Main St").Return(&geo.GeocodeResult{
		Latitude:  49.69,
		Longitude: -124.99,
		City:      "Courtenay",
	}, nil)

	rec := serve(http.MethodPost, "/geocode", "/geocode", h.Geocode, `{"address":"1 Main St"}`, 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"city":"Courtenay"`)
}

func TestGeoHandler_GeocodeErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{geo.ErrInvalidAddress, http.StatusBadRequest},
		{geo.ErrAddressNotFound, http.StatusNotFound},
		{geo.ErrGeocoderQuota, http.StatusTooManyRequests},
		{geo.ErrGeocoderDisabled, http.StatusServiceUnavailable},
		{geo.ErrGeocoderDenied, http.StatusInternalServerError},
		{errors.New("dial tcp: timeout"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			geocoder := new(MockGeocoder)
			h := NewGeoHandler(geocoder, zap.NewNop())
			geocoder.On("Geocode", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := serve(http.MethodPost, "/geocode", "/geocode", h.Geocode, `{"address":"?"}`, 0)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("refused") })

	h := NewHealthHandler("test", zap.NewNop(),
		HealthCheck{Name: "database", Pinger: ok},
		HealthCheck{Name: "cache", Pinger: ok},
	)
	rec := serve(http.MethodGet, "/health", "/health", h.Health, "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status      string                      `json:"status"`
		Application map[string]string           `json:"application"`
		Deps        map[string]dependencyStatus `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "YardSaleFndr", body.Application["name"])
	assert.Equal(t, "1.0.0", body.Application["version"])
	assert.True(t, body.Deps["database"].Healthy)

	h = NewHealthHandler("test", zap.NewNop(),
		HealthCheck{Name: "database", Pinger: ok},
		HealthCheck{Name: "cache", Pinger: down},
	)
	rec = serve(http.MethodGet, "/health", "/health", h.Health, "", 0)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"disconnected"`)
}

func TestAdminHandler_Sweep(t *testing.T) {
	listings := new(MockListings)
	h := NewAdminHandler(listings, new(MockSearcher), zap.NewNop())
	listings.On("SweepExpired", mock.Anything).Return(int64(3), nil).Once()
	listings.On("SweepExpired", mock.Anything).Return(int64(0), errors.New("boom")).Once()

	rec := serve(http.MethodPost, "/admin/sweep", "/admin/sweep", h.Sweep, "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3.0, body["updatedCount"])
	assert.NotEmpty(t, body["timestamp"])

	rec = serve(http.MethodPost, "/admin/sweep", "/admin/sweep", h.Sweep, "", 0)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminHandler_Export(t *testing.T) {
	searcher := new(MockSearcher)
	h := NewAdminHandler(new(MockListings), searcher, zap.NewNop())
	searcher.On("SearchAll", mock.Anything, mock.MatchedBy(func(q listing.SearchQuery) bool {
		return q.Page == 3
	})).Return(&listing.SearchResult{Page: 3}, nil)

	rec := serve(http.MethodGet, "/admin/garage-sales", "/admin/garage-sales?page=3", h.Export, "", 0)

	assert.Equal(t, http.StatusOK, rec.Code)
	searcher.AssertExpectations(t)
}
