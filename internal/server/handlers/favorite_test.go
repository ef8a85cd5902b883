package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

func TestFavoriteHandler_List(t *testing.T) {
	svc := new(MockFavorites)
	h := NewFavoriteHandler(svc, zap.NewNop())
	svc.On("List", mock.Anything, int64(5), 2, 10).Return(&listing.SearchResult{
		GarageSales: []listing.Listing{{ID: 3, IsFavorited: true}},
		TotalCount:  11,
		Page:        2,
		TotalPages:  2,
	}, nil)

	rec := serve(http.MethodGet, "/favorites", "/favorites?page=2&limit=10", h.List, "", 5)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalCount":11`)

	rec = serve(http.MethodGet, "/favorites", "/favorites?page=x", h.List, "", 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(http.MethodGet, "/favorites", "/favorites", h.List, "", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFavoriteHandler_Add(t *testing.T) {
	svc := new(MockFavorites)
	h := NewFavoriteHandler(svc, zap.NewNop())
	svc.On("Add", mock.Anything, int64(5), int64(3)).Return(nil)
	svc.On("Add", mock.Anything, int64(5), int64(4)).Return(listing.ErrNotFound)

	rec := serve(http.MethodPost, "/favorites", "/favorites", h.Add, `{"garageSaleId":3}`, 5)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"garageSaleId":3,"isFavorited":true}`, rec.Body.String())

	rec = serve(http.MethodPost, "/favorites", "/favorites", h.Add, `{"garageSaleId":4}`, 5)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(http.MethodPost, "/favorites", "/favorites", h.Add, `{}`, 5)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoriteHandler_Remove(t *testing.T) {
	svc := new(MockFavorites)
	h := NewFavoriteHandler(svc, zap.NewNop())
	svc.On("Remove", mock.Anything, int64(5), int64(3)).Return(nil)

	rec := serve(http.MethodDelete, "/favorites/{id}", "/favorites/3", h.Remove, "", 5)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"garageSaleId":3,"isFavorited":false}`, rec.Body.String())
	svc.AssertExpectations(t)
}
