// internal/server/handlers/favorite.go

package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

// FavoriteService manages a user's saved garage sales
type FavoriteService interface {
	Add(ctx context.Context, userID, saleID int64) error
	Remove(ctx context.Context, userID, saleID int64) error
	List(ctx context.Context, userID int64, page, size int) (*listing.SearchResult, error)
}

// FavoriteHandler handles favorite requests
type FavoriteHandler struct {
	service FavoriteService
	logger  *zap.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		logger:  logger,
	}
}

// List returns the caller's favorites, newest first
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, err := atoiDefault(r.URL.Query().Get("page"), 1)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid page")
		return
	}
	size, err := atoiDefault(r.URL.Query().Get("limit"), 0)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	result, err := h.service.List(r.Context(), userID, page, size)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to fetch favorites", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type addFavoriteRequest struct {
	GarageSaleID int64 `json:"garageSaleId"`
}

// Add favorites a garage sale
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req addFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.GarageSaleID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Garage sale ID is required")
		return
	}

	if err := h.service.Add(r.Context(), userID, req.GarageSaleID); err != nil {
		respondWithServiceError(w, h.logger, "Failed to add favorite", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"garageSaleId": req.GarageSaleID, "isFavorited": true})
}

// Remove unfavorites a garage sale
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, id); err != nil {
		respondWithServiceError(w, h.logger, "Failed to remove favorite", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"garageSaleId": id, "isFavorited": false})
}
