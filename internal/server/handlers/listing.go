// internal/server/handlers/listing.go

package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/server/middleware"
	listingsvc "github.com/onyxdragun/yardsalefndr/internal/service/listing"
)

// ListingService is the garage sale lifecycle used by the handlers
type ListingService interface {
	Get(ctx context.Context, id int64) (*listing.Listing, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]listing.Listing, error)
	Create(ctx context.Context, ownerID int64, in listing.CreateInput) (*listing.Listing, error)
	Update(ctx context.Context, callerID, id int64, patch listing.UpdateInput) (*listing.Listing, error)
	Delete(ctx context.Context, callerID, id int64) error
	RecordView(ctx context.Context, viewer listingsvc.Viewer, id int64) (*listingsvc.ViewResult, error)
}

// ListingHandler handles garage sale CRUD requests
type ListingHandler struct {
	service ListingService
	logger  *zap.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(service ListingService, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		logger:  logger,
	}
}

// Create adds a garage sale owned by the caller
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in listing.CreateInput
	if !decodeJSON(w, r, &in) {
		return
	}

	created, err := h.service.Create(r.Context(), userID, in)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to create garage sale", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// Get returns a single garage sale
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	l, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to fetch garage sale", err)
		return
	}

	respondWithJSON(w, http.StatusOK, l)
}

// Update applies a partial update to the caller's garage sale
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var patch listing.UpdateInput
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := h.service.Update(r.Context(), userID, id, patch)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to update garage sale", err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// Delete removes the caller's garage sale
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		respondWithServiceError(w, h.logger, "Failed to delete garage sale", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Garage sale deleted"})
}

// Mine lists every garage sale owned by the caller
func (h *ListingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sales, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to fetch your garage sales", err)
		return
	}
	if sales == nil {
		sales = []listing.Listing{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"garageSales": sales})
}

// RecordView counts a view of a garage sale. Authentication is optional.
func (h *ListingHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	viewer := listingsvc.Viewer{ClientIP: middleware.ClientIP(r)}
	if userID, ok := middleware.UserID(r.Context()); ok {
		viewer.UserID = userID
	}

	result, err := h.service.RecordView(r.Context(), viewer, id)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to record view", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
