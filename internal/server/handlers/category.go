// internal/server/handlers/category.go

package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

// CategoryLister returns the active categories
type CategoryLister interface {
	ListActive(ctx context.Context) ([]listing.Category, error)
}

// CategoryHandler serves the category list
type CategoryHandler struct {
	categories CategoryLister
	logger     *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories CategoryLister, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// List returns active categories in display order
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListActive(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to fetch categories", err)
		return
	}
	if categories == nil {
		categories = []listing.Category{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
