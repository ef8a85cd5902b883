// internal/server/handlers/admin.go

package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

// Sweeper marks expired garage sales completed
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Exporter runs searches without the eligibility filter
type Exporter interface {
	SearchAll(ctx context.Context, q listing.SearchQuery) (*listing.SearchResult, error)
}

// AdminHandler serves maintenance endpoints guarded by the cron secret
type AdminHandler struct {
	sweeper  Sweeper
	exporter Exporter
	logger   *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sweeper Sweeper, exporter Exporter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		sweeper:  sweeper,
		exporter: exporter,
		logger:   logger,
	}
}

// Sweep completes every active garage sale that has ended
func (h *AdminHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	n, err := h.sweeper.SweepExpired(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to update expired sales", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"updatedCount": n,
		"timestamp":    time.Now().UTC(),
	})
}

// Export lists garage sales regardless of status or dates
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	q, err := ParseSearchQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.exporter.SearchAll(r.Context(), q)
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to export garage sales", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
