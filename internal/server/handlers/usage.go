// internal/server/handlers/usage.go

package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/account"
)

// UsageReader reports a user's monthly allowance
type UsageReader interface {
	Usage(ctx context.Context, userID int64) (*account.Usage, error)
}

// UsageHandler serves the caller's listing allowance
type UsageHandler struct {
	accounts UsageReader
	logger   *zap.Logger
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(accounts UsageReader, logger *zap.Logger) *UsageHandler {
	return &UsageHandler{accounts: accounts, logger: logger}
}

// Get returns this month's usage for the caller
func (h *UsageHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	usage, err := h.accounts.Usage(r.Context(), userID)
	if errors.Is(err, account.ErrUserNotFound) {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondWithServiceError(w, h.logger, "Failed to fetch usage", err)
		return
	}

	respondWithJSON(w, http.StatusOK, usage)
}
