// internal/server/handlers/response.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
	"github.com/onyxdragun/yardsalefndr/internal/server/middleware"
)

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps domain errors to status codes. Anything
// unrecognised is logged and reported as a 500 with the fallback message.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, fallback string, err error) {
	switch {
	case errors.Is(err, listing.ErrInvalidQuery), errors.Is(err, listing.ErrInvalidListing):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, listing.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Garage sale not found")
	case errors.Is(err, listing.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "You do not own this garage sale")
	case errors.Is(err, listing.ErrQuotaExceeded):
		respondWithError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error(fallback, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// requireUser returns the authenticated caller or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
	}
	return userID, ok
}

// idParam parses the {id} route parameter
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid garage sale ID")
		return 0, false
	}
	return id, true
}

// decodeJSON reads a JSON body into v, writing a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// atoiDefault parses an optional integer query parameter
func atoiDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
