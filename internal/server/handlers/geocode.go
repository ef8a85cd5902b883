// internal/server/handlers/geocode.go

package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
)

// GeoHandler handles geospatial-related HTTP requests
type GeoHandler struct {
	geocoder geo.Geocoder
	logger   *zap.Logger
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(geocoder geo.Geocoder, logger *zap.Logger) *GeoHandler {
	return &GeoHandler{
		geocoder: geocoder,
		logger:   logger,
	}
}

type geocodeRequest struct {
	Address string `json:"address"`
}

// Geocode resolves a street address to coordinates
func (h *GeoHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.geocoder.Geocode(r.Context(), req.Address)
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, result)
	case errors.Is(err, geo.ErrInvalidAddress):
		respondWithError(w, http.StatusBadRequest, "Address is required")
	case errors.Is(err, geo.ErrAddressNotFound):
		respondWithError(w, http.StatusNotFound, "Address not found. Please check the address and try again.")
	case errors.Is(err, geo.ErrGeocoderQuota):
		respondWithError(w, http.StatusTooManyRequests, "Geocoding quota exceeded. Please try again later.")
	case errors.Is(err, geo.ErrGeocoderDisabled):
		respondWithError(w, http.StatusServiceUnavailable, "Geocoding is not configured")
	default:
		h.logger.Error("geocoding failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to geocode address")
	}
}
