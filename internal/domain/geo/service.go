// internal/domain/geo/service.go

package geo

import (
	"context"
	"errors"
)

// Point is a latitude/longitude pair in degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies in the geographic coordinate ranges
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// GeocodeResult holds a resolved address
type GeocodeResult struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
	PlaceID          string  `json:"placeId"`
	City             string  `json:"city,omitempty"`
	Province         string  `json:"province,omitempty"`
	PostalCode       string  `json:"postalCode,omitempty"`
}

// Point returns the coordinates of the result
func (r GeocodeResult) Point() Point {
	return Point{Lat: r.Latitude, Lng: r.Longitude}
}

var (
	ErrInvalidAddress   = errors.New("address is required")
	ErrAddressNotFound  = errors.New("address not found")
	ErrGeocoderQuota    = errors.New("geocoding quota exceeded")
	ErrGeocoderDenied   = errors.New("geocoding request denied")
	ErrGeocoderDisabled = errors.New("geocoding is not configured")
)

// Geocoder resolves free-text addresses to coordinates
type Geocoder interface {
	// Geocode gets coordinates and address components for an address
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}
