package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
)

const DefaultGoogleBaseURL = "https://maps.googleapis.com"

// GoogleConfig configures the Google Geocoding API client
type GoogleConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// GoogleGeocoder implements geo.Geocoder against the Google Geocoding API
type GoogleGeocoder struct {
	client *http.Client
	config GoogleConfig
	logger *zap.Logger
}

// NewGoogleGeocoder creates a new geocoder
func NewGoogleGeocoder(config GoogleConfig, logger *zap.Logger) *GoogleGeocoder {
	if config.BaseURL == "" {
		config.BaseURL = DefaultGoogleBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &GoogleGeocoder{
		client: &http.Client{Timeout: config.Timeout},
		config: config,
		logger: logger,
	}
}

type googleResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []googleResult `json:"results"`
}

type googleResult struct {
	FormattedAddress  string `json:"formatted_address"`
	PlaceID           string `json:"place_id"`
	AddressComponents []struct {
		LongName  string   `json:"long_name"`
		ShortName string   `json:"short_name"`
		Types     []string `json:"types"`
	} `json:"address_components"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Geocode resolves an address to coordinates and address components
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, geo.ErrInvalidAddress
	}
	if g.config.APIKey == "" {
		return nil, geo.ErrGeocoderDisabled
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.config.APIKey)
	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?%s", strings.TrimRight(g.config.BaseURL, "/"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling geocoding API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned HTTP %d", resp.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding geocode response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, geo.ErrAddressNotFound
	case "OVER_QUERY_LIMIT":
		return nil, geo.ErrGeocoderQuota
	case "REQUEST_DENIED":
		g.logger.Warn("geocoding request denied", zap.String("message", body.ErrorMessage))
		return nil, geo.ErrGeocoderDenied
	default:
		return nil, fmt.Errorf("geocoding failed with status %s", body.Status)
	}
	if len(body.Results) == 0 {
		return nil, geo.ErrAddressNotFound
	}

	r := body.Results[0]
	result := &geo.GeocodeResult{
		Latitude:         r.Geometry.Location.Lat,
		Longitude:        r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
		PlaceID:          r.PlaceID,
	}
	for _, c := range r.AddressComponents {
		switch {
		case hasType(c.Types, "locality"):
			result.City = c.LongName
		case hasType(c.Types, "administrative_area_level_1"):
			result.Province = c.ShortName
		case hasType(c.Types, "postal_code"):
			result.PostalCode = c.LongName
		}
	}
	return result, nil
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
