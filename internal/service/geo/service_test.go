package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
)

func TestDistance_Identity(t *testing.T) {
	p := geo.Point{Lat: 49.69, Lng: -125.0}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]geo.Point{
		{{Lat: 49.69, Lng: -125.0}, {Lat: 49.32, Lng: -124.31}},
		{{Lat: 0, Lng: 0}, {Lat: -33.86, Lng: 151.21}},
		{{Lat: 89.9, Lng: 179.9}, {Lat: -89.9, Lng: -179.9}},
	}
	for _, pair := range pairs {
		assert.InDelta(t, Distance(pair[0], pair[1]), Distance(pair[1], pair[0]), 1e-9)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	// one degree of latitude
	d := Distance(geo.Point{Lat: 0, Lng: 0}, geo.Point{Lat: 1, Lng: 0})
	assert.InDelta(t, 111.19, d, 0.01)

	// Courtenay to Comox
	d = Distance(geo.Point{Lat: 49.6841, Lng: -124.9904}, geo.Point{Lat: 49.6735, Lng: -124.9286})
	assert.InDelta(t, 4.6, d, 0.2)
}

func TestWithinRadius(t *testing.T) {
	center := geo.Point{Lat: 49.69, Lng: -125.0}
	near := geo.Point{Lat: 49.70, Lng: -125.01}
	far := geo.Point{Lat: 49.20, Lng: -124.0}

	assert.True(t, WithinRadius(center, near, 10))
	assert.False(t, WithinRadius(center, far, 10))
	assert.True(t, WithinRadius(center, center, 0))
}
