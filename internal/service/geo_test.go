package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(6.9271, 79.8612, 6.9271, 79.8612), 1e-9)
	// Colombo to Kandy
	assert.InDelta(t, 94.3, Haversine(6.9271, 79.8612, 7.2906, 80.6337), 0.1)
	assert.InDelta(t, Haversine(7.2906, 80.6337, 6.9271, 79.8612), Haversine(6.9271, 79.8612, 7.2906, 80.6337), 1e-9)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	box := BoundingBox(6.9271, 79.8612, 10)

	assert.False(t, box.WrapsLng)
	assert.Less(t, box.MinLat, 6.9271)
	assert.Greater(t, box.MaxLat, 6.9271)
	assert.InDelta(t, 10/kmPerDegree, box.MaxLat-6.9271, 1e-9)

	assertCircleInside(t, 6.9271, 79.8612, 10)
}

func TestBoundingBoxAtHighLatitude(t *testing.T) {
	box := BoundingBox(60, 0, 1000)
	assert.False(t, box.WrapsLng)

	// the circle bulges poleward, so its widest point sits above the centre's parallel
	lat, lng := 61.2592, 18.1181
	assert.Less(t, Haversine(60, 0, lat, lng), 1000.0)
	assert.True(t, lat >= box.MinLat && lat <= box.MaxLat)
	assert.True(t, lng >= box.MinLng && lng <= box.MaxLng, "lng %v outside [%v, %v]", lng, box.MinLng, box.MaxLng)

	assertCircleInside(t, 60, 0, 1000)
	assertCircleInside(t, -45, 120, 500)
}

func TestBoundingBoxWrapsNearPolesAndAntimeridian(t *testing.T) {
	assert.True(t, BoundingBox(89.99, 0, 10).WrapsLng)
	assert.True(t, BoundingBox(80, 0, 1500).WrapsLng)
	assert.True(t, BoundingBox(0, 179.99, 10).WrapsLng)
	assert.True(t, BoundingBox(0, -179.99, 10).WrapsLng)
}

// assertCircleInside walks the circle of radiusKm around the centre and checks every point lands in the box
func assertCircleInside(t *testing.T, lat, lng, radiusKm float64) {
	t.Helper()
	box := BoundingBox(lat, lng, radiusKm)
	require.False(t, box.WrapsLng)

	angular := radiusKm / earthRadiusKm
	phi, lambda := toRadians(lat), toRadians(lng)
	for bearing := 0.0; bearing < 360; bearing += 0.5 {
		theta := toRadians(bearing)
		pLat := math.Asin(math.Sin(phi)*math.Cos(angular) + math.Cos(phi)*math.Sin(angular)*math.Cos(theta))
		pLng := lambda + math.Atan2(math.Sin(theta)*math.Sin(angular)*math.Cos(phi), math.Cos(angular)-math.Sin(phi)*math.Sin(pLat))

		gotLat, gotLng := pLat*180/math.Pi, pLng*180/math.Pi
		assert.True(t, gotLat >= box.MinLat && gotLat <= box.MaxLat, "bearing %v: lat %v outside box", bearing, gotLat)
		assert.True(t, gotLng >= box.MinLng && gotLng <= box.MaxLng, "bearing %v: lng %v outside box", bearing, gotLng)
	}
}
