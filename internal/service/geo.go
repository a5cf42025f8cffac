package service

import (
	"math"

	"clinic-management-backend/internal/repository"
)

const (
	earthRadiusKm = 6371.0
	kmPerDegree   = 111.045
)

// Haversine returns the great-circle distance in kilometres between two points
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundingBox returns a lat/lng window that contains every point within radiusKm
func BoundingBox(lat, lng, radiusKm float64) repository.BoundingBox {
	dLat := radiusKm / kmPerDegree
	box := repository.BoundingBox{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
	}

	cosLat := math.Cos(toRadians(lat))
	if box.MinLat <= -90 || box.MaxLat >= 90 || cosLat < 1e-6 {
		box.WrapsLng = true
		return box
	}

	// widest longitude offset of the circle, reached poleward of the centre's parallel
	angular := radiusKm / earthRadiusKm
	sinLng := math.Sin(angular) / cosLat
	if angular >= math.Pi/2 || sinLng >= 1 {
		box.WrapsLng = true
		return box
	}

	dLng := math.Asin(sinLng) * 180 / math.Pi
	box.MinLng = lng - dLng
	box.MaxLng = lng + dLng
	if box.MinLng < -180 || box.MaxLng > 180 {
		box.WrapsLng = true
	}
	return box
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
