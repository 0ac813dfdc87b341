// Package geo provides spherical-earth distance and bearing helpers.
//
// Inputs are decimal degrees and are not validated: NaN propagates to the result.
package geo

import (
	"math"

	"shop-delivery-service/internal/domain"
)

// EarthRadiusKm is the mean earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great-circle distance in kilometers between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Bearing returns the rhumb-line bearing in degrees, normalized to [0, 360).
// The latitude term is the Mercator-projected difference.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dLambda := toRadians(lon2 - lon1)

	dPsi := math.Log(math.Tan(math.Pi/4+phi2/2) / math.Tan(math.Pi/4+phi1/2))
	theta := math.Atan2(dLambda, dPsi)

	return math.Mod(toDegrees(theta)+360, 360)
}

// Between returns the distance in kilometers between two locations.
func Between(a, b domain.Location) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon)
}
