package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"
	"github.com/retailops/locator/internal/pkg/models"
)

// earthRadiusMiles is the Earth radius used for great-circle distances.
// Distances are reported in miles throughout the service.
const earthRadiusMiles = 3961.0

// Haversine returns the great-circle distance in miles between two
// coordinates given in decimal degrees. Malformed inputs propagate as NaN
// and are caught by the invalid-coordinate checks downstream.
func Haversine(a, b models.Coordinate) float64 {
	const degRad = math.Pi / 180.0

	dLat := (b.Latitude - a.Latitude) * degRad
	dLon := (b.Longitude - a.Longitude) * degRad
	lat1 := a.Latitude * degRad
	lat2 := b.Latitude * degRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// PostalDistance returns the absolute integer difference between two postal
// codes. This is a deliberately crude proximity proxy: it treats codes as
// plain integers and makes no attempt at true geocoding.
func PostalDistance(codeA, codeB string) (float64, error) {
	a, err := strconv.Atoi(codeA)
	if err != nil {
		return 0, fmt.Errorf("invalid postal code %q: %w", codeA, err)
	}
	b, err := strconv.Atoi(codeB)
	if err != nil {
		return 0, fmt.Errorf("invalid postal code %q: %w", codeB, err)
	}

	return math.Abs(float64(a - b)), nil
}

// CellKey returns the geohash cell of a coordinate at the given precision.
// Used to memoize refinement results for nearby origins.
func CellKey(c models.Coordinate, precision uint) string {
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}

// ParseCoordinates parses a "lat,long" pair in decimal degrees
func ParseCoordinates(s string) (models.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Coordinate{}, fmt.Errorf("invalid coordinates %q: expected lat,long", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}

	return models.Coordinate{Latitude: lat, Longitude: lng}, nil
}
