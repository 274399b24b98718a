// Package geo resolves listing coordinates into distances, neighborhood
// names, and compass directions relative to the Austin anchor point.
//
// Neighborhood boundaries are simplified bounding boxes. They overlap in a
// few places; lookup order decides ties, which is stable because the table
// is an ordered slice.
package geo

import (
	"math"
	"strings"

	"github.com/abelbrown/homescout/internal/listing"
)

// Anchor is the reference point all distances are measured from
// (Congress & 6th, downtown Austin).
const (
	AnchorLat = 30.2672
	AnchorLon = -97.7431
)

const earthRadiusMiles = 3959

// box is a simplified neighborhood boundary.
type box struct {
	name                           string
	latMin, latMax, lonMin, lonMax float64
}

// neighborhoods in central-out order. First match wins.
var neighborhoods = []box{
	{"Downtown", 30.26, 30.28, -97.76, -97.73},
	{"East Austin", 30.25, 30.30, -97.73, -97.68},
	{"Hyde Park", 30.30, 30.32, -97.74, -97.71},
	{"Travis Heights", 30.24, 30.26, -97.75, -97.73},
	{"South Congress", 30.23, 30.26, -97.76, -97.74},
	{"Zilker", 30.26, 30.28, -97.78, -97.76},
	{"Tarrytown", 30.29, 30.32, -97.78, -97.75},
	{"Clarksville", 30.28, 30.30, -97.76, -97.74},
	{"Mueller", 30.29, 30.32, -97.71, -97.68},
	{"Crestview", 30.32, 30.35, -97.74, -97.71},
	{"Allandale", 30.32, 30.35, -97.76, -97.73},
	{"Brentwood", 30.32, 30.34, -97.73, -97.71},
	{"Rosedale", 30.30, 30.32, -97.76, -97.73},
	{"North Loop", 30.31, 30.33, -97.72, -97.70},
	{"Windsor Park", 30.30, 30.33, -97.70, -97.67},
	{"South Lamar", 30.23, 30.26, -97.80, -97.76},
	{"Barton Hills", 30.24, 30.27, -97.80, -97.77},
	{"West Lake Hills", 30.28, 30.32, -97.82, -97.78},
	{"Circle C", 30.16, 30.20, -97.88, -97.83},
	{"Pflugerville", 30.42, 30.48, -97.65, -97.58},
	{"Round Rock", 30.48, 30.55, -97.72, -97.65},
	{"Cedar Park", 30.48, 30.54, -97.85, -97.78},
	{"Lakeway", 30.34, 30.38, -97.98, -97.92},
	{"Bee Cave", 30.30, 30.34, -97.98, -97.92},
	{"Manor", 30.34, 30.38, -97.58, -97.52},
	{"Kyle", 29.98, 30.04, -97.90, -97.84},
	{"Buda", 30.06, 30.10, -97.86, -97.80},
}

func (b box) contains(lat, lon float64) bool {
	return b.latMin <= lat && lat <= b.latMax && b.lonMin <= lon && lon <= b.lonMax
}

func (b box) center() (float64, float64) {
	return (b.latMin + b.latMax) / 2, (b.lonMin + b.lonMax) / 2
}

// Haversine returns the great-circle distance in miles between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// DistanceToAnchor returns the distance in miles from a point to the anchor.
func DistanceToAnchor(lat, lon float64) float64 {
	return Haversine(lat, lon, AnchorLat, AnchorLon)
}

// Direction returns the compass direction from the anchor point:
// "North", "South East", "Central", etc.
func Direction(lat, lon float64) string {
	latDiff := lat - AnchorLat
	lonDiff := lon - AnchorLon

	if math.Abs(latDiff) < 0.01 && math.Abs(lonDiff) < 0.01 {
		return "Central"
	}

	var parts []string
	if latDiff > 0.02 {
		parts = append(parts, "North")
	} else if latDiff < -0.02 {
		parts = append(parts, "South")
	}
	if lonDiff > 0.02 {
		parts = append(parts, "East")
	} else if lonDiff < -0.02 {
		parts = append(parts, "West")
	}

	if len(parts) == 0 {
		// Close to downtown but outside the Central window
		switch {
		case latDiff > 0:
			return "North"
		case latDiff < 0:
			return "South"
		case lonDiff > 0:
			return "East"
		default:
			return "West"
		}
	}

	return strings.Join(parts, " ")
}

// Neighborhood returns the neighborhood name and direction for a point.
// Points outside every known boundary fall back to a directional area name
// ("Northwest Austin") so downstream grouping never sees an empty name.
func Neighborhood(lat, lon float64) (string, string) {
	dir := Direction(lat, lon)

	for _, b := range neighborhoods {
		if b.contains(lat, lon) {
			return b.name, dir
		}
	}

	hasNorth := strings.Contains(dir, "North")
	hasSouth := strings.Contains(dir, "South")
	hasEast := strings.Contains(dir, "East")
	hasWest := strings.Contains(dir, "West")

	switch {
	case hasNorth && hasWest:
		return "Northwest Austin", dir
	case hasNorth:
		return "North Austin", dir
	case hasSouth && hasEast:
		return "Southeast Austin", dir
	case hasSouth && hasWest:
		return "Southwest Austin", dir
	case hasSouth:
		return "South Austin", dir
	case hasEast:
		return "East Austin", dir
	case hasWest:
		return "West Austin", dir
	default:
		return "Central Austin", dir
	}
}

// Nearby returns the names of all neighborhoods whose center lies within
// radiusMiles of the point. Used by preference derivation to spread a
// favorite's weight across its surrounding area at full strength.
func Nearby(lat, lon, radiusMiles float64) []string {
	var names []string
	for _, b := range neighborhoods {
		cLat, cLon := b.center()
		if Haversine(lat, lon, cLat, cLon) <= radiusMiles {
			names = append(names, b.name)
		}
	}
	return names
}

// Enrich fills Distance, Neighborhood, and Direction on a listing with
// coordinates. Listings without coordinates are left untouched; their
// absence degrades to neutral defaults at scoring time.
func Enrich(l *listing.Listing) {
	if !l.HasCoords() {
		return
	}
	lat, lon := *l.Latitude, *l.Longitude
	l.Distance = listing.Float(DistanceToAnchor(lat, lon))
	l.Neighborhood, l.Direction = Neighborhood(lat, lon)
}
