package geo

import (
	"math"
	"testing"

	"github.com/abelbrown/homescout/internal/listing"
)

func TestHaversineZeroDistance(t *testing.T) {
	d := Haversine(AnchorLat, AnchorLon, AnchorLat, AnchorLon)
	if d != 0 {
		t.Errorf("distance from a point to itself should be 0, got %f", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Austin to Round Rock center is roughly 16-18 miles
	d := Haversine(AnchorLat, AnchorLon, 30.5083, -97.6789)
	if d < 15 || d > 19 {
		t.Errorf("Austin to Round Rock should be ~17 miles, got %f", d)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"central", AnchorLat, AnchorLon, "Central"},
		{"north", AnchorLat + 0.1, AnchorLon, "North"},
		{"south", AnchorLat - 0.1, AnchorLon, "South"},
		{"east", AnchorLat, AnchorLon + 0.1, "East"},
		{"west", AnchorLat, AnchorLon - 0.1, "West"},
		{"northeast", AnchorLat + 0.1, AnchorLon + 0.1, "North East"},
		{"southwest", AnchorLat - 0.1, AnchorLon - 0.1, "South West"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Direction(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Direction(%f, %f) = %q, want %q", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestNeighborhoodLookup(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"zilker", 30.27, -97.77, "Zilker"},
		{"mueller", 30.305, -97.70, "Mueller"},
		{"tarrytown", 30.30, -97.76, "Tarrytown"},
		{"round rock", 30.50, -97.68, "Round Rock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Neighborhood(tt.lat, tt.lon)
			if got != tt.want {
				t.Errorf("Neighborhood(%f, %f) = %q, want %q", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestNeighborhoodFallback(t *testing.T) {
	// A point far north of every boundary box falls back to a direction name
	got, _ := Neighborhood(30.60, -97.60)
	if got != "North Austin" && got != "Northwest Austin" {
		t.Errorf("expected directional fallback, got %q", got)
	}
}

func TestNearby(t *testing.T) {
	// From the middle of Zilker, a 2 mile radius should reach Zilker itself
	// plus close-in neighbors, and must not reach Round Rock.
	names := Nearby(30.27, -97.77, 2.0)

	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["Zilker"] {
		t.Error("Zilker's own center should be within 2 miles")
	}
	if found["Round Rock"] {
		t.Error("Round Rock is ~17 miles out, should not appear")
	}

	// Radius zero yields nothing (no center is exactly at the query point)
	if got := Nearby(30.0, -97.0, 0); len(got) != 0 {
		t.Errorf("expected no neighborhoods at radius 0, got %v", got)
	}
}

func TestEnrich(t *testing.T) {
	l := &listing.Listing{
		ID:        "1",
		Latitude:  listing.Float(30.27),
		Longitude: listing.Float(-97.77),
	}
	Enrich(l)

	if l.Distance == nil {
		t.Fatal("expected distance to be set")
	}
	if math.IsNaN(*l.Distance) || *l.Distance < 0 {
		t.Errorf("bad distance %f", *l.Distance)
	}
	if l.Neighborhood != "Zilker" {
		t.Errorf("expected Zilker, got %q", l.Neighborhood)
	}
	if l.Direction == "" {
		t.Error("expected direction to be set")
	}
}

func TestEnrichNoCoords(t *testing.T) {
	l := &listing.Listing{ID: "1"}
	Enrich(l)

	if l.Distance != nil || l.Neighborhood != "" {
		t.Error("listing without coordinates should be left untouched")
	}
}
