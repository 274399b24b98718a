package prefs

import (
	"math"
	"testing"

	"github.com/abelbrown/homescout/internal/listing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDeriveEmpty(t *testing.T) {
	p := Derive(nil)

	if len(p.PreferredNeighborhoods) != 0 {
		t.Errorf("expected no preferred neighborhoods, got %v", p.PreferredNeighborhoods)
	}
	if len(p.NeighborhoodWeights) != 0 {
		t.Errorf("expected no weights, got %v", p.NeighborhoodWeights)
	}
	if p.IdealPrice != nil || p.IdealSqft != nil || p.IdealBeds != nil || p.IdealBaths != nil {
		t.Error("expected all ideals unset")
	}
	if p.HOAPreference != nil {
		t.Error("expected HOA preference unset")
	}
}

func TestDeriveNeighborhoodWeights(t *testing.T) {
	// 7 favorites in Zilker, 3 in Mueller, no coordinates so there is no
	// nearby-neighborhood spillover.
	var favorites []listing.Listing
	for i := 0; i < 7; i++ {
		favorites = append(favorites, listing.Listing{Neighborhood: "Zilker"})
	}
	for i := 0; i < 3; i++ {
		favorites = append(favorites, listing.Listing{Neighborhood: "Mueller"})
	}

	p := Derive(favorites)

	if !almostEqual(p.NeighborhoodWeights["Zilker"], 1.5) {
		t.Errorf("Zilker weight = %f, want 1.5", p.NeighborhoodWeights["Zilker"])
	}
	want := 1.0 + (3.0/7.0)*0.5
	if !almostEqual(p.NeighborhoodWeights["Mueller"], want) {
		t.Errorf("Mueller weight = %f, want %f", p.NeighborhoodWeights["Mueller"], want)
	}

	if len(p.PreferredNeighborhoods) != 2 ||
		p.PreferredNeighborhoods[0] != "Zilker" ||
		p.PreferredNeighborhoods[1] != "Mueller" {
		t.Errorf("preferred = %v, want [Zilker Mueller]", p.PreferredNeighborhoods)
	}
}

func TestDeriveWeightsInRange(t *testing.T) {
	favorites := []listing.Listing{
		{Neighborhood: "Zilker"},
		{Neighborhood: "Mueller"},
		{Neighborhood: "Mueller"},
		{Neighborhood: "Hyde Park"},
		{Neighborhood: "Hyde Park"},
		{Neighborhood: "Hyde Park"},
	}

	p := Derive(favorites)
	for n, w := range p.NeighborhoodWeights {
		if w < 1.0 || w > 1.5 {
			t.Errorf("statistical weight for %s out of range: %f", n, w)
		}
	}
}

func TestDerivePreferredCappedAtFive(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	var favorites []listing.Listing
	for _, n := range names {
		favorites = append(favorites, listing.Listing{Neighborhood: n})
	}

	p := Derive(favorites)
	if len(p.PreferredNeighborhoods) != 5 {
		t.Errorf("preferred list should cap at 5, got %d", len(p.PreferredNeighborhoods))
	}
	// All counts tie at 1; first-appearance order is the tiebreak
	for i, want := range []string{"A", "B", "C", "D", "E"} {
		if p.PreferredNeighborhoods[i] != want {
			t.Errorf("preferred[%d] = %s, want %s", i, p.PreferredNeighborhoods[i], want)
		}
	}
}

func TestDeriveIdeals(t *testing.T) {
	favorites := []listing.Listing{
		{Price: listing.Float(400000), Sqft: listing.Float(1800), Beds: listing.Float(3)},
		{Price: listing.Float(600000), Beds: listing.Float(4)},
		{Baths: listing.Float(2)},
	}

	p := Derive(favorites)

	if p.IdealPrice == nil || !almostEqual(*p.IdealPrice, 500000) {
		t.Errorf("ideal price = %v, want 500000", p.IdealPrice)
	}
	// Only one favorite exposes sqft; the mean excludes the others entirely
	if p.IdealSqft == nil || !almostEqual(*p.IdealSqft, 1800) {
		t.Errorf("ideal sqft = %v, want 1800", p.IdealSqft)
	}
	if p.IdealBeds == nil || !almostEqual(*p.IdealBeds, 3.5) {
		t.Errorf("ideal beds = %v, want 3.5", p.IdealBeds)
	}
	if p.IdealBaths == nil || !almostEqual(*p.IdealBaths, 2) {
		t.Errorf("ideal baths = %v, want 2", p.IdealBaths)
	}
}

func TestDeriveHOAPreference(t *testing.T) {
	tests := []struct {
		name        string
		hoaTrue     int
		hoaFalse    int
		want        *bool // nil = no preference
	}{
		{"strong favor", 5, 1, listing.Bool(true)},
		{"strong avoid", 1, 5, listing.Bool(false)},
		{"exactly 2:1 is not enough", 4, 2, nil},
		{"mixed", 3, 3, nil},
		{"none exposed", 0, 0, nil},
		{"single true", 1, 0, listing.Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var favorites []listing.Listing
			for i := 0; i < tt.hoaTrue; i++ {
				favorites = append(favorites, listing.Listing{HasHOA: listing.Bool(true)})
			}
			for i := 0; i < tt.hoaFalse; i++ {
				favorites = append(favorites, listing.Listing{HasHOA: listing.Bool(false)})
			}

			p := Derive(favorites)
			switch {
			case tt.want == nil && p.HOAPreference != nil:
				t.Errorf("expected no HOA preference, got %v", *p.HOAPreference)
			case tt.want != nil && p.HOAPreference == nil:
				t.Errorf("expected HOA preference %v, got none", *tt.want)
			case tt.want != nil && *p.HOAPreference != *tt.want:
				t.Errorf("HOA preference = %v, want %v", *p.HOAPreference, *tt.want)
			}
		})
	}
}

func TestDeriveIdempotent(t *testing.T) {
	favorites := []listing.Listing{
		{Neighborhood: "Zilker", Price: listing.Float(500000), Latitude: listing.Float(30.27), Longitude: listing.Float(-97.77)},
		{Neighborhood: "Mueller", Price: listing.Float(450000)},
	}

	a := Derive(favorites)
	b := Derive(favorites)

	if len(a.NeighborhoodWeights) != len(b.NeighborhoodWeights) {
		t.Fatal("weight maps differ between identical derivations")
	}
	for n, w := range a.NeighborhoodWeights {
		if !almostEqual(b.NeighborhoodWeights[n], w) {
			t.Errorf("weight for %s differs: %f vs %f", n, w, b.NeighborhoodWeights[n])
		}
	}
	for i := range a.PreferredNeighborhoods {
		if a.PreferredNeighborhoods[i] != b.PreferredNeighborhoods[i] {
			t.Error("preferred order differs between identical derivations")
		}
	}
}

func TestDeriveNearbySpillover(t *testing.T) {
	// A favorite in Zilker with coordinates should also credit neighborhoods
	// whose centers are within 2 miles, at the same weight as the match itself.
	favorites := []listing.Listing{
		{
			Neighborhood: "Zilker",
			Latitude:     listing.Float(30.27),
			Longitude:    listing.Float(-97.77),
		},
	}

	p := Derive(favorites)

	if len(p.NeighborhoodWeights) < 2 {
		t.Fatalf("expected spillover into nearby neighborhoods, got %v", p.NeighborhoodWeights)
	}
	// Zilker is counted twice (direct + own center nearby), so it holds the max
	if !almostEqual(p.NeighborhoodWeights["Zilker"], 1.5) {
		t.Errorf("Zilker weight = %f, want 1.5", p.NeighborhoodWeights["Zilker"])
	}
}

func TestBoostNeutral(t *testing.T) {
	l := &listing.Listing{Price: listing.Float(500000)}

	if got := Boost(l, Default()); got != 1.0 {
		t.Errorf("boost against neutral profile = %f, want 1.0", got)
	}
	if got := Boost(l, nil); got != 1.0 {
		t.Errorf("boost against nil profile = %f, want 1.0", got)
	}
}

func TestBoostPriceTiers(t *testing.T) {
	p := Default()
	p.IdealPrice = listing.Float(500000)

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"within 10pct", 520000, 1.2},
		{"within 20pct", 580000, 1.1},
		{"neutral band 20-50pct", 650000, 1.0},
		{"far over 50pct", 800000, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &listing.Listing{Price: listing.Float(tt.price)}
			if got := Boost(l, p); !almostEqual(got, tt.want) {
				t.Errorf("boost(price=%0.f) = %f, want %f", tt.price, got, tt.want)
			}
		})
	}
}

func TestBoostFactorsMultiply(t *testing.T) {
	p := Default()
	p.NeighborhoodWeights["Zilker"] = 1.4
	p.IdealPrice = listing.Float(500000)
	p.IdealSqft = listing.Float(2000)
	p.IdealBeds = listing.Float(3)
	p.IdealBaths = listing.Float(2)
	p.HOAPreference = listing.Bool(false)

	l := &listing.Listing{
		Neighborhood: "Zilker",
		Price:        listing.Float(505000), // <10% -> 1.2
		Sqft:         listing.Float(2100),   // <15% -> 1.1
		Beds:         listing.Float(3),      // within 0.5 -> 1.05
		Baths:        listing.Float(2.5),    // within 0.5 -> 1.05
		HasHOA:       listing.Bool(false),   // match -> 1.1
	}

	want := 1.4 * 1.2 * 1.1 * 1.05 * 1.05 * 1.1
	if got := Boost(l, p); !almostEqual(got, want) {
		t.Errorf("boost = %f, want %f", got, want)
	}
	// Everything aligned pushes well past 1.4x; the product is not clamped
	if want < 1.4 {
		t.Fatal("test setup should exceed 1.4")
	}
}

func TestBoostConflictUnclampedBelow(t *testing.T) {
	p := Default()
	p.NeighborhoodWeights["Far Out"] = 0.5 // feedback-removed neighborhood
	p.IdealPrice = listing.Float(500000)
	p.HOAPreference = listing.Bool(false)

	l := &listing.Listing{
		Neighborhood: "Far Out",
		Price:        listing.Float(1200000), // >50% -> 0.9
		HasHOA:       listing.Bool(true),     // mismatch -> 0.9
	}

	want := 0.5 * 0.9 * 0.9
	if got := Boost(l, p); !almostEqual(got, want) {
		t.Errorf("boost = %f, want %f", got, want)
	}
}

func TestBoostSkipsAbsentFields(t *testing.T) {
	p := Default()
	p.IdealPrice = listing.Float(500000)
	p.IdealSqft = listing.Float(2000)
	p.HOAPreference = listing.Bool(true)

	// Listing exposes none of the matching fields: every factor is skipped
	l := &listing.Listing{Neighborhood: "Nowhere"}
	if got := Boost(l, p); got != 1.0 {
		t.Errorf("boost with no matching fields = %f, want 1.0", got)
	}
}
