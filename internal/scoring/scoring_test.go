package scoring

import (
	"math"
	"testing"

	"github.com/abelbrown/homescout/internal/config"
	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/prefs"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDistanceScore(t *testing.T) {
	tests := []struct {
		name     string
		distance *float64
		want     float64
	}{
		{"at anchor", listing.Float(0), 100},
		{"five miles", listing.Float(5), 75},
		{"ten miles", listing.Float(10), 50},
		{"at cutoff", listing.Float(20), 0},
		{"beyond cutoff clamps", listing.Float(35), 0},
		{"unknown defaults to 50", nil, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &listing.Listing{Distance: tt.distance}
			if got := DistanceScore(l); !almostEqual(got, tt.want) {
				t.Errorf("DistanceScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPriceScore(t *testing.T) {
	cfg := &config.Config{
		MinPrice: listing.Float(0),
		MaxPrice: listing.Float(1000000),
	}

	tests := []struct {
		name  string
		price *float64
		cfg   *config.Config
		want  float64
	}{
		{"midpoint", listing.Float(500000), cfg, 50},
		{"at min", listing.Float(0), cfg, 100},
		{"at max", listing.Float(1000000), cfg, 0},
		{"above max clamps", listing.Float(1500000), cfg, 0},
		{"no max: span is price*2", listing.Float(400000), &config.Config{}, 50},
		{"degenerate bounds", listing.Float(0), &config.Config{}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &listing.Listing{Price: tt.price}
			if got := PriceScore(l, tt.cfg); !almostEqual(got, tt.want) {
				t.Errorf("PriceScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNewnessScore(t *testing.T) {
	tests := []struct {
		name string
		days *float64
		want float64
	}{
		{"brand new", listing.Float(0), 100},
		{"thirty days", listing.Float(30), 50},
		{"sixty days", listing.Float(60), 0},
		{"ancient clamps", listing.Float(120), 0},
		{"unknown treated as 30", nil, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &listing.Listing{DaysOnMarket: tt.days}
			if got := NewnessScore(l); !almostEqual(got, tt.want) {
				t.Errorf("NewnessScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScoreNeutralScenario(t *testing.T) {
	// price=500000 with bounds [0, 1M] -> 50; distance=10 -> 50;
	// unknown days -> 30 -> 50; base = 0.4*50 + 0.3*50 + 0.3*50 = 50;
	// neutral profile -> boost 1.0 -> final 50.
	l := &listing.Listing{
		Price:    listing.Float(500000),
		Distance: listing.Float(10),
	}
	cfg := &config.Config{
		MinPrice: listing.Float(0),
		MaxPrice: listing.Float(1000000),
	}

	if got := Score(l, cfg, prefs.Default()); !almostEqual(got, 50) {
		t.Errorf("Score = %f, want 50", got)
	}
}

func TestScoreAppliesBoost(t *testing.T) {
	l := &listing.Listing{
		Price:        listing.Float(500000),
		Distance:     listing.Float(10),
		Neighborhood: "Zilker",
	}
	cfg := &config.Config{
		MinPrice: listing.Float(0),
		MaxPrice: listing.Float(1000000),
	}
	p := prefs.Default()
	p.NeighborhoodWeights["Zilker"] = 1.5

	if got := Score(l, cfg, p); !almostEqual(got, 75) {
		t.Errorf("Score with 1.5x boost = %f, want 75", got)
	}
}

func TestScoreEmptyListing(t *testing.T) {
	// A listing with no fields at all must still score without blowing up:
	// all three sub-scores hit their neutral defaults.
	l := &listing.Listing{}
	got := Score(l, &config.Config{}, prefs.Default())

	if !almostEqual(got, 50) {
		t.Errorf("Score of empty listing = %f, want 50", got)
	}
}

func TestScoreAllPreservesOrder(t *testing.T) {
	candidates := []listing.Listing{
		{ID: "a", Distance: listing.Float(0)},
		{ID: "b", Distance: listing.Float(20)},
		{ID: "c"},
	}

	scored := ScoreAll(candidates, &config.Config{}, prefs.Default())

	if len(scored) != 3 {
		t.Fatalf("expected 3 scored candidates, got %d", len(scored))
	}
	for i, want := range []string{"a", "b", "c"} {
		if scored[i].Listing.ID != want {
			t.Errorf("scored[%d] = %s, want %s", i, scored[i].Listing.ID, want)
		}
	}
	if scored[0].Score <= scored[1].Score {
		t.Error("closer listing should outscore the far one")
	}
}
