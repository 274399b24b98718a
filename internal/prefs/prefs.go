// Package prefs derives a buyer preference profile from favorited listings
// and turns it into a score multiplier for candidates.
//
// Derivation is a pure function of the favorites snapshot: every run rebuilds
// the profile from scratch, so there is no incremental drift. Feedback-driven
// edits (see the feedback package) overlay the profile between rebuilds and
// are superseded by the next Derive call.
package prefs

import (
	"math"
	"sort"

	"github.com/abelbrown/homescout/internal/geo"
	"github.com/abelbrown/homescout/internal/listing"
)

// nearbyRadiusMiles is how far a favorite spreads its neighborhood weight.
// Neighborhoods inside the radius count at full strength, same as a direct
// match; there is no decay with distance.
const nearbyRadiusMiles = 2.0

// maxPreferred caps the preferred-neighborhood list.
const maxPreferred = 5

// Profile is the learned buyer preference profile.
//
// Statistical weights lie in [1.0, 1.5]. Feedback overrides set a weight to
// exactly 1.5 (add) or 0.5 (remove); those are the only paths that leave the
// statistical range.
type Profile struct {
	PreferredNeighborhoods []string           `json:"preferred_neighborhoods"`
	NeighborhoodWeights    map[string]float64 `json:"neighborhood_weights"`

	IdealPrice *float64 `json:"ideal_price,omitempty"`
	IdealSqft  *float64 `json:"ideal_sqft,omitempty"`
	IdealBeds  *float64 `json:"ideal_beds,omitempty"`
	IdealBaths *float64 `json:"ideal_baths,omitempty"`

	// HOAPreference: nil = no preference, true = favor HOA, false = avoid HOA
	HOAPreference *bool `json:"hoa_preference,omitempty"`

	// Rolling history of favorite attributes, most recent last (capped at 10)
	PriceHistory []float64 `json:"price_history,omitempty"`
	SqftHistory  []float64 `json:"sqft_history,omitempty"`
	BedsHistory  []float64 `json:"beds_history,omitempty"`
	BathsHistory []float64 `json:"baths_history,omitempty"`
}

// Default returns the neutral profile: nothing preferred, no ideals, no HOA
// leaning. A buyer with no favorites gets this.
func Default() *Profile {
	return &Profile{
		PreferredNeighborhoods: []string{},
		NeighborhoodWeights:    map[string]float64{},
	}
}

// Derive rebuilds the profile from the full favorites set.
//
// Favorites must be passed in a stable order (the store returns them oldest
// first); neighborhood count ties break by first appearance in that order,
// so the same snapshot always yields the same profile.
func Derive(favorites []listing.Listing) *Profile {
	p := Default()
	if len(favorites) == 0 {
		return p
	}

	counts := map[string]int{}
	var order []string // first-appearance order for deterministic ties
	count := func(name string) {
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	var prices, sqfts, beds, baths []float64
	hoaTrue, hoaFalse := 0, 0

	for _, fav := range favorites {
		if fav.Neighborhood != "" {
			count(fav.Neighborhood)

			// Spread the preference to surrounding neighborhoods at equal
			// weight to the direct match.
			if fav.HasCoords() {
				for _, n := range geo.Nearby(*fav.Latitude, *fav.Longitude, nearbyRadiusMiles) {
					count(n)
				}
			}
		}

		if fav.Price != nil {
			prices = append(prices, *fav.Price)
		}
		if fav.Sqft != nil {
			sqfts = append(sqfts, *fav.Sqft)
		}
		if fav.Beds != nil {
			beds = append(beds, *fav.Beds)
		}
		if fav.Baths != nil {
			baths = append(baths, *fav.Baths)
		}
		if fav.HasHOA != nil {
			if *fav.HasHOA {
				hoaTrue++
			} else {
				hoaFalse++
			}
		}
	}

	if len(counts) > 0 {
		maxCount := 0
		for _, c := range counts {
			if c > maxCount {
				maxCount = c
			}
		}
		for n, c := range counts {
			// Weight range: 1.0 (barely seen) to 1.5 (most favorited)
			p.NeighborhoodWeights[n] = 1.0 + (float64(c)/float64(maxCount))*0.5
		}

		ranked := append([]string(nil), order...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return counts[ranked[i]] > counts[ranked[j]]
		})
		if len(ranked) > maxPreferred {
			ranked = ranked[:maxPreferred]
		}
		p.PreferredNeighborhoods = ranked
	}

	if len(prices) > 0 {
		p.IdealPrice = listing.Float(mean(prices))
		p.PriceHistory = tail(prices, 10)
	}
	if len(sqfts) > 0 {
		p.IdealSqft = listing.Float(mean(sqfts))
		p.SqftHistory = tail(sqfts, 10)
	}
	if len(beds) > 0 {
		p.IdealBeds = listing.Float(mean(beds))
		p.BedsHistory = tail(beds, 10)
	}
	if len(baths) > 0 {
		p.IdealBaths = listing.Float(mean(baths))
		p.BathsHistory = tail(baths, 10)
	}

	// HOA leaning only when one side outnumbers the other by more than 2:1
	if hoaTrue > hoaFalse*2 {
		p.HOAPreference = listing.Bool(true)
	} else if hoaFalse > hoaTrue*2 {
		p.HOAPreference = listing.Bool(false)
	}

	return p
}

// Boost returns the preference multiplier for a candidate, starting at 1.0.
// Each factor applies only when both the listing field and the corresponding
// profile attribute are present. Factors compose multiplicatively and
// commute; the result is deliberately unclamped — relative ordering
// downstream depends on the full magnitude.
func Boost(l *listing.Listing, p *Profile) float64 {
	if p == nil {
		return 1.0
	}

	boost := 1.0

	if l.Neighborhood != "" && len(p.NeighborhoodWeights) > 0 {
		if w, ok := p.NeighborhoodWeights[l.Neighborhood]; ok {
			boost *= w
		}
	}

	if l.Price != nil && p.IdealPrice != nil && *p.IdealPrice != 0 {
		diff := math.Abs(*l.Price-*p.IdealPrice) / *p.IdealPrice
		switch {
		case diff < 0.10:
			boost *= 1.2
		case diff < 0.20:
			boost *= 1.1
		case diff > 0.50:
			boost *= 0.9
		default:
			// 20%-50% off ideal is a neutral band: no tier applies
		}
	}

	if l.Sqft != nil && p.IdealSqft != nil && *p.IdealSqft != 0 {
		if math.Abs(*l.Sqft-*p.IdealSqft)/(*p.IdealSqft) < 0.15 {
			boost *= 1.1
		}
	}

	if l.Beds != nil && p.IdealBeds != nil {
		if math.Abs(*l.Beds-*p.IdealBeds) <= 0.5 {
			boost *= 1.05
		}
	}
	if l.Baths != nil && p.IdealBaths != nil {
		if math.Abs(*l.Baths-*p.IdealBaths) <= 0.5 {
			boost *= 1.05
		}
	}

	if l.HasHOA != nil && p.HOAPreference != nil {
		if *l.HasHOA == *p.HOAPreference {
			boost *= 1.1
		} else {
			boost *= 0.9
		}
	}

	return boost
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func tail(vals []float64, n int) []float64 {
	if len(vals) <= n {
		return append([]float64(nil), vals...)
	}
	return append([]float64(nil), vals[len(vals)-n:]...)
}
