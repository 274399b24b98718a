// Package scoring computes the composite relevance score used to rank
// candidate listings.
//
// The base score blends three sub-scores, each nominally 0-100:
//
//	distance (40%)  closer to the anchor point is better
//	price    (30%)  cheaper within the configured range is better
//	newness  (30%)  fewer days on market is better
//
// The base is then multiplied by the preference boost. The product is
// unbounded above and may approach zero; it exists purely for relative
// ordering, never as an absolute rating.
package scoring

import (
	"github.com/abelbrown/homescout/internal/config"
	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/prefs"
)

// maxRelevantDistanceMiles is where the distance score bottoms out.
const maxRelevantDistanceMiles = 20.0

// staleDaysOnMarket is where the newness score bottoms out.
const staleDaysOnMarket = 60.0

// defaultDaysOnMarket stands in when the listing doesn't report it.
const defaultDaysOnMarket = 30.0

// neutralScore is the fallback when a sub-score has no usable inputs.
const neutralScore = 50.0

// Scored pairs a candidate with its final score.
type Scored struct {
	Listing listing.Listing
	Score   float64
}

// Score computes the final relevance score for one listing.
// Missing fields degrade to neutral defaults; no input combination fails.
func Score(l *listing.Listing, cfg *config.Config, p *prefs.Profile) float64 {
	base := 0.4*DistanceScore(l) + 0.3*PriceScore(l, cfg) + 0.3*NewnessScore(l)
	return base * prefs.Boost(l, p)
}

// DistanceScore maps distance-to-anchor onto [0,100]: 0 miles scores 100,
// 20+ miles scores 0. Unknown distance scores the neutral 50.
func DistanceScore(l *listing.Listing) float64 {
	if l.Distance == nil {
		return neutralScore
	}
	score := 100 - (*l.Distance/maxRelevantDistanceMiles)*100
	if score < 0 {
		return 0
	}
	return score
}

// PriceScore maps the price onto [0,100] within the configured bounds:
// at min_price 100, at max_price 0. When max_price is unset the span is
// price*2, so any known price lands mid-range. Degenerate bounds (hi <= lo)
// score the neutral 50.
func PriceScore(l *listing.Listing, cfg *config.Config) float64 {
	price := l.PriceOrZero()

	lo := 0.0
	if cfg != nil && cfg.MinPrice != nil {
		lo = *cfg.MinPrice
	}
	hi := price * 2
	if cfg != nil && cfg.MaxPrice != nil {
		hi = *cfg.MaxPrice
	}

	if hi <= lo {
		return neutralScore
	}

	score := 100 - ((price-lo)/(hi-lo))*100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// NewnessScore maps days-on-market onto [0,100]: fresh listings score 100,
// 60+ days scores 0. Unknown days are treated as 30.
func NewnessScore(l *listing.Listing) float64 {
	days := defaultDaysOnMarket
	if l.DaysOnMarket != nil {
		days = *l.DaysOnMarket
	}
	score := 100 - (days/staleDaysOnMarket)*100
	if score < 0 {
		return 0
	}
	return score
}

// ScoreAll scores every candidate, preserving input order.
func ScoreAll(candidates []listing.Listing, cfg *config.Config, p *prefs.Profile) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		c := c
		scored = append(scored, Scored{Listing: c, Score: Score(&c, cfg, p)})
	}
	return scored
}
