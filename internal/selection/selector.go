// Package selection picks the bounded daily shortlist from scored candidates.
//
// The shortlist is diversity-guaranteed two ways: a price-bucket quota keeps
// it from being all starter homes or all stretch homes, and a preferred-
// neighborhood guarantee makes sure learned taste is represented whenever a
// matching candidate exists at all.
package selection

import (
	"sort"

	"github.com/abelbrown/homescout/internal/prefs"
	"github.com/abelbrown/homescout/internal/scoring"
)

// BucketThreshold splits candidates into the under/over price buckets.
const BucketThreshold = 1_000_000

// underQuota and overQuota are the initial picks per bucket.
const (
	underQuota = 4
	overQuota  = 1
)

// DefaultMaxCount bounds the shortlist when the caller doesn't.
const DefaultMaxCount = 5

// Select returns the final shortlist, ordered by price descending for
// display. Candidates must already exclude favorited and dismissed listings.
//
// Steps: partition at the bucket threshold, sort each bucket by score, take
// 4 under + 1 over, backfill short quotas from the combined leftovers in
// score order, apply the preferred-neighborhood swap, then re-sort by price.
// Output size is min(maxCount, len(candidates)).
func Select(candidates []scoring.Scored, profile *prefs.Profile, maxCount int) []scoring.Scored {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	if len(candidates) == 0 {
		return nil
	}

	var under, over []scoring.Scored
	for _, c := range candidates {
		if c.Listing.PriceOrZero() < BucketThreshold {
			under = append(under, c)
		} else {
			over = append(over, c)
		}
	}
	sortByScoreDesc(under)
	sortByScoreDesc(over)

	selected := append([]scoring.Scored(nil), take(under, underQuota)...)
	selected = append(selected, take(over, overQuota)...)
	if len(selected) > maxCount {
		selected = selected[:maxCount]
	}

	// Backfill short quotas from whichever bucket has leftovers, best first
	if remaining := maxCount - len(selected); remaining > 0 {
		leftovers := append(drop(under, underQuota), drop(over, overQuota)...)
		sortByScoreDesc(leftovers)
		selected = append(selected, take(leftovers, remaining)...)
	}

	selected = guaranteePreferred(selected, candidates, profile)

	// Display order: price descending, independent of selection order
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Listing.PriceOrZero() > selected[j].Listing.PriceOrZero()
	})

	return selected
}

// guaranteePreferred enforces the preferred-neighborhood rule: when the
// profile names preferred neighborhoods, the selection has no member in one,
// and some excluded candidate (from the full pool) is in one, the single
// lowest-scoring member is replaced by the best such candidate. At most one
// swap ever happens.
func guaranteePreferred(selected, pool []scoring.Scored, profile *prefs.Profile) []scoring.Scored {
	if profile == nil || len(profile.PreferredNeighborhoods) == 0 || len(selected) == 0 {
		return selected
	}

	preferred := map[string]bool{}
	for _, n := range profile.PreferredNeighborhoods {
		preferred[n] = true
	}

	for _, s := range selected {
		if preferred[s.Listing.Neighborhood] {
			return selected // already represented
		}
	}

	chosen := map[string]bool{}
	for _, s := range selected {
		chosen[s.Listing.ID] = true
	}

	// Best preferred candidate among those not already selected
	best := -1
	for i, c := range pool {
		if chosen[c.Listing.ID] || !preferred[c.Listing.Neighborhood] {
			continue
		}
		if best < 0 || c.Score > pool[best].Score {
			best = i
		}
	}
	if best < 0 {
		return selected
	}

	lowest := 0
	for i, s := range selected {
		if s.Score < selected[lowest].Score {
			lowest = i
		}
	}
	selected[lowest] = pool[best]
	return selected
}

func sortByScoreDesc(s []scoring.Scored) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Score > s[j].Score })
}

func take(s []scoring.Scored, n int) []scoring.Scored {
	if len(s) < n {
		n = len(s)
	}
	return s[:n]
}

func drop(s []scoring.Scored, n int) []scoring.Scored {
	if len(s) <= n {
		return nil
	}
	return append([]scoring.Scored(nil), s[n:]...)
}
