// Package feedback turns free-text buyer feedback into profile and config
// update instructions.
//
// Parsing is an ordered list of independent extractor rules, each filling in
// its own category of a partial UpdateSet; when two rules touch the same
// category the later one wins. Unrecognizable text yields an empty update
// set, never an error.
package feedback

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/prefs"
)

// UpdateSet is the parsed intent of one piece of feedback. Nil / empty
// fields mean "no update for that category".
type UpdateSet struct {
	AddNeighborhoods    []string
	RemoveNeighborhoods []string

	// Config deltas: reported to the config store, never applied to the profile
	MinPrice *float64
	MaxPrice *float64
	MinBeds  *float64
	MinBaths *float64

	HOAPreference *bool
}

// Empty reports whether the feedback produced no updates at all.
func (u *UpdateSet) Empty() bool {
	return len(u.AddNeighborhoods) == 0 && len(u.RemoveNeighborhoods) == 0 &&
		u.MinPrice == nil && u.MaxPrice == nil &&
		u.MinBeds == nil && u.MinBaths == nil &&
		u.HOAPreference == nil
}

// neighborhoodVariants maps canonical names to the spellings buyers use.
var neighborhoodVariants = []struct {
	name     string
	variants []string
}{
	{"Tarrytown", []string{"tarrytown", "tarry town"}},
	{"Mueller", []string{"mueller"}},
	{"Hyde Park", []string{"hyde park"}},
	{"East Austin", []string{"east austin"}},
	{"South Congress", []string{"south congress"}},
	{"Zilker", []string{"zilker"}},
	{"Barton Hills", []string{"barton hills"}},
	{"Travis Heights", []string{"travis heights"}},
	{"Clarksville", []string{"clarksville"}},
	{"Rosedale", []string{"rosedale"}},
	{"Crestview", []string{"crestview"}},
	{"Allandale", []string{"allandale"}},
	{"Downtown", []string{"downtown"}},
	{"Domain", []string{"domain"}},
	{"Pflugerville", []string{"pflugerville"}},
	{"Round Rock", []string{"round rock"}},
	{"Cedar Park", []string{"cedar park"}},
	{"Buda", []string{"buda"}},
	{"Kyle", []string{"kyle"}},
}

var (
	addKeywords    = []string{"more", "like", "prefer", "love"}
	removeKeywords = []string{"less", "avoid", "no "}

	maxPriceRe = regexp.MustCompile(`(?:max|maximum|under|below|up to)\s*(?:price)?\s*\$([\d,.]+)\s*([mk])?`)
	minPriceRe = regexp.MustCompile(`(?:min|minimum|above|over|at least)\s*(?:price)?\s*\$([\d,.]+)\s*([mk])?`)
	bedsRe     = regexp.MustCompile(`(\d+)\+?\s*(?:bed|bedroom|br|bd)`)
	bathsRe    = regexp.MustCompile(`(\d+)\+?\s*(?:bath|bathroom|ba)`)

	hoaAvoidPhrases = []string{"no hoa", "without hoa", "hate hoa"}
	hoaFavorPhrases = []string{"with hoa", "prefer hoa", "like hoa"}
)

// rule is one extractor. Rules run in order over the lowercased text.
type rule func(text string, u *UpdateSet)

var rules = []rule{
	extractNeighborhoods,
	extractMaxPrice,
	extractMinPrice,
	extractHOA,
	extractBeds,
	extractBaths,
}

// Parse interprets feedback text into an UpdateSet. Matching is
// case-insensitive; text with no recognizable pattern yields an empty set.
func Parse(text string) *UpdateSet {
	lowered := strings.ToLower(text)
	u := &UpdateSet{}
	for _, r := range rules {
		r(lowered, u)
	}
	return u
}

func extractNeighborhoods(text string, u *UpdateSet) {
	containsAny := func(keywords []string) bool {
		for _, k := range keywords {
			if strings.Contains(text, k) {
				return true
			}
		}
		return false
	}
	add := containsAny(addKeywords)
	remove := containsAny(removeKeywords)

	for _, nv := range neighborhoodVariants {
		mentioned := false
		for _, v := range nv.variants {
			if strings.Contains(text, v) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			continue
		}
		// Positive sentiment wins when both appear ("no HOA" trips the
		// remove keywords even in an otherwise glowing message)
		switch {
		case add:
			u.AddNeighborhoods = append(u.AddNeighborhoods, nv.name)
		case remove:
			u.RemoveNeighborhoods = append(u.RemoveNeighborhoods, nv.name)
		}
	}
}

func extractMaxPrice(text string, u *UpdateSet) {
	if v, ok := parsePrice(maxPriceRe, text); ok {
		u.MaxPrice = listing.Float(v)
	}
}

func extractMinPrice(text string, u *UpdateSet) {
	if v, ok := parsePrice(minPriceRe, text); ok {
		u.MinPrice = listing.Float(v)
	}
}

func parsePrice(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "m":
		v *= 1_000_000
	case "k":
		v *= 1_000
	}
	return v, true
}

func extractHOA(text string, u *UpdateSet) {
	for _, p := range hoaAvoidPhrases {
		if strings.Contains(text, p) {
			u.HOAPreference = listing.Bool(false)
			return
		}
	}
	for _, p := range hoaFavorPhrases {
		if strings.Contains(text, p) {
			u.HOAPreference = listing.Bool(true)
			return
		}
	}
}

func extractBeds(text string, u *UpdateSet) {
	if m := bedsRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			u.MinBeds = listing.Float(v)
		}
	}
}

func extractBaths(text string, u *UpdateSet) {
	if m := bathsRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			u.MinBaths = listing.Float(v)
		}
	}
}

// Apply overlays an UpdateSet on a profile, returning a new profile and a
// human-readable changelog. The input profile is not mutated.
//
// Neighborhood adds pin the weight to exactly 1.5; removes pin it to exactly
// 0.5. These overrides hold until the next full derivation from favorites.
// Numeric filter updates (price/beds/baths) are reported as config deltas
// only; the config store applies them.
func Apply(u *UpdateSet, profile *prefs.Profile) (*prefs.Profile, []string) {
	p := cloneProfile(profile)
	var changes []string

	for _, n := range u.AddNeighborhoods {
		p.NeighborhoodWeights[n] = 1.5
		if !containsString(p.PreferredNeighborhoods, n) {
			p.PreferredNeighborhoods = append(p.PreferredNeighborhoods, n)
			changes = append(changes, fmt.Sprintf("Added %s to preferred neighborhoods", n))
		}
	}

	for _, n := range u.RemoveNeighborhoods {
		if containsString(p.PreferredNeighborhoods, n) {
			p.PreferredNeighborhoods = removeString(p.PreferredNeighborhoods, n)
			changes = append(changes, fmt.Sprintf("Removed %s from preferred neighborhoods", n))
		}
		p.NeighborhoodWeights[n] = 0.5
		changes = append(changes, fmt.Sprintf("Reduced weight for %s", n))
	}

	if u.HOAPreference != nil {
		p.HOAPreference = listing.Bool(*u.HOAPreference)
		desc := "without HOA"
		if *u.HOAPreference {
			desc = "with HOA"
		}
		changes = append(changes, fmt.Sprintf("Set HOA preference to: %s", desc))
	}

	var configDeltas []string
	if u.MaxPrice != nil {
		configDeltas = append(configDeltas, fmt.Sprintf("max_price: %.0f", *u.MaxPrice))
	}
	if u.MinPrice != nil {
		configDeltas = append(configDeltas, fmt.Sprintf("min_price: %.0f", *u.MinPrice))
	}
	if u.MinBeds != nil {
		configDeltas = append(configDeltas, fmt.Sprintf("min_beds: %.0f", *u.MinBeds))
	}
	if u.MinBaths != nil {
		configDeltas = append(configDeltas, fmt.Sprintf("min_baths: %.0f", *u.MinBaths))
	}
	if len(configDeltas) > 0 {
		changes = append(changes, "Config updates needed: "+strings.Join(configDeltas, ", "))
	}

	return p, changes
}

// Changelog renders the applied changes as a single message.
func Changelog(changes []string) string {
	if len(changes) == 0 {
		return "No changes detected from feedback"
	}
	return strings.Join(changes, "\n")
}

func cloneProfile(p *prefs.Profile) *prefs.Profile {
	if p == nil {
		return prefs.Default()
	}
	out := *p
	out.PreferredNeighborhoods = append([]string(nil), p.PreferredNeighborhoods...)
	out.NeighborhoodWeights = make(map[string]float64, len(p.NeighborhoodWeights))
	for k, v := range p.NeighborhoodWeights {
		out.NeighborhoodWeights[k] = v
	}
	if p.HOAPreference != nil {
		out.HOAPreference = listing.Bool(*p.HOAPreference)
	}
	return &out
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
