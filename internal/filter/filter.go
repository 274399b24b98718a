// Package filter applies the buyer's hard criteria to fetched listings.
//
// Filtering is permissive by design: a listing missing the field a criterion
// checks passes that criterion. The upstream API omits fields freely, and
// dropping a listing for incomplete data would silently hide real matches.
package filter

import (
	"strings"

	"github.com/abelbrown/homescout/internal/config"
	"github.com/abelbrown/homescout/internal/listing"
)

// typeAliases normalizes property-type names across upstream variations.
var typeAliases = map[string][]string{
	"single_family": {"single_family", "singlefamily", "house", "single", "for_sale"},
	"condo":         {"condo", "condominium"},
	"townhouse":     {"townhouse", "townhome"},
	"multi_family":  {"multi_family", "multifamily", "duplex", "triplex"},
}

// Filter checks listings against configured criteria.
type Filter struct {
	cfg *config.Config
}

// New returns a Filter for the given criteria.
func New(cfg *config.Config) *Filter {
	return &Filter{cfg: cfg}
}

// Matches reports whether a listing satisfies every configured criterion.
func (f *Filter) Matches(l *listing.Listing) bool {
	c := f.cfg

	if l.Price != nil {
		if c.MinPrice != nil && *l.Price < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && *l.Price > *c.MaxPrice {
			return false
		}
	}

	if l.Beds != nil {
		if c.MinBeds != nil && *l.Beds < *c.MinBeds {
			return false
		}
		if c.MaxBeds != nil && *l.Beds > *c.MaxBeds {
			return false
		}
	}

	if l.Baths != nil {
		if c.MinBaths != nil && *l.Baths < *c.MinBaths {
			return false
		}
		if c.MaxBaths != nil && *l.Baths > *c.MaxBaths {
			return false
		}
	}

	if l.Sqft != nil {
		if c.MinSqft != nil && *l.Sqft < *c.MinSqft {
			return false
		}
		if c.MaxSqft != nil && *l.Sqft > *c.MaxSqft {
			return false
		}
	}

	if len(c.PropertyTypes) > 0 && !matchesType(l.PropertyType, c.PropertyTypes) {
		return false
	}

	if len(c.ZipCodes) > 0 && l.Zip != "" && !containsString(c.ZipCodes, l.Zip) {
		return false
	}

	if c.MaxDaysOnMarket != nil && l.DaysOnMarket != nil && *l.DaysOnMarket > *c.MaxDaysOnMarket {
		return false
	}

	return true
}

// Apply returns the listings that match all criteria.
func (f *Filter) Apply(listings []listing.Listing) []listing.Listing {
	out := make([]listing.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Matches(&l) {
			out = append(out, l)
		}
	}
	return out
}

// matchesType checks the listing's type against the accepted types and their
// aliases. Listings with no type information pass.
func matchesType(listingType string, accepted []string) bool {
	lt := strings.ToLower(listingType)
	if lt == "" {
		return true
	}
	for _, want := range accepted {
		aliases, ok := typeAliases[want]
		if !ok {
			aliases = []string{want}
		}
		for _, a := range aliases {
			if strings.Contains(lt, a) {
				return true
			}
		}
	}
	return false
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
