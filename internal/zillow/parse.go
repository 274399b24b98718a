package zillow

import (
	"encoding/json"
	"fmt"

	"github.com/abelbrown/homescout/internal/listing"
)

// resultKeys are the top-level keys the API has been observed to nest
// listings under, tried in order.
var resultKeys = []string{"results", "props", "searchResults", "data"}

// ParseResponse extracts listings from a raw API response body.
// An unrecognized shape yields no listings, not an error.
func ParseResponse(body []byte) ([]listing.Listing, error) {
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(body, &asMap); err == nil {
		for _, key := range resultKeys {
			raw, ok := asMap[key]
			if !ok {
				continue
			}
			var items []map[string]any
			if err := json.Unmarshal(raw, &items); err == nil && len(items) > 0 {
				return parseAll(items), nil
			}
		}
		return nil, nil
	}

	// Some routes return the listing array at the top level
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("unrecognized response shape: %w", err)
	}
	return parseAll(items), nil
}

func parseAll(items []map[string]any) []listing.Listing {
	out := make([]listing.Listing, 0, len(items))
	for _, item := range items {
		l := ParseRaw(item)
		if l.ID == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// ParseRaw normalizes one raw listing record. The API nests fields
// differently per route (a "property" wrapper, address/location objects,
// price as a number or an object), so every lookup is a chain of fallbacks.
func ParseRaw(raw map[string]any) listing.Listing {
	prop := raw
	if nested, ok := raw["property"].(map[string]any); ok {
		prop = nested
	}

	addr, _ := prop["address"].(map[string]any)
	loc, _ := prop["location"].(map[string]any)

	var l listing.Listing

	l.ID = str(prop, "zpid")
	l.Address = firstStr(addr, prop, "streetAddress", "address")
	l.City = firstStr(addr, prop, "city")
	l.State = firstStr(addr, prop, "state")
	l.Zip = firstStr(addr, prop, "zipcode")

	// Price may be a bare number or an object with value/amount
	switch p := prop["price"].(type) {
	case float64:
		l.Price = listing.Float(p)
	case map[string]any:
		if v, ok := num(p, "value", "amount"); ok {
			l.Price = listing.Float(v)
		}
	}

	if v, ok := num(prop, "bedrooms", "beds"); ok {
		l.Beds = listing.Float(v)
	}
	if v, ok := num(prop, "bathrooms", "baths"); ok {
		l.Baths = listing.Float(v)
	}
	if v, ok := num(prop, "livingArea", "area", "sqft"); ok {
		l.Sqft = listing.Float(v)
	}
	if v, ok := num(prop, "stories", "levels", "numStories"); ok {
		l.Stories = listing.Float(v)
	}
	if v, ok := num(prop, "daysOnZillow", "timeOnZillow"); ok {
		l.DaysOnMarket = listing.Float(v)
	}

	// An HOA fee above zero means the property has an HOA
	if fee, ok := num(prop, "hoaFee", "monthlyHoaFee", "associationFee"); ok {
		l.HOAFee = listing.Float(fee)
		l.HasHOA = listing.Bool(fee > 0)
	}

	if v, ok := num(loc, "latitude"); ok {
		l.Latitude = listing.Float(v)
	} else if v, ok := num(prop, "latitude", "lat"); ok {
		l.Latitude = listing.Float(v)
	}
	if v, ok := num(loc, "longitude"); ok {
		l.Longitude = listing.Float(v)
	} else if v, ok := num(prop, "longitude", "long"); ok {
		l.Longitude = listing.Float(v)
	}

	l.PropertyType = firstStr(nil, prop, "homeType", "propertyType")
	l.Description = firstStr(nil, prop, "description", "homeDescription")

	if media, ok := prop["media"].(map[string]any); ok {
		if links, ok := media["propertyPhotoLinks"].(map[string]any); ok {
			l.PhotoURL = firstStr(nil, links, "mediumSizeLink", "highResolutionLink")
		}
	}
	if l.PhotoURL == "" {
		l.PhotoURL = firstStr(nil, prop, "imgSrc", "image")
	}

	l.DetailURL = firstStr(nil, prop, "detailUrl", "url")
	if l.DetailURL == "" && l.ID != "" {
		l.DetailURL = fmt.Sprintf("https://www.zillow.com/homedetails/%s_zpid/", l.ID)
	}

	l.Name = displayName(&l)

	return l
}

// displayName picks a short label: a truncated description, the address,
// or a fixed fallback.
func displayName(l *listing.Listing) string {
	if l.Description != "" {
		if len(l.Description) > 50 {
			return l.Description[:47] + "..."
		}
		return l.Description
	}
	if l.Address != "" {
		return l.Address
	}
	return "Unknown Property"
}

// str reads a string-ish value: strings pass through, numbers are
// formatted without a fraction (zpid arrives as either).
func str(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// firstStr tries keys on the primary map, then the fallback map.
func firstStr(primary, fallback map[string]any, keys ...string) string {
	for _, k := range keys {
		if primary != nil {
			if s := str(primary, k); s != "" {
				return s
			}
		}
		if fallback != nil {
			if s := str(fallback, k); s != "" {
				return s
			}
		}
	}
	return ""
}

// num tries keys in order, returning the first numeric value.
func num(m map[string]any, keys ...string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	for _, k := range keys {
		if v, ok := m[k].(float64); ok {
			return v, true
		}
	}
	return 0, false
}
