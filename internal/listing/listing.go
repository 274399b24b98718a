// Package listing defines the unified listing record that flows through the
// pipeline: fetched from the upstream search API, filtered, geo-enriched,
// scored, and finally rendered into the digest.
//
// Numeric fields are pointers because the upstream API omits them freely.
// Absence is meaningful downstream (neutral scoring defaults, skipped boost
// factors), so it is kept as nil rather than flattened to zero.
package listing

// Listing is a single property for sale.
type Listing struct {
	ID           string `json:"id"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Name         string `json:"name,omitempty"` // short display name (truncated description or address)
	Description  string `json:"description,omitempty"`
	PropertyType string `json:"property_type,omitempty"`

	Price        *float64 `json:"price,omitempty"`
	Beds         *float64 `json:"beds,omitempty"`
	Baths        *float64 `json:"baths,omitempty"`
	Sqft         *float64 `json:"sqft,omitempty"`
	Stories      *float64 `json:"stories,omitempty"`
	DaysOnMarket *float64 `json:"days_on_market,omitempty"`

	HasHOA *bool    `json:"has_hoa,omitempty"`
	HOAFee *float64 `json:"hoa_fee,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Enrichment output (see geo.Enrich). Nil / empty until enriched.
	Distance     *float64 `json:"distance,omitempty"` // miles to the anchor point
	Neighborhood string   `json:"neighborhood,omitempty"`
	Direction    string   `json:"direction,omitempty"`

	PhotoURL  string `json:"photo_url,omitempty"`
	DetailURL string `json:"detail_url,omitempty"`
}

// Float returns a pointer to v. Convenience for building listings in tests
// and for parser code that promotes raw JSON numbers.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// PriceOrZero returns the price, or 0 when unknown. Bucket partitioning and
// display sorting treat unknown prices as zero, matching scoring's floor.
func (l *Listing) PriceOrZero() float64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// HasCoords reports whether both latitude and longitude are present and
// non-zero. The upstream API sometimes sends 0,0 for unknown locations.
func (l *Listing) HasCoords() bool {
	return l.Latitude != nil && l.Longitude != nil && (*l.Latitude != 0 || *l.Longitude != 0)
}
