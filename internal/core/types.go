// Package core provides the business logic for the gallery's record keeping:
// the in-memory record store, CSV row validation, the import pipeline, and
// the monthly commission report. This package has no UI dependencies and can
// be used by any frontend.
package core

// Classification is the closed set of artist categories.
// Values are matched exactly (case-sensitive); anything else is rejected.
type Classification string

const (
	ClassMember           Classification = "Member"
	ClassGiftShop         Classification = "Gift Shop"
	ClassCommunityGallery Classification = "Community Gallery"
	ClassGuestGallery     Classification = "Guest Gallery"
	ClassFormerMember     Classification = "Former Member"
	ClassSelf             Classification = "Self"
)

// Classifications lists all recognized values in display order.
var Classifications = []Classification{
	ClassMember,
	ClassGiftShop,
	ClassCommunityGallery,
	ClassGuestGallery,
	ClassFormerMember,
	ClassSelf,
}

// Valid reports whether c is one of the recognized classifications.
func (c Classification) Valid() bool {
	for _, v := range Classifications {
		if c == v {
			return true
		}
	}
	return false
}

// Artist is a gallery artist. ArtistCode is the identity and join key to
// sales; it is never rewritten once the record exists. FullName is derived
// from first+last at import time but stored and editable independently
// thereafter.
type Artist struct {
	ArtistCode     string         `json:"artistCode"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	FullName       string         `json:"fullName"`
	CommissionRate float64        `json:"commissionRate"`
	Email          string         `json:"email,omitempty"`
	Classification Classification `json:"classification"`
}

// Sale is a single sales transaction. SalesID is assigned by the store,
// monotonically increasing. Date is always the canonical YYYY-MM-DD form.
// ArtistCode is not enforced as a foreign key and may dangle.
type Sale struct {
	SalesID        int     `json:"salesId"`
	Date           string  `json:"date"`
	ArtistCode     string  `json:"artistCode"`
	Qty            int     `json:"qty"`
	PricePointName string  `json:"pricePointName,omitempty"`
	SKU            string  `json:"sku,omitempty"`
	GrossSales     float64 `json:"grossSales"`
	Notes          string  `json:"notes,omitempty"`
}

// Setting is a named configuration value. Values are opaque strings; no
// coercion is applied anywhere in the system.
type Setting struct {
	ParameterName  string `json:"parameterName"`
	ParameterValue string `json:"parameterValue"`
	Notes          string `json:"notes,omitempty"`
}

// Kind identifies one of the three independent import streams.
type Kind string

const (
	KindArtists  Kind = "artists"
	KindSales    Kind = "sales"
	KindSettings Kind = "settings"
)

// Kinds lists the import streams in their fixed order.
var Kinds = []Kind{KindArtists, KindSales, KindSettings}

// ParseKind returns the Kind for a stream name.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindArtists, KindSales, KindSettings:
		return Kind(s), true
	}
	return "", false
}

// Row is one raw imported record: a mapping from normalized field names
// (lower-cased, all whitespace stripped) to string values.
type Row map[string]string

// Period is a (month, year) pair selected for report generation.
type Period struct {
	Month int `json:"month"` // 1-12
	Year  int `json:"year"`
}
