// Package travel holds the option pipeline: raw provider records are
// normalized into a canonical schema, scored, and ordered best-value-first.
package travel

// ─── Categories & statuses ────────────────────────────────────────────────────

const (
	CategoryHotel  = "hotel"
	CategoryFlight = "flight"

	StatusLiveData   = "live_data"
	StatusSampleData = "sample_data"
)

// ─── Canonical schema ─────────────────────────────────────────────────────────

// Option is the canonical travel option record. Every raw provider or sample
// record is coerced into this shape exactly once before ranking. Score is the
// only field written by the ranker; everything else comes from normalization.
type Option struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Price              float64  `json:"price"`
	PricePerNight      float64  `json:"price_per_night,omitempty"`
	TotalPrice         float64  `json:"total_price,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
	Tier               int      `json:"tier,omitempty"`
	Amenities          []string `json:"amenities"`
	BreakfastIncluded  bool     `json:"breakfast_included"`
	Refundable         bool     `json:"refundable"`
	DistanceKm         *float64 `json:"distance_km,omitempty"`
	DurationMinutes    *float64 `json:"duration_minutes,omitempty"`
	Location           string   `json:"location"`
	CancellationPolicy string   `json:"cancellation_policy"`
	Currency           string   `json:"currency,omitempty"`
	Score              float64  `json:"score,omitempty"`
}

// RawOption is an untyped provider record as decoded from JSON. Fields may be
// missing, null, or carry the wrong type; the normalizer absorbs all of that.
type RawOption map[string]any

// GeneratedSet tags a batch of raw records with the path that produced them,
// so the live-vs-sample question is settled before normalization ever runs.
type GeneratedSet struct {
	Records []RawOption `json:"records"`
	Status  string      `json:"status"` // StatusLiveData or StatusSampleData
}

// ─── Result envelope ──────────────────────────────────────────────────────────

// Range is the min/max price span across a ranked set.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ResultSet is what the pipeline hands back to callers: the ranked options
// plus the metadata a consumer needs to present them honestly.
type ResultSet struct {
	Options    []Option `json:"options"`
	Status     string   `json:"status"`
	Disclaimer string   `json:"disclaimer"`
	PriceRange Range    `json:"price_range"`
	Currency   string   `json:"currency"`
	Category   string   `json:"category"`
}

const (
	liveDisclaimer   = "Live prices shown. Availability and fares can change until booking is confirmed."
	sampleDisclaimer = "Sample data shown — live search is unavailable. Prices are estimates; verify with providers before booking."
)

// BuildResultSet runs the full pipeline over raw records: normalize, rank,
// and wrap with status, disclaimer, and price range. An empty input yields an
// empty result set, never an error.
func BuildResultSet(raw []RawOption, category, currency, status string, w Weights) ResultSet {
	options := Rank(Normalize(raw), w)

	disclaimer := liveDisclaimer
	if status == StatusSampleData {
		disclaimer = sampleDisclaimer
	}

	for i := range options {
		if options[i].Currency == "" {
			options[i].Currency = currency
		}
	}

	return ResultSet{
		Options:    options,
		Status:     status,
		Disclaimer: disclaimer,
		PriceRange: PriceRange(options),
		Currency:   currency,
		Category:   category,
	}
}

// PriceRange returns the min/max price across options; zero for an empty set.
func PriceRange(options []Option) Range {
	if len(options) == 0 {
		return Range{}
	}
	r := Range{Min: options[0].Price, Max: options[0].Price}
	for _, o := range options[1:] {
		if o.Price < r.Min {
			r.Min = o.Price
		}
		if o.Price > r.Max {
			r.Max = o.Price
		}
	}
	return r
}
