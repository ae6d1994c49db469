package travel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder for string fields the provider left empty. The ranker never
// sees a raw null.
const missingText = "N/A"

// ─── Normalization ────────────────────────────────────────────────────────────

// Normalize coerces raw provider records into canonical Options. The output
// has the same length and order as the input; no record is dropped and no
// malformed field ever aborts the batch — bad values degrade to defaults
// (0.0, false, "N/A"). Records without an id get an index-based one so the
// uniqueness invariant holds even for caller-supplied data.
func Normalize(raw []RawOption) []Option {
	options := make([]Option, 0, len(raw))
	for i, r := range raw {
		options = append(options, normalizeOne(r, i))
	}
	return options
}

func normalizeOne(r RawOption, index int) Option {
	o := Option{
		ID:                 stringField(r, "id", "hotel_id", "flight_id"),
		Name:               stringField(r, "name", "hotel_name", "airline"),
		Location:           stringField(r, "location", "address"),
		CancellationPolicy: stringField(r, "cancellation_policy", "cancellation"),
		Tier:               int(numField(r, "tier", "stars")),
		Amenities:          amenityList(r, "amenities", "features"),
		BreakfastIncluded:  boolField(r, "breakfast_included"),
		Rating:             optionalField(r, "rating"),
		DistanceKm:         optionalField(r, "distance_km", "distance_from_center", "distance"),
		DurationMinutes:    optionalField(r, "duration_minutes"),
	}

	if o.ID == missingText {
		o.ID = fmt.Sprintf("option-%d", index+1)
	}

	if o.Rating != nil {
		*o.Rating = clamp(*o.Rating, 0, 5)
	}

	// Currency is filled from the request by the result assembly when the
	// record itself does not carry one.
	if cur, ok := r["currency"].(string); ok {
		o.Currency = cur
	}

	o.Refundable = refundableFlag(r, o.CancellationPolicy)

	perNight := numField(r, "price_per_night")
	total := numField(r, "total_price")
	price := numField(r, "price")
	nights := numField(r, "nights")

	if total == 0 && perNight > 0 {
		n := nights
		if n <= 0 {
			n = 1
		}
		total = perNight * n
	}
	if perNight == 0 && total > 0 && nights > 0 {
		perNight = total / nights
	}
	if price == 0 {
		if total > 0 {
			price = total
		} else {
			price = perNight
		}
	}

	o.PricePerNight = perNight
	o.TotalPrice = total
	o.Price = price

	return o
}

// refundableFlag prefers an explicit boolean; otherwise it is derived from
// the cancellation policy text.
func refundableFlag(r RawOption, policy string) bool {
	if v, ok := r["refundable"].(bool); ok {
		return v
	}
	if policy == missingText {
		return false
	}
	return !strings.EqualFold(policy, "Non-refundable")
}

// ─── Field helpers ────────────────────────────────────────────────────────────

// ParseAmount converts a loosely-typed numeric value to a non-negative float.
// Strings keep only digits and decimal points after the first digit, so
// "₹5,000", "$1,299.50" and "Rs. 2,500/-" all parse without the currency
// prefix polluting the number. Anything unparseable, negative, NaN, or
// infinite degrades to 0 — this function never fails.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return sanitize(n)
	case float32:
		return sanitize(float64(n))
	case int:
		return sanitize(float64(n))
	case int64:
		return sanitize(float64(n))
	case string:
		var b strings.Builder
		seenDigit := false
		for _, r := range n {
			if r >= '0' && r <= '9' {
				seenDigit = true
				b.WriteRune(r)
			} else if r == '.' && seenDigit {
				b.WriteRune(r)
			}
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0
		}
		return sanitize(f)
	default:
		return 0
	}
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func numField(r RawOption, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return ParseAmount(v)
		}
	}
	return 0
}

// optionalField distinguishes an absent key from a present-but-zero value;
// rating needs that so unrated options can score neutrally instead of at zero.
func optionalField(r RawOption, keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			f := ParseAmount(v)
			return &f
		}
	}
	return nil
}

func boolField(r RawOption, key string) bool {
	v, _ := r[key].(bool)
	return v
}

func stringField(r RawOption, keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k].(string); ok && v != "" {
			return v
		}
	}
	return missingText
}

// amenityList collects string tags and deduplicates them case-insensitively,
// keeping the first-seen casing and order.
func amenityList(r RawOption, keys ...string) []string {
	var items []string
	for _, k := range keys {
		switch v := r[k].(type) {
		case []string:
			items = v
		case []any:
			for _, e := range v {
				if s, ok := e.(string); ok {
					items = append(items, s)
				}
			}
		}
		if items != nil {
			break
		}
	}

	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, a := range items {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

func clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
