package travel

import "sort"

// ─── Scoring configuration ────────────────────────────────────────────────────

const (
	// RatingMax is the upper bound of the provider rating domain.
	RatingMax = 5.0

	// NeutralRatingScore is used for options with no rating at all, so an
	// unrated option is not punished as hard as a genuinely low-rated one.
	NeutralRatingScore = 0.6

	// AmenityReference is the amenity count of a "well-equipped" option;
	// anything at or above it gets the full amenity score.
	AmenityReference = 5
)

// Weights drives the composite score. The three primary weights sum to 1.0;
// the bonuses are small additive tie-breakers layered on top.
type Weights struct {
	Price           float64
	Rating          float64
	Amenities       float64
	BreakfastBonus  float64
	RefundableBonus float64
}

// DefaultWeights returns the deployed scoring policy: price and rating carry
// equal weight, amenities slightly less, and each policy flag adds at most
// 0.05. These values are stable within a deployment so identical input always
// produces identical ordering.
func DefaultWeights() Weights {
	return Weights{
		Price:           0.35,
		Rating:          0.35,
		Amenities:       0.30,
		BreakfastBonus:  0.05,
		RefundableBonus: 0.05,
	}
}

// ─── Scoring ──────────────────────────────────────────────────────────────────

// PriceScore normalizes a price against the set's range: the cheapest option
// scores 1.0, the most expensive 0.0. A degenerate range (all prices equal)
// scores 1.0 for everyone — no price differentiation, no penalty.
func PriceScore(price, min, max float64) float64 {
	if max <= min {
		return 1.0
	}
	p := (price - min) / (max - min)
	return 1.0 - p
}

// Score computes the composite best-value score for one option against the
// price range of its set. It is a pure function of its arguments.
func Score(o Option, r Range, w Weights) float64 {
	s := w.Price*PriceScore(o.Price, r.Min, r.Max) +
		w.Rating*ratingScore(o.Rating) +
		w.Amenities*amenityScore(len(o.Amenities))
	if o.BreakfastIncluded {
		s += w.BreakfastBonus
	}
	if o.Refundable {
		s += w.RefundableBonus
	}
	return s
}

func ratingScore(rating *float64) float64 {
	if rating == nil {
		return NeutralRatingScore
	}
	return *rating / RatingMax
}

func amenityScore(count int) float64 {
	s := float64(count) / AmenityReference
	if s > 1.0 {
		return 1.0
	}
	return s
}

// ─── Ranking ──────────────────────────────────────────────────────────────────

// Rank orders options best-to-worst by composite score. The input slice is
// left untouched; the returned slice holds the same elements with Score
// filled in. Exact ties keep their input order, so ranking is deterministic
// and re-ranking an already-ranked set is a no-op.
func Rank(options []Option, w Weights) []Option {
	ranked := make([]Option, len(options))
	copy(ranked, options)

	r := PriceRange(ranked)
	for i := range ranked {
		ranked[i].Score = Score(ranked[i], r, w)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
