package services

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Attraction is a sightseeing suggestion tied to a traveler interest.
type Attraction struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	EntryFee      float64 `json:"entry_fee"` // INR, 0 = free
	DurationHours float64 `json:"duration_hours"`
	BestTime      string  `json:"best_time"` // morning | afternoon | evening
}

var attractionPools = map[string][]string{
	"culture": {
		"%s Fort", "Old %s Heritage Walk", "%s City Museum",
		"Ancient Temples of %s", "%s Palace Complex",
	},
	"adventure": {
		"%s River Rafting", "Paragliding over %s", "%s Trekking Trail",
		"Zipline at %s Heights", "%s Cycling Tour",
	},
	"nature": {
		"%s Botanical Gardens", "Sunset Point %s", "%s Wildlife Sanctuary",
		"Lakes of %s", "%s Waterfalls",
	},
	"food": {
		"%s Street Food Walk", "Spice Market of %s",
		"%s Cooking Class", "Night Bazaar %s",
	},
	"general": {
		"%s City Tour", "Local Markets of %s", "%s Viewpoint",
	},
}

var interestAliases = map[string]string{
	"culture": "culture", "history": "culture", "heritage": "culture", "art": "culture",
	"adventure": "adventure", "trekking": "adventure", "sports": "adventure",
	"nature": "nature", "wildlife": "nature", "beaches": "nature",
	"food": "food", "cuisine": "food", "nightlife": "food",
}

var bestTimes = []string{"morning", "afternoon", "evening"}

const maxAttractions = 6

// SuggestAttractions builds a deduplicated, capped list of attractions
// matching the traveler's interests, topped up from the general pool when the
// interests are thin or unknown.
func SuggestAttractions(destination string, interests []string) []Attraction {
	categories := make([]string, 0, len(interests)+1)
	seen := make(map[string]bool)
	for _, interest := range interests {
		if cat, ok := interestAliases[strings.ToLower(strings.TrimSpace(interest))]; ok && !seen[cat] {
			categories = append(categories, cat)
			seen[cat] = true
		}
	}
	if len(categories) == 0 {
		categories = []string{"culture"}
	}
	categories = append(categories, "general")

	var attractions []Attraction
	seenNames := make(map[string]bool)

	for _, cat := range categories {
		for _, tpl := range attractionPools[cat] {
			if len(attractions) >= maxAttractions {
				return attractions
			}
			name := fmt.Sprintf(tpl, destination)
			if seenNames[name] {
				continue
			}
			seenNames[name] = true

			fee := 0.0
			if rand.Intn(10) >= 3 {
				fee = float64(50 + 10*rand.Intn(56)) // ₹50–₹600
			}

			attractions = append(attractions, Attraction{
				Name:          name,
				Category:      cat,
				Rating:        math.Round((3.8+rand.Float64()*1.1)*10) / 10,
				EntryFee:      fee,
				DurationHours: 1 + 0.5*float64(rand.Intn(7)), // 1–4h
				BestTime:      bestTimes[len(attractions)%len(bestTimes)],
			})
		}
	}

	return attractions
}
