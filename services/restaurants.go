package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Restaurant is one dining suggestion for a day plan.
type Restaurant struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	PriceRange  string   `json:"price_range"`
	AvgCost     float64  `json:"avg_cost_per_person"`
	Rating      float64  `json:"rating"`
	Specialties []string `json:"specialties"`
	MealType    string   `json:"meal_type"`
}

// Price bands: symbol and typical cost per person for a full meal (INR).
var priceBands = []struct {
	Symbol  string
	AvgCost float64
}{
	{"₹", 300},
	{"₹₹", 800},
	{"₹₹₹", 1500},
}

// A full meal costs the band price; lighter meals cost a fraction of it.
var mealMultipliers = map[string]float64{
	"breakfast": 0.6,
	"lunch":     0.8,
	"dinner":    1.0,
	"snacks":    0.4,
}

var restaurantProfiles = map[string]struct {
	nameTemplates []string
	specialties   []string
}{
	"local": {
		nameTemplates: []string{
			"The %s Kitchen", "%s Spice House", "Old %s Thali", "%s Darbar",
			"Rasoi of %s", "%s Heritage Dining",
		},
		specialties: []string{
			"Regional thali", "Street food platter", "Clay-oven breads",
			"Slow-cooked curries", "Local sweets",
		},
	},
	"international": {
		nameTemplates: []string{
			"Cafe %s", "%s Bistro", "The %s Grill", "Trattoria %s",
			"%s Brasserie", "Wok & Fire %s",
		},
		specialties: []string{
			"Wood-fired pizza", "Pan-Asian bowls", "Grilled platters",
			"Fresh pasta", "Continental breakfast",
		},
	},
	"vegetarian": {
		nameTemplates: []string{
			"Green Leaf %s", "%s Sattvik", "Pure Veg %s", "The %s Garden Table",
			"%s Annapurna", "Herb & Sprout %s",
		},
		specialties: []string{
			"Farm-fresh salads", "Paneer specialties", "South Indian tiffin",
			"Vegan curries", "Millet bowls",
		},
	},
}

// SuggestRestaurants returns 4-6 dining picks for the destination, sorted by
// rating (best first) with price breaking ties. budgetPerMeal of 0 means no
// budget cap; otherwise per-person cost is clamped to 90% of it.
func SuggestRestaurants(destination, cuisineType string, budgetPerMeal float64, mealType string) []Restaurant {
	profile, ok := restaurantProfiles[strings.ToLower(cuisineType)]
	if !ok {
		cuisineType = "local"
		profile = restaurantProfiles["local"]
	}

	multiplier, ok := mealMultipliers[strings.ToLower(mealType)]
	if !ok {
		mealType = "dinner"
		multiplier = mealMultipliers["dinner"]
	}

	templates := make([]string, len(profile.nameTemplates))
	copy(templates, profile.nameTemplates)
	rand.Shuffle(len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})

	count := 4 + rand.Intn(3) // 4-6 picks
	if count > len(templates) {
		count = len(templates)
	}

	restaurants := make([]Restaurant, 0, count)
	for i := 0; i < count; i++ {
		band := priceBands[rand.Intn(len(priceBands))]
		cost := band.AvgCost * multiplier
		if budgetPerMeal > 0 && cost > budgetPerMeal*0.9 {
			cost = budgetPerMeal * 0.9
		}
		cost = math.Round(cost/10) * 10

		specialties := pickSpecialties(profile.specialties)
		rating := math.Round((3.5+rand.Float64()*1.3)*10) / 10

		restaurants = append(restaurants, Restaurant{
			Name:        fmt.Sprintf(templates[i], destination),
			Cuisine:     strings.ToLower(cuisineType),
			PriceRange:  band.Symbol,
			AvgCost:     cost,
			Rating:      rating,
			Specialties: specialties,
			MealType:    strings.ToLower(mealType),
		})
	}

	sort.Slice(restaurants, func(i, j int) bool {
		if restaurants[i].Rating != restaurants[j].Rating {
			return restaurants[i].Rating > restaurants[j].Rating
		}
		return restaurants[i].AvgCost < restaurants[j].AvgCost
	})

	return restaurants
}

func pickSpecialties(pool []string) []string {
	picks := make([]string, len(pool))
	copy(picks, pool)
	rand.Shuffle(len(picks), func(i, j int) {
		picks[i], picks[j] = picks[j], picks[i]
	})
	n := 2 + rand.Intn(2) // 2-3 specialties
	if n > len(picks) {
		n = len(picks)
	}
	return picks[:n]
}
