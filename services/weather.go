package services

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// CurrentWeather is a climate-typical snapshot for the destination.
type CurrentWeather struct {
	TemperatureC float64 `json:"temperature_c"`
	Humidity     int     `json:"humidity_percent"`
	Condition    string  `json:"condition"`
	Climate      string  `json:"climate"`
}

// ForecastDay is one day of the five-day outlook.
type ForecastDay struct {
	Date       string  `json:"date"`
	HighC      float64 `json:"high_c"`
	LowC       float64 `json:"low_c"`
	Condition  string  `json:"condition"`
	RainChance int     `json:"rain_chance_percent"`
}

// WeatherReport is the full outlook used by the planner and the itinerary.
type WeatherReport struct {
	Location        string         `json:"location"`
	Current         CurrentWeather `json:"current"`
	Forecast        []ForecastDay  `json:"forecast"`
	Recommendations []string       `json:"recommendations"`
	Packing         []string       `json:"packing_suggestions"`
}

// Climate bands: typical temperature/humidity ranges and conditions. Without a
// live weather feed the outlook is climate-typical, not a real forecast.
var climateProfiles = map[string]struct {
	minC, maxC          float64
	minHumidity, spread int
	rainMin, rainSpread int
	conditions          []string
	recommendations     []string
	packing             []string
}{
	"tropical": {
		minC: 25, maxC: 35,
		minHumidity: 60, spread: 25,
		rainMin: 20, rainSpread: 50,
		conditions: []string{"Sunny", "Partly Cloudy", "Humid", "Scattered Showers"},
		recommendations: []string{
			"Plan outdoor sightseeing for mornings before the heat peaks",
			"Stay hydrated and take shade breaks through midday",
			"Afternoon showers are common, keep indoor options handy",
			"Evenings are pleasant for markets and waterfront walks",
		},
		packing: []string{
			"Light cotton clothing", "Sunscreen (SPF 30+)", "Hat and sunglasses",
			"Compact umbrella", "Insect repellent", "Comfortable sandals",
		},
	},
	"cold": {
		minC: 5, maxC: 20,
		minHumidity: 40, spread: 30,
		rainMin: 5, rainSpread: 25,
		conditions: []string{"Clear", "Cloudy", "Chilly", "Light Snow"},
		recommendations: []string{
			"Layer clothing, mornings and nights get markedly colder",
			"Check mountain road conditions before day trips",
			"Book rooms with heating for the night halts",
			"Midday sun is the best window for outdoor plans",
		},
		packing: []string{
			"Warm jacket", "Thermal innerwear", "Gloves and woolen cap",
			"Moisturizer and lip balm", "Sturdy closed shoes", "Thick socks",
		},
	},
	"moderate": {
		minC: 18, maxC: 30,
		minHumidity: 45, spread: 30,
		rainMin: 10, rainSpread: 35,
		conditions: []string{"Sunny", "Pleasant", "Partly Cloudy", "Mild"},
		recommendations: []string{
			"Weather suits full-day sightseeing, start early to cover more",
			"Carry a light layer for cooler evenings",
			"Keep a small umbrella for the odd passing shower",
			"Open-air dining is comfortable most evenings",
		},
		packing: []string{
			"Light layers", "Comfortable walking shoes", "Light jacket for evenings",
			"Sunglasses", "Reusable water bottle", "Day pack",
		},
	},
}

var cityClimates = map[string]string{
	"goa": "tropical", "mumbai": "tropical", "chennai": "tropical",
	"kochi": "tropical", "kolkata": "tropical", "bali": "tropical",
	"bangkok": "tropical", "singapore": "tropical", "colombo": "tropical",

	"shimla": "cold", "manali": "cold", "leh": "cold", "ladakh": "cold",
	"darjeeling": "cold", "ooty": "cold", "gangtok": "cold", "mussoorie": "cold",
}

// WeatherOutlook builds a climate-typical report with a five-day forecast
// starting at startDate (YYYY-MM-DD; today when empty or unparseable).
func WeatherOutlook(destination, startDate string) WeatherReport {
	climate := classifyClimate(destination)
	profile := climateProfiles[climate]

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		start = time.Now()
	}

	temp := roundHalf(profile.minC + rand.Float64()*(profile.maxC-profile.minC))
	current := CurrentWeather{
		TemperatureC: temp,
		Humidity:     profile.minHumidity + rand.Intn(profile.spread+1),
		Condition:    profile.conditions[rand.Intn(len(profile.conditions))],
		Climate:      climate,
	}

	forecast := make([]ForecastDay, 0, 5)
	for i := 0; i < 5; i++ {
		high := roundHalf(profile.maxC - rand.Float64()*3)
		low := roundHalf(profile.minC + rand.Float64()*3)
		if low > high {
			low, high = high, low
		}
		forecast = append(forecast, ForecastDay{
			Date:       start.AddDate(0, 0, i).Format("2006-01-02"),
			HighC:      high,
			LowC:       low,
			Condition:  profile.conditions[rand.Intn(len(profile.conditions))],
			RainChance: profile.rainMin + rand.Intn(profile.rainSpread+1),
		})
	}

	recommendations := profile.recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	packing := profile.packing
	if len(packing) > 6 {
		packing = packing[:6]
	}

	return WeatherReport{
		Location:        destination,
		Current:         current,
		Forecast:        forecast,
		Recommendations: recommendations,
		Packing:         packing,
	}
}

func classifyClimate(destination string) string {
	key := strings.ToLower(strings.TrimSpace(destination))
	if climate, ok := cityClimates[key]; ok {
		return climate
	}
	return "moderate"
}

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
