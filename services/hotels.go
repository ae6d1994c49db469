package services

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"tripweaver/travel"
)

// HotelQuery describes a hotel search.
type HotelQuery struct {
	Destination    string
	CheckIn        string // YYYY-MM-DD; empty when only sampling
	Nights         int
	Travelers      int
	Type           string  // hostel | hotel | resort
	BudgetPerNight float64 // 0 = unconstrained
}

// HotelOptions produces hotel candidates: live Amadeus data when credentials
// and a known city code are available, synthesized sample data otherwise.
// Live failures fall back to samples — the caller only learns which path ran
// from the set's status tag.
func HotelOptions(q HotelQuery) travel.GeneratedSet {
	client := GetAmadeusClient()

	if client.Configured() && q.CheckIn != "" {
		if code, ok := CityToIATA(q.Destination); ok {
			liveHotels, err := client.SearchHotels(code, q.CheckIn, addNights(q.CheckIn, q.Nights), q.Travelers)
			switch {
			case err != nil:
				log.Printf("⚠️  Amadeus hotel search failed: %v — using sample data", err)
			case len(liveHotels) == 0:
				log.Println("⚠️  Amadeus returned 0 hotels — using sample data")
			default:
				log.Printf("✅ Amadeus: %d live hotels found for %s", len(liveHotels), q.Destination)
				return travel.GeneratedSet{Records: hotelsToRaw(liveHotels), Status: travel.StatusLiveData}
			}
		}
	}

	return travel.GeneratedSet{Records: hotelsToRaw(GenerateHotelsSample(q)), Status: travel.StatusSampleData}
}

// ─── Sample Data ──────────────────────────────────────────────────────────────

type hotelProfile struct {
	minPrice float64
	maxPrice float64
	minTier  int
	maxTier  int
	names    []string
	areas    []string
	pool     []string
}

var hotelProfiles = map[string]hotelProfile{
	"hostel": {
		minPrice: 800, maxPrice: 2500, minTier: 1, maxTier: 2,
		names: []string{
			"Backpacker's Haven %s", "Nomad House %s", "%s Wanderer Hostel",
			"The Social Stay %s", "Roamer's Rest %s", "%s Transit Hostel",
		},
		pool: []string{"WiFi", "Shared kitchen", "Lockers", "Common room", "Laundry", "Cafe"},
	},
	"hotel": {
		minPrice: 2500, maxPrice: 12000, minTier: 3, maxTier: 4,
		names: []string{
			"The %s Grand", "Hotel %s Palace", "%s Residency", "The Heritage %s",
			"%s Comfort Inn", "Regency %s", "The %s Courtyard", "Hotel Blue Orchid %s",
		},
		pool: []string{"WiFi", "AC", "Room service", "Restaurant", "Gym", "Parking", "24x7 front desk", "Airport shuttle"},
	},
	"resort": {
		minPrice: 8000, maxPrice: 20000, minTier: 4, maxTier: 5,
		names: []string{
			"%s Beach Resort & Spa", "The Royal %s Retreat", "%s Lagoon Resort",
			"Serenity %s Resort", "The %s Palms", "%s Island Escape",
		},
		pool: []string{"WiFi", "Pool", "Spa", "Beach access", "Bar", "Restaurant", "Gym", "Kids club", "Private balcony"},
	},
}

var hotelAreas = []string{
	"City Center", "Old Town", "Market District", "Riverside",
	"Near Railway Station", "Beach Road", "Hilltop", "Garden Quarter",
}

var cancellationPolicies = []string{
	"Free cancellation", "Free cancellation", "Partial refund", "Non-refundable",
}

// GenerateHotelsSample synthesizes 8–15 plausible hotel records for the
// requested type and nightly budget. Every record carries the full schema a
// live record would, so downstream validation cannot tell them apart.
func GenerateHotelsSample(q HotelQuery) []Hotel {
	profile, ok := hotelProfiles[q.Type]
	if !ok {
		profile = hotelProfiles["hotel"]
	}

	nights := q.Nights
	if nights < 1 {
		nights = 1
	}

	count := 8 + rand.Intn(8) // 8–15
	hotels := make([]Hotel, 0, count)

	for i := 0; i < count; i++ {
		price := profile.minPrice + rand.Float64()*(profile.maxPrice-profile.minPrice)
		price = math.Round(price/50) * 50
		if q.BudgetPerNight > 0 && price > q.BudgetPerNight*0.9 {
			price = math.Floor(q.BudgetPerNight * 0.9 / 50) * 50
		}
		price = math.Max(price, 300)

		h := Hotel{
			ID:                 uuid.New().String(),
			Name:               fmt.Sprintf(profile.names[i%len(profile.names)], q.Destination),
			Type:               q.Type,
			Tier:               profile.minTier + rand.Intn(profile.maxTier-profile.minTier+1),
			PricePerNight:      price,
			TotalPrice:         price * float64(nights),
			Nights:             nights,
			Amenities:          pickAmenities(profile.pool),
			BreakfastIncluded:  rand.Intn(2) == 0,
			CancellationPolicy: cancellationPolicies[rand.Intn(len(cancellationPolicies))],
			DistanceFromCenter: fmt.Sprintf("%.1f km", 0.5+rand.Float64()*7.5),
			Location:           hotelAreas[rand.Intn(len(hotelAreas))] + ", " + q.Destination,
			Currency:           "INR",
		}

		// Roughly one in six listings has no rating yet; the ranker scores
		// those neutrally instead of at zero.
		if rand.Intn(6) != 0 {
			h.Rating = math.Round((3.5+rand.Float64()*1.3)*10) / 10
		}

		hotels = append(hotels, h)
	}

	return hotels
}

func pickAmenities(pool []string) []string {
	count := 3 + rand.Intn(len(pool)-2)
	idx := rand.Perm(len(pool))[:count]
	picked := make([]string, 0, count)
	for _, i := range idx {
		picked = append(picked, pool[i])
	}
	return picked
}

// hotelsToRaw converts typed hotel records into the raw shape the option
// pipeline normalizes. A zero rating is left out entirely so it reads as
// "absent", not "rated 0".
func hotelsToRaw(hotels []Hotel) []travel.RawOption {
	raw := make([]travel.RawOption, 0, len(hotels))
	for _, h := range hotels {
		r := travel.RawOption{
			"id":                   h.ID,
			"name":                 h.Name,
			"type":                 h.Type,
			"tier":                 h.Tier,
			"price_per_night":      h.PricePerNight,
			"total_price":          h.TotalPrice,
			"nights":               h.Nights,
			"amenities":            h.Amenities,
			"breakfast_included":   h.BreakfastIncluded,
			"cancellation_policy":  h.CancellationPolicy,
			"distance_from_center": h.DistanceFromCenter,
			"location":             h.Location,
			"currency":             h.Currency,
		}
		if h.Rating > 0 {
			r["rating"] = h.Rating
		}
		raw = append(raw, r)
	}
	return raw
}

func addNights(date string, nights int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	if nights < 1 {
		nights = 1
	}
	return t.AddDate(0, 0, nights).Format("2006-01-02")
}
