package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"tripweaver/travel"
)

// PlanRequest is the trip-planning request body. It doubles as the stored
// request document on the session.
type PlanRequest struct {
	Destination         string   `json:"destination" binding:"required"`
	Origin              string   `json:"origin"`
	Budget              float64  `json:"budget" binding:"required,gt=0"`
	DurationDays        int      `json:"duration_days" binding:"required,gte=1,lte=30"`
	StartDate           string   `json:"start_date"`
	Travelers           int      `json:"travelers"`
	Interests           []string `json:"interests"`
	AccommodationType   string   `json:"accommodation_type" binding:"omitempty,oneof=hostel hotel resort"`
	TransportMode       string   `json:"transport_mode"`
	SpecialRequirements string   `json:"special_requirements"`
}

// ApplyDefaults fills the optional fields the way the API documents them:
// departure a week out, solo traveler from Delhi, a mid-range hotel.
func (r *PlanRequest) ApplyDefaults() {
	if r.Travelers <= 0 {
		r.Travelers = 1
	}
	if r.Origin == "" {
		r.Origin = "Delhi"
	}
	if r.StartDate == "" {
		r.StartDate = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	}
	if r.AccommodationType == "" {
		r.AccommodationType = "hotel"
	}
	if r.TransportMode == "" {
		r.TransportMode = "flight"
	}
}

// FlightSection is the ranked flight set plus display-ready summary lines.
type FlightSection struct {
	travel.ResultSet
	Summary []string `json:"summary,omitempty"`
}

// StaySection is the ranked hotel set plus the best-value pick called out.
type StaySection struct {
	travel.ResultSet
	BestValue *travel.Option `json:"best_value,omitempty"`
}

// DayPlan is one day of the trip: up to two attractions and a dinner pick.
type DayPlan struct {
	Day           int         `json:"day"`
	Date          string      `json:"date"`
	Morning       *Attraction `json:"morning,omitempty"`
	Afternoon     *Attraction `json:"afternoon,omitempty"`
	Dinner        *Restaurant `json:"dinner,omitempty"`
	EstimatedCost float64     `json:"estimated_cost"`
}

// CostBreakdown totals the planned spend against the stated budget.
type CostBreakdown struct {
	Flights       float64 `json:"flights"`
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Miscellaneous float64 `json:"miscellaneous"`
	Total         float64 `json:"total"`
	Budget        float64 `json:"budget"`
	WithinBudget  bool    `json:"within_budget"`
}

// Itinerary is the finished trip document stored on the session and rendered
// into the PDF.
type Itinerary struct {
	Destination      string            `json:"destination"`
	Origin           string            `json:"origin"`
	StartDate        string            `json:"start_date"`
	TotalDays        int               `json:"total_days"`
	Travelers        int               `json:"travelers"`
	Currency         string            `json:"currency"`
	Flights          FlightSection     `json:"flights"`
	Accommodation    StaySection       `json:"accommodation"`
	DailyItinerary   []DayPlan         `json:"daily_itinerary"`
	Weather          WeatherReport     `json:"weather"`
	CostBreakdown    CostBreakdown     `json:"cost_breakdown"`
	BudgetAllocation BudgetAllocation  `json:"budget_allocation"`
	Recommendations  []string          `json:"recommendations"`
	AISummary        string            `json:"ai_summary"`
	DataStatus       map[string]string `json:"data_status"`
	GeneratedAt      string            `json:"generated_at"`
}

// ProgressFn receives the step name and a human-readable detail line each
// time the planner starts a step.
type ProgressFn func(step, detail string)

// The planner's steps, in execution order.
var PlanSteps = []string{
	"flight_search",
	"hotel_search",
	"attraction_search",
	"restaurant_search",
	"weather_info",
	"assembly",
}

const TotalPlanSteps = 6

const aiSummaryTimeout = 75 * time.Second

// BuildItinerary runs the full planning pipeline. Every step degrades rather
// than fails: live data falls back to samples, AI falls back to canned text.
// Callers recover panics and serve a fallback itinerary.
func BuildItinerary(req PlanRequest, w travel.Weights, progress ProgressFn) *Itinerary {
	if progress == nil {
		progress = func(string, string) {}
	}
	req.ApplyDefaults()

	travelers := req.Travelers
	nights := req.DurationDays
	returnDate := addNights(req.StartDate, nights)
	allocation := AllocateBudget(req.Budget)

	// Step 1: flights
	progress("flight_search", fmt.Sprintf("Searching flights %s → %s", req.Origin, req.Destination))
	flightSet := FlightOptions(FlightQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.StartDate,
		ReturnDate:    returnDate,
		Travelers:     travelers,
		Budget:        req.Budget,
	})
	flights := travel.BuildResultSet(flightSet.Records, travel.CategoryFlight, "INR", flightSet.Status, w)

	// Step 2: hotels
	progress("hotel_search", fmt.Sprintf("Searching %s stays in %s", req.AccommodationType, req.Destination))
	hotelSet := HotelOptions(HotelQuery{
		Destination:    req.Destination,
		CheckIn:        req.StartDate,
		Nights:         nights,
		Travelers:      travelers,
		Type:           req.AccommodationType,
		BudgetPerNight: allocation.Accommodation / float64(nights),
	})
	hotels := travel.BuildResultSet(hotelSet.Records, travel.CategoryHotel, "INR", hotelSet.Status, w)

	// Step 3: attractions
	progress("attraction_search", fmt.Sprintf("Finding attractions in %s", req.Destination))
	attractions := SuggestAttractions(req.Destination, req.Interests)

	// Step 4: restaurants
	progress("restaurant_search", fmt.Sprintf("Finding places to eat in %s", req.Destination))
	mealBudget := allocation.Food / float64(req.DurationDays*travelers)
	restaurants := SuggestRestaurants(req.Destination, cuisinePreference(req), mealBudget, "dinner")

	// Step 5: weather
	progress("weather_info", fmt.Sprintf("Checking the weather outlook for %s", req.Destination))
	weather := WeatherOutlook(req.Destination, req.StartDate)

	// Step 6: assembly
	progress("assembly", "Assembling your itinerary")

	days := buildDayPlans(req, attractions, restaurants, travelers)
	costs := buildCostBreakdown(req, flights, hotels, days, travelers)

	it := &Itinerary{
		Destination:      req.Destination,
		Origin:           req.Origin,
		StartDate:        req.StartDate,
		TotalDays:        req.DurationDays,
		Travelers:        travelers,
		Currency:         "INR",
		Flights:          FlightSection{ResultSet: flights, Summary: flightSummary(flights)},
		Accommodation:    StaySection{ResultSet: hotels, BestValue: bestOption(hotels)},
		DailyItinerary:   days,
		Weather:          weather,
		CostBreakdown:    costs,
		BudgetAllocation: allocation,
		Recommendations:  buildRecommendations(flights, hotels, weather, costs),
		DataStatus: map[string]string{
			"flights": flights.Status,
			"hotels":  hotels.Status,
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	it.AISummary = narrativeSummary(req, flights, hotels)

	return it
}

// FallbackItinerary is served when assembly itself panics: a rough plan that
// assumes 80% of the budget gets spent, split 30/40/20/10 across flights,
// stay, activities and food.
func FallbackItinerary(req PlanRequest) *Itinerary {
	req.ApplyDefaults()

	total := req.Budget * 0.80
	costs := CostBreakdown{
		Flights:       math.Round(total * 0.30),
		Accommodation: math.Round(total * 0.40),
		Activities:    math.Round(total * 0.20),
		Food:          math.Round(total * 0.10),
		Total:         math.Round(total),
		Budget:        req.Budget,
		WithinBudget:  true,
	}

	days := make([]DayPlan, 0, req.DurationDays)
	perDay := math.Round(total / float64(req.DurationDays))
	for d := 1; d <= req.DurationDays; d++ {
		days = append(days, DayPlan{
			Day:           d,
			Date:          addDays(req.StartDate, d-1),
			EstimatedCost: perDay,
		})
	}

	return &Itinerary{
		Destination:    req.Destination,
		Origin:         req.Origin,
		StartDate:      req.StartDate,
		TotalDays:      req.DurationDays,
		Travelers:      req.Travelers,
		Currency:       "INR",
		DailyItinerary: days,
		Weather:        WeatherOutlook(req.Destination, req.StartDate),
		CostBreakdown:  costs,
		BudgetAllocation: AllocateBudget(req.Budget),
		Recommendations: []string{
			"This is a rough outline — planning hit an error partway through, so option details are missing.",
			"Retry the full plan for flight and hotel picks with prices.",
			"Keep roughly a fifth of your budget unallocated for on-the-ground spending.",
		},
		AISummary: fmt.Sprintf("A %d-day trip to %s for %d traveler(s), budgeted at ₹%.0f. Expect about ₹%.0f in total spend: ₹%.0f on flights, ₹%.0f on your stay, ₹%.0f on activities and ₹%.0f on food.",
			req.DurationDays, req.Destination, req.Travelers, req.Budget,
			costs.Total, costs.Flights, costs.Accommodation, costs.Activities, costs.Food),
		DataStatus: map[string]string{
			"flights": travel.StatusSampleData,
			"hotels":  travel.StatusSampleData,
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
}

// ─── Assembly helpers ─────────────────────────────────────────────────────────

func buildDayPlans(req PlanRequest, attractions []Attraction, restaurants []Restaurant, travelers int) []DayPlan {
	days := make([]DayPlan, 0, req.DurationDays)

	for d := 0; d < req.DurationDays; d++ {
		plan := DayPlan{
			Day:  d + 1,
			Date: addDays(req.StartDate, d),
		}

		if len(attractions) > 0 {
			morning := attractions[(2*d)%len(attractions)]
			plan.Morning = &morning
			if len(attractions) > 1 {
				afternoon := attractions[(2*d+1)%len(attractions)]
				plan.Afternoon = &afternoon
			}
		}
		if len(restaurants) > 0 {
			dinner := restaurants[d%len(restaurants)]
			plan.Dinner = &dinner
		}

		cost := 0.0
		if plan.Morning != nil {
			cost += plan.Morning.EntryFee
		}
		if plan.Afternoon != nil {
			cost += plan.Afternoon.EntryFee
		}
		if plan.Dinner != nil {
			// A dinner at band price implies breakfast and lunch at the same
			// band: 0.6 + 0.8 + 1.0 of the dinner price covers the day's meals.
			cost += plan.Dinner.AvgCost * 2.4
		}
		plan.EstimatedCost = math.Round(cost * float64(travelers))

		days = append(days, plan)
	}
	return days
}

func buildCostBreakdown(req PlanRequest, flights, hotels travel.ResultSet, days []DayPlan, travelers int) CostBreakdown {
	costs := CostBreakdown{Budget: req.Budget}

	if f := bestOption(flights); f != nil {
		costs.Flights = math.Round(f.Price * float64(travelers))
	}
	if h := bestOption(hotels); h != nil {
		costs.Accommodation = math.Round(h.TotalPrice)
	}

	for _, day := range days {
		if day.Dinner != nil {
			costs.Food += day.Dinner.AvgCost * 2.4 * float64(travelers)
		}
		if day.Morning != nil {
			costs.Activities += day.Morning.EntryFee * float64(travelers)
		}
		if day.Afternoon != nil {
			costs.Activities += day.Afternoon.EntryFee * float64(travelers)
		}
	}
	costs.Food = math.Round(costs.Food)
	costs.Activities = math.Round(costs.Activities)

	subtotal := costs.Flights + costs.Accommodation + costs.Food + costs.Activities
	costs.Miscellaneous = math.Round(subtotal * 0.05)
	costs.Total = subtotal + costs.Miscellaneous
	costs.WithinBudget = costs.Total <= req.Budget

	return costs
}

func bestOption(rs travel.ResultSet) *travel.Option {
	if len(rs.Options) == 0 {
		return nil
	}
	best := rs.Options[0]
	return &best
}

func flightSummary(flights travel.ResultSet) []string {
	lines := make([]string, 0, 3)
	for i, f := range flights.Options {
		if i >= 3 {
			break
		}
		line := fmt.Sprintf("%s — ₹%.0f per person", f.Name, f.Price)
		if f.DurationMinutes != nil {
			line += ", " + formatDurationMin(int(*f.DurationMinutes))
		}
		if f.Refundable {
			line += ", refundable"
		}
		lines = append(lines, line)
	}
	return lines
}

func buildRecommendations(flights, hotels travel.ResultSet, weather WeatherReport, costs CostBreakdown) []string {
	recs := make([]string, 0, 6)

	if flights.Status == travel.StatusSampleData || hotels.Status == travel.StatusSampleData {
		recs = append(recs, "Prices shown are estimates — verify fares and room rates with airlines and hotels before booking.")
	}

	if costs.WithinBudget {
		recs = append(recs, "The plan fits your budget with room to spare — consider upgrading your stay or adding an activity.")
	} else {
		recs = append(recs, "The plan runs over budget — trim a night, pick a cheaper stay, or drop a paid activity.")
	}

	rainy := false
	for _, day := range weather.Forecast {
		if day.RainChance > 50 {
			rainy = true
			break
		}
	}
	if rainy {
		recs = append(recs, "Showers are likely during your stay — pack rain protection and keep indoor options handy.")
	} else if len(weather.Packing) > 0 {
		recs = append(recs, fmt.Sprintf("Weather looks %s — don't forget: %s.",
			strings.ToLower(weather.Current.Condition), strings.ToLower(weather.Packing[0])))
	}

	if h := bestOption(hotels); h != nil && h.BreakfastIncluded {
		recs = append(recs, "Your top hotel pick includes breakfast — start days early to fit more in.")
	}

	recs = append(recs, "Book flights 3-4 weeks before departure for better fares.")
	if len(recs) < 6 {
		recs = append(recs, "Carry a mix of cards and cash — smaller vendors are often cash-only.")
	}

	if len(recs) > 6 {
		recs = recs[:6]
	}
	return recs
}

func narrativeSummary(req PlanRequest, flights, hotels travel.ResultSet) string {
	in := SummaryInput{
		Destination: req.Destination,
		Origin:      req.Origin,
		Days:        req.DurationDays,
		Travelers:   req.Travelers,
		Budget:      req.Budget,
		Interests:   req.Interests,
		Flights:     flights,
		Hotels:      hotels,
	}

	client := GetAIClient()
	if client.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), aiSummaryTimeout)
		defer cancel()

		summary, err := client.TripSummary(ctx, in)
		if err == nil {
			return summary
		}
		log.Printf("⚠️  AI summary unavailable, using fallback text: %v", err)
	}

	return FallbackSummary(in)
}

// addDays shifts a yyyy-mm-dd date without the minimum-stay clamp addNights
// applies; day one of an itinerary is the start date itself.
func addDays(date string, days int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}

func cuisinePreference(req PlanRequest) string {
	hay := strings.ToLower(req.SpecialRequirements + " " + strings.Join(req.Interests, " "))
	if strings.Contains(hay, "vegetarian") || strings.Contains(hay, "vegan") {
		return "vegetarian"
	}
	return "local"
}
