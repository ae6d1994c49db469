package services

import (
	"math"
	"strings"
	"testing"
	"time"

	"tripweaver/travel"
)

func planFixture() PlanRequest {
	return PlanRequest{
		Destination:  "Goa",
		Origin:       "Delhi",
		Budget:       80000,
		DurationDays: 4,
		StartDate:    "2026-11-10",
		Travelers:    2,
		Interests:    []string{"beaches"},
	}
}

func TestBuildItineraryPipeline(t *testing.T) {
	var steps []string
	progress := func(step, detail string) {
		steps = append(steps, step)
		if detail == "" {
			t.Errorf("step %s has no detail line", step)
		}
	}

	it := BuildItinerary(planFixture(), travel.DefaultWeights(), progress)
	if it == nil {
		t.Fatal("BuildItinerary returned nil")
	}

	if len(steps) != len(PlanSteps) {
		t.Fatalf("got %d progress steps, want %d", len(steps), len(PlanSteps))
	}
	for i, want := range PlanSteps {
		if steps[i] != want {
			t.Errorf("step %d = %q, want %q", i, steps[i], want)
		}
	}

	if it.Destination != "Goa" || it.Origin != "Delhi" {
		t.Errorf("trip frame = %s → %s, want Delhi → Goa", it.Origin, it.Destination)
	}
	if it.Currency != "INR" {
		t.Errorf("currency = %q, want INR", it.Currency)
	}
	if it.TotalDays != 4 {
		t.Errorf("total days = %d, want 4", it.TotalDays)
	}

	// Without Amadeus credentials both sets are generated samples.
	if it.DataStatus["flights"] != travel.StatusSampleData {
		t.Errorf("flight data status = %q, want sample", it.DataStatus["flights"])
	}
	if it.DataStatus["hotels"] != travel.StatusSampleData {
		t.Errorf("hotel data status = %q, want sample", it.DataStatus["hotels"])
	}

	if len(it.Flights.Options) == 0 {
		t.Fatal("no flight options")
	}
	if len(it.Flights.Summary) != 3 {
		t.Errorf("flight summary has %d lines, want 3", len(it.Flights.Summary))
	}
	if len(it.Accommodation.Options) == 0 {
		t.Fatal("no hotel options")
	}
	if it.Accommodation.BestValue == nil {
		t.Fatal("no best-value hotel")
	}
	if it.Accommodation.BestValue.Name != it.Accommodation.Options[0].Name {
		t.Errorf("best value = %q, want the top-ranked option %q",
			it.Accommodation.BestValue.Name, it.Accommodation.Options[0].Name)
	}

	if it.Weather.Location != "Goa" {
		t.Errorf("weather location = %q, want Goa", it.Weather.Location)
	}

	if it.AISummary == "" {
		t.Error("itinerary has no narrative summary")
	}
	if !strings.Contains(it.AISummary, "Best-value flight") {
		t.Errorf("fallback summary should name the top flight, got %q", it.AISummary)
	}

	if n := len(it.Recommendations); n < 2 || n > 6 {
		t.Errorf("got %d recommendations, want 2-6", n)
	}
	if !strings.Contains(it.Recommendations[0], "estimates") {
		t.Errorf("sample data should lead with the estimate warning, got %q", it.Recommendations[0])
	}

	if it.BudgetAllocation.Accommodation != 32000 {
		t.Errorf("accommodation allocation = %v, want 32000", it.BudgetAllocation.Accommodation)
	}

	if _, err := time.Parse(time.RFC3339, it.GeneratedAt); err != nil {
		t.Errorf("generated_at %q is not RFC3339: %v", it.GeneratedAt, err)
	}
}

func TestBuildItineraryDayPlans(t *testing.T) {
	it := BuildItinerary(planFixture(), travel.DefaultWeights(), nil)

	if len(it.DailyItinerary) != 4 {
		t.Fatalf("got %d days, want 4", len(it.DailyItinerary))
	}

	for i, day := range it.DailyItinerary {
		if day.Day != i+1 {
			t.Errorf("day %d numbered %d", i+1, day.Day)
		}
		wantDate := time.Date(2026, 11, 10+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if day.Date != wantDate {
			t.Errorf("day %d date = %s, want %s", day.Day, day.Date, wantDate)
		}

		if day.Morning == nil || day.Afternoon == nil {
			t.Fatalf("day %d is missing attractions", day.Day)
		}
		if day.Dinner == nil {
			t.Fatalf("day %d has no dinner pick", day.Day)
		}

		cost := day.Morning.EntryFee + day.Afternoon.EntryFee + day.Dinner.AvgCost*2.4
		if want := math.Round(cost * 2); day.EstimatedCost != want {
			t.Errorf("day %d estimated cost = %v, want %v", day.Day, day.EstimatedCost, want)
		}
	}
}

func TestBuildItineraryCostBreakdown(t *testing.T) {
	it := BuildItinerary(planFixture(), travel.DefaultWeights(), nil)
	costs := it.CostBreakdown

	if costs.Budget != 80000 {
		t.Errorf("budget = %v, want 80000", costs.Budget)
	}

	wantFlights := math.Round(it.Flights.Options[0].Price * 2)
	if costs.Flights != wantFlights {
		t.Errorf("flight cost = %v, want %v (best option for two)", costs.Flights, wantFlights)
	}
	wantStay := math.Round(it.Accommodation.Options[0].TotalPrice)
	if costs.Accommodation != wantStay {
		t.Errorf("stay cost = %v, want %v", costs.Accommodation, wantStay)
	}

	var food, activities float64
	for _, day := range it.DailyItinerary {
		if day.Dinner != nil {
			food += day.Dinner.AvgCost * 2.4 * 2
		}
		if day.Morning != nil {
			activities += day.Morning.EntryFee * 2
		}
		if day.Afternoon != nil {
			activities += day.Afternoon.EntryFee * 2
		}
	}
	if costs.Food != math.Round(food) {
		t.Errorf("food cost = %v, want %v", costs.Food, math.Round(food))
	}
	if costs.Activities != math.Round(activities) {
		t.Errorf("activities cost = %v, want %v", costs.Activities, math.Round(activities))
	}

	subtotal := costs.Flights + costs.Accommodation + costs.Food + costs.Activities
	if costs.Miscellaneous != math.Round(subtotal*0.05) {
		t.Errorf("miscellaneous = %v, want 5%% of %v", costs.Miscellaneous, subtotal)
	}
	if costs.Total != subtotal+costs.Miscellaneous {
		t.Errorf("total = %v, want %v", costs.Total, subtotal+costs.Miscellaneous)
	}
	if costs.WithinBudget != (costs.Total <= 80000) {
		t.Errorf("within_budget = %v inconsistent with total %v", costs.WithinBudget, costs.Total)
	}
}

func TestFallbackItinerary(t *testing.T) {
	it := FallbackItinerary(PlanRequest{
		Destination:  "Goa",
		Origin:       "Delhi",
		Budget:       50000,
		DurationDays: 5,
		StartDate:    "2026-05-01",
		Travelers:    2,
	})

	costs := it.CostBreakdown
	if costs.Total != 40000 {
		t.Errorf("total = %v, want 80%% of budget", costs.Total)
	}
	if costs.Flights != 12000 || costs.Accommodation != 16000 || costs.Activities != 8000 || costs.Food != 4000 {
		t.Errorf("split = %v/%v/%v/%v, want 12000/16000/8000/4000",
			costs.Flights, costs.Accommodation, costs.Activities, costs.Food)
	}
	if !costs.WithinBudget {
		t.Error("fallback plan should sit inside the budget")
	}

	if len(it.DailyItinerary) != 5 {
		t.Fatalf("got %d days, want 5", len(it.DailyItinerary))
	}
	if it.DailyItinerary[0].Date != "2026-05-01" {
		t.Errorf("day 1 date = %s, want the start date", it.DailyItinerary[0].Date)
	}
	if it.DailyItinerary[4].Date != "2026-05-05" {
		t.Errorf("day 5 date = %s, want 2026-05-05", it.DailyItinerary[4].Date)
	}
	if it.DailyItinerary[0].EstimatedCost != 8000 {
		t.Errorf("per-day cost = %v, want 8000", it.DailyItinerary[0].EstimatedCost)
	}

	if it.DataStatus["flights"] != travel.StatusSampleData || it.DataStatus["hotels"] != travel.StatusSampleData {
		t.Errorf("fallback data status = %v, want sample everywhere", it.DataStatus)
	}
	if len(it.Recommendations) != 3 {
		t.Errorf("got %d recommendations, want 3", len(it.Recommendations))
	}
	if !strings.Contains(it.Recommendations[0], "rough outline") {
		t.Errorf("first recommendation should flag the fallback, got %q", it.Recommendations[0])
	}
	if !strings.Contains(it.AISummary, "₹40000") {
		t.Errorf("summary should carry the projected spend, got %q", it.AISummary)
	}
}

func TestApplyDefaults(t *testing.T) {
	r := PlanRequest{Destination: "Goa", Budget: 30000, DurationDays: 3}
	r.ApplyDefaults()

	if r.Travelers != 1 {
		t.Errorf("travelers = %d, want 1", r.Travelers)
	}
	if r.Origin != "Delhi" {
		t.Errorf("origin = %q, want Delhi", r.Origin)
	}
	if r.AccommodationType != "hotel" {
		t.Errorf("accommodation type = %q, want hotel", r.AccommodationType)
	}
	if r.TransportMode != "flight" {
		t.Errorf("transport mode = %q, want flight", r.TransportMode)
	}

	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		t.Fatalf("default start date %q does not parse: %v", r.StartDate, err)
	}
	until := time.Until(start)
	if until < 5*24*time.Hour || until > 8*24*time.Hour {
		t.Errorf("default start date %s should be about a week out", r.StartDate)
	}

	set := PlanRequest{
		Destination: "Goa", Budget: 30000, DurationDays: 3,
		Origin: "Mumbai", Travelers: 4, StartDate: "2026-12-01",
		AccommodationType: "resort", TransportMode: "train",
	}
	set.ApplyDefaults()
	if set.Origin != "Mumbai" || set.Travelers != 4 || set.StartDate != "2026-12-01" ||
		set.AccommodationType != "resort" || set.TransportMode != "train" {
		t.Errorf("defaults overwrote explicit fields: %+v", set)
	}
}

func TestCuisinePreference(t *testing.T) {
	if got := cuisinePreference(PlanRequest{SpecialRequirements: "strictly Vegetarian meals"}); got != "vegetarian" {
		t.Errorf("vegetarian requirement = %q, want vegetarian", got)
	}
	if got := cuisinePreference(PlanRequest{Interests: []string{"vegan", "beaches"}}); got != "vegetarian" {
		t.Errorf("vegan interest = %q, want vegetarian", got)
	}
	if got := cuisinePreference(PlanRequest{Interests: []string{"beaches"}}); got != "local" {
		t.Errorf("plain trip = %q, want local", got)
	}
}

func TestFlightSummaryLines(t *testing.T) {
	rs := travel.ResultSet{Options: []travel.Option{
		{Name: "IndiGo 6E-204", Price: 5000, DurationMinutes: fp(130), Refundable: true},
		{Name: "Vistara UK-810", Price: 6500},
		{Name: "Air India AI-883", Price: 7000},
		{Name: "SpiceJet SG-401", Price: 7500},
	}}

	lines := flightSummary(rs)
	if len(lines) != 3 {
		t.Fatalf("got %d summary lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "IndiGo 6E-204") || !strings.Contains(lines[0], "₹5000 per person") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[0], "2h 10m") {
		t.Errorf("line 1 should include the duration, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "refundable") {
		t.Errorf("line 1 should flag refundability, got %q", lines[0])
	}
	if strings.Contains(lines[1], "refundable") {
		t.Errorf("line 2 should not be refundable, got %q", lines[1])
	}
}

func TestBestOption(t *testing.T) {
	if got := bestOption(travel.ResultSet{}); got != nil {
		t.Errorf("empty set best option = %v, want nil", got)
	}

	rs := travel.ResultSet{Options: []travel.Option{{Name: "A"}, {Name: "B"}}}
	got := bestOption(rs)
	if got == nil || got.Name != "A" {
		t.Fatalf("best option = %+v, want the first", got)
	}
	got.Name = "mutated"
	if rs.Options[0].Name != "A" {
		t.Error("bestOption should return a copy, not alias the slice")
	}
}

func TestBuildRecommendations(t *testing.T) {
	live := travel.ResultSet{Status: travel.StatusLiveData}
	sample := travel.ResultSet{Status: travel.StatusSampleData}
	dry := WeatherReport{
		Current:  CurrentWeather{Condition: "Sunny"},
		Forecast: []ForecastDay{{RainChance: 20}, {RainChance: 35}},
		Packing:  []string{"Sunscreen"},
	}
	wet := WeatherReport{
		Current:  CurrentWeather{Condition: "Heavy showers"},
		Forecast: []ForecastDay{{RainChance: 80}},
	}

	recs := buildRecommendations(sample, live, dry, CostBreakdown{WithinBudget: true})
	if !strings.Contains(recs[0], "estimates") {
		t.Errorf("sample data should lead with the estimate warning, got %q", recs[0])
	}
	joined := strings.Join(recs, " | ")
	if !strings.Contains(joined, "room to spare") {
		t.Errorf("within-budget plan should say so, got %q", joined)
	}
	if !strings.Contains(joined, "sunscreen") {
		t.Errorf("dry weather should surface the packing tip, got %q", joined)
	}
	if len(recs) > 6 {
		t.Errorf("got %d recommendations, want at most 6", len(recs))
	}

	recs = buildRecommendations(live, live, wet, CostBreakdown{WithinBudget: false})
	joined = strings.Join(recs, " | ")
	if strings.Contains(recs[0], "estimates") {
		t.Errorf("live data should not warn about estimates, got %q", recs[0])
	}
	if !strings.Contains(joined, "over budget") {
		t.Errorf("blown budget should be called out, got %q", joined)
	}
	if !strings.Contains(joined, "rain protection") {
		t.Errorf("rainy forecast should suggest rain gear, got %q", joined)
	}
}
