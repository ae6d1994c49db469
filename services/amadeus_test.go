package services

import (
	"testing"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		iso  string
		want string
	}{
		{"PT5H30M", "5h 30m"},
		{"PT2H", "2h"},
		{"PT45M", "45m"},
		{"PT12H5M", "12h 5m"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := parseDuration(tc.iso); got != tc.want {
			t.Errorf("parseDuration(%q) = %q, want %q", tc.iso, got, tc.want)
		}
	}
}

func TestParseDurationMinutes(t *testing.T) {
	cases := []struct {
		iso  string
		want int
	}{
		{"PT5H30M", 330},
		{"PT2H", 120},
		{"PT45M", 45},
		{"", 0},
	}
	for _, tc := range cases {
		if got := parseDurationMinutes(tc.iso); got != tc.want {
			t.Errorf("parseDurationMinutes(%q) = %d, want %d", tc.iso, got, tc.want)
		}
	}
}

func TestFormatDurationMin(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{135, "2h 15m"},
		{120, "2h"},
		{45, "0h 45m"},
	}
	for _, tc := range cases {
		if got := formatDurationMin(tc.minutes); got != tc.want {
			t.Errorf("formatDurationMin(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	if got := parsePrice("345.67"); got != 345.67 {
		t.Errorf("parsePrice(345.67) = %v", got)
	}
	if got := parsePrice("not a price"); got != 0 {
		t.Errorf("parsePrice(garbage) = %v, want 0", got)
	}
}

func TestParseRating(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"4.5", 4.5},
		{"9", 5},   // capped at the rating domain
		{"-2", 0},  // negative means unknown
		{"", 0},
	}
	for _, tc := range cases {
		if got := parseRating(tc.in); got != tc.want {
			t.Errorf("parseRating(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNightsBetween(t *testing.T) {
	if got := nightsBetween("2026-03-12", "2026-03-15"); got != 3 {
		t.Errorf("nightsBetween 12th-15th = %d, want 3", got)
	}
	if got := nightsBetween("2026-03-12", "2026-03-12"); got != 1 {
		t.Errorf("same-day stay should count 1 night, got %d", got)
	}
	if got := nightsBetween("garbage", "2026-03-15"); got != 1 {
		t.Errorf("unparseable dates should count 1 night, got %d", got)
	}
}

func TestAirportToCity(t *testing.T) {
	cases := []struct{ airport, want string }{
		{"LHR", "LON"},
		{"JFK", "NYC"},
		{"DEL", "DEL"},
		{"XYZ", "XYZ"}, // unknown codes pass through
	}
	for _, tc := range cases {
		if got := airportToCity(tc.airport); got != tc.want {
			t.Errorf("airportToCity(%s) = %s, want %s", tc.airport, got, tc.want)
		}
	}
}

func TestAirlineName(t *testing.T) {
	if got := airlineName("6E"); got != "IndiGo" {
		t.Errorf("airlineName(6E) = %q", got)
	}
	if got := airlineName("ZZ"); got != "ZZ Airlines" {
		t.Errorf("airlineName(ZZ) = %q", got)
	}
	if got := airlineName(""); got != "Unknown Airline" {
		t.Errorf("airlineName(empty) = %q", got)
	}
}

const flightOffersFixture = `{
	"data": [
		{
			"price": {"grandTotal": "8650.00", "currency": "INR"},
			"validatingAirlineCodes": ["6E"],
			"itineraries": [
				{
					"duration": "PT2H10M",
					"segments": [
						{
							"departure": {"iataCode": "DEL", "at": "2026-03-12T06:15:00"},
							"arrival": {"iataCode": "GOI", "at": "2026-03-12T08:25:00"},
							"carrierCode": "6E",
							"number": "204"
						}
					]
				},
				{
					"duration": "PT2H20M",
					"segments": [
						{
							"departure": {"iataCode": "GOI", "at": "2026-03-17T18:00:00"},
							"arrival": {"iataCode": "DEL", "at": "2026-03-17T20:20:00"},
							"carrierCode": "6E",
							"number": "381"
						}
					]
				}
			]
		},
		{
			"price": {"grandTotal": "200.00", "currency": "EUR"},
			"validatingAirlineCodes": ["LH"],
			"itineraries": [
				{
					"duration": "PT9H45M",
					"segments": [
						{
							"departure": {"iataCode": "DEL", "at": "2026-03-12T03:30:00"},
							"arrival": {"iataCode": "FRA", "at": "2026-03-12T08:00:00"},
							"carrierCode": "LH",
							"number": "761"
						},
						{
							"departure": {"iataCode": "FRA", "at": "2026-03-12T10:00:00"},
							"arrival": {"iataCode": "LHR", "at": "2026-03-12T10:45:00"},
							"carrierCode": "LH",
							"number": "904"
						}
					]
				}
			]
		},
		{
			"price": {"grandTotal": "", "currency": "INR"},
			"itineraries": [{"duration": "PT1H", "segments": []}]
		}
	]
}`

func TestParseFlightOffers(t *testing.T) {
	flights, err := parseFlightOffers([]byte(flightOffersFixture))
	if err != nil {
		t.Fatalf("parseFlightOffers: %v", err)
	}

	// The priceless third offer is dropped.
	if len(flights) != 2 {
		t.Fatalf("got %d flights, want 2", len(flights))
	}

	direct := flights[0]
	if direct.Price != 8650 {
		t.Errorf("INR price = %v, want 8650", direct.Price)
	}
	if direct.Airline != "IndiGo" || direct.AirlineCode != "6E" {
		t.Errorf("airline = %s (%s), want IndiGo (6E)", direct.Airline, direct.AirlineCode)
	}
	if direct.FlightNumber != "6E204" {
		t.Errorf("flight number = %s, want 6E204", direct.FlightNumber)
	}
	if direct.Stops != 0 {
		t.Errorf("stops = %d, want 0", direct.Stops)
	}
	if direct.Duration != "2h 10m" || direct.DurationMinutes != 130 {
		t.Errorf("duration = %s (%d min), want 2h 10m (130)", direct.Duration, direct.DurationMinutes)
	}
	if direct.ReturnDuration != "2h 20m" {
		t.Errorf("return duration = %s, want 2h 20m", direct.ReturnDuration)
	}
	if direct.Currency != "INR" {
		t.Errorf("currency = %s, want INR", direct.Currency)
	}

	// EUR offer converted at the reference rate.
	euro := flights[1]
	if euro.Price != 200*90.0 {
		t.Errorf("EUR-priced offer = %v INR, want %v", euro.Price, 200*90.0)
	}
	if euro.Stops != 1 {
		t.Errorf("two segments should mean 1 stop, got %d", euro.Stops)
	}
	if euro.Airline != "Lufthansa" {
		t.Errorf("airline = %s, want Lufthansa", euro.Airline)
	}
}
