package services

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripweaver/travel"
)

// FlightQuery describes a flight search. Origin and Destination accept city
// names or IATA codes.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // empty = one-way
	Travelers     int
	Budget        float64 // whole-trip INR; 0 = no cap
}

// FlightOptions produces flight candidates: live Amadeus offers when
// possible, synthesized samples otherwise. Flights above 40% of the trip
// budget are dropped unless that would leave nothing to show.
func FlightOptions(q FlightQuery) travel.GeneratedSet {
	client := GetAmadeusClient()

	originCode, originOK := CityToIATA(q.Origin)
	destCode, destOK := CityToIATA(q.Destination)

	if client.Configured() && originOK && destOK && q.DepartureDate != "" && q.ReturnDate != "" {
		liveFlights, err := client.SearchFlights(originCode, destCode, q.DepartureDate, q.ReturnDate, max(q.Travelers, 1))
		switch {
		case err != nil:
			log.Printf("⚠️  Amadeus flight search failed: %v — using sample data", err)
		case len(liveFlights) == 0:
			log.Println("⚠️  Amadeus returned 0 flights — using sample data")
		default:
			log.Printf("✅ Amadeus: %d live flights found for %s → %s", len(liveFlights), originCode, destCode)
			flights := AffordableFlights(liveFlights, q.Budget)
			return travel.GeneratedSet{Records: flightsToRaw(flights, originCode, destCode), Status: travel.StatusLiveData}
		}
	}

	flights := AffordableFlights(GenerateFlightsSample(q), q.Budget)
	return travel.GeneratedSet{Records: flightsToRaw(flights, originCode, destCode), Status: travel.StatusSampleData}
}

// AffordableFlights drops flights costing more than 40% of the trip budget.
// When every flight fails the cut, the original list is kept — an expensive
// option beats an empty screen.
func AffordableFlights(flights []Flight, budget float64) []Flight {
	if budget <= 0 {
		return flights
	}
	priceCap := budget * 0.40

	affordable := make([]Flight, 0, len(flights))
	for _, f := range flights {
		if f.Price <= priceCap {
			affordable = append(affordable, f)
		}
	}
	if len(affordable) == 0 {
		log.Printf("⚠️  No flights within 40%% of budget (₹%.0f) — keeping all %d options", priceCap, len(flights))
		return flights
	}
	return affordable
}

// ─── City Resolution ──────────────────────────────────────────────────────────

var cityCodes = map[string]string{
	"delhi": "DEL", "new delhi": "DEL",
	"mumbai": "BOM", "bombay": "BOM",
	"bangalore": "BLR", "bengaluru": "BLR",
	"chennai":   "MAA",
	"kolkata":   "CCU",
	"hyderabad": "HYD",
	"goa":       "GOI", "panaji": "GOI",
	"jaipur": "JAI",
	"kochi":  "COK", "cochin": "COK",
	"pune":      "PNQ",
	"amritsar":  "ATQ",
	"udaipur":   "UDR",
	"varanasi":  "VNS",
	"dubai":     "DXB",
	"singapore": "SIN",
	"bangkok":   "BKK",
	"london":    "LHR",
	"paris":     "CDG",
	"new york":  "JFK",
	"tokyo":     "NRT",
	"bali":      "DPS", "denpasar": "DPS",
	"kathmandu": "KTM",
	"colombo":   "CMB",
}

// CityToIATA resolves a city name or passes through an already-valid IATA
// code. The second return is false when the place is unknown, which routes
// the search to the sample path.
func CityToIATA(place string) (string, bool) {
	place = strings.TrimSpace(place)
	if len(place) == 3 && place == strings.ToUpper(place) {
		return place, true
	}
	if code, ok := cityCodes[strings.ToLower(place)]; ok {
		return code, true
	}
	return "", false
}

// ─── Sample Data ──────────────────────────────────────────────────────────────

type routeInfo struct {
	basePrice float64 // round-trip economy, INR
	duration  int     // minutes, one leg
}

var sampleRoutes = map[string]routeInfo{
	"DEL-BOM": {8500, 130},
	"DEL-GOI": {9500, 155},
	"DEL-BLR": {10000, 165},
	"DEL-MAA": {10500, 170},
	"DEL-CCU": {9000, 140},
	"DEL-JAI": {5500, 60},
	"DEL-COK": {11500, 195},
	"BOM-GOI": {6000, 75},
	"BOM-BLR": {7000, 95},
	"BOM-HYD": {6500, 80},
	"DEL-DXB": {18500, 225},
	"BOM-DXB": {16500, 190},
	"DEL-SIN": {22000, 330},
	"DEL-BKK": {19500, 260},
	"DEL-LHR": {48000, 560},
	"BOM-LHR": {50000, 590},
	"DEL-KTM": {13500, 105},
	"DEL-DPS": {28500, 420},
}

type airlineOption struct {
	name     string
	code     string
	priceMod float64
	stops    int
}

var sampleAirlines = []airlineOption{
	{"IndiGo", "6E", 0.85, 0},
	{"Air India", "AI", 1.00, 0},
	{"Vistara", "UK", 1.15, 0},
	{"Akasa Air", "QP", 0.78, 0},
	{"SpiceJet", "SG", 0.80, 1},
	{"AIX Connect", "I5", 0.70, 1},
	{"Emirates", "EK", 1.45, 0},
	{"Qatar Airways", "QR", 1.40, 1},
	{"Singapore Airlines", "SQ", 1.50, 0},
	{"Thai Airways", "TG", 1.25, 1},
}

var flightFeaturePool = []string{
	"Cabin baggage 7kg", "Check-in baggage 15kg", "Web check-in",
	"Meal included", "Extra legroom", "In-flight entertainment",
	"USB charging", "Priority boarding",
}

var departureHours = []int{6, 8, 9, 11, 13, 15, 17, 19, 21}

// GenerateFlightsSample synthesizes 8–15 plausible flight records for the
// route, spread across carriers and price tiers. Same schema as a live
// record; downstream code cannot tell the difference.
func GenerateFlightsSample(q FlightQuery) []Flight {
	originCode, ok := CityToIATA(q.Origin)
	if !ok {
		originCode = "DEL"
	}
	destCode, ok := CityToIATA(q.Destination)
	if !ok {
		destCode = "GOI"
	}

	info, ok := sampleRoutes[originCode+"-"+destCode]
	if !ok {
		if rev, revOK := sampleRoutes[destCode+"-"+originCode]; revOK {
			info = rev
		} else {
			info = routeInfo{12000, 180}
		}
	}

	depDate, err := time.Parse("2006-01-02", q.DepartureDate)
	if err != nil {
		depDate = time.Now().AddDate(0, 0, 7)
	}
	retDate, retErr := time.Parse("2006-01-02", q.ReturnDate)
	roundTrip := retErr == nil

	count := 8 + rand.Intn(8) // 8–15
	flights := make([]Flight, 0, count)

	for i := 0; i < count; i++ {
		opt := sampleAirlines[i%len(sampleAirlines)]

		price := info.basePrice * opt.priceMod * (0.92 + rand.Float64()*0.16)
		tier := 1
		if rand.Intn(8) == 0 {
			tier = 2 // the odd premium-economy fare
			price *= 1.6
		}
		price = math.Round(price/50) * 50

		dur := info.duration
		if opt.stops > 0 {
			dur += 90
		}

		depHour := departureHours[(i*3+rand.Intn(3))%len(departureHours)]
		depTime := time.Date(depDate.Year(), depDate.Month(), depDate.Day(), depHour, 15*rand.Intn(4), 0, 0, time.UTC)
		arrTime := depTime.Add(time.Duration(dur) * time.Minute)

		f := Flight{
			ID:              uuid.New().String(),
			Price:           price,
			Airline:         opt.name,
			AirlineCode:     opt.code,
			FlightNumber:    fmt.Sprintf("%s-%d", opt.code, 100+rand.Intn(900)),
			DepartureTime:   depTime.Format(time.RFC3339),
			ArrivalTime:     arrTime.Format(time.RFC3339),
			Duration:        formatDurationMin(dur),
			DurationMinutes: dur,
			Stops:           opt.stops,
			Tier:            tier,
			Features:        pickAmenities(flightFeaturePool),
			Refundable:      rand.Intn(5) < 2,
			Currency:        "INR",
		}

		if roundTrip {
			retHour := departureHours[(i*2+rand.Intn(3))%len(departureHours)]
			retDepTime := time.Date(retDate.Year(), retDate.Month(), retDate.Day(), retHour, 15*rand.Intn(4), 0, 0, time.UTC)
			retArrTime := retDepTime.Add(time.Duration(dur) * time.Minute)
			f.ReturnDepartureTime = retDepTime.Format(time.RFC3339)
			f.ReturnArrivalTime = retArrTime.Format(time.RFC3339)
			f.ReturnDuration = formatDurationMin(dur)
			f.ReturnStops = opt.stops
		}

		flights = append(flights, f)
	}

	return flights
}

// flightsToRaw converts typed flight records into the raw shape the option
// pipeline normalizes.
func flightsToRaw(flights []Flight, originCode, destCode string) []travel.RawOption {
	route := "N/A"
	if originCode != "" && destCode != "" {
		route = originCode + " → " + destCode
	}

	raw := make([]travel.RawOption, 0, len(flights))
	for _, f := range flights {
		name := f.Airline
		if f.FlightNumber != "" {
			name = f.Airline + " " + f.FlightNumber
		}
		r := travel.RawOption{
			"id":         f.ID,
			"name":       name,
			"price":      f.Price,
			"tier":       f.Tier,
			"features":   f.Features,
			"refundable": f.Refundable,
			"location":   route,
			"currency":   f.Currency,
		}
		if f.DurationMinutes > 0 {
			r["duration_minutes"] = f.DurationMinutes
		}
		raw = append(raw, r)
	}
	return raw
}
