package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type Flight struct {
	ID                  string   `json:"id"`
	Price               float64  `json:"price"`
	Airline             string   `json:"airline"`
	AirlineCode         string   `json:"airline_code,omitempty"`
	FlightNumber        string   `json:"flight_number,omitempty"`
	DepartureTime       string   `json:"departure_time"`
	ArrivalTime         string   `json:"arrival_time"`
	Duration            string   `json:"duration"`
	DurationMinutes     int      `json:"duration_minutes,omitempty"`
	Stops               int      `json:"stops"`
	Tier                int      `json:"tier,omitempty"`
	Features            []string `json:"features,omitempty"`
	Refundable          bool     `json:"refundable,omitempty"`
	ReturnDepartureTime string   `json:"return_departure_time,omitempty"`
	ReturnArrivalTime   string   `json:"return_arrival_time,omitempty"`
	ReturnDuration      string   `json:"return_duration,omitempty"`
	ReturnStops         int      `json:"return_stops,omitempty"`
	Currency            string   `json:"currency,omitempty"`
}

type Hotel struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Type               string   `json:"type,omitempty"` // hostel | hotel | resort
	Tier               int      `json:"tier,omitempty"`
	PricePerNight      float64  `json:"price_per_night"`
	TotalPrice         float64  `json:"total_price"`
	Nights             int      `json:"nights,omitempty"`
	Rating             float64  `json:"rating,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	BreakfastIncluded  bool     `json:"breakfast_included"`
	CancellationPolicy string   `json:"cancellation_policy,omitempty"`
	DistanceFromCenter string   `json:"distance_from_center,omitempty"` // e.g. "2.3 km"
	Location           string   `json:"location"`
	Currency           string   `json:"currency,omitempty"`
}

// ─── Amadeus Client ───────────────────────────────────────────────────────────

type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

var amadeusClient *AmadeusClient

// liveCache keeps parsed provider responses for a short while so repeated
// searches for the same route/dates do not burn through the API quota.
var liveCache = cache.New(10*time.Minute, 30*time.Minute)

func InitAmadeus() {
	env := os.Getenv("AMADEUS_ENV")
	baseURL := "https://api.amadeus.com" // production
	if env == "" || env == "test" {
		baseURL = "https://test.api.amadeus.com" // free test environment
	}

	amadeusClient = &AmadeusClient{
		clientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		clientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		baseURL:      baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if !amadeusClient.Configured() {
		log.Println("⚠️  AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set — flight/hotel search will use sample data")
		return
	}

	// Pre-warm the token
	if err := amadeusClient.refreshToken(); err != nil {
		log.Printf("⚠️  Amadeus token pre-warm failed: %v", err)
	} else {
		log.Println("✅ Amadeus API authenticated")
	}
}

func GetAmadeusClient() *AmadeusClient {
	return amadeusClient
}

// Configured reports whether live search credentials are present.
func (c *AmadeusClient) Configured() bool {
	return c != nil && c.clientID != "" && c.clientSecret != ""
}

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken() error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequest("POST",
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %v", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken() (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) doRequest(method, path string, body []byte) ([]byte, error) {
	token, err := c.getToken()
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	var req *http.Request
	if body != nil {
		req, err = http.NewRequest(method, c.baseURL+path, bytes.NewBuffer(body))
	} else {
		req, err = http.NewRequest(method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlights searches real-time flights via Amadeus Flight Offers Search
// API. Prices come back in INR (converted when the API answers in another
// currency). Results are cached per query for a short TTL.
func (c *AmadeusClient) SearchFlights(origin, destination, departureDate, returnDate string, adults int) ([]Flight, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("amadeus not configured")
	}

	cacheKey := fmt.Sprintf("flights:%s-%s:%s:%s:%d", origin, destination, departureDate, returnDate, adults)
	if cached, found := liveCache.Get(cacheKey); found {
		return cached.([]Flight), nil
	}

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&returnDate=%s&adults=%d&max=12&currencyCode=INR",
		url.QueryEscape(origin),
		url.QueryEscape(destination),
		url.QueryEscape(departureDate),
		url.QueryEscape(returnDate),
		adults,
	)

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	flights, err := parseFlightOffers(body)
	if err != nil {
		return nil, err
	}

	liveCache.Set(cacheKey, flights, cache.DefaultExpiration)
	return flights, nil
}

// Amadeus flight offers response structures
type amadeusFlightOffersResponse struct {
	Data []amadeusFlightOffer `json:"data"`
}

type amadeusItinerary struct {
	Duration string `json:"duration"`
	Segments []struct {
		Departure struct {
			IataCode string `json:"iataCode"`
			At       string `json:"at"`
		} `json:"departure"`
		Arrival struct {
			IataCode string `json:"iataCode"`
			At       string `json:"at"`
		} `json:"arrival"`
		CarrierCode string `json:"carrierCode"`
		Number      string `json:"number"`
	} `json:"segments"`
}

type amadeusFlightOffer struct {
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries            []amadeusItinerary `json:"itineraries"`
	ValidatingAirlineCodes []string           `json:"validatingAirlineCodes"`
}

func parseFlightOffers(data []byte) ([]Flight, error) {
	var resp amadeusFlightOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	flights := make([]Flight, 0, len(resp.Data))

	for _, offer := range resp.Data {
		if len(offer.Itineraries) < 1 {
			continue
		}

		price := parsePrice(offer.Price.GrandTotal)
		if price <= 0 {
			continue
		}
		if offer.Price.Currency != "" && offer.Price.Currency != "INR" {
			price = ConvertToINR(price, offer.Price.Currency)
		}

		outbound := offer.Itineraries[0]
		var returnIt *amadeusItinerary
		if len(offer.Itineraries) >= 2 {
			it := offer.Itineraries[1]
			returnIt = &it
		}

		airlineCode := ""
		if len(outbound.Segments) > 0 {
			airlineCode = outbound.Segments[0].CarrierCode
		} else if len(offer.ValidatingAirlineCodes) > 0 {
			airlineCode = offer.ValidatingAirlineCodes[0]
		}

		f := Flight{
			ID:              uuid.New().String(),
			Price:           price,
			Airline:         airlineName(airlineCode),
			AirlineCode:     airlineCode,
			Currency:        "INR",
			Tier:            1, // economy offers only
			Stops:           max(0, len(outbound.Segments)-1),
			Duration:        parseDuration(outbound.Duration),
			DurationMinutes: parseDurationMinutes(outbound.Duration),
		}

		if len(outbound.Segments) > 0 {
			f.DepartureTime = outbound.Segments[0].Departure.At
			f.ArrivalTime = outbound.Segments[len(outbound.Segments)-1].Arrival.At
			f.FlightNumber = airlineCode + outbound.Segments[0].Number
		}

		if returnIt != nil {
			f.ReturnStops = max(0, len(returnIt.Segments)-1)
			f.ReturnDuration = parseDuration(returnIt.Duration)
			if len(returnIt.Segments) > 0 {
				f.ReturnDepartureTime = returnIt.Segments[0].Departure.At
				f.ReturnArrivalTime = returnIt.Segments[len(returnIt.Segments)-1].Arrival.At
			}
		}

		flights = append(flights, f)
	}

	return flights, nil
}

// ─── Hotel Search ─────────────────────────────────────────────────────────────

// SearchHotels searches hotels via Amadeus Hotel List + Hotel Offers APIs.
// Returned prices are per stay in INR, with the nightly rate derived from the
// check-in/check-out span.
func (c *AmadeusClient) SearchHotels(cityCode, checkIn, checkOut string, adults int) ([]Hotel, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("amadeus not configured")
	}

	cacheKey := fmt.Sprintf("hotels:%s:%s:%s:%d", cityCode, checkIn, checkOut, adults)
	if cached, found := liveCache.Get(cacheKey); found {
		return cached.([]Hotel), nil
	}

	// Step 1: Get hotel IDs for the city
	hotelIDs, err := c.getHotelIDsByCity(cityCode)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}

	if len(hotelIDs) == 0 {
		return nil, fmt.Errorf("no hotels found for city %s", cityCode)
	}

	// Limit to first 20 IDs to avoid hitting rate limits
	if len(hotelIDs) > 20 {
		hotelIDs = hotelIDs[:20]
	}

	// Step 2: Get available offers for those hotels
	hotels, err := c.getHotelOffers(hotelIDs, checkIn, checkOut, adults)
	if err != nil {
		return nil, err
	}

	liveCache.Set(cacheKey, hotels, cache.DefaultExpiration)
	return hotels, nil
}

type amadeusHotelListResponse struct {
	Data []struct {
		HotelID  string `json:"hotelId"`
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
		GeoCode  struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"geoCode"`
		Address struct {
			CountryCode string `json:"countryCode"`
		} `json:"address"`
	} `json:"data"`
}

func (c *AmadeusClient) getHotelIDsByCity(cityCode string) ([]string, error) {
	// Amadeus uses city codes, not airport codes, for hotel search
	hotelCityCode := airportToCity(cityCode)

	path := fmt.Sprintf("/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=5&radiusUnit=KM&hotelSource=ALL",
		url.QueryEscape(hotelCityCode))

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp amadeusHotelListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}
	return ids, nil
}

type amadeusHotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				Lines       []string `json:"lines"`
				CityName    string   `json:"cityName"`
				CountryCode string   `json:"countryCode"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (c *AmadeusClient) getHotelOffers(hotelIDs []string, checkIn, checkOut string, adults int) ([]Hotel, error) {
	path := fmt.Sprintf("/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&checkOutDate=%s&adults=%d&roomQuantity=1&currency=INR&bestRateOnly=true",
		url.QueryEscape(strings.Join(hotelIDs, ",")),
		url.QueryEscape(checkIn),
		url.QueryEscape(checkOut),
		adults,
	)

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	var resp amadeusHotelOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	nights := nightsBetween(checkIn, checkOut)

	hotels := make([]Hotel, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}

		total := parsePrice(item.Offers[0].Price.Total)
		if total <= 0 {
			continue
		}
		if cur := item.Offers[0].Price.Currency; cur != "" && cur != "INR" {
			total = ConvertToINR(total, cur)
		}

		location := item.Hotel.Address.CityName
		if location == "" {
			location = item.Hotel.CityCode
		}

		h := Hotel{
			ID:            item.Hotel.HotelID,
			Name:          item.Hotel.Name,
			Type:          "hotel",
			TotalPrice:    total,
			PricePerNight: total / float64(nights),
			Nights:        nights,
			Rating:        parseRating(item.Hotel.Rating),
			Tier:          int(parseRating(item.Hotel.Rating)),
			Location:      location,
			Currency:      "INR",
		}
		hotels = append(hotels, h)
	}

	return hotels, nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// parseDuration converts ISO 8601 duration (PT5H30M) to human readable (5h 30m)
func parseDuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	hIdx := strings.Index(iso, "H")
	mIdx := strings.Index(iso, "M")
	if hIdx >= 0 {
		result += iso[:hIdx] + "h"
		iso = iso[hIdx+1:]
		mIdx = strings.Index(iso, "M")
	}
	if mIdx >= 0 && mIdx < len(iso) {
		if result != "" {
			result += " "
		}
		result += iso[:mIdx] + "m"
	}
	return result
}

// parseDurationMinutes converts ISO 8601 duration (PT5H30M) to total minutes.
func parseDurationMinutes(iso string) int {
	if iso == "" {
		return 0
	}
	iso = strings.TrimPrefix(iso, "PT")
	minutes := 0
	if hIdx := strings.Index(iso, "H"); hIdx >= 0 {
		if h, err := strconv.Atoi(iso[:hIdx]); err == nil {
			minutes += h * 60
		}
		iso = iso[hIdx+1:]
	}
	if mIdx := strings.Index(iso, "M"); mIdx >= 0 {
		if m, err := strconv.Atoi(iso[:mIdx]); err == nil {
			minutes += m
		}
	}
	return minutes
}

func formatDurationMin(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

func parsePrice(s string) float64 {
	var price float64
	fmt.Sscanf(s, "%f", &price)
	return price
}

// parseRating parses the Amadeus star rating. Zero means "no rating known";
// the option pipeline treats that as neutral rather than bad.
func parseRating(s string) float64 {
	if s == "" {
		return 0
	}
	var r float64
	fmt.Sscanf(s, "%f", &r)
	if r < 0 {
		return 0
	}
	if r > 5 {
		r = 5
	}
	return r
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func nightsBetween(checkIn, checkOut string) int {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil {
		return 1
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// airportToCity maps airport IATA codes to city codes for hotel search
func airportToCity(airport string) string {
	mapping := map[string]string{
		"DEL": "DEL", "BOM": "BOM", "BLR": "BLR", "MAA": "MAA",
		"CCU": "CCU", "HYD": "HYD", "GOI": "GOI", "COK": "COK",
		"JAI": "JAI", "PNQ": "PNQ", "ATQ": "ATQ", "IXC": "IXC",
		"LHR": "LON", "LGW": "LON", "STN": "LON", "LTN": "LON",
		"CDG": "PAR", "ORY": "PAR",
		"JFK": "NYC", "LGA": "NYC", "EWR": "NYC",
		"DXB": "DXB",
		"IST": "IST",
		"FRA": "FRA",
		"AMS": "AMS",
		"NRT": "TYO", "HND": "TYO",
		"SIN": "SIN",
		"BKK": "BKK",
		"DPS": "DPS",
		"KTM": "KTM",
		"CMB": "CMB",
	}
	if city, ok := mapping[airport]; ok {
		return city
	}
	return airport // fallback: use as-is
}

// airlineName returns full airline name from IATA code
func airlineName(code string) string {
	names := map[string]string{
		"6E": "IndiGo",
		"AI": "Air India",
		"UK": "Vistara",
		"SG": "SpiceJet",
		"I5": "AIX Connect",
		"QP": "Akasa Air",
		"G8": "Go First",
		"TK": "Turkish Airlines",
		"LH": "Lufthansa",
		"AF": "Air France",
		"BA": "British Airways",
		"EK": "Emirates",
		"QR": "Qatar Airways",
		"EY": "Etihad Airways",
		"SQ": "Singapore Airlines",
		"TG": "Thai Airways",
		"MH": "Malaysia Airlines",
		"CX": "Cathay Pacific",
		"NH": "ANA",
		"JL": "Japan Airlines",
		"UA": "United Airlines",
		"AA": "American Airlines",
		"DL": "Delta Air Lines",
		"KL": "KLM",
		"LX": "Swiss International Air Lines",
		"UL": "SriLankan Airlines",
		"FZ": "FlyDubai",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code + " Airlines"
	}
	return "Unknown Airline"
}
