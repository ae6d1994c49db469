package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripweaver/database"
	"tripweaver/services"
	"tripweaver/travel"
)

type SearchRequest struct {
	Category          string  `json:"category" binding:"required,oneof=hotel flight"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination" binding:"required"`
	DepartureDate     string  `json:"departure_date"`
	ReturnDate        string  `json:"return_date"`
	Nights            int     `json:"nights" binding:"omitempty,gte=1,lte=60"`
	Travelers         int     `json:"travelers" binding:"omitempty,gte=1,lte=20"`
	Budget            float64 `json:"budget" binding:"omitempty,gt=0"`
	Currency          string  `json:"currency"`
	AccommodationType string  `json:"accommodation_type" binding:"omitempty,oneof=hostel hotel resort"`
}

type SearchResponse struct {
	SearchID string `json:"search_id"`
	travel.ResultSet
}

// SearchHandler runs a single-category option search: generate candidates
// (live when possible), normalize, rank, persist, respond.
func SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Travelers <= 0 {
		req.Travelers = 1
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}
	req.Currency = strings.ToUpper(req.Currency)

	// Validate dates when present
	var depDate, retDate time.Time
	var err error
	if req.DepartureDate != "" {
		depDate, err = time.Parse("2006-01-02", req.DepartureDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departure date format. Use YYYY-MM-DD"})
			return
		}
	}
	if req.ReturnDate != "" {
		retDate, err = time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return date format. Use YYYY-MM-DD"})
			return
		}
		if req.DepartureDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Return date requires a departure date"})
			return
		}
		if !retDate.After(depDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Return date must be after departure date"})
			return
		}
	}

	// The budget is stated in the request currency; searches price in INR.
	budgetINR := req.Budget
	if req.Budget > 0 && req.Currency != "INR" {
		budgetINR, err = services.Convert(req.Budget, req.Currency, "INR")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency: " + req.Currency})
			return
		}
	}

	var set travel.GeneratedSet
	switch req.Category {
	case travel.CategoryFlight:
		if req.Origin == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Origin is required for flight searches"})
			return
		}
		set = services.FlightOptions(services.FlightQuery{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
			ReturnDate:    req.ReturnDate,
			Travelers:     req.Travelers,
			Budget:        budgetINR,
		})

	case travel.CategoryHotel:
		nights := req.Nights
		if nights == 0 && req.DepartureDate != "" && req.ReturnDate != "" {
			nights = int(retDate.Sub(depDate).Hours() / 24)
		}
		if nights <= 0 {
			nights = 1
		}
		var perNight float64
		if budgetINR > 0 {
			// Stay gets the accommodation share of a whole-trip budget
			perNight = services.AllocateBudget(budgetINR).Accommodation / float64(nights)
		}
		set = services.HotelOptions(services.HotelQuery{
			Destination:    req.Destination,
			CheckIn:        req.DepartureDate,
			Nights:         nights,
			Travelers:      req.Travelers,
			Type:           req.AccommodationType,
			BudgetPerNight: perNight,
		})
	}

	result := travel.BuildResultSet(set.Records, req.Category, "INR", set.Status, travel.DefaultWeights())

	resultJSON, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode results"})
		return
	}

	searchID := uuid.New().String()
	if err := database.SaveSearch(&database.Search{
		ID:            searchID,
		Category:      req.Category,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Travelers:     req.Travelers,
		Budget:        req.Budget,
		Currency:      req.Currency,
		Status:        result.Status,
		ResultJSON:    string(resultJSON),
	}); err != nil {
		log.Printf("❌ Failed to save search: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save search"})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{SearchID: searchID, ResultSet: result})
}

// GetSearchHandler returns a stored search with its ranked results.
func GetSearchHandler(c *gin.Context) {
	id := c.Param("id")

	search, err := database.GetSearch(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Search not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"search_id":      search.ID,
		"category":       search.Category,
		"origin":         search.Origin,
		"destination":    search.Destination,
		"departure_date": search.DepartureDate,
		"return_date":    search.ReturnDate,
		"travelers":      search.Travelers,
		"budget":         search.Budget,
		"currency":       search.Currency,
		"status":         search.Status,
		"results":        json.RawMessage(search.ResultJSON),
		"created_at":     search.CreatedAt,
	})
}

type RankRequest struct {
	Category string             `json:"category" binding:"required,oneof=hotel flight"`
	Currency string             `json:"currency"`
	Options  []travel.RawOption `json:"options" binding:"required"`
	Weights  *RankWeights       `json:"weights"`
}

type RankWeights struct {
	Price     float64 `json:"price" binding:"gte=0"`
	Rating    float64 `json:"rating" binding:"gte=0"`
	Amenities float64 `json:"amenities" binding:"gte=0"`
}

// RankHandler normalizes and ranks caller-supplied options without touching
// any provider or the database.
func RankHandler(c *gin.Context) {
	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	w := travel.DefaultWeights()
	if req.Weights != nil {
		if req.Weights.Price+req.Weights.Rating+req.Weights.Amenities <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Weights must not all be zero"})
			return
		}
		w.Price = req.Weights.Price
		w.Rating = req.Weights.Rating
		w.Amenities = req.Weights.Amenities
	}

	result := travel.BuildResultSet(req.Options, req.Category, strings.ToUpper(req.Currency), travel.StatusLiveData, w)
	c.JSON(http.StatusOK, result)
}
