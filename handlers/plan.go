package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripweaver/database"
	"tripweaver/services"
	"tripweaver/travel"
)

// PlanTripHandler starts an async planning run and returns the session ID the
// client polls for progress.
func PlanTripHandler(c *gin.Context) {
	var req services.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.StartDate != "" {
		if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format. Use YYYY-MM-DD"})
			return
		}
	}

	req.ApplyDefaults()

	requestJSON, err := json.Marshal(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode request"})
		return
	}

	initial, _ := json.Marshal(database.Progress{
		CurrentStep:    "initializing",
		CompletedSteps: []string{},
		TotalSteps:     services.TotalPlanSteps,
		Percentage:     0,
	})

	sessionID := uuid.New().String()
	if err := database.CreateSession(&database.Session{
		ID:           sessionID,
		Destination:  req.Destination,
		RequestJSON:  string(requestJSON),
		Status:       database.StatusProcessing,
		ProgressJSON: string(initial),
		AgentLogs:    "[]",
	}); err != nil {
		log.Printf("❌ Failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create planning session"})
		return
	}

	go executePlan(sessionID, req)

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"status":     database.StatusProcessing,
		"message":    "Trip planning started. Poll /api/trip-status/" + sessionID + " for progress.",
	})
}

// executePlan runs the planner in the background, persisting a progress
// snapshot as each step starts. Panics become a failed session that still
// carries a rough fallback itinerary.
func executePlan(sessionID string, req services.PlanRequest) {
	var (
		completed   []string
		currentStep string
		logs        []database.AgentLog
	)

	defer func() {
		if r := recover(); r != nil {
			failWithFallback(sessionID, req, fmt.Sprintf("planning failed at %s: %v", currentStep, r))
		}
	}()

	progress := func(step, detail string) {
		if currentStep != "" {
			completed = append(completed, currentStep)
		}
		currentStep = step
		logs = append(logs, database.AgentLog{Step: step, Message: detail, Timestamp: time.Now().UTC()})

		p := database.Progress{
			CurrentStep:    step,
			CompletedSteps: append([]string{}, completed...),
			TotalSteps:     services.TotalPlanSteps,
			Percentage:     math.Round(float64(len(completed))/float64(services.TotalPlanSteps)*1000) / 10,
		}
		if err := database.UpdateSessionProgress(sessionID, p, logs); err != nil {
			log.Printf("⚠️  Failed to persist progress for session %s: %v", sessionID, err)
		}
	}

	log.Printf("🚀 Planning session %s: %s → %s (%d days)", sessionID, req.Origin, req.Destination, req.DurationDays)

	itinerary := services.BuildItinerary(req, travel.DefaultWeights(), progress)

	itineraryJSON, err := json.Marshal(itinerary)
	if err != nil {
		failWithFallback(sessionID, req, fmt.Sprintf("failed to encode itinerary: %v", err))
		return
	}

	final := database.Progress{
		CurrentStep:    "completed",
		CompletedSteps: services.PlanSteps,
		TotalSteps:     services.TotalPlanSteps,
		Percentage:     100,
	}
	if err := database.CompleteSession(sessionID, string(itineraryJSON), final); err != nil {
		log.Printf("❌ Failed to complete session %s: %v", sessionID, err)
		return
	}

	log.Printf("✅ Planning session %s completed (%s, %d days)", sessionID, req.Destination, req.DurationDays)
}

func failWithFallback(sessionID string, req services.PlanRequest, reason string) {
	log.Printf("❌ Planning session %s failed: %s", sessionID, reason)

	fallbackJSON := "{}"
	if data, err := json.Marshal(services.FallbackItinerary(req)); err == nil {
		fallbackJSON = string(data)
	}

	if err := database.FailSession(sessionID, reason, fallbackJSON); err != nil {
		log.Printf("❌ Failed to mark session %s as failed: %v", sessionID, err)
	}
}

// TripStatusHandler reports a session's progress, and the finished itinerary
// once the planner is done.
func TripStatusHandler(c *gin.Context) {
	session, err := database.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	resp := gin.H{
		"session_id": session.ID,
		"status":     session.Status,
		"progress":   json.RawMessage(session.ProgressJSON),
		"created_at": session.CreatedAt,
		"updated_at": session.UpdatedAt,
	}

	switch session.Status {
	case database.StatusCompleted:
		resp["itinerary"] = json.RawMessage(session.ItineraryJSON)
		resp["pdf_url"] = "/api/download/" + session.ID
	case database.StatusFailed:
		resp["error"] = session.ErrorText
		if session.ItineraryJSON != "" {
			resp["fallback_itinerary"] = json.RawMessage(session.ItineraryJSON)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// DebugSessionHandler exposes the full session record, agent logs included.
func DebugSessionHandler(c *gin.Context) {
	session, err := database.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	resp := gin.H{
		"session_id":  session.ID,
		"destination": session.Destination,
		"status":      session.Status,
		"request":     json.RawMessage(session.RequestJSON),
		"progress":    json.RawMessage(session.ProgressJSON),
		"agent_logs":  json.RawMessage(session.AgentLogs),
		"error":       session.ErrorText,
		"has_pdf":     len(session.PDFData) > 0,
		"created_at":  session.CreatedAt,
		"updated_at":  session.UpdatedAt,
	}
	if session.ItineraryJSON != "" {
		resp["itinerary"] = json.RawMessage(session.ItineraryJSON)
	}

	c.JSON(http.StatusOK, resp)
}

// AgentToolsHandler lists the planner's tools and their data sources.
func AgentToolsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total_tools": 6,
		"tools": []gin.H{
			{
				"name":        "flight_search",
				"description": "Finds flight options between cities and ranks them by value",
				"data_source": "Amadeus flight offers, generated samples as fallback",
			},
			{
				"name":        "hotel_search",
				"description": "Finds stays matching the accommodation type and nightly budget",
				"data_source": "Amadeus hotel offers, generated samples as fallback",
			},
			{
				"name":        "attraction_search",
				"description": "Suggests attractions matched to the traveler's interests",
				"data_source": "Curated destination pools",
			},
			{
				"name":        "restaurant_search",
				"description": "Suggests places to eat within the per-meal budget",
				"data_source": "Curated destination pools",
			},
			{
				"name":        "weather_info",
				"description": "Climate-typical outlook with packing suggestions",
				"data_source": "Climate classification",
			},
			{
				"name":                 "currency_converter",
				"description":          "Converts between supported currencies via INR",
				"data_source":          "Static reference rates",
				"supported_currencies": services.SupportedCurrencies(),
			},
		},
	})
}
