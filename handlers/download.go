package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripweaver/database"
	"tripweaver/services"
)

// DownloadHandler serves the itinerary PDF for a completed session. The PDF
// is rendered on first download and stored on the session, so repeat
// downloads are a byte-for-byte replay.
func DownloadHandler(c *gin.Context) {
	id := c.Param("id")

	session, err := database.GetSession(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if session.Status != database.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Itinerary is not ready — session status is " + session.Status})
		return
	}

	pdfData := session.PDFData
	if len(pdfData) == 0 {
		var itinerary services.Itinerary
		if err := json.Unmarshal([]byte(session.ItineraryJSON), &itinerary); err != nil {
			log.Printf("❌ Session %s has unreadable itinerary JSON: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored itinerary could not be read"})
			return
		}

		pdfData, err = services.BuildItineraryPDF(&itinerary)
		if err != nil {
			log.Printf("❌ PDF generation failed for session %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}

		if err := database.SaveSessionPDF(id, pdfData); err != nil {
			// Serve the bytes anyway; the next download regenerates.
			log.Printf("⚠️  Failed to store PDF for session %s: %v", id, err)
		} else {
			log.Printf("✅ PDF generated for session %s (%d bytes)", id, len(pdfData))
		}
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=tripweaver-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfData)
}

func HealthHandler(c *gin.Context) {
	dbStatus := "ok"
	if database.DB == nil {
		dbStatus = "not initialized"
	} else if err := database.DB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	resp := gin.H{
		"status":   "ok",
		"service":  "TripWeaver API",
		"database": dbStatus,
		"ai":       services.GetAIClient().Backend(),
		"amadeus":  services.GetAmadeusClient().Configured(),
	}

	if dbStatus == "ok" {
		if stats, err := database.SessionStats(); err == nil {
			resp["sessions"] = stats
		}
	}

	c.JSON(http.StatusOK, resp)
}
