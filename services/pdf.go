package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripweaver/travel"
)

// BuildItineraryPDF renders the finished itinerary as a branded A4 document.
// Core PDF fonts are cp1252, so money is printed as "Rs" and free text runs
// through the unicode translator.
func BuildItineraryPDF(it *Itinerary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	clean := func(s string) string {
		return tr(strings.ReplaceAll(s, "₹", "Rs "))
	}

	isSample := it.DataStatus["flights"] == travel.StatusSampleData ||
		it.DataStatus["hotels"] == travel.StatusSampleData

	// ── Watermark (sample data only) ─────────────────────────
	if isSample {
		pdf.SetTextColor(230, 230, 230)
		pdf.SetFont("Helvetica", "B", 55)
		pdf.TransformBegin()
		pdf.TransformRotate(42, 60, 200)
		pdf.Text(60, 200, "SAMPLE")
		pdf.TransformEnd()
		pdf.SetTextColor(0, 0, 0)
	}

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37) // --navy-950
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripWeaver", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67) // gold
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Assisted Trip Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Prices are estimates and subject to change. Please verify with providers before booking."
	if isSample {
		disclaimer = "ESTIMATED PRICES - live data was unavailable for this plan. This is NOT a booking confirmation. Verify all prices before booking."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, clean(value), "", 1, "L", false, 0, "")
	}

	table := func(headers []string, widths []float64, rows [][]string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(234, 238, 243)
		pdf.SetTextColor(13, 24, 37)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(20, 20, 20)
		for _, r := range rows {
			for i, cell := range r {
				pdf.CellFormat(widths[i], 7, clean(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	// ── Trip Overview ────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s - %s - %s", it.Origin, it.Destination, it.Origin))
	row("Start", fmtDateReadable(it.StartDate))
	row("Duration", fmt.Sprintf("%d days, %d traveler(s)", it.TotalDays, it.Travelers))
	row("Budget", inr(it.CostBreakdown.Budget))
	dataLine := "Live prices"
	if isSample {
		dataLine = "Estimated prices (sample data)"
	}
	row("Data", dataLine)
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Top Flights ──────────────────────────────────────────
	if len(it.Flights.Options) > 0 {
		sectionHeader("Top Flight Picks")
		rows := make([][]string, 0, 3)
		for i, f := range it.Flights.Options {
			if i >= 3 {
				break
			}
			duration := "-"
			if f.DurationMinutes != nil {
				duration = formatDurationMin(int(*f.DurationMinutes))
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1), f.Name, duration, inr(f.Price) + " pp",
			})
		}
		table([]string{"#", "Flight", "Duration", "Price"}, []float64{10, 75, 35, 50}, rows)
		pdf.Ln(4)
	}

	// ── Top Hotels ───────────────────────────────────────────
	if len(it.Accommodation.Options) > 0 {
		sectionHeader("Top Stay Picks")
		rows := make([][]string, 0, 3)
		for i, h := range it.Accommodation.Options {
			if i >= 3 {
				break
			}
			rating := "-"
			if h.Rating != nil {
				rating = fmt.Sprintf("%.1f/5", *h.Rating)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1), h.Name, rating, inr(h.PricePerNight), inr(h.TotalPrice),
			})
		}
		table([]string{"#", "Hotel", "Rating", "Per night", "Total"}, []float64{10, 70, 22, 33, 35}, rows)
		pdf.Ln(4)
	}

	// ── Daily Plan ───────────────────────────────────────────
	if len(it.DailyItinerary) > 0 {
		sectionHeader("Day by Day")
		for _, day := range it.DailyItinerary {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(13, 24, 37)
			pdf.CellFormat(120, 6, fmt.Sprintf("Day %d - %s", day.Day, fmtDateReadable(day.Date)), "", 0, "L", false, 0, "")
			pdf.SetTextColor(100, 100, 100)
			pdf.CellFormat(50, 6, "~"+inr(day.EstimatedCost), "", 1, "R", false, 0, "")

			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(40, 40, 40)
			if day.Morning != nil {
				pdf.CellFormat(170, 5, clean(fmt.Sprintf("   Morning: %s (%s, entry %s)",
					day.Morning.Name, day.Morning.Category, inr(day.Morning.EntryFee))), "", 1, "L", false, 0, "")
			}
			if day.Afternoon != nil {
				pdf.CellFormat(170, 5, clean(fmt.Sprintf("   Afternoon: %s (%s, entry %s)",
					day.Afternoon.Name, day.Afternoon.Category, inr(day.Afternoon.EntryFee))), "", 1, "L", false, 0, "")
			}
			if day.Dinner != nil {
				pdf.CellFormat(170, 5, clean(fmt.Sprintf("   Dinner: %s (%s, %s/person)",
					day.Dinner.Name, day.Dinner.Cuisine, inr(day.Dinner.AvgCost))), "", 1, "L", false, 0, "")
			}
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	// ── Cost Breakdown ───────────────────────────────────────
	sectionHeader("Cost Breakdown")
	row("Flights", inr(it.CostBreakdown.Flights))
	row("Accommodation", inr(it.CostBreakdown.Accommodation))
	row("Food", inr(it.CostBreakdown.Food))
	row("Activities", inr(it.CostBreakdown.Activities))
	row("Miscellaneous", inr(it.CostBreakdown.Miscellaneous))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, inr(it.CostBreakdown.Total), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	budgetNote := fmt.Sprintf("Within your %s budget", inr(it.CostBreakdown.Budget))
	if !it.CostBreakdown.WithinBudget {
		budgetNote = fmt.Sprintf("Over your %s budget", inr(it.CostBreakdown.Budget))
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(170, 6, budgetNote, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Recommendations ──────────────────────────────────────
	if len(it.Recommendations) > 0 {
		sectionHeader("Travel Tips")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		for _, rec := range it.Recommendations {
			pdf.MultiCell(170, 5, clean("- "+rec), "", "L", false)
		}
		pdf.Ln(3)
	}

	if it.AISummary != "" {
		sectionHeader("Trip Summary")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, clean(it.AISummary), "", "L", false)
		pdf.Ln(3)
	}

	// ── Footer ───────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripWeaver AI Trip Planner · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}

// inr prints whole-rupee amounts with digit grouping: "Rs 12,600".
func inr(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	n := len(s)
	if n <= 3 {
		return "Rs " + s
	}
	var b strings.Builder
	pre := n % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return "Rs " + b.String()
}
