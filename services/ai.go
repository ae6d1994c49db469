package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"tripweaver/travel"
)

// AIClient generates the itinerary's narrative summary. Gemini is preferred,
// HuggingFace inference is the second choice, and when neither key is set the
// planner falls back to deterministic text.
type AIClient struct {
	gemini      *genai.Client
	geminiModel string

	hfKey      string
	hfModel    string
	httpClient *http.Client
}

var aiClient *AIClient

const defaultGeminiModel = "gemini-2.0-flash"

func InitAI() {
	c := &AIClient{
		geminiModel: getenvDefault("GEMINI_MODEL", defaultGeminiModel),
		hfKey:       os.Getenv("HUGGINGFACE_API_KEY"),
		hfModel:     getenvDefault("HF_MODEL", "mistralai/Mistral-7B-Instruct-v0.3"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Printf("⚠️ Gemini client init failed: %v", err)
		} else {
			c.gemini = client
			log.Println("✅ AI (Gemini) initialized with model:", c.geminiModel)
		}
	}

	if c.gemini == nil {
		if c.hfKey != "" {
			log.Println("✅ AI (HuggingFace) initialized with model:", c.hfModel)
		} else {
			log.Println("⚠️ No AI key set (GEMINI_API_KEY / HUGGINGFACE_API_KEY) — trip summaries will use fallback text")
		}
	}

	aiClient = c
}

func GetAIClient() *AIClient {
	return aiClient
}

func (c *AIClient) Configured() bool {
	return c != nil && (c.gemini != nil || c.hfKey != "")
}

// Backend names the active narrative source for the health endpoint.
func (c *AIClient) Backend() string {
	switch {
	case c == nil:
		return "none"
	case c.gemini != nil:
		return "gemini"
	case c.hfKey != "":
		return "huggingface"
	default:
		return "none"
	}
}

// SummaryInput carries everything the narrative needs: the trip frame plus
// the already-ranked flight and hotel sets.
type SummaryInput struct {
	Destination string
	Origin      string
	Days        int
	Travelers   int
	Budget      float64
	Interests   []string
	Flights     travel.ResultSet
	Hotels      travel.ResultSet
}

// TripSummary asks the configured AI backend for a short narrative. Callers
// must treat errors as non-fatal and fall back to FallbackSummary.
func (c *AIClient) TripSummary(ctx context.Context, in SummaryInput) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("no AI backend configured")
	}

	if c.gemini != nil {
		text, err := c.geminiSummary(ctx, in)
		if err == nil {
			return text, nil
		}
		log.Printf("⚠️ Gemini summary failed: %v", err)
		if c.hfKey == "" {
			return "", err
		}
	}

	return c.huggingFaceSummary(in)
}

func (c *AIClient) geminiSummary(ctx context.Context, in SummaryInput) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.6),
	}

	resp, err := c.gemini.Models.GenerateContent(ctx, c.geminiModel, genai.Text(buildTripPrompt(in)), config)
	if err != nil {
		return "", err
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return strings.TrimSpace(part.Text), nil
			}
		}
	}
	return "", fmt.Errorf("empty response from Gemini")
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func (c *AIClient) huggingFaceSummary(in SummaryInput) (string, error) {
	if c.hfKey == "" {
		return "", fmt.Errorf("huggingface API key not configured")
	}

	reqBody := hfRequest{
		Inputs: "[INST] " + buildTripPrompt(in) + " [/INST]",
		Parameters: hfParameters{
			MaxNewTokens:   400,
			Temperature:    0.6,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://api-inference.huggingface.co/models/%s", c.hfModel)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.hfKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", fmt.Errorf("AI model is loading, please retry in a few seconds")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HuggingFace API error (%d): %s", resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %v", err)
	}
	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return "", fmt.Errorf("empty response from AI")
	}
	return strings.TrimSpace(hfResp[0].GeneratedText), nil
}

func buildTripPrompt(in SummaryInput) string {
	dataNote := ""
	if in.Flights.Status == travel.StatusSampleData || in.Hotels.Status == travel.StatusSampleData {
		dataNote = " Note: prices are estimated — real-time data unavailable."
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a helpful travel assistant. Analyze these options and write a brief, honest trip summary.

Trip: %s → %s | %d days | %d traveler(s) | Budget: ₹%.0f%s
`, in.Origin, in.Destination, in.Days, in.Travelers, in.Budget, dataNote)

	if len(in.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(in.Interests, ", "))
	}

	b.WriteString("\nFlights (ranked best-value first):\n")
	for i, f := range in.Flights.Options {
		if i >= 5 {
			break
		}
		duration := ""
		if f.DurationMinutes != nil {
			duration = ", " + formatDurationMin(int(*f.DurationMinutes))
		}
		fmt.Fprintf(&b, "  %d. %s — ₹%.0f per person%s\n", i+1, f.Name, f.Price, duration)
	}

	b.WriteString("\nHotels (ranked best-value first):\n")
	for i, h := range in.Hotels.Options {
		if i >= 5 {
			break
		}
		rating := "unrated"
		if h.Rating != nil {
			rating = fmt.Sprintf("%.1f/5", *h.Rating)
		}
		fmt.Fprintf(&b, "  %d. %s — ₹%.0f/night (%s) %s\n", i+1, h.Name, h.PricePerNight, rating, h.Location)
	}

	b.WriteString(`
In 180 words or fewer: recommend one flight and one hotel with short reasons, say how the spending tracks the budget, and end with one practical tip for the destination. Be direct.`)

	return b.String()
}

// FallbackSummary produces deterministic narrative text when no AI backend is
// available or the call fails. It leans on the ranked sets: the first option
// of each is already the best-value pick.
func FallbackSummary(in SummaryInput) string {
	var parts []string

	var flightCost, stayCost float64
	if len(in.Flights.Options) > 0 {
		f := in.Flights.Options[0]
		flightCost = f.Price * float64(max(in.Travelers, 1))
		parts = append(parts, fmt.Sprintf("Best-value flight: %s at ₹%.0f per person.", f.Name, f.Price))
	}
	if len(in.Hotels.Options) > 0 {
		h := in.Hotels.Options[0]
		stayCost = h.TotalPrice
		rating := ""
		if h.Rating != nil {
			rating = fmt.Sprintf(", rated %.1f/5", *h.Rating)
		}
		parts = append(parts, fmt.Sprintf("Top stay: %s at ₹%.0f/night%s (₹%.0f for the trip).",
			h.Name, h.PricePerNight, rating, h.TotalPrice))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("A %d-day trip to %s for %d traveler(s). No priced options were available — treat the budget of ₹%.0f as your planning guide.",
			in.Days, in.Destination, max(in.Travelers, 1), in.Budget)
	}

	if total := flightCost + stayCost; total > 0 && in.Budget > 0 {
		if total <= in.Budget {
			parts = append(parts, fmt.Sprintf("Flights and stay come to roughly ₹%.0f — within your ₹%.0f budget, leaving room for food and activities.",
				total, in.Budget))
		} else {
			parts = append(parts, fmt.Sprintf("Flights and stay come to roughly ₹%.0f, which already exceeds your ₹%.0f budget — consider fewer nights or a simpler stay.",
				total, in.Budget))
		}
	}

	if in.Flights.Status == travel.StatusSampleData || in.Hotels.Status == travel.StatusSampleData {
		parts = append(parts, "Prices are estimates — verify fares and room rates before booking.")
	}

	return strings.Join(parts, " ")
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
