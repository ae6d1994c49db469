package services

import (
	"strings"
	"testing"
)

func TestSuggestAttractionsDefaults(t *testing.T) {
	attractions := SuggestAttractions("Jaipur", nil)

	if len(attractions) == 0 || len(attractions) > maxAttractions {
		t.Fatalf("got %d attractions, want 1-%d", len(attractions), maxAttractions)
	}

	// No interests means the culture pool leads.
	if attractions[0].Category != "culture" {
		t.Errorf("default lead category = %s, want culture", attractions[0].Category)
	}

	names := make(map[string]bool)
	for i, a := range attractions {
		if names[a.Name] {
			t.Errorf("attraction %d: duplicate name %q", i, a.Name)
		}
		names[a.Name] = true

		if !strings.Contains(a.Name, "Jaipur") {
			t.Errorf("attraction %d: name %q does not mention the destination", i, a.Name)
		}
		if a.Rating < 3.8 || a.Rating > 4.9 {
			t.Errorf("attraction %d: rating %v outside 3.8-4.9", i, a.Rating)
		}
		if a.EntryFee != 0 && (a.EntryFee < 50 || a.EntryFee > 600) {
			t.Errorf("attraction %d: entry fee %v outside the expected band", i, a.EntryFee)
		}
		if a.DurationHours < 1 || a.DurationHours > 4 {
			t.Errorf("attraction %d: duration %vh outside 1-4", i, a.DurationHours)
		}
		if a.BestTime == "" {
			t.Errorf("attraction %d: missing best time", i)
		}
	}
}

func TestSuggestAttractionsInterestMapping(t *testing.T) {
	attractions := SuggestAttractions("Manali", []string{"Trekking", "wildlife"})

	if len(attractions) == 0 {
		t.Fatal("no attractions for mapped interests")
	}
	if attractions[0].Category != "adventure" {
		t.Errorf("lead category = %s, want adventure for a trekking interest", attractions[0].Category)
	}

	seen := make(map[string]bool)
	for _, a := range attractions {
		seen[a.Category] = true
	}
	if !seen["adventure"] {
		t.Error("adventure interest produced no adventure attractions")
	}
}

func TestSuggestAttractionsUnknownInterest(t *testing.T) {
	attractions := SuggestAttractions("Goa", []string{"quantum computing"})

	if len(attractions) == 0 {
		t.Fatal("unknown interests should still fall back to culture")
	}
	if attractions[0].Category != "culture" {
		t.Errorf("lead category = %s, want the culture fallback", attractions[0].Category)
	}
}

func TestSuggestAttractionsCapped(t *testing.T) {
	attractions := SuggestAttractions("Delhi", []string{"history", "adventure", "nature", "food", "art"})
	if len(attractions) > maxAttractions {
		t.Fatalf("got %d attractions, cap is %d", len(attractions), maxAttractions)
	}
}
