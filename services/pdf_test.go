package services

import (
	"bytes"
	"testing"

	"tripweaver/travel"
)

func TestBuildItineraryPDF(t *testing.T) {
	it := BuildItinerary(planFixture(), travel.DefaultWeights(), nil)

	data, err := BuildItineraryPDF(it)
	if err != nil {
		t.Fatalf("BuildItineraryPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Error("output has no PDF trailer")
	}
	if len(data) < 1500 {
		t.Errorf("PDF is only %d bytes, too small for a full itinerary", len(data))
	}
}

func TestBuildItineraryPDFEmptyDocument(t *testing.T) {
	data, err := BuildItineraryPDF(&Itinerary{})
	if err != nil {
		t.Fatalf("empty itinerary should still render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestINRFormatting(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Rs 0"},
		{950, "Rs 950"},
		{12600, "Rs 12,600"},
		{1250000, "Rs 1,250,000"},
		{999.6, "Rs 1,000"},
	}
	for _, tc := range cases {
		if got := inr(tc.in); got != tc.want {
			t.Errorf("inr(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFmtDateReadable(t *testing.T) {
	if got := fmtDateReadable("2026-11-10"); got != "10 Nov 2026 (Tue)" {
		t.Errorf("fmtDateReadable = %q, want 10 Nov 2026 (Tue)", got)
	}
	if got := fmtDateReadable("whenever"); got != "whenever" {
		t.Errorf("unparseable dates should pass through, got %q", got)
	}
}
