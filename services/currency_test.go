package services

import (
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	got, err := Convert(100, "USD", "INR")
	if err != nil {
		t.Fatalf("Convert USD->INR: %v", err)
	}
	if got != 8300 {
		t.Errorf("100 USD = %v INR, want 8300", got)
	}

	got, err = Convert(8300, "INR", "USD")
	if err != nil {
		t.Fatalf("Convert INR->USD: %v", err)
	}
	if got != 100 {
		t.Errorf("8300 INR = %v USD, want 100", got)
	}

	// Cross rates go via INR.
	got, err = Convert(90, "EUR", "USD")
	if err != nil {
		t.Fatalf("Convert EUR->USD: %v", err)
	}
	want := 90 * 90.0 / 83.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("90 EUR = %v USD, want %v", got, want)
	}

	if _, err := Convert(10, "XYZ", "INR"); err == nil {
		t.Error("unknown source currency should error")
	}
	if _, err := Convert(10, "INR", "XYZ"); err == nil {
		t.Error("unknown target currency should error")
	}
}

func TestConvertLowercaseCodes(t *testing.T) {
	got, err := Convert(1, "usd", "inr")
	if err != nil {
		t.Fatalf("lowercase codes should work: %v", err)
	}
	if got != 83 {
		t.Errorf("1 usd = %v inr, want 83", got)
	}
}

func TestConvertToINR(t *testing.T) {
	if got := ConvertToINR(10, "USD"); got != 830 {
		t.Errorf("10 USD = %v INR, want 830", got)
	}
	if got := ConvertToINR(500, "INR"); got != 500 {
		t.Errorf("INR should be identity, got %v", got)
	}
	// Unknown currencies pass through rather than zeroing a price.
	if got := ConvertToINR(250, "XYZ"); got != 250 {
		t.Errorf("unknown currency should pass through, got %v", got)
	}
}

func TestSupportedCurrencies(t *testing.T) {
	codes := SupportedCurrencies()
	if len(codes) == 0 {
		t.Fatal("no supported currencies")
	}
	seen := make(map[string]bool)
	for _, c := range codes {
		seen[c] = true
	}
	for _, want := range []string{"INR", "USD", "EUR"} {
		if !seen[want] {
			t.Errorf("missing %s from supported currencies", want)
		}
	}
}

func TestAllocateBudget(t *testing.T) {
	a := AllocateBudget(100000)

	if a.Accommodation != 40000 {
		t.Errorf("accommodation share = %v, want 40000", a.Accommodation)
	}
	if a.Food != 25000 {
		t.Errorf("food share = %v, want 25000", a.Food)
	}
	if a.Activities != 20000 {
		t.Errorf("activities share = %v, want 20000", a.Activities)
	}
	if a.Transport != 10000 {
		t.Errorf("transport share = %v, want 10000", a.Transport)
	}
	if a.Miscellaneous != 5000 {
		t.Errorf("miscellaneous share = %v, want 5000", a.Miscellaneous)
	}

	total := a.Accommodation + a.Food + a.Activities + a.Transport + a.Miscellaneous
	if total != 100000 {
		t.Errorf("shares sum to %v, want the full budget", total)
	}
}
