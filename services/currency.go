package services

import (
	"fmt"
	"strings"
)

// ─── Currency Conversion ──────────────────────────────────────────────────────

// inrRates maps a currency code to its value in INR. Static reference rates;
// good enough for trip budgeting, not for settlement.
var inrRates = map[string]float64{
	"INR": 1,
	"USD": 83.0,
	"EUR": 90.0,
	"GBP": 105.0,
	"JPY": 0.56,
	"SGD": 62.0,
	"AUD": 55.0,
	"CAD": 61.0,
	"CHF": 92.0,
	"CNY": 11.5,
	"THB": 2.35,
	"MYR": 18.0,
	"AED": 22.6,
	"LKR": 0.28,
}

// Convert converts an amount between two supported currencies via INR.
func Convert(amount float64, from, to string) (float64, error) {
	fromRate, ok := inrRates[strings.ToUpper(from)]
	if !ok {
		return 0, fmt.Errorf("unsupported currency: %s", from)
	}
	toRate, ok := inrRates[strings.ToUpper(to)]
	if !ok {
		return 0, fmt.Errorf("unsupported currency: %s", to)
	}
	return amount * fromRate / toRate, nil
}

// ConvertToINR converts an amount to INR, passing it through unchanged when
// the currency is unknown — a search result with an odd currency should not
// vanish over a missing exchange rate.
func ConvertToINR(amount float64, code string) float64 {
	rate, ok := inrRates[strings.ToUpper(code)]
	if !ok {
		return amount
	}
	return amount * rate
}

// SupportedCurrencies lists the codes Convert understands.
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(inrRates))
	for code := range inrRates {
		codes = append(codes, code)
	}
	return codes
}

// ─── Budget Allocation ────────────────────────────────────────────────────────

// BudgetAllocation is the guideline split of a trip budget across spending
// categories.
type BudgetAllocation struct {
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Transport     float64 `json:"transport"`
	Miscellaneous float64 `json:"miscellaneous"`
}

// AllocateBudget splits a total trip budget 40/25/20/10/5 across
// accommodation, food, activities, local transport, and miscellaneous.
func AllocateBudget(total float64) BudgetAllocation {
	return BudgetAllocation{
		Accommodation: total * 0.40,
		Food:          total * 0.25,
		Activities:    total * 0.20,
		Transport:     total * 0.10,
		Miscellaneous: total * 0.05,
	}
}
