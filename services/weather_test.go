package services

import (
	"testing"
	"time"
)

func TestWeatherOutlookTropical(t *testing.T) {
	report := WeatherOutlook("Goa", "2026-03-12")

	if report.Location != "Goa" {
		t.Errorf("location = %s", report.Location)
	}
	if report.Current.Climate != "tropical" {
		t.Fatalf("climate = %s, want tropical", report.Current.Climate)
	}
	if report.Current.TemperatureC < 25 || report.Current.TemperatureC > 35 {
		t.Errorf("temperature %v outside the tropical band", report.Current.TemperatureC)
	}
	if report.Current.Humidity < 60 || report.Current.Humidity > 85 {
		t.Errorf("humidity %d outside the tropical band", report.Current.Humidity)
	}
	if report.Current.Condition == "" {
		t.Error("missing current condition")
	}

	if len(report.Forecast) != 5 {
		t.Fatalf("forecast has %d days, want 5", len(report.Forecast))
	}
	for i, day := range report.Forecast {
		wantDate := time.Date(2026, 3, 12+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if day.Date != wantDate {
			t.Errorf("day %d: date %s, want %s", i, day.Date, wantDate)
		}
		if day.LowC > day.HighC {
			t.Errorf("day %d: low %v above high %v", i, day.LowC, day.HighC)
		}
		if day.RainChance < 20 || day.RainChance > 70 {
			t.Errorf("day %d: rain chance %d outside the tropical band", i, day.RainChance)
		}
	}

	if len(report.Recommendations) == 0 || len(report.Recommendations) > 5 {
		t.Errorf("got %d recommendations, want 1-5", len(report.Recommendations))
	}
	if len(report.Packing) == 0 || len(report.Packing) > 6 {
		t.Errorf("got %d packing items, want 1-6", len(report.Packing))
	}
}

func TestWeatherOutlookCold(t *testing.T) {
	report := WeatherOutlook("Shimla", "2026-12-20")

	if report.Current.Climate != "cold" {
		t.Fatalf("climate = %s, want cold", report.Current.Climate)
	}
	if report.Current.TemperatureC < 5 || report.Current.TemperatureC > 20 {
		t.Errorf("temperature %v outside the cold band", report.Current.TemperatureC)
	}
}

func TestWeatherOutlookModerateFallback(t *testing.T) {
	report := WeatherOutlook("Springfield", "2026-05-01")

	if report.Current.Climate != "moderate" {
		t.Fatalf("unknown city climate = %s, want moderate", report.Current.Climate)
	}
}

func TestWeatherOutlookCaseInsensitive(t *testing.T) {
	report := WeatherOutlook("  BANGKOK ", "2026-05-01")
	if report.Current.Climate != "tropical" {
		t.Errorf("climate lookup should trim and lower-case, got %s", report.Current.Climate)
	}
}

func TestWeatherOutlookBadDateStartsToday(t *testing.T) {
	report := WeatherOutlook("Goa", "not a date")

	today := time.Now().Format("2006-01-02")
	if len(report.Forecast) != 5 {
		t.Fatalf("forecast has %d days", len(report.Forecast))
	}
	if report.Forecast[0].Date != today {
		t.Errorf("first forecast day = %s, want today %s", report.Forecast[0].Date, today)
	}
}
