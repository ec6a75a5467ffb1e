package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const twoDayResponse = `{
	"daily": {
		"time": ["2025-05-31", "2025-06-01"],
		"temperature_2m_max": [37.5, 40.0],
		"temperature_2m_min": [26.0, 30.0],
		"weathercode": [0, 61]
	}
}`

func TestTomorrow(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":      r.URL.Query().Get("latitude"),
			"forecast_days": r.URL.Query().Get("forecast_days"),
			"timezone":      r.URL.Query().Get("timezone"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoDayResponse))
	}))
	defer srv.Close()

	wx, err := NewWithBaseURL(srv.URL).Tomorrow(context.Background(), 18.6298, 73.7997, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("tomorrow: %v", err)
	}
	if wx.Date != "2025-06-01" {
		t.Errorf("date = %q, want tomorrow's entry", wx.Date)
	}
	if wx.TempHigh != 40.0 || wx.TempLow != 30.0 {
		t.Errorf("temps = %v/%v", wx.TempHigh, wx.TempLow)
	}
	if wx.Condition != "Rain" {
		t.Errorf("condition = %q, want Rain", wx.Condition)
	}
	if gotQuery["forecast_days"] != "2" {
		t.Errorf("forecast_days = %q", gotQuery["forecast_days"])
	}
	if gotQuery["timezone"] != "Asia/Kolkata" {
		t.Errorf("timezone = %q", gotQuery["timezone"])
	}
	if gotQuery["latitude"] != "18.6298" {
		t.Errorf("latitude = %q", gotQuery["latitude"])
	}
}

func TestTomorrowUnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily": {"time": ["a", "b"], "temperature_2m_max": [1, 2], "temperature_2m_min": [0, 1], "weathercode": [0, 42]}}`))
	}))
	defer srv.Close()

	wx, err := NewWithBaseURL(srv.URL).Tomorrow(context.Background(), 0, 0, "UTC")
	if err != nil {
		t.Fatalf("tomorrow: %v", err)
	}
	if wx.Condition != "Unknown" {
		t.Errorf("condition = %q, want Unknown", wx.Condition)
	}
}

func TestTomorrowShortResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily": {"time": ["2025-05-31"], "temperature_2m_max": [37.5], "temperature_2m_min": [26.0], "weathercode": [0]}}`))
	}))
	defer srv.Close()

	if _, err := NewWithBaseURL(srv.URL).Tomorrow(context.Background(), 0, 0, "UTC"); err == nil {
		t.Fatalf("expected error for a response without tomorrow's entry")
	}
}

func TestTomorrowServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewWithBaseURL(srv.URL).Tomorrow(context.Background(), 0, 0, "UTC"); err == nil {
		t.Fatalf("expected error for gateway failure")
	}
}
