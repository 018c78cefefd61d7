// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
		empty   bool
	}{
		{OutcomeOK, "ok", false},
		{OutcomeInsufficientData, "insufficient_data", true},
		{OutcomeNoQualifyingResults, "no_qualifying_results", true},
		{Outcome(99), "unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.outcome.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.outcome.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestOutcome_JSON(t *testing.T) {
	data, err := json.Marshal(OutcomeNoQualifyingResults)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"no_qualifying_results"` {
		t.Errorf("Marshal() = %s", data)
	}

	var o Outcome
	if err := json.Unmarshal([]byte(`"insufficient_data"`), &o); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if o != OutcomeInsufficientData {
		t.Errorf("Unmarshal() = %v, want %v", o, OutcomeInsufficientData)
	}

	if err := json.Unmarshal([]byte(`"bogus"`), &o); err == nil {
		t.Error("Unmarshal(bogus) error = nil, want error")
	}
}

func TestForecastPoint_JSONDate(t *testing.T) {
	p := ForecastPoint{
		Product:  "A",
		Date:     time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		Quantity: 2.5,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"product":"A","date":"2024-01-04","quantity":2.5}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back ForecastPoint
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Date.Equal(p.Date) || back.Product != p.Product || back.Quantity != p.Quantity {
		t.Errorf("Unmarshal() = %+v, want %+v", back, p)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Code: WarnShortHistory, Message: "3 entries", Product: "A"}
	if got, want := w.String(), "short_history [A]: 3 entries"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	w = Warning{Code: WarnLowDataVolume, Message: "12 records"}
	if got, want := w.String(), "low_data_volume: 12 records"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
