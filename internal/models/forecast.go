// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// ForecastPoint is the predicted demand for one product on one future day.
type ForecastPoint struct {
	Product  string    `json:"product"`
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

type forecastPointJSON struct {
	Product  string  `json:"product"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// MarshalJSON renders Date as a calendar date (YYYY-MM-DD).
//
//nolint:gocritic // value receiver keeps ForecastPoint usable in slices
func (p ForecastPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(forecastPointJSON{
		Product:  p.Product,
		Date:     p.Date.Format(DateLayout),
		Quantity: p.Quantity,
	})
}

// UnmarshalJSON parses the calendar date form written by MarshalJSON.
func (p *ForecastPoint) UnmarshalJSON(data []byte) error {
	var raw forecastPointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return fmt.Errorf("parse forecast date: %w", err)
	}
	p.Product = raw.Product
	p.Date = date
	p.Quantity = raw.Quantity
	return nil
}
