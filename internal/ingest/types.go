// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package ingest

import (
	"fmt"
	"time"
)

// Stats holds statistics about one load.
type Stats struct {
	// TotalRows is the number of data rows read, excluding the header.
	TotalRows int `json:"total_rows"`

	// Accepted is the number of rows returned.
	Accepted int `json:"accepted"`

	// Skipped is the number of invalid rows dropped in lenient mode.
	Skipped int `json:"skipped"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns how long the load took.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the read rate.
func (s *Stats) RowsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.TotalRows) / duration
}

// RowError locates an invalid row in the source file.
type RowError struct {
	// Line is the 1-based line number, counting the header as line 1.
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
