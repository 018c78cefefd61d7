// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package forecast

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/basketcast/internal/models"
)

// NumFeatures is the width of a feature vector.
const NumFeatures = 10

// FeatureNames labels the columns of a feature vector, in order.
var FeatureNames = [NumFeatures]string{
	"year", "month", "day", "day_of_week", "is_weekend",
	"product_code", "lag_1", "lag_7", "rolling_mean_7", "rolling_mean_30",
}

// Window sizes of the lag and rolling features, in series entries.
const (
	lagShort      = 1
	lagLong       = 7
	rollingShort  = 7
	rollingLong   = 30
	weekendCutoff = 5 // Saturday with Monday = 0
)

// DailyEntry is one product's total quantity on one civil day.
type DailyEntry struct {
	Date     time.Time
	Quantity float64
}

// SeriesSet holds every product's daily demand series.
type SeriesSet struct {
	// Products lists product names in order of first appearance.
	Products []string

	// Series maps a product to its date-ordered daily entries. Days without
	// sales are absent, so positions do not equal calendar offsets.
	Series map[string][]DailyEntry

	// LastDate is the latest civil day observed across all products.
	LastDate time.Time

	// Records is the number of input rows.
	Records int
}

// BuildSeries aggregates transactions into per-product daily totals.
func BuildSeries(txns []models.Transaction) *SeriesSet {
	set := &SeriesSet{
		Series:  make(map[string][]DailyEntry),
		Records: len(txns),
	}

	totals := make(map[string]map[time.Time]float64)
	for i := range txns {
		txn := &txns[i]
		byDay, ok := totals[txn.ProductName]
		if !ok {
			byDay = make(map[time.Time]float64)
			totals[txn.ProductName] = byDay
			set.Products = append(set.Products, txn.ProductName)
		}
		d := txn.Day()
		byDay[d] += txn.Quantity
		if d.After(set.LastDate) {
			set.LastDate = d
		}
	}

	for product, byDay := range totals {
		entries := make([]DailyEntry, 0, len(byDay))
		for d, q := range byDay {
			entries = append(entries, DailyEntry{Date: d, Quantity: q})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})
		set.Series[product] = entries
	}
	return set
}

// Quantities returns a product's observed quantities in date order.
func (s *SeriesSet) Quantities(product string) []float64 {
	entries := s.Series[product]
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Quantity
	}
	return out
}

// ProductCodes assigns each product a stable integer code: product names in
// lexicographic order map to 0..n-1.
func ProductCodes(products []string) map[string]int {
	sorted := append([]string(nil), products...)
	sort.Strings(sorted)
	codes := make(map[string]int, len(sorted))
	for i, p := range sorted {
		codes[p] = i
	}
	return codes
}

// FeatureRow is one (product, day) training or prediction example.
type FeatureRow struct {
	Product string
	Date    time.Time

	Year        int
	Month       int
	Day         int
	DayOfWeek   int
	Weekend     bool
	ProductCode int

	// Lag1 and Lag7 are nil when the series is too short to look back.
	Lag1 *float64
	Lag7 *float64

	Rolling7  float64
	Rolling30 float64

	// Target is the observed quantity. Zero on prediction rows.
	Target float64
}

// Complete reports whether both lags are present.
func (r *FeatureRow) Complete() bool {
	return r.Lag1 != nil && r.Lag7 != nil
}

// Vector flattens the row into model input order.
func (r *FeatureRow) Vector() ([]float64, error) {
	if !r.Complete() {
		return nil, fmt.Errorf("feature row %s/%s has missing lags", r.Product, r.Date.Format(models.DateLayout))
	}
	weekend := 0.0
	if r.Weekend {
		weekend = 1
	}
	return []float64{
		float64(r.Year),
		float64(r.Month),
		float64(r.Day),
		float64(r.DayOfWeek),
		weekend,
		float64(r.ProductCode),
		*r.Lag1,
		*r.Lag7,
		r.Rolling7,
		r.Rolling30,
	}, nil
}

// calendarRow fills the date-derived features. DayOfWeek counts from
// Monday = 0.
func calendarRow(product string, code int, date time.Time) FeatureRow {
	dow := (int(date.Weekday()) + 6) % 7
	return FeatureRow{
		Product:     product,
		Date:        date,
		Year:        date.Year(),
		Month:       int(date.Month()),
		Day:         date.Day(),
		DayOfWeek:   dow,
		Weekend:     dow >= weekendCutoff,
		ProductCode: code,
	}
}

// BuildFeatureRows derives one row per series entry. Lags are taken by
// series position. Rolling means cover the current entry and up to
// window-1 entries before it, so they exist from the first entry on.
func BuildFeatureRows(set *SeriesSet, codes map[string]int) []FeatureRow {
	var rows []FeatureRow
	for _, product := range set.Products {
		entries := set.Series[product]
		qty := set.Quantities(product)
		for i, e := range entries {
			row := calendarRow(product, codes[product], e.Date)
			row.Lag1 = lagAt(qty, i, lagShort)
			row.Lag7 = lagAt(qty, i, lagLong)
			row.Rolling7 = trailingMean(qty[:i+1], rollingShort)
			row.Rolling30 = trailingMean(qty[:i+1], rollingLong)
			row.Target = e.Quantity
			rows = append(rows, row)
		}
	}
	return rows
}

func lagAt(qty []float64, i, lag int) *float64 {
	if i < lag {
		return nil
	}
	v := qty[i-lag]
	return &v
}

// trailingMean averages the last min(window, len(values)) values.
func trailingMean(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) > window {
		values = values[len(values)-window:]
	}
	return stat.Mean(values, nil)
}

// DropIncomplete keeps rows with both lags present.
func DropIncomplete(rows []FeatureRow) []FeatureRow {
	out := make([]FeatureRow, 0, len(rows))
	for i := range rows {
		if rows[i].Complete() {
			out = append(out, rows[i])
		}
	}
	return out
}

// ImputeLags fills missing lags with the product's mean observed quantity.
func ImputeLags(rows []FeatureRow, set *SeriesSet) []FeatureRow {
	means := make(map[string]float64, len(set.Products))
	for _, p := range set.Products {
		means[p] = trailingMean(set.Quantities(p), len(set.Series[p]))
	}

	out := make([]FeatureRow, len(rows))
	for i := range rows {
		row := rows[i]
		if row.Lag1 == nil {
			v := means[row.Product]
			row.Lag1 = &v
		}
		if row.Lag7 == nil {
			v := means[row.Product]
			row.Lag7 = &v
		}
		out[i] = row
	}
	return out
}

// DesignMatrix stacks complete rows into a matrix and a target vector.
func DesignMatrix(rows []FeatureRow) (*mat.Dense, []float64, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no feature rows")
	}
	data := make([]float64, 0, len(rows)*NumFeatures)
	y := make([]float64, len(rows))
	for i := range rows {
		vec, err := rows[i].Vector()
		if err != nil {
			return nil, nil, err
		}
		data = append(data, vec...)
		y[i] = rows[i].Target
	}
	return mat.NewDense(len(rows), NumFeatures, data), y, nil
}
