// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package analytics

import (
	"sort"

	"github.com/tomtom215/basketcast/internal/models"
)

// DefaultTopProducts is the number of best sellers listed in a summary.
const DefaultTopProducts = 10

// Summarize describes txns: row, product and transaction counts, the date
// range, the top sellers by quantity and per-day totals.
func Summarize(txns []models.Transaction) models.DatasetSummary {
	summary := models.DatasetSummary{
		RowCount:    len(txns),
		TopProducts: []models.ProductQuantity{},
		DailySales:  []models.DailySales{},
	}
	if len(txns) == 0 {
		return summary
	}

	quantities := make(map[string]float64)
	transactions := make(map[string]struct{})
	type dayTotals struct {
		quantity float64
		ids      map[string]struct{}
	}
	days := make(map[string]*dayTotals)

	for i := range txns {
		t := &txns[i]
		quantities[t.ProductName] += t.Quantity
		transactions[t.TransactionID] = struct{}{}

		day := t.Day()
		if summary.DateRangeStart.IsZero() || day.Before(summary.DateRangeStart) {
			summary.DateRangeStart = day
		}
		if day.After(summary.DateRangeEnd) {
			summary.DateRangeEnd = day
		}

		key := day.Format(models.DateLayout)
		totals, ok := days[key]
		if !ok {
			totals = &dayTotals{ids: make(map[string]struct{})}
			days[key] = totals
		}
		totals.quantity += t.Quantity
		totals.ids[t.TransactionID] = struct{}{}
	}

	summary.ProductCount = len(quantities)
	summary.TransactionCount = len(transactions)

	for name, qty := range quantities {
		summary.TopProducts = append(summary.TopProducts, models.ProductQuantity{ProductName: name, Quantity: qty})
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		a, b := summary.TopProducts[i], summary.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.ProductName < b.ProductName
	})
	if len(summary.TopProducts) > DefaultTopProducts {
		summary.TopProducts = summary.TopProducts[:DefaultTopProducts]
	}

	// DateLayout sorts lexically in date order.
	for key, totals := range days {
		summary.DailySales = append(summary.DailySales, models.DailySales{
			Date:             key,
			TotalQuantity:    totals.quantity,
			TransactionCount: len(totals.ids),
		})
	}
	sort.Slice(summary.DailySales, func(i, j int) bool {
		return summary.DailySales[i].Date < summary.DailySales[j].Date
	})

	return summary
}
