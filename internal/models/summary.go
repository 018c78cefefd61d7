// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package models

import "time"

// DatasetSummary describes a Transaction Table at a glance.
type DatasetSummary struct {
	RowCount         int       `json:"row_count"`
	ProductCount     int       `json:"product_count"`
	TransactionCount int       `json:"transaction_count"`
	DateRangeStart   time.Time `json:"date_range_start"`
	DateRangeEnd     time.Time `json:"date_range_end"`

	// TopProducts are the best sellers by total quantity, descending.
	TopProducts []ProductQuantity `json:"top_products"`

	// DailySales are per-day totals in date order.
	DailySales []DailySales `json:"daily_sales"`
}

// ProductQuantity is the total quantity sold for one product.
type ProductQuantity struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

// DailySales aggregates one calendar day.
type DailySales struct {
	Date             string  `json:"date"`
	TotalQuantity    float64 `json:"total_quantity"`
	TransactionCount int     `json:"transaction_count"`
}
