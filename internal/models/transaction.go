// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package models

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the canonical calendar date format used in output.
const DateLayout = "2006-01-02"

// Transaction is one row of the Transaction Table: a single product line
// within a purchase. Several rows may share a TransactionID.
type Transaction struct {
	// TransactionID identifies the purchase. Not necessarily numeric.
	TransactionID string `json:"transaction_id"`

	// ProductName is the purchased product.
	ProductName string `json:"product_name"`

	// Date is the purchase date. Time-of-day is ignored.
	Date time.Time `json:"date"`

	// Quantity is the non-negative number of units purchased.
	Quantity float64 `json:"quantity"`
}

// Day returns the civil date of the transaction as midnight UTC.
// The year, month and day are taken from Date in its own location.
func (t *Transaction) Day() time.Time {
	return CivilDay(t.Date)
}

// Validate checks the Transaction Table row invariants.
func (t *Transaction) Validate() error {
	switch {
	case t.TransactionID == "":
		return &MalformedRecordError{Field: "transaction_id", Reason: "empty"}
	case t.ProductName == "":
		return &MalformedRecordError{Field: "product_name", Reason: "empty"}
	case t.Date.IsZero():
		return &MalformedRecordError{Field: "date", Reason: "missing"}
	case math.IsNaN(t.Quantity) || math.IsInf(t.Quantity, 0):
		return &MalformedRecordError{Field: "quantity", Reason: fmt.Sprintf("not a finite number: %v", t.Quantity)}
	case t.Quantity < 0:
		return &MalformedRecordError{Field: "quantity", Reason: fmt.Sprintf("negative: %v", t.Quantity)}
	}
	return nil
}

// CivilDay truncates a timestamp to its calendar date at midnight UTC.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateTransactions validates every row and reports the first failure
// with its row index.
func ValidateTransactions(txns []Transaction) error {
	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
