// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/basketcast/internal/models"
)

// Canonical column names.
const (
	ColTransactionID = "Transaction_ID"
	ColProductName   = "Product_Name"
	ColDate          = "Date"
	ColQuantity      = "Quantity"
)

// RequiredColumns lists the columns every file must have, in display order.
var RequiredColumns = []string{ColTransactionID, ColProductName, ColDate, ColQuantity}

// DefaultDateLayouts are tried in order when parsing the Date column.
var DefaultDateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// columns maps canonical column names to their position in a record.
type columns map[string]int

func normalizeHeader(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// mapHeader locates the required columns in a header row.
func mapHeader(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	cols := make(columns, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		i, ok := pos[normalizeHeader(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s",
			models.ErrMalformedInput, strings.Join(missing, ", "))
	}
	return cols, nil
}

// Mapper turns CSV records into transactions.
type Mapper struct {
	cols    columns
	layouts []string
}

// NewMapper creates a Mapper for the given header row.
func NewMapper(header, dateLayouts []string) (*Mapper, error) {
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}
	if len(dateLayouts) == 0 {
		dateLayouts = DefaultDateLayouts
	}
	return &Mapper{cols: cols, layouts: dateLayouts}, nil
}

func (m *Mapper) field(record []string, name string) string {
	i := m.cols[name]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ToTransaction parses and validates one record.
func (m *Mapper) ToTransaction(record []string) (models.Transaction, error) {
	txn := models.Transaction{
		TransactionID: m.field(record, ColTransactionID),
		ProductName:   m.field(record, ColProductName),
	}

	if raw := m.field(record, ColDate); raw != "" {
		date, err := m.parseDate(raw)
		if err != nil {
			return models.Transaction{}, err
		}
		txn.Date = date
	}

	raw := m.field(record, ColQuantity)
	if raw == "" {
		return models.Transaction{}, &models.MalformedRecordError{Field: "quantity", Reason: "empty"}
	}
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.Transaction{}, &models.MalformedRecordError{Field: "quantity", Reason: fmt.Sprintf("not a number: %q", raw)}
	}
	txn.Quantity = qty

	if err := txn.Validate(); err != nil {
		return models.Transaction{}, err
	}
	return txn, nil
}

func (m *Mapper) parseDate(raw string) (time.Time, error) {
	for _, layout := range m.layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &models.MalformedRecordError{Field: "date", Reason: fmt.Sprintf("unrecognized date %q", raw)}
}
