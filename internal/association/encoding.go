// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/tomtom215/basketcast/internal/models"
)

// Encoding is the one-hot item-presence matrix of a set of transactions.
// Rows are transactions in first-appearance order, columns are the sorted,
// deduplicated product vocabulary.
type Encoding struct {
	// TransactionIDs holds the row labels.
	TransactionIDs []string

	// Items holds the column labels in lexicographic order.
	Items []string

	// columns[j] has bit i set when transaction i contains Items[j].
	columns []*bitset.BitSet
}

// Encode groups rows by transaction ID and builds the presence matrix.
// Rows without a transaction ID or product name are rejected.
func Encode(txns []models.Transaction) (*Encoding, error) {
	rowOf := make(map[string]int)
	var ids []string
	vocab := make(map[string]struct{})

	for i := range txns {
		txn := &txns[i]
		if txn.TransactionID == "" {
			return nil, fmt.Errorf("row %d: %w", i, &models.MalformedRecordError{Field: "transaction_id", Reason: "empty"})
		}
		if txn.ProductName == "" {
			return nil, fmt.Errorf("row %d: %w", i, &models.MalformedRecordError{Field: "product_name", Reason: "empty"})
		}
		if _, ok := rowOf[txn.TransactionID]; !ok {
			rowOf[txn.TransactionID] = len(ids)
			ids = append(ids, txn.TransactionID)
		}
		vocab[txn.ProductName] = struct{}{}
	}

	items := make([]string, 0, len(vocab))
	for name := range vocab {
		items = append(items, name)
	}
	sort.Strings(items)

	colOf := make(map[string]int, len(items))
	columns := make([]*bitset.BitSet, len(items))
	for j, name := range items {
		colOf[name] = j
		columns[j] = bitset.New(uint(len(ids)))
	}

	// Setting a bit twice is a no-op, which collapses repeated products
	// within one transaction.
	for i := range txns {
		row := rowOf[txns[i].TransactionID]
		columns[colOf[txns[i].ProductName]].Set(uint(row))
	}

	return &Encoding{
		TransactionIDs: ids,
		Items:          items,
		columns:        columns,
	}, nil
}

// NumTransactions returns the number of matrix rows.
func (e *Encoding) NumTransactions() int {
	return len(e.TransactionIDs)
}

// NumItems returns the number of matrix columns.
func (e *Encoding) NumItems() int {
	return len(e.Items)
}

// Contains reports the matrix cell for transaction row and item column.
func (e *Encoding) Contains(row, col int) bool {
	return e.columns[col].Test(uint(row))
}

// Basket returns the distinct products of one transaction in column order.
func (e *Encoding) Basket(row int) []string {
	var basket []string
	for j := range e.columns {
		if e.Contains(row, j) {
			basket = append(basket, e.Items[j])
		}
	}
	return basket
}

// column returns the transaction set of a single item.
func (e *Encoding) column(col int) *bitset.BitSet {
	return e.columns[col]
}

// names maps column indices to product names.
func (e *Encoding) names(cols []int) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = e.Items[c]
	}
	return out
}
