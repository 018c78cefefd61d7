// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/basketcast/internal/models"
)

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// baskets expands transaction ID -> products into rows, one day per basket.
func baskets(ids []string, contents map[string][]string) []models.Transaction {
	var txns []models.Transaction
	for i, id := range ids {
		for _, p := range contents[id] {
			txns = append(txns, models.Transaction{
				TransactionID: id,
				ProductName:   p,
				Date:          baseDate.AddDate(0, 0, i),
				Quantity:      1,
			})
		}
	}
	return txns
}

// groceries is the textbook five-basket dataset.
func groceries() []models.Transaction {
	return baskets(
		[]string{"T1", "T2", "T3", "T4", "T5"},
		map[string][]string{
			"T1": {"bread", "milk"},
			"T2": {"bread", "diapers", "beer", "eggs"},
			"T3": {"milk", "diapers", "beer", "cola"},
			"T4": {"bread", "milk", "diapers", "beer"},
			"T5": {"bread", "milk", "diapers", "cola"},
		},
	)
}

func TestEncode(t *testing.T) {
	txns := []models.Transaction{
		{TransactionID: "T2", ProductName: "milk", Date: baseDate, Quantity: 1},
		{TransactionID: "T2", ProductName: "bread", Date: baseDate, Quantity: 2},
		{TransactionID: "T1", ProductName: "milk", Date: baseDate, Quantity: 1},
		{TransactionID: "T2", ProductName: "milk", Date: baseDate, Quantity: 3},
	}

	enc, err := Encode(txns)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if want := []string{"T2", "T1"}; !reflect.DeepEqual(enc.TransactionIDs, want) {
		t.Errorf("TransactionIDs = %v, want %v", enc.TransactionIDs, want)
	}
	if want := []string{"bread", "milk"}; !reflect.DeepEqual(enc.Items, want) {
		t.Errorf("Items = %v, want %v", enc.Items, want)
	}
	if enc.NumTransactions() != 2 {
		t.Errorf("NumTransactions() = %d, want 2", enc.NumTransactions())
	}
	if enc.NumItems() != 2 {
		t.Errorf("NumItems() = %d, want 2", enc.NumItems())
	}

	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{0, 1, true},
		{1, 0, false},
		{1, 1, true},
	}
	for _, tt := range tests {
		if got := enc.Contains(tt.row, tt.col); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}

	if got := enc.Basket(0); !reflect.DeepEqual(got, []string{"bread", "milk"}) {
		t.Errorf("Basket(0) = %v, want [bread milk]", got)
	}
	if got := enc.Basket(1); !reflect.DeepEqual(got, []string{"milk"}) {
		t.Errorf("Basket(1) = %v, want [milk]", got)
	}
}

func TestEncode_Empty(t *testing.T) {
	enc, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil) error = %v", err)
	}
	if enc.NumTransactions() != 0 || enc.NumItems() != 0 {
		t.Errorf("Encode(nil) = %d x %d, want 0 x 0", enc.NumTransactions(), enc.NumItems())
	}
}

func TestEncode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		txn   models.Transaction
		field string
	}{
		{
			name:  "missing transaction id",
			txn:   models.Transaction{ProductName: "milk"},
			field: "transaction_id",
		},
		{
			name:  "missing product name",
			txn:   models.Transaction{TransactionID: "T1"},
			field: "product_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode([]models.Transaction{tt.txn})
			if !errors.Is(err, models.ErrMalformedInput) {
				t.Fatalf("Encode() error = %v, want ErrMalformedInput", err)
			}
			var rec *models.MalformedRecordError
			if !errors.As(err, &rec) {
				t.Fatalf("Encode() error = %T, want *MalformedRecordError", err)
			}
			if rec.Field != tt.field {
				t.Errorf("Field = %q, want %q", rec.Field, tt.field)
			}
		})
	}
}
