// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package forecast

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/basketcast/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d-1)
}

// dailySeries emits one row per day for product with the given quantities.
func dailySeries(product string, quantities []float64) []models.Transaction {
	txns := make([]models.Transaction, len(quantities))
	for i, q := range quantities {
		txns[i] = models.Transaction{
			TransactionID: product + "-" + day(i+1).Format(models.DateLayout),
			ProductName:   product,
			Date:          day(i + 1),
			Quantity:      q,
		}
	}
	return txns
}

func TestBuildSeries(t *testing.T) {
	txns := []models.Transaction{
		{TransactionID: "T3", ProductName: "B", Date: day(3).Add(15 * time.Hour), Quantity: 1},
		{TransactionID: "T1", ProductName: "A", Date: day(1), Quantity: 2},
		{TransactionID: "T2", ProductName: "A", Date: day(1).Add(9 * time.Hour), Quantity: 3},
		{TransactionID: "T4", ProductName: "B", Date: day(2), Quantity: 4},
	}

	set := BuildSeries(txns)

	if want := []string{"B", "A"}; !reflect.DeepEqual(set.Products, want) {
		t.Errorf("Products = %v, want %v", set.Products, want)
	}
	if !set.LastDate.Equal(day(3)) {
		t.Errorf("LastDate = %v, want %v", set.LastDate, day(3))
	}
	if set.Records != 4 {
		t.Errorf("Records = %d, want 4", set.Records)
	}

	wantA := []DailyEntry{{Date: day(1), Quantity: 5}}
	if !reflect.DeepEqual(set.Series["A"], wantA) {
		t.Errorf("Series[A] = %v, want %v", set.Series["A"], wantA)
	}
	if got := set.Quantities("B"); !reflect.DeepEqual(got, []float64{4, 1}) {
		t.Errorf("Quantities(B) = %v, want [4 1]", got)
	}
}

func TestProductCodes(t *testing.T) {
	codes := ProductCodes([]string{"milk", "bread", "apples"})
	want := map[string]int{"apples": 0, "bread": 1, "milk": 2}
	if !reflect.DeepEqual(codes, want) {
		t.Errorf("ProductCodes() = %v, want %v", codes, want)
	}
}

func TestCalendarRow(t *testing.T) {
	tests := []struct {
		date        time.Time
		wantDOW     int
		wantWeekend bool
	}{
		{day(1), 0, false}, // Monday
		{day(5), 4, false}, // Friday
		{day(6), 5, true},  // Saturday
		{day(7), 6, true},  // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.date.Weekday().String(), func(t *testing.T) {
			row := calendarRow("A", 3, tt.date)
			if row.DayOfWeek != tt.wantDOW {
				t.Errorf("DayOfWeek = %d, want %d", row.DayOfWeek, tt.wantDOW)
			}
			if row.Weekend != tt.wantWeekend {
				t.Errorf("Weekend = %v, want %v", row.Weekend, tt.wantWeekend)
			}
			if row.Year != 2024 || row.Month != 1 || row.Day != tt.date.Day() {
				t.Errorf("date parts = %d-%d-%d, want 2024-1-%d", row.Year, row.Month, row.Day, tt.date.Day())
			}
			if row.ProductCode != 3 {
				t.Errorf("ProductCode = %d, want 3", row.ProductCode)
			}
		})
	}
}

func TestBuildFeatureRows(t *testing.T) {
	qty := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	set := BuildSeries(dailySeries("A", qty))
	rows := BuildFeatureRows(set, ProductCodes(set.Products))

	if len(rows) != len(qty) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(qty))
	}

	if rows[0].Lag1 != nil {
		t.Errorf("rows[0].Lag1 = %v, want nil", *rows[0].Lag1)
	}
	if rows[1].Lag1 == nil || *rows[1].Lag1 != 1 {
		t.Errorf("rows[1].Lag1 = %v, want 1", rows[1].Lag1)
	}
	if rows[6].Lag7 != nil {
		t.Errorf("rows[6].Lag7 = %v, want nil", *rows[6].Lag7)
	}
	if rows[7].Lag7 == nil || *rows[7].Lag7 != 1 {
		t.Errorf("rows[7].Lag7 = %v, want 1", rows[7].Lag7)
	}

	if rows[0].Rolling7 != 1 || rows[0].Rolling30 != 1 {
		t.Errorf("rows[0] rolling = (%v, %v), want (1, 1)", rows[0].Rolling7, rows[0].Rolling30)
	}
	// Entries 3..9 for the 7-day window, 1..9 for the 30-day window.
	if rows[8].Rolling7 != 6 {
		t.Errorf("rows[8].Rolling7 = %v, want 6", rows[8].Rolling7)
	}
	if rows[8].Rolling30 != 5 {
		t.Errorf("rows[8].Rolling30 = %v, want 5", rows[8].Rolling30)
	}
	if rows[8].Target != 9 {
		t.Errorf("rows[8].Target = %v, want 9", rows[8].Target)
	}

	complete := DropIncomplete(rows)
	if len(complete) != 2 {
		t.Fatalf("len(DropIncomplete) = %d, want 2", len(complete))
	}
	if !complete[0].Date.Equal(day(8)) {
		t.Errorf("first complete row date = %v, want %v", complete[0].Date, day(8))
	}
}

func TestImputeLags(t *testing.T) {
	set := BuildSeries(dailySeries("A", []float64{2, 4, 6}))
	rows := BuildFeatureRows(set, ProductCodes(set.Products))
	if got := DropIncomplete(rows); len(got) != 0 {
		t.Fatalf("DropIncomplete() kept %d rows, want 0", len(got))
	}

	imputed := ImputeLags(rows, set)
	for i := range imputed {
		if !imputed[i].Complete() {
			t.Fatalf("row %d still incomplete", i)
		}
		if *imputed[i].Lag7 != 4 {
			t.Errorf("row %d Lag7 = %v, want 4", i, *imputed[i].Lag7)
		}
	}
	if *imputed[0].Lag1 != 4 {
		t.Errorf("row 0 Lag1 = %v, want mean 4", *imputed[0].Lag1)
	}
	if *imputed[1].Lag1 != 2 {
		t.Errorf("row 1 Lag1 = %v, want observed 2", *imputed[1].Lag1)
	}
	if rows[0].Lag1 != nil {
		t.Error("ImputeLags() modified its input")
	}
}

func TestFeatureRow_Vector(t *testing.T) {
	row := calendarRow("A", 1, day(6))
	if _, err := row.Vector(); err == nil {
		t.Error("Vector() on row without lags should fail")
	}

	lag1, lag7 := 3.0, 5.0
	row.Lag1, row.Lag7 = &lag1, &lag7
	row.Rolling7, row.Rolling30 = 4, 4.5

	vec, err := row.Vector()
	if err != nil {
		t.Fatalf("Vector() error = %v", err)
	}
	want := []float64{2024, 1, 6, 5, 1, 1, 3, 5, 4, 4.5}
	if !reflect.DeepEqual(vec, want) {
		t.Errorf("Vector() = %v, want %v", vec, want)
	}
	if len(vec) != len(FeatureNames) {
		t.Errorf("len(Vector()) = %d, want %d", len(vec), len(FeatureNames))
	}
}

func TestDesignMatrix(t *testing.T) {
	if _, _, err := DesignMatrix(nil); err == nil {
		t.Error("DesignMatrix(nil) should fail")
	}

	set := BuildSeries(dailySeries("A", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
	rows := DropIncomplete(BuildFeatureRows(set, ProductCodes(set.Products)))
	x, y, err := DesignMatrix(rows)
	if err != nil {
		t.Fatalf("DesignMatrix() error = %v", err)
	}
	r, c := x.Dims()
	if r != 3 || c != NumFeatures {
		t.Errorf("Dims() = %d x %d, want 3 x %d", r, c, NumFeatures)
	}
	if !reflect.DeepEqual(y, []float64{8, 9, 10}) {
		t.Errorf("y = %v, want [8 9 10]", y)
	}
	if got := x.At(2, 6); got != 9 {
		t.Errorf("lag_1 of last row = %v, want 9", got)
	}
}

func TestTrailingMean(t *testing.T) {
	tests := []struct {
		values []float64
		window int
		want   float64
	}{
		{nil, 7, 0},
		{[]float64{4}, 7, 4},
		{[]float64{1, 2, 3, 4}, 2, 3.5},
		{[]float64{1, 2, 3, 4}, 30, 2.5},
	}
	for _, tt := range tests {
		if got := trailingMean(tt.values, tt.window); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("trailingMean(%v, %d) = %v, want %v", tt.values, tt.window, got, tt.want)
		}
	}
}
