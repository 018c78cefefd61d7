// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package forecast

import (
	"math"
	"reflect"
	"sort"
	"testing"
)

func TestTrainTestSplit(t *testing.T) {
	tests := []struct {
		n         int
		wantTrain int
		wantTest  int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 1, 1},
		{6, 4, 2},
		{10, 8, 2},
		{11, 8, 3},
	}

	for _, tt := range tests {
		train, test := TrainTestSplit(tt.n, DefaultTestFraction, 42)
		if len(train) != tt.wantTrain || len(test) != tt.wantTest {
			t.Errorf("TrainTestSplit(%d) sizes = (%d, %d), want (%d, %d)",
				tt.n, len(train), len(test), tt.wantTrain, tt.wantTest)
			continue
		}

		all := append(append([]int(nil), train...), test...)
		sort.Ints(all)
		for i, v := range all {
			if v != i {
				t.Errorf("TrainTestSplit(%d) is not a partition of 0..%d: %v", tt.n, tt.n-1, all)
				break
			}
		}
	}
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	trainA, testA := TrainTestSplit(25, DefaultTestFraction, 42)
	trainB, testB := TrainTestSplit(25, DefaultTestFraction, 42)
	if !reflect.DeepEqual(trainA, trainB) || !reflect.DeepEqual(testA, testB) {
		t.Error("TrainTestSplit() differs across calls with the same seed")
	}
}

func TestRMSE(t *testing.T) {
	tests := []struct {
		name    string
		pred    []float64
		actual  []float64
		want    float64
		wantErr bool
	}{
		{"exact", []float64{1, 2, 3}, []float64{1, 2, 3}, 0, false},
		{"3-4-5", []float64{0, 0}, []float64{3, 4}, math.Sqrt(12.5), false},
		{"mismatch", []float64{1}, []float64{1, 2}, 0, true},
		{"empty", nil, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RMSE(tt.pred, tt.actual)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RMSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RMSE() = %v, want %v", got, tt.want)
			}
		})
	}
}
