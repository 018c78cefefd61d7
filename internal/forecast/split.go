// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package forecast

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// DefaultTestFraction is the share of training rows held out for scoring.
const DefaultTestFraction = 0.2

// TrainTestSplit shuffles row indices 0..n-1 with a seeded permutation and
// holds out ceil(testFraction*n) of them. With fewer than two rows nothing
// is held out.
func TrainTestSplit(n int, testFraction float64, seed int64) (train, test []int) {
	if n < 2 {
		train = make([]int, n)
		for i := range train {
			train[i] = i
		}
		return train, nil
	}

	// The epsilon keeps products like 0.2*15 from rounding up a whole row.
	nTest := int(math.Ceil(testFraction*float64(n) - 1e-9))
	if nTest < 1 {
		nTest = 1
	}
	if nTest > n-1 {
		nTest = n - 1
	}

	//nolint:gosec // math/rand is fine for a reproducible split
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest]
}

// RMSE is the root mean squared error between predictions and actuals.
func RMSE(pred, actual []float64) (float64, error) {
	if len(pred) != len(actual) {
		return 0, fmt.Errorf("rmse: %d predictions for %d actuals", len(pred), len(actual))
	}
	if len(pred) == 0 {
		return 0, fmt.Errorf("rmse: no values")
	}
	return floats.Distance(pred, actual, 2) / math.Sqrt(float64(len(pred))), nil
}
