// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"fmt"

	"github.com/tomtom215/basketcast/internal/models"
	"github.com/tomtom215/basketcast/internal/validation"
)

// Options holds the thresholds of a mining run.
type Options struct {
	// MinSupport is the minimum fraction of transactions an itemset must
	// appear in to be frequent. Must be in (0, 1].
	MinSupport float64 `json:"min_support" validate:"probability"`

	// MinConfidence is the minimum confidence a rule must reach.
	// Must be in (0, 1].
	MinConfidence float64 `json:"min_confidence" validate:"probability"`

	// MaxItemsetSize caps the size of frequent itemsets. Zero means no cap.
	MaxItemsetSize int `json:"max_itemset_size" validate:"min=0"`
}

// DefaultOptions returns 5% support and 20% confidence with no size cap.
func DefaultOptions() Options {
	return Options{
		MinSupport:    0.05,
		MinConfidence: 0.2,
	}
}

// Validate rejects thresholds outside (0, 1] and negative size caps.
// The returned error matches models.ErrThresholdViolation.
func (o Options) Validate() error {
	if verr := validation.ValidateStruct(&o); verr != nil {
		return fmt.Errorf("%w: %s", models.ErrThresholdViolation, verr.Error())
	}
	return nil
}
