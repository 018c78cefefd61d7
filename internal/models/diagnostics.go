// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Outcome classifies a successful run. Empty results carry a non-OK outcome
// so callers can tell "nothing found" apart from a failed computation.
type Outcome int

const (
	// OutcomeOK means the run produced results.
	OutcomeOK Outcome = iota
	// OutcomeInsufficientData means the input was too small to analyze.
	OutcomeInsufficientData
	// OutcomeNoQualifyingResults means nothing cleared the thresholds.
	OutcomeNoQualifyingResults
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInsufficientData:
		return "insufficient_data"
	case OutcomeNoQualifyingResults:
		return "no_qualifying_results"
	default:
		return "unknown"
	}
}

// Empty reports whether the outcome implies an empty result.
func (o Outcome) Empty() bool {
	return o != OutcomeOK
}

// MarshalJSON encodes the outcome by name.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an outcome name.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "ok":
		*o = OutcomeOK
	case "insufficient_data":
		*o = OutcomeInsufficientData
	case "no_qualifying_results":
		*o = OutcomeNoQualifyingResults
	default:
		return fmt.Errorf("unknown outcome %q", s)
	}
	return nil
}

// WarningCode identifies an advisory diagnostic.
type WarningCode string

const (
	WarnSingleTransaction   WarningCode = "single_transaction"
	WarnLowDataVolume       WarningCode = "low_data_volume"
	WarnLimitedTrainingData WarningCode = "limited_training_data"
	WarnShortHistory        WarningCode = "short_history"
	WarnLagImputation       WarningCode = "lag_imputation"
	WarnElevatedRMSE        WarningCode = "elevated_rmse"
)

// Warning is an advisory diagnostic attached to a successful result.
// Warnings never block a result.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`

	// Product is set when the warning concerns a single product.
	Product string `json:"product,omitempty"`
}

func (w Warning) String() string {
	if w.Product != "" {
		return fmt.Sprintf("%s [%s]: %s", w.Code, w.Product, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
