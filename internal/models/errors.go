// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package models

import (
	"errors"
	"fmt"
)

// Fatal error kinds. "Nothing found" conditions are not errors; they are
// reported through Outcome on a successful result.
var (
	// ErrThresholdViolation means a caller passed a threshold or horizon
	// outside its contract. Raised before any computation starts.
	ErrThresholdViolation = errors.New("threshold violation")

	// ErrComputationFailure means encoding, fitting or prediction broke.
	// No partial result accompanies it.
	ErrComputationFailure = errors.New("computation failure")

	// ErrMalformedInput means a Transaction Table row breaks the input contract.
	ErrMalformedInput = errors.New("malformed input")
)

// MalformedRecordError describes the field that broke a row invariant.
type MalformedRecordError struct {
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrMalformedInput.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedInput
}

// ComputationError wraps a failure inside one stage of a pipeline.
type ComputationError struct {
	// Stage names the pipeline step, e.g. "encode" or "fit".
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrComputationFailure regardless of the cause.
func (e *ComputationError) Is(target error) bool {
	return target == ErrComputationFailure
}

// NewComputationError wraps err as a failure of the named stage.
func NewComputationError(stage string, err error) error {
	return &ComputationError{Stage: stage, Err: err}
}
