// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

/*
Package models defines the data contracts shared by Basketcast packages.

Key Components:

  - Transaction: one row of the Transaction Table
  - FrequentItemset, AssociationRule: rule mining output
  - ForecastPoint: one predicted day of demand for one product
  - DatasetSummary: counts, date range, top sellers and daily totals
  - Outcome, Warning: result classification and advisory diagnostics

Error Kinds:

Fatal errors are ErrThresholdViolation, ErrComputationFailure and
ErrMalformedInput. Match them with errors.Is. Typed errors
(*ComputationError, *MalformedRecordError) carry the stage or field and
can be unpacked with errors.As.

Empty results are not errors. They come back with OutcomeInsufficientData
or OutcomeNoQualifyingResults and empty, non-nil slices.

JSON:

Types encode with github.com/goccy/go-json. Calendar dates are written as
YYYY-MM-DD (DateLayout).
*/
package models
