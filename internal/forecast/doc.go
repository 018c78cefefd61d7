// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

// Package forecast predicts per-product daily demand with gradient-boosted
// regression trees and a recursive multi-step loop.
//
// # Features
//
// Transactions are summed per product per civil day. Each daily entry becomes
// a row with calendar features (year, month, day, day of week counted from
// Monday = 0, weekend flag), a stable product code, lag-1 and lag-7 taken by
// series position, and trailing 7- and 30-entry means that include the
// current entry. Rows without both lags are dropped; when that would leave
// nothing to train on, missing lags are filled with the product mean instead
// and a lag_imputation warning is attached.
//
// # Model
//
// Fit grows squared-error regression trees on residuals, starting from the
// mean target, with per-tree row and feature sampling from a seeded source.
// A fitted *Model is returned to the caller; nothing is kept in package
// state.
//
// # Recursive Forecast
//
// For each product and step i the feature row is built for the date
// LastDate+i. Lag-1 is the last observed quantity on step 1 and the previous
// prediction afterwards. Lag-7 and the rolling means come from observed
// history only. Predictions are clamped at zero.
package forecast
