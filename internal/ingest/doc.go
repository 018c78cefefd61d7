// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

// Package ingest loads a Transaction Table from CSV.
//
// The file must carry the columns Transaction_ID, Product_Name, Date and
// Quantity. Header matching ignores case, spaces, hyphens and underscores,
// so "transaction id" and "TransactionID" both work. Extra columns are
// ignored.
//
// In strict mode the first bad row aborts the load with its line number.
// In lenient mode bad rows are skipped and counted in Stats. Either way the
// accepted rows come back sorted by date, ties keeping file order.
package ingest
