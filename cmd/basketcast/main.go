// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

// Package main is the basketcast command-line tool.
//
// Basketcast reads a Transaction Table (CSV with Transaction_ID,
// Product_Name, Date and Quantity columns) and either mines association
// rules between products or forecasts daily demand per product.
//
// # Commands
//
//	basketcast rules    --input sales.csv [--min-support 0.02] [--network]
//	basketcast forecast --input sales.csv [--days 14]
//	basketcast analyze  --input sales.csv
//	basketcast summary  --input sales.csv
//
// Results are written as JSON to stdout or --output. Logs and advisory
// warnings go to stderr.
//
// # Configuration
//
// Settings are layered with Koanf v2 (highest priority wins):
//   - Command-line flags
//   - BASKETCAST_* environment variables
//   - Config file (--config, BASKETCAST_CONFIG or ./basketcast.yaml)
//   - Built-in defaults
//
// # Metrics
//
// With --metrics-textfile (or BASKETCAST_METRICS_TEXTFILE) every run
// writes its Prometheus metrics in text format for node_exporter's
// textfile collector.
//
// # Exit Codes
//
// 0 on success, including runs whose outcome is insufficient_data or
// no_qualifying_results. 1 on invalid arguments, unreadable input or a
// failed computation.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
