// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

/*
Package analytics orchestrates rule mining and demand forecasting.

A Service wraps an association.Miner and a forecast.Forecaster. Every call
runs under a run ID (taken from the context when present), records
Prometheus metrics, and memoizes results in an in-memory TTL cache keyed by
the operation, the Transaction Table and the thresholds.

	svc, err := analytics.NewService(nil, logging.Logger())
	if err != nil {
	    return err
	}
	defer svc.Close()

	report, err := svc.Analyze(ctx, analytics.Request{
	    Transactions: txns,
	    Mining:       association.DefaultOptions(),
	    Days:         7,
	})

Analyze runs mining and forecasting concurrently with errgroup. Both read
the same table and neither mutates it.
*/
package analytics
