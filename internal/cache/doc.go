// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

// Package cache memoizes analysis results in memory.
//
// Keys are built with GenerateKey, which hashes the JSON form of the
// request so identical inputs and thresholds map to the same entry:
//
//	key := cache.GenerateKey("mine_rules", struct {
//	    Dataset string
//	    Options association.Options
//	}{fingerprint, opts})
//	if v, ok := c.Get(key); ok {
//	    return v.(*association.Result), nil
//	}
//
// Entries expire after their TTL. A bounded cache evicts the entry closest
// to expiry when full. Call Close to stop the background sweeper.
package cache
