// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

/*
Package metrics provides Prometheus instrumentation for analysis runs.

Metrics are registered on the default registry at package init. Batch runs
have no scrape endpoint, so WriteTextfile dumps the registry for the
node_exporter textfile collector:

	basketcast rules --input sales.csv --metrics-textfile /var/lib/node_exporter/basketcast.prom

# Available Metrics

Analysis:
  - basketcast_analysis_duration_seconds{operation}
  - basketcast_analysis_runs_total{operation, outcome}
  - basketcast_analysis_errors_total{operation, error_type}
  - basketcast_analysis_warnings_total{code}

Association:
  - basketcast_rules_generated
  - basketcast_frequent_itemsets

Forecast:
  - basketcast_forecast_points_total
  - basketcast_forecast_skipped_products_total
  - basketcast_forecast_training_rows
  - basketcast_forecast_eval_rmse

Cache and ingest:
  - basketcast_cache_hits_total{operation}
  - basketcast_cache_misses_total{operation}
  - basketcast_cache_entries
  - basketcast_cache_hit_ratio_percent
  - basketcast_ingest_rows_total{status}
*/
package metrics
