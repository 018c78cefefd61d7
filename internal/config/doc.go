// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

/*
Package config loads Basketcast configuration with Koanf v2.

# Configuration Sources

Sources are layered, later ones winning:
  - Built-in defaults
  - YAML file: --config flag, BASKETCAST_CONFIG, or basketcast.yaml in the
    working directory
  - BASKETCAST_* environment variables

# Example File

	mining:
	  min_support: 0.02
	  min_confidence: 0.2
	  heatmap_products: 15
	forecast:
	  days: 14
	  model:
	    trees: 200
	    max_depth: 4
	ingest:
	  strict: false
	  date_layouts: ["2006-01-02", "01/02/2006"]
	logging:
	  level: debug
	  format: json
	cache:
	  ttl: 30m

# Environment Variables

Mining:
  - BASKETCAST_MIN_SUPPORT, BASKETCAST_MIN_CONFIDENCE
  - BASKETCAST_MAX_ITEMSET_SIZE, BASKETCAST_HEATMAP_PRODUCTS

Forecast:
  - BASKETCAST_FORECAST_DAYS
  - BASKETCAST_MODEL_TREES, BASKETCAST_MODEL_LEARNING_RATE, BASKETCAST_MODEL_MAX_DEPTH
  - BASKETCAST_MODEL_SUBSAMPLE, BASKETCAST_MODEL_COLSAMPLE, BASKETCAST_MODEL_LAMBDA
  - BASKETCAST_MODEL_MIN_CHILD_WEIGHT, BASKETCAST_MODEL_SEED

Ingest:
  - BASKETCAST_DATE_LAYOUTS (comma-separated), BASKETCAST_STRICT, BASKETCAST_DELIMITER

Logging, cache and metrics:
  - BASKETCAST_LOG_LEVEL, BASKETCAST_LOG_FORMAT, BASKETCAST_LOG_CALLER
  - BASKETCAST_CACHE_ENABLED, BASKETCAST_CACHE_TTL, BASKETCAST_CACHE_MAX_ENTRIES
  - BASKETCAST_METRICS_TEXTFILE
*/
package config
