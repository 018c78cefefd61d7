// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/basketcast/internal/models"
)

// Operation label values.
const (
	OpMineRules = "mine_rules"
	OpForecast  = "forecast"
	OpSummary   = "summary"
)

var (
	// Analysis Metrics
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basketcast_analysis_duration_seconds",
			Help:    "Duration of analysis runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	AnalysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketcast_analysis_runs_total",
			Help: "Total number of analysis runs by outcome",
		},
		[]string{"operation", "outcome"}, // "ok", "insufficient_data", "no_qualifying_results", "error"
	)

	AnalysisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketcast_analysis_errors_total",
			Help: "Total number of failed analysis runs by error kind",
		},
		[]string{"operation", "error_type"}, // "threshold", "malformed", "computation", "other"
	)

	AnalysisWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketcast_analysis_warnings_total",
			Help: "Total number of advisory diagnostics raised",
		},
		[]string{"code"},
	)

	// Association Metrics
	RulesGenerated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketcast_rules_generated",
			Help: "Number of association rules produced by the last mining run",
		},
	)

	FrequentItemsets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketcast_frequent_itemsets",
			Help: "Number of frequent itemsets found by the last mining run",
		},
	)

	// Forecast Metrics
	ForecastPoints = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "basketcast_forecast_points_total",
			Help: "Total number of forecast points produced",
		},
	)

	ForecastSkippedProducts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "basketcast_forecast_skipped_products_total",
			Help: "Total number of products skipped for lack of history",
		},
	)

	ForecastTrainingRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketcast_forecast_training_rows",
			Help: "Training rows used by the last forecast model",
		},
	)

	ForecastEvalRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketcast_forecast_eval_rmse",
			Help: "Hold-out RMSE of the last forecast model",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketcast_cache_hits_total",
			Help: "Total number of analysis cache hits",
		},
		[]string{"operation"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketcast_cache_misses_total",
			Help: "Total number of analysis cache misses",
		},
		[]string{"operation"},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketcast_cache_entries",
			Help: "Number of results held in the analysis cache",
		},
	)

	CacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketcast_cache_hit_ratio_percent",
			Help: "Analysis cache hits as a percentage of lookups",
		},
	)

	// Ingest Metrics
	IngestRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketcast_ingest_rows_total",
			Help: "Total number of transaction rows read",
		},
		[]string{"status"}, // "accepted", "rejected"
	)
)

// RecordAnalysis records the duration and outcome of one run.
// A non-nil err overrides outcome with "error".
func RecordAnalysis(operation string, outcome models.Outcome, duration time.Duration, err error) {
	AnalysisDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		AnalysisRunsTotal.WithLabelValues(operation, "error").Inc()
		AnalysisErrors.WithLabelValues(operation, ErrorType(err)).Inc()
		return
	}
	AnalysisRunsTotal.WithLabelValues(operation, outcome.String()).Inc()
}

// ErrorType buckets an analysis error into a low-cardinality label.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, models.ErrThresholdViolation):
		return "threshold"
	case errors.Is(err, models.ErrMalformedInput):
		return "malformed"
	case errors.Is(err, models.ErrComputationFailure):
		return "computation"
	default:
		return "other"
	}
}

// RecordWarnings counts diagnostics by code.
func RecordWarnings(warnings []models.Warning) {
	for _, w := range warnings {
		AnalysisWarnings.WithLabelValues(string(w.Code)).Inc()
	}
}

// RecordMining publishes the size of a mining result.
func RecordMining(itemsets, rules int) {
	FrequentItemsets.Set(float64(itemsets))
	RulesGenerated.Set(float64(rules))
}

// RecordForecast publishes the shape of a forecast result. rmse is nil when
// nothing was held out.
func RecordForecast(points, skipped, trainingRows int, rmse *float64) {
	ForecastPoints.Add(float64(points))
	ForecastSkippedProducts.Add(float64(skipped))
	ForecastTrainingRows.Set(float64(trainingRows))
	if rmse != nil {
		ForecastEvalRMSE.Set(*rmse)
	}
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(operation string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(operation).Inc()
	} else {
		CacheMisses.WithLabelValues(operation).Inc()
	}
}

// RecordCacheState publishes the cache size and its lifetime hit rate.
func RecordCacheState(entries int, hitRate float64) {
	CacheEntries.Set(float64(entries))
	CacheHitRatio.Set(hitRate)
}

// RecordIngest counts accepted and rejected rows.
func RecordIngest(accepted, rejected int) {
	IngestRows.WithLabelValues("accepted").Add(float64(accepted))
	IngestRows.WithLabelValues("rejected").Add(float64(rejected))
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
