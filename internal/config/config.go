// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package config

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/basketcast/internal/association"
	"github.com/tomtom215/basketcast/internal/forecast"
	"github.com/tomtom215/basketcast/internal/ingest"
	"github.com/tomtom215/basketcast/internal/logging"
	"github.com/tomtom215/basketcast/internal/validation"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file
//  3. Environment Variables: BASKETCAST_* overrides
type Config struct {
	Mining   MiningConfig   `koanf:"mining"`
	Forecast ForecastConfig `koanf:"forecast"`
	Ingest   IngestConfig   `koanf:"ingest"`
	Logging  LoggingConfig  `koanf:"logging"`
	Cache    CacheConfig    `koanf:"cache"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// MiningConfig holds association-rule thresholds.
type MiningConfig struct {
	MinSupport     float64 `koanf:"min_support" validate:"probability"`
	MinConfidence  float64 `koanf:"min_confidence" validate:"probability"`
	MaxItemsetSize int     `koanf:"max_itemset_size" validate:"min=0"`

	// HeatmapProducts bounds the lift matrix.
	HeatmapProducts int `koanf:"heatmap_products" validate:"min=1"`
}

// ForecastConfig holds the forecast horizon and model parameters.
type ForecastConfig struct {
	Days  int             `koanf:"days" validate:"min=1"`
	Model forecast.Params `koanf:"model"`
}

// IngestConfig controls CSV loading.
type IngestConfig struct {
	// DateLayouts are Go time layouts tried in order.
	DateLayouts []string `koanf:"date_layouts" validate:"min=1,dive,required"`

	// Strict aborts on the first invalid row instead of skipping it.
	Strict bool `koanf:"strict"`

	// Delimiter is the single-character field separator.
	Delimiter string `koanf:"delimiter" validate:"required"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// CacheConfig holds analysis result caching settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries" validate:"min=0"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// TextfilePath, when set, receives a Prometheus text dump after each run.
	TextfilePath string `koanf:"textfile_path"`
}

// Validate checks every section.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %s", verr.Error())
	}
	if utf8.RuneCountInString(c.Ingest.Delimiter) != 1 {
		return fmt.Errorf("ingest.delimiter must be a single character, got %q", c.Ingest.Delimiter)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled")
	}
	return nil
}

// MiningOptions converts the mining section.
func (c *Config) MiningOptions() association.Options {
	return association.Options{
		MinSupport:     c.Mining.MinSupport,
		MinConfidence:  c.Mining.MinConfidence,
		MaxItemsetSize: c.Mining.MaxItemsetSize,
	}
}

// IngestOptions converts the ingest section.
func (c *Config) IngestOptions() ingest.Options {
	comma, _ := utf8.DecodeRuneInString(c.Ingest.Delimiter)
	return ingest.Options{
		DateLayouts: c.Ingest.DateLayouts,
		Strict:      c.Ingest.Strict,
		Comma:       comma,
	}
}

// LoggingOptions converts the logging section. Logs go to stderr so stdout
// stays clean for results.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	}
}
