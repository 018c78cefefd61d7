// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/basketcast/internal/forecast"
	"github.com/tomtom215/basketcast/internal/ingest"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"basketcast.yaml",
	"basketcast.yml",
	"/etc/basketcast/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "BASKETCAST_CONFIG"

// defaultConfig returns the built-in defaults. File and environment values
// are layered on top.
func defaultConfig() *Config {
	return &Config{
		Mining: MiningConfig{
			MinSupport:      0.05,
			MinConfidence:   0.2,
			MaxItemsetSize:  0, // 0 = unbounded
			HeatmapProducts: 15,
		},
		Forecast: ForecastConfig{
			Days:  30,
			Model: forecast.DefaultParams(),
		},
		Ingest: IngestConfig{
			DateLayouts: append([]string(nil), ingest.DefaultDateLayouts...),
			Strict:      true,
			Delimiter:   ",",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 64,
		},
		Metrics: MetricsConfig{
			TextfilePath: "",
		},
	}
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults: built-in values
//  2. Config File: path if non-empty, else BASKETCAST_CONFIG, else the
//     first of DefaultConfigPaths that exists
//  3. Environment Variables: BASKETCAST_* overrides
//
// An explicit path that does not exist is an error. The result is validated.
func LoadWithKoanf(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := path
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	} else {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment
	// BASKETCAST_MIN_SUPPORT -> mining.min_support
	if err := k.Load(env.Provider("BASKETCAST_", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists the keys parsed as comma-separated lists when they
// arrive as strings.
var sliceConfigPaths = []string{
	"ingest.date_layouts",
}

// processSliceFields converts comma-separated string values to slices.
// Environment variables arrive as strings; YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased variable names, minus the BASKETCAST_
// prefix, to koanf paths.
var envMappings = map[string]string{
	// Mining
	"min_support":      "mining.min_support",
	"min_confidence":   "mining.min_confidence",
	"max_itemset_size": "mining.max_itemset_size",
	"heatmap_products": "mining.heatmap_products",

	// Forecast
	"forecast_days":          "forecast.days",
	"model_trees":            "forecast.model.trees",
	"model_learning_rate":    "forecast.model.learning_rate",
	"model_max_depth":        "forecast.model.max_depth",
	"model_subsample":        "forecast.model.subsample",
	"model_colsample":        "forecast.model.colsample",
	"model_lambda":           "forecast.model.lambda",
	"model_min_child_weight": "forecast.model.min_child_weight",
	"model_seed":             "forecast.model.seed",

	// Ingest
	"date_layouts": "ingest.date_layouts",
	"strict":       "ingest.strict",
	"delimiter":    "ingest.delimiter",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Cache
	"cache_enabled":     "cache.enabled",
	"cache_ttl":         "cache.ttl",
	"cache_max_entries": "cache.max_entries",

	// Metrics
	"metrics_textfile": "metrics.textfile_path",
}

// envTransformFunc maps BASKETCAST_* variables to config paths. Unknown
// variables are dropped so stray environment cannot pollute the config.
//
// Examples:
//   - BASKETCAST_MIN_SUPPORT -> mining.min_support
//   - BASKETCAST_FORECAST_DAYS -> forecast.days
//   - BASKETCAST_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "BASKETCAST_"))
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
