// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/basketcast/internal/association"
	"github.com/tomtom215/basketcast/internal/cache"
	"github.com/tomtom215/basketcast/internal/forecast"
	"github.com/tomtom215/basketcast/internal/logging"
	"github.com/tomtom215/basketcast/internal/metrics"
	"github.com/tomtom215/basketcast/internal/models"
	"github.com/tomtom215/basketcast/internal/validation"
)

// Config configures a Service.
type Config struct {
	// Forecast holds the boosting parameters used by every forecast.
	Forecast forecast.Params

	// HeatmapProducts caps the lift matrix built by Analyze.
	HeatmapProducts int `validate:"min=1"`

	Cache CacheConfig
}

// CacheConfig controls result memoization.
type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int `validate:"min=0"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Forecast:        forecast.DefaultParams(),
		HeatmapProducts: association.DefaultHeatmapProducts,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 64,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("%w: %s", models.ErrThresholdViolation, verr.Error())
	}
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache ttl must be positive when caching is enabled", models.ErrThresholdViolation)
	}
	return nil
}

// Request asks Analyze for a full report over one Transaction Table.
type Request struct {
	Transactions []models.Transaction
	Mining       association.Options
	Days         int `validate:"min=1"`
}

// Report is the combined output of Analyze.
type Report struct {
	RunID    string                 `json:"run_id"`
	Summary  models.DatasetSummary  `json:"summary"`
	Rules    *association.Result    `json:"rules"`
	Network  association.Network    `json:"network"`
	Heatmap  association.LiftMatrix `json:"heatmap"`
	Forecast *forecast.Result       `json:"forecast"`
}

// Service runs rule mining and demand forecasting over Transaction Tables.
// It is safe for concurrent use. Results may be shared between callers
// through the cache and must be treated as read-only.
type Service struct {
	config     Config
	logger     zerolog.Logger
	miner      *association.Miner
	forecaster *forecast.Forecaster
	cache      *cache.Cache
}

// NewService creates a Service. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg *Config, logger zerolog.Logger) (*Service, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Service{
		config:     *cfg,
		logger:     logger.With().Str("component", "analytics").Logger(),
		miner:      association.NewMiner(logger),
		forecaster: forecast.NewForecaster(logger, cfg.Forecast),
	}
	if cfg.Cache.Enabled {
		s.cache = cache.NewWithOptions(cache.Options{
			TTL:        cfg.Cache.TTL,
			MaxEntries: cfg.Cache.MaxEntries,
		})
	}
	return s, nil
}

// Close releases the result cache.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// MineRules mines association rules from txns. Errors keep their kind:
// errors.Is matches models.ErrThresholdViolation or
// models.ErrComputationFailure.
func (s *Service) MineRules(ctx context.Context, txns []models.Transaction, opts association.Options) (*association.Result, error) {
	ctx, logger := s.begin(ctx, metrics.OpMineRules)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := cache.GenerateKey(metrics.OpMineRules, struct {
		Transactions []models.Transaction `json:"transactions"`
		Options      association.Options  `json:"options"`
	}{txns, opts})

	res, hit, err := memoize(s, metrics.OpMineRules, key, func() (*association.Result, error) {
		return s.miner.Mine(txns, opts)
	})
	if err != nil {
		metrics.RecordAnalysis(metrics.OpMineRules, 0, time.Since(start), err)
		logger.Error().Err(err).Msg("rule mining failed")
		return nil, err
	}

	metrics.RecordAnalysis(metrics.OpMineRules, res.Outcome, time.Since(start), nil)
	if !hit {
		metrics.RecordWarnings(res.Warnings)
		metrics.RecordMining(len(res.Itemsets), len(res.Rules))
	}

	logger.Info().
		Int("rules", len(res.Rules)).
		Int("itemsets", len(res.Itemsets)).
		Str("outcome", res.Outcome.String()).
		Bool("cache_hit", hit).
		Dur("duration", time.Since(start)).
		Msg("rule mining complete")
	return res, nil
}

// Forecast predicts days of demand per product from txns.
func (s *Service) Forecast(ctx context.Context, txns []models.Transaction, days int) (*forecast.Result, error) {
	ctx, logger := s.begin(ctx, metrics.OpForecast)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := cache.GenerateKey(metrics.OpForecast, struct {
		Transactions []models.Transaction `json:"transactions"`
		Days         int                  `json:"days"`
		Params       forecast.Params      `json:"params"`
	}{txns, days, s.config.Forecast})

	res, hit, err := memoize(s, metrics.OpForecast, key, func() (*forecast.Result, error) {
		return s.forecaster.Forecast(txns, days)
	})
	if err != nil {
		metrics.RecordAnalysis(metrics.OpForecast, 0, time.Since(start), err)
		logger.Error().Err(err).Int("days", days).Msg("forecast failed")
		return nil, err
	}

	metrics.RecordAnalysis(metrics.OpForecast, res.Outcome, time.Since(start), nil)
	if !hit {
		metrics.RecordWarnings(res.Warnings)
		metrics.RecordForecast(len(res.Points()), res.SkippedProducts, res.TrainingRows, res.EvalRMSE)
	}

	event := logger.Info().
		Int("products", len(res.Products)).
		Int("days", days).
		Int("training_rows", res.TrainingRows).
		Str("outcome", res.Outcome.String()).
		Bool("cache_hit", hit)
	if res.EvalRMSE != nil {
		event = event.Float64("rmse", *res.EvalRMSE)
	}
	event.Dur("duration", time.Since(start)).Msg("forecast complete")
	return res, nil
}

// Analyze summarizes req.Transactions, mines rules and forecasts demand.
// Mining and forecasting run concurrently over the shared read-only table.
// The first fatal error cancels the report.
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrThresholdViolation, verr.Error())
	}

	ctx, logger := s.begin(ctx, "analyze")
	start := time.Now()
	report := &Report{
		RunID:   logging.RunIDFromContext(ctx),
		Summary: Summarize(req.Transactions),
	}
	metrics.RecordAnalysis(metrics.OpSummary, models.OutcomeOK, time.Since(start), nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.MineRules(gctx, req.Transactions, req.Mining)
		if err != nil {
			return fmt.Errorf("mine rules: %w", err)
		}
		report.Rules = res
		return nil
	})
	g.Go(func() error {
		res, err := s.Forecast(gctx, req.Transactions, req.Days)
		if err != nil {
			return fmt.Errorf("forecast: %w", err)
		}
		report.Forecast = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Network = association.BuildNetwork(report.Rules.Rules)
	report.Heatmap = association.BuildLiftMatrix(report.Rules.Rules, s.config.HeatmapProducts)

	logger.Debug().
		Int("rows", report.Summary.RowCount).
		Int("nodes", len(report.Network.Nodes)).
		Dur("duration", time.Since(start)).
		Msg("analysis complete")
	return report, nil
}

// begin attaches a run ID to ctx unless one is already present, stores the
// operation's logger in ctx and returns it with the run ID attached.
func (s *Service) begin(ctx context.Context, op string) (context.Context, *zerolog.Logger) {
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
	}
	ctx = logging.ContextWithLogger(ctx, s.logger.With().Str("operation", op).Logger())
	return ctx, logging.Ctx(ctx)
}

// memoize returns the cached value for key or computes and stores it.
// Failed computations are not cached.
func memoize[T any](s *Service, op, key string, compute func() (T, error)) (T, bool, error) {
	if s.cache != nil {
		defer func() { metrics.RecordCacheState(s.cache.Len(), s.cache.HitRate()) }()

		if v, ok := s.cache.Get(key); ok {
			if typed, ok := v.(T); ok {
				metrics.RecordCacheLookup(op, true)
				return typed, true, nil
			}
			s.cache.Delete(key)
		}
		metrics.RecordCacheLookup(op, false)
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, false, err
	}
	if s.cache != nil {
		s.cache.Set(key, v)
	}
	return v, false, nil
}
