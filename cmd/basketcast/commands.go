// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/basketcast/internal/analytics"
	"github.com/tomtom215/basketcast/internal/association"
	"github.com/tomtom215/basketcast/internal/config"
	"github.com/tomtom215/basketcast/internal/ingest"
	"github.com/tomtom215/basketcast/internal/logging"
	"github.com/tomtom215/basketcast/internal/metrics"
	"github.com/tomtom215/basketcast/internal/models"
)

// app holds state shared by every subcommand of one invocation.
type app struct {
	input           string
	output          string
	configPath      string
	logLevel        string
	metricsTextfile string
	lenient         bool

	cfg    *config.Config
	logger zerolog.Logger
	svc    *analytics.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "basketcast",
		Short: "Retail basket analytics and demand forecasting",
		Long: `Basketcast mines association rules from retail transactions and
forecasts daily demand per product.

Examples:
  basketcast rules --input sales.csv --min-support 0.02 --min-confidence 0.3
  basketcast forecast --input sales.csv --days 14
  basketcast analyze --input sales.csv --output report.json`,
		Version:            version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.input, "input", "i", "", "transaction CSV file")
	pf.StringVarP(&a.output, "output", "o", "", "write JSON here instead of stdout")
	pf.StringVar(&a.configPath, "config", "", "config file (YAML)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	pf.StringVar(&a.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	pf.BoolVar(&a.lenient, "lenient", false, "skip invalid rows instead of failing")

	root.AddCommand(a.rulesCmd(), a.forecastCmd(), a.analyzeCmd(), a.summaryCmd())
	return root
}

// setup loads configuration, applies flag overrides and builds the service.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithKoanf(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.TextfilePath = a.metricsTextfile
	}
	if a.lenient {
		cfg.Ingest.Strict = false
	}
	if err := applyMiningFlags(cmd, &cfg.Mining); err != nil {
		return err
	}
	if err := applyForecastFlags(cmd, &cfg.Forecast); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(cfg.LoggingOptions())
	a.logger = logging.WithComponent("cli")

	a.svc, err = analytics.NewService(&analytics.Config{
		Forecast:        cfg.Forecast.Model,
		HeatmapProducts: cfg.Mining.HeatmapProducts,
		Cache: analytics.CacheConfig{
			Enabled:    cfg.Cache.Enabled,
			TTL:        cfg.Cache.TTL,
			MaxEntries: cfg.Cache.MaxEntries,
		},
	}, logging.Logger())
	return err
}

// teardown releases the service and flushes metrics.
func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.svc != nil {
		a.svc.Close()
	}
	if path := a.cfg.Metrics.TextfilePath; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		a.logger.Debug().Str("path", path).Msg("metrics written")
	}
	return nil
}

// load reads the Transaction Table named by --input.
func (a *app) load() ([]models.Transaction, error) {
	if a.input == "" {
		return nil, fmt.Errorf("--input is required")
	}

	reader := ingest.NewReader(a.cfg.IngestOptions(), logging.Logger())
	txns, stats, err := reader.ReadFile(a.input)
	if stats != nil {
		metrics.RecordIngest(stats.Accepted, stats.Skipped)
	}
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("input", a.input).
		Int("rows", stats.Accepted).
		Int("skipped", stats.Skipped).
		Dur("duration", stats.Duration()).
		Msg("transactions loaded")
	return txns, nil
}

func addMiningFlags(cmd *cobra.Command) {
	defaults := association.DefaultOptions()
	cmd.Flags().Float64("min-support", defaults.MinSupport, "minimum itemset support in (0,1]")
	cmd.Flags().Float64("min-confidence", defaults.MinConfidence, "minimum rule confidence in (0,1]")
	cmd.Flags().Int("max-len", 0, "maximum itemset size (0 for no limit)")
	cmd.Flags().Int("heatmap-products", association.DefaultHeatmapProducts, "products in the lift heatmap")
}

// applyMiningFlags copies explicitly set mining flags over the config.
func applyMiningFlags(cmd *cobra.Command, mining *config.MiningConfig) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("min-support") {
		if mining.MinSupport, err = flags.GetFloat64("min-support"); err != nil {
			return err
		}
	}
	if flags.Changed("min-confidence") {
		if mining.MinConfidence, err = flags.GetFloat64("min-confidence"); err != nil {
			return err
		}
	}
	if flags.Changed("max-len") {
		if mining.MaxItemsetSize, err = flags.GetInt("max-len"); err != nil {
			return err
		}
	}
	if flags.Changed("heatmap-products") {
		if mining.HeatmapProducts, err = flags.GetInt("heatmap-products"); err != nil {
			return err
		}
	}
	return nil
}

// applyForecastFlags copies an explicit --days onto forecast.
func applyForecastFlags(cmd *cobra.Command, forecast *config.ForecastConfig) error {
	if !cmd.Flags().Changed("days") {
		return nil
	}
	days, err := cmd.Flags().GetInt("days")
	if err != nil {
		return err
	}
	forecast.Days = days
	return nil
}

// rulesOutput is the JSON document written by the rules command.
type rulesOutput struct {
	*association.Result
	Network *association.Network    `json:"network,omitempty"`
	Heatmap *association.LiftMatrix `json:"heatmap,omitempty"`
}

func (a *app) rulesCmd() *cobra.Command {
	var network, heatmap bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Mine association rules between products",
		Long: `Mine association rules with Apriori and rank them by lift.

Examples:
  basketcast rules --input sales.csv
  basketcast rules --input sales.csv --min-support 0.05 --max-len 3 --network`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, err := a.load()
			if err != nil {
				return err
			}

			res, err := a.svc.MineRules(cmd.Context(), txns, a.cfg.MiningOptions())
			if err != nil {
				return err
			}

			out := rulesOutput{Result: res}
			if network {
				n := association.BuildNetwork(res.Rules)
				out.Network = &n
			}
			if heatmap {
				m := association.BuildLiftMatrix(res.Rules, a.cfg.Mining.HeatmapProducts)
				out.Heatmap = &m
			}

			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			printOutcome(cmd.ErrOrStderr(), res.Outcome)
			return writeJSON(cmd.OutOrStdout(), a.output, out)
		},
	}
	addMiningFlags(cmd)
	cmd.Flags().BoolVar(&network, "network", false, "include the product network graph")
	cmd.Flags().BoolVar(&heatmap, "heatmap", false, "include the lift heatmap matrix")
	return cmd
}

func (a *app) forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast daily demand per product",
		Long: `Forecast daily demand per product with gradient-boosted trees.

Each day's prediction feeds the next day's lag feature.

Examples:
  basketcast forecast --input sales.csv
  basketcast forecast --input sales.csv --days 30 --output forecast.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, err := a.load()
			if err != nil {
				return err
			}

			res, err := a.svc.Forecast(cmd.Context(), txns, a.cfg.Forecast.Days)
			if err != nil {
				return err
			}

			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			printOutcome(cmd.ErrOrStderr(), res.Outcome)
			return writeJSON(cmd.OutOrStdout(), a.output, res)
		},
	}
	cmd.Flags().Int("days", config.Default().Forecast.Days, "days to forecast")
	return cmd
}

func (a *app) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize, mine rules and forecast demand in one report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, err := a.load()
			if err != nil {
				return err
			}

			report, err := a.svc.Analyze(cmd.Context(), analytics.Request{
				Transactions: txns,
				Mining:       a.cfg.MiningOptions(),
				Days:         a.cfg.Forecast.Days,
			})
			if err != nil {
				return err
			}

			printWarnings(cmd.ErrOrStderr(), report.Rules.Warnings)
			printWarnings(cmd.ErrOrStderr(), report.Forecast.Warnings)
			return writeJSON(cmd.OutOrStdout(), a.output, report)
		},
	}
	addMiningFlags(cmd)
	cmd.Flags().Int("days", config.Default().Forecast.Days, "days to forecast")
	return cmd
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Describe a transaction file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, err := a.load()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), a.output, analytics.Summarize(txns))
		},
	}
}
