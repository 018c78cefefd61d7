// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/basketcast/internal/models"
)

// Result is the outcome of one mining run.
type Result struct {
	// Rules are ranked by lift, descending.
	Rules []models.AssociationRule `json:"rules"`

	// Itemsets are the frequent itemsets the rules were drawn from.
	Itemsets []models.FrequentItemset `json:"itemsets"`

	TransactionCount int `json:"transaction_count"`
	ItemCount        int `json:"item_count"`

	Outcome  models.Outcome   `json:"outcome"`
	Warnings []models.Warning `json:"warnings,omitempty"`
}

// Miner runs association-rule mining.
type Miner struct {
	logger zerolog.Logger
}

// NewMiner creates a Miner logging through logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMiner(logger zerolog.Logger) *Miner {
	return &Miner{
		logger: logger.With().Str("component", "association").Logger(),
	}
}

// Mine encodes txns, finds frequent itemsets and returns the rules that
// clear opts, ranked by lift.
//
// Threshold violations are returned before any work happens. Malformed rows
// are returned as a computation failure of the encode stage. Inputs too small
// to mine, and runs where nothing qualifies, return an empty Result with the
// matching Outcome.
func (m *Miner) Mine(txns []models.Transaction, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	enc, err := Encode(txns)
	if err != nil {
		return nil, models.NewComputationError("encode", err)
	}

	res := &Result{
		Rules:            []models.AssociationRule{},
		Itemsets:         []models.FrequentItemset{},
		TransactionCount: enc.NumTransactions(),
		ItemCount:        enc.NumItems(),
	}

	if enc.NumTransactions() < 2 {
		res.Outcome = models.OutcomeInsufficientData
		res.Warnings = append(res.Warnings, models.Warning{
			Code:    models.WarnSingleTransaction,
			Message: "at least two transactions are needed to measure co-occurrence",
		})
		m.logger.Warn().
			Int("transactions", enc.NumTransactions()).
			Msg("too few transactions to mine")
		return res, nil
	}

	itemsets := FrequentItemsets(enc, opts.MinSupport, opts.MaxItemsetSize)
	for i := range itemsets {
		res.Itemsets = append(res.Itemsets, models.FrequentItemset{
			Items:   enc.names(itemsets[i].Cols),
			Support: itemsets[i].Support,
		})
	}
	if len(itemsets) == 0 {
		res.Outcome = models.OutcomeNoQualifyingResults
		m.logger.Info().
			Float64("min_support", opts.MinSupport).
			Msg("no frequent itemsets")
		return res, nil
	}

	rules := GenerateRules(enc, itemsets, opts.MinConfidence)
	if len(rules) == 0 {
		res.Outcome = models.OutcomeNoQualifyingResults
		m.logger.Info().
			Int("itemsets", len(itemsets)).
			Float64("min_confidence", opts.MinConfidence).
			Msg("no rules above confidence threshold")
		return res, nil
	}

	RankRules(rules)
	res.Rules = rules
	res.Outcome = models.OutcomeOK

	m.logger.Debug().
		Int("transactions", enc.NumTransactions()).
		Int("items", enc.NumItems()).
		Int("itemsets", len(itemsets)).
		Int("rules", len(rules)).
		Dur("duration", time.Since(start)).
		Msg("mining complete")

	return res, nil
}
