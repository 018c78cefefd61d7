// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/basketcast/internal/models"
)

// Options configures a Reader.
type Options struct {
	// DateLayouts are tried in order for the Date column.
	DateLayouts []string

	// Strict fails the load on the first invalid row. When false, invalid
	// rows are skipped and counted.
	Strict bool

	// Comma is the field delimiter.
	Comma rune
}

// DefaultOptions returns strict comma-separated loading with the default
// date layouts.
func DefaultOptions() Options {
	return Options{
		DateLayouts: DefaultDateLayouts,
		Strict:      true,
		Comma:       ',',
	}
}

// Reader loads transactions from CSV.
type Reader struct {
	opts   Options
	logger zerolog.Logger
}

// NewReader creates a Reader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReader(opts Options, logger zerolog.Logger) *Reader {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	return &Reader{
		opts:   opts,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// ReadFile loads the CSV file at path.
func (r *Reader) ReadFile(path string) ([]models.Transaction, *Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			r.logger.Warn().Err(closeErr).Str("path", path).Msg("error closing input file")
		}
	}()
	return r.Read(f)
}

// Read loads transactions from src. The returned rows are sorted by date.
func (r *Reader) Read(src io.Reader) ([]models.Transaction, *Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	cr := csv.NewReader(src)
	cr.Comma = r.opts.Comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, fmt.Errorf("%w: empty file", models.ErrMalformedInput)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	mapper, err := NewMapper(header, r.opts.DateLayouts)
	if err != nil {
		return nil, stats, err
	}

	var txns []models.Transaction
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, stats, &RowError{Line: parseErr.StartLine, Err: err}
			}
			return nil, stats, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}
		stats.TotalRows++

		txn, err := mapper.ToTransaction(record)
		if err != nil {
			if r.opts.Strict {
				return nil, stats, &RowError{Line: line, Err: err}
			}
			stats.Skipped++
			r.logger.Debug().Int("line", line).Err(err).Msg("skipping invalid row")
			continue
		}
		txns = append(txns, txn)
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})
	stats.Accepted = len(txns)

	r.logger.Info().
		Int("rows", stats.TotalRows).
		Int("accepted", stats.Accepted).
		Int("skipped", stats.Skipped).
		Msg("loaded transactions")

	return txns, stats, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if f != "" {
			return false
		}
	}
	return true
}
