// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/basketcast/internal/models"
)

// Data-volume thresholds below which results are flagged as low confidence.
const (
	DefaultMinRecords      = 30
	DefaultMinTrainingRows = 10
)

// Lag7Policy names how lag-7 is resolved when forecasting a product.
type Lag7Policy int

const (
	// Lag7Observed uses the quantity seven series entries back.
	Lag7Observed Lag7Policy = iota
	// Lag7HistoryMean uses the product's mean when its history is shorter
	// than seven entries.
	Lag7HistoryMean
)

func (p Lag7Policy) String() string {
	if p == Lag7HistoryMean {
		return "history_mean"
	}
	return "observed"
}

// LagPolicy names how training rows with missing lags are handled.
type LagPolicy int

const (
	// LagPolicyDrop discards rows without both lags.
	LagPolicyDrop LagPolicy = iota
	// LagPolicyImpute fills missing lags with the product's history mean.
	// Used only when dropping would leave no training rows.
	LagPolicyImpute
)

func (p LagPolicy) String() string {
	if p == LagPolicyImpute {
		return "impute"
	}
	return "drop"
}

// Result is the outcome of one forecasting run.
type Result struct {
	// Forecasts maps product name to its date-ordered forecast points.
	Forecasts map[string][]models.ForecastPoint `json:"forecasts"`

	// Products lists forecasted products in order of first appearance.
	Products []string `json:"products"`

	// SkippedProducts counts products with no usable history.
	SkippedProducts int `json:"skipped_products"`

	TrainingRows int       `json:"training_rows"`
	LagPolicy    LagPolicy `json:"-"`

	// EvalRMSE is the hold-out error. Nil when there was nothing to hold out.
	EvalRMSE *float64 `json:"eval_rmse,omitempty"`

	Outcome  models.Outcome   `json:"outcome"`
	Warnings []models.Warning `json:"warnings,omitempty"`
}

// Points flattens the forecasts in product order.
func (r *Result) Points() []models.ForecastPoint {
	var out []models.ForecastPoint
	for _, p := range r.Products {
		out = append(out, r.Forecasts[p]...)
	}
	return out
}

func (r *Result) warn(code models.WarningCode, product, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, models.Warning{
		Code:    code,
		Product: product,
		Message: fmt.Sprintf(format, args...),
	})
}

// Forecaster predicts future daily demand per product.
type Forecaster struct {
	logger          zerolog.Logger
	params          Params
	minRecords      int
	minTrainingRows int
}

// NewForecaster creates a Forecaster with the given boosting parameters.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewForecaster(logger zerolog.Logger, params Params) *Forecaster {
	return &Forecaster{
		logger:          logger.With().Str("component", "forecast").Logger(),
		params:          params,
		minRecords:      DefaultMinRecords,
		minTrainingRows: DefaultMinTrainingRows,
	}
}

// Params returns the boosting parameters.
func (f *Forecaster) Params() Params {
	return f.params
}

// Forecast fits a model on txns and predicts days future dates for every
// product, starting the day after the latest observed date.
//
// Each step feeds its prediction back as the next step's lag-1, so errors
// compound forward. Rolling features stay fixed at their observed values.
//
// A non-positive horizon returns models.ErrThresholdViolation. Any failure
// while building features, fitting or predicting returns a
// *models.ComputationError and no result.
func (f *Forecaster) Forecast(txns []models.Transaction, days int) (res *Result, err error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: forecast days must be positive, got %d", models.ErrThresholdViolation, days)
	}
	if err := f.params.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			f.logger.Error().Interface("panic", r).Msg("forecast panicked")
			res = nil
			err = models.NewComputationError("forecast", fmt.Errorf("panic: %v", r))
		}
	}()

	start := time.Now()
	if err := models.ValidateTransactions(txns); err != nil {
		return nil, models.NewComputationError("features", err)
	}

	res = &Result{Forecasts: make(map[string][]models.ForecastPoint), Products: []string{}}

	if len(txns) < f.minRecords {
		res.warn(models.WarnLowDataVolume, "",
			"%d records is below the %d recommended for a reliable forecast", len(txns), f.minRecords)
	}
	if len(txns) == 0 {
		res.Outcome = models.OutcomeInsufficientData
		return res, nil
	}

	set := BuildSeries(txns)
	codes := ProductCodes(set.Products)
	rows := BuildFeatureRows(set, codes)

	train := DropIncomplete(rows)
	if len(train) == 0 {
		train = ImputeLags(rows, set)
		res.LagPolicy = LagPolicyImpute
		res.warn(models.WarnLagImputation, "",
			"no product has more than %d days of history; missing lags were filled with product means", lagLong)
	}
	res.TrainingRows = len(train)
	if len(train) < f.minTrainingRows {
		res.warn(models.WarnLimitedTrainingData, "",
			"only %d training rows after feature construction", len(train))
	}

	model, err := f.fit(train, res)
	if err != nil {
		return nil, err
	}

	for _, product := range set.Products {
		history := set.Quantities(product)
		if len(history) == 0 {
			res.SkippedProducts++
			continue
		}
		points, err := f.forecastProduct(model, product, codes[product], history, set.LastDate, days, res)
		if err != nil {
			return nil, models.NewComputationError("predict", err)
		}
		res.Forecasts[product] = points
		res.Products = append(res.Products, product)
	}

	if len(res.Products) == 0 {
		res.Outcome = models.OutcomeNoQualifyingResults
	}

	f.logger.Debug().
		Int("records", len(txns)).
		Int("products", len(res.Products)).
		Int("training_rows", res.TrainingRows).
		Str("lag_policy", res.LagPolicy.String()).
		Int("days", days).
		Dur("duration", time.Since(start)).
		Msg("forecast complete")

	return res, nil
}

// fit trains on the split's training portion and scores the hold-out.
func (f *Forecaster) fit(rows []FeatureRow, res *Result) (*Model, error) {
	trainIdx, testIdx := TrainTestSplit(len(rows), DefaultTestFraction, f.params.Seed)

	x, y, err := DesignMatrix(pick(rows, trainIdx))
	if err != nil {
		return nil, models.NewComputationError("fit", err)
	}
	model, err := Fit(x, y, f.params)
	if err != nil {
		return nil, models.NewComputationError("fit", err)
	}

	if len(testIdx) == 0 {
		return model, nil
	}

	tx, ty, err := DesignMatrix(pick(rows, testIdx))
	if err != nil {
		return nil, models.NewComputationError("evaluate", err)
	}
	pred, err := model.PredictMatrix(tx)
	if err != nil {
		return nil, models.NewComputationError("evaluate", err)
	}
	rmse, err := RMSE(pred, ty)
	if err != nil {
		return nil, models.NewComputationError("evaluate", err)
	}
	res.EvalRMSE = &rmse

	if mean := stat.Mean(ty, nil); rmse > mean {
		res.warn(models.WarnElevatedRMSE, "",
			"hold-out RMSE %.3f exceeds the mean hold-out quantity %.3f", rmse, mean)
	}
	f.logger.Debug().Float64("rmse", rmse).Int("holdout", len(testIdx)).Msg("model evaluated")
	return model, nil
}

func pick(rows []FeatureRow, idx []int) []FeatureRow {
	out := make([]FeatureRow, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

// lag1For returns the observed last quantity on the first step and the
// previous step's prediction afterwards.
func lag1For(step int, lastObserved, previous float64) float64 {
	if step == 1 {
		return lastObserved
	}
	return previous
}

// lag7For resolves lag-7 from observed history.
func lag7For(history []float64) (float64, Lag7Policy) {
	if len(history) >= lagLong {
		return history[len(history)-lagLong], Lag7Observed
	}
	return trailingMean(history, len(history)), Lag7HistoryMean
}

// forecastProduct runs the recursive loop for one product.
func (f *Forecaster) forecastProduct(
	model *Model,
	product string,
	code int,
	history []float64,
	lastDate time.Time,
	days int,
	res *Result,
) ([]models.ForecastPoint, error) {
	last := history[len(history)-1]
	lag7, policy := lag7For(history)
	if policy == Lag7HistoryMean {
		res.warn(models.WarnShortHistory, product,
			"%d days of history; lag-7 uses the history mean", len(history))
	}
	rolling7 := trailingMean(history, rollingShort)
	rolling30 := trailingMean(history, rollingLong)

	points := make([]models.ForecastPoint, 0, days)
	previous := last
	for step := 1; step <= days; step++ {
		date := lastDate.AddDate(0, 0, step)
		lag1 := lag1For(step, last, previous)
		lag7v := lag7

		row := calendarRow(product, code, date)
		row.Lag1 = &lag1
		row.Lag7 = &lag7v
		row.Rolling7 = rolling7
		row.Rolling30 = rolling30

		vec, err := row.Vector()
		if err != nil {
			return nil, err
		}
		pred, err := model.Predict(vec)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return nil, fmt.Errorf("%s on %s: non-finite prediction", product, date.Format(models.DateLayout))
		}
		pred = math.Max(0, pred)

		points = append(points, models.ForecastPoint{Product: product, Date: date, Quantity: pred})
		previous = pred
	}
	return points, nil
}
