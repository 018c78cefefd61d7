// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package forecast

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/basketcast/internal/models"
	"github.com/tomtom215/basketcast/internal/validation"
)

// Params configures gradient boosting.
type Params struct {
	// Trees is the number of boosting rounds.
	Trees int `json:"trees" koanf:"trees" validate:"min=1"`

	// LearningRate shrinks each tree's contribution.
	LearningRate float64 `json:"learning_rate" koanf:"learning_rate" validate:"gt=0,lte=1"`

	// MaxDepth limits the number of split levels per tree.
	MaxDepth int `json:"max_depth" koanf:"max_depth" validate:"min=1"`

	// Subsample is the fraction of rows drawn, without replacement, per tree.
	Subsample float64 `json:"subsample" koanf:"subsample" validate:"probability"`

	// ColSample is the fraction of features drawn per tree.
	ColSample float64 `json:"colsample" koanf:"colsample" validate:"probability"`

	// Lambda is the L2 penalty on leaf values.
	Lambda float64 `json:"lambda" koanf:"lambda" validate:"gte=0"`

	// MinChildWeight is the minimum number of rows on each side of a split.
	MinChildWeight float64 `json:"min_child_weight" koanf:"min_child_weight" validate:"gte=0"`

	// Seed drives row and feature sampling.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultParams returns the boosting parameters used in production.
func DefaultParams() Params {
	return Params{
		Trees:          100,
		LearningRate:   0.1,
		MaxDepth:       6,
		Subsample:      0.8,
		ColSample:      0.8,
		Lambda:         1,
		MinChildWeight: 1,
		Seed:           42,
	}
}

// Validate checks parameter ranges. The returned error matches
// models.ErrThresholdViolation.
func (p Params) Validate() error {
	if verr := validation.ValidateStruct(&p); verr != nil {
		return fmt.Errorf("%w: %s", models.ErrThresholdViolation, verr.Error())
	}
	return nil
}

// Model is a fitted gradient-boosted ensemble of regression trees.
type Model struct {
	base        float64
	trees       []regressionTree
	numFeatures int
}

// ErrEmptyTrainingSet is returned by Fit when there are no rows.
var ErrEmptyTrainingSet = errors.New("empty training set")

// Fit trains a squared-error boosted ensemble on x and y.
//
// The ensemble starts from the mean target. Each round samples rows without
// replacement and a subset of features, fits a tree to the current
// residuals, and adds it to the running prediction.
func Fit(x *mat.Dense, y []float64, p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, ErrEmptyTrainingSet
	}
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(y) != rows {
		return nil, fmt.Errorf("target length %d does not match %d rows", len(y), rows)
	}
	if !allFinite(y) || !allFinite(x.RawMatrix().Data) {
		return nil, errors.New("training data contains non-finite values")
	}

	//nolint:gosec // math/rand is fine for deterministic model sampling
	rng := rand.New(rand.NewSource(p.Seed))

	m := &Model{
		base:        stat.Mean(y, nil),
		numFeatures: cols,
	}

	pred := make([]float64, rows)
	for i := range pred {
		pred[i] = m.base
	}
	residual := make([]float64, rows)

	nRows := sampleSize(rows, p.Subsample)
	nCols := sampleSize(cols, p.ColSample)

	for round := 0; round < p.Trees; round++ {
		floats.SubTo(residual, y, pred)

		sampled := rng.Perm(rows)[:nRows]
		sort.Ints(sampled)
		features := rng.Perm(cols)[:nCols]
		sort.Ints(features)

		b := &treeBuilder{
			x:        x,
			residual: residual,
			features: features,
			params:   p,
		}
		b.grow(sampled, 0)
		tree := b.tree

		for i := 0; i < rows; i++ {
			pred[i] += tree.predict(x.RawRowView(i))
		}
		m.trees = append(m.trees, tree)
	}

	return m, nil
}

func sampleSize(n int, fraction float64) int {
	k := int(float64(n) * fraction)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Predict scores one feature vector.
func (m *Model) Predict(x []float64) (float64, error) {
	if len(x) != m.numFeatures {
		return 0, fmt.Errorf("feature vector has %d values, want %d", len(x), m.numFeatures)
	}
	out := m.base
	for i := range m.trees {
		out += m.trees[i].predict(x)
	}
	return out, nil
}

// PredictMatrix scores every row of x.
func (m *Model) PredictMatrix(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		v, err := m.Predict(x.RawRowView(i))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// NumTrees returns the number of boosting rounds in the ensemble.
func (m *Model) NumTrees() int {
	return len(m.trees)
}

// BaseScore returns the initial prediction, the mean training target.
func (m *Model) BaseScore() float64 {
	return m.base
}
