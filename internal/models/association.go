// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package models

// FrequentItemset is a set of products that co-occur in at least the
// minimum support fraction of transactions.
type FrequentItemset struct {
	// Items are product names in vocabulary order.
	Items []string `json:"items"`

	// Support is the fraction of transactions containing every item, in [0,1].
	Support float64 `json:"support"`
}

// AssociationRule is a directed implication Antecedents -> Consequents.
// Both sides are non-empty, disjoint, and drawn from one frequent itemset.
type AssociationRule struct {
	// Antecedents are the "if bought" products in vocabulary order.
	Antecedents []string `json:"antecedents"`

	// Consequents are the "then also bought" products in vocabulary order.
	Consequents []string `json:"consequents"`

	// Support is the fraction of transactions containing both sides.
	Support float64 `json:"support"`

	// Confidence is support(A∪C) / support(A), in [0,1].
	Confidence float64 `json:"confidence"`

	// Lift is confidence / support(C). Values above 1 indicate a positive association.
	Lift float64 `json:"lift"`

	// AntecedentSupport is support(A).
	AntecedentSupport float64 `json:"antecedent_support"`

	// ConsequentSupport is support(C).
	ConsequentSupport float64 `json:"consequent_support"`

	// Leverage is support(A∪C) - support(A)*support(C).
	Leverage float64 `json:"leverage"`

	// Conviction is (1 - support(C)) / (1 - confidence).
	// Nil when confidence is 1 and conviction is unbounded.
	Conviction *float64 `json:"conviction,omitempty"`
}

// Items returns every product referenced by the rule, antecedents first.
func (r *AssociationRule) Items() []string {
	out := make([]string, 0, len(r.Antecedents)+len(r.Consequents))
	out = append(out, r.Antecedents...)
	return append(out, r.Consequents...)
}
