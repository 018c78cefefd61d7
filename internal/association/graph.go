// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"sort"

	"github.com/tomtom215/basketcast/internal/models"
)

// DefaultHeatmapProducts is the number of products kept in a lift matrix
// when the caller does not choose.
const DefaultHeatmapProducts = 15

// Node is a product in the rule network.
type Node struct {
	ID    string `json:"id"`
	Group int    `json:"group"`
}

// Link is a directed antecedent -> consequent edge weighted by rule lift.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Network is a force-graph view of a rule set.
type Network struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// BuildNetwork turns rules into a product graph. Nodes appear in order of
// first mention; one link is emitted per antecedent/consequent pair per rule.
func BuildNetwork(rules []models.AssociationRule) Network {
	net := Network{Nodes: []Node{}, Links: []Link{}}
	seen := make(map[string]struct{})

	addNode := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		net.Nodes = append(net.Nodes, Node{ID: id, Group: 1})
	}

	for i := range rules {
		rule := &rules[i]
		for _, id := range rule.Items() {
			addNode(id)
		}
		for _, a := range rule.Antecedents {
			for _, c := range rule.Consequents {
				net.Links = append(net.Links, Link{Source: a, Target: c, Value: rule.Lift})
			}
		}
	}
	return net
}

// LiftMatrix is a square product x product heatmap. Values[i][j] is the
// highest lift of any rule with Products[i] among its antecedents and
// Products[j] among its consequents, or 0 when there is none.
type LiftMatrix struct {
	Products []string    `json:"products"`
	Values   [][]float64 `json:"values"`
}

// BuildLiftMatrix keeps the maxProducts products mentioned most often across
// rules and fills their pairwise lift matrix. Ties keep first-mention order.
// A non-positive maxProducts selects DefaultHeatmapProducts.
func BuildLiftMatrix(rules []models.AssociationRule, maxProducts int) LiftMatrix {
	if maxProducts <= 0 {
		maxProducts = DefaultHeatmapProducts
	}

	freq := make(map[string]int)
	var order []string
	for i := range rules {
		for _, p := range rules[i].Items() {
			if _, ok := freq[p]; !ok {
				order = append(order, p)
			}
			freq[p]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > maxProducts {
		order = order[:maxProducts]
	}

	index := make(map[string]int, len(order))
	for i, p := range order {
		index[p] = i
	}

	values := make([][]float64, len(order))
	for i := range values {
		values[i] = make([]float64, len(order))
	}

	for i := range rules {
		rule := &rules[i]
		for _, a := range rule.Antecedents {
			ai, ok := index[a]
			if !ok {
				continue
			}
			for _, c := range rule.Consequents {
				ci, ok := index[c]
				if !ok || ai == ci {
					continue
				}
				if rule.Lift > values[ai][ci] {
					values[ai][ci] = rule.Lift
				}
			}
		}
	}

	return LiftMatrix{Products: order, Values: values}
}
