// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"sort"

	"github.com/tomtom215/basketcast/internal/models"
)

// GenerateRules derives every rule A -> C from the frequent itemsets where
// A and C partition an itemset of size two or more and confidence is at
// least minConfidence.
//
// Rules come out grouped by source itemset in itemset order. Within one
// itemset, consequents are enumerated by size and then in combination order.
// Every subset of a frequent itemset is itself frequent, so all supports are
// looked up rather than recounted.
func GenerateRules(enc *Encoding, itemsets []Itemset, minConfidence float64) []models.AssociationRule {
	n := float64(enc.NumTransactions())
	if n == 0 {
		return nil
	}

	counts := make(map[string]int, len(itemsets))
	for i := range itemsets {
		counts[itemsetKey(itemsets[i].Cols)] = itemsets[i].Count
	}

	var rules []models.AssociationRule
	for i := range itemsets {
		set := &itemsets[i]
		k := set.Len()
		if k < 2 {
			continue
		}

		for size := 1; size < k; size++ {
			forEachCombination(k, size, func(pick []int) {
				ante, cons := partition(set.Cols, pick)
				anteCount, okA := counts[itemsetKey(ante)]
				consCount, okC := counts[itemsetKey(cons)]
				if !okA || !okC || anteCount == 0 || consCount == 0 {
					return
				}

				confidence := float64(set.Count) / float64(anteCount)
				if confidence < minConfidence {
					return
				}
				rules = append(rules, buildRule(enc, ante, cons, set.Count, anteCount, consCount, n))
			})
		}
	}
	return rules
}

func buildRule(enc *Encoding, ante, cons []int, both, anteCount, consCount int, n float64) models.AssociationRule {
	support := float64(both) / n
	anteSupport := float64(anteCount) / n
	consSupport := float64(consCount) / n
	confidence := float64(both) / float64(anteCount)

	rule := models.AssociationRule{
		Antecedents:       enc.names(ante),
		Consequents:       enc.names(cons),
		Support:           support,
		Confidence:        confidence,
		Lift:              float64(both) * n / (float64(anteCount) * float64(consCount)),
		AntecedentSupport: anteSupport,
		ConsequentSupport: consSupport,
		Leverage:          support - anteSupport*consSupport,
	}
	if both < anteCount {
		conviction := (1 - consSupport) / (1 - confidence)
		rule.Conviction = &conviction
	}
	return rule
}

// partition splits cols into the complement of pick and pick itself.
func partition(cols, pick []int) (rest, picked []int) {
	picked = make([]int, 0, len(pick))
	rest = make([]int, 0, len(cols)-len(pick))
	p := 0
	for i, c := range cols {
		if p < len(pick) && pick[p] == i {
			picked = append(picked, c)
			p++
			continue
		}
		rest = append(rest, c)
	}
	return rest, picked
}

// forEachCombination calls fn with every r-combination of 0..n-1 in
// lexicographic order. fn must not retain its argument.
func forEachCombination(n, r int, fn func([]int)) {
	if r <= 0 || r > n {
		return
	}
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)

		i := r - 1
		for i >= 0 && idx[i] == n-r+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// RankRules orders rules by lift, descending. The sort is stable, so rules
// with equal lift keep their generation order.
func RankRules(rules []models.AssociationRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Lift > rules[j].Lift
	})
}
