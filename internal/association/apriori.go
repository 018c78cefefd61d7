// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Itemset is a frequent itemset expressed in column indices of an Encoding.
type Itemset struct {
	// Cols are strictly increasing column indices.
	Cols []int

	// Count is the number of transactions containing every column.
	Count int

	// Support is Count divided by the number of transactions.
	Support float64

	tids *bitset.BitSet
}

// Len returns the itemset size.
func (s *Itemset) Len() int {
	return len(s.Cols)
}

// itemsetKey renders column indices as a map key.
func itemsetKey(cols []int) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// FrequentItemsets runs level-wise Apriori over enc and returns every itemset
// whose support is at least minSupport. maxLen caps the itemset size; zero
// disables the cap.
//
// Results are ordered by size, then lexicographically by column index.
// Support is anti-monotone, so a candidate of size k+1 is built only from
// two frequent k-itemsets sharing their first k-1 columns and kept only when
// all of its k-subsets are frequent.
func FrequentItemsets(enc *Encoding, minSupport float64, maxLen int) []Itemset {
	n := enc.NumTransactions()
	if n == 0 {
		return nil
	}

	frequent := func(count int) (float64, bool) {
		support := float64(count) / float64(n)
		return support, support >= minSupport
	}

	var level []Itemset
	for j := 0; j < enc.NumItems(); j++ {
		tids := enc.column(j)
		count := int(tids.Count())
		if support, ok := frequent(count); ok {
			level = append(level, Itemset{
				Cols:    []int{j},
				Count:   count,
				Support: support,
				tids:    tids,
			})
		}
	}

	var all []Itemset
	for k := 1; len(level) > 0; k++ {
		all = append(all, level...)
		if maxLen > 0 && k >= maxLen {
			break
		}
		level = nextLevel(level, frequent)
	}
	return all
}

// nextLevel joins frequent k-itemsets into frequent (k+1)-itemsets.
func nextLevel(level []Itemset, frequent func(int) (float64, bool)) []Itemset {
	known := make(map[string]struct{}, len(level))
	for i := range level {
		known[itemsetKey(level[i].Cols)] = struct{}{}
	}

	var next []Itemset
	for i := range level {
		a := &level[i]
		k := len(a.Cols)
		for j := i + 1; j < len(level); j++ {
			b := &level[j]
			// Sorted input keeps itemsets sharing a prefix contiguous.
			if !samePrefix(a.Cols, b.Cols, k-1) {
				break
			}

			cand := make([]int, k+1)
			copy(cand, a.Cols)
			cand[k] = b.Cols[k-1]

			if !subsetsFrequent(cand, known) {
				continue
			}

			tids := a.tids.Intersection(b.tids)
			count := int(tids.Count())
			if support, ok := frequent(count); ok {
				next = append(next, Itemset{
					Cols:    cand,
					Count:   count,
					Support: support,
					tids:    tids,
				})
			}
		}
	}
	return next
}

func samePrefix(a, b []int, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// subsetsFrequent checks the k-subsets of cand that are not one of its two
// parents.
func subsetsFrequent(cand []int, known map[string]struct{}) bool {
	k := len(cand)
	sub := make([]int, 0, k-1)
	for drop := 0; drop < k-2; drop++ {
		sub = sub[:0]
		sub = append(sub, cand[:drop]...)
		sub = append(sub, cand[drop+1:]...)
		if _, ok := known[itemsetKey(sub)]; !ok {
			return false
		}
	}
	return true
}
