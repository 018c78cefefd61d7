// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

// Package association mines product co-occurrence rules from transactions.
//
// # Pipeline
//
// A mining run has four steps, each exposed on its own so tests can drive
// them directly:
//
//  1. Encode: group rows by transaction into a boolean item-presence matrix.
//     The matrix is stored column-wise, one bitset per product over
//     transaction indices, so the support of an itemset is the popcount of
//     the intersection of its columns.
//  2. FrequentItemsets: level-wise Apriori search. A candidate of size k+1
//     is only built when every one of its k-subsets is frequent.
//  3. GenerateRules: every antecedent/consequent split of every frequent
//     itemset of size two or more, kept when confidence clears the threshold.
//  4. RankRules: stable sort by lift, descending.
//
// # Empty Results
//
// "Nothing found" is not an error. Fewer than two transactions, no frequent
// itemset, or no rule above the confidence threshold all return a Result
// whose Outcome says why it is empty. Errors are reserved for threshold
// violations and malformed input.
//
// # Usage
//
//	miner := association.NewMiner(logger)
//	res, err := miner.Mine(txns, association.Options{
//	    MinSupport:    0.05,
//	    MinConfidence: 0.2,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, rule := range res.Rules {
//	    fmt.Println(rule.Antecedents, "->", rule.Consequents, rule.Lift)
//	}
//
// # Thread Safety
//
// A Miner holds no per-run state; Mine may be called concurrently.
package association
