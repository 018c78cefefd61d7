// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package association

import (
	"reflect"
	"testing"

	"github.com/tomtom215/basketcast/internal/models"
)

func TestBuildNetwork(t *testing.T) {
	rules := []models.AssociationRule{
		{Antecedents: []string{"beer"}, Consequents: []string{"diapers"}, Lift: 1.25},
		{Antecedents: []string{"bread", "milk"}, Consequents: []string{"diapers"}, Lift: 1.1},
	}

	net := BuildNetwork(rules)

	wantNodes := []Node{{"beer", 1}, {"diapers", 1}, {"bread", 1}, {"milk", 1}}
	if !reflect.DeepEqual(net.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", net.Nodes, wantNodes)
	}

	wantLinks := []Link{
		{Source: "beer", Target: "diapers", Value: 1.25},
		{Source: "bread", Target: "diapers", Value: 1.1},
		{Source: "milk", Target: "diapers", Value: 1.1},
	}
	if !reflect.DeepEqual(net.Links, wantLinks) {
		t.Errorf("Links = %v, want %v", net.Links, wantLinks)
	}
}

func TestBuildNetwork_Empty(t *testing.T) {
	net := BuildNetwork(nil)
	if net.Nodes == nil || net.Links == nil {
		t.Error("BuildNetwork(nil) should return empty, non-nil slices")
	}
	if len(net.Nodes) != 0 || len(net.Links) != 0 {
		t.Errorf("BuildNetwork(nil) = %d nodes, %d links, want 0, 0", len(net.Nodes), len(net.Links))
	}
}

func TestBuildLiftMatrix(t *testing.T) {
	rules := []models.AssociationRule{
		{Antecedents: []string{"a"}, Consequents: []string{"b"}, Lift: 2},
		{Antecedents: []string{"a"}, Consequents: []string{"b"}, Lift: 3},
		{Antecedents: []string{"b"}, Consequents: []string{"a"}, Lift: 1.5},
		{Antecedents: []string{"c"}, Consequents: []string{"a"}, Lift: 4},
	}

	tests := []struct {
		name        string
		maxProducts int
		wantProds   []string
		wantValues  [][]float64
	}{
		{
			name:        "all products",
			maxProducts: 10,
			wantProds:   []string{"a", "b", "c"},
			wantValues: [][]float64{
				{0, 3, 0},
				{1.5, 0, 0},
				{4, 0, 0},
			},
		},
		{
			name:        "top two by mentions",
			maxProducts: 2,
			wantProds:   []string{"a", "b"},
			wantValues: [][]float64{
				{0, 3},
				{1.5, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildLiftMatrix(rules, tt.maxProducts)
			if !reflect.DeepEqual(m.Products, tt.wantProds) {
				t.Errorf("Products = %v, want %v", m.Products, tt.wantProds)
			}
			if !reflect.DeepEqual(m.Values, tt.wantValues) {
				t.Errorf("Values = %v, want %v", m.Values, tt.wantValues)
			}
		})
	}
}

func TestBuildLiftMatrix_DefaultSize(t *testing.T) {
	var rules []models.AssociationRule
	for i := 0; i < 20; i++ {
		rules = append(rules, models.AssociationRule{
			Antecedents: []string{string(rune('a' + i))},
			Consequents: []string{"z"},
			Lift:        1,
		})
	}
	m := BuildLiftMatrix(rules, 0)
	if len(m.Products) != DefaultHeatmapProducts {
		t.Errorf("len(Products) = %d, want %d", len(m.Products), DefaultHeatmapProducts)
	}
	if m.Products[0] != "z" {
		t.Errorf("Products[0] = %q, want most mentioned product %q", m.Products[0], "z")
	}
}
