package usecase

import (
	"math"
	"testing"
)

func TestSimilarityScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"exact match", "Whole Milk", "whole milk", 1.0},
		{"whitespace insensitive", "  Whole   Milk ", "whole milk", 1.0},
		{"containment either direction", "Organic Whole Milk", "whole milk", 0.8},
		{"token overlap ratio", "organic whole milk", "fresh whole milk", 2.0 / 3.0},
		{"no overlap", "chocolate cake", "grilled chicken", 0},
		{"empty side scores zero", "", "whole milk", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityScore(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SimilarityScore(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"organic whole milk", "fresh whole milk"},
			{"Acme Peanut Butter", "peanut butter"},
		}
		for _, p := range pairs {
			if SimilarityScore(p[0], p[1]) != SimilarityScore(p[1], p[0]) {
				t.Errorf("SimilarityScore not symmetric for %q / %q", p[0], p[1])
			}
		}
	})
}

func TestIsGenericName(t *testing.T) {
	generic := []string{
		"milk",              // short and a lone foodstuff word
		"n/a",               // placeholder
		"unknown",           // placeholder, length-exempt check not needed
		"open item grocery", // catch-all substring
		"assorted snacks",   // catch-all substring
		"chocolate",         // lone foodstuff word above the length floor
		"short",             // below the length floor
	}
	for _, name := range generic {
		if !isGenericName(name) {
			t.Errorf("isGenericName(%q) = false, want true", name)
		}
	}

	specific := []string{
		"Acme Organic Whole Milk",
		"peanut butter crunch",
		"sparkling water lime",
	}
	for _, name := range specific {
		if isGenericName(name) {
			t.Errorf("isGenericName(%q) = true, want false", name)
		}
	}
}
