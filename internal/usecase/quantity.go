package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// defaultQuantityTolerance absorbs rounding differences across unit systems
// (e.g. 16 oz printed as "454 g")
const defaultQuantityTolerance = 0.05

// quantityTextRegex matches a leading number plus a trailing unit token, the
// shape catalog quantity strings take ("454 g", "16 fl oz", "1.5 liter")
var quantityTextRegex = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*([A-Za-z][A-Za-z.\-\s]*?)?\s*$`)

// massToGrams holds fixed conversion factors for mass units
var massToGrams = map[string]float64{
	"g": 1, "gram": 1, "grams": 1,
	"kg": 1000, "kilogram": 1000, "kilograms": 1000,
	"oz": 28.3495, "ounce": 28.3495, "ounces": 28.3495,
	"lb": 453.592, "lbs": 453.592, "pound": 453.592, "pounds": 453.592,
}

// volumeToMilliliters holds fixed conversion factors for volume units
var volumeToMilliliters = map[string]float64{
	"ml": 1, "milliliter": 1, "milliliters": 1,
	"l": 1000, "liter": 1000, "liters": 1000, "litre": 1000, "litres": 1000,
	"fl oz": 29.5735, "fl-oz": 29.5735, "floz": 29.5735, "fluid ounce": 29.5735, "fluid ounces": 29.5735,
	"cup": 236.588, "cups": 236.588,
	"pint": 473.176, "pints": 473.176, "pt": 473.176,
	"quart": 946.353, "quarts": 946.353, "qt": 946.353,
	"gallon": 3785.41, "gallons": 3785.41, "gal": 3785.41,
}

// NormalizeQuantity converts a quantity to grams for mass units and
// milliliters for volume units. Count-style units (each, count, pieces) and
// unrecognized units pass the value through unchanged: normalization is
// best-effort, never an error.
func NormalizeQuantity(value float64, unit string) float64 {
	u := canonicalUnit(unit)
	if factor, ok := massToGrams[u]; ok {
		return value * factor
	}
	if factor, ok := volumeToMilliliters[u]; ok {
		return value * factor
	}
	return value
}

// QuantityMatches parses a free-text candidate quantity ("454 g"), normalizes
// both sides, and reports whether they agree within 5% relative to the
// imported value. Unparsable candidate text never matches.
func QuantityMatches(importedValue float64, importedUnit, candidateText string) bool {
	return quantityWithinTolerance(importedValue, importedUnit, candidateText, defaultQuantityTolerance)
}

// quantityWithinTolerance is QuantityMatches with a caller-supplied tolerance
func quantityWithinTolerance(importedValue float64, importedUnit, candidateText string, tolerance float64) bool {
	if importedValue <= 0 {
		return false
	}

	candidateValue, candidateUnit, ok := parseQuantityText(candidateText)
	if !ok {
		return false
	}

	imported := NormalizeQuantity(importedValue, importedUnit)
	candidate := NormalizeQuantity(candidateValue, candidateUnit)
	if imported <= 0 {
		return false
	}

	return math.Abs(candidate-imported)/imported <= tolerance
}

// parseQuantityText extracts the leading number and trailing unit token from
// a catalog quantity string
func parseQuantityText(text string) (float64, string, bool) {
	m := quantityTextRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || value <= 0 {
		return 0, "", false
	}

	return value, m[2], true
}

// canonicalUnit lowercases a unit token, drops abbreviation periods, and
// collapses internal whitespace so "Fl. Oz" and "fl oz" look the same
func canonicalUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.ReplaceAll(u, ".", "")
	return strings.Join(strings.Fields(u), " ")
}
