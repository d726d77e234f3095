package usecase

import (
	"regexp"
	"strings"
)

var multipleSpacesRegex = regexp.MustCompile(`\s+`)

// fuzzyEqualThreshold is the token-overlap score at or above which two field
// values are treated as the same for discrepancy purposes
const fuzzyEqualThreshold = 0.5

// minNameLength is the shortest name usable for name-only matching; anything
// shorter is too likely to collide across a large catalog
const minNameLength = 8

// genericPlaceholders are placeholder values that mean "no real name"
var genericPlaceholders = map[string]bool{
	"n/a": true, "na": true, "none": true, "unknown": true,
	"tbd": true, "misc": true, "other": true, "test": true,
}

// genericSubstrings mark catch-all names that map to no single real product
var genericSubstrings = []string{
	"open item", "assorted", "generic", "variety", "misc item", "no name", "unbranded",
}

// genericSingleWords are common single-word foodstuff nouns. Alone, each is
// too likely to produce an unrelated match across a large catalog.
var genericSingleWords = map[string]bool{
	"bread": true, "milk": true, "cheese": true, "butter": true, "yogurt": true,
	"eggs": true, "chicken": true, "beef": true, "pork": true, "fish": true,
	"rice": true, "pasta": true, "cereal": true, "flour": true, "sugar": true,
	"salt": true, "pepper": true, "water": true, "juice": true, "soda": true,
	"coffee": true, "tea": true, "chocolate": true, "cookies": true, "crackers": true,
	"apples": true, "bananas": true, "oranges": true, "potatoes": true, "onions": true,
	"tomatoes": true, "lettuce": true, "carrots": true, "beans": true, "soup": true,
	"sauce": true, "dressing": true, "ketchup": true, "mustard": true, "mayonnaise": true,
}

// SimilarityScore computes how alike two strings are, case and whitespace
// insensitive: 1.0 for equality, 0.8 for containment in either direction,
// otherwise the ratio of common whitespace-delimited words to the larger
// word count.
func SimilarityScore(a, b string) float64 {
	left := normalizeForComparison(a)
	right := normalizeForComparison(b)

	if left == "" || right == "" {
		return 0
	}
	if left == right {
		return 1.0
	}
	if strings.Contains(left, right) || strings.Contains(right, left) {
		return 0.8
	}

	leftWords := strings.Fields(left)
	rightWords := strings.Fields(right)
	longest := len(leftWords)
	if len(rightWords) > longest {
		longest = len(rightWords)
	}
	if longest == 0 {
		return 0
	}

	common := countCommonWords(leftWords, rightWords)
	return float64(common) / float64(longest)
}

// fuzzyEqual reports whether two field values are close enough to not count
// as a discrepancy
func fuzzyEqual(a, b string) bool {
	return SimilarityScore(a, b) >= fuzzyEqualThreshold
}

// isGenericName excludes a normalized name from name-only matching: too
// short, a placeholder, a catch-all, or a lone generic foodstuff word.
func isGenericName(name string) bool {
	n := normalizeForComparison(name)

	if len(n) < minNameLength {
		return true
	}
	if genericPlaceholders[n] {
		return true
	}
	for _, sub := range genericSubstrings {
		if strings.Contains(n, sub) {
			return true
		}
	}
	if !strings.Contains(n, " ") && genericSingleWords[n] {
		return true
	}

	return false
}

// normalizeForComparison lowercases, trims, and collapses whitespace
func normalizeForComparison(s string) string {
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(strings.ToLower(s), " "))
}

// countCommonWords returns the number of distinct words present in both lists
func countCommonWords(left, right []string) int {
	set := make(map[string]bool, len(left))
	for _, w := range left {
		set[w] = true
	}

	count := 0
	seen := make(map[string]bool)
	for _, w := range right {
		if set[w] && !seen[w] {
			count++
			seen[w] = true
		}
	}

	return count
}

// containsFold reports case-insensitive substring containment
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
