package usecase

import (
	"strings"

	"github.com/shelfsync/backend/internal/domain"
)

// CompareFields produces the sparse, ordered list of field-level differences
// between a matched pair. Only fields present on both sides are compared:
// name, brand, and allergens with the shared fuzzy similarity, category with
// a containment check only. An empty result means no discrepancy.
func CompareFields(imported domain.ImportedRecord, candidate domain.CandidateRecord) []domain.FieldDiscrepancy {
	var discrepancies []domain.FieldDiscrepancy

	if bothPresent(imported.Name, candidate.Name) && !fuzzyEqual(imported.Name, candidate.Name) {
		discrepancies = append(discrepancies, domain.FieldDiscrepancy{
			Field:          domain.FieldName,
			ImportedValue:  imported.Name,
			CandidateValue: candidate.Name,
			Reason:         "product names differ beyond fuzzy tolerance",
		})
	}

	if bothPresent(imported.Brand, candidate.Brand) && !fuzzyEqual(imported.Brand, candidate.Brand) {
		discrepancies = append(discrepancies, domain.FieldDiscrepancy{
			Field:          domain.FieldBrand,
			ImportedValue:  imported.Brand,
			CandidateValue: candidate.Brand,
			Reason:         "brands differ beyond fuzzy tolerance",
		})
	}

	if bothPresent(imported.Category, candidate.Category) && !categoryContains(imported.Category, candidate.Category) {
		discrepancies = append(discrepancies, domain.FieldDiscrepancy{
			Field:          domain.FieldCategory,
			ImportedValue:  imported.Category,
			CandidateValue: candidate.Category,
			Reason:         "neither category contains the other",
		})
	}

	importedAllergens := joinAllergens(imported.Allergens)
	candidateAllergens := joinAllergens(candidate.Allergens)
	if bothPresent(importedAllergens, candidateAllergens) && !fuzzyEqual(importedAllergens, candidateAllergens) {
		discrepancies = append(discrepancies, domain.FieldDiscrepancy{
			Field:          domain.FieldAllergens,
			ImportedValue:  importedAllergens,
			CandidateValue: candidateAllergens,
			Reason:         "allergen lists differ beyond fuzzy tolerance",
		})
	}

	return discrepancies
}

// categoryContains checks containment in either direction, case-insensitive
func categoryContains(a, b string) bool {
	return containsFold(a, b) || containsFold(b, a)
}

// bothPresent reports whether both values are non-blank
func bothPresent(a, b string) bool {
	return strings.TrimSpace(a) != "" && strings.TrimSpace(b) != ""
}

// joinAllergens flattens an allergen list for comparison and display
func joinAllergens(allergens []string) string {
	return strings.Join(allergens, ", ")
}
