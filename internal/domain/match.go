package domain

// MatchStatus is the terminal status of one comparison run
type MatchStatus string

const (
	StatusMatched         MatchStatus = "matched"
	StatusUnmatched       MatchStatus = "unmatched"
	StatusDiscrepancy     MatchStatus = "discrepancy"
	StatusMultipleMatches MatchStatus = "multiple_matches"
	StatusError           MatchStatus = "error"
)

// FieldKind tags which record field a discrepancy refers to
type FieldKind string

const (
	FieldName      FieldKind = "name"
	FieldBrand     FieldKind = "brand"
	FieldCategory  FieldKind = "category"
	FieldAllergens FieldKind = "allergens"
)

// FieldDiscrepancy is one field-level difference between a matched pair.
// It is a value owned by its parent MatchResult.
type FieldDiscrepancy struct {
	Field          FieldKind `json:"field"`
	ImportedValue  string    `json:"importedValue"`
	CandidateValue string    `json:"candidateValue"`
	Reason         string    `json:"reason"`
}

// MatchResult is the outcome of comparing one imported record against the
// catalog. Never mutated after the engine returns it; a rerun produces a new
// result.
type MatchResult struct {
	Imported          ImportedRecord     `json:"imported"`
	Candidate         *CandidateRecord   `json:"candidate,omitempty"`
	Status            MatchStatus        `json:"status"`
	Confidence        float64            `json:"confidence"` // 0-1, 1.0 reserved for verified code matches
	Method            string             `json:"method,omitempty"`
	Discrepancies     []FieldDiscrepancy `json:"discrepancies,omitempty"`
	UsedSecondary     bool               `json:"usedSecondary"`
	SecondaryStrategy string             `json:"secondaryStrategy,omitempty"`
	FailureReason     string             `json:"failureReason,omitempty"`
}
