package domain

// CodeKind classifies a normalized product identifier code
type CodeKind string

const (
	CodeUpcA    CodeKind = "upc-a"
	CodeUpcE    CodeKind = "upc-e"
	CodeEan8    CodeKind = "ean-8"
	CodeEan13   CodeKind = "ean-13"
	CodeGtin14  CodeKind = "gtin-14"
	CodeIsbn10  CodeKind = "isbn-10"
	CodeIsbn13  CodeKind = "isbn-13"
	CodeSku     CodeKind = "sku"
	CodeUnknown CodeKind = "unknown"
)

// ImportedRecord is an externally supplied product record awaiting reconciliation.
// Optional fields may be blank; the engine degrades per-field rather than rejecting.
type ImportedRecord struct {
	Code          string   `json:"code,omitempty"`
	Name          string   `json:"name,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Category      string   `json:"category,omitempty"`
	Allergens     []string `json:"allergens,omitempty"`
	QuantityValue float64  `json:"quantityValue,omitempty"`
	QuantityUnit  string   `json:"quantityUnit,omitempty"`
}

// CandidateRecord is a reference-catalog entry. Read-only from the engine's
// perspective; Quantity is free text as stored in the catalog (e.g. "454 g").
type CandidateRecord struct {
	ID        string   `json:"id" yaml:"id"`
	Code      string   `json:"code,omitempty" yaml:"code"`
	Name      string   `json:"name" yaml:"name"`
	Brand     string   `json:"brand,omitempty" yaml:"brand"`
	Category  string   `json:"category,omitempty" yaml:"category"`
	Allergens []string `json:"allergens,omitempty" yaml:"allergens"`
	Quantity  string   `json:"quantity,omitempty" yaml:"quantity"`
}
