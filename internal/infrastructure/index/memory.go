package index

import (
	"strings"

	"github.com/shelfsync/backend/internal/domain"
	"github.com/shelfsync/backend/internal/usecase"
)

// MemoryIndex is a read-only candidate index built once per batch. It holds
// the normalized-code map, the lower-cased exact-name map, and the full
// candidate list. Building it up front amortizes lookup cost across the
// batch; the engine never queries storage per record.
type MemoryIndex struct {
	byCode  map[string]*domain.CandidateRecord
	byName  map[string]*domain.CandidateRecord
	records []*domain.CandidateRecord
}

// Build constructs an index over a snapshot of the candidates. Codes are
// keyed by their normalized form; names are keyed lower-cased with
// last-write-wins on duplicates.
func Build(candidates []domain.CandidateRecord) *MemoryIndex {
	idx := &MemoryIndex{
		byCode:  make(map[string]*domain.CandidateRecord, len(candidates)),
		byName:  make(map[string]*domain.CandidateRecord, len(candidates)),
		records: make([]*domain.CandidateRecord, 0, len(candidates)),
	}

	for i := range candidates {
		record := candidates[i]
		idx.records = append(idx.records, &record)

		if code := usecase.NormalizeCode(record.Code); code != "" {
			idx.byCode[code] = &record
		}
		// Keep the stored form reachable too: some catalogs carry codes
		// under an older normalization scheme, and the cascade's raw-value
		// tier relies on finding them as-is.
		if raw := strings.TrimSpace(record.Code); raw != "" {
			if _, exists := idx.byCode[raw]; !exists {
				idx.byCode[raw] = &record
			}
		}
		if name := strings.ToLower(strings.TrimSpace(record.Name)); name != "" {
			idx.byName[name] = &record
		}
	}

	return idx
}

// LookupCode finds a candidate by normalized (or raw, if stored that way) code
func (idx *MemoryIndex) LookupCode(code string) (*domain.CandidateRecord, bool) {
	candidate, ok := idx.byCode[code]
	return candidate, ok
}

// LookupName finds a candidate by lower-cased exact name
func (idx *MemoryIndex) LookupName(name string) (*domain.CandidateRecord, bool) {
	candidate, ok := idx.byName[name]
	return candidate, ok
}

// Candidates returns the full candidate list for strategies that scan
func (idx *MemoryIndex) Candidates() []*domain.CandidateRecord {
	return idx.records
}

// Size returns the number of indexed candidates
func (idx *MemoryIndex) Size() int {
	return len(idx.records)
}
