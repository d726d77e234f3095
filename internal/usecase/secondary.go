package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/shelfsync/backend/internal/domain"
)

// partialCodeDigits is how many trailing digits the partial-code strategy
// compares; truncated or padded codes from noisy sources usually keep their
// tail intact
const partialCodeDigits = 8

// maxSecondaryConfidence keeps every fallback strategy strictly below the
// confidence reserved for verified code matches
const maxSecondaryConfidence = 0.99

// SecondaryMatch is a fallback-search hit that improved on the primary
// cascade's confidence
type SecondaryMatch struct {
	Candidate  *domain.CandidateRecord
	Method     string
	Confidence float64
	Strategy   string
	Multiple   bool
}

// PerformSecondarySearch runs the fallback strategies for a record whose
// primary confidence is below certainty. Each strategy's result replaces the
// current best only when its confidence strictly exceeds it, so the search
// can only improve on the primary tier, never regress it. Returns nil when
// no strategy beat currentConfidence.
func (s *ReconcileService) PerformSecondarySearch(ctx context.Context, imported domain.ImportedRecord, idx domain.CandidateIndex, currentConfidence float64) *SecondaryMatch {
	best := currentConfidence
	var match *SecondaryMatch

	if hit := s.matchPartialCode(ctx, imported, idx); hit != nil && hit.Confidence > best {
		best = hit.Confidence
		match = hit
	}

	if hit := s.matchNormalizedNameBrand(ctx, imported, idx); hit != nil && hit.Confidence > best {
		best = hit.Confidence
		match = hit
	}

	if hit := s.matchMultiField(ctx, imported, idx); hit != nil && hit.Confidence > best {
		match = hit
	}

	return match
}

// matchPartialCode compares the trailing digits of the imported code against
// the trailing digits of each candidate code. First hit wins.
func (s *ReconcileService) matchPartialCode(ctx context.Context, imported domain.ImportedRecord, idx domain.CandidateIndex) *SecondaryMatch {
	code := NormalizeCode(imported.Code)
	if !isNumericCode(code) || len(code) < partialCodeDigits {
		return nil
	}
	suffix := code[len(code)-partialCodeDigits:]

	for _, candidate := range idx.Candidates() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		candidateCode := NormalizeCode(candidate.Code)
		if !isNumericCode(candidateCode) || len(candidateCode) < partialCodeDigits {
			continue
		}

		if strings.HasSuffix(candidateCode, suffix) {
			s.debugf("[SECONDARY] partial-code hit: %q ~ %q -> %s", code, candidateCode, candidate.ID)
			return &SecondaryMatch{
				Candidate:  candidate,
				Method:     MethodPartialCode,
				Confidence: s.cfg.PartialCodeConfidence,
				Strategy:   "partial-code",
			}
		}
	}

	return nil
}

// matchNormalizedNameBrand delegates the imported name to the external
// text-normalization collaborator and fuzzy-matches the result against
// candidate names. A collaborator failure skips the strategy; the record
// still gets the remaining strategies.
func (s *ReconcileService) matchNormalizedNameBrand(ctx context.Context, imported domain.ImportedRecord, idx domain.CandidateIndex) *SecondaryMatch {
	name := strings.TrimSpace(imported.Name)
	if name == "" {
		return nil
	}

	normalized, err := s.normalizedName(ctx, name)
	if err != nil {
		log.Printf("[SECONDARY] name normalization unavailable for %q: %v", name, err)
		return nil
	}

	var bestCandidate *domain.CandidateRecord
	var bestScore float64
	var bestBranded *domain.CandidateRecord
	var bestBrandedScore float64

	for _, candidate := range idx.Candidates() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		score := SimilarityScore(normalized, candidate.Name)
		if score > bestScore {
			bestScore = score
			bestCandidate = candidate
		}
		if imported.Brand != "" && candidate.Brand != "" && fuzzyEqual(imported.Brand, candidate.Brand) && score > bestBrandedScore {
			bestBrandedScore = score
			bestBranded = candidate
		}
	}

	if bestBranded != nil && bestBrandedScore >= s.cfg.NameMatchThreshold {
		s.debugf("[SECONDARY] name+brand hit: %q -> %s (score %.2f)", normalized, bestBranded.ID, bestBrandedScore)
		return &SecondaryMatch{
			Candidate:  bestBranded,
			Method:     MethodNameBrand,
			Confidence: s.cfg.NameBrandConfidence,
			Strategy:   "name-brand",
		}
	}

	// A generic normalized name ("bread", "open item") is too likely to hit
	// an unrelated candidate, so name-only acceptance is gated on it.
	if bestCandidate != nil && bestScore >= s.cfg.NameMatchThreshold && !isGenericName(normalized) {
		s.debugf("[SECONDARY] name-only hit: %q -> %s (score %.2f)", normalized, bestCandidate.ID, bestScore)
		return &SecondaryMatch{
			Candidate:  bestCandidate,
			Method:     MethodNameBrand,
			Confidence: bestScore * s.cfg.NameOnlyScale,
			Strategy:   "name-brand",
		}
	}

	return nil
}

// matchMultiField filters candidates by brand (and category when available),
// then scores each survivor as a weighted sum of brand, category, quantity,
// and name signals. The top scorer is accepted only at or above the
// acceptance threshold; a tie for the top reports multiple matches.
func (s *ReconcileService) matchMultiField(ctx context.Context, imported domain.ImportedRecord, idx domain.CandidateIndex) *SecondaryMatch {
	brand := strings.TrimSpace(imported.Brand)
	if brand == "" {
		return nil
	}

	var filtered []*domain.CandidateRecord
	for _, candidate := range idx.Candidates() {
		if candidate.Brand == "" {
			continue
		}
		if containsFold(candidate.Brand, brand) || containsFold(brand, candidate.Brand) {
			filtered = append(filtered, candidate)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	if category := strings.TrimSpace(imported.Category); category != "" {
		var narrowed []*domain.CandidateRecord
		for _, candidate := range filtered {
			if candidate.Category != "" && (containsFold(candidate.Category, category) || containsFold(category, candidate.Category)) {
				narrowed = append(narrowed, candidate)
			}
		}
		if len(narrowed) > 0 {
			filtered = narrowed
		}
	}

	var bestCandidate *domain.CandidateRecord
	var bestScore float64
	ties := 0

	for _, candidate := range filtered {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		score := s.cfg.BrandWeight
		if imported.Category != "" && candidate.Category != "" &&
			(containsFold(candidate.Category, imported.Category) || containsFold(imported.Category, candidate.Category)) {
			score += s.cfg.CategoryWeight
		}
		if imported.QuantityValue > 0 && candidate.Quantity != "" &&
			quantityWithinTolerance(imported.QuantityValue, imported.QuantityUnit, candidate.Quantity, s.cfg.QuantityTolerance) {
			score += s.cfg.QuantityWeight
		}
		score += s.cfg.NameWeight * SimilarityScore(imported.Name, candidate.Name)

		switch {
		case score > bestScore:
			bestScore = score
			bestCandidate = candidate
			ties = 0
		case score == bestScore && bestCandidate != nil && candidate != bestCandidate:
			ties++
		}
	}

	if bestCandidate == nil || bestScore < s.cfg.MultiFieldThreshold {
		return nil
	}

	// A perfect weighted score sums to 1.0, but certainty is reserved for
	// verified code matches
	if bestScore >= verifiedCodeConfidence {
		bestScore = maxSecondaryConfidence
	}

	s.debugf("[SECONDARY] multi-field hit: %s (score %.2f, ties %d)", bestCandidate.ID, bestScore, ties)
	return &SecondaryMatch{
		Candidate:  bestCandidate,
		Method:     MethodMultiField,
		Confidence: bestScore,
		Strategy:   "multi-field",
		Multiple:   ties > 0,
	}
}
