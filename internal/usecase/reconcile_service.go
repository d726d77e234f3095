package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/shelfsync/backend/internal/domain"
)

// verifiedCodeConfidence is reserved for code-tier matches; no other method
// may ever reach it
const verifiedCodeConfidence = 1.0

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// MatchConfig holds the product-tuned matching constants. The defaults carry
// the shipped tuning; they are configuration so they can be adjusted without
// touching control flow.
type MatchConfig struct {
	NameExactConfidence   float64 // primary tier 4
	PartialCodeConfidence float64 // secondary partial-code strategy
	NameBrandConfidence   float64 // secondary name+brand strategy with a brand hit
	NameMatchThreshold    float64 // minimum similarity for a name-only secondary match
	NameOnlyScale         float64 // scales a name-only score below the code-match ceiling
	MultiFieldThreshold   float64 // acceptance floor for the multi-field strategy
	BrandWeight           float64
	CategoryWeight        float64
	QuantityWeight        float64
	NameWeight            float64
	QuantityTolerance     float64 // relative tolerance for quantity agreement
	DiscrepancyPenalty    float64 // confidence deduction per discrepant field
	ConfidenceFloor       float64 // penalties never push confidence below this
	MinCodeLookupLength   int     // codes shorter than this never hit the code map
	CacheTTL              time.Duration
	EnableDebugLogging    bool
}

// DefaultMatchConfig returns the shipped tuning
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		NameExactConfidence:   0.85,
		PartialCodeConfidence: 0.75,
		NameBrandConfidence:   0.85,
		NameMatchThreshold:    0.70,
		NameOnlyScale:         0.85,
		MultiFieldThreshold:   0.85,
		BrandWeight:           0.30,
		CategoryWeight:        0.25,
		QuantityWeight:        0.20,
		NameWeight:            0.25,
		QuantityTolerance:     0.05,
		DiscrepancyPenalty:    0.1,
		ConfidenceFloor:       0.1,
		MinCodeLookupLength:   8,
		CacheTTL:              24 * time.Hour,
	}
}

// ReconcileService matches imported product records against a pre-built
// candidate index. It is a pure, synchronous computation with no internal
// goroutines and no shared mutable state between calls, so different records
// may be compared in parallel against the same index.
type ReconcileService struct {
	cfg        MatchConfig
	normalizer domain.NameNormalizer
	cache      domain.CacheRepository
}

// NewReconcileService creates a reconcile service. The normalizer and cache
// may be nil: without a normalizer the name+brand secondary strategy is
// skipped, and without a cache every distinct name hits the normalizer.
func NewReconcileService(cfg MatchConfig, normalizer domain.NameNormalizer, cache domain.CacheRepository) *ReconcileService {
	defaults := DefaultMatchConfig()
	if cfg.NameExactConfidence <= 0 {
		cfg.NameExactConfidence = defaults.NameExactConfidence
	}
	if cfg.PartialCodeConfidence <= 0 {
		cfg.PartialCodeConfidence = defaults.PartialCodeConfidence
	}
	if cfg.NameBrandConfidence <= 0 {
		cfg.NameBrandConfidence = defaults.NameBrandConfidence
	}
	if cfg.NameMatchThreshold <= 0 {
		cfg.NameMatchThreshold = defaults.NameMatchThreshold
	}
	if cfg.NameOnlyScale <= 0 {
		cfg.NameOnlyScale = defaults.NameOnlyScale
	}
	if cfg.MultiFieldThreshold <= 0 {
		cfg.MultiFieldThreshold = defaults.MultiFieldThreshold
	}
	if cfg.BrandWeight <= 0 {
		cfg.BrandWeight = defaults.BrandWeight
	}
	if cfg.CategoryWeight <= 0 {
		cfg.CategoryWeight = defaults.CategoryWeight
	}
	if cfg.QuantityWeight <= 0 {
		cfg.QuantityWeight = defaults.QuantityWeight
	}
	if cfg.NameWeight <= 0 {
		cfg.NameWeight = defaults.NameWeight
	}
	if cfg.QuantityTolerance <= 0 {
		cfg.QuantityTolerance = defaults.QuantityTolerance
	}
	if cfg.DiscrepancyPenalty <= 0 {
		cfg.DiscrepancyPenalty = defaults.DiscrepancyPenalty
	}
	if cfg.ConfidenceFloor <= 0 {
		cfg.ConfidenceFloor = defaults.ConfidenceFloor
	}
	if cfg.MinCodeLookupLength <= 0 {
		cfg.MinCodeLookupLength = defaults.MinCodeLookupLength
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}

	return &ReconcileService{
		cfg:        cfg,
		normalizer: normalizer,
		cache:      cache,
	}
}

// Compare runs the full pipeline for one imported record: primary cascade,
// secondary search when confidence is below certainty, then discrepancy
// detection. Every comparison terminates with a definite status; an
// unexpected failure becomes a result with status Error instead of
// propagating, so one bad record never aborts a batch.
func (s *ReconcileService) Compare(ctx context.Context, imported domain.ImportedRecord, idx domain.CandidateIndex) (result *domain.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RECONCILE] recovered while comparing record (code=%q name=%q): %v", imported.Code, imported.Name, r)
			result = &domain.MatchResult{
				Imported:      imported,
				Status:        domain.StatusError,
				FailureReason: fmt.Sprintf("comparison failed: %v", r),
			}
		}
	}()

	candidate, method, confidence := s.MatchPrimary(imported, idx)

	result = &domain.MatchResult{
		Imported:   imported,
		Candidate:  candidate,
		Method:     method,
		Confidence: confidence,
	}

	multiple := false
	if confidence < verifiedCodeConfidence {
		if sec := s.PerformSecondarySearch(ctx, imported, idx, confidence); sec != nil {
			candidate = sec.Candidate
			confidence = sec.Confidence
			multiple = sec.Multiple
			result.Candidate = candidate
			result.Confidence = confidence
			result.Method = sec.Method
			result.UsedSecondary = true
			result.SecondaryStrategy = sec.Strategy
		}
	}

	if candidate == nil {
		result.Status = domain.StatusUnmatched
		result.Confidence = 0
		return result
	}

	result.Status = domain.StatusMatched
	if multiple {
		result.Status = domain.StatusMultipleMatches
	}

	result.Discrepancies = CompareFields(imported, *candidate)

	// A verified code match is truth: discrepancies stay attached as
	// informational metadata and never downgrade the status.
	if len(result.Discrepancies) > 0 && confidence < verifiedCodeConfidence {
		if !multiple {
			result.Status = domain.StatusDiscrepancy
		}
		confidence -= s.cfg.DiscrepancyPenalty * float64(len(result.Discrepancies))
		if confidence < s.cfg.ConfidenceFloor {
			confidence = s.cfg.ConfidenceFloor
		}
		result.Confidence = confidence
	}

	return result
}

// normalizedName returns the collaborator-normalized form of name, consulting
// the cache first. A collaborator failure is surfaced to the caller, which
// treats the strategy as unavailable rather than failing the record.
func (s *ReconcileService) normalizedName(ctx context.Context, name string) (string, error) {
	if s.normalizer == nil {
		return "", domain.ErrNormalizerUnavailable
	}

	key := "normalize:" + cacheKeyComponent(name)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			return cached, nil
		}
	}

	normalized, err := s.normalizer.NormalizeName(ctx, name)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, normalized, s.cfg.CacheTTL); err != nil {
			s.debugf("[RECONCILE] cache set failed for %q: %v", key, err)
		}
	}

	return normalized, nil
}

// cacheKeyComponent normalizes a string for use as a cache key component
func cacheKeyComponent(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
