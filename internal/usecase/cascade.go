package usecase

import (
	"log"
	"strings"

	"github.com/shelfsync/backend/internal/domain"
)

// Match method tags carried on MatchResult
const (
	MethodCodeExact   = "code-exact"
	MethodCodeLegacy  = "code-legacy"
	MethodCodeRaw     = "code-raw"
	MethodNameExact   = "name-exact"
	MethodPartialCode = "code-partial"
	MethodNameBrand   = "name-brand"
	MethodMultiField  = "multi-field"
)

// MatchPrimary runs the fixed-order primary cascade. Tiers run strictly in
// order and the first hit wins, so a verified code match always outranks a
// name match. Returns the candidate, the method tag, and the confidence
// (1.0 for any code tier), or (nil, "", 0) when no tier hits.
func (s *ReconcileService) MatchPrimary(imported domain.ImportedRecord, idx domain.CandidateIndex) (*domain.CandidateRecord, string, float64) {
	raw := strings.TrimSpace(imported.Code)
	code := NormalizeCode(raw)
	kind := DetectType(raw)

	// Codes shorter than the lookup floor are low-trust internal SKUs and
	// must never hit the catalog code map; a coincidental collision there
	// would masquerade as a verified match.
	if kind != domain.CodeSku && kind != domain.CodeUnknown && len(code) >= s.cfg.MinCodeLookupLength {
		// Tier 1: exact normalized-code match
		if candidate, ok := idx.LookupCode(code); ok {
			s.debugf("[MATCH] code-exact hit for %q -> %s", code, candidate.ID)
			return candidate, MethodCodeExact, verifiedCodeConfidence
		}

		// Tier 2: some catalog entries carry an older normalization that
		// dropped the leading zero from 13-digit codes
		if len(code) == 13 && strings.HasPrefix(code, "0") {
			if candidate, ok := idx.LookupCode(code[1:]); ok {
				s.debugf("[MATCH] code-legacy hit for %q -> %s", code, candidate.ID)
				return candidate, MethodCodeLegacy, verifiedCodeConfidence
			}
		}

		// Tier 3: retry with the untouched input when normalization changed it
		if raw != "" && raw != code {
			if candidate, ok := idx.LookupCode(raw); ok {
				s.debugf("[MATCH] code-raw hit for %q -> %s", raw, candidate.ID)
				return candidate, MethodCodeRaw, verifiedCodeConfidence
			}
		}
	}

	// Tier 4: case-insensitive exact name match
	if name := strings.TrimSpace(imported.Name); name != "" {
		if candidate, ok := idx.LookupName(strings.ToLower(name)); ok {
			s.debugf("[MATCH] name-exact hit for %q -> %s", name, candidate.ID)
			return candidate, MethodNameExact, s.cfg.NameExactConfidence
		}
	}

	return nil, "", 0
}

// debugf logs only when debug logging is enabled
func (s *ReconcileService) debugf(format string, args ...interface{}) {
	if s.cfg.EnableDebugLogging {
		log.Printf(format, args...)
	}
}
