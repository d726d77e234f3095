package domain

import (
	"context"
	"time"
)

// CandidateIndex is a pre-built, read-only view of the reference catalog for
// one batch: a normalized-code map, a lower-cased exact-name map, and the
// full candidate list for the fallback strategies. Callers build it once per
// batch; the engine never queries storage per record.
type CandidateIndex interface {
	LookupCode(code string) (*CandidateRecord, bool)
	LookupName(name string) (*CandidateRecord, bool)
	Candidates() []*CandidateRecord
}

// NameNormalizer is the external text-normalization service used by one
// secondary-search strategy. It may fail or time out; callers treat failures
// as "strategy unavailable", never as fatal.
type NameNormalizer interface {
	NormalizeName(ctx context.Context, name string) (string, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
