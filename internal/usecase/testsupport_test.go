package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shelfsync/backend/internal/domain"
)

// fakeIndex is a hand-built candidate index with explicit map keys, so tests
// can simulate catalogs under older normalization schemes
type fakeIndex struct {
	codes   map[string]*domain.CandidateRecord
	names   map[string]*domain.CandidateRecord
	records []*domain.CandidateRecord
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		codes: make(map[string]*domain.CandidateRecord),
		names: make(map[string]*domain.CandidateRecord),
	}
}

// add registers a candidate in the record list without any map keys
func (f *fakeIndex) add(candidate domain.CandidateRecord) *domain.CandidateRecord {
	c := candidate
	f.records = append(f.records, &c)
	return &c
}

// addIndexed registers a candidate and keys it by its normalized code and
// lower-cased name, mirroring a production-built index
func (f *fakeIndex) addIndexed(candidate domain.CandidateRecord) *domain.CandidateRecord {
	c := f.add(candidate)
	if code := NormalizeCode(c.Code); code != "" {
		f.codes[code] = c
	}
	if name := strings.ToLower(strings.TrimSpace(c.Name)); name != "" {
		f.names[name] = c
	}
	return c
}

// addCodeKey keys a candidate under an explicit code value
func (f *fakeIndex) addCodeKey(key string, candidate *domain.CandidateRecord) {
	f.codes[key] = candidate
}

func (f *fakeIndex) LookupCode(code string) (*domain.CandidateRecord, bool) {
	c, ok := f.codes[code]
	return c, ok
}

func (f *fakeIndex) LookupName(name string) (*domain.CandidateRecord, bool) {
	c, ok := f.names[name]
	return c, ok
}

func (f *fakeIndex) Candidates() []*domain.CandidateRecord {
	return f.records
}

// panickingIndex blows up on any access, for exercising per-record recovery
type panickingIndex struct{}

func (panickingIndex) LookupCode(string) (*domain.CandidateRecord, bool) {
	panic("index corrupted")
}

func (panickingIndex) LookupName(string) (*domain.CandidateRecord, bool) {
	panic("index corrupted")
}

func (panickingIndex) Candidates() []*domain.CandidateRecord {
	panic("index corrupted")
}

// fakeCache is an in-memory cache that ignores expiry
type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.entries[key]; ok {
		return v, nil
	}
	return "", domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.entries[key]
	return ok, nil
}

// fakeNormalizer is a canned text-normalization collaborator
type fakeNormalizer struct {
	result string
	err    error
	calls  int
}

func (f *fakeNormalizer) NormalizeName(ctx context.Context, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.result != "" {
		return f.result, nil
	}
	return name, nil
}
