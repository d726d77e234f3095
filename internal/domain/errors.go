package domain

import "errors"

var (
	// ErrInvalidRecord is returned when an imported record has neither a code nor a name
	ErrInvalidRecord = errors.New("invalid imported record")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrNormalizerFailure is returned when the text-normalization service request fails
	ErrNormalizerFailure = errors.New("text-normalization service failed")

	// ErrNormalizerUnavailable is returned when no text-normalization service is configured
	ErrNormalizerUnavailable = errors.New("text-normalization service unavailable")

	// ErrCatalogEmpty is returned when a catalog file contains no usable candidates
	ErrCatalogEmpty = errors.New("catalog contains no candidates")
)
