package core

import (
	"context"
)

// URLClassifier defines the interface for backends that judge a normalized URL.
// Implementations never return an error; failures come back as an
// unavailable Verdict.
type URLClassifier interface {
	Classify(ctx context.Context, url string) Verdict
}

// EmailClassifier scores an email address
type EmailClassifier interface {
	Classify(email string) DetectionResult
}

// CacheRepository defines the interface for caching classifier verdicts
type CacheRepository interface {
	// Get retrieves a cached verdict for a normalized URL
	Get(ctx context.Context, url string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, url string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
