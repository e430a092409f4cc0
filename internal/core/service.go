package core

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 8

// DetectionService is the core service for phishing detection
type DetectionService struct {
	emails       EmailClassifier
	urls         URLClassifier
	cache        CacheRepository
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	concurrency  int
}

// NewDetectionService creates a new detection service
func NewDetectionService(
	emails EmailClassifier,
	urls URLClassifier,
	cache CacheRepository,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *DetectionService {
	return &DetectionService{
		emails:       emails,
		urls:         urls,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
		concurrency:  defaultBatchConcurrency,
	}
}

// WithConcurrency bounds the number of inputs AnalyzeBatch classifies at once
func (s *DetectionService) WithConcurrency(n int) *DetectionService {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// ClassifyEmail scores an email address with the rule engine
func (s *DetectionService) ClassifyEmail(input string) DetectionResult {
	result := s.emails.Classify(input)
	s.logger.Debug("Classified email",
		zap.String("input", input),
		zap.Int("score", result.Score),
		zap.Bool("is_safe", result.IsSafe),
		zap.Strings("reasons", result.Reasons))
	return result
}

// ClassifyURL asks the configured classifier about a URL. It always returns
// a result; failures map to the conservative fallback.
func (s *DetectionService) ClassifyURL(ctx context.Context, input string) DetectionResult {
	normalized := NormalizeURL(input)

	// Check cache if enabled
	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, normalized); err == nil {
			s.logger.Debug("Cache hit for URL", zap.String("url", normalized))
			v := Legitimate("cache")
			if entry.Phishing {
				v = Phishing("cache")
			}
			return ResultFromVerdict(input, v)
		}
	}

	verdict := s.urls.Classify(ctx, normalized)
	if !verdict.Available() {
		s.logger.Warn("URL classification unavailable, using fallback",
			zap.String("url", normalized),
			zap.String("source", verdict.Source),
			zap.Error(verdict.Err))
		return ResultFromVerdict(input, verdict)
	}

	s.logger.Debug("Classified URL",
		zap.String("url", normalized),
		zap.String("source", verdict.Source),
		zap.Stringer("outcome", verdict.Outcome),
		zap.String("detail", verdict.Detail))

	// Update cache with verdict if enabled
	if s.cacheEnabled {
		now := time.Now()
		entry := &CacheEntry{
			URL:       normalized,
			Phishing:  verdict.Outcome == OutcomePhishing,
			Source:    verdict.Source,
			LastSeen:  now,
			ExpiresAt: now.Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return ResultFromVerdict(input, verdict)
}

// Analyze routes the input to the email or URL path
func (s *DetectionService) Analyze(ctx context.Context, input string) DetectionResult {
	if Route(input) == TypeEmail {
		return s.ClassifyEmail(input)
	}
	return s.ClassifyURL(ctx, input)
}

// AnalyzeBatch classifies every input concurrently. Results are returned in
// input order and one slow or failing input never affects the others.
func (s *DetectionService) AnalyzeBatch(ctx context.Context, inputs []string) []DetectionResult {
	results := make([]DetectionResult, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			results[i] = s.Analyze(gCtx, input)
			return nil
		})
	}

	_ = g.Wait()

	s.logger.Debug("Analyzed batch", zap.Int("count", len(inputs)))
	return results
}
