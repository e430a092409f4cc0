package frontend

import (
	"context"

	"github.com/mikey/phish-detector/internal/core"
)

// Analyzer is the part of the detection service the front-ends call
type Analyzer interface {
	Analyze(ctx context.Context, input string) core.DetectionResult
	AnalyzeBatch(ctx context.Context, inputs []string) []core.DetectionResult
	ClassifyEmail(input string) core.DetectionResult
	ClassifyURL(ctx context.Context, input string) core.DetectionResult
}
