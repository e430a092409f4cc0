package core

import "fmt"

// Outcome is the classifier's answer for a URL. The zero value is
// OutcomeUnavailable so an unset verdict is always treated as suspicious.
type Outcome int

const (
	OutcomeUnavailable Outcome = iota
	OutcomeLegitimate
	OutcomePhishing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLegitimate:
		return "legitimate"
	case OutcomePhishing:
		return "phishing"
	default:
		return "unavailable"
	}
}

const (
	phishingScore    = 85
	legitimateScore  = 10
	unavailableScore = 60

	reasonPhishing    = "ML model classified this URL as phishing based on URL structure and website signals"
	reasonLegitimate  = "ML model found no strong phishing indicators for this URL"
	reasonUnavailable = "Phishing detection service is currently unavailable. Treat this link with caution."
)

// Verdict is what a URLClassifier returns. It carries either a parsed
// answer or the unavailable fallback, never both.
type Verdict struct {
	Outcome Outcome
	// Source names the backend that produced the verdict (endpoint host, model id, "cache")
	Source string
	// Detail is free text from the backend, for logs only
	Detail string
	// Err is the failure behind an unavailable verdict
	Err error
}

// Phishing returns a phishing verdict
func Phishing(source string) Verdict {
	return Verdict{Outcome: OutcomePhishing, Source: source}
}

// Legitimate returns a legitimate verdict
func Legitimate(source string) Verdict {
	return Verdict{Outcome: OutcomeLegitimate, Source: source}
}

// Unavailable returns the fallback verdict for a failed classification
func Unavailable(source string, err error) Verdict {
	return Verdict{Outcome: OutcomeUnavailable, Source: source, Err: err}
}

// Unavailablef is Unavailable with a formatted error
func Unavailablef(source string, format string, args ...any) Verdict {
	return Unavailable(source, fmt.Errorf(format, args...))
}

// Available reports whether the backend produced an answer
func (v Verdict) Available() bool {
	return v.Outcome == OutcomePhishing || v.Outcome == OutcomeLegitimate
}

// ResultFromVerdict maps a verdict onto the fixed URL scoring scale
func ResultFromVerdict(input string, v Verdict) DetectionResult {
	result := DetectionResult{
		Type:  TypeURL,
		Input: input,
	}

	switch v.Outcome {
	case OutcomePhishing:
		result.IsSafe = false
		result.Score = phishingScore
		result.Reasons = []string{reasonPhishing}
	case OutcomeLegitimate:
		result.IsSafe = true
		result.Score = legitimateScore
		result.Reasons = []string{reasonLegitimate}
	default:
		result.IsSafe = false
		result.Score = unavailableScore
		result.Reasons = []string{reasonUnavailable}
	}

	return result
}
