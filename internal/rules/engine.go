package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mikey/phish-detector/internal/core"
)

const (
	invalidFormatScore = 90
	maxScore           = 100

	typosquatMaxLabelLen = 8
	longLocalPartLen     = 40

	reasonInvalidFormat = "Invalid email format"
	reasonNoIndicators  = "No obvious phishing indicators found"
)

// Address is a lowercased, trimmed email address split at its single "@"
type Address struct {
	Full   string
	Local  string
	Domain string
}

// ParseAddress lowercases and trims raw and splits it into local and
// domain parts. It fails unless there are exactly two non-empty parts.
func ParseAddress(raw string) (Address, bool) {
	full := strings.ToLower(strings.TrimSpace(raw))
	parts := strings.Split(full, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Address{}, false
	}
	return Address{Full: full, Local: parts[0], Domain: parts[1]}, true
}

// Rule is one scoring predicate. A negative Weight lowers the running
// score but never below zero.
type Rule struct {
	ID     string
	Reason string
	Weight int
	Match  func(a Address) bool
}

// Engine scores email addresses against an ordered list of rules
type Engine struct {
	rules []Rule
}

// NewEngine builds the rule list from a compiled rule set
func NewEngine(rs *RuleSet) *Engine {
	return &Engine{rules: buildRules(rs)}
}

// Rules returns the ordered rule list
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

func buildRules(rs *RuleSet) []Rule {
	rules := []Rule{
		{
			ID:     "disposable_domain",
			Reason: "Email uses a known disposable/temporary mail service",
			Weight: 50,
			Match: func(a Address) bool {
				return rs.disposableDomains.Contains(a.Domain)
			},
		},
	}

	// One rule per pattern: overlapping patterns stack.
	for _, re := range rs.patterns {
		rules = append(rules, patternRule(re))
	}

	rules = append(rules,
		Rule{
			ID:     "suspicious_tld",
			Reason: "Email domain uses a high-risk TLD",
			Weight: 30,
			Match: func(a Address) bool {
				return rs.suspiciousTLDs.HasSuffixOf(a.Domain)
			},
		},
		Rule{
			ID:     "noreply_unknown_domain",
			Reason: "No-reply sender from an unrecognized domain",
			Weight: 15,
			Match: func(a Address) bool {
				noReply := strings.Contains(a.Local, "noreply") || strings.Contains(a.Local, "no-reply")
				return noReply && !rs.legitimateDomains.Contains(a.Domain)
			},
		},
		Rule{
			ID:     "digit_typosquat",
			Reason: "Domain uses numbers to impersonate letters (typosquatting)",
			Weight: 20,
			Match: func(a Address) bool {
				label, _, _ := strings.Cut(a.Domain, ".")
				return strings.ContainsAny(label, "0123456789") &&
					utf8.RuneCountInString(label) < typosquatMaxLabelLen
			},
		},
		Rule{
			ID:     "long_local_part",
			Reason: "Unusually long email local part",
			Weight: 10,
			Match: func(a Address) bool {
				return utf8.RuneCountInString(a.Local) > longLocalPartLen
			},
		},
		Rule{
			ID:     "legitimate_provider",
			Reason: "Email domain belongs to a recognized provider",
			Weight: -20,
			Match: func(a Address) bool {
				return rs.legitimateDomains.Contains(a.Domain)
			},
		},
	)

	return rules
}

func patternRule(re *regexp.Regexp) Rule {
	return Rule{
		ID:     "phishing_pattern",
		Reason: "Email matches known phishing address pattern",
		Weight: 35,
		Match: func(a Address) bool {
			return re.MatchString(a.Full)
		},
	}
}

// Classify scores raw as an email address. It never fails: malformed
// input yields a fixed high-suspicion result.
func (e *Engine) Classify(raw string) core.DetectionResult {
	addr, ok := ParseAddress(raw)
	if !ok {
		return core.DetectionResult{
			IsSafe:  false,
			Score:   invalidFormatScore,
			Reasons: []string{reasonInvalidFormat},
			Type:    core.TypeEmail,
			Input:   raw,
		}
	}

	score := 0
	var reasons []string
	for _, rule := range e.rules {
		if !rule.Match(addr) {
			continue
		}
		score = max(0, score+rule.Weight)
		reasons = append(reasons, rule.Reason)
	}

	score = min(score, maxScore)

	if len(reasons) == 0 {
		reasons = append(reasons, reasonNoIndicators)
	}

	return core.DetectionResult{
		IsSafe:  score < core.UnsafeThreshold,
		Score:   score,
		Reasons: reasons,
		Type:    core.TypeEmail,
		Input:   raw,
	}
}
