package rules

import (
	"fmt"
	"regexp"

	"github.com/mikey/phish-detector/internal/domainset"
)

// RuleSet is the compiled, read-only form of Tables. Build it once and
// share it between goroutines.
type RuleSet struct {
	suspiciousTLDs    *domainset.Set
	legitimateDomains *domainset.Set
	disposableDomains *domainset.Set
	patterns          []*regexp.Regexp
}

// Compile validates the tables and compiles the patterns
func Compile(t Tables) (*RuleSet, error) {
	patterns := make([]*regexp.Regexp, 0, len(t.PhishingPatterns))
	for _, p := range t.PhishingPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid phishing pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}

	return &RuleSet{
		suspiciousTLDs:    domainset.New(t.SuspiciousTLDs),
		legitimateDomains: domainset.New(t.LegitimateDomains),
		disposableDomains: domainset.New(t.DisposableDomains),
		patterns:          patterns,
	}, nil
}

// MustCompile is Compile for tables known to be valid
func MustCompile(t Tables) *RuleSet {
	rs, err := Compile(t)
	if err != nil {
		panic(err)
	}
	return rs
}

// Default returns the rule set built from DefaultTables
func Default() *RuleSet {
	return MustCompile(DefaultTables())
}

// IsLegitimate reports an exact match against the known-provider list
func (rs *RuleSet) IsLegitimate(domain string) bool {
	return rs.legitimateDomains.Contains(domain)
}

// Tables returns the uncompiled data the set was built from
func (rs *RuleSet) Tables() Tables {
	patterns := make([]string, len(rs.patterns))
	for i, re := range rs.patterns {
		patterns[i] = re.String()[len("(?i)"):]
	}
	return Tables{
		SuspiciousTLDs:    rs.suspiciousTLDs.List(),
		LegitimateDomains: rs.legitimateDomains.List(),
		DisposableDomains: rs.disposableDomains.List(),
		PhishingPatterns:  patterns,
	}
}
