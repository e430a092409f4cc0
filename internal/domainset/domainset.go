package domainset

import (
	"strings"
)

// Set is an immutable collection of lowercased domains
type Set struct {
	domains map[string]struct{}
	ordered []string
}

// New creates a set from the given domains. Entries are trimmed and
// lowercased; blanks and duplicates are dropped.
func New(domains []string) *Set {
	s := &Set{
		domains: make(map[string]struct{}, len(domains)),
		ordered: make([]string, 0, len(domains)),
	}
	for _, domain := range domains {
		normalized := strings.ToLower(strings.TrimSpace(domain))
		if normalized == "" {
			continue
		}
		if _, ok := s.domains[normalized]; ok {
			continue
		}
		s.domains[normalized] = struct{}{}
		s.ordered = append(s.ordered, normalized)
	}
	return s
}

// Contains reports an exact match. Subdomains do not match their parent.
func (s *Set) Contains(domain string) bool {
	if s == nil {
		return false
	}
	_, ok := s.domains[domain]
	return ok
}

// HasSuffixOf reports whether domain ends with any entry of the set
func (s *Set) HasSuffixOf(domain string) bool {
	if s == nil {
		return false
	}
	for _, suffix := range s.ordered {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}

// Len returns the number of entries
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ordered)
}

// List returns a copy of the entries in insertion order
func (s *Set) List() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}
