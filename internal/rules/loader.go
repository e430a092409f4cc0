package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML rule file and overlays its non-empty lists on base
func LoadFile(path string, base Tables) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var fromFile Tables
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return Tables{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	return Overlay(base, fromFile), nil
}

// Overlay replaces each list of base with the matching list of top when
// that list is non-empty
func Overlay(base, top Tables) Tables {
	out := base
	if len(top.SuspiciousTLDs) > 0 {
		out.SuspiciousTLDs = top.SuspiciousTLDs
	}
	if len(top.LegitimateDomains) > 0 {
		out.LegitimateDomains = top.LegitimateDomains
	}
	if len(top.DisposableDomains) > 0 {
		out.DisposableDomains = top.DisposableDomains
	}
	if len(top.PhishingPatterns) > 0 {
		out.PhishingPatterns = top.PhishingPatterns
	}
	return out
}
