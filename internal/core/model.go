package core

import (
	"time"
)

// InputType tags which scoring path produced a result
type InputType string

const (
	TypeURL   InputType = "url"
	TypeEmail InputType = "email"
)

// UnsafeThreshold is the email score at or above which an address is unsafe
const UnsafeThreshold = 40

// DetectionResult represents the outcome of classifying a single input
type DetectionResult struct {
	IsSafe  bool      `json:"isSafe"`
	Score   int       `json:"score"`
	Reasons []string  `json:"reasons"`
	Type    InputType `json:"type"`
	Input   string    `json:"input"`
}

// CacheEntry is a remembered classifier verdict for a normalized URL
type CacheEntry struct {
	URL       string
	Phishing  bool
	Source    string
	LastSeen  time.Time
	ExpiresAt time.Time
}
