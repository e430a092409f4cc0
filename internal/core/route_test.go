package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		input string
		want  InputType
	}{
		{"user@example.com", TypeEmail},
		{"  user@example.com  ", TypeEmail},
		{"https://example.com", TypeURL},
		{"http://user@example.com", TypeURL},
		{"www.example.com/a@b", TypeURL},
		{"example.com", TypeURL},
		{"", TypeURL},
		{"@", TypeEmail},
		{"HTTP://user@example.com", TypeEmail},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Route(tt.input), tt.input)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path ", "https://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"ftp://example.com", "https://ftp://example.com"},
		{"www.example.com", "https://www.example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.input), tt.input)
	}
}
