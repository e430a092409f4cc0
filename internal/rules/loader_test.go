package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_OverlaysNonEmptyLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
legitimate_domains:
  - example.org
phishing_patterns:
  - "^admin@"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tables, err := LoadFile(path, DefaultTables())
	require.NoError(t, err)

	assert.Equal(t, []string{"example.org"}, tables.LegitimateDomains)
	assert.Equal(t, []string{"^admin@"}, tables.PhishingPatterns)
	assert.Equal(t, DefaultTables().SuspiciousTLDs, tables.SuspiciousTLDs)
	assert.Equal(t, DefaultTables().DisposableDomains, tables.DisposableDomains)

	engine := NewEngine(MustCompile(tables))
	assert.Equal(t, 0, engine.Classify("user@example.org").Score)
	assert.Equal(t, 35, engine.Classify("admin@corp.com").Score)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), DefaultTables())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suspicious_tlds: [unterminated"), 0o600))

	_, err = LoadFile(path, DefaultTables())
	assert.Error(t, err)
}
