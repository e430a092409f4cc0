package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/phish-detector/internal/rules"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "remote", cfg.GetClassifier().Provider)

	remote, err := cfg.GetRemote()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, remote.Timeout)

	cache, err := cfg.GetCache()
	require.NoError(t, err)
	assert.Equal(t, "memory", cache.Type)
	assert.False(t, cache.Enabled)
	assert.Equal(t, time.Hour, cache.TTL)

	tables, err := cfg.GetRules()
	require.NoError(t, err)
	assert.Equal(t, rules.DefaultTables(), tables)

	assert.Equal(t, 8, cfg.GetScanConcurrency())
	assert.Equal(t, 900, cfg.GetMaxHeaderSize())
}

func TestRemoteEndpointFromEnv(t *testing.T) {
	t.Setenv("PREDICT_API_URL", "http://legacy.example/predict")
	cfg := NewFromViper(NewEmptyViper())

	remote, err := cfg.GetRemote()
	require.NoError(t, err)
	assert.Equal(t, "http://legacy.example/predict", remote.Endpoint)

	t.Setenv("PHISH_DETECTOR_REMOTE_ENDPOINT", "http://primary.example/predict")
	cfg = NewFromViper(NewEmptyViper())

	remote, err = cfg.GetRemote()
	require.NoError(t, err)
	assert.Equal(t, "http://primary.example/predict", remote.Endpoint)
}

func TestNewWithFile(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte("legitimate_domains: [corp.example]\n"), 0o600))

	cfgPath := filepath.Join(dir, "config.yaml")
	content := "classifier:\n  provider: openai\ncache:\n  ttl: 5m\nrules:\n  file: " + rulesPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := NewWithFile(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.GetClassifier().Provider)

	cache, err := cfg.GetCache()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cache.TTL)

	tables, err := cfg.GetRules()
	require.NoError(t, err)
	assert.Equal(t, []string{"corp.example"}, tables.LegitimateDomains)
	assert.Equal(t, rules.DefaultTables().SuspiciousTLDs, tables.SuspiciousTLDs)
}

func TestNewWithFile_Missing(t *testing.T) {
	_, err := NewWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDuration_Invalid(t *testing.T) {
	v := NewEmptyViper()
	v.Set("cache.ttl", "soon")

	_, err := NewFromViper(v).GetCache()
	assert.Error(t, err)
}
