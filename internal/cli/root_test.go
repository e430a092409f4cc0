package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/phish-detector/internal/core"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCollectInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\nuser@gmail.com\n\n  https://example.com  \n"), 0o600))

	inputs, err := collectInputs([]string{"first@x.org"}, path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"first@x.org", "user@gmail.com", "https://example.com"}, inputs)

	inputs, err = collectInputs(nil, "-", strings.NewReader("a@b.c\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.c"}, inputs)

	_, err = collectInputs(nil, filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestScan_Text(t *testing.T) {
	out, err := execute(t, "", "noreply@phish.ml", "user@gmail.com")
	require.NoError(t, err)

	assert.Contains(t, out, "[UNSAFE] noreply@phish.ml (email, score 80)")
	assert.Contains(t, out, "[SAFE] user@gmail.com (email, score 0)")
	assert.Contains(t, out, "  - Email domain uses a high-risk TLD")
}

func TestScan_JSONFromStdin(t *testing.T) {
	out, err := execute(t, "bad@\nsupport@mailinator.com\n", "--json", "--file", "-")
	require.NoError(t, err)

	var results []core.DetectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, 90, results[0].Score)
	assert.Equal(t, "support@mailinator.com", results[1].Input)
}

func TestScan_FailOnUnsafe(t *testing.T) {
	_, err := execute(t, "", "--fail-on-unsafe", "noreply@phish.ml")
	assert.ErrorIs(t, err, ErrUnsafeFound)

	_, err = execute(t, "", "--fail-on-unsafe", "user@gmail.com")
	assert.NoError(t, err)
}

func TestScan_URLWithoutEndpointFallsBack(t *testing.T) {
	t.Setenv("PREDICT_API_URL", "")
	t.Setenv("PHISH_DETECTOR_REMOTE_ENDPOINT", "")

	out, err := execute(t, "", "--json", "example.com")
	require.NoError(t, err)

	var results []core.DetectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 60, results[0].Score)
	assert.False(t, results[0].IsSafe)
}

func TestScan_NoInputs(t *testing.T) {
	_, err := execute(t, "")
	assert.Error(t, err)
}
