package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdict_ZeroValueIsUnavailable(t *testing.T) {
	var v Verdict

	assert.Equal(t, OutcomeUnavailable, v.Outcome)
	assert.False(t, v.Available())
	assert.Equal(t, "unavailable", v.Outcome.String())
}

func TestResultFromVerdict(t *testing.T) {
	tests := []struct {
		name   string
		v      Verdict
		safe   bool
		score  int
		reason string
	}{
		{name: "phishing", v: Phishing("model"), safe: false, score: 85, reason: reasonPhishing},
		{name: "legitimate", v: Legitimate("model"), safe: true, score: 10, reason: reasonLegitimate},
		{name: "unavailable", v: Unavailable("model", errors.New("down")), safe: false, score: 60, reason: reasonUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResultFromVerdict(" example.com ", tt.v)

			assert.Equal(t, tt.safe, result.IsSafe)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, []string{tt.reason}, result.Reasons)
			assert.Equal(t, TypeURL, result.Type)
			assert.Equal(t, " example.com ", result.Input)
			assert.Equal(t, result.Score < UnsafeThreshold, result.IsSafe)
		})
	}
}

func TestUnavailablef(t *testing.T) {
	v := Unavailablef("remote", "status %d", 503)

	assert.Equal(t, "remote", v.Source)
	assert.EqualError(t, v.Err, "status 503")
}
