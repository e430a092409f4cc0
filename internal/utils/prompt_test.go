package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLPrompt(t *testing.T) {
	prompt := URLPrompt("https://login.example.tk/")

	assert.Contains(t, prompt, "https://login.example.tk/")
	assert.Contains(t, prompt, `"Yes"`)
}

func TestParseURLAnswer(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		phishing bool
		detail   string
		wantErr  bool
	}{
		{name: "yes", text: `{"phishing":"Yes","explanation":"fake login"}`, phishing: true, detail: "fake login"},
		{name: "no", text: `{"phishing":"No","explanation":"known brand"}`, detail: "known brand"},
		{name: "wrapped in prose", text: "Sure!\n{\"phishing\": \"yes\"}\nDone.", phishing: true},
		{name: "unknown value", text: `{"phishing":"maybe"}`, wantErr: true},
		{name: "missing field", text: `{"explanation":"?"}`, wantErr: true},
		{name: "not json", text: "I cannot tell", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phishing, detail, err := ParseURLAnswer(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.phishing, phishing)
			assert.Equal(t, tt.detail, detail)
		})
	}
}
