package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/utils"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *Classifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"

	logger := zaptest.NewLogger(t)
	return NewClassifier(openai.NewClientWithConfig(cfg), "gpt-test", 100, 0, 1, 256, logger, utils.NewTextProcessor(logger))
}

func completion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-test",
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestClassifier_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		outcome core.Outcome
	}{
		{name: "phishing", content: `{"phishing":"Yes","explanation":"brand impersonation"}`, outcome: core.OutcomePhishing},
		{name: "legitimate", content: `{"phishing":"No","explanation":"ok"}`, outcome: core.OutcomeLegitimate},
		{name: "garbage", content: "no idea", outcome: core.OutcomeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(completion(tt.content))
			})

			v := c.Classify(context.Background(), "https://login.example.tk/")

			assert.Equal(t, tt.outcome, v.Outcome)
			assert.Equal(t, "gpt-test", v.Source)
		})
	}
}

func TestClassifier_RequestCarriesURL(t *testing.T) {
	var got openai.ChatCompletionRequest
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(`{"phishing":"No"}`))
	})

	v := c.Classify(context.Background(), "https://example.com/")
	require.True(t, v.Available())

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "gpt-test", got.Model)
	assert.Contains(t, got.Messages[1].Content, "https://example.com/")
}

func TestClassifier_ServerError(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	})

	v := c.Classify(context.Background(), "https://example.com/")

	assert.Equal(t, core.OutcomeUnavailable, v.Outcome)
	assert.Error(t, v.Err)
}

func TestClassifier_NoChoices(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "x"})
	})

	v := c.Classify(context.Background(), "https://example.com/")

	assert.False(t, v.Available())
}
