package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mikey/phish-detector/internal/core"
)

func TestClient_Classify(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		outcome core.Outcome
	}{
		{"phishing", http.StatusOK, `{"url":"https://x.test","phishing":"Yes"}`, core.OutcomePhishing},
		{"legitimate", http.StatusOK, `{"url":"https://x.test","phishing":"No"}`, core.OutcomeLegitimate},
		{"server error", http.StatusInternalServerError, `{"detail":"boom"}`, core.OutcomeUnavailable},
		{"bad request", http.StatusBadRequest, `{"detail":"Invalid URL format"}`, core.OutcomeUnavailable},
		{"malformed body", http.StatusOK, `not json`, core.OutcomeUnavailable},
		{"unknown verdict", http.StatusOK, `{"phishing":"maybe"}`, core.OutcomeUnavailable},
		{"missing verdict", http.StatusOK, `{"url":"https://x.test"}`, core.OutcomeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, server.Client(), 0, zaptest.NewLogger(t))
			verdict := client.Classify(context.Background(), "https://x.test")

			assert.Equal(t, tt.outcome, verdict.Outcome)
			if tt.outcome == core.OutcomeUnavailable {
				assert.Error(t, verdict.Err)
			} else {
				assert.NoError(t, verdict.Err)
			}
		})
	}
}

func TestClient_RequestShape(t *testing.T) {
	var (
		method      string
		contentType string
		payload     PredictRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"url":"https://example.com","phishing":"No"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/predict", server.Client(), 0, zaptest.NewLogger(t))
	verdict := client.Classify(context.Background(), "https://example.com")

	assert.Equal(t, core.OutcomeLegitimate, verdict.Outcome)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "https://example.com", payload.URL)
	assert.Equal(t, strings.TrimPrefix(server.URL, "http://"), verdict.Source)
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := NewClient(endpoint, &http.Client{Timeout: time.Second}, 0, zaptest.NewLogger(t))
	verdict := client.Classify(context.Background(), "https://example.com")

	assert.Equal(t, core.OutcomeUnavailable, verdict.Outcome)
	assert.Error(t, verdict.Err)
}

func TestClient_NoEndpoint(t *testing.T) {
	client := NewClient("", nil, 0, zaptest.NewLogger(t))
	verdict := client.Classify(context.Background(), "https://example.com")

	assert.Equal(t, core.OutcomeUnavailable, verdict.Outcome)
	assert.True(t, errors.Is(verdict.Err, ErrNoEndpoint))
}

func TestClient_HonoursContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, server.Client(), 0, zaptest.NewLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	verdict := client.Classify(ctx, "https://slow.example")
	require.Equal(t, core.OutcomeUnavailable, verdict.Outcome)
	assert.ErrorIs(t, verdict.Err, context.DeadlineExceeded)
}

func TestClient_ResponseLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"` + strings.Repeat("a", 100) + `","phishing":"Yes"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 32, zaptest.NewLogger(t))
	verdict := client.Classify(context.Background(), "https://example.com")

	assert.Equal(t, core.OutcomeUnavailable, verdict.Outcome)
}
