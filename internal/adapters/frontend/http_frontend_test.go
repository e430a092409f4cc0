package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/rules"
)

// stubClassifier answers phishing for any URL containing "evil"
type stubClassifier struct {
	mu   sync.Mutex
	seen []string
}

func (s *stubClassifier) Classify(ctx context.Context, url string) core.Verdict {
	s.mu.Lock()
	s.seen = append(s.seen, url)
	s.mu.Unlock()

	if strings.Contains(url, "evil") {
		return core.Phishing("stub")
	}
	return core.Legitimate("stub")
}

func newTestAPI(t *testing.T, maxBatch int) (http.Handler, *stubClassifier) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	urls := &stubClassifier{}
	service := core.NewDetectionService(rules.NewEngine(rules.Default()), urls, nil, logger, false, 0)
	handler := NewHandler(service, maxBatch, "test", logger)
	return NewHTTPHandler(handler, logger, []string{"*"}), urls
}

func post(t *testing.T, h http.Handler, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAPI_Health(t *testing.T) {
	h, _ := newTestAPI(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, HealthResponse{Status: "ok", Version: "test"}, health)
}

func TestAPI_RequestIDIsEchoed(t *testing.T) {
	h, _ := newTestAPI(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAPI_Analyze(t *testing.T) {
	h, urls := newTestAPI(t, 10)

	rec := post(t, h, "/api/v1/analyze", `{"input":"noreply@phish.ml"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result core.DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, core.TypeEmail, result.Type)
	assert.False(t, result.IsSafe)
	assert.Equal(t, 80, result.Score)
	assert.Equal(t, "noreply@phish.ml", result.Input)
	assert.Empty(t, urls.seen)

	rec = post(t, h, "/api/v1/analyze", `{"input":"evil.example"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, core.TypeURL, result.Type)
	assert.Equal(t, 85, result.Score)
	assert.Equal(t, []string{"https://evil.example"}, urls.seen)
}

func TestAPI_AnalyzeWireFormat(t *testing.T) {
	h, _ := newTestAPI(t, 10)

	rec := post(t, h, "/api/v1/analyze", `{"input":"https://good.example"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["isSafe"])
	assert.Equal(t, float64(10), raw["score"])
	assert.Equal(t, "url", raw["type"])
	assert.Equal(t, "https://good.example", raw["input"])
	assert.Len(t, raw["reasons"], 1)
}

func TestAPI_BadRequests(t *testing.T) {
	h, _ := newTestAPI(t, 2)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "malformed json", path: "/api/v1/analyze", body: `{"input":`},
		{name: "empty input", path: "/api/v1/analyze", body: `{"input":"  "}`},
		{name: "empty batch", path: "/api/v1/analyze/batch", body: `{"inputs":[]}`},
		{name: "batch too large", path: "/api/v1/analyze/batch", body: `{"inputs":["a","b","c"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestAPI_Batch(t *testing.T) {
	h, _ := newTestAPI(t, 10)

	rec := post(t, h, "/api/v1/analyze/batch", `{"inputs":["user@gmail.com","evil.example","bad@","https://good.example"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var batch BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	require.Len(t, batch.Results, 4)

	assert.Equal(t, "user@gmail.com", batch.Results[0].Input)
	assert.True(t, batch.Results[0].IsSafe)
	assert.Equal(t, 85, batch.Results[1].Score)
	assert.Equal(t, 90, batch.Results[2].Score)
	assert.Equal(t, 10, batch.Results[3].Score)
}

func TestAPI_DirectPaths(t *testing.T) {
	h, urls := newTestAPI(t, 10)

	// The email path is forced even for something that would route to a URL
	rec := post(t, h, "/api/v1/email", `{"email":"https://user@host"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var result core.DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, core.TypeEmail, result.Type)

	rec = post(t, h, "/api/v1/url", `{"url":"user@evil.example"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, core.TypeURL, result.Type)
	assert.Equal(t, []string{"https://user@evil.example"}, urls.seen)
}

func TestAPI_DirectPathsBlankInput(t *testing.T) {
	h, urls := newTestAPI(t, 10)

	rec := post(t, h, "/api/v1/email", `{"email":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var result core.DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, core.TypeEmail, result.Type)
	assert.Equal(t, 90, result.Score)
	assert.Equal(t, []string{"Invalid email format"}, result.Reasons)
	assert.Equal(t, "   ", result.Input)

	rec = post(t, h, "/api/v1/url", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, core.TypeURL, result.Type)
	assert.Equal(t, []string{"https://"}, urls.seen)
}

func TestAPI_CORSPreflight(t *testing.T) {
	h, _ := newTestAPI(t, 10)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
