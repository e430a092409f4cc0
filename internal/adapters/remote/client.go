package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/core"
)

const defaultMaxResponseBytes = 64 * 1024

// ErrNoEndpoint is reported when no prediction endpoint is configured
var ErrNoEndpoint = errors.New("no prediction endpoint configured")

// PredictRequest is the body sent to the prediction endpoint
type PredictRequest struct {
	URL string `json:"url"`
}

// PredictResponse is the body the prediction endpoint answers with
type PredictResponse struct {
	URL      string `json:"url"`
	Phishing string `json:"phishing"`
}

// Client is a URLClassifier backed by an HTTP prediction endpoint
type Client struct {
	endpoint         string
	source           string
	httpClient       *http.Client
	maxResponseBytes int64
	logger           *zap.Logger
}

// NewClient creates a client for the given endpoint. A nil httpClient
// means http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client, maxResponseBytes int64, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if maxResponseBytes <= 0 {
		maxResponseBytes = defaultMaxResponseBytes
	}

	source := "remote"
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		source = u.Host
	}

	return &Client{
		endpoint:         endpoint,
		source:           source,
		httpClient:       httpClient,
		maxResponseBytes: maxResponseBytes,
		logger:           logger,
	}
}

// Classify posts the normalized URL to the endpoint and maps its answer.
// Every failure becomes an unavailable verdict.
func (c *Client) Classify(ctx context.Context, normalized string) core.Verdict {
	if c.endpoint == "" {
		return core.Unavailable(c.source, ErrNoEndpoint)
	}

	resp, err := c.predict(ctx, normalized)
	if err != nil {
		c.logger.Debug("Prediction request failed",
			zap.String("endpoint", c.endpoint),
			zap.String("url", normalized),
			zap.Error(err))
		return core.Unavailable(c.source, err)
	}

	switch resp.Phishing {
	case "Yes":
		return core.Phishing(c.source)
	case "No":
		return core.Legitimate(c.source)
	default:
		return core.Unavailablef(c.source, "unexpected phishing value %q", resp.Phishing)
	}
}

func (c *Client) predict(ctx context.Context, normalized string) (*PredictResponse, error) {
	payload, err := json.Marshal(PredictRequest{URL: normalized})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call prediction endpoint: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, fmt.Errorf("prediction endpoint returned status %d", httpResp.StatusCode)
	}

	var predicted PredictResponse
	if err := json.Unmarshal(body, &predicted); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &predicted, nil
}
