package frontend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/core"
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Input string `json:"input"`
}

// BatchRequest is the body of POST /analyze/batch
type BatchRequest struct {
	Inputs []string `json:"inputs"`
}

// BatchResponse is the answer to POST /analyze/batch
type BatchResponse struct {
	Results []core.DetectionResult `json:"results"`
}

// EmailRequest is the body of POST /email
type EmailRequest struct {
	Email string `json:"email"`
}

// URLRequest is the body of POST /url
type URLRequest struct {
	URL string `json:"url"`
}

// HealthResponse is the answer to GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is written for every 4xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}

var errEmptyInput = errors.New("input must not be empty")

// Handler serves the detection API
type Handler struct {
	analyzer Analyzer
	maxBatch int
	version  string
	logger   *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(analyzer Analyzer, maxBatch int, version string, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		maxBatch: maxBatch,
		version:  version,
		logger:   logger,
	}
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	_ = resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// POST /api/v1/analyze rejects blank input since it cannot be routed
func (h *Handler) Analyze(req *restful.Request, resp *restful.Response) {
	var body AnalyzeRequest
	if !h.read(req, resp, &body) {
		return
	}
	if strings.TrimSpace(body.Input) == "" {
		h.fail(resp, http.StatusBadRequest, errEmptyInput)
		return
	}

	result := h.analyzer.Analyze(req.Request.Context(), body.Input)
	_ = resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/analyze/batch
func (h *Handler) AnalyzeBatch(req *restful.Request, resp *restful.Response) {
	var body BatchRequest
	if !h.read(req, resp, &body) {
		return
	}
	if len(body.Inputs) == 0 {
		h.fail(resp, http.StatusBadRequest, errors.New("inputs must not be empty"))
		return
	}
	if h.maxBatch > 0 && len(body.Inputs) > h.maxBatch {
		h.fail(resp, http.StatusBadRequest, fmt.Errorf("at most %d inputs per batch", h.maxBatch))
		return
	}

	results := h.analyzer.AnalyzeBatch(req.Request.Context(), body.Inputs)
	_ = resp.WriteHeaderAndEntity(http.StatusOK, BatchResponse{Results: results})
}

// POST /api/v1/email answers every string, blank included
func (h *Handler) Email(req *restful.Request, resp *restful.Response) {
	var body EmailRequest
	if !h.read(req, resp, &body) {
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, h.analyzer.ClassifyEmail(body.Email))
}

// POST /api/v1/url answers every string, blank included
func (h *Handler) URL(req *restful.Request, resp *restful.Response) {
	var body URLRequest
	if !h.read(req, resp, &body) {
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, h.analyzer.ClassifyURL(req.Request.Context(), body.URL))
}

func (h *Handler) read(req *restful.Request, resp *restful.Response, entity any) bool {
	if err := req.ReadEntity(entity); err != nil {
		h.logger.Debug("Failed to parse request body", zap.Error(err))
		h.fail(resp, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (h *Handler) fail(resp *restful.Response, status int, err error) {
	_ = resp.WriteHeaderAndEntity(status, ErrorResponse{Error: err.Error()})
}
