package frontend

import (
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// AccessLog returns a container filter that tags each request with an id
// and logs it once the chain has run
func AccessLog(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		id := req.Request.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		resp.AddHeader(RequestIDHeader, id)

		start := time.Now()
		chain.ProcessFilter(req, resp)

		logger.Info("Request served",
			zap.String("request_id", id),
			zap.String("method", req.Request.Method),
			zap.String("path", req.Request.URL.Path),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", time.Since(start)))
	}
}

// RecoverPanic turns a handler panic into a 500
func RecoverPanic(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Handler panicked",
					zap.String("path", req.Request.URL.Path),
					zap.Any("panic", r))
				_ = resp.WriteHeaderAndEntity(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			}
		}()
		chain.ProcessFilter(req, resp)
	}
}
