package frontend

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// HTTPFrontend serves the detection API over HTTP
type HTTPFrontend struct {
	server *http.Server
	logger *zap.Logger
}

// NewHTTPFrontend builds the restful container, filters and CORS wrapper
func NewHTTPFrontend(
	handler *Handler,
	logger *zap.Logger,
	listenAddr string,
	allowedOrigins []string,
	readTimeout time.Duration,
	writeTimeout time.Duration,
) *HTTPFrontend {
	return &HTTPFrontend{
		server: &http.Server{
			Addr:         listenAddr,
			Handler:      NewHTTPHandler(handler, logger, allowedOrigins),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}
}

// NewHTTPHandler returns the complete http.Handler for the API
func NewHTTPHandler(handler *Handler, logger *zap.Logger, allowedOrigins []string) http.Handler {
	container := restful.NewContainer()
	container.Filter(AccessLog(logger))
	container.Filter(RecoverPanic(logger))
	RegisterRoutes(container, handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return corsHandler.Handler(container)
}

// Start starts the HTTP server
func (f *HTTPFrontend) Start() error {
	f.logger.Info("HTTP API starting", zap.String("address", f.server.Addr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop drains in-flight requests and stops the server
func (f *HTTPFrontend) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return f.server.Shutdown(ctx)
}
