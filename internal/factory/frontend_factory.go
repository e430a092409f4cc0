package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/adapters/frontend"
	"github.com/mikey/phish-detector/internal/config"
	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/ports"
	"github.com/mikey/phish-detector/internal/utils"
)

// FrontendFactory creates the transport named by server.frontend
type FrontendFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	service       *core.DetectionService
	textProcessor *utils.TextProcessor
}

// NewFrontendFactory creates a new frontend factory
func NewFrontendFactory(cfg *config.Config, logger *zap.Logger, service *core.DetectionService, textProcessor *utils.TextProcessor) *FrontendFactory {
	return &FrontendFactory{
		cfg:           cfg,
		logger:        logger,
		service:       service,
		textProcessor: textProcessor,
	}
}

// CreateFrontend creates a frontend based on the configuration
func (f *FrontendFactory) CreateFrontend() (ports.Frontend, error) {
	frontendType := f.cfg.GetString("server.frontend")

	switch frontendType {
	case "http":
		httpCfg, err := f.cfg.GetHTTP()
		if err != nil {
			return nil, err
		}
		handler := frontend.NewHandler(f.service, httpCfg.MaxBatch, config.Version, f.logger)
		return frontend.NewHTTPFrontend(
			handler,
			f.logger,
			httpCfg.ListenAddress,
			httpCfg.AllowedOrigins,
			httpCfg.ReadTimeout,
			httpCfg.WriteTimeout,
		), nil
	case "smtp":
		gw, err := f.cfg.GetGateway()
		if err != nil {
			return nil, err
		}
		return frontend.NewSMTPGateway(f.service, f.logger, f.textProcessor, frontend.GatewayOptions{
			ListenAddress:   gw.ListenAddress,
			Domain:          gw.Domain,
			BlockUnsafe:     gw.BlockUnsafe,
			MaxLinks:        gw.MaxLinks,
			AnalysisTimeout: gw.AnalysisTimeout,
			SafeHeader:      gw.SafeHeader,
			ScoreHeader:     gw.ScoreHeader,
			ReasonsHeader:   gw.ReasonsHeader,
			ModifySubject:   gw.ModifySubject,
			SubjectPrefix:   gw.SubjectPrefix,
			RelayEnabled:    gw.RelayEnabled,
			RelayAddress:    gw.RelayAddress,
			RelayPort:       gw.RelayPort,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported frontend type: %s", frontendType)
	}
}
