package factory

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/adapters/bedrock"
	"github.com/mikey/phish-detector/internal/adapters/gemini"
	"github.com/mikey/phish-detector/internal/adapters/openai"
	"github.com/mikey/phish-detector/internal/adapters/remote"
	"github.com/mikey/phish-detector/internal/config"
	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/utils"
)

// ClassifierFactory creates the URL verdict backend
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates the backend named by classifier.provider
func (f *ClassifierFactory) CreateClassifier(ctx context.Context) (core.URLClassifier, error) {
	provider := f.cfg.GetClassifier().Provider

	switch provider {
	case "remote", "":
		remoteCfg, err := f.cfg.GetRemote()
		if err != nil {
			return nil, err
		}
		if remoteCfg.Endpoint == "" {
			f.logger.Warn("No prediction endpoint configured, every URL will get the fallback result")
		}
		httpClient := &http.Client{Timeout: remoteCfg.Timeout}
		return remote.NewClient(remoteCfg.Endpoint, httpClient, remoteCfg.MaxResponseBytes, f.logger), nil
	case "openai":
		classifier, err := openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
		if err != nil {
			return nil, err
		}
		return classifier, nil
	case "gemini":
		classifier, err := gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier(ctx)
		if err != nil {
			return nil, err
		}
		return classifier, nil
	case "bedrock":
		classifier, err := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier(ctx)
		if err != nil {
			return nil, err
		}
		return classifier, nil
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", provider)
	}
}
