package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/adapters/cache"
	"github.com/mikey/phish-detector/internal/config"
	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/factory"
	"github.com/mikey/phish-detector/internal/logging"
	"github.com/mikey/phish-detector/internal/ports"
	"github.com/mikey/phish-detector/internal/rules"
	"github.com/mikey/phish-detector/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideShared(container); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (cache.Store, error) {
		return f.CreateCacheRepository(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register detection service
	if err := container.Provide(newDetectionService); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideShared registers everything both binaries build the same way
func provideShared(container *dig.Container) error {
	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewRulesFactory); err != nil {
		return err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}

	// Register URL classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.URLClassifier, error) {
		return f.CreateClassifier(context.Background())
	}); err != nil {
		return err
	}

	// Register rule engine
	return container.Provide(func(f *factory.RulesFactory) (*rules.Engine, error) {
		return f.CreateEngine()
	})
}

func newDetectionService(
	cfg *config.Config,
	logger *zap.Logger,
	engine *rules.Engine,
	classifier core.URLClassifier,
	store cache.Store,
) (*core.DetectionService, error) {
	cacheCfg, err := cfg.GetCache()
	if err != nil {
		return nil, err
	}

	// A nil Store must reach the service as a nil interface
	var repo core.CacheRepository
	if store != nil {
		repo = store
	}

	service := core.NewDetectionService(engine, classifier, repo, logger, cacheCfg.Enabled, cacheCfg.TTL)
	return service.WithConcurrency(cfg.GetScanConcurrency()), nil
}
