package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/adapters/cache"
	"github.com/mikey/phish-detector/internal/config"
	"github.com/mikey/phish-detector/internal/factory"
	"github.com/mikey/phish-detector/internal/logging"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Classifier flags
	Provider string
	Endpoint string
	Timeout  string

	// Scan flags
	Concurrency int
	RulesFile   string
	UseCache    bool

	// Output flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewWithFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			applyFlags(cfg, flags)
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	if err := provideShared(container); err != nil {
		return nil, err
	}

	// Register cache repository, only when asked for
	if err := container.Provide(func(flags *CLIFlags, f *factory.CacheFactory) (cache.Store, error) {
		if !flags.UseCache {
			return nil, nil
		}
		return f.CreateCacheRepository(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register detection service
	if err := container.Provide(newDetectionService); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	cfg := config.NewFromViper(config.NewEmptyViper())
	applyFlags(cfg, flags)
	return cfg
}

// applyFlags lets explicitly set flags win over file and environment values
func applyFlags(cfg *config.Config, flags *CLIFlags) {
	v := cfg.GetViper()

	if flags.Provider != "" {
		v.Set("classifier.provider", flags.Provider)
	}
	if flags.Endpoint != "" {
		v.Set("remote.endpoint", flags.Endpoint)
	}
	if flags.Timeout != "" {
		v.Set("remote.timeout", flags.Timeout)
	}
	if flags.Concurrency > 0 {
		v.Set("scan.concurrency", flags.Concurrency)
	}
	if flags.RulesFile != "" {
		v.Set("rules.file", flags.RulesFile)
	}
	v.Set("cache.enabled", flags.UseCache)
}
