package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/config"
	"github.com/mikey/phish-detector/internal/rules"
)

// RulesFactory builds the email rule engine from the configured tables
type RulesFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRulesFactory creates a new rules factory
func NewRulesFactory(cfg *config.Config, logger *zap.Logger) *RulesFactory {
	return &RulesFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEngine compiles the rule tables. An invalid pattern is an error.
func (f *RulesFactory) CreateEngine() (*rules.Engine, error) {
	tables, err := f.cfg.GetRules()
	if err != nil {
		return nil, err
	}

	rs, err := rules.Compile(tables)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Loaded rule tables",
		zap.Int("suspicious_tlds", len(tables.SuspiciousTLDs)),
		zap.Int("legitimate_domains", len(tables.LegitimateDomains)),
		zap.Int("disposable_domains", len(tables.DisposableDomains)),
		zap.Int("phishing_patterns", len(tables.PhishingPatterns)))

	return rules.NewEngine(rs), nil
}
