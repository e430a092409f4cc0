package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/config"
	"github.com/mikey/phish-detector/internal/utils"
)

// TextProcessorFactory creates text processors sized from configuration
type TextProcessorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTextProcessorFactory creates a new TextProcessorFactory
func NewTextProcessorFactory(cfg *config.Config, logger *zap.Logger) *TextProcessorFactory {
	return &TextProcessorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a TextProcessor whose header values are
// bounded by gateway.max_header_size
func (f *TextProcessorFactory) CreateTextProcessor() *utils.TextProcessor {
	size := f.cfg.GetMaxHeaderSize()
	if size <= 0 {
		f.logger.Warn("Invalid gateway.max_header_size, using default",
			zap.Int("configured", size),
			zap.Int("default", utils.DefaultMaxHeaderSize))
		size = utils.DefaultMaxHeaderSize
	}
	return utils.NewTextProcessor(f.logger).WithMaxHeaderSize(size)
}
