package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const truncationMarker = "...[truncated]"

// DefaultMaxHeaderSize bounds a header value rendered by HeaderValue
const DefaultMaxHeaderSize = 900

// TextProcessor prepares untrusted text for prompts and headers
type TextProcessor struct {
	logger        *zap.Logger
	maxHeaderSize int
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger:        logger,
		maxHeaderSize: DefaultMaxHeaderSize,
	}
}

// WithMaxHeaderSize sets the HeaderValue limit; n <= 0 keeps the current one
func (tp *TextProcessor) WithMaxHeaderSize(n int) *TextProcessor {
	if n > 0 {
		tp.maxHeaderSize = n
	}
	return tp
}

// TruncateText cuts text to at most maxSize bytes on a rune boundary and
// marks the cut. maxSize <= 0 disables truncation.
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated + truncationMarker
}

// SanitizeUTF8 drops invalid UTF-8 bytes
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	sanitized := strings.ToValidUTF8(text, "")
	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(sanitized)))

	return sanitized
}

// SingleLine collapses CR/LF and tabs so text is safe inside a mail header
func (tp *TextProcessor) SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// HeaderValue folds text onto one line and bounds it for a mail header
func (tp *TextProcessor) HeaderValue(text string) string {
	return tp.ProcessText(tp.SingleLine(text), tp.maxHeaderSize)
}

// ProcessText truncates and sanitizes text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, maxSize))
}
