package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// defaultPreviewMaxSize caps body previews when no size is configured.
const defaultPreviewMaxSize = 300

// TextProcessor prepares email text for inclusion in LLM prompts.
type TextProcessor struct {
	logger     *zap.Logger
	previewMax int
}

// NewTextProcessor creates a new TextProcessor. previewMax bounds the body
// preview included in prompts; zero or negative selects the default.
func NewTextProcessor(logger *zap.Logger, previewMax int) *TextProcessor {
	if previewMax <= 0 {
		previewMax = defaultPreviewMaxSize
	}
	return &TextProcessor{logger: logger, previewMax: previewMax}
}

// TruncateText safely truncates text to the specified maximum size and
// ensures the result is valid UTF-8.
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]

	// Back off until the cut lands on a rune boundary.
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters.
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// PreparePreview truncates a body preview to the configured size and
// sanitizes it in one operation.
func (tp *TextProcessor) PreparePreview(text string) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, tp.previewMax))
}
