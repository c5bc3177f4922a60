package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

var emphasisRe = regexp.MustCompile(`["*]`)

// TextProcessor provides utilities for cleaning up text, in particular
// generative-provider replies before they are sent back to a scammer.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// SanitizeReply reduces a provider reply to something a human would plausibly
// type: first line only, quote and emphasis punctuation stripped, truncated
// to maxWords words.
func (tp *TextProcessor) SanitizeReply(reply string, maxWords int) string {
	line, _, _ := strings.Cut(reply, "\n")
	line = strings.TrimSpace(emphasisRe.ReplaceAllString(line, ""))

	words := strings.Fields(line)
	if maxWords > 0 && len(words) > maxWords {
		tp.logger.Debug("Reply truncated",
			zap.Int("original_words", len(words)),
			zap.Int("max_words", maxWords))
		words = words[:maxWords]
	}
	return strings.Join(words, " ")
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Replace invalid UTF-8 sequences with nothing
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				// Skip invalid UTF-8 sequences
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

// ProcessReply sanitizes encoding and shape in one operation.
func (tp *TextProcessor) ProcessReply(reply string, maxWords int) string {
	return tp.SanitizeReply(tp.SanitizeUTF8(reply), maxWords)
}
