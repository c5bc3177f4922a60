package gemini

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

// Factory creates new instances of GeminiClient
type Factory struct {
	apiKey      string
	modelName   string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *Factory {
	return &Factory{
		apiKey:      apiKey,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// CreateReplyGenerator creates a new Gemini-backed reply generator
func (f *Factory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	return NewGeminiClient(
		f.apiKey,
		f.modelName,
		f.maxTokens,
		f.temperature,
		f.topP,
		f.logger,
	)
}
