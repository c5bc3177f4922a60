package groq

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

// Factory creates new instances of GroqClient
type Factory struct {
	apiKey      string
	baseURL     string
	modelName   string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewFactory creates a new factory for GroqClient instances
func NewFactory(
	apiKey string,
	baseURL string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *Factory {
	return &Factory{
		apiKey:      apiKey,
		baseURL:     baseURL,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// CreateReplyGenerator creates a new Groq-backed reply generator
func (f *Factory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	return NewGroqClient(
		f.apiKey,
		f.baseURL,
		f.modelName,
		f.maxTokens,
		f.temperature,
		f.topP,
		f.logger,
	), nil
}
