package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/adapters/bedrock"
	"github.com/mikey/scam-honeypot/internal/adapters/gemini"
	"github.com/mikey/scam-honeypot/internal/adapters/groq"
	"github.com/mikey/scam-honeypot/internal/config"
	"github.com/mikey/scam-honeypot/internal/core"
)

// LLMFactory creates reply generators
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new reply generator factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReplyGenerator creates a reply generator based on the configuration.
// A missing API key is not fatal: the agent runs in template-only mode with
// a nil generator.
func (f *LLMFactory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "groq":
		groqConfig := f.cfg.GetGroq()
		if groqConfig.APIKey == "" {
			f.logger.Info("No Groq API key configured, using template replies only")
			return nil, nil
		}
		factory := groq.NewFactory(
			groqConfig.APIKey,
			groqConfig.BaseURL,
			groqConfig.ModelName,
			groqConfig.MaxTokens,
			groqConfig.Temperature,
			groqConfig.TopP,
			f.logger,
		)
		return factory.CreateReplyGenerator()
	case "gemini":
		geminiConfig := f.cfg.GetGemini()
		if geminiConfig.APIKey == "" {
			f.logger.Info("No Gemini API key configured, using template replies only")
			return nil, nil
		}
		factory := gemini.NewFactory(
			geminiConfig.APIKey,
			geminiConfig.ModelName,
			geminiConfig.MaxTokens,
			geminiConfig.Temperature,
			geminiConfig.TopP,
			f.logger,
		)
		return factory.CreateReplyGenerator()
	case "bedrock":
		bedrockConfig := f.cfg.GetBedrock()
		factory := bedrock.NewFactory(
			bedrockConfig.Region,
			bedrockConfig.ModelID,
			bedrockConfig.MaxTokens,
			bedrockConfig.Temperature,
			bedrockConfig.TopP,
			f.logger,
		)
		return factory.CreateReplyGenerator()
	case "none":
		f.logger.Info("Reply provider disabled, using template replies only")
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported reply provider: %s", llmConfig.Provider)
	}
}
