package groq

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// personaPrompt frames the honeypot persona for every reply request.
const personaPrompt = "You are a cautious bank customer. Reply with one short sentence (<=18 words), " +
	"natural and human-like. Stay polite and curious."

// GroqClient is an implementation of the ReplyGenerator interface using the
// Groq chat completions API, which is OpenAI-compatible.
type GroqClient struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewGroqClient creates a new Groq client. baseURL points the OpenAI client
// at Groq's endpoint.
func NewGroqClient(
	apiKey string,
	baseURL string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &GroqClient{
		client:      openai.NewClientWithConfig(cfg),
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// GenerateReply asks Groq for a short reply expressing the intent.
func (c *GroqClient) GenerateReply(ctx context.Context, intent string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: personaPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Respond with the emotional intent: %s", intent),
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion with Groq: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from Groq")
	}

	reply := resp.Choices[0].Message.Content
	c.logger.Debug("Generated reply with Groq",
		zap.String("intent", intent),
		zap.String("model", c.modelName),
		zap.Int("length", len(reply)))

	return reply, nil
}
