package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"reserve-assistant/models/apperr"
)

const OPENAI_SOURCE_NAME = "openai"

// OpenAITextGenerator answers prompts with an OpenAI chat model.
type OpenAITextGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  arbor.ILogger
}

// NewOpenAITextGenerator creates a generator; baseURL overrides the API endpoint when set.
func NewOpenAITextGenerator(apiKey, model, baseURL string, timeout time.Duration, limiter *rate.Limiter, logger arbor.ILogger) (*OpenAITextGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAITextGenerator{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		limiter: limiter,
		logger:  logger,
	}, nil
}

func (g *OpenAITextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", apperr.Source(OPENAI_SOURCE_NAME, err)
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(timeoutCtx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You judge whether a restaurant is open at a given date and time. Reply with TRUE or FALSE only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0,
		MaxTokens:   5,
	})
	if err != nil {
		return "", apperr.Source(OPENAI_SOURCE_NAME, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperr.Source(OPENAI_SOURCE_NAME, errors.New("no choices returned"))
	}

	g.logger.Debug().
		Str("model", g.model).
		Dur("elapsed", time.Since(start)).
		Msg("[OpenAITextGenerator] reply received")

	return cleanReply(resp.Choices[0].Message.Content), nil
}
