package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"reserve-assistant/models/apperr"
)

const ANTHROPIC_SOURCE_NAME = "anthropic"

// AnthropicTextGenerator answers prompts with a Claude model.
type AnthropicTextGenerator struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  arbor.ILogger
}

// NewAnthropicTextGenerator creates a generator; baseURL overrides the API endpoint when set.
func NewAnthropicTextGenerator(apiKey, model, baseURL string, timeout time.Duration, limiter *rate.Limiter, logger arbor.ILogger) (*AnthropicTextGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("missing ANTHROPIC_API_KEY")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	logger.Info().
		Str("model", model).
		Dur("timeout", timeout).
		Msg("[AnthropicTextGenerator] initialized")

	return &AnthropicTextGenerator{
		client:  anthropic.NewClient(opts...),
		model:   model,
		timeout: timeout,
		limiter: limiter,
		logger:  logger,
	}, nil
}

func (g *AnthropicTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", apperr.Source(ANTHROPIC_SOURCE_NAME, err)
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Messages.New(timeoutCtx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   5,
		Temperature: anthropic.Float(0),
		System: []anthropic.TextBlockParam{
			{Text: "You judge whether a restaurant is open at a given date and time. Reply with TRUE or FALSE only."},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", apperr.Source(ANTHROPIC_SOURCE_NAME, err)
	}

	var reply strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}
	if reply.Len() == 0 {
		return "", apperr.Source(ANTHROPIC_SOURCE_NAME, errors.New("no text content returned"))
	}

	g.logger.Debug().
		Str("model", g.model).
		Dur("elapsed", time.Since(start)).
		Msg("[AnthropicTextGenerator] reply received")

	return cleanReply(reply.String()), nil
}
