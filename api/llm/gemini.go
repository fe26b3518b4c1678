package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"reserve-assistant/models/apperr"
)

const GEMINI_SOURCE_NAME = "gemini"

// GeminiTextGenerator answers prompts with a Gemini model.
type GeminiTextGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  arbor.ILogger
}

// NewGeminiTextGenerator creates a generator bound to the given model.
func NewGeminiTextGenerator(ctx context.Context, apiKey, model string, timeout time.Duration, limiter *rate.Limiter, logger arbor.ILogger) (*GeminiTextGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	logger.Info().
		Str("model", model).
		Dur("timeout", timeout).
		Msg("[GeminiTextGenerator] initialized")

	return &GeminiTextGenerator{
		client:  client,
		model:   model,
		timeout: timeout,
		limiter: limiter,
		logger:  logger,
	}, nil
}

func (g *GeminiTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", apperr.Source(GEMINI_SOURCE_NAME, err)
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(timeoutCtx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", apperr.Source(GEMINI_SOURCE_NAME, err)
	}

	// Take the first candidate with non-empty text.
	var reply strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				reply.WriteString(part.Text)
			}
			if reply.Len() > 0 {
				break
			}
		}
	}

	if reply.Len() == 0 {
		return "", apperr.Source(GEMINI_SOURCE_NAME, errors.New("empty response"))
	}

	g.logger.Debug().
		Str("model", g.model).
		Dur("elapsed", time.Since(start)).
		Msg("[GeminiTextGenerator] reply received")

	return cleanReply(reply.String()), nil
}
