package llm

import (
	"context"
	"strings"
)

// TextGenerator sends a single prompt to a text-generation model and returns
// its reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// TextGeneratorFunc adapts a function to TextGenerator.
type TextGeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f TextGeneratorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// cleanReply trims whitespace and markdown code fences some models wrap short answers in.
func cleanReply(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
