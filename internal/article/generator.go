// Package article turns a keyword and its snippet set into structured
// long-form text via the generative text service.
package article

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
)

const (
	maxAttempts = 3
	retryDelay  = 5 * time.Second
)

// Generator drives the text service under a retry policy.
type Generator struct {
	client TextGenerator
	model  string
	delay  time.Duration
}

// NewGenerator returns a Generator using the given text capability. The
// model name is recorded on produced articles.
func NewGenerator(client TextGenerator, model string) *Generator {
	return &Generator{client: client, model: model, delay: retryDelay}
}

// Generate builds the article prompt for one keyword and invokes the text
// service, retrying up to 3 attempts with a fixed delay between them. After
// exhausting retries the last error is returned; the caller decides whether
// to skip the keyword.
func (g *Generator) Generate(ctx context.Context, keyword string, snippets []core.Snippet) (core.Article, error) {
	prompt := BuildPrompt(keyword, snippets)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := g.client.GenerateText(ctx, WriterPersona, prompt)
		if err == nil {
			return core.Article{
				ID:            uuid.NewString(),
				Keyword:       keyword,
				BodyText:      body,
				ModelUsed:     g.model,
				DateGenerated: time.Now().UTC(),
			}, nil
		}

		lastErr = err
		logger.Warn("Article generation attempt failed",
			"keyword", keyword, "attempt", attempt, "max_attempts", maxAttempts, "error", err.Error())
		if attempt < maxAttempts {
			time.Sleep(g.delay)
		}
	}

	return core.Article{}, fmt.Errorf("article generation for %q failed after %d attempts: %w", keyword, maxAttempts, lastErr)
}
