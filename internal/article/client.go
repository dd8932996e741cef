package article

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	// DefaultModel is the default Gemini model used for article generation.
	DefaultModel = "gemini-flash-lite-latest"

	defaultTemperature = float32(0.7)
	defaultMaxTokens   = int32(4096)
)

// TextGenerator is the generative text capability the Generator depends on.
// The Gemini-backed Client implements it; tests substitute fakes.
type TextGenerator interface {
	GenerateText(ctx context.Context, system string, prompt string) (string, error)
}

// Client wraps the Gemini SDK for single-shot text generation.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates a Gemini-backed text client. An empty modelName selects
// DefaultModel.
func NewClient(ctx context.Context, apiKey string, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{modelName: modelName, gClient: gClient}, nil
}

// ModelName returns the model this client generates with.
func (c *Client) ModelName() string {
	return c.modelName
}

// GenerateText sends one prompt under the given system instruction and
// returns the full completion. The response is awaited in full; there is no
// streaming consumption.
func (c *Client) GenerateText(ctx context.Context, system string, prompt string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(defaultTemperature),
		MaxOutputTokens: defaultMaxTokens,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
