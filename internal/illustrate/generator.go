package illustrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
)

const (
	// DefaultBaseURL is the hosted inference endpoint for the image model.
	DefaultBaseURL = "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-2-1"

	negativePrompt = "blurry, bad quality, distorted, ugly, bad art, poor details"

	maxAttempts = 3
	retryDelay  = 20 * time.Second
)

// imageRequest is the JSON body sent to the image service.
type imageRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters imageParameters `json:"parameters"`
}

type imageParameters struct {
	NegativePrompt    string  `json:"negative_prompt"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
}

// serviceError is the JSON body the service returns on non-200 responses.
// EstimatedTime is set while the model is still loading.
type serviceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Generator calls the generative image service and persists results locally.
type Generator struct {
	apiToken   string
	baseURL    string
	outputDir  string
	httpClient *http.Client
	delay      time.Duration
	sleep      func(time.Duration)
	now        func() time.Time
}

// NewGenerator returns a Generator writing images under outputDir. An empty
// baseURL selects the default hosted model endpoint.
func NewGenerator(apiToken string, baseURL string, outputDir string) *Generator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Generator{
		apiToken:   apiToken,
		baseURL:    baseURL,
		outputDir:  outputDir,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		delay:      retryDelay,
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

// Generate sends the prompt with fixed generation parameters and retries up
// to 3 attempts. On success the returned bytes are saved to a timestamped
// file under the output directory and its path is returned. A "model still
// loading" response sleeps min(retry delay, estimated wait + 5s) before the
// next attempt; other failures sleep the fixed retry delay. Exhaustion
// returns an empty path, never an error the caller must unwind.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	logger.Info("Generating image", "prompt_length", len(prompt))

	payload := imageRequest{
		Inputs: prompt,
		Parameters: imageParameters{
			NegativePrompt:    negativePrompt,
			NumInferenceSteps: 30,
			GuidanceScale:     7.5,
			Width:             768,
			Height:            768,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal image request", err)
		return ""
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		path, retryIn, err := g.attempt(ctx, body)
		if err == nil {
			return path
		}
		logger.Warn("Image generation attempt failed",
			"attempt", attempt, "max_attempts", maxAttempts, "error", err.Error())
		if attempt < maxAttempts {
			g.sleep(retryIn)
		}
	}

	logger.Warn("Image generation exhausted retries", "attempts", maxAttempts)
	return ""
}

// attempt performs one request. On failure it returns how long to wait
// before the next attempt.
func (g *Generator) attempt(ctx context.Context, body []byte) (string, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", g.delay, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", g.delay, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", g.delay, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		path, err := g.saveImage(respBody)
		if err != nil {
			return "", g.delay, err
		}
		logger.Info("Image saved", "path", path)
		return path, 0, nil
	}

	var svcErr serviceError
	if jsonErr := json.Unmarshal(respBody, &svcErr); jsonErr == nil && svcErr.Error != "" && svcErr.EstimatedTime > 0 {
		wait := time.Duration(svcErr.EstimatedTime)*time.Second + 5*time.Second
		if g.delay < wait {
			wait = g.delay
		}
		return "", wait, fmt.Errorf("model loading, estimated %.0fs: %s", svcErr.EstimatedTime, svcErr.Error)
	}

	return "", g.delay, fmt.Errorf("image service returned status %d: %s", resp.StatusCode, string(respBody))
}

// saveImage persists raw image bytes to a uniquely timestamped file.
func (g *Generator) saveImage(data []byte) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory %s: %w", g.outputDir, err)
	}

	name := fmt.Sprintf("generated_image_%d.png", g.now().UnixNano())
	path := filepath.Join(g.outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return path, nil
}

// GenerateAll fills in the image paths for a set of planned illustrations,
// in order. Failed generations leave the path empty; the document assembler
// treats those roles as absent.
func (g *Generator) GenerateAll(ctx context.Context, planned []core.Illustration) []core.Illustration {
	out := make([]core.Illustration, len(planned))
	for i, ill := range planned {
		ill.ImagePath = g.Generate(ctx, ill.Prompt)
		if ill.ImagePath == "" {
			logger.Warn("Proceeding without illustration", "role", string(ill.Role))
		}
		out[i] = ill
	}
	return out
}
