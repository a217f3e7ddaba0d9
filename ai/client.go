package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/mindhaven/mindhaven/config"
)

// Client wraps the Gemini SDK for text generation and embeddings. A nil or
// unconfigured client makes every call return ErrUnavailable so callers can
// fall back to static behavior.
type Client struct {
	genai      *genai.Client
	textModel  string
	embedModel string
}

// ErrUnavailable is returned when no API key is configured or the SDK client
// could not be constructed.
var ErrUnavailable = fmt.Errorf("ai: not configured")

var (
	defaultClient *Client
	clientOnce    sync.Once
)

// Default returns the process-wide client built from config. May be a client
// that always errors when GEMINI_API_KEY is unset.
func Default() *Client {
	clientOnce.Do(func() {
		cfg := config.Get()
		defaultClient = &Client{
			textModel:  cfg.GeminiTextModel,
			embedModel: cfg.GeminiEmbedModel,
		}
		if cfg.GeminiAPIKey == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return
		}
		defaultClient.genai = gc
	})
	return defaultClient
}

// Available reports whether generation calls can succeed.
func (c *Client) Available() bool {
	return c != nil && c.genai != nil
}

// Generate produces a text completion for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}
	resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generate content: empty response")
	}
	return text, nil
}

// Embed returns the embedding vector for a piece of text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}
	resp, err := c.genai.Models.EmbedContent(ctx, c.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embed content: empty embedding")
	}
	return resp.Embeddings[0].Values, nil
}
