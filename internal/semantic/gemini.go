// Package semantic provides the Gemini-backed embedding client used by
// the semantic matching stage. The client is optional: when no API key is
// configured it reports itself unavailable and the matcher skips the stage.
package semantic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vkrishnan/ledger-match/internal/logging"
)

// GeminiClient embeds texts with the Gemini embedding API. It satisfies
// the matcher's EmbeddingClient interface.
type GeminiClient struct {
	apiKey  string
	model   string
	timeout time.Duration
	log     logging.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a client for the given embedding model. The
// underlying connection is established lazily on first use.
func NewGeminiClient(apiKey, model string, timeout time.Duration, logger logging.Logger) *GeminiClient {
	if model == "" {
		model = "text-embedding-004"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		log:     logger,
	}
}

// Available reports whether an API key is configured.
func (c *GeminiClient) Available() bool {
	return c.apiKey != ""
}

// ensureClient initializes the Gemini client on first use.
func (c *GeminiClient) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Embed encodes each text into a dense vector using the configured
// embedding model. Results are returned in input order.
func (c *GeminiClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}
	em := client.EmbeddingModel(c.model)

	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		res, err := em.EmbedContent(ctx, genai.Text(text))
		if err != nil {
			return nil, fmt.Errorf("embedding request failed: %w", err)
		}
		if res.Embedding == nil || len(res.Embedding.Values) == 0 {
			return nil, fmt.Errorf("embedding response missing vector for %q", text)
		}
		vectors = append(vectors, res.Embedding.Values)
	}

	if c.log != nil {
		c.log.Debug("embedded texts",
			logging.Field{Key: "count", Value: len(texts)},
			logging.Field{Key: "model", Value: c.model})
	}
	return vectors, nil
}

// Close releases the underlying connection if one was established.
func (c *GeminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
