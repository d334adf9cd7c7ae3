package services

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"resume-analyzer/internal/logger"
)

const geminiEmbedDimension = 768

type geminiEmbedder struct {
	client     *genai.Client
	embedModel string
	limiter    *rate.Limiter
	maxRetries int
}

// NewGeminiEmbedder builds the remote embedder. Outbound calls are spread
// by the rate limiter so catalog backfill cannot exhaust the API quota.
func NewGeminiEmbedder(apiKey string, requestsPerMinute, maxRetries int) (EmbeddingService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}

	return &geminiEmbedder{
		client:     client,
		embedModel: "text-embedding-004",
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		maxRetries: maxRetries,
	}, nil
}

// EmbedText implements EmbeddingService. Transient failures are retried up
// to maxRetries times; context cancellation stops the loop early.
func (g *geminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	text = truncateAtBoundary(text, maxEmbedChars)

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
		if err == nil {
			if result == nil || len(result.Embeddings) == 0 {
				return nil, fmt.Errorf("empty embedding result")
			}
			return result.Embeddings[0].Values, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < g.maxRetries {
			logger.Warn().Err(err).Int("attempt", attempt).Msg("embedding attempt failed, retrying")
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", g.maxRetries, lastErr)
}

// Dimension implements EmbeddingService.
func (g *geminiEmbedder) Dimension() int {
	return geminiEmbedDimension
}
