package services

import (
	"context"
	"strings"
	"unicode"
)

// EmbeddingService turns text into a fixed-length vector. Implementations
// must be safe for concurrent use and must return vectors of exactly
// Dimension() values.
type EmbeddingService interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// maxEmbedChars bounds the text sent to an embedding model.
const maxEmbedChars = 40000

// truncateAtBoundary cuts text to at most max bytes, preferring a paragraph
// break and falling back to a whitespace boundary so no word is split.
func truncateAtBoundary(text string, max int) string {
	if len(text) <= max {
		return text
	}

	cut := text[:max]
	if i := strings.LastIndex(cut, "\n\n"); i > max/2 {
		return cut[:i]
	}
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > 0 {
		return cut[:i]
	}

	return cut
}
