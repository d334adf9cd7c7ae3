package services

import (
	"context"
	"hash/fnv"
	"math"
)

const localEmbedDimension = 256

// localEmbedder is a deterministic hashed bag-of-words embedder: each token
// is FNV-hashed into a fixed-size vector which is then L2-normalized. It
// runs offline, so the service and its tests work without an API key. Empty
// text embeds to the zero vector, which the matcher scores as similarity 0.
type localEmbedder struct {
	dim int
}

func NewLocalEmbedder() EmbeddingService {
	return &localEmbedder{dim: localEmbedDimension}
}

// EmbedText implements EmbeddingService.
func (l *localEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, l.dim)

	for _, token := range tokenizeText(truncateAtBoundary(text, maxEmbedChars)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(l.dim)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}

	inv := 1 / math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}

	return vec, nil
}

// Dimension implements EmbeddingService.
func (l *localEmbedder) Dimension() int {
	return l.dim
}
