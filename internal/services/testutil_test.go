package services

import (
	"context"
	"sync"
)

// stubEmbedder is a canned EmbeddingService for tests. It returns the
// configured vector for known texts and a fixed unit vector otherwise,
// counts calls, and can be forced to fail.
type stubEmbedder struct {
	dim     int
	vectors map[string][]float32
	err     error

	mu    sync.Mutex
	calls int
}

func newStubEmbedder(dim int) *stubEmbedder {
	return &stubEmbedder{dim: dim, vectors: make(map[string][]float32)}
}

// EmbedText implements EmbeddingService.
func (s *stubEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}

	vec := make([]float32, s.dim)
	vec[0] = 1
	return vec, nil
}

// Dimension implements EmbeddingService.
func (s *stubEmbedder) Dimension() int {
	return s.dim
}

func (s *stubEmbedder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
