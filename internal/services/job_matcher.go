package services

import (
	"iter"
	"math"
	"sort"

	"resume-analyzer/internal/models"
)

type JobMatcher interface {
	// Match returns the catalog ranked by cosine similarity against the
	// resume embedding. The sequence is lazy and single-use: ranking happens
	// when iteration starts, and a second range yields nothing.
	Match(resumeEmbedding []float32, jobs []models.JobPosting) iter.Seq[models.MatchResult]
	Similarity(a, b []float32) float64
}

type jobMatcher struct{}

func NewJobMatcher() JobMatcher {
	return &jobMatcher{}
}

// Match implements JobMatcher. Ties keep catalog insertion order; ranks
// start at 1. Similarities are computed fresh on every call.
func (m *jobMatcher) Match(resumeEmbedding []float32, jobs []models.JobPosting) iter.Seq[models.MatchResult] {
	consumed := false

	return func(yield func(models.MatchResult) bool) {
		if consumed {
			return
		}
		consumed = true

		results := make([]models.MatchResult, 0, len(jobs))
		for _, job := range jobs {
			similarity := cosineSimilarity(resumeEmbedding, job.Embedding)
			results = append(results, models.MatchResult{
				JobID:        job.ID,
				Title:        job.Title,
				Similarity:   similarity,
				MatchPercent: round1(similarity * 100),
			})
		}

		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Similarity > results[j].Similarity
		})

		for i := range results {
			results[i].Rank = i + 1
			if !yield(results[i]) {
				return
			}
		}
	}
}

// Similarity implements JobMatcher.
func (m *jobMatcher) Similarity(a, b []float32) float64 {
	return cosineSimilarity(a, b)
}

// cosineSimilarity accumulates in float64 for stability. Mismatched lengths
// and zero vectors yield 0 so degenerate embeddings never produce NaN.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
