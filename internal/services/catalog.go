package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/models"
)

// JobCatalog holds the job postings loaded at startup. Jobs preserves file
// order, which is also the tie-break order for equal similarities.
type JobCatalog interface {
	Jobs() []models.JobPosting
	FindByID(id string) (models.JobPosting, bool)
	Len() int
	EnsureEmbeddings(ctx context.Context, embedder EmbeddingService, concurrency int) int
}

type jobCatalog struct {
	jobs []models.JobPosting
	byID map[string]int
}

type catalogFile struct {
	Jobs []models.JobPosting `json:"jobs"`
}

func NewJobCatalog(jobs []models.JobPosting) JobCatalog {
	c := &jobCatalog{byID: make(map[string]int)}

	for _, job := range jobs {
		if job.ID == "" {
			logger.Warn().Str("title", job.Title).Msg("Skipping job posting without id")
			continue
		}
		if _, exists := c.byID[job.ID]; exists {
			logger.Warn().Str("job_id", job.ID).Msg("Skipping duplicate job posting id")
			continue
		}

		c.byID[job.ID] = len(c.jobs)
		c.jobs = append(c.jobs, job)
	}

	return c
}

// LoadJobCatalog reads the catalog file. The returned catalog is never nil;
// on error it is empty so the service can still analyze resumes without
// job matching.
func LoadJobCatalog(path string) (JobCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewJobCatalog(nil), fmt.Errorf("failed to read job catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return NewJobCatalog(nil), fmt.Errorf("failed to parse job catalog: %w", err)
	}

	return NewJobCatalog(file.Jobs), nil
}

// Jobs implements JobCatalog.
func (c *jobCatalog) Jobs() []models.JobPosting {
	return c.jobs
}

// FindByID implements JobCatalog.
func (c *jobCatalog) FindByID(id string) (models.JobPosting, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.JobPosting{}, false
	}

	return c.jobs[idx], true
}

// Len implements JobCatalog.
func (c *jobCatalog) Len() int {
	return len(c.jobs)
}

// EnsureEmbeddings implements JobCatalog. Jobs whose stored embedding is
// missing or does not match the embedder's dimension are re-embedded with
// a bounded worker pool. A job that fails to embed gets a zero vector,
// which the matcher scores as similarity 0; the number of such failures is
// returned.
func (c *jobCatalog) EnsureEmbeddings(ctx context.Context, embedder EmbeddingService, concurrency int) int {
	if embedder == nil || len(c.jobs) == 0 {
		return 0
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	indexes := make(chan int, len(c.jobs))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				job := &c.jobs[idx]

				vector, err := embedder.EmbedText(ctx, job.Title+"\n\n"+job.Description)
				if err != nil {
					logger.Warn().Err(err).Str("job_id", job.ID).Msg("Failed to embed job posting, using zero vector")
					job.Embedding = make([]float32, embedder.Dimension())
					failed.Add(1)
					continue
				}

				job.Embedding = vector
			}
		}()
	}

	refreshed := 0
	for i := range c.jobs {
		if len(c.jobs[i].Embedding) == embedder.Dimension() {
			continue
		}
		indexes <- i
		refreshed++
	}
	close(indexes)
	wg.Wait()

	if refreshed > 0 {
		logger.Info().Int("jobs", refreshed).Msg("Computed job catalog embeddings")
	}

	return int(failed.Load())
}
