package main

import (
	"context"
	"os"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/services"
)

// Embeds every posting in the job catalog and mirrors it into the Qdrant
// collection used by /api/v1/jobs/search.
func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	logger.Info().Msg("Starting job catalog ingestion")

	if cfg.Qdrant.URL == "" {
		logger.Fatal().Msg("QDRANT_URL must be set to ingest the job catalog")
	}

	var embedder services.EmbeddingService
	if cfg.Gemini.APIKey != "" {
		gemini, err := services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Gemini.RequestsPerMinute, cfg.Gemini.MaxRetries)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Gemini embedder")
		}
		embedder = gemini
	} else {
		embedder = services.NewLocalEmbedder()
		logger.Warn().Msg("GEMINI_API_KEY not set, ingesting with local hashed embeddings")
	}

	catalog, err := services.LoadJobCatalog(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load job catalog")
	}
	if catalog.Len() == 0 {
		logger.Fatal().Str("path", cfg.Catalog.Path).Msg("Job catalog is empty, nothing to ingest")
	}

	vectorIndex, err := services.NewVectorIndexService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, embedder.Dimension())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Qdrant")
	}

	ctx := context.Background()

	if err := vectorIndex.InitCollection(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Qdrant collection")
	}

	failCount := catalog.EnsureEmbeddings(ctx, embedder, cfg.Catalog.EmbedConcurrency)
	if failCount > 0 {
		logger.Error().Int("jobs", failCount).Msg("Some postings could not be embedded and will not be ingested")
	}

	successCount := 0

	for _, job := range catalog.Jobs() {
		if zeroVector(job.Embedding) {
			continue
		}

		if err := vectorIndex.UpsertJob(ctx, job); err != nil {
			logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to upsert job posting")
			failCount++
			continue
		}

		logger.Info().Str("job_id", job.ID).Str("title", job.Title).Msg("Job posting ingested")
		successCount++
	}

	logger.Info().Int("succeeded", successCount).Int("failed", failCount).Msg("Ingestion finished")

	if failCount > 0 {
		os.Exit(1)
	}
}

// zeroVector reports whether an embedding is missing or all zeros; such
// postings carry no signal and must not reach the index.
func zeroVector(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}

	return true
}
