package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/models"
	"resume-analyzer/internal/services"
)

var searchValidator = validator.New()

type JobsHandler struct {
	catalog     services.JobCatalog
	vectorIndex services.VectorIndexService
	embedder    services.EmbeddingService
	matcher     services.JobMatcher
}

// NewJobsHandler wires the catalog endpoints. vectorIndex may be nil, in
// which case searches always scan the in-memory catalog.
func NewJobsHandler(
	catalog services.JobCatalog,
	vectorIndex services.VectorIndexService,
	embedder services.EmbeddingService,
	matcher services.JobMatcher,
) *JobsHandler {
	return &JobsHandler{
		catalog:     catalog,
		vectorIndex: vectorIndex,
		embedder:    embedder,
		matcher:     matcher,
	}
}

// HandleListJobs handles GET /api/v1/jobs
func (h *JobsHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs := h.catalog.Jobs()

	// Embeddings stay out of the response payload
	summaries := make([]fiber.Map, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, fiber.Map{
			"id":              job.ID,
			"title":           job.Title,
			"description":     job.Description,
			"required_skills": job.RequiredSkills,
		})
	}

	return respondOK(c, "Job catalog", fiber.Map{
		"jobs":  summaries,
		"total": len(jobs),
	})
}

// HandleSearchJobs handles POST /api/v1/jobs/search
func (h *JobsHandler) HandleSearchJobs(c *fiber.Ctx) error {
	var req models.JobSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid_payload", "Invalid request payload")
	}

	if err := searchValidator.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	queryVec, err := h.embedder.EmbedText(c.UserContext(), req.Query)
	if err != nil {
		return respondError(c, fiber.StatusBadGateway, "embedding_failed", err.Error())
	}

	var results []models.JobSearchResult
	if h.vectorIndex != nil {
		results, err = h.vectorIndex.SearchJobs(c.UserContext(), queryVec, limit)
		if err != nil {
			logger.Warn().Err(err).Msg("Vector index search failed, falling back to catalog scan")
			results = nil
		}
	}
	if results == nil {
		results = h.scanCatalog(queryVec, limit)
	}

	// Backfill catalog fields the index payload does not carry
	for i := range results {
		if job, ok := h.catalog.FindByID(results[i].JobID); ok {
			results[i].RequiredSkills = job.RequiredSkills
			if results[i].Title == "" {
				results[i].Title = job.Title
			}
		}
	}

	return respondOK(c, "Job search results", fiber.Map{
		"results": results,
		"total":   len(results),
	})
}

func (h *JobsHandler) scanCatalog(queryVec []float32, limit int) []models.JobSearchResult {
	results := make([]models.JobSearchResult, 0, limit)

	for match := range h.matcher.Match(queryVec, h.catalog.Jobs()) {
		if len(results) >= limit {
			break
		}
		results = append(results, models.JobSearchResult{
			JobID: match.JobID,
			Title: match.Title,
			Score: match.Similarity,
		})
	}

	return results
}
