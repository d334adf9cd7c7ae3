package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/models"
	"resume-analyzer/internal/repositories"
)

type StatsHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewStatsHandler(analysisRepo repositories.AnalysisRepository) *StatsHandler {
	return &StatsHandler{
		analysisRepo: analysisRepo,
	}
}

// HandleStats handles GET /api/v1/stats
func (h *StatsHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.analysisRepo.Stats()
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "stats_failed", err.Error())
	}

	recent, err := h.analysisRepo.Recent(10)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "stats_failed", err.Error())
	}

	data := models.StatsData{
		TotalAnalyses:        stats.TotalAnalyses,
		AverageATSScore:      roundStat(stats.AverageATSScore),
		AverageTopSimilarity: roundStat(stats.AverageTopSimilarity),
		Recent:               recent,
	}

	return respondOK(c, "Analysis statistics", data)
}

func roundStat(v float64) float64 {
	return math.Round(v*100) / 100
}
