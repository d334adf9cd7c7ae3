package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/models"
	"resume-analyzer/internal/services"
)

type MatchHandler struct {
	storageService    services.StorageService
	extractionService services.ExtractionService
	nlpProcessor      services.NLPProcessor
	analyzerService   services.AnalyzerService
	maxFileSize       int64
}

func NewMatchHandler(
	storageService services.StorageService,
	extractionService services.ExtractionService,
	nlpProcessor services.NLPProcessor,
	analyzerService services.AnalyzerService,
	maxFileSize int64,
) *MatchHandler {
	return &MatchHandler{
		storageService:    storageService,
		extractionService: extractionService,
		nlpProcessor:      nlpProcessor,
		analyzerService:   analyzerService,
		maxFileSize:       maxFileSize,
	}
}

// HandleMatchJobs handles POST /api/v1/match-jobs
func (h *MatchHandler) HandleMatchJobs(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "missing_file", "Upload a resume file in the 'resume' form field")
	}

	if file.Size > h.maxFileSize {
		return respondError(c, fiber.StatusBadRequest, "file_too_large", fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	titles := collectJobTitles(c)
	topK, _ := strconv.Atoi(c.FormValue("top_k"))

	format, err := models.DetectFormat(file.Filename)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "unsupported_format", err.Error())
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return respondPipelineError(c, err)
	}
	defer h.storageService.DeleteFile(filename)

	rawText, err := h.extractionService.ExtractText(filePath, format)
	if err != nil {
		return respondPipelineError(c, err)
	}

	doc := h.nlpProcessor.BuildDocument(file.Filename, format, rawText)

	data, err := h.analyzerService.MatchAgainstTitles(c.UserContext(), doc, titles, topK)
	if err != nil {
		return respondPipelineError(c, err)
	}

	return respondOK(c, "Resume matched against requested jobs", data)
}

// collectJobTitles reads repeated 'job_titles' form values and splits any
// comma-separated entries so both styles work.
func collectJobTitles(c *fiber.Ctx) []string {
	var raw []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		raw = form.Value["job_titles"]
	}
	if len(raw) == 0 {
		if v := c.FormValue("job_titles"); v != "" {
			raw = []string{v}
		}
	}

	var titles []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				titles = append(titles, part)
			}
		}
	}

	return titles
}
