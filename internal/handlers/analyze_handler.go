package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/models"
	"resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	storageService    services.StorageService
	extractionService services.ExtractionService
	nlpProcessor      services.NLPProcessor
	analyzerService   services.AnalyzerService
	maxFileSize       int64
}

func NewAnalyzeHandler(
	storageService services.StorageService,
	extractionService services.ExtractionService,
	nlpProcessor services.NLPProcessor,
	analyzerService services.AnalyzerService,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storageService:    storageService,
		extractionService: extractionService,
		nlpProcessor:      nlpProcessor,
		analyzerService:   analyzerService,
		maxFileSize:       maxFileSize,
	}
}

// HandleAnalyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "missing_file", "Upload a resume file in the 'resume' form field")
	}

	if file.Size > h.maxFileSize {
		return respondError(c, fiber.StatusBadRequest, "file_too_large", fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
	}

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

	jobDescription := c.FormValue("job_description")
	topK, _ := strconv.Atoi(c.FormValue("top_k"))

	data, err := h.analyzerService.Analyze(c.UserContext(), doc, jobDescription, topK)
	if err != nil {
		return respondPipelineError(c, err)
	}

	return respondOK(c, "Resume analyzed successfully", data)
}
