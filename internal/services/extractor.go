package services

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"resume-analyzer/internal/models"
)

// TextExtractor pulls plain text out of one stored resume file format.
type TextExtractor interface {
	Extract(filePath string) (string, error)
}

type ExtractionService interface {
	ExtractText(filePath string, format models.FileFormat) (string, error)
}

type extractionService struct {
	extractors map[models.FileFormat]TextExtractor
}

func NewExtractionService() ExtractionService {
	return &extractionService{
		extractors: map[models.FileFormat]TextExtractor{
			models.FormatPDF:  &pdfExtractor{},
			models.FormatDOCX: &docxExtractor{},
			models.FormatTXT:  &txtExtractor{},
		},
	}
}

// ExtractText implements ExtractionService.
func (e *extractionService) ExtractText(filePath string, format models.FileFormat) (string, error) {
	extractor, ok := e.extractors[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	text, err := extractor.Extract(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return cleanRawText(text), nil
}

type txtExtractor struct{}

// Extract implements TextExtractor.
func (t *txtExtractor) Extract(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	return string(content), nil
}

// cleanRawText drops invalid UTF-8 and control characters while keeping
// newlines and tabs, then trims trailing whitespace from every line. Tabs
// inside lines survive so the formatting checks still see them.
func cleanRawText(text string) string {
	text = strings.ToValidUTF8(text, "")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
