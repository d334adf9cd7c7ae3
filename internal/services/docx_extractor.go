package services

import (
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"
)

type docxExtractor struct{}

// Extract implements TextExtractor.
func (d *docxExtractor) Extract(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer f.Close()

	body, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", fmt.Errorf("failed to convert DOCX: %w", err)
	}

	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}

	return body, nil
}
