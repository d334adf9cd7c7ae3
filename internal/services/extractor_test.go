package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/models"
)

func TestExtractTextFromTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Line one  \nLine two\t\n"), 0644))

	svc := NewExtractionService()
	text, err := svc.ExtractText(path, models.FormatTXT)

	require.NoError(t, err)
	assert.Equal(t, "Line one\nLine two", text)
}

func TestExtractTextUnknownFormat(t *testing.T) {
	svc := NewExtractionService()

	_, err := svc.ExtractText("resume.rtf", models.FileFormat("rtf"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextMissingFile(t *testing.T) {
	svc := NewExtractionService()

	_, err := svc.ExtractText(filepath.Join(t.TempDir(), "missing.txt"), models.FormatTXT)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestCleanRawText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"control characters stripped", "abc\x00def\x07ghi", "abcdefghi"},
		{"interior tabs survive", "name\tvalue", "name\tvalue"},
		{"trailing whitespace trimmed per line", "first  \nsecond\t", "first\nsecond"},
		{"crlf collapses to lf", "first\r\nsecond", "first\nsecond"},
		{"invalid utf8 dropped", "caf\xffe", "cafe"},
		{"surrounding blank lines trimmed", "\n\ncontent\n\n", "content"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanRawText(tc.in))
		})
	}
}
