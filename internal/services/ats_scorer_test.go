package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/models"
)

// cleanResumeText is a resume that trips none of the formatting penalties,
// contains every reference keyword and yields all required sections.
var cleanResumeText = strings.Join([]string{
	"Jordan Smith - Software Engineer with professional experience",
	"Email: jordan.smith@example.com Phone: 555-123-4567",
	"Professional Summary",
	"Seasoned engineer with a decade of delivery experience and strong skills",
	"Objective: keep growing while delivering measurable achievements",
	"Experience",
	"Led platform work; responsibilities included design reviews and mentoring",
	"Education",
	"BSc Computer Science, State University, 2012",
	"Skills",
	"Python, Go, SQL and cloud projects",
}, "\n")

func TestScoreEmptyText(t *testing.T) {
	scorer := NewATSScorer()

	for _, text := range []string{"", "   ", "\n\n\t"} {
		report := scorer.Score(text, models.SectionPresence{})

		assert.Equal(t, 0, report.Score)
		assert.Equal(t, "D", report.Grade)
		require.Len(t, report.Suggestions, 1)
		assert.Equal(t,
			"No readable text was found in the resume; export it as a text-based PDF, DOCX or TXT file.",
			report.Suggestions[0])
	}
}

func TestScoreCleanResume(t *testing.T) {
	nlp := NewNLPProcessor()
	scorer := NewATSScorer()

	sections := nlp.DetectSections(cleanResumeText)
	report := scorer.Score(cleanResumeText, sections)

	assert.Equal(t, 100, report.Score)
	assert.Equal(t, "A+", report.Grade)
	assert.Equal(t, 100.0, report.SubScores.Formatting)
	assert.Equal(t, 100.0, report.SubScores.Keywords)
	assert.Equal(t, 100.0, report.SubScores.Sections)
	assert.Empty(t, report.Suggestions)
}

func TestScoreIsDeterministic(t *testing.T) {
	nlp := NewNLPProcessor()
	scorer := NewATSScorer()

	sections := nlp.DetectSections(cleanResumeText)
	first := scorer.Score(cleanResumeText, sections)
	second := scorer.Score(cleanResumeText, sections)

	require.Equal(t, first, second)
}

func TestScoreWeightsSubScores(t *testing.T) {
	scorer := NewATSScorer()

	// All keywords present, clean layout, but only two of the four
	// required sections: 0.35*100 + 0.25*100 + 0.40*50 = 80.
	text := "Professional summary of experience education skills objective achievements responsibilities projects"
	sections := models.SectionPresence{"experience": true, "skills": true}

	report := scorer.Score(text, sections)

	assert.Equal(t, 80, report.Score)
	assert.Equal(t, "A", report.Grade)
	assert.Equal(t, 100.0, report.SubScores.Formatting)
	assert.Equal(t, 100.0, report.SubScores.Keywords)
	assert.Equal(t, 50.0, report.SubScores.Sections)
	assert.Contains(t, report.Suggestions, "Add contact details (an email address and phone number).")
	assert.Contains(t, report.Suggestions, "Add a dedicated education section.")
}

func TestFormattingPenalties(t *testing.T) {
	scorer := NewATSScorer()
	headerOnly := models.SectionPresence{"experience": true}

	t.Run("tabs", func(t *testing.T) {
		text := "Engineering lead\tdelivery and mentoring across platform teams"
		report := scorer.Score(text, headerOnly)

		assert.Equal(t, 90.0, report.SubScores.Formatting)
		assert.Contains(t, report.Suggestions, "Avoid tabs and table layouts; use a single-column format.")
	})

	t.Run("special characters", func(t *testing.T) {
		text := strings.Repeat("*", 60) + " engineering summary line"
		report := scorer.Score(text, headerOnly)

		assert.Equal(t, 85.0, report.SubScores.Formatting)
		assert.Contains(t, report.Suggestions, "Reduce decorative special characters; they confuse resume parsers.")
	})

	t.Run("short lines", func(t *testing.T) {
		text := "Go\nSQL\nAWS\nGit"
		report := scorer.Score(text, headerOnly)

		assert.Equal(t, 90.0, report.SubScores.Formatting)
		assert.Contains(t, report.Suggestions, "Lines are very short; avoid multi-column or heavily fragmented layouts.")
	})

	t.Run("missing headers", func(t *testing.T) {
		text := "A single paragraph of text without any recognizable resume headers in it"
		report := scorer.Score(text, models.SectionPresence{})

		assert.Equal(t, 80.0, report.SubScores.Formatting)
		assert.Contains(t, report.Suggestions, "Add standard section headers such as Experience, Education and Skills.")
	})
}

func TestKeywordScoreSuggestsMissingKeywords(t *testing.T) {
	scorer := NewATSScorer()

	report := scorer.Score("plain text about nothing in particular", models.SectionPresence{})

	assert.Equal(t, 0.0, report.SubScores.Keywords)
	assert.Contains(t, report.Suggestions,
		"Work common resume keywords into the text, for example: experience, education, skills.")
}

func TestScoreStaysInBounds(t *testing.T) {
	scorer := NewATSScorer()

	hostile := []string{
		"\t" + strings.Repeat("*", 200) + "\t",
		"x",
		strings.Repeat("#!$%^&\n", 40),
	}

	for _, text := range hostile {
		report := scorer.Score(text, models.SectionPresence{})

		assert.GreaterOrEqual(t, report.Score, 0)
		assert.LessOrEqual(t, report.Score, 100)
		assert.GreaterOrEqual(t, report.SubScores.Formatting, 0.0)
		assert.LessOrEqual(t, report.SubScores.Formatting, 100.0)
		assert.NotEmpty(t, report.Grade)
	}
}

func TestLetterGrade(t *testing.T) {
	cases := []struct {
		score int
		grade string
	}{
		{100, "A+"},
		{90, "A+"},
		{89, "A"},
		{80, "A"},
		{79, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59, "D"},
		{0, "D"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.grade, letterGrade(tc.score), "score %d", tc.score)
	}
}
