package services

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"resume-analyzer/internal/models"
)

type ATSScorer interface {
	Score(rawText string, sections models.SectionPresence) *models.ATSReport
}

// Category weights for the overall ATS score. They sum to 1.0; section
// completeness carries the most weight because parsers that cannot locate
// sections discard content wholesale.
const (
	weightFormatting = 0.35
	weightKeywords   = 0.25
	weightSections   = 0.40
)

// atsReferenceKeywords is the fixed keyword list the keyword sub-score is
// measured against.
var atsReferenceKeywords = []string{
	"experience", "education", "skills", "professional", "summary",
	"objective", "achievements", "responsibilities", "projects",
}

// requiredSections are the sections every parseable resume needs. "contact"
// is satisfied by an email address or phone number anywhere in the text.
var requiredSections = []string{"contact", "experience", "education", "skills"}

type atsScorer struct{}

func NewATSScorer() ATSScorer {
	return &atsScorer{}
}

// Score implements ATSScorer. It is deterministic: the same text and
// sections always produce the identical report.
func (s *atsScorer) Score(rawText string, sections models.SectionPresence) *models.ATSReport {
	if strings.TrimSpace(rawText) == "" {
		return &models.ATSReport{
			Score: 0,
			Grade: letterGrade(0),
			Suggestions: []string{
				"No readable text was found in the resume; export it as a text-based PDF, DOCX or TXT file.",
			},
		}
	}

	suggestions := []string{}

	formatting, formattingIssues := formattingScore(rawText, sections)
	suggestions = append(suggestions, formattingIssues...)

	keywords, keywordIssues := keywordScore(rawText)
	suggestions = append(suggestions, keywordIssues...)

	sectionScore, sectionIssues := sectionCompleteness(sections)
	suggestions = append(suggestions, sectionIssues...)

	overall := int(math.Round(
		weightFormatting*formatting +
			weightKeywords*keywords +
			weightSections*sectionScore,
	))

	return &models.ATSReport{
		Score: overall,
		SubScores: models.SubScores{
			Formatting: round1(formatting),
			Keywords:   round1(keywords),
			Sections:   round1(sectionScore),
		},
		Grade:       letterGrade(overall),
		Suggestions: suggestions,
	}
}

// formattingScore starts at 100 and subtracts for layout artifacts that trip
// up automated parsers. Header presence is checked against any standard
// section, so a clean resume with headers keeps the full score.
func formattingScore(text string, sections models.SectionPresence) (float64, []string) {
	score := 100.0
	var issues []string

	if countSpecialChars(text) > 50 {
		score -= 15
		issues = append(issues, "Reduce decorative special characters; they confuse resume parsers.")
	}

	if strings.Contains(text, "\t") {
		score -= 10
		issues = append(issues, "Avoid tabs and table layouts; use a single-column format.")
	}

	if averageLineLength(text) < 20 {
		score -= 10
		issues = append(issues, "Lines are very short; avoid multi-column or heavily fragmented layouts.")
	}

	hasHeader := sections.Has("experience") || sections.Has("education") ||
		sections.Has("skills") || sections.Has("summary")
	if !hasHeader {
		score -= 20
		issues = append(issues, "Add standard section headers such as Experience, Education and Skills.")
	}

	return clampScore(score), issues
}

// keywordScore is the fraction of the reference keyword list present in the
// text, scaled to 0-100.
func keywordScore(text string) (float64, []string) {
	padded := " " + strings.Join(tokenizeText(text), " ") + " "

	found := 0
	var missing []string
	for _, keyword := range atsReferenceKeywords {
		if strings.Contains(padded, " "+keyword+" ") {
			found++
		} else {
			missing = append(missing, keyword)
		}
	}

	score := float64(found) / float64(len(atsReferenceKeywords)) * 100

	var issues []string
	if score < 60 && len(missing) > 0 {
		sample := missing
		if len(sample) > 3 {
			sample = sample[:3]
		}
		issues = append(issues, fmt.Sprintf(
			"Work common resume keywords into the text, for example: %s.",
			strings.Join(sample, ", "),
		))
	}

	return score, issues
}

// sectionCompleteness is the fraction of required sections present, scaled
// to 0-100.
func sectionCompleteness(sections models.SectionPresence) (float64, []string) {
	found := 0
	var issues []string

	for _, name := range requiredSections {
		if sections.Has(name) {
			found++
			continue
		}
		if name == "contact" {
			issues = append(issues, "Add contact details (an email address and phone number).")
		} else {
			issues = append(issues, fmt.Sprintf("Add a dedicated %s section.", name))
		}
	}

	return float64(found) / float64(len(requiredSections)) * 100, issues
}

// countSpecialChars counts characters outside the set resume parsers handle
// reliably (letters, digits, whitespace and plain punctuation).
func countSpecialChars(text string) int {
	count := 0
	for _, r := range text {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
		case strings.ContainsRune(`-.,;:()[]@`, r):
		default:
			count++
		}
	}
	return count
}

// averageLineLength is the mean rune count of non-empty lines.
func averageLineLength(text string) float64 {
	lines := strings.Split(text, "\n")

	total, counted := 0, 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total += len([]rune(line))
		counted++
	}

	if counted == 0 {
		return 0
	}
	return float64(total) / float64(counted)
}

func letterGrade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
