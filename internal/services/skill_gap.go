package services

import (
	"fmt"
	"sort"
	"strings"

	"resume-analyzer/internal/models"
)

type SkillGapAnalyzer interface {
	Analyze(resumeSkills, requiredSkills []string) *models.SkillGap
}

type skillGapAnalyzer struct{}

func NewSkillGapAnalyzer() SkillGapAnalyzer {
	return &skillGapAnalyzer{}
}

// Analyze implements SkillGapAnalyzer. Missing is exactly the required set
// minus the resume set under normalized equality; both result lists are
// sorted alphabetically so repeated runs agree.
func (a *skillGapAnalyzer) Analyze(resumeSkills, requiredSkills []string) *models.SkillGap {
	have := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		if n := normalizeSkill(skill); n != "" {
			have[n] = true
		}
	}

	matching := []string{}
	missing := []string{}
	seen := make(map[string]bool, len(requiredSkills))
	required := 0

	for _, skill := range requiredSkills {
		n := normalizeSkill(skill)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		required++

		if have[n] {
			matching = append(matching, n)
		} else {
			missing = append(missing, n)
		}
	}

	sort.Strings(matching)
	sort.Strings(missing)

	matchPercent := 100.0
	if required > 0 {
		matchPercent = round1(float64(len(matching)) / float64(required) * 100)
	}

	recommendations := make([]string, 0, len(missing))
	for _, skill := range missing {
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider highlighting experience with %s or adding it to your skills section.", skill,
		))
	}

	return &models.SkillGap{
		Matching:        matching,
		Missing:         missing,
		MatchPercent:    matchPercent,
		Recommendations: recommendations,
	}
}

// normalizeSkill is the comparison key for skill names: lowercased and
// trimmed, nothing else.
func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
