package services

import (
	"strings"
)

// actionVerbs are the accomplishment verbs screened for when judging
// whether experience bullets read as outcomes.
var actionVerbs = []string{
	"led", "managed", "developed", "created", "implemented",
	"designed", "achieved", "improved", "increased", "decreased",
}

// wellStructuredMessage is the fallback when no improvement was flagged.
const wellStructuredMessage = "Your resume looks well-structured! Continue to keep it updated with latest achievements."

// RecommendationBuilder turns analysis signals into concrete resume advice.
type RecommendationBuilder interface {
	BuildImprovements(text string, wordCount int, similarity float64, hasJobDescription bool) []string
}

type recommendationBuilder struct{}

func NewRecommendationBuilder() RecommendationBuilder {
	return &recommendationBuilder{}
}

// BuildImprovements implements RecommendationBuilder. The similarity check
// only fires when a job description was supplied with the request.
func (r *recommendationBuilder) BuildImprovements(text string, wordCount int, similarity float64, hasJobDescription bool) []string {
	var recommendations []string

	if hasJobDescription && similarity < 0.3 {
		recommendations = append(recommendations, "Consider tailoring your resume more closely to this job description")
	}

	if wordCount < 200 {
		recommendations = append(recommendations, "Your resume seems brief. Consider adding more details about your experience and achievements")
	} else if wordCount > 800 {
		recommendations = append(recommendations, "Your resume is quite long. Consider condensing it to focus on most relevant experience")
	}

	if !strings.ContainsAny(text, "0123456789") {
		recommendations = append(recommendations, "Add quantifiable achievements (e.g., 'Increased sales by 25%', 'Managed team of 10')")
	}

	if !containsActionVerb(text) {
		recommendations = append(recommendations, "Use strong action verbs to describe your accomplishments (e.g., 'Led', 'Developed', 'Achieved')")
	}

	return recommendations
}

func containsActionVerb(text string) bool {
	lower := strings.ToLower(text)
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}

	return false
}
