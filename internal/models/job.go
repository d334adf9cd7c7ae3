package models

// JobPosting is one catalog entry. The embedding either comes precomputed
// from the catalog file or is filled during startup; after that the posting
// is read-only.
type JobPosting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills"`
	Embedding      []float32 `json:"embedding,omitempty"`
}

// MatchResult is one entry of a ranked match sequence. The matcher fills
// similarity, match percent and rank; missing skills are decorated
// afterwards by the skill-gap analyzer.
type MatchResult struct {
	JobID         string   `json:"job_id"`
	Title         string   `json:"title"`
	Similarity    float64  `json:"similarity"`
	MatchPercent  float64  `json:"match_percent"`
	Rank          int      `json:"rank"`
	MissingSkills []string `json:"missing_skills"`
}
