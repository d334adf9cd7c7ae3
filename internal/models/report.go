package models

// SubScores are the per-category ATS scores, each on a 0-100 scale.
type SubScores struct {
	Formatting float64 `json:"formatting"`
	Keywords   float64 `json:"keywords"`
	Sections   float64 `json:"sections"`
}

// ATSReport is the result of one ATS scoring pass. Score is the weighted
// overall value, an integer in [0,100].
type ATSReport struct {
	Score       int       `json:"score"`
	SubScores   SubScores `json:"sub_scores"`
	Grade       string    `json:"grade"`
	Suggestions []string  `json:"suggestions"`
}

// SkillGap compares resume skills against a required skill set. Matching and
// Missing hold normalized skill names in alphabetical order.
type SkillGap struct {
	Matching        []string `json:"matching_skills"`
	Missing         []string `json:"missing_skills"`
	MatchPercent    float64  `json:"match_percent"`
	Recommendations []string `json:"recommendations"`
}
