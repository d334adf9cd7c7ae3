package models

// AnalysisData is the payload of a completed resume analysis.
type AnalysisData struct {
	FileName        string               `json:"file_name"`
	FileFormat      string               `json:"file_format"`
	WordCount       int                  `json:"word_count"`
	Contact         ContactInfo          `json:"contact"`
	Skills          map[string][]string  `json:"skills"`
	SkillList       []string             `json:"skill_list"`
	ExperienceYears int                  `json:"experience_years"`
	Experiences     []ExperienceEntry    `json:"experiences"`
	Education       []EducationEntry     `json:"education"`
	ATSScore        int                  `json:"ats_score"`
	SubScores       SubScores            `json:"sub_scores"`
	Grade           string               `json:"grade"`
	Matches         []MatchResult        `json:"matches"`
	JobMatch        *JobDescriptionMatch `json:"job_match,omitempty"`
	MissingSkills   []string             `json:"missing_skills"`
	Recommendations []string             `json:"recommendations"`
}

// JobDescriptionMatch reports how the resume compares against the free-text
// job description supplied with the request.
type JobDescriptionMatch struct {
	Similarity     float64  `json:"similarity"`
	MatchPercent   float64  `json:"match_percent"`
	MatchingSkills []string `json:"matching_skills"`
}

// MatchJobsData is the payload of a match-jobs request.
type MatchJobsData struct {
	FileName string        `json:"file_name"`
	Matches  []MatchResult `json:"matches"`
}

type JobSearchRequest struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

type JobSearchResult struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"title"`
	Score          float64  `json:"score"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

type StatsData struct {
	TotalAnalyses        int64            `json:"total_analyses"`
	AverageATSScore      float64          `json:"average_ats_score"`
	AverageTopSimilarity float64          `json:"average_top_similarity"`
	Recent               []AnalysisRecord `json:"recent"`
}
