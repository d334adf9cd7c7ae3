package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/models"
	"resume-analyzer/internal/repositories"
)

// AnalyzerService runs the full resume pipeline: ATS scoring, job matching
// against the catalog or a supplied job description, skill gap analysis
// and recommendation assembly.
type AnalyzerService interface {
	Analyze(ctx context.Context, doc *models.ResumeDocument, jobDescription string, topK int) (*models.AnalysisData, error)
	MatchAgainstTitles(ctx context.Context, doc *models.ResumeDocument, titles []string, topK int) (*models.MatchJobsData, error)
	MatchAgainstCatalog(ctx context.Context, doc *models.ResumeDocument, topK int) ([]models.MatchResult, error)
}

type analyzerService struct {
	scorer       ATSScorer
	matcher      JobMatcher
	gapAnalyzer  SkillGapAnalyzer
	nlp          NLPProcessor
	embedder     EmbeddingService
	catalog      JobCatalog
	recommender  RecommendationBuilder
	analysisRepo repositories.AnalysisRepository
	topMatches   int
}

func NewAnalyzerService(
	scorer ATSScorer,
	matcher JobMatcher,
	gapAnalyzer SkillGapAnalyzer,
	nlp NLPProcessor,
	embedder EmbeddingService,
	catalog JobCatalog,
	recommender RecommendationBuilder,
	analysisRepo repositories.AnalysisRepository,
	topMatches int,
) AnalyzerService {
	if topMatches <= 0 {
		topMatches = 5
	}

	return &analyzerService{
		scorer:       scorer,
		matcher:      matcher,
		gapAnalyzer:  gapAnalyzer,
		nlp:          nlp,
		embedder:     embedder,
		catalog:      catalog,
		recommender:  recommender,
		analysisRepo: analysisRepo,
		topMatches:   topMatches,
	}
}

// maxExperienceEntries bounds how many experience entries the analysis
// payload carries.
const maxExperienceEntries = 3

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, doc *models.ResumeDocument, jobDescription string, topK int) (*models.AnalysisData, error) {
	logger.Info().Str("file", doc.FileName).Int("words", doc.WordCount).Msg("Analyzing resume")

	report := a.scorer.Score(doc.RawText, doc.Sections)

	experiences := doc.Experience
	if len(experiences) > maxExperienceEntries {
		experiences = experiences[:maxExperienceEntries]
	}

	data := &models.AnalysisData{
		FileName:        doc.FileName,
		FileFormat:      string(doc.Format),
		WordCount:       doc.WordCount,
		Contact:         doc.Contact,
		Skills:          doc.Skills,
		SkillList:       doc.SkillList,
		ExperienceYears: doc.ExperienceYears,
		Experiences:     experiences,
		Education:       doc.Education,
		ATSScore:        report.Score,
		SubScores:       report.SubScores,
		Grade:           report.Grade,
		Matches:         []models.MatchResult{},
		MissingSkills:   []string{},
	}

	// The resume is only embedded when something can consume the vector,
	// so a bare ATS check never calls the embedder.
	var resumeVec []float32
	if jobDescription != "" || a.catalog.Len() > 0 {
		vec, err := a.embedder.EmbedText(ctx, doc.RawText)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
		}
		resumeVec = vec
	}

	var gapRecs []string
	jdSimilarity := 0.0

	if jobDescription != "" {
		jdVec, err := a.embedder.EmbedText(ctx, jobDescription)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
		}

		jdSimilarity = a.matcher.Similarity(resumeVec, jdVec)
		jdSkills := a.nlp.ExtractSkillList(jobDescription)
		gap := a.gapAnalyzer.Analyze(doc.SkillList, jdSkills)

		data.JobMatch = &models.JobDescriptionMatch{
			Similarity:     roundTo(jdSimilarity, 4),
			MatchPercent:   roundTo(jdSimilarity*100, 1),
			MatchingSkills: gap.Matching,
		}
		data.MissingSkills = gap.Missing
		gapRecs = gap.Recommendations
	}

	if a.catalog.Len() > 0 {
		if topK <= 0 {
			topK = a.topMatches
		}
		data.Matches = a.matchJobs(resumeVec, doc, a.catalog.Jobs(), topK)

		if jobDescription == "" && len(data.Matches) > 0 {
			if job, ok := a.catalog.FindByID(data.Matches[0].JobID); ok {
				gap := a.gapAnalyzer.Analyze(doc.SkillList, job.RequiredSkills)
				data.MissingSkills = gap.Missing
				gapRecs = gap.Recommendations
			}
		}
	}

	improvements := a.recommender.BuildImprovements(doc.RawText, doc.WordCount, jdSimilarity, jobDescription != "")

	recommendations := make([]string, 0, len(gapRecs)+len(improvements)+len(report.Suggestions))
	recommendations = append(recommendations, gapRecs...)
	recommendations = append(recommendations, improvements...)
	recommendations = append(recommendations, report.Suggestions...)
	if len(recommendations) == 0 {
		recommendations = append(recommendations, wellStructuredMessage)
	}
	data.Recommendations = recommendations

	a.recordAnalysis(data)

	return data, nil
}

// MatchAgainstTitles implements AnalyzerService. Titles found in the
// catalog keep their posting; any other title becomes an ad-hoc posting
// with the title as its description, embedded on the fly. Without titles
// the whole catalog is ranked.
func (a *analyzerService) MatchAgainstTitles(ctx context.Context, doc *models.ResumeDocument, titles []string, topK int) (*models.MatchJobsData, error) {
	result := &models.MatchJobsData{
		FileName: doc.FileName,
		Matches:  []models.MatchResult{},
	}

	postings := a.postingsForTitles(titles)
	if len(postings) == 0 {
		matches, err := a.MatchAgainstCatalog(ctx, doc, topK)
		if err != nil {
			return nil, err
		}
		result.Matches = matches
		return result, nil
	}

	for i := range postings {
		if len(postings[i].Embedding) == a.embedder.Dimension() {
			continue
		}
		vec, err := a.embedder.EmbedText(ctx, postings[i].Title+"\n\n"+postings[i].Description)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
		}
		postings[i].Embedding = vec
	}

	resumeVec, err := a.embedder.EmbedText(ctx, doc.RawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	result.Matches = a.matchJobs(resumeVec, doc, postings, topK)

	return result, nil
}

// postingsForTitles resolves requested titles against the catalog
// case-insensitively and builds ad-hoc postings for the rest, keeping the
// request order.
func (a *analyzerService) postingsForTitles(titles []string) []models.JobPosting {
	var postings []models.JobPosting

	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		if job, ok := a.findByTitle(title); ok {
			postings = append(postings, job)
			continue
		}

		postings = append(postings, models.JobPosting{
			ID:          fmt.Sprintf("adhoc-%d", len(postings)+1),
			Title:       title,
			Description: title,
		})
	}

	return postings
}

func (a *analyzerService) findByTitle(title string) (models.JobPosting, bool) {
	for _, job := range a.catalog.Jobs() {
		if strings.EqualFold(job.Title, title) {
			return job, true
		}
	}

	return models.JobPosting{}, false
}

// MatchAgainstCatalog implements AnalyzerService.
func (a *analyzerService) MatchAgainstCatalog(ctx context.Context, doc *models.ResumeDocument, topK int) ([]models.MatchResult, error) {
	if a.catalog.Len() == 0 {
		return []models.MatchResult{}, nil
	}
	if topK <= 0 {
		topK = a.topMatches
	}

	resumeVec, err := a.embedder.EmbedText(ctx, doc.RawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	return a.matchJobs(resumeVec, doc, a.catalog.Jobs(), topK), nil
}

// matchJobs drains the ranked match sequence, decorating each hit with the
// skills the resume is missing for that job. A limit of 0 keeps every hit.
func (a *analyzerService) matchJobs(resumeVec []float32, doc *models.ResumeDocument, jobs []models.JobPosting, limit int) []models.MatchResult {
	required := make(map[string][]string, len(jobs))
	for _, job := range jobs {
		required[job.ID] = job.RequiredSkills
	}

	matches := make([]models.MatchResult, 0)

	for match := range a.matcher.Match(resumeVec, jobs) {
		if limit > 0 && len(matches) >= limit {
			break
		}

		match.MissingSkills = a.gapAnalyzer.Analyze(doc.SkillList, required[match.JobID]).Missing
		match.Similarity = roundTo(match.Similarity, 4)

		matches = append(matches, match)
	}

	return matches
}

// recordAnalysis persists a summary row for the stats endpoint. Failures
// are logged and swallowed so a database hiccup never fails the analysis.
func (a *analyzerService) recordAnalysis(data *models.AnalysisData) {
	if a.analysisRepo == nil {
		return
	}

	record := &models.AnalysisRecord{
		FileName:   data.FileName,
		FileFormat: data.FileFormat,
		WordCount:  data.WordCount,
		ATSScore:   data.ATSScore,
	}
	if data.JobMatch != nil {
		sim := data.JobMatch.Similarity
		record.TopSimilarity = &sim
	} else if len(data.Matches) > 0 {
		sim := data.Matches[0].Similarity
		record.TopSimilarity = &sim
	}

	if err := a.analysisRepo.Create(record); err != nil {
		logger.Warn().Err(err).Str("file", data.FileName).Msg("Failed to persist analysis record")
	}
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
