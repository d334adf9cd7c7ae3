package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/models"
	"resume-analyzer/internal/repositories"
	"resume-analyzer/internal/services"
)

const testMaxFileSize = 1 << 20

var testResumeText = strings.Join([]string{
	"Alex Chen - Data Engineer",
	"alex.chen@example.com 555-123-4567",
	"Professional Summary",
	"Data engineer with 6 years of experience building Python and SQL pipelines",
	"Experience",
	"Data Engineer at Initech 2018 - 2024",
	"Led migration of reporting pipelines, increased throughput by 40%",
	"Education",
	"BSc Computer Science, State University, 2016",
	"Skills",
	"Python, SQL, Airflow",
}, "\n")

func testCatalogJobs() []models.JobPosting {
	return []models.JobPosting{
		{
			ID:             "j-data",
			Title:          "Data Platform Engineer",
			Description:    "Python and SQL pipelines with data analysis on large warehouses",
			RequiredSkills: []string{"python", "sql", "docker"},
		},
		{
			ID:             "j-backend",
			Title:          "Backend Engineer",
			Description:    "Server side Go services with PostgreSQL and Docker containers",
			RequiredSkills: []string{"go", "postgresql", "docker"},
		},
		{
			ID:             "j-front",
			Title:          "Frontend Developer",
			Description:    "React and TypeScript user interfaces",
			RequiredSkills: []string{"javascript", "react"},
		},
	}
}

type stubAnalysisRepo struct {
	mu      sync.Mutex
	records []*models.AnalysisRecord
}

// Create implements repositories.AnalysisRepository.
func (s *stubAnalysisRepo) Create(record *models.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Recent implements repositories.AnalysisRepository.
func (s *stubAnalysisRepo) Recent(limit int) ([]models.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]models.AnalysisRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, *s.records[i])
	}
	return recent, nil
}

// Stats implements repositories.AnalysisRepository.
func (s *stubAnalysisRepo) Stats() (*repositories.AnalysisStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &repositories.AnalysisStats{TotalAnalyses: int64(len(s.records))}
	if len(s.records) == 0 {
		return stats, nil
	}

	var scoreSum, simSum float64
	for _, r := range s.records {
		scoreSum += float64(r.ATSScore)
		if r.TopSimilarity != nil {
			simSum += *r.TopSimilarity
		}
	}
	stats.AverageATSScore = scoreSum / float64(len(s.records))
	stats.AverageTopSimilarity = simSum / float64(len(s.records))
	return stats, nil
}

// newTestApp wires the full request pipeline against the local embedder and
// an in-memory catalog, mirroring the production route layout.
func newTestApp(t *testing.T, jobs []models.JobPosting, repo repositories.AnalysisRepository) *fiber.App {
	t.Helper()

	if repo == nil {
		repo = &stubAnalysisRepo{}
	}

	storage := services.NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	extraction := services.NewExtractionService()
	nlp := services.NewNLPProcessor()
	matcher := services.NewJobMatcher()
	embedder := services.NewLocalEmbedder()

	catalog := services.NewJobCatalog(jobs)
	catalog.EnsureEmbeddings(context.Background(), embedder, 2)

	analyzer := services.NewAnalyzerService(
		services.NewATSScorer(),
		matcher,
		services.NewSkillGapAnalyzer(),
		nlp,
		embedder,
		catalog,
		services.NewRecommendationBuilder(),
		repo,
		5,
	)

	analyzeHandler := NewAnalyzeHandler(storage, extraction, nlp, analyzer, testMaxFileSize)
	matchHandler := NewMatchHandler(storage, extraction, nlp, analyzer, testMaxFileSize)
	jobsHandler := NewJobsHandler(catalog, nil, embedder, matcher)
	statsHandler := NewStatsHandler(repo)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/match-jobs", matchHandler.HandleMatchJobs)
	api.Get("/jobs", jobsHandler.HandleListJobs)
	api.Post("/jobs/search", jobsHandler.HandleSearchJobs)
	api.Get("/stats", statsHandler.HandleStats)

	return app
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func multipartBody(t *testing.T, filename, content string, fields map[string][]string) (*bytes.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := w.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	require.NoError(t, w.Close())

	return bytes.NewReader(buf.Bytes()), w.FormDataContentType()
}

func postMultipart(t *testing.T, app *fiber.App, path, filename, content string, fields map[string][]string) *http.Response {
	t.Helper()

	body, contentType := multipartBody(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postJSON(t *testing.T, app *fiber.App, path string, payload string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp
}
