package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/handlers"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/repositories"
	"resume-analyzer/internal/services"
)

const appVersion = "1.0.0"

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	logger.Info().Str("env", cfg.Server.Env).Msg("Config loaded")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}

	analysisRepo := repositories.NewAnalysisRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create upload directory")
	}

	extractionService := services.NewExtractionService()
	nlpProcessor := services.NewNLPProcessor()
	scorer := services.NewATSScorer()
	matcher := services.NewJobMatcher()
	gapAnalyzer := services.NewSkillGapAnalyzer()
	recommender := services.NewRecommendationBuilder()

	// Pick the embedder: Gemini when a key is configured, otherwise the
	// deterministic local one so the service still works offline.
	var embedder services.EmbeddingService
	if cfg.Gemini.APIKey != "" {
		embedder, err = services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Gemini.RequestsPerMinute, cfg.Gemini.MaxRetries)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Gemini embedder")
		}
		logger.Info().Msg("Using Gemini embeddings")
	} else {
		embedder = services.NewLocalEmbedder()
		logger.Warn().Msg("GEMINI_API_KEY not set, using local hashed embeddings")
	}

	// Load the job catalog and make sure every posting has an embedding
	catalog, err := services.LoadJobCatalog(cfg.Catalog.Path)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Catalog.Path).Msg("Job catalog unavailable, matching disabled")
	} else {
		logger.Info().Int("jobs", catalog.Len()).Msg("Job catalog loaded")
	}
	catalog.EnsureEmbeddings(context.Background(), embedder, cfg.Catalog.EmbedConcurrency)

	// Initialize the Qdrant index when configured
	var vectorIndex services.VectorIndexService
	if cfg.Qdrant.URL != "" {
		vectorIndex, err = services.NewVectorIndexService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, embedder.Dimension())
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Qdrant")
		}
		if err := vectorIndex.InitCollection(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Qdrant collection")
		}
	} else {
		logger.Info().Msg("QDRANT_URL not set, job search uses the in-memory catalog")
	}

	analyzerService := services.NewAnalyzerService(
		scorer,
		matcher,
		gapAnalyzer,
		nlpProcessor,
		embedder,
		catalog,
		recommender,
		analysisRepo,
		cfg.Catalog.TopMatches,
	)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(storageService, extractionService, nlpProcessor, analyzerService, cfg.Storage.MaxFileSize)
	matchHandler := handlers.NewMatchHandler(storageService, extractionService, nlpProcessor, analyzerService, cfg.Storage.MaxFileSize)
	jobsHandler := handlers.NewJobsHandler(catalog, vectorIndex, embedder, matcher)
	statsHandler := handlers.NewStatsHandler(analysisRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": appVersion,
			"time":    time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/match-jobs", matchHandler.HandleMatchJobs)
	api.Get("/jobs", jobsHandler.HandleListJobs)
	api.Post("/jobs/search", jobsHandler.HandleSearchJobs)
	api.Get("/stats", statsHandler.HandleStats)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": appVersion,
			"endpoints": []string{
				"POST /api/v1/analyze",
				"POST /api/v1/match-jobs",
				"GET /api/v1/jobs",
				"POST /api/v1/jobs/search",
				"GET /api/v1/stats",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info().Msg("Shutting down server")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			logger.Error().Err(err).Msg("Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("Server starting")

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    "request_failed",
			"message": err.Error(),
		},
	})
}
