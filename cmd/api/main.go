package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"intersight/api/internal/config"
	"intersight/api/internal/handlers"
	"intersight/api/internal/repositories"
	"intersight/api/internal/review"
	"intersight/api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database. Persistence is best-effort: without it candidates
	// stay in-session only.
	var candidateRepo repositories.CandidateRepository
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Printf("⚠️  Database not available, running without persistence: %v\n", err)
	} else {
		candidateRepo = repositories.NewCandidateRepository(db)
		log.Println("✅ Repositories initialized successfully")
	}

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewDocumentExtractor()
	enrichment := services.NewEnrichmentService(
		cfg.Enrichment.Timeout,
		cfg.Enrichment.GitHubAPIBase,
		cfg.Enrichment.PortfolioMaxChars,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. Without a key the server still starts; analysis
	// requests report "not configured".
	var generator services.Generator
	if cfg.GeminiConfigured() {
		generator, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		generator = services.NewUnconfiguredGenerator()
		log.Println("⚠️  GOOGLE_API_KEY not set, analysis endpoints will report not configured")
	}

	// Initialize the candidate similarity index
	var index services.CandidateIndex
	qdrantIndex, err := services.NewQdrantIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Printf("⚠️  Qdrant not available, similarity search disabled: %v\n", err)
	} else if err := qdrantIndex.InitCollection(); err != nil {
		log.Printf("⚠️  Qdrant collection init failed, similarity search disabled: %v\n", err)
	} else {
		index = qdrantIndex
		log.Println("✅ Qdrant initialized successfully")
	}

	// Initialize the analysis pipeline
	analyzer := services.NewAnalyzerService(
		generator,
		enrichment,
		enrichment,
		extractor,
		storageService,
		candidateRepo,
		index,
		cfg.Pipeline.Concurrency,
	)
	log.Println("✅ Analyzer service initialized")

	// Initialize the review session
	narrative := services.NewNarrativeService(generator, candidateRepo)
	session := review.NewSession(narrative.RejectionFeedback, narrative.ExecutiveSummary)
	log.Println("✅ Review session initialized")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, session, cfg)
	reviewHandler := handlers.NewReviewHandler(session)
	searchHandler := handlers.NewSearchHandler(generator, index)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Inter-sight API",
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
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
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/review", reviewHandler.HandleSnapshot)
	api.Post("/review/demo", reviewHandler.HandleLoadDemo)
	api.Post("/review/decisions", reviewHandler.HandleDecide)
	api.Get("/review/holds", reviewHandler.HandleHolds)
	api.Get("/review/holds/:id/summary", reviewHandler.HandleSummary)
	api.Post("/review/holds/:id/finalize", reviewHandler.HandleFinalize)
	api.Get("/review/feedback", reviewHandler.HandleFeedback)
	api.Post("/review/reset", reviewHandler.HandleReset)
	api.Get("/candidates/similar", searchHandler.HandleSimilar)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Inter-sight API is running",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET  /api/v1/review",
				"POST /api/v1/review/demo",
				"POST /api/v1/review/decisions",
				"GET  /api/v1/review/holds",
				"GET  /api/v1/review/holds/:id/summary",
				"POST /api/v1/review/holds/:id/finalize",
				"GET  /api/v1/review/feedback",
				"POST /api/v1/review/reset",
				"GET  /api/v1/candidates/similar",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
