package main

import (
	"context"
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

	"docuseek/internal/config"
	"docuseek/internal/handlers"
	"docuseek/internal/middleware"
	"docuseek/internal/repositories"
	"docuseek/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	bookmarkRepo := repositories.NewBookmarkRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize object storage
	storageService, err := services.NewObjectStorageService(cfg.Minio)
	if err != nil {
		log.Fatalf("❌ Failed to initialize object storage: %v", err)
	}

	ctx := context.Background()
	if err := storageService.EnsureBucket(ctx); err != nil {
		log.Fatalf("❌ Failed to ensure bucket: %v", err)
	}
	log.Println("✅ Object storage initialized successfully")

	// Initialize search index
	searchIndex, err := services.NewSearchIndexService(cfg.Elastic)
	if err != nil {
		log.Fatalf("❌ Failed to initialize search index: %v", err)
	}

	if err := searchIndex.EnsureIndex(ctx); err != nil {
		log.Fatalf("❌ Failed to ensure index: %v", err)
	}
	log.Println("✅ Search index initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize pipeline services
	extractor := services.NewPDFExtractorService()
	ingestService := services.NewIngestService(extractor, storageService, searchIndex)
	answerService := services.NewAnswerService(geminiService, cfg.RAG.ContextPages, cfg.RAG.SnippetMaxChars)
	sessionService := services.NewSessionService(cfg.Redis)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	documentHandler := handlers.NewDocumentHandler(ingestService, cfg.Storage.MaxFileSize)
	searchHandler := handlers.NewSearchHandler(searchIndex)
	askHandler := handlers.NewAskHandler(searchIndex, answerService)
	authHandler := handlers.NewAuthHandler(userRepo, sessionService)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo)
	contactHandler := handlers.NewContactHandler(contactRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "DocuSeek API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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

	// Documents
	api.Post("/documents", documentHandler.HandleUpload)
	api.Delete("/documents/:name", documentHandler.HandleDelete)

	// Search & answers
	api.Get("/search", searchHandler.HandleSearch)
	api.Post("/ask", askHandler.HandleAsk)

	// Auth
	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)
	api.Post("/auth/logout", authHandler.HandleLogout)

	// Bookmarks (authenticated)
	bookmarks := api.Group("/bookmarks", middleware.RequireAuth(sessionService))
	bookmarks.Post("/", bookmarkHandler.HandleCreate)
	bookmarks.Get("/", bookmarkHandler.HandleList)
	bookmarks.Delete("/:id", bookmarkHandler.HandleDelete)

	// Contact
	api.Post("/contact", contactHandler.HandleCreate)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "DocuSeek API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/documents",
				"DELETE /api/v1/documents/:name",
				"GET /api/v1/search",
				"POST /api/v1/ask",
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"POST /api/v1/bookmarks",
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
