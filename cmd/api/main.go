// @title MedPrep API
// @version 1.0
// @description Study service for USMLE-style exam questions: filtered question retrieval, practice runs, a fixed assessment, case-study chat, and question comparison.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "medprep/cmd/api/docs"
	"medprep/internal/adapter"
	"medprep/internal/cache"
	"medprep/internal/config"
	"medprep/internal/database"
	"medprep/internal/handler"
	"medprep/internal/logger"
	"medprep/internal/middleware"
	"medprep/internal/repository"
	"medprep/internal/service"
	"medprep/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Postgres")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize repositories and services
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	questionService := service.NewQuestionService(questionRepository, cacheAdapter, cfg.Cache.QuestionTTL)
	handoffService := service.NewResultHandoffService(cacheAdapter, cfg.Cache.HandoffTTL)

	chatResponder, err := service.NewOllamaChatResponder(cfg.Chat.ServerURL, cfg.Chat.Model)
	if err != nil {
		appLogger.Fatal("Failed to create chat responder", zap.Error(err))
	}
	appLogger.Info("Chat responder initialized", zap.String("model", cfg.Chat.Model))

	sessionStore := session.NewStore()

	// Initialize handlers
	questionHandler := handler.NewQuestionHandler(questionService)
	practiceHandler := handler.NewPracticeHandler(sessionStore, questionService)
	assessmentHandler := handler.NewAssessmentHandler(sessionStore, handoffService)
	caseStudyHandler := handler.NewCaseStudyHandler(sessionStore, chatResponder)
	comparisonHandler := handler.NewComparisonHandler(sessionStore, questionService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")

	// Question routes; reads are public, ingestion is protected
	apiGroup.Get("/questions", questionHandler.GetQuestions)
	apiGroup.Post("/questions", middleware.Protected(cfg.Auth.JWTSecret), questionHandler.CreateQuestion)
	apiGroup.Get("/questions/:examType", questionHandler.GetQuestionsByExamType)

	// Practice routes
	practiceGroup := apiGroup.Group("/practice")
	practiceGroup.Post("/", practiceHandler.Start)
	practiceGroup.Get("/:id", practiceHandler.State)
	practiceGroup.Post("/:id/answer", practiceHandler.Answer)
	practiceGroup.Post("/:id/submit", practiceHandler.Submit)
	practiceGroup.Post("/:id/next", practiceHandler.Next)
	practiceGroup.Post("/:id/again", practiceHandler.Again)

	// Assessment routes
	assessmentGroup := apiGroup.Group("/assessment")
	assessmentGroup.Post("/", assessmentHandler.Start)
	assessmentGroup.Get("/results/:id", assessmentHandler.Results)
	assessmentGroup.Get("/:id", assessmentHandler.State)
	assessmentGroup.Post("/:id/answer", assessmentHandler.Answer)
	assessmentGroup.Post("/:id/goto", assessmentHandler.Goto)
	assessmentGroup.Post("/:id/submit", assessmentHandler.Submit)

	// Case-study routes
	caseStudyGroup := apiGroup.Group("/case-study")
	caseStudyGroup.Post("/", caseStudyHandler.Start)
	caseStudyGroup.Get("/:id", caseStudyHandler.State)
	caseStudyGroup.Post("/:id/answer", caseStudyHandler.Answer)
	caseStudyGroup.Post("/:id/submit", caseStudyHandler.Submit)
	caseStudyGroup.Post("/:id/message", caseStudyHandler.Message)
	caseStudyGroup.Post("/:id/reset", caseStudyHandler.Reset)

	// Comparison routes
	comparisonGroup := apiGroup.Group("/comparison")
	comparisonGroup.Post("/", comparisonHandler.Start)
	comparisonGroup.Get("/:id", comparisonHandler.State)
	comparisonGroup.Post("/:id/answer", comparisonHandler.Answer)
	comparisonGroup.Post("/:id/continue", comparisonHandler.Continue)
	comparisonGroup.Post("/:id/select", comparisonHandler.SelectBetter)
	comparisonGroup.Post("/:id/submit", comparisonHandler.Submit)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		appLogger.Warn("Failed to close Redis client", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
