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
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/jakehazelwood1/ReCupid/internal/config"
	"github.com/jakehazelwood1/ReCupid/internal/handlers"
	"github.com/jakehazelwood1/ReCupid/internal/logger"
	"github.com/jakehazelwood1/ReCupid/internal/repositories"
	"github.com/jakehazelwood1/ReCupid/internal/services"
	"github.com/jakehazelwood1/ReCupid/internal/web"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Repositories
	batchRepo := repositories.NewBatchRepository()

	// Services
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize gemini client", zap.Error(err))
	}

	renderer, err := services.NewReportRenderer()
	if err != nil {
		zlog.Fatal("failed to initialize report renderer", zap.Error(err))
	}

	extractor := services.NewDocumentExtractor(zlog)
	evaluator := services.NewEvaluatorService(geminiService, zlog)
	followUps := services.NewFollowUpService(geminiService, zlog)

	runner := services.NewBatchRunner(batchRepo, extractor, evaluator, followUps, renderer, zlog)

	worker := services.NewWorker(batchRepo, runner, cfg.Worker.Concurrency, cfg.Worker.QueueSize, zlog)
	worker.Start(ctx)

	// Handlers
	batchHandler := handlers.NewBatchHandler(batchRepo, worker, cfg.Batch)
	resultHandler := handlers.NewResultHandler(batchRepo)
	reportHandler := handlers.NewReportHandler(batchRepo, renderer)

	app := fiber.New(fiber.Config{
		AppName:      "ReCupid API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Batch.MaxFileSize) * cfg.Batch.MaxFiles,
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
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/batches", batchHandler.HandleCreateBatch)
	api.Get("/batches/:id", resultHandler.HandleGetBatch)
	api.Get("/batches/:id/report", reportHandler.HandleGetReport)

	// Embedded single-page UI
	app.Get("/", func(c *fiber.Ctx) error {
		page, err := web.Static.ReadFile("static/index.html")
		if err != nil {
			return fiber.ErrInternalServerError
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(page)
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
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
