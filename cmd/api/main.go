package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"pdfstore/internal/config"
	"pdfstore/internal/database"
	"pdfstore/internal/database/migration"
	handlers "pdfstore/internal/http/handler"
	"pdfstore/internal/http/middleware"
	"pdfstore/internal/otel"
	"pdfstore/internal/repository/postgres"
	"pdfstore/internal/service"
	"pdfstore/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Initialize tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// The files table is provisioned externally; DB_AUTO_MIGRATE bootstraps
	// it in dev environments only.
	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
			cancel()
			log.Fatalf("failed to migrate database: %v", err)
		}
		cancel()
	}

	// Optional S3-compatible archive mirror
	var archive storage.Archive
	if cfg.Archive.Endpoint != "" {
		archive, err = storage.NewMinIO(cfg.Archive)
		if err != nil {
			log.Fatalf("failed to initialize archive mirror: %v", err)
		}
	}

	// Initialize repository and service
	fileRepo := postgres.NewFilePostgres(db)
	fileSvc := service.NewFileService(fileRepo, archive, cfg.Upload.MaxBytes)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Headroom over the file cap for multipart framing; the service
		// enforces the exact per-file limit.
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Trace every request
	app.Use(otelfiber.Middleware())
	// Count and time every request
	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, fileRepo, fileSvc)

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	// Graceful shutdown on SIGINT/SIGTERM: stop accepting requests, then
	// close the connection pool.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	case err := <-errCh:
		if err != nil {
			_ = db.Close()
			log.Fatalf("failed to start server: %v", err)
		}
	}

	if err := shutdownTracing(context.Background()); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("database close: %v", err)
	}
}
