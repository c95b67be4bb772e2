package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipemint/backend/config"
	"github.com/pageza/recipemint/backend/internal/api"
	"github.com/pageza/recipemint/backend/internal/database"
	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/middleware"
	"github.com/pageza/recipemint/backend/internal/router"
	"github.com/pageza/recipemint/backend/internal/server"
	"github.com/pageza/recipemint/backend/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis carries events and rate limits; both are skipped without it
	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	var limiter *middleware.RateLimiter
	if rdb != nil {
		defer rdb.Close()
		async := events.NewAsyncPublisher(events.NewRedisPublisher(rdb, cfg.EventsChannel), 0)
		defer async.Close()
		publisher = async
		limiter = middleware.NewCommandRateLimiter(rdb, cfg.RateLimitPerMinute)
	}

	l, err := ledger.New(ctx, db, ledger.Options{
		Admin:          cfg.AdminAddress,
		PlatformFeeBps: cfg.PlatformFeeBps,
		FeeRecipient:   cfg.FeeRecipient,
		Publisher:      publisher,
	})
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}

	// Token metadata storage is optional
	var metadata service.IMetadataService
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to configure S3: %v", err)
	}
	if s3cfg != nil {
		metadata = service.NewMetadataService(s3cfg.Client, s3cfg.BucketName, s3cfg.ObjectURL)
	} else {
		log.Printf("S3 bucket not configured, metadata uploads disabled")
	}

	r := router.SetupRouter(cfg, api.Deps{
		Ledger:   l,
		Auth:     service.NewAuthService(cfg.JWTSecret),
		Metadata: metadata,
		Limiter:  limiter,
	})
	srv := server.New(cfg, r)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Printf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
