package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/robfig/cron/v3"

	"ipolls/internal/adapter/storage"
	"ipolls/internal/classify"
	"ipolls/internal/config"
	"ipolls/internal/keywords"
	"ipolls/internal/server"
	"ipolls/internal/service/ingest"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// Load keyword configuration and build the classifier
	keywordCfg, err := keywords.Load(cfg.Keywords.Path)
	if err != nil {
		log.Fatalf("Failed to load keyword configuration: %v", err)
	}
	classifier := classify.New(keywordCfg)

	// Initialize storage adapter
	commentStore := storage.NewCommentStore(db)
	if err := commentStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// Initialize upstream clients
	redditClient := ingest.NewRedditClient(cfg.Reddit.RequestTimeout)

	var sentimentClient *ingest.SentimentClient
	if cfg.Sentiment.Enabled {
		sentimentClient = ingest.NewSentimentClient(
			cfg.Sentiment.BaseURL,
			cfg.Sentiment.APIKey,
			cfg.Sentiment.Model,
			cfg.Sentiment.RequestDelay,
		)
	}

	// Initialize ingest service
	ingestService := ingest.NewService(
		redditClient,
		sentimentClient,
		classifier,
		commentStore,
		natsConn,
		ingest.Config{
			Subreddit:      cfg.Reddit.Subreddit,
			Flair:          cfg.Reddit.Flair,
			PostLimit:      cfg.Reddit.PostLimit,
			EventsTopic:    cfg.Ingest.EventsTopic,
			LabelSentiment: cfg.Sentiment.Enabled,
		},
	)

	ingestService.RegisterBatchHandler(func(b ingest.Batch) error {
		log.Printf("Ingest batch %s complete: %d comments from %d posts", b.ID, b.Comments, b.Posts)
		return nil
	})

	// Schedule periodic ingest runs
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Ingest.Schedule, func() {
		if _, err := ingestService.Run(ctx); err != nil {
			log.Printf("Scheduled ingest run failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid ingest schedule %q: %v", cfg.Ingest.Schedule, err)
	}
	scheduler.Start()

	if cfg.Ingest.RunOnStart {
		go func() {
			if _, err := ingestService.Run(ctx); err != nil {
				log.Printf("Startup ingest run failed: %v", err)
			}
		}()
	}

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		commentStore,
		classifier,
		keywordCfg,
		natsConn,
		ingestService,
		cfg.Ingest.EventsTopic,
	)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	// Stop scheduling new ingest runs
	scheduler.Stop()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Wait for in-flight ingest work
	if err := ingestService.Stop(shutdownCtx); err != nil {
		log.Printf("Ingest service shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
