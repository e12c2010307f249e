package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"ipolls/internal/classify"
	"ipolls/internal/config"
	"ipolls/internal/keywords"
	"ipolls/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	source handlers.CommentSource,
	classifier *classify.Classifier,
	keywordCfg *keywords.Config,
	natsConn *nats.Conn,
	ingestRunner handlers.BatchRunner,
	eventsTopic string,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	analyticsHandler := handlers.NewAnalyticsHandler(source, classifier, keywordCfg)
	ingestHandler := handlers.NewIngestHandler(ingestRunner)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Analytics API
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/parties", analyticsHandler.GetPartyDistribution)
				r.Get("/leaders", analyticsHandler.GetLeaderDistribution)
				r.Get("/sentiment", analyticsHandler.GetSentiment)
				r.Get("/timeseries", analyticsHandler.GetTimeSeries)
				r.Get("/topics", analyticsHandler.GetTopics)
			})

			// Comments API
			r.Route("/comments", func(r chi.Router) {
				r.Get("/export", analyticsHandler.ExportComments)
			})

			// Ingest API
			r.Route("/ingest", func(r chi.Router) {
				r.Post("/run", ingestHandler.RunIngest)
			})
		})
	})

	// WebSocket endpoint for live dashboard updates
	router.Get("/ws/live", handlers.LiveFeedHandler(natsConn, eventsTopic))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
