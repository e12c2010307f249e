package handlers

import (
	"context"
	"log"
	"net/http"

	"ipolls/internal/service/ingest"
)

// BatchRunner triggers one ingest pass.
type BatchRunner interface {
	Run(ctx context.Context) (ingest.Batch, error)
}

// IngestHandler exposes manual control of the ingest pipeline.
type IngestHandler struct {
	runner BatchRunner
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(runner BatchRunner) *IngestHandler {
	return &IngestHandler{runner: runner}
}

// RunIngest kicks off an ingest pass in the background and returns
// immediately; progress is observable on the live feed.
func (h *IngestHandler) RunIngest(w http.ResponseWriter, r *http.Request) {
	go func() {
		if _, err := h.runner.Run(context.Background()); err != nil {
			log.Printf("manual ingest run failed: %v", err)
		}
	}()

	respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "ingest started"})
}
