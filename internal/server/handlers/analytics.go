package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"ipolls/internal/adapter/storage"
	"ipolls/internal/analytics"
	"ipolls/internal/classify"
	"ipolls/internal/domain/comment"
	"ipolls/internal/keywords"
)

// CommentSource provides the full comment collection aggregates are
// computed from.
type CommentSource interface {
	ListComments(ctx context.Context) ([]comment.Comment, error)
}

// AnalyticsHandler serves the aggregate tables the dashboard renders.
// Every endpoint recomputes from the full comment set; there is no
// incremental state.
type AnalyticsHandler struct {
	source     CommentSource
	classifier *classify.Classifier
	colors     *keywords.Config
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(source CommentSource, classifier *classify.Classifier, colors *keywords.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		source:     source,
		classifier: classifier,
		colors:     colors,
	}
}

// GetPartyDistribution returns mention counts per party as chart data.
func (h *AnalyticsHandler) GetPartyDistribution(w http.ResponseWriter, r *http.Request) {
	comments, err := h.source.ListComments(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load comments", err)
		return
	}

	labels := make([]string, 0, len(comments))
	for _, c := range comments {
		labels = append(labels, c.Party)
	}

	entries := analytics.Distribution(labels, true)
	respondWithJSON(w, http.StatusOK, analytics.Chart(entries, h.colors.Color))
}

// GetLeaderDistribution returns mention counts per party leader.
// Leaders are classified on demand from the comment text.
func (h *AnalyticsHandler) GetLeaderDistribution(w http.ResponseWriter, r *http.Request) {
	comments, err := h.source.ListComments(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load comments", err)
		return
	}

	labels := make([]string, 0, len(comments))
	for _, c := range comments {
		labels = append(labels, h.classifier.ClassifyLeader(c.Text))
	}

	entries := analytics.Distribution(labels, true)
	respondWithJSON(w, http.StatusOK, analytics.Chart(entries, h.colors.Color))
}

// GetSentiment returns positive/negative counts and percentages per
// party.
func (h *AnalyticsHandler) GetSentiment(w http.ResponseWriter, r *http.Request) {
	comments, err := h.source.ListComments(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load comments", err)
		return
	}

	respondWithJSON(w, http.StatusOK, analytics.SentimentCounts(comments))
}

// GetTimeSeries returns the day-aligned party mention series. The
// optional top_n query parameter caps the series to the busiest N
// parties; without it every mentioned party is included.
func (h *AnalyticsHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	topN := 0
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid top_n", err)
			return
		}
		topN = n
	}

	comments, err := h.source.ListComments(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load comments", err)
		return
	}

	respondWithJSON(w, http.StatusOK, analytics.BuildSeries(comments, topN))
}

// GetTopics returns total mention counts per policy topic.
func (h *AnalyticsHandler) GetTopics(w http.ResponseWriter, r *http.Request) {
	comments, err := h.source.ListComments(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load comments", err)
		return
	}

	topicSets := make([][]string, 0, len(comments))
	for _, c := range comments {
		topicSets = append(topicSets, h.classifier.ClassifyTopics(c.Text))
	}

	respondWithJSON(w, http.StatusOK, analytics.TopicFrequencies(topicSets))
}

// ExportComments streams the stored comments as a CSV download in the
// interchange layout.
func (h *AnalyticsHandler) ExportComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.source.ListComments(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load comments", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="comments_with_sentiment.csv"`)
	if err := storage.WriteComments(w, comments); err != nil {
		// Headers are gone; nothing left to do but log-free bail.
		return
	}
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
