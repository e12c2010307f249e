package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipolls/internal/domain/comment"
)

func sentimentServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: reply}},
			},
		})
	}))
}

func TestSentimentClassify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"positive", "positive", comment.SentimentPositive},
		{"negative with whitespace", " Negative \n", comment.SentimentNegative},
		{"unexpected word degrades to neutral", "maybe", comment.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := sentimentServer(t, tt.reply)
			defer server.Close()

			client := NewSentimentClient(server.URL, "test-key", "test-model", 0)
			got := client.Classify(context.Background(), "gostei do debate")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSentimentClassifyEmptyTextSkipsAPI(t *testing.T) {
	client := NewSentimentClient("http://127.0.0.1:0", "test-key", "test-model", 0)

	assert.Equal(t, comment.SentimentNeutral, client.Classify(context.Background(), "   "))
}

func TestSentimentClassifyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSentimentClient(server.URL, "test-key", "test-model", 0)
	assert.Equal(t, comment.SentimentError, client.Classify(context.Background(), "gostei"))
}

func TestSentimentClassifyTransportError(t *testing.T) {
	client := NewSentimentClient("http://127.0.0.1:0", "test-key", "test-model", 0)

	assert.Equal(t, comment.SentimentError, client.Classify(context.Background(), "gostei"))
}

func TestSentimentClassifyTruncatesLongText(t *testing.T) {
	var gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotContent = req.Messages[1].Content

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Content: "positive"}},
			},
		})
	}))
	defer server.Close()

	long := make([]rune, maxCommentRunes+500)
	for i := range long {
		long[i] = 'a'
	}

	client := NewSentimentClient(server.URL, "test-key", "test-model", 0)
	client.Classify(context.Background(), string(long))

	assert.LessOrEqual(t, len(gotContent), len(sentimentUserPrompt)+maxCommentRunes)
}
