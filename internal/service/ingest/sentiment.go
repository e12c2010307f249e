package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ipolls/internal/domain/comment"
)

const (
	sentimentSystemPrompt = "You are a sentiment classifier for Portuguese political comments. Only reply with 'positive' or 'negative'."
	sentimentUserPrompt   = "Classify the sentiment in this political comment as either 'positive' or 'negative'. Only reply with one of those two words.\n\n%s\n"

	// maxCommentRunes caps the comment text sent to the API.
	maxCommentRunes = 2000
)

// SentimentClient labels comment sentiment through an OpenAI-compatible
// chat completions endpoint.
type SentimentClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string

	// Delay paces successive requests to respect rate limits.
	Delay time.Duration
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewSentimentClient creates a sentiment labeling client.
func NewSentimentClient(baseURL, apiKey, model string, delay time.Duration) *SentimentClient {
	return &SentimentClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		Delay:      delay,
	}
}

// Classify labels one comment as positive, negative or neutral. An
// unexpected reply degrades to neutral; a transport or API failure is
// recorded as the error_api marker so the record survives with a
// diagnostic label instead of aborting the batch.
func (c *SentimentClient) Classify(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return comment.SentimentNeutral
	}

	runes := []rune(text)
	if len(runes) > maxCommentRunes {
		text = string(runes[:maxCommentRunes])
	}

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: sentimentSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(sentimentUserPrompt, text)},
		},
		Temperature: 0.2,
		MaxTokens:   10,
	})
	if err != nil {
		return comment.SentimentError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return comment.SentimentError
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return comment.SentimentError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return comment.SentimentError
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return comment.SentimentError
	}
	if len(parsed.Choices) == 0 {
		return comment.SentimentError
	}

	sentiment := strings.ToLower(strings.TrimSpace(parsed.Choices[0].Message.Content))
	switch sentiment {
	case comment.SentimentPositive, comment.SentimentNegative, comment.SentimentNeutral:
		return sentiment
	default:
		return comment.SentimentNeutral
	}
}

// pace sleeps the configured delay between requests, honoring context
// cancellation.
func (c *SentimentClient) pace(ctx context.Context) {
	if c.Delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.Delay):
	}
}
