package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ipolls/internal/domain/comment"
)

func TestSentimentCounts(t *testing.T) {
	comments := []comment.Comment{
		{Party: "PS", Sentiment: comment.SentimentPositive},
		{Party: "PS", Sentiment: comment.SentimentPositive},
		{Party: "PS", Sentiment: comment.SentimentNegative},
		{Party: "AD", Sentiment: comment.SentimentNegative},
	}

	got := SentimentCounts(comments)

	assert.Equal(t, []string{"AD", "PS"}, got.Parties)
	assert.Equal(t, []int{0, 2}, got.Positive)
	assert.Equal(t, []int{1, 1}, got.Negative)
	assert.InDelta(t, 0, got.PositivePct[0], 0.001)
	assert.InDelta(t, 100, got.NegativePct[0], 0.001)
	assert.InDelta(t, 66.666, got.PositivePct[1], 0.01)
	assert.InDelta(t, 33.333, got.NegativePct[1], 0.01)
}

func TestSentimentCountsSkipsUnlabeled(t *testing.T) {
	comments := []comment.Comment{
		{Party: "PS", Sentiment: comment.SentimentNeutral},
		{Party: "PS", Sentiment: comment.SentimentError},
		{Party: "PS", Sentiment: ""},
		{Party: comment.Undefined, Sentiment: comment.SentimentPositive},
		{Party: "", Sentiment: comment.SentimentPositive},
	}

	got := SentimentCounts(comments)

	assert.Empty(t, got.Parties)
	assert.Empty(t, got.Positive)
}

func TestSentimentCountsEmpty(t *testing.T) {
	got := SentimentCounts(nil)

	assert.Empty(t, got.Parties)
	assert.NotNil(t, got.Positive)
}
