package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ipolls/internal/domain/comment"
)

func TestTopicFrequencies(t *testing.T) {
	topicSets := [][]string{
		{"taxes", "health"},
		{"taxes"},
		{comment.Undefined},
	}

	got := TopicFrequencies(topicSets)

	assert.Equal(t, map[string]int{"taxes": 2, "health": 1}, got)
}

func TestTopicFrequenciesDropsUndefinedInMixedSets(t *testing.T) {
	got := TopicFrequencies([][]string{{"housing", comment.Undefined, ""}})

	assert.Equal(t, map[string]int{"housing": 1}, got)
}

func TestTopicFrequenciesEmpty(t *testing.T) {
	got := TopicFrequencies(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
