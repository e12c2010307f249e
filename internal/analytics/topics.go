package analytics

import (
	"ipolls/internal/domain/comment"
)

// TopicFrequencies sums topic mentions across per-comment topic label
// sets, dropping the Undefined sentinel. An empty input yields an empty
// (non-nil) map.
func TopicFrequencies(topicSets [][]string) map[string]int {
	freq := make(map[string]int)
	for _, topics := range topicSets {
		for _, topic := range topics {
			if topic == comment.Undefined || topic == "" {
				continue
			}
			freq[topic]++
		}
	}
	return freq
}
