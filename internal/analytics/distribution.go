package analytics

import (
	"sort"

	"ipolls/internal/domain/comment"
)

// Entry is one (label, count) pair of a distribution.
type Entry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChartData is a distribution decorated with display colors, shaped for
// direct chart consumption. Counts and Colors align with Labels.
type ChartData struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
	Colors []string `json:"colors"`
}

// Distribution counts occurrences per label and orders the result by
// count descending, ties broken by first encounter.
//
// With dropUndefined set, the Undefined sentinel is removed whenever at
// least one real label is present; when Undefined is the only label it
// stays, so the result still reflects the data. This is a presentation
// heuristic, which is why it is a caller choice and not baked in.
func Distribution(labels []string, dropUndefined bool) []Entry {
	counts := make(map[string]int)
	var order []string
	for _, label := range labels {
		if label == "" {
			continue
		}
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	if dropUndefined && len(counts) > 1 {
		delete(counts, comment.Undefined)
	}

	entries := make([]Entry, 0, len(counts))
	for _, label := range order {
		if n, ok := counts[label]; ok {
			entries = append(entries, Entry{Label: label, Count: n})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Chart decorates a distribution with colors via colorOf.
func Chart(entries []Entry, colorOf func(string) string) ChartData {
	chart := ChartData{
		Labels: make([]string, len(entries)),
		Counts: make([]int, len(entries)),
		Colors: make([]string, len(entries)),
	}
	for i, e := range entries {
		chart.Labels[i] = e.Label
		chart.Counts[i] = e.Count
		chart.Colors[i] = colorOf(e.Label)
	}
	return chart
}
