// Package analytics builds the aggregate tables the dashboard consumes:
// day-aligned mention time series, rank-ordered label distributions,
// sentiment splits per party and topic frequencies.
//
// Everything here is pure in-memory counting over a fully-materialized
// comment collection; aggregates are recomputed from scratch on demand.
package analytics

import (
	"sort"

	"ipolls/internal/classify"
	"ipolls/internal/domain/comment"
)

// Series is a day-aligned mention count matrix. Every slice in Series
// has exactly len(Days) entries; a category with no mentions on a day
// holds 0 at that index, it is never omitted.
type Series struct {
	Days          []string         `json:"days"`
	Series        map[string][]int `json:"series"`
	ParseFailures int              `json:"parse_failures"`
}

// BuildSeries buckets party mentions per calendar day. Comments with an
// Undefined party or an unparseable timestamp are excluded from the
// contributing set entirely (not counted as zero); parse failures are
// tallied as a diagnostic. With topN > 0 only the topN parties by total
// volume are included (ties by first encounter); otherwise every party
// that appears, in lexical order.
func BuildSeries(comments []comment.Comment, topN int) Series {
	byDay := make(map[string]map[string]int)
	totals := make(map[string]int)
	var encounterOrder []string
	failures := 0

	for _, c := range comments {
		if c.Party == "" || c.Party == comment.Undefined {
			continue
		}
		day, err := classify.ParseDay(c.PostedAt)
		if err != nil {
			failures++
			continue
		}
		if byDay[day] == nil {
			byDay[day] = make(map[string]int)
		}
		byDay[day][c.Party]++
		if totals[c.Party] == 0 {
			encounterOrder = append(encounterOrder, c.Party)
		}
		totals[c.Party]++
	}

	if len(byDay) == 0 {
		return Series{ParseFailures: failures}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	selected := selectParties(totals, encounterOrder, topN)

	series := make(map[string][]int, len(selected))
	for _, party := range selected {
		counts := make([]int, len(days))
		for i, day := range days {
			counts[i] = byDay[day][party]
		}
		series[party] = counts
	}

	return Series{Days: days, Series: series, ParseFailures: failures}
}

// selectParties picks which categories the series exposes: the top N by
// total volume when capped, or all of them sorted lexically when not.
func selectParties(totals map[string]int, encounterOrder []string, topN int) []string {
	if topN <= 0 || topN >= len(encounterOrder) {
		all := make([]string, len(encounterOrder))
		copy(all, encounterOrder)
		sort.Strings(all)
		return all
	}

	ranked := make([]string, len(encounterOrder))
	copy(ranked, encounterOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return totals[ranked[i]] > totals[ranked[j]]
	})
	return ranked[:topN]
}
