package analytics

import (
	"sort"

	"ipolls/internal/domain/comment"
)

// SentimentByParty holds paired positive/negative counts and percentages
// per party, index-aligned with Parties. Percentages are 0 for a party
// with no labeled comments; there is no division fault path.
type SentimentByParty struct {
	Parties     []string  `json:"parties"`
	Positive    []int     `json:"positive"`
	Negative    []int     `json:"negative"`
	PositivePct []float64 `json:"positive_pct"`
	NegativePct []float64 `json:"negative_pct"`
}

// SentimentCounts tallies positive and negative sentiment per party.
// Only comments with a real party label and a positive or negative
// sentiment contribute; neutral, error-marked and Undefined-party
// comments are skipped. Parties are listed in lexical order.
func SentimentCounts(comments []comment.Comment) SentimentByParty {
	type tally struct{ pos, neg int }
	counts := make(map[string]*tally)

	for _, c := range comments {
		if c.Party == "" || c.Party == comment.Undefined {
			continue
		}
		switch c.Sentiment {
		case comment.SentimentPositive, comment.SentimentNegative:
		default:
			continue
		}
		t := counts[c.Party]
		if t == nil {
			t = &tally{}
			counts[c.Party] = t
		}
		if c.Sentiment == comment.SentimentPositive {
			t.pos++
		} else {
			t.neg++
		}
	}

	parties := make([]string, 0, len(counts))
	for party := range counts {
		parties = append(parties, party)
	}
	sort.Strings(parties)

	result := SentimentByParty{
		Parties:     parties,
		Positive:    make([]int, len(parties)),
		Negative:    make([]int, len(parties)),
		PositivePct: make([]float64, len(parties)),
		NegativePct: make([]float64, len(parties)),
	}
	for i, party := range parties {
		t := counts[party]
		result.Positive[i] = t.pos
		result.Negative[i] = t.neg
		if total := t.pos + t.neg; total > 0 {
			result.PositivePct[i] = float64(t.pos) / float64(total) * 100
			result.NegativePct[i] = float64(t.neg) / float64(total) * 100
		}
	}
	return result
}
