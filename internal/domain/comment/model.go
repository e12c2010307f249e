package comment

import (
	"strings"
)

// Undefined is the sentinel label returned by every classifier when no
// configured category matched. It is never a valid category name; the
// keyword configuration rejects categories with this name so the sentinel
// cannot collide with real data.
const Undefined = "Undefined"

// Sentiment labels attached by the external labeling collaborator.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentError    = "error_api"
)

// Comment is a single social-media comment as ingested from upstream.
// It is never mutated after ingest; classification produces derived
// values, not edits.
type Comment struct {
	ID        string `json:"id"`
	PostTitle string `json:"post_title,omitempty"`
	Text      string `json:"text"`

	// PostedAt is kept as the raw upstream string. Upstream timestamps
	// arrive in several formats and some are unparseable; parsing is
	// deferred to aggregation, which tallies failures instead of
	// rejecting the record.
	PostedAt string `json:"posted_at"`

	Score     int    `json:"score"`
	Party     string `json:"party,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
}

// timestampAliases are the column/field names accepted for the raw
// timestamp, matched case-insensitively. The upstream CSV interchange
// format historically used "data_comentario".
var timestampAliases = []string{
	"data_comentario",
	"date",
	"datetime",
	"time",
	"timestamp",
}

// ResolveTimestamp returns the raw timestamp value from a loosely-typed
// row, trying each recognized alias case-insensitively. Returns "" when
// no alias is present.
func ResolveTimestamp(fields map[string]string) string {
	for key, value := range fields {
		if IsTimestampField(key) {
			return value
		}
	}
	return ""
}

// IsTimestampField reports whether a column name is a recognized
// timestamp alias.
func IsTimestampField(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, alias := range timestampAliases {
		if name == alias {
			return true
		}
	}
	return false
}
