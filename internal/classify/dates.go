package classify

import (
	"errors"
	"strings"
	"time"
)

// ErrUnparseable is returned by ParseDay when no configured layout
// matches. Callers exclude the record from time bucketing and tally the
// failure; it is never fatal.
var ErrUnparseable = errors.New("unparseable timestamp")

// Day is the canonical calendar-day format used across aggregation.
const Day = "2006-01-02"

// dayLayouts is the fixed parse priority. Day-first layouts precede
// month-first, so an ambiguous "01/02/2025" is 1 February. Precedence
// is a configured policy, not locale inference.
var dayLayouts = []string{
	"2006-01-02 15:04:05",
	Day,
	"02/01/2006 15:04:05",
	"02/01/2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
}

// ParseDay reduces a raw upstream timestamp to its calendar day in
// YYYY-MM-DD form. Fractional seconds (everything after the first '.')
// and timezone offsets (after the first '+') are discarded before the
// layouts are tried in priority order.
func ParseDay(raw string) (string, error) {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '+'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrUnparseable
	}

	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(Day), nil
		}
	}
	return "", ErrUnparseable
}
