package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"iso with time", "2025-05-18 13:45:12", "2025-05-18"},
		{"iso date only", "2025-05-18", "2025-05-18"},
		{"fractional seconds dropped", "2025-05-18 13:45:12.123456", "2025-05-18"},
		{"timezone offset dropped", "2025-05-18 13:45:12+01:00", "2025-05-18"},
		{"fraction and offset", "2025-05-18 13:45:12.123+01:00", "2025-05-18"},
		{"slash day first", "18/05/2025", "2025-05-18"},
		{"slash day first with time", "18/05/2025 09:30:00", "2025-05-18"},
		{"dash day first", "18-05-2025", "2025-05-18"},
		{"surrounding whitespace", "  2025-05-18  ", "2025-05-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDayAmbiguousIsDayFirst(t *testing.T) {
	// Both day-first and month-first layouts accept this; the day-first
	// layout is tried first, so this is 1 February.
	got, err := ParseDay("01/02/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", got)
}

func TestParseDayMonthFirstFallback(t *testing.T) {
	// Day-first rejects a 25th month, so the month-first layout applies.
	got, err := ParseDay("12/25/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-25", got)
}

func TestParseDayUnparseable(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "2025/05/18", "May 18, 2025"} {
		_, err := ParseDay(raw)
		assert.ErrorIs(t, err, ErrUnparseable, "raw=%q", raw)
	}
}
