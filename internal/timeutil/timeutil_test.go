package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchorOn(year int, month time.Month, day int) Anchor {
	return AnchorAt(time.Date(year, month, day, 14, 30, 0, 0, time.UTC))
}

func TestAnchorAt(t *testing.T) {
	now := time.Date(2025, time.June, 10, 14, 30, 45, 0, time.UTC)
	anchor := AnchorAt(now)

	assert.Equal(t, 2025, anchor.Year)
	assert.Equal(t, time.June, anchor.Month)
	assert.Equal(t, 10, anchor.Day)
	assert.Equal(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), anchor.Today)
}

func TestResolveDate(t *testing.T) {
	anchor := anchorOn(2025, time.June, 10)

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "past year before today bumps twice",
			input:    "2024-01-05",
			expected: "2026-01-05",
			ok:       true,
		},
		{
			name:     "past year after today bumps once",
			input:    "2024-12-25",
			expected: "2025-12-25",
			ok:       true,
		},
		{
			name:     "anchor year passes through",
			input:    "2025-06-15",
			expected: "2025-06-15",
			ok:       true,
		},
		{
			name:     "anchor year earlier than today is not touched",
			input:    "2025-01-02",
			expected: "2025-01-02",
			ok:       true,
		},
		{
			name:     "explicit future year is never second-guessed",
			input:    "2031-03-01",
			expected: "2031-03-01",
			ok:       true,
		},
		{
			name:     "datetime input normalizes to date",
			input:    "2025-07-01T15:00:00",
			expected: "2025-07-01",
			ok:       true,
		},
		{
			name:     "long month name",
			input:    "December 25, 2024",
			expected: "2025-12-25",
			ok:       true,
		},
		{
			name:     "slash separated",
			input:    "2024/11/20",
			expected: "2025-11-20",
			ok:       true,
		},
		{
			name:  "garbage is dropped not defaulted",
			input: "next full moon",
			ok:    false,
		},
		{
			name:  "empty is dropped",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDate(tt.input, anchor)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveDateNeverBeforeToday(t *testing.T) {
	// Corrected past-year dates must land in the anchor year or the next one,
	// and never behind the anchor's start of today.
	anchor := anchorOn(2025, time.June, 10)
	inputs := []string{"2020-01-01", "2023-06-09", "2024-06-10", "2019-12-31"}

	for _, input := range inputs {
		got, ok := ResolveDate(input, anchor)
		require.True(t, ok, input)

		resolved, err := ParseDate(got, time.UTC)
		require.NoError(t, err)
		assert.False(t, resolved.Before(anchor.Today), "resolved %s from %s is before today", got, input)
		assert.Contains(t, []int{2025, 2026}, resolved.Year())
	}
}

func TestResolveRelativeDay(t *testing.T) {
	anchor := anchorOn(2025, time.June, 10)

	today, ok := ResolveRelativeDay("today", anchor)
	require.True(t, ok)
	assert.Equal(t, anchor.Today, today)

	tomorrow, ok := ResolveRelativeDay("Tomorrow", anchor)
	require.True(t, ok)
	assert.Equal(t, anchor.Today.AddDate(0, 0, 1), tomorrow)

	_, ok = ResolveRelativeDay("next week", anchor)
	assert.False(t, ok)
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2025, time.June, 10, 9, 15, 0, 0, time.UTC)
	out := EndOfDay(in)
	assert.Equal(t, time.Date(2025, time.June, 10, 23, 59, 59, 0, time.UTC), out)
}
