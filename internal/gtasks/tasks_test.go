package gtasks

import (
	"testing"
	"time"

	"github.com/maorhav/concierge/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDue(t *testing.T) {
	anchor := timeutil.AnchorAt(time.Date(2025, time.June, 10, 11, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		dueDate  string
		expected time.Time
	}{
		{
			name:     "empty defaults to end of current day",
			dueDate:  "",
			expected: time.Date(2025, time.June, 10, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "today",
			dueDate:  "today",
			expected: time.Date(2025, time.June, 10, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "tomorrow",
			dueDate:  "tomorrow",
			expected: time.Date(2025, time.June, 11, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "explicit date anchors to end of day",
			dueDate:  "2025-07-01",
			expected: time.Date(2025, time.July, 1, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "already-passed date assumes next occurrence",
			dueDate:  "2024-01-05",
			expected: time.Date(2026, time.January, 5, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDue(tt.dueDate, anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("garbage is an error, not today", func(t *testing.T) {
		_, err := resolveDue("whenever", anchor)
		assert.Error(t, err)
	})
}

func TestCreateTaskRequiresService(t *testing.T) {
	client := &Client{}
	_, err := client.CreateTask(TaskInput{Title: "Buy milk"})
	assert.Error(t, err)
}
