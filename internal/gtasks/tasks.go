package gtasks

import (
	"fmt"
	"time"

	"github.com/maorhav/concierge/internal/timeutil"
	"google.golang.org/api/tasks/v1"
)

const defaultTaskList = "@default"

// TaskInput represents the input for creating a task
type TaskInput struct {
	Title   string
	DueDate string // YYYY-MM-DD, or "today"/"tomorrow"; empty means end of current day
	Notes   string
}

// resolveDue turns the input due date into an end-of-day timestamp. Relative
// terms and past-year corrections go through the shared timeutil resolver so
// this collaborator and the pipeline never disagree on what a date means.
func resolveDue(dueDate string, anchor timeutil.Anchor) (time.Time, error) {
	if dueDate == "" {
		return timeutil.EndOfDay(anchor.Today), nil
	}

	if day, ok := timeutil.ResolveRelativeDay(dueDate, anchor); ok {
		return timeutil.EndOfDay(day), nil
	}

	resolved, ok := timeutil.ResolveDate(dueDate, anchor)
	if !ok {
		return time.Time{}, fmt.Errorf("unable to parse due date: %s", dueDate)
	}
	day, err := timeutil.ParseDate(resolved, anchor.Today.Location())
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.EndOfDay(day), nil
}

// CreateTask creates a task on the default list and returns the task ID.
// The due date resolves to an end-of-day RFC3339 timestamp; when absent the
// task is due at the end of the current day.
func (c *Client) CreateTask(input TaskInput) (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("tasks service not initialized")
	}
	if input.Title == "" {
		return "", fmt.Errorf("task title is required")
	}

	anchor := timeutil.AnchorAt(time.Now())
	due, err := resolveDue(input.DueDate, anchor)
	if err != nil {
		return "", err
	}

	task := &tasks.Task{
		Title:  input.Title,
		Notes:  input.Notes,
		Status: "needsAction",
		Due:    due.Format(time.RFC3339),
	}

	created, err := c.service.Tasks.Insert(defaultTaskList, task).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	return created.Id, nil
}
