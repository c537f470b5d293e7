package processor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/maorhav/concierge/internal/email"
	"github.com/maorhav/concierge/internal/gcal"
	"github.com/maorhav/concierge/internal/gtasks"
	"github.com/maorhav/concierge/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeGenerator) Generate(_ context.Context, _, user string) (string, error) {
	g.prompts = append(g.prompts, user)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *fakeGenerator) IsConfigured() bool { return true }

type fakeCalendar struct {
	inputs []gcal.EventInput
	err    error
}

func (c *fakeCalendar) CreateEvent(_ string, input gcal.EventInput) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.inputs = append(c.inputs, input)
	return fmt.Sprintf("event-%d", len(c.inputs)), nil
}

type fakeTasks struct {
	inputs []gtasks.TaskInput
	err    error
}

func (t *fakeTasks) CreateTask(input gtasks.TaskInput) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	t.inputs = append(t.inputs, input)
	return fmt.Sprintf("task-%d", len(t.inputs)), nil
}

type fakeEmail struct {
	messages []email.Message
	err      error
}

func (e *fakeEmail) Send(_ context.Context, msg email.Message) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	e.messages = append(e.messages, msg)
	return fmt.Sprintf("msg-%d", len(e.messages)), nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
}

func newTestProcessor(gen *fakeGenerator, cal *fakeCalendar, tasks *fakeTasks, mail *fakeEmail) *Processor {
	return New(Config{
		Generator: gen,
		Calendar:  cal,
		Tasks:     tasks,
		Email:     mail,
		Now:       fixedNow,
	})
}

var identity = intent.Identity{Name: "Priya Shah", Email: "priya@example.com"}

func TestProcessCalendarCommand(t *testing.T) {
	gen := &fakeGenerator{response: `{"kind": "calendar", "title": "Sync", "date": "2025-06-11", "time": "17:00", "durationMinutes": 30}`}
	cal := &fakeCalendar{}
	proc := newTestProcessor(gen, cal, &fakeTasks{}, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "schedule a meeting tomorrow at 5")

	require.Len(t, result.Outcomes, 1)
	assert.False(t, result.Degraded)
	outcome := result.Outcomes[0]
	require.NoError(t, outcome.Err)
	assert.Equal(t, "event-1", outcome.Ref)

	require.Len(t, cal.inputs, 1)
	input := cal.inputs[0]
	assert.Equal(t, "Sync", input.Summary)
	assert.False(t, input.AllDay)
	assert.Equal(t, time.Date(2025, time.June, 11, 17, 0, 0, 0, time.UTC), input.StartTime)
	assert.Equal(t, time.Date(2025, time.June, 11, 17, 30, 0, 0, time.UTC), input.EndTime)
}

func TestProcessCorrectsPastYearDates(t *testing.T) {
	gen := &fakeGenerator{response: `{"kind": "calendar", "title": "Review", "date": "2024-01-05", "time": "10:00"}`}
	cal := &fakeCalendar{}
	proc := newTestProcessor(gen, cal, &fakeTasks{}, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "schedule the review on jan 5")

	require.Len(t, result.Outcomes, 1)
	require.NoError(t, result.Outcomes[0].Err)
	require.Len(t, cal.inputs, 1)
	// Anchor 2025-06-10: 2024-01-05 bumps to 2025, still past, bumps to 2026.
	assert.Equal(t, 2026, cal.inputs[0].StartTime.Year())
	assert.Equal(t, time.January, cal.inputs[0].StartTime.Month())
}

func TestProcessCalendarWithoutTimeIsAllDay(t *testing.T) {
	gen := &fakeGenerator{response: `{"kind": "calendar", "title": "Offsite", "date": "2025-07-01"}`}
	cal := &fakeCalendar{}
	proc := newTestProcessor(gen, cal, &fakeTasks{}, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "put the offsite on the calendar for july 1st")

	require.NoError(t, result.Outcomes[0].Err)
	require.Len(t, cal.inputs, 1)
	assert.True(t, cal.inputs[0].AllDay)
}

func TestProcessEmailEnforcesSignature(t *testing.T) {
	gen := &fakeGenerator{response: `{"kind": "email", "recipient": "raj@example.com", "subject": "Budget", "body": "Numbers attached.\n\nBest regards,\nAI Assistant"}`}
	mail := &fakeEmail{}
	proc := newTestProcessor(gen, &fakeCalendar{}, &fakeTasks{}, mail)

	result := proc.Process(context.Background(), identity, "email Raj about the budget")

	require.Len(t, result.Outcomes, 1)
	require.NoError(t, result.Outcomes[0].Err)
	require.Len(t, mail.messages, 1)
	assert.Equal(t, "Numbers attached.\n\nBest regards,\nPriya Shah", mail.messages[0].Body)
}

func TestProcessMultiActionPartialFailure(t *testing.T) {
	gen := &fakeGenerator{response: `{"actions": [{"kind": "task", "title": "Buy milk"}, {"kind": "email", "recipient": ""}]}`}
	tasks := &fakeTasks{}
	proc := newTestProcessor(gen, &fakeCalendar{}, tasks, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "add buy milk to my list and email the vendor")

	require.Len(t, result.Outcomes, 2)

	// Task dispatches cleanly.
	assert.True(t, result.Outcomes[0].Success())
	assert.Equal(t, "task-1", result.Outcomes[0].Ref)
	require.Len(t, tasks.inputs, 1)
	assert.Equal(t, "Buy milk", tasks.inputs[0].Title)

	// Email reports a validation failure without affecting the task.
	var verr *ValidationError
	require.True(t, errors.As(result.Outcomes[1].Err, &verr))
	assert.Equal(t, intent.KindEmail, verr.ActionKind)
	assert.Equal(t, "recipient", verr.Field)
}

func TestProcessDispatchErrorDoesNotHaltLaterActions(t *testing.T) {
	gen := &fakeGenerator{response: `{"actions": [{"kind": "task", "title": "First"}, {"kind": "task", "title": "Second"}]}`}
	tasks := &fakeTasks{err: fmt.Errorf("quota exceeded")}
	proc := newTestProcessor(gen, &fakeCalendar{}, tasks, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "two tasks please")

	require.Len(t, result.Outcomes, 2)
	for _, outcome := range result.Outcomes {
		var derr *DispatchError
		require.True(t, errors.As(outcome.Err, &derr))
		assert.Equal(t, intent.KindTask, derr.ActionKind)
	}
}

func TestProcessFallsBackOnGenerationError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("model unavailable")}
	tasks := &fakeTasks{}
	proc := newTestProcessor(gen, &fakeCalendar{}, tasks, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "add a task to water the plants")

	assert.True(t, result.Degraded)
	require.Len(t, result.Outcomes, 1)
	// Keyword fallback classifies it as a task; a task needs only a title.
	assert.True(t, result.Outcomes[0].Success())
	require.Len(t, tasks.inputs, 1)
	assert.Equal(t, "add a task to water the plants", tasks.inputs[0].Title)
}

func TestProcessFallsBackOnGarbageResponse(t *testing.T) {
	gen := &fakeGenerator{response: "I'm sorry, I can't help with that."}
	proc := newTestProcessor(gen, &fakeCalendar{}, &fakeTasks{}, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "schedule something sometime")

	assert.True(t, result.Degraded)
	require.Len(t, result.Outcomes, 1)
	// Degraded calendar action has no date, so dispatch reports the gap.
	var verr *ValidationError
	require.True(t, errors.As(result.Outcomes[0].Err, &verr))
	assert.Equal(t, intent.KindCalendar, verr.ActionKind)
	assert.Equal(t, "date", verr.Field)
}

func TestProcessFallsBackOnUnrecognizedIntent(t *testing.T) {
	gen := &fakeGenerator{response: `{"something": "else entirely"}`}
	proc := newTestProcessor(gen, &fakeCalendar{}, &fakeTasks{}, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "what's the meaning of life")

	assert.True(t, result.Degraded)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, intent.KindUnknown, result.Outcomes[0].Action.Kind())
	assert.NoError(t, result.Outcomes[0].Err)
	assert.NotEmpty(t, result.Outcomes[0].Message)
}

func TestProcessUnparseableDateIsDroppedNotToday(t *testing.T) {
	gen := &fakeGenerator{response: `{"kind": "calendar", "title": "Sync", "date": "sometime soon"}`}
	cal := &fakeCalendar{}
	proc := newTestProcessor(gen, cal, &fakeTasks{}, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "schedule a sync sometime soon")

	var verr *ValidationError
	require.True(t, errors.As(result.Outcomes[0].Err, &verr))
	assert.Equal(t, "date", verr.Field)
	assert.Empty(t, cal.inputs)
}

func TestProcessTaskRelativeDueDatePassesThrough(t *testing.T) {
	gen := &fakeGenerator{response: `{"kind": "task", "title": "Call the bank", "dueDate": "tomorrow"}`}
	tasks := &fakeTasks{}
	proc := newTestProcessor(gen, &fakeCalendar{}, tasks, &fakeEmail{})

	result := proc.Process(context.Background(), identity, "remind me to call the bank tomorrow")

	require.NoError(t, result.Outcomes[0].Err)
	require.Len(t, tasks.inputs, 1)
	// Relative terms reach the collaborator untouched; it interprets them itself.
	assert.Equal(t, "tomorrow", tasks.inputs[0].DueDate)
}

func TestProcessPromptCarriesAnchorAndIdentity(t *testing.T) {
	gen := &fakeGenerator{response: `{"kind": "task", "title": "x"}`}
	proc := newTestProcessor(gen, &fakeCalendar{}, &fakeTasks{}, &fakeEmail{})

	proc.Process(context.Background(), identity, "add a task")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "2025-06-10")
	assert.Contains(t, gen.prompts[0], "Priya Shah")
}
