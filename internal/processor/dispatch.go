package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/maorhav/concierge/internal/email"
	"github.com/maorhav/concierge/internal/gcal"
	"github.com/maorhav/concierge/internal/gtasks"
	"github.com/maorhav/concierge/internal/intent"
	"github.com/maorhav/concierge/internal/timeutil"
)

const defaultEventMinutes = 60

// Calendar is the calendar collaborator boundary.
type Calendar interface {
	CreateEvent(calendarID string, input gcal.EventInput) (string, error)
}

// Tasks is the task-list collaborator boundary.
type Tasks interface {
	CreateTask(input gtasks.TaskInput) (string, error)
}

// EmailSender is the email collaborator boundary.
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) (string, error)
}

// ValidationError means a required field was missing at dispatch time. The
// intent was understood; the content was incomplete. It never triggers the
// keyword fallback.
type ValidationError struct {
	ActionKind intent.Kind
	Field      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s action is missing required field %q", e.ActionKind, e.Field)
}

// DispatchError means the external collaborator call failed. Not retried.
type DispatchError struct {
	ActionKind intent.Kind
	Err        error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s dispatch failed: %v", e.ActionKind, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Outcome is the per-action dispatch result.
type Outcome struct {
	Action  intent.Action
	Ref     string // collaborator reference: event, task, or message ID
	Message string
	Err     error
}

// Success reports whether the action dispatched cleanly.
func (o Outcome) Success() bool { return o.Err == nil }

// Dispatcher routes a validated, normalized action to the collaborator
// matching its kind, after kind-specific final checks.
type Dispatcher struct {
	Calendar   Calendar
	Tasks      Tasks
	Email      EmailSender
	CalendarID string
}

// Dispatch invokes the one collaborator matching the action's kind.
func (d *Dispatcher) Dispatch(ctx context.Context, action intent.Action, anchor timeutil.Anchor) Outcome {
	switch a := action.(type) {
	case intent.CalendarAction:
		return d.dispatchCalendar(a, anchor)
	case intent.TaskAction:
		return d.dispatchTask(a)
	case intent.EmailAction:
		return d.dispatchEmail(ctx, a)
	default:
		return Outcome{
			Action:  action,
			Message: "Could not determine what action to take for this command",
		}
	}
}

func (d *Dispatcher) dispatchCalendar(a intent.CalendarAction, anchor timeutil.Anchor) Outcome {
	if a.Title == "" {
		return Outcome{Action: a, Err: &ValidationError{ActionKind: intent.KindCalendar, Field: "title"}}
	}
	if a.Date == "" {
		return Outcome{Action: a, Err: &ValidationError{ActionKind: intent.KindCalendar, Field: "date"}}
	}
	if d.Calendar == nil {
		return Outcome{Action: a, Err: &DispatchError{ActionKind: intent.KindCalendar, Err: fmt.Errorf("calendar collaborator not configured")}}
	}

	day, err := timeutil.ParseDate(a.Date, anchor.Today.Location())
	if err != nil {
		return Outcome{Action: a, Err: &ValidationError{ActionKind: intent.KindCalendar, Field: "date"}}
	}

	input := gcal.EventInput{
		Summary:  a.Title,
		Location: a.Location,
	}

	// A missing or malformed time means an all-day event.
	if clock, clockErr := time.Parse("15:04", a.Time); clockErr == nil {
		minutes := a.DurationMinutes
		if minutes <= 0 {
			minutes = defaultEventMinutes
		}
		input.StartTime = day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		input.EndTime = input.StartTime.Add(time.Duration(minutes) * time.Minute)
	} else {
		input.StartTime = day
		input.AllDay = true
	}

	ref, err := d.Calendar.CreateEvent(d.CalendarID, input)
	if err != nil {
		return Outcome{Action: a, Err: &DispatchError{ActionKind: intent.KindCalendar, Err: err}}
	}

	return Outcome{
		Action:  a,
		Ref:     ref,
		Message: fmt.Sprintf("Event %q created for %s", a.Title, a.Date),
	}
}

func (d *Dispatcher) dispatchTask(a intent.TaskAction) Outcome {
	if a.Title == "" {
		return Outcome{Action: a, Err: &ValidationError{ActionKind: intent.KindTask, Field: "title"}}
	}
	if d.Tasks == nil {
		return Outcome{Action: a, Err: &DispatchError{ActionKind: intent.KindTask, Err: fmt.Errorf("task collaborator not configured")}}
	}

	ref, err := d.Tasks.CreateTask(gtasks.TaskInput{
		Title:   a.Title,
		DueDate: a.DueDate,
		Notes:   a.Notes,
	})
	if err != nil {
		return Outcome{Action: a, Err: &DispatchError{ActionKind: intent.KindTask, Err: err}}
	}

	return Outcome{
		Action:  a,
		Ref:     ref,
		Message: fmt.Sprintf("Task %q created", a.Title),
	}
}

func (d *Dispatcher) dispatchEmail(ctx context.Context, a intent.EmailAction) Outcome {
	// Hard requirements for the external call, re-checked immediately
	// before sending regardless of what upstream validation saw.
	if a.Recipient == "" {
		return Outcome{Action: a, Err: &ValidationError{ActionKind: intent.KindEmail, Field: "recipient"}}
	}
	if a.Subject == "" {
		return Outcome{Action: a, Err: &ValidationError{ActionKind: intent.KindEmail, Field: "subject"}}
	}
	if a.Body == "" {
		return Outcome{Action: a, Err: &ValidationError{ActionKind: intent.KindEmail, Field: "body"}}
	}
	if d.Email == nil {
		return Outcome{Action: a, Err: &DispatchError{ActionKind: intent.KindEmail, Err: fmt.Errorf("email collaborator not configured")}}
	}

	ref, err := d.Email.Send(ctx, email.Message{
		Recipient: a.Recipient,
		Subject:   a.Subject,
		Body:      a.Body,
	})
	if err != nil {
		return Outcome{Action: a, Err: &DispatchError{ActionKind: intent.KindEmail, Err: err}}
	}

	return Outcome{
		Action:  a,
		Ref:     ref,
		Message: fmt.Sprintf("Email sent to %s", a.Recipient),
	}
}
