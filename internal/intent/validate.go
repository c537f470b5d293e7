package intent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedIntent means the decoded structure carries neither a usable
// kind nor a non-empty actions list.
var ErrUnrecognizedIntent = errors.New("response carries no recognized action kind")

// Validate checks a decoded envelope against the closed action set and
// returns the typed actions in their original order. It performs existence
// checks only; dispatch re-validates the hard per-kind requirements
// immediately before each external call.
func Validate(env *Envelope) ([]Action, error) {
	if env == nil {
		return nil, ErrUnrecognizedIntent
	}

	if len(env.Actions) > 0 {
		actions := make([]Action, 0, len(env.Actions))
		for _, rec := range env.Actions {
			actions = append(actions, toAction(rec))
		}
		return actions, nil
	}

	if _, ok := parseKind(env.Record); !ok {
		return nil, ErrUnrecognizedIntent
	}
	return []Action{toAction(env.Record)}, nil
}

// parseKind reads the kind (or legacy action) field of a record.
func parseKind(rec Record) (Kind, bool) {
	value := rec.Kind
	if value == "" {
		value = rec.Action
	}
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindCalendar:
		return KindCalendar, true
	case KindTask:
		return KindTask, true
	case KindEmail:
		return KindEmail, true
	case KindUnknown:
		return KindUnknown, true
	default:
		return "", false
	}
}

// toAction converts a raw record into its closed typed variant. A record
// whose kind falls outside the closed set degrades to UnknownAction so a
// multi-action envelope keeps its element order and count.
func toAction(rec Record) Action {
	kind, ok := parseKind(rec)
	if !ok {
		return UnknownAction{
			Title:       rec.Title,
			Description: fmt.Sprintf("unrecognized action kind %q", firstNonEmpty(rec.Kind, rec.Action)),
		}
	}

	switch kind {
	case KindCalendar:
		minutes, err := rec.DurationMinutes.Int64()
		if err != nil || minutes < 0 {
			minutes = 0
		}
		return CalendarAction{
			Title:           rec.Title,
			Date:            rec.Date,
			Time:            rec.Time,
			DurationMinutes: int(minutes),
			Location:        rec.Location,
		}
	case KindTask:
		return TaskAction{
			Title:    rec.Title,
			DueDate:  rec.DueDate,
			Priority: normalizePriority(rec.Priority),
			Notes:    rec.Notes,
		}
	case KindEmail:
		return EmailAction{
			Recipient: rec.Recipient,
			Subject:   rec.Subject,
			Body:      rec.Body,
		}
	default:
		return UnknownAction{
			Title:       rec.Title,
			Description: rec.Description,
		}
	}
}

func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "low":
		return "low"
	case "medium":
		return "medium"
	case "high":
		return "high"
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
