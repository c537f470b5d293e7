package intent

import (
	"bytes"
	"fmt"
	"time"

	"github.com/maorhav/concierge/internal/timeutil"
)

// SystemPrompt is the system prompt for converting a natural-language
// command into a structured action.
const SystemPrompt = `You are an AI assistant that converts a user's natural-language command into exactly one structured action.

## Action Kinds

Choose exactly ONE kind for each action:
1. "calendar" - scheduling a meeting, appointment, or event
2. "task" - creating a to-do item or reminder
3. "email" - composing and sending an email
4. "unknown" - the command does not clearly match any of the above

## Response Format

Always respond with valid JSON and nothing else.

For a single action:

{
  "kind": "calendar",
  "title": "Brief descriptive title",
  "date": "YYYY-MM-DD",
  "time": "HH:MM (24-hour)",
  "durationMinutes": 60,
  "location": "Location if mentioned, otherwise empty string"
}

{
  "kind": "task",
  "title": "Brief descriptive title",
  "dueDate": "YYYY-MM-DD or omit if not specified",
  "priority": "low"|"medium"|"high"
}

{
  "kind": "email",
  "recipient": "email address or name mentioned by the user",
  "subject": "Concise subject line",
  "body": "Plain text body"
}

If the command contains multiple independent intents, respond with:

{
  "actions": [ {first action}, {second action}, ... ]
}

An envelope with "actions" must not also carry a top-level "kind".

## Important Guidelines

1. Pick exactly one kind per action. Never invent new kinds.
2. Only include fields that belong to the chosen kind.
3. For email bodies: write the message content ONLY. Do NOT add any signature,
   sign-off, closing phrase, or sender name. The system appends the real
   user's signature itself.
4. Titles should be concise but descriptive (e.g., "Budget Review Meeting"
   not just "Meeting").
5. If no duration is specified for a calendar event, use 60 minutes.
6. Omit dates you cannot determine rather than guessing.`

// BuildPrompt composes the user prompt: the command, the acting user's name,
// and the temporal anchor with explicit rules and worked examples so the
// model never resolves relative dates against its training-cutoff year.
func BuildPrompt(command, userName string, anchor timeutil.Anchor) string {
	var prompt bytes.Buffer

	prompt.WriteString("## Current Date Reference\n\n")
	prompt.WriteString(fmt.Sprintf("Today is %s (%s).\n", anchor.Today.Format("2006-01-02"), anchor.Today.Format("Monday")))
	prompt.WriteString(fmt.Sprintf("Current year: %d. Current month: %d. Current day: %d.\n\n", anchor.Year, int(anchor.Month), anchor.Day))

	prompt.WriteString("## Date Rules\n\n")
	prompt.WriteString(fmt.Sprintf("- NEVER output a year earlier than %d.\n", anchor.Year))
	prompt.WriteString("- Resolve relative dates against today, not against any other year.\n")
	prompt.WriteString(fmt.Sprintf("- \"today\" means %s\n", anchor.Today.Format("2006-01-02")))
	prompt.WriteString(fmt.Sprintf("- \"tomorrow\" means %s\n", anchor.Today.AddDate(0, 0, 1).Format("2006-01-02")))

	nextFriday := nextWeekday(anchor.Today, time.Friday)
	nextMonday := nextWeekday(anchor.Today, time.Monday)
	prompt.WriteString(fmt.Sprintf("- \"Friday\" or \"next Friday\" means %s\n", nextFriday.Format("2006-01-02")))
	prompt.WriteString(fmt.Sprintf("- \"Monday\" or \"next Monday\" means %s\n\n", nextMonday.Format("2006-01-02")))

	if userName != "" {
		prompt.WriteString(fmt.Sprintf("## User\n\nThe command was issued by %s.\n\n", userName))
	}

	prompt.WriteString("## Command\n\n")
	prompt.WriteString(command)
	prompt.WriteString("\n\nRespond with your JSON action now.")

	return prompt.String()
}

// nextWeekday returns the next occurrence of the weekday strictly after from.
func nextWeekday(from time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(from.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return from.AddDate(0, 0, offset)
}
