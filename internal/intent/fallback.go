package intent

import "strings"

// fallbackDescription marks an action produced by the degraded keyword path
// rather than the model pipeline.
const fallbackDescription = "Classified by keyword fallback; the model pipeline did not produce a usable action."

const fallbackTitleLimit = 50

// keyword sets checked in fixed priority order: first match wins.
var (
	calendarKeywords = []string{"meet", "schedule"}
	taskKeywords     = []string{"task", "todo"}
	emailKeywords    = []string{"email", "mail"}
)

// Fallback classifies the original command text by surface keywords and
// returns a minimal degraded action. It is the terminal error-absorbing
// stage of the pipeline and never fails.
func Fallback(text string) Action {
	normalized := strings.ToLower(text)
	title := fallbackTitle(text)

	switch {
	case containsAny(normalized, calendarKeywords):
		return CalendarAction{Title: title}
	case containsAny(normalized, taskKeywords):
		return TaskAction{Title: title, Notes: fallbackDescription}
	case containsAny(normalized, emailKeywords):
		return EmailAction{Subject: title}
	default:
		return UnknownAction{Title: title, Description: fallbackDescription}
	}
}

func fallbackTitle(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > fallbackTitleLimit {
		return text[:fallbackTitleLimit]
	}
	return text
}

func containsAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
