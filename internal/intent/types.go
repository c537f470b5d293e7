// Package intent turns free-text model output into validated, typed actions.
package intent

// Kind is the closed category of intent an action belongs to.
type Kind string

const (
	KindCalendar Kind = "calendar"
	KindTask     Kind = "task"
	KindEmail    Kind = "email"
	KindUnknown  Kind = "unknown"
)

// Action is one structured command extracted from the user's text.
// The concrete type is discriminated by Kind.
type Action interface {
	Kind() Kind
}

// CalendarAction schedules an event.
type CalendarAction struct {
	Title           string
	Date            string // YYYY-MM-DD once resolved
	Time            string // HH:MM, 24h; empty means all-day
	DurationMinutes int
	Location        string
}

func (CalendarAction) Kind() Kind { return KindCalendar }

// TaskAction creates a to-do item.
type TaskAction struct {
	Title    string
	DueDate  string // YYYY-MM-DD or a relative term the task collaborator resolves
	Priority string // low|medium|high
	Notes    string
}

func (TaskAction) Kind() Kind { return KindTask }

// EmailAction sends an email on behalf of the authenticated user.
type EmailAction struct {
	Recipient string
	Subject   string
	Body      string
}

func (EmailAction) Kind() Kind { return KindEmail }

// UnknownAction is emitted when no concrete intent could be determined.
// Title and Description exist for diagnostics only.
type UnknownAction struct {
	Title       string
	Description string
}

func (UnknownAction) Kind() Kind { return KindUnknown }

// Identity is the externally-verified acting user. The display name and
// address are never taken from model output.
type Identity struct {
	Name  string
	Email string
}

// DisplayName resolves the name used to personalize prompts and sign
// outgoing email, falling back to the local part of the email address.
func (id Identity) DisplayName() string {
	if id.Name != "" {
		return id.Name
	}
	for i := 0; i < len(id.Email); i++ {
		if id.Email[i] == '@' {
			return id.Email[:i]
		}
	}
	return id.Email
}
