package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
}

// CreateEvent creates a new event in Google Calendar and returns the event ID
func (c *Client) CreateEvent(calendarID string, input EventInput) (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("calendar service not initialized")
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
	}

	if input.AllDay {
		// All-day events use Date instead of DateTime; End.Date is exclusive.
		event.Start = &calendar.EventDateTime{Date: input.StartTime.Format("2006-01-02")}
		event.End = &calendar.EventDateTime{Date: input.StartTime.AddDate(0, 0, 1).Format("2006-01-02")}
	} else {
		// RFC3339 format includes timezone offset, so Google Calendar can infer the timezone
		event.Start = &calendar.EventDateTime{DateTime: input.StartTime.Format(time.RFC3339)}
		event.End = &calendar.EventDateTime{DateTime: input.EndTime.Format(time.RFC3339)}
	}

	created, err := c.service.Events.Insert(calendarID, event).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return created.Id, nil
}

// TodayEvent represents a calendar event for today's schedule display
type TodayEvent struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Location  string    `json:"location,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	AllDay    bool      `json:"all_day"`
}

// ListTodayEvents returns events for the current local day for the specified calendar
func (c *Client) ListTodayEvents(calendarID string) ([]TodayEvent, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	// Get start/end of current day in local time.
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	events, err := c.service.Events.List(calendarID).
		TimeMin(startOfDay.Format(time.RFC3339)).
		TimeMax(endOfDay.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list today's events: %w", err)
	}

	result := make([]TodayEvent, 0, len(events.Items))
	for _, item := range events.Items {
		if item == nil || item.Status == "cancelled" {
			continue
		}

		event := TodayEvent{
			ID:       item.Id,
			Summary:  item.Summary,
			Location: item.Location,
		}

		startTime, endTime, allDay, parseErr := parseEventTimes(item, now.Location())
		if parseErr != nil {
			// Skip malformed events rather than failing the whole request.
			continue
		}
		event.AllDay = allDay
		event.StartTime = startTime
		event.EndTime = endTime

		result = append(result, event)
	}

	return result, nil
}

func parseEventTimes(item *calendar.Event, loc *time.Location) (time.Time, time.Time, bool, error) {
	if item == nil || item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event is missing start or end")
	}

	// All-day events use Date instead of DateTime.
	if item.Start.Date != "" {
		startDate, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day start date: %w", err)
		}
		endDate, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day end date: %w", err)
		}
		return startDate, endDate, true, nil
	}

	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event datetime is missing")
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return startTime, endTime, false, nil
}
