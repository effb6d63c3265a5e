package stats

import (
	"time"

	"callme/internal/models"
)

// EventDuration is the fixed display length of a reminder on the calendar.
const EventDuration = 15 * time.Minute

// EventColors is the color pair applied to a calendar event.
type EventColors struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

var statusColors = map[models.ReminderStatus]EventColors{
	models.StatusScheduled: {Background: "#3b82f6", Border: "#3b82f6"},
	models.StatusCompleted: {Background: "#10b981", Border: "#10b981"},
	models.StatusFailed:    {Background: "#ef4444", Border: "#ef4444"},
	models.StatusPending:   {Background: "#f59e0b", Border: "#f59e0b"},
}

// CalendarEvent is a reminder projected onto the calendar.
type CalendarEvent struct {
	ID     string                `json:"id"`
	Title  string                `json:"title"`
	Start  time.Time             `json:"start"`
	End    time.Time             `json:"end"`
	Status models.ReminderStatus `json:"status"`
	Colors EventColors           `json:"colors"`
}

// CalendarEvents maps each record to a timed event of fixed duration starting
// at its scheduled datetime, colored by status.
func CalendarEvents(reminders []models.Reminder) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(reminders))
	for _, r := range reminders {
		events = append(events, CalendarEvent{
			ID:     r.ID,
			Title:  r.Title,
			Start:  r.ScheduledDatetime,
			End:    r.ScheduledDatetime.Add(EventDuration),
			Status: r.Status,
			Colors: statusColors[r.Status],
		})
	}
	return events
}
