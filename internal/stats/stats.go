// Package stats computes the derived dashboard views: pure folds over a list
// of reminder records, with the reference time injected so tests are
// deterministic.
package stats

import (
	"time"

	"callme/internal/models"
)

// Summary holds the dashboard stat cards.
type Summary struct {
	Total          int `json:"total"`
	Scheduled      int `json:"scheduled"`
	Completed      int `json:"completed"`
	CompletedToday int `json:"completed_today"`
}

// Summarize folds the records into totals. "Completed today" means the
// completion timestamp falls on or after the start of the current local day.
func Summarize(reminders []models.Reminder, now time.Time) Summary {
	today := startOfDay(now)
	s := Summary{Total: len(reminders)}
	for _, r := range reminders {
		switch r.Status {
		case models.StatusScheduled:
			s.Scheduled++
		case models.StatusCompleted:
			s.Completed++
			if r.CompletedAt != nil && !r.CompletedAt.Before(today) {
				s.CompletedToday++
			}
		}
	}
	return s
}

// ActivityBucket is one day of the forward activity series.
type ActivityBucket struct {
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
	Scheduled int       `json:"scheduled"`
}

// UpcomingActivity buckets scheduled reminders into 7 days starting today.
// A record counts toward the day whose [dayStart, dayStart+24h) window holds
// its scheduled datetime.
func UpcomingActivity(reminders []models.Reminder, now time.Time) []ActivityBucket {
	buckets := make([]ActivityBucket, 7)
	for i := range buckets {
		day := startOfDay(now).AddDate(0, 0, i)
		next := day.AddDate(0, 0, 1)

		count := 0
		for _, r := range reminders {
			if r.Status != models.StatusScheduled {
				continue
			}
			if inWindow(r.ScheduledDatetime, day, next) {
				count++
			}
		}
		buckets[i] = ActivityBucket{Date: day, Label: day.Format("Jan 2"), Scheduled: count}
	}
	return buckets
}

// StatusBucket is one day of the backward status series.
type StatusBucket struct {
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
	Completed int       `json:"completed"`
	Failed    int       `json:"failed"`
}

// StatusHistory buckets completions and failures into 7 days ending today,
// oldest first. Completions use completed_at; failures use updated_at as a
// proxy because the record carries no failure timestamp (known imprecision,
// kept from the data model on purpose).
func StatusHistory(reminders []models.Reminder, now time.Time) []StatusBucket {
	buckets := make([]StatusBucket, 7)
	for i := range buckets {
		day := startOfDay(now).AddDate(0, 0, i-6)
		next := day.AddDate(0, 0, 1)

		b := StatusBucket{Date: day, Label: day.Format("Mon")}
		for _, r := range reminders {
			switch r.Status {
			case models.StatusCompleted:
				if r.CompletedAt != nil && inWindow(*r.CompletedAt, day, next) {
					b.Completed++
				}
			case models.StatusFailed:
				if r.UpdatedAt != nil && inWindow(*r.UpdatedAt, day, next) {
					b.Failed++
				}
			}
		}
		buckets[i] = b
	}
	return buckets
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
