package models

import (
	"net/url"
	"strconv"
	"time"
)

// ReminderStatus represents the delivery state of a reminder
type ReminderStatus string

const (
	StatusScheduled ReminderStatus = "scheduled"
	StatusCompleted ReminderStatus = "completed"
	StatusFailed    ReminderStatus = "failed"
	StatusPending   ReminderStatus = "pending"
)

// Reminder represents a scheduled phone-call reminder as returned by the API.
// The server owns id, status, call_attempts and all timestamps; the client
// never mutates them directly.
type Reminder struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Message           string         `json:"message"`
	PhoneNumber       string         `json:"phone_number"`
	ScheduledDatetime time.Time      `json:"scheduled_datetime"`
	Timezone          string         `json:"timezone"`
	Status            ReminderStatus `json:"status"`
	CallAttempts      int            `json:"call_attempts"`
	LastError         *string        `json:"last_error"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         *time.Time     `json:"updated_at"`
	CompletedAt       *time.Time     `json:"completed_at"`
}

// ReminderListResponse is the paginated list shape returned by GET /reminders
type ReminderListResponse struct {
	Reminders []Reminder `json:"reminders"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

// Without returns a copy of the response with the given reminder removed and
// the total decremented. Used for optimistic delete.
func (r *ReminderListResponse) Without(id string) *ReminderListResponse {
	out := ReminderListResponse{
		Reminders: make([]Reminder, 0, len(r.Reminders)),
		Total:     r.Total - 1,
		Page:      r.Page,
		PageSize:  r.PageSize,
	}
	for _, rem := range r.Reminders {
		if rem.ID != id {
			out.Reminders = append(out.Reminders, rem)
		}
	}
	return &out
}

// ReminderFilters holds the list query criteria. It is a plain value type
// with no pointers so that two filter sets with the same field values compare
// equal and hit the same cache entry. Zero values mean "not set" and are
// omitted from query strings.
type ReminderFilters struct {
	Status   ReminderStatus `json:"status,omitempty" form:"status" binding:"omitempty,oneof=scheduled completed failed pending"`
	Search   string         `json:"search,omitempty" form:"search"`
	Sort     string         `json:"sort,omitempty" form:"sort" binding:"omitempty,oneof=newest oldest title"`
	Page     int            `json:"page,omitempty" form:"page" binding:"omitempty,min=1"`
	PageSize int            `json:"page_size,omitempty" form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Values serializes the filters to query parameters, omitting unset fields.
func (f ReminderFilters) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return v
}

// CreateReminderRequest represents the data needed to create a new reminder
type CreateReminderRequest struct {
	Title             string    `json:"title" binding:"required,min=2,max=100"`
	Message           string    `json:"message" binding:"required,min=10,max=500"`
	PhoneNumber       string    `json:"phone_number" binding:"required,usphone"`
	ScheduledDatetime time.Time `json:"scheduled_datetime" binding:"required"`
	Timezone          string    `json:"timezone" binding:"required,timezone"`
}

// UpdateReminderRequest represents a partial update. Nil fields are left
// untouched.
type UpdateReminderRequest struct {
	Title             *string    `json:"title,omitempty" binding:"omitempty,min=2,max=100"`
	Message           *string    `json:"message,omitempty" binding:"omitempty,min=10,max=500"`
	PhoneNumber       *string    `json:"phone_number,omitempty" binding:"omitempty,usphone"`
	ScheduledDatetime *time.Time `json:"scheduled_datetime,omitempty"`
	Timezone          *string    `json:"timezone,omitempty" binding:"omitempty,timezone"`
}

// Apply overlays the patch onto the reminder in place.
func (u UpdateReminderRequest) Apply(r *Reminder) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Message != nil {
		r.Message = *u.Message
	}
	if u.PhoneNumber != nil {
		r.PhoneNumber = *u.PhoneNumber
	}
	if u.ScheduledDatetime != nil {
		r.ScheduledDatetime = *u.ScheduledDatetime
	}
	if u.Timezone != nil {
		r.Timezone = *u.Timezone
	}
}
