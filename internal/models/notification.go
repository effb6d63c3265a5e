package models

import "time"

// NotificationLevel distinguishes success toasts from error toasts
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a transient user-facing message produced by mutation
// outcomes (created/updated/deleted, or the corresponding failure).
type Notification struct {
	ID        int               `json:"id"`
	Level     NotificationLevel `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
