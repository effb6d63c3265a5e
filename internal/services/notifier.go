package services

import (
	"sync"
	"time"

	"callme/internal/models"
)

// maxNotifications bounds the in-memory feed.
const maxNotifications = 50

// Notifier collects transient mutation-outcome notifications for the
// dashboard's toast feed. Oldest entries are dropped past the cap.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	items  []models.Notification
}

// NewNotifier creates an empty feed.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Success records a success notification.
func (n *Notifier) Success(title, message string) {
	n.push(models.NotifySuccess, title, message)
}

// Error records an error notification.
func (n *Notifier) Error(title, message string) {
	n.push(models.NotifyError, title, message)
}

// Recent returns up to limit notifications, newest first.
func (n *Notifier) Recent(limit int) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if limit <= 0 || limit > len(n.items) {
		limit = len(n.items)
	}
	out := make([]models.Notification, 0, limit)
	for i := len(n.items) - 1; i >= len(n.items)-limit; i-- {
		out = append(out, n.items[i])
	}
	return out
}

func (n *Notifier) push(level models.NotificationLevel, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.items = append(n.items, models.Notification{
		ID:        n.nextID,
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if len(n.items) > maxNotifications {
		n.items = n.items[len(n.items)-maxNotifications:]
	}
}
