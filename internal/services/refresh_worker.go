package services

import (
	"context"
	"time"

	"callme/internal/reminders"
)

// RefreshWorker re-polls cached list queries on a fixed interval so the
// dashboard keeps tracking server state between user actions.
type RefreshWorker struct {
	syncer   *reminders.Syncer
	interval time.Duration
	stop     chan struct{}
}

// NewRefreshWorker creates a worker polling at the list TTL interval.
func NewRefreshWorker(syncer *reminders.Syncer) *RefreshWorker {
	return &RefreshWorker{
		syncer:   syncer,
		interval: reminders.ListTTL,
		stop:     make(chan struct{}),
	}
}

// Start launches the polling loop.
func (w *RefreshWorker) Start() {
	go w.run()
}

// Stop terminates the polling loop.
func (w *RefreshWorker) Stop() {
	close(w.stop)
}

func (w *RefreshWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), w.interval)
			w.syncer.RefreshLists(ctx)
			cancel()
		}
	}
}
