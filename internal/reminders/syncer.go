// Package reminders implements the data-synchronization layer between the
// dashboard and the reminders API: cached reads keyed by filter criteria, and
// optimistic create/update/delete with snapshot/rollback.
package reminders

import (
	"context"
	"log"
	"sync"
	"time"

	"callme/internal/cache"
	"callme/internal/models"
)

const (
	// Domain tags every cache key produced by this package.
	Domain = "reminders"

	// ListTTL matches the 10-second polling interval: a list entry younger
	// than this is served without refetching.
	ListTTL = 10 * time.Second
)

// Client is the remote data client consumed by the syncer.
type Client interface {
	List(ctx context.Context, filters models.ReminderFilters) (*models.ReminderListResponse, error)
	Get(ctx context.Context, id string) (*models.Reminder, error)
	Create(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error)
	Update(ctx context.Context, id string, req models.UpdateReminderRequest) (*models.Reminder, error)
	Delete(ctx context.Context, id string) error
}

// Notifier receives mutation outcomes for the transient notification feed.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string, string) {}
func (noopNotifier) Error(string, string)   {}

// Syncer wraps the remote client with a query cache and optimistic mutation
// bookkeeping. The mutex serializes the snapshot/apply and rollback phases so
// that overlapping mutations always snapshot each other's speculative values.
type Syncer struct {
	client   Client
	cache    *cache.Cache
	notifier Notifier
	mu       sync.Mutex
}

// NewSyncer creates a syncer over the given client and cache. A nil notifier
// disables the notification feed.
func NewSyncer(client Client, qc *cache.Cache, notifier Notifier) *Syncer {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Syncer{client: client, cache: qc, notifier: notifier}
}

// Cache exposes the underlying query cache (used by the refresh worker and
// by tests).
func (s *Syncer) Cache() *cache.Cache {
	return s.cache
}

// List returns reminders matching the filters, serving the cache when the
// entry is fresh. On a fetch error the error is returned; the entry keeps
// its last known-good value.
func (s *Syncer) List(ctx context.Context, filters models.ReminderFilters) (*models.ReminderListResponse, error) {
	key := cache.ListKey(Domain, filters)
	if data, ok := s.cache.Fresh(key, ListTTL); ok {
		return data.(*models.ReminderListResponse), nil
	}

	gen := s.cache.BeginFetch(key)
	resp, err := s.client.List(ctx, filters)
	if err != nil {
		s.cache.Fail(key, gen, err)
		return nil, err
	}
	s.cache.Commit(key, gen, resp)
	return resp, nil
}

// Get returns a single reminder, serving the cached detail entry when fresh.
func (s *Syncer) Get(ctx context.Context, id string) (*models.Reminder, error) {
	key := cache.DetailKey(Domain, id)
	if data, ok := s.cache.Fresh(key, ListTTL); ok {
		return data.(*models.Reminder), nil
	}

	gen := s.cache.BeginFetch(key)
	rem, err := s.client.Get(ctx, id)
	if err != nil {
		s.cache.Fail(key, gen, err)
		return nil, err
	}
	s.cache.Commit(key, gen, rem)
	return rem, nil
}

// Create submits a new reminder. The new record may or may not match any
// given filter server-side, so every cached list entry is invalidated on
// success rather than patched locally.
func (s *Syncer) Create(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error) {
	rem, err := s.client.Create(ctx, req)
	if err != nil {
		s.notifier.Error("Failed to create reminder", err.Error())
		return nil, err
	}

	s.cache.Invalidate(Domain, cache.KindList)
	s.notifier.Success("Reminder created successfully",
		"Scheduled for "+rem.ScheduledDatetime.Local().Format("Jan 2, 2006 3:04 PM"))
	return rem, nil
}

// Update applies a partial update optimistically: the in-flight detail fetch
// is cancelled, the current value is snapshotted, and the merged speculative
// value is written immediately. The server response replaces the speculative
// value on success; the snapshot is restored verbatim on failure.
func (s *Syncer) Update(ctx context.Context, id string, req models.UpdateReminderRequest) (*models.Reminder, error) {
	key := cache.DetailKey(Domain, id)

	s.mu.Lock()
	s.cache.CancelFetch(key)
	prev, had := s.cache.Snapshot(key)
	if had {
		speculative := *prev.(*models.Reminder)
		req.Apply(&speculative)
		s.cache.Put(key, &speculative)
	}
	s.mu.Unlock()

	rem, err := s.client.Update(ctx, id, req)
	if err != nil {
		s.mu.Lock()
		if had {
			s.cache.Put(key, prev)
		}
		s.mu.Unlock()
		s.notifier.Error("Failed to update reminder", err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.cache.Put(key, rem)
	s.cache.Invalidate(Domain, cache.KindList)
	s.mu.Unlock()
	s.notifier.Success("Reminder updated successfully", "")
	return rem, nil
}

// Delete removes a reminder optimistically: in-flight list fetches are
// cancelled, every cached list entry is snapshotted and rewritten without the
// record (total decremented). On success the detail entry is evicted and
// lists are invalidated for a consistent refetch; on failure every snapshot
// is restored exactly as captured.
func (s *Syncer) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	snapshots := make(map[cache.Key]interface{})
	for _, key := range s.cache.Keys(Domain, cache.KindList) {
		s.cache.CancelFetch(key)
		if data, ok := s.cache.Snapshot(key); ok {
			snapshots[key] = data
			s.cache.Put(key, data.(*models.ReminderListResponse).Without(id))
		}
	}
	s.mu.Unlock()

	if err := s.client.Delete(ctx, id); err != nil {
		s.mu.Lock()
		for key, data := range snapshots {
			s.cache.Put(key, data)
		}
		s.mu.Unlock()
		s.notifier.Error("Failed to delete reminder", err.Error())
		return err
	}

	s.mu.Lock()
	s.cache.Evict(cache.DetailKey(Domain, id))
	s.cache.Invalidate(Domain, cache.KindList)
	s.mu.Unlock()
	s.notifier.Success("Reminder deleted successfully", "")
	return nil
}

// RefreshLists refetches every cached list entry. Called by the polling
// worker; superseded fetches are discarded by the generation check.
func (s *Syncer) RefreshLists(ctx context.Context) {
	for _, key := range s.cache.Keys(Domain, cache.KindList) {
		gen := s.cache.BeginFetch(key)
		resp, err := s.client.List(ctx, key.Filters)
		if err != nil {
			s.cache.Fail(key, gen, err)
			log.Printf("Warning: list refresh failed: %v", err)
			continue
		}
		s.cache.Commit(key, gen, resp)
	}
}
