package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"callme/internal/cache"
	"callme/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	listFn   func(context.Context, models.ReminderFilters) (*models.ReminderListResponse, error)
	getFn    func(context.Context, string) (*models.Reminder, error)
	createFn func(context.Context, models.CreateReminderRequest) (*models.Reminder, error)
	updateFn func(context.Context, string, models.UpdateReminderRequest) (*models.Reminder, error)
	deleteFn func(context.Context, string) error

	listCalls int
}

func (s *stubClient) List(ctx context.Context, f models.ReminderFilters) (*models.ReminderListResponse, error) {
	s.listCalls++
	return s.listFn(ctx, f)
}

func (s *stubClient) Get(ctx context.Context, id string) (*models.Reminder, error) {
	return s.getFn(ctx, id)
}

func (s *stubClient) Create(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error) {
	return s.createFn(ctx, req)
}

func (s *stubClient) Update(ctx context.Context, id string, req models.UpdateReminderRequest) (*models.Reminder, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubClient) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func reminder(id, title string, status models.ReminderStatus) models.Reminder {
	return models.Reminder{
		ID:                id,
		Title:             title,
		Message:           "Reminder message body for " + title,
		PhoneNumber:       "+12025550123",
		ScheduledDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Timezone:          "America/New_York",
		Status:            status,
		CreatedAt:         time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func listOf(rems ...models.Reminder) *models.ReminderListResponse {
	return &models.ReminderListResponse{Reminders: rems, Total: len(rems), Page: 1, PageSize: 20}
}

func TestListServesCacheWithinTTL(t *testing.T) {
	client := &stubClient{
		listFn: func(context.Context, models.ReminderFilters) (*models.ReminderListResponse, error) {
			return listOf(reminder("r1", "One", models.StatusScheduled)), nil
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	_, err := s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)
	_, err = s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, client.listCalls)

	// A structurally different filter set is its own entry
	_, err = s.List(ctx, models.ReminderFilters{Status: models.StatusScheduled})
	require.NoError(t, err)
	assert.Equal(t, 2, client.listCalls)
}

func TestListErrorKeepsLastKnownGood(t *testing.T) {
	good := listOf(reminder("r1", "One", models.StatusScheduled))
	fail := false
	client := &stubClient{
		listFn: func(context.Context, models.ReminderFilters) (*models.ReminderListResponse, error) {
			if fail {
				return nil, errors.New("server down")
			}
			return good, nil
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	_, err := s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)

	fail = true
	s.Cache().Invalidate(Domain, cache.KindList)
	_, err = s.List(ctx, models.ReminderFilters{})
	require.Error(t, err)

	data, ok := s.Cache().Snapshot(cache.ListKey(Domain, models.ReminderFilters{}))
	require.True(t, ok)
	assert.Equal(t, good, data)
}

func TestCreateInvalidatesListsAndRefetchIncludesRecordOnce(t *testing.T) {
	created := reminder("r2", "Two", models.StatusScheduled)
	server := listOf(reminder("r1", "One", models.StatusScheduled))
	client := &stubClient{
		listFn: func(context.Context, models.ReminderFilters) (*models.ReminderListResponse, error) {
			return server, nil
		},
		createFn: func(_ context.Context, req models.CreateReminderRequest) (*models.Reminder, error) {
			return &created, nil
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	_, err := s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)

	_, err = s.Create(ctx, models.CreateReminderRequest{
		Title:             "Two",
		Message:           "Reminder message body for Two",
		PhoneNumber:       "+12025550123",
		ScheduledDatetime: created.ScheduledDatetime,
		Timezone:          "America/New_York",
	})
	require.NoError(t, err)

	// The server now knows the record; the invalidated entry refetches
	server = listOf(reminder("r1", "One", models.StatusScheduled), created)
	resp, err := s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, client.listCalls)

	count := 0
	for _, r := range resp.Reminders {
		if r.ID == "r2" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCreateFailurePropagates(t *testing.T) {
	client := &stubClient{
		createFn: func(context.Context, models.CreateReminderRequest) (*models.Reminder, error) {
			return nil, errors.New("validation failed")
		},
	}
	s := NewSyncer(client, cache.New(), nil)

	_, err := s.Create(context.Background(), models.CreateReminderRequest{})
	assert.Error(t, err)
}

func TestUpdateAppliesOptimisticValueThenCommitsServerValue(t *testing.T) {
	original := reminder("r1", "Original", models.StatusScheduled)
	serverValue := reminder("r1", "Renamed (server)", models.StatusScheduled)

	entered := make(chan struct{})
	release := make(chan struct{})
	client := &stubClient{
		getFn: func(context.Context, string) (*models.Reminder, error) {
			return &original, nil
		},
		listFn: func(context.Context, models.ReminderFilters) (*models.ReminderListResponse, error) {
			return listOf(original), nil
		},
		updateFn: func(context.Context, string, models.UpdateReminderRequest) (*models.Reminder, error) {
			close(entered)
			<-release
			return &serverValue, nil
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	_, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	_, err = s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)

	title := "Renamed"
	done := make(chan error, 1)
	go func() {
		_, err := s.Update(ctx, "r1", models.UpdateReminderRequest{Title: &title})
		done <- err
	}()

	// While the request is in flight the speculative merge is already cached
	<-entered
	data, ok := s.Cache().Snapshot(cache.DetailKey(Domain, "r1"))
	require.True(t, ok)
	spec := data.(*models.Reminder)
	assert.Equal(t, "Renamed", spec.Title)
	assert.Equal(t, original.Message, spec.Message)

	close(release)
	require.NoError(t, <-done)

	// Confirmed: server value replaces the speculative one, lists go stale
	data, _ = s.Cache().Snapshot(cache.DetailKey(Domain, "r1"))
	assert.Equal(t, &serverValue, data)
	entry, _ := s.Cache().Lookup(cache.ListKey(Domain, models.ReminderFilters{}))
	assert.True(t, entry.Stale)
}

func TestUpdateFailureRestoresSnapshotVerbatim(t *testing.T) {
	original := reminder("r1", "Original", models.StatusScheduled)
	client := &stubClient{
		getFn: func(context.Context, string) (*models.Reminder, error) {
			return &original, nil
		},
		updateFn: func(context.Context, string, models.UpdateReminderRequest) (*models.Reminder, error) {
			return nil, errors.New("conflict")
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	before, err := s.Get(ctx, "r1")
	require.NoError(t, err)

	title := "Renamed"
	_, err = s.Update(ctx, "r1", models.UpdateReminderRequest{Title: &title})
	require.Error(t, err)

	after, ok := s.Cache().Snapshot(cache.DetailKey(Domain, "r1"))
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestOverlappingUpdatesSnapshotSpeculativeValue(t *testing.T) {
	original := reminder("r1", "Original", models.StatusScheduled)
	serverValue := reminder("r1", "First", models.StatusScheduled)

	firstEntered := make(chan struct{})
	firstRelease := make(chan struct{})
	calls := 0
	client := &stubClient{
		getFn: func(context.Context, string) (*models.Reminder, error) {
			return &original, nil
		},
		updateFn: func(context.Context, string, models.UpdateReminderRequest) (*models.Reminder, error) {
			calls++
			if calls == 1 {
				close(firstEntered)
				<-firstRelease
				return &serverValue, nil
			}
			return nil, errors.New("rejected")
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	_, err := s.Get(ctx, "r1")
	require.NoError(t, err)

	first := "First"
	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Update(ctx, "r1", models.UpdateReminderRequest{Title: &first})
		firstDone <- err
	}()
	<-firstEntered

	// The second update snapshots the first's speculative value, so its
	// rollback must restore that value, not the pre-first original.
	second := "Second"
	_, err = s.Update(ctx, "r1", models.UpdateReminderRequest{Title: &second})
	require.Error(t, err)

	data, ok := s.Cache().Snapshot(cache.DetailKey(Domain, "r1"))
	require.True(t, ok)
	assert.Equal(t, "First", data.(*models.Reminder).Title)

	close(firstRelease)
	require.NoError(t, <-firstDone)
}

func TestDeleteOptimisticallyRemovesFromAllListsAndRollsBack(t *testing.T) {
	r1 := reminder("r1", "One", models.StatusScheduled)
	r2 := reminder("r2", "Two", models.StatusCompleted)
	client := &stubClient{
		listFn: func(_ context.Context, f models.ReminderFilters) (*models.ReminderListResponse, error) {
			if f.Status == models.StatusScheduled {
				return listOf(r1), nil
			}
			return listOf(r1, r2), nil
		},
		deleteFn: func(context.Context, string) error {
			return errors.New("server refused")
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	allKey := cache.ListKey(Domain, models.ReminderFilters{})
	schedKey := cache.ListKey(Domain, models.ReminderFilters{Status: models.StatusScheduled})
	_, err := s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)
	_, err = s.List(ctx, models.ReminderFilters{Status: models.StatusScheduled})
	require.NoError(t, err)

	beforeAll, _ := s.Cache().Snapshot(allKey)
	beforeSched, _ := s.Cache().Snapshot(schedKey)

	err = s.Delete(ctx, "r1")
	require.Error(t, err)

	// Every snapshotted list entry is restored exactly as captured
	afterAll, _ := s.Cache().Snapshot(allKey)
	afterSched, _ := s.Cache().Snapshot(schedKey)
	assert.Equal(t, beforeAll, afterAll)
	assert.Equal(t, beforeSched, afterSched)
}

func TestDeleteSuccessEvictsDetailAndInvalidatesLists(t *testing.T) {
	r1 := reminder("r1", "One", models.StatusScheduled)
	client := &stubClient{
		listFn: func(context.Context, models.ReminderFilters) (*models.ReminderListResponse, error) {
			return listOf(r1), nil
		},
		getFn: func(context.Context, string) (*models.Reminder, error) {
			return &r1, nil
		},
		deleteFn: func(context.Context, string) error {
			return nil
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	_, err := s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)
	_, err = s.Get(ctx, "r1")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "r1"))

	_, ok := s.Cache().Lookup(cache.DetailKey(Domain, "r1"))
	assert.False(t, ok)

	entry, ok := s.Cache().Lookup(cache.ListKey(Domain, models.ReminderFilters{}))
	require.True(t, ok)
	assert.True(t, entry.Stale)
	// The optimistic removal is still visible until the refetch lands
	resp := entry.Data.(*models.ReminderListResponse)
	assert.Empty(t, resp.Reminders)
	assert.Equal(t, 0, resp.Total)
}

func TestRefreshListsRefetchesCachedEntries(t *testing.T) {
	r1 := reminder("r1", "One", models.StatusScheduled)
	client := &stubClient{
		listFn: func(context.Context, models.ReminderFilters) (*models.ReminderListResponse, error) {
			return listOf(r1), nil
		},
	}
	s := NewSyncer(client, cache.New(), nil)
	ctx := context.Background()

	_, err := s.List(ctx, models.ReminderFilters{})
	require.NoError(t, err)

	s.RefreshLists(ctx)
	assert.Equal(t, 2, client.listCalls)

	entry, _ := s.Cache().Lookup(cache.ListKey(Domain, models.ReminderFilters{}))
	assert.Equal(t, cache.StateSuccess, entry.State)
	assert.False(t, entry.Stale)
}
