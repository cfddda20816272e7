package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

type saverFunc func(ctx context.Context, id entity.WorkspaceID, name string) (*entity.DockWorkspace, error)

func (f saverFunc) Save(ctx context.Context, id entity.WorkspaceID, name string) (*entity.DockWorkspace, error) {
	return f(ctx, id, name)
}

type countingSaver struct {
	mu    sync.Mutex
	calls int
	errs  []error
	saved chan entity.WorkspaceID
}

func newCountingSaver(errs ...error) *countingSaver {
	return &countingSaver{errs: errs, saved: make(chan entity.WorkspaceID, 8)}
}

func (c *countingSaver) Save(_ context.Context, id entity.WorkspaceID, name string) (*entity.DockWorkspace, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	c.saved <- id
	return &entity.DockWorkspace{ID: id, Name: name}, nil
}

func (c *countingSaver) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestService_Save_RetriesBusyAndSucceeds(t *testing.T) {
	saver := newCountingSaver(errors.New("save workspace main: database is locked (5)"))
	svc := NewService(saver, 1)
	svc.retryDelay = time.Millisecond
	svc.workspace = "main"
	svc.dirty = true

	err := svc.save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, saver.count())
	assert.False(t, svc.Dirty())
}

func TestService_Save_GivesUpAfterRetries(t *testing.T) {
	busy := errors.New("database is locked")
	calls := 0
	svc := NewService(saverFunc(func(context.Context, entity.WorkspaceID, string) (*entity.DockWorkspace, error) {
		calls++
		return nil, busy
	}), 1)
	svc.retryDelay = time.Millisecond
	svc.workspace = "main"
	svc.dirty = true

	err := svc.save(context.Background())

	require.ErrorIs(t, err, busy)
	assert.Equal(t, svc.retries+1, calls)
	assert.True(t, svc.Dirty())
}

func TestService_Save_DoesNotRetryOtherErrors(t *testing.T) {
	readOnly := errors.New("attempt to write a readonly database")
	saver := newCountingSaver(readOnly)
	svc := NewService(saver, 1)
	svc.retryDelay = time.Millisecond
	svc.workspace = "main"
	svc.dirty = true

	err := svc.save(context.Background())

	require.ErrorIs(t, err, readOnly)
	assert.Equal(t, 1, saver.count())
	assert.True(t, svc.Dirty())
}

func TestService_Save_WaitsForWorkspace(t *testing.T) {
	saver := newCountingSaver()
	svc := NewService(saver, 1)
	svc.dirty = true

	require.NoError(t, svc.save(context.Background()))

	assert.Zero(t, saver.count())
	assert.True(t, svc.Dirty())
}

func TestService_SetWorkspace_FlushesPendingChanges(t *testing.T) {
	saver := newCountingSaver()
	svc := NewService(saver, 1000)
	svc.Start(context.Background())
	svc.dirty = true

	svc.SetWorkspace("Default", "Default layout")

	select {
	case id := <-saver.saved:
		assert.Equal(t, entity.WorkspaceID("Default"), id)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected pending changes to be saved after SetWorkspace")
	}
	assert.False(t, svc.Dirty())
}

func TestService_ObserveDebouncesStructuralEvents(t *testing.T) {
	saver := newCountingSaver()
	svc := NewService(saver, 20)
	svc.Start(context.Background())
	svc.SetWorkspace("main", "")
	bus := event.NewBus()
	unsubscribe := svc.Observe(bus)
	defer unsubscribe()

	bus.Publish(event.Event{Kind: event.ActiveDockableChanged})
	assert.False(t, svc.Dirty(), "selection changes are not structural")

	for i := 0; i < 5; i++ {
		bus.Publish(event.Event{Kind: event.DockableMoved})
	}

	select {
	case <-saver.saved:
	case <-time.After(time.Second):
		t.Fatal("expected a debounced save")
	}
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, saver.count())
}

func TestService_StopSavesPendingChanges(t *testing.T) {
	saver := newCountingSaver()
	svc := NewService(saver, 60_000)
	svc.Start(context.Background())
	svc.SetWorkspace("main", "")
	svc.MarkDirty()

	require.NoError(t, svc.Stop(context.Background()))

	assert.Equal(t, 1, saver.count())
	assert.False(t, svc.Dirty())
}

func TestService_DispatcherRunsSaves(t *testing.T) {
	saver := newCountingSaver()
	svc := NewService(saver, 1)
	dispatched := make(chan struct{}, 1)
	svc.SetDispatcher(func(fn func()) {
		fn()
		dispatched <- struct{}{}
	})
	svc.Start(context.Background())
	svc.SetWorkspace("main", "")

	svc.MarkDirty()

	select {
	case <-dispatched:
	case <-time.After(time.Second):
		t.Fatal("expected the save to go through the dispatcher")
	}
	assert.Equal(t, 1, saver.count())
}
