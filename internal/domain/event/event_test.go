package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(ObserverFunc(func(Event) { got = append(got, "first") }))
	bus.Subscribe(ObserverFunc(func(Event) { got = append(got, "second") }))

	bus.Publish(Event{Kind: DockableAdded})

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	rec := &Recorder{}
	unsubscribe := bus.Subscribe(rec)

	bus.Publish(Event{Kind: DockablePinned})
	unsubscribe()
	unsubscribe()
	bus.Publish(Event{Kind: DockableUnpinned})

	require.Len(t, rec.Events(), 1)
	assert.Equal(t, DockablePinned, rec.Events()[0].Kind)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_NilPublishIsNoop(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(Event{Kind: DockableClosed}) })
}

func TestKind_IsStructural(t *testing.T) {
	assert.True(t, DockableMoved.IsStructural())
	assert.True(t, WindowRemoved.IsStructural())
	assert.False(t, ActiveDockableChanged.IsStructural())
	assert.False(t, FocusedDockableChanged.IsStructural())
	assert.Equal(t, "dockable_hidden", DockableHidden.String())
}
