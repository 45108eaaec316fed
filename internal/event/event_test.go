package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchReachesSubscribers(t *testing.T) {
	d := NewDispatcher()
	var got []PointerMove
	d.SubscribeFunc(PointerMoved, func(e Event) {
		got = append(got, e.Data.(PointerMove))
	})
	d.SubscribeFunc(ViewportResized, func(Event) {
		t.Fatal("resize listener must not see pointer events")
	})

	d.Dispatch(Event{Type: PointerMoved, Data: PointerMove{X: 3, Y: 4}})

	require.Len(t, got, 1)
	assert.Equal(t, 3.0, got[0].X)
	assert.Equal(t, 4.0, got[0].Y)
}

func TestCancelRemovesListener(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	sub := d.SubscribeFunc(PointerMoved, func(Event) { calls++ })
	require.Equal(t, 1, d.Count(PointerMoved))

	sub.Cancel()
	sub.Cancel()
	d.Dispatch(Event{Type: PointerMoved})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, d.Count(PointerMoved))
	assert.False(t, sub.Active())
}

func TestCancelDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var second *Subscription
	firstCalls, secondCalls := 0, 0
	d.SubscribeFunc(PointerMoved, func(Event) {
		firstCalls++
		second.Cancel()
	})
	second = d.SubscribeFunc(PointerMoved, func(Event) { secondCalls++ })

	d.Dispatch(Event{Type: PointerMoved})
	d.Dispatch(Event{Type: PointerMoved})

	assert.Equal(t, 2, firstCalls)
	assert.Equal(t, 0, secondCalls)
	assert.Equal(t, 1, d.Count(PointerMoved))
}

func TestSubscribeDuringDispatchWaitsForNextEvent(t *testing.T) {
	d := NewDispatcher()
	late := 0
	d.SubscribeFunc(ViewportResized, func(Event) {
		if d.Count(ViewportResized) == 1 {
			d.SubscribeFunc(ViewportResized, func(Event) { late++ })
		}
	})

	d.Dispatch(Event{Type: ViewportResized})
	assert.Equal(t, 0, late)

	d.Dispatch(Event{Type: ViewportResized})
	assert.Equal(t, 1, late)
}
