package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyEvent(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestPumpEventsForwardsUntilPollEnds(t *testing.T) {
	queue := []tcell.Event{keyEvent('1'), keyEvent('2')}
	poll := func() tcell.Event {
		if len(queue) == 0 {
			return nil
		}
		ev := queue[0]
		queue = queue[1:]
		return ev
	}

	out := make(chan tcell.Event, 4)
	pumpEvents(poll, out, make(chan struct{}))

	require.Len(t, out, 2)
	assert.Equal(t, '1', (<-out).(*tcell.EventKey).Rune())
	assert.Equal(t, '2', (<-out).(*tcell.EventKey).Rune())
}

func TestPumpEventsStopsWhenReaderIsGone(t *testing.T) {
	poll := func() tcell.Event { return keyEvent('x') }
	out := make(chan tcell.Event, 1)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		pumpEvents(poll, out, done)
		close(finished)
	}()

	// канал заполнен, читателя больше нет
	require.Eventually(t, func() bool { return len(out) == 1 }, time.Second, time.Millisecond)
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("event pump still blocked after done was closed")
	}
}
