package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_SubscribeAndEmit(t *testing.T) {
	b := NewBroadcaster(4)
	defer b.Close()

	ch, unsub := b.Subscribe()
	defer unsub()

	b.Emit("config-changed", map[string]interface{}{"source": "test"})

	select {
	case ev := <-ch:
		assert.Equal(t, "config-changed", ev.Name)
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.Timestamp.IsZero())
		assert.Equal(t, "test", ev.Payload["source"])
	case <-time.After(time.Second):
		t.Fatal("expected event, got none")
	}
}

func TestBroadcaster_MultipleSubscribers(t *testing.T) {
	b := NewBroadcaster(4)
	defer b.Close()

	ch1, unsub1 := b.Subscribe()
	defer unsub1()
	ch2, unsub2 := b.Subscribe()
	defer unsub2()

	require.Equal(t, 2, b.SubscriberCount())

	b.Emit("server-added", map[string]interface{}{"name": "dice"})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "server-added", ev.Name)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBroadcaster_UniqueEventIDs(t *testing.T) {
	b := NewBroadcaster(4)
	defer b.Close()

	ch, unsub := b.Subscribe()
	defer unsub()

	b.Emit("config-changed", nil)
	b.Emit("config-changed", nil)

	first := <-ch
	second := <-ch
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster(1)
	defer b.Close()

	_, unsub := b.Subscribe()
	defer unsub()

	done := make(chan struct{})
	go func() {
		// Buffer size is 1; the second emit must drop, not block.
		b.Emit("config-changed", nil)
		b.Emit("config-changed", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a full subscriber channel")
	}
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := NewBroadcaster(4)
	defer b.Close()

	ch, unsub := b.Subscribe()
	unsub()

	assert.Equal(t, 0, b.SubscriberCount())

	_, open := <-ch
	assert.False(t, open, "channel should be closed after unsubscribe")

	// Double unsubscribe is a no-op.
	unsub()
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster(4)
	ch1, _ := b.Subscribe()
	ch2, _ := b.Subscribe()

	b.Close()

	assert.Equal(t, 0, b.SubscriberCount())
	_, open := <-ch1
	assert.False(t, open)
	_, open = <-ch2
	assert.False(t, open)
}
