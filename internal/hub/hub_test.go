package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndBroadcast(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(7, client)
	defer h.Unsubscribe(7, client)

	h.Broadcast(7, Event{Type: EventTeamMessage, Payload: "hello"})

	select {
	case raw := <-client:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, EventTeamMessage, event.Type)
		assert.Equal(t, "hello", event.Payload)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBroadcastScopedToTeam(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(1, client)
	defer h.Unsubscribe(1, client)

	h.Broadcast(2, Event{Type: EventTeamMessage, Payload: "elsewhere"})
	assert.Empty(t, client)
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(3, client)
	require.Equal(t, 1, h.Subscribers(3))

	h.Unsubscribe(3, client)
	assert.Equal(t, 0, h.Subscribers(3))

	_, open := <-client
	assert.False(t, open)

	// Unsubscribing twice must not panic on the closed channel.
	h.Unsubscribe(3, client)
}

func TestBroadcastNoSubscribers(t *testing.T) {
	h := NewHub()
	h.Broadcast(99, Event{Type: EventTeamMessage, Payload: "void"})
}

func TestBroadcastSkipsFullClient(t *testing.T) {
	h := NewHub()
	slow := make(Client) // unbuffered and never read
	fast := make(Client, 1)
	h.Subscribe(5, slow)
	h.Subscribe(5, fast)
	defer h.Unsubscribe(5, slow)
	defer h.Unsubscribe(5, fast)

	h.Broadcast(5, Event{Type: EventTeamMessage, Payload: "go"})

	select {
	case <-fast:
	case <-time.After(time.Second):
		t.Fatal("fast client starved by slow client")
	}
}
