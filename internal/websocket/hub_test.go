package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nopLogger{})
	go hub.Run()
	return hub
}

func clientCount(h *Hub) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func TestBroadcastReachesRegisteredClients(t *testing.T) {
	hub := newRunningHub(t)

	client := &Client{Hub: hub, Id: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- client
	require.Eventually(t, func() bool { return clientCount(hub) == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast("CARD_UPDATED", map[string]interface{}{"description": "move"})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "CARD_UPDATED")
		assert.Contains(t, string(msg), "move")
	case <-time.After(time.Second):
		t.Fatal("client did not receive broadcast")
	}
}

func TestBroadcastDropsSlowClientWithoutCrashing(t *testing.T) {
	hub := newRunningHub(t)

	fast := &Client{Hub: hub, Id: uuid.New(), Send: make(chan []byte, 4)}
	slow := &Client{Hub: hub, Id: uuid.New(), Send: make(chan []byte, 1)}
	slow.Send <- []byte("stuck")

	hub.register <- fast
	hub.register <- slow
	require.Eventually(t, func() bool { return clientCount(hub) == 2 }, time.Second, 10*time.Millisecond)

	hub.Broadcast("CARD_UPDATED", map[string]interface{}{"description": "a"})

	// The slow client gets unregistered and its channel closed exactly once.
	require.Eventually(t, func() bool { return clientCount(hub) == 1 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, []byte("stuck"), <-slow.Send)
	_, open := <-slow.Send
	assert.False(t, open, "slow client's channel must be closed by the hub")

	// The hub is still alive and serving the remaining client.
	<-fast.Send
	hub.Broadcast("CARD_UPDATED", map[string]interface{}{"description": "b"})
	select {
	case msg := <-fast.Send:
		assert.Contains(t, string(msg), "\"b\"")
	case <-time.After(time.Second):
		t.Fatal("fast client did not receive broadcast after a slow client was dropped")
	}
}
