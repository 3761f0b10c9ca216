package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func (h *Hub) clientCount(streamKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[streamKey])
}

func TestHubDropsSlowClientWithoutDying(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	key := StreamKey("space-1", "student-1")

	// A client whose buffer is already full: the next delivery cannot
	// be queued and the hub must drop the connection.
	slow := &Client{Hub: hub, Key: key, Send: make(chan []byte, 1)}
	slow.Send <- []byte("backlog")

	hub.register <- slow
	require.Eventually(t, func() bool {
		return hub.clientCount(key) == 1
	}, time.Second, 5*time.Millisecond)

	hub.SendSnapshot(key, map[string]string{"state": "full"})

	assert.Eventually(t, func() bool {
		return hub.clientCount(key) == 0
	}, time.Second, 5*time.Millisecond)

	// The unregister path is the sole owner of channel closure.
	<-slow.Send
	select {
	case _, open := <-slow.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("Send channel was never closed")
	}

	// The hub goroutine must survive the drop and keep serving.
	healthy := &Client{Hub: hub, Key: key, Send: make(chan []byte, 4)}
	hub.register <- healthy
	require.Eventually(t, func() bool {
		return hub.clientCount(key) == 1
	}, time.Second, 5*time.Millisecond)

	hub.SendSnapshot(key, map[string]string{"state": "live"})

	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), `"type":"snapshot"`)
	case <-time.After(time.Second):
		t.Fatal("healthy client never received a snapshot")
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	key := StreamKey("space-2", "student-2")
	client := &Client{Hub: hub, Key: key, Send: make(chan []byte, 1)}

	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.clientCount(key) == 1
	}, time.Second, 5*time.Millisecond)

	// readPump and the drop path can both queue the same client.
	hub.unregister <- client
	hub.unregister <- client

	assert.Eventually(t, func() bool {
		return hub.clientCount(key) == 0
	}, time.Second, 5*time.Millisecond)

	// Still alive after the double unregister.
	other := &Client{Hub: hub, Key: key, Send: make(chan []byte, 1)}
	hub.register <- other
	assert.Eventually(t, func() bool {
		return hub.clientCount(key) == 1
	}, time.Second, 5*time.Millisecond)
}
