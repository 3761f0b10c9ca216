package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"ai-classroom-be/internal/pkg/logger"
)

// StreamKey identifies one watched interaction log: "<space_id>:<user_id>".
func StreamKey(spaceId, userId string) string {
	return spaceId + ":" + userId
}

// Hub tracks websocket clients per stream key and fans snapshots out to
// them. With a redis client attached, snapshots also cross instance
// boundaries; a nil client degrades to local-only delivery.
type Hub struct {
	// Registered clients map: stream key -> list of clients (a teacher
	// dashboard and a student tab may watch the same log).
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Key] = append(h.clients[client.Key], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"stream_key": client.Key})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Key]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.Key] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.Key]) == 0 {
					delete(h.clients, client.Key)
					h.logger.Info("Hub", "Stream completely unregistered", map[string]interface{}{"stream_key": client.Key})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendSnapshot delivers a full interaction list replacement to every
// client watching the stream key. The message is authoritative: the
// consumer replaces its visible list, it does not merge.
func (h *Hub) SendSnapshot(streamKey string, snapshot interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "snapshot",
		"data": snapshot,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal snapshot", map[string]interface{}{
			"stream_key": streamKey,
			"error":      err.Error(),
		})
		return
	}

	h.deliverLocal(streamKey, data)

	// Publish to redis so instances holding other sockets for this
	// stream deliver the same snapshot.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_key": streamKey,
			"message":    data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) deliverLocal(streamKey string, data []byte) {
	h.mu.RLock()
	clients, found := h.clients[streamKey]
	h.mu.RUnlock()

	if !found {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister path owns closing Send; closing here too
			// would double-close when the hub drops the client.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"stream_key": streamKey})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to one channel carrying
	// {target_key, message}; each delivers to the sockets it holds.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetKey string          `json:"target_key"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.deliverLocal(payload.TargetKey, payload.Message)
	}
}
