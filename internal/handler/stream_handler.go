package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"ai-classroom-be/internal/pkg/logger"
	internalWS "ai-classroom-be/internal/websocket"
)

// StreamHandler upgrades teacher dashboards and student tabs onto the
// live interaction snapshot stream.
type StreamHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewStreamHandler(hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	spaceId := c.Query("space_id")
	userId := c.Query("user_id")

	if spaceId == "" || userId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "space_id and user_id are required"})
	}
	if _, err := uuid.Parse(spaceId); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid space_id"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		streamKey := internalWS.StreamKey(spaceId, userId)
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting WebSocket session", map[string]interface{}{"stream_key": streamKey})
			internalWS.ServeWs(h.hub, conn, streamKey)
			h.logger.Info("StreamHandler", "WebSocket session ended", map[string]interface{}{"stream_key": streamKey})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the stream route on the app root.
func (h *StreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/interactions", h.ServeWs)
}
