// internal/handlers/ws/ws_handler.go
package ws

import (
	"net/http"

	wsocket "crmdash-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades dashboard clients onto the event hub.
type WSHandler struct {
	hub    *wsocket.Hub
	logger *zap.Logger
}

func NewWSHandler(hub *wsocket.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

func (h *WSHandler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := wsocket.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
