package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Oganesson0221/debate-ai/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict origins once the frontend host is fixed
	},
}

// WebSocketHandler upgrades connections for the live debate protocol.
// Every upgrade mints a fresh connection id; room membership and
// participant identity are established later by the join-room event.
type WebSocketHandler struct {
	hub    *service.Hub
	router *service.EventRouter
}

func NewWebSocketHandler(hub *service.Hub, router *service.EventRouter) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		router: router,
	}
}

// HandleWebSocket upgrades the request and runs the connection until it
// drops. Blocks for the lifetime of the connection.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}

	client := service.NewClient(uuid.NewString(), conn)
	h.hub.HandleConnection(client, h.router)
}
