package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1 << 20 // audio chunks ride the same connection
	sendBuffer     = 256
)

// Client represents one live connection. The ID is minted per upgrade
// and is the connection identifier used throughout the live core: a
// reconnecting user gets a fresh Client with a fresh ID.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	closed bool // guarded by the hub mutex
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
	}
}

// Hub tracks which connections belong to which room and fans frames out
// to them. It knows nothing about debate semantics; the EventRouter
// decides what to send where.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]map[*Client]bool
	clientRoom map[*Client]string
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		clientRoom: make(map[*Client]string),
		logger:     logger,
	}
}

// HandleConnection runs the read loop for a freshly upgraded connection
// and owns its lifecycle: the write pump is started here and all cleanup
// happens when the read loop exits, whatever the reason.
func (h *Hub) HandleConnection(client *Client, router *EventRouter) {
	defer func() {
		router.HandleDisconnect(client)
		h.closeClient(client)
		client.Conn.Close()
	}()

	go h.writePump(client)
	h.readPump(client, router)
}

func (h *Hub) readPump(client *Client, router *EventRouter) {
	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Str("conn_id", client.ID).Err(err).Msg("websocket unexpected close")
			}
			break
		}
		router.HandleMessage(client, message)
	}
}

func (h *Hub) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// JoinRoom associates the client with roomCode. A client is in at most
// one room; joining a second room detaches it from the first.
func (h *Hub) JoinRoom(client *Client, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.clientRoom[client]; ok && prev != roomCode {
		h.detach(client, prev)
	}

	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[*Client]bool)
	}
	h.rooms[roomCode][client] = true
	h.clientRoom[client] = roomCode
}

// LeaveRoom detaches the client from its room, if any.
func (h *Hub) LeaveRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if roomCode, ok := h.clientRoom[client]; ok {
		h.detach(client, roomCode)
	}
}

// detach removes the client from a room's set. Caller holds the lock.
func (h *Hub) detach(client *Client, roomCode string) {
	if clients, ok := h.rooms[roomCode]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, roomCode)
		}
	}
	delete(h.clientRoom, client)
}

// RoomOf returns the room the client is currently in.
func (h *Hub) RoomOf(client *Client) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	roomCode, ok := h.clientRoom[client]
	return roomCode, ok
}

// RoomClients returns the number of connections in a room.
func (h *Hub) RoomClients(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

// SendTo delivers an event to a single connection.
func (h *Hub) SendTo(client *Client, event string, data interface{}) {
	frame, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Str("event", event).Err(err).Msg("encode event")
		return
	}

	h.mu.RLock()
	slow := h.deliver(client, frame)
	h.mu.RUnlock()

	if slow {
		h.evict(client)
	}
}

// BroadcastToRoom delivers an event to every connection in the room.
func (h *Hub) BroadcastToRoom(roomCode, event string, data interface{}) {
	h.broadcast(roomCode, nil, event, data)
}

// BroadcastToOthers delivers an event to every connection in the room
// except the sender.
func (h *Hub) BroadcastToOthers(roomCode string, sender *Client, event string, data interface{}) {
	h.broadcast(roomCode, sender, event, data)
}

func (h *Hub) broadcast(roomCode string, exclude *Client, event string, data interface{}) {
	frame, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Str("event", event).Err(err).Msg("encode event")
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.rooms[roomCode] {
		if client == exclude {
			continue
		}
		if h.deliver(client, frame) {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// A full send buffer means the client stopped draining; drop the
	// connection rather than block the room.
	for _, client := range slow {
		h.evict(client)
	}
}

// deliver queues a frame without blocking. Reports true when the send
// buffer is full. Caller holds at least a read lock; closeClient takes
// the write lock, so the channel cannot be closed mid-send.
func (h *Hub) deliver(client *Client, frame []byte) bool {
	if client.closed {
		return false
	}
	select {
	case client.Send <- frame:
		return false
	default:
		return true
	}
}

// closeClient detaches the client and closes its send channel exactly
// once. Safe against concurrent broadcasts.
func (h *Hub) closeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.closed {
		return
	}
	client.closed = true
	if roomCode, ok := h.clientRoom[client]; ok {
		h.detach(client, roomCode)
	}
	close(client.Send)
}

// evict closes the underlying connection; the read loop notices and the
// normal disconnect path finishes the cleanup.
func (h *Hub) evict(client *Client) {
	h.logger.Warn().Str("conn_id", client.ID).Msg("send buffer full, dropping connection")
	client.Conn.Close()
}

func encodeEvent(event string, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
