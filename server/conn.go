package server

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snakeduel/game"
	"snakeduel/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
	sendQueueSize  = 64
)

var errConnClosed = errors.New("connection closed")

// Sender is the hub's view of a connection
type Sender interface {
	Send(t string, payload any) error
	Close() error
}

// Conn manages a single WebSocket session. Writes go through a buffered
// queue drained by WritePump so the hub never blocks on a slow client.
type Conn struct {
	ID    string
	ws    *websocket.Conn
	codec protocol.Codec

	mu     sync.Mutex // protects send and closed
	send   chan []byte
	closed bool
}

// NewConn wraps an upgraded socket
func NewConn(ws *websocket.Conn, codec protocol.Codec) *Conn {
	return &Conn{
		ID:    uuid.New().String(),
		ws:    ws,
		codec: codec,
		send:  make(chan []byte, sendQueueSize),
	}
}

// Send encodes a message and queues it. A full queue closes the connection.
func (c *Conn) Send(t string, payload any) error {
	data, err := c.codec.Encode(t, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		log.Printf("send queue full for %s, dropping connection", c.ID)
		c.closeLocked()
		return errConnClosed
	}
}

// Close stops accepting messages. Already queued messages are still written
// before the socket closes.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *Conn) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// WritePump drains the send queue and keeps the connection alive with pings.
// It owns all writes to the socket and closes it on exit.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	msgType := websocket.TextMessage
	if c.codec.Binary() {
		msgType = websocket.BinaryMessage
	}

	for {
		select {
		case data, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(msgType, data); err != nil {
				log.Printf("write error for %s: %v", c.ID, err)
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// ReadLoop handles incoming messages until the client disconnects, then
// tells the hub. Malformed frames and unknown kinds are logged and skipped.
func (c *Conn) ReadLoop(h *Hub) {
	defer func() {
		h.Disconnect(c.ID)
		c.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		env, err := c.codec.DecodeEnvelope(raw)
		if err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			continue
		}
		if err := c.dispatch(h, env); err != nil {
			log.Printf("bad %q from %s: %v", env.T, c.ID, err)
		}
	}
}

func (c *Conn) dispatch(h *Hub, env protocol.Envelope) error {
	switch env.T {
	case protocol.MsgSetName:
		msg, err := protocol.DecodePayload[protocol.SetName](c.codec, env)
		if err != nil {
			return err
		}
		h.SetName(c.ID, msg.Name)
	case protocol.MsgMove:
		msg, err := protocol.DecodePayload[protocol.Move](c.codec, env)
		if err != nil {
			return err
		}
		if d, ok := game.ParseDirection(msg.Dir); ok {
			h.Move(c.ID, d)
		}
	case protocol.MsgUseSkill:
		msg, err := protocol.DecodePayload[protocol.UseSkill](c.codec, env)
		if err != nil {
			return err
		}
		if s, ok := game.ParseSkill(msg.Skill); ok {
			h.UseSkill(c.ID, s)
		}
	case protocol.MsgRestart:
		h.Restart(c.ID)
	}
	return nil
}

// ConnManager tracks every admitted connection, player or not
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]Sender
}

// NewConnManager creates an empty connection manager
func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]Sender)}
}

// Add registers a connection
func (m *ConnManager) Add(id string, c Sender) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[id] = c
}

// Remove unregisters a connection
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Get returns a connection by ID
func (m *ConnManager) Get(id string) (Sender, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conns[id]
	return c, ok
}

// Count returns the number of active connections
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// Snapshot returns a copy of all current connections
func (m *ConnManager) Snapshot() map[string]Sender {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Sender, len(m.conns))
	for id, c := range m.conns {
		out[id] = c
	}
	return out
}
