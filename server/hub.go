package server

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"snakeduel/game"
	"snakeduel/protocol"
)

// Hub is the single owner of a match. Every inbound action and every
// scheduler step runs under mu, and outbound messages are queued before mu
// is released, so clients see events in the order the match produced them.
type Hub struct {
	mu    sync.Mutex
	match *game.Match
	conns *ConnManager
	tick  time.Duration
}

// NewHub binds a hub to a match. tick is the scheduler interval.
func NewHub(match *game.Match, tick time.Duration) *Hub {
	return &Hub{
		match: match,
		conns: NewConnManager(),
		tick:  tick,
	}
}

// Run drives the match at a fixed tick until ctx is done
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	log.Printf("game loop started, tick %s", h.tick)

	for {
		select {
		case <-ctx.Done():
			log.Printf("game loop stopped")
			return
		case <-ticker.C:
			h.Step(h.tick)
		}
	}
}

// Step advances the match once
func (h *Hub) Step(dt time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dispatch(h.match.Step(dt))
}

// Connect admits a connection. When both seats are taken the connection
// gets "full" and is closed, and nothing else changes.
func (h *Hub) Connect(id string, c Sender) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.match.CanAdmit() {
		log.Printf("rejecting %s: match full", id)
		_ = c.Send(protocol.MsgFull, nil)
		_ = c.Close()
		return false
	}
	h.conns.Add(id, c)
	log.Printf("player connected: %s", id)
	_ = c.Send(protocol.MsgWelcome, protocol.Welcome{ID: id, MapSize: h.match.Rules().MapSize})
	return true
}

// Disconnect forgets a connection. If it held a seat the match drops back
// to the lobby.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns.Get(id); !ok {
		return
	}
	h.conns.Remove(id)
	log.Printf("player disconnected: %s", id)
	h.dispatch(h.match.RemovePlayer(id))
}

// SetName registers the connection as a player
func (h *Hub) SetName(id, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns.Get(id)
	if !ok {
		return
	}
	events, err := h.match.AddPlayer(id, name)
	if errors.Is(err, game.ErrMatchFull) {
		log.Printf("rejecting setName from %s: match full", id)
		h.conns.Remove(id)
		_ = c.Send(protocol.MsgFull, nil)
		_ = c.Close()
		return
	}
	h.dispatch(events)
}

// Move turns the player's snake
func (h *Hub) Move(id string, d game.Direction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.match.SetHeading(id, d)
}

// UseSkill triggers an ability for the player
func (h *Hub) UseSkill(id string, s game.Skill) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dispatch(h.match.UseSkill(id, s))
}

// Restart starts a new round when both seats are filled
func (h *Hub) Restart(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.match.Player(id); !ok {
		return
	}
	h.dispatch(h.match.Restart())
}

// Status is a point-in-time summary for the status endpoint
type Status struct {
	Phase       string               `json:"phase"`
	Connections int                  `json:"connections"`
	Players     []protocol.PlayerDTO `json:"players"`
	Food        *protocol.Point      `json:"food,omitempty"`
}

// Status reports the match state
func (h *Hub) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	st := Status{
		Phase:       h.match.Phase().String(),
		Connections: h.conns.Count(),
		Players:     playerDTOs(h.match.Players()),
	}
	if f, ok := h.match.Food(); ok {
		p := pointDTO(f)
		st.Food = &p
	}
	return st
}

// dispatch sends events to their recipients. Caller must hold h.mu.
func (h *Hub) dispatch(events []game.Event) {
	for _, ev := range events {
		t, payload := encodeEvent(ev)
		if ev.To != "" {
			if c, ok := h.conns.Get(ev.To); ok {
				_ = c.Send(t, payload)
			}
			continue
		}
		for id, c := range h.conns.Snapshot() {
			if err := c.Send(t, payload); err != nil {
				log.Printf("send %s to %s: %v", t, id, err)
			}
		}
	}
}
