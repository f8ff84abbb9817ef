package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"snakeduel/config"
)

// ErrMatchFull is returned when a third player tries to register
var ErrMatchFull = errors.New("match is full")

// Phase is the match lifecycle state
type Phase uint8

const (
	AwaitingPlayers Phase = iota
	Running
	Over
)

func (p Phase) String() string {
	switch p {
	case AwaitingPlayers:
		return "awaitingPlayers"
	case Running:
		return "running"
	case Over:
		return "over"
	}
	return "unknown"
}

// Rules are the tunables a match plays by
type Rules struct {
	MapSize         int
	Capacity        int
	BaseInterval    time.Duration
	FastInterval    time.Duration
	SlowInterval    time.Duration
	SpeedUpDuration time.Duration
	SlowDuration    time.Duration
	ReduceChance    float64
	ReduceMax       int
	Colors          []string
}

// DefaultRules uses the built-in configuration
func DefaultRules() Rules {
	return RulesFrom(config.Defaults())
}

// RulesFrom extracts match rules from server settings
func RulesFrom(s config.Settings) Rules {
	return Rules{
		MapSize:         s.MapSize,
		Capacity:        config.MaxPlayers,
		BaseInterval:    s.BaseInterval,
		FastInterval:    s.FastInterval,
		SlowInterval:    s.SlowInterval,
		SpeedUpDuration: s.SpeedUpDuration,
		SlowDuration:    s.SlowDuration,
		ReduceChance:    s.ReduceChance,
		ReduceMax:       s.ReduceMax,
		Colors:          config.PlayerColors,
	}
}

// Match holds all game state for one two-seat session. It is not safe for
// concurrent use; the owner serializes every call.
type Match struct {
	rules   Rules
	rng     Rand
	phase   Phase
	players map[string]*Player
	order   []*Player // join order, drives per-tick iteration
	food    *Coord
	clock   time.Duration // sum of Step durations
	grid    *OccupancyGrid
}

// NewMatch creates an empty match awaiting players
func NewMatch(rules Rules, rng Rand) *Match {
	if rng == nil {
		rng = NewRand()
	}
	if rules.Capacity <= 0 {
		rules.Capacity = config.MaxPlayers
	}
	return &Match{
		rules:   rules,
		rng:     rng,
		phase:   AwaitingPlayers,
		players: make(map[string]*Player),
		grid:    NewOccupancyGrid(),
	}
}

// Rules returns the rules the match was built with
func (m *Match) Rules() Rules { return m.rules }

// Phase returns the current lifecycle state
func (m *Match) Phase() Phase { return m.phase }

// NumPlayers returns the number of registered players
func (m *Match) NumPlayers() int { return len(m.order) }

// CanAdmit reports whether another player could still register
func (m *Match) CanAdmit() bool { return len(m.order) < m.rules.Capacity }

// Food returns the live food cell, if any
func (m *Match) Food() (Coord, bool) {
	if m.food == nil {
		return Coord{}, false
	}
	return *m.food, true
}

// Player looks up a player by connection id
func (m *Match) Player(id string) (*Player, bool) {
	p, ok := m.players[id]
	return p, ok
}

// Players returns views of all players in join order
func (m *Match) Players() []PlayerView {
	out := make([]PlayerView, 0, len(m.order))
	for _, p := range m.order {
		out = append(out, p.View())
	}
	return out
}

// AliveCount returns the number of living players
func (m *Match) AliveCount() int {
	n := 0
	for _, p := range m.order {
		if p.Alive {
			n++
		}
	}
	return n
}

// AddPlayer registers a connection as a player. A second call for the same
// id only renames. When the second seat fills the match resets and starts.
func (m *Match) AddPlayer(id, name string) ([]Event, error) {
	if p, ok := m.players[id]; ok {
		if name != "" {
			p.Name = name
		}
		return []Event{m.lobbyEvent(len(m.order) < m.rules.Capacity)}, nil
	}
	if !m.CanAdmit() {
		return nil, ErrMatchFull
	}

	if name == "" {
		name = fmt.Sprintf("Player %d", len(m.order)+1)
	}
	p := newPlayer(id, name, m.freeColor(), randomCell(m.rng, m.rules.MapSize))
	m.players[id] = p
	m.order = append(m.order, p)
	log.Printf("player joined: %s (%s) color=%s players=%d", name, id, p.Color, len(m.order))

	events := []Event{m.lobbyEvent(len(m.order) < m.rules.Capacity)}
	if len(m.order) == m.rules.Capacity && m.phase != Running {
		events = append(events, m.start())
	}
	return events, nil
}

// RemovePlayer drops a player and sends the match back to the lobby
func (m *Match) RemovePlayer(id string) []Event {
	p, ok := m.players[id]
	if !ok {
		return nil
	}
	delete(m.players, id)
	for i, q := range m.order {
		if q == p {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.phase != AwaitingPlayers {
		log.Printf("match halted: %s left", p.Name)
	}
	m.phase = AwaitingPlayers
	return []Event{m.lobbyEvent(true)}
}

// Restart resets and resumes play. Ignored unless every seat is filled.
func (m *Match) Restart() []Event {
	if len(m.order) != m.rules.Capacity {
		return nil
	}
	return []Event{m.start()}
}

// Reset respawns every player at a random cell and places new food.
// Spawn cells are not checked against each other or the food.
func (m *Match) Reset() {
	for _, p := range m.order {
		p.respawn(randomCell(m.rng, m.rules.MapSize))
	}
	m.spawnFood()
}

func (m *Match) start() Event {
	m.Reset()
	m.phase = Running
	food := *m.food
	log.Printf("match started: food at (%d,%d)", food.X, food.Y)
	return Event{Kind: EventStart, Food: &food}
}

// SetHeading turns a living player's snake. Unknown or dead players are ignored.
func (m *Match) SetHeading(id string, d Direction) bool {
	p, ok := m.players[id]
	if !ok || !p.Alive {
		return false
	}
	p.Heading = d
	return true
}

// MoveInterval returns the move interval currently in effect for id
func (m *Match) MoveInterval(id string) (time.Duration, bool) {
	p, ok := m.players[id]
	if !ok {
		return 0, false
	}
	return p.interval(m.rules.BaseInterval, m.clock), true
}

// opponent returns the other seated player
func (m *Match) opponent(id string) (*Player, bool) {
	for _, p := range m.order {
		if p.ID != id {
			return p, true
		}
	}
	return nil, false
}

// freeColor picks the first palette color no current player wears
func (m *Match) freeColor() string {
	if len(m.rules.Colors) == 0 {
		return ""
	}
	for _, c := range m.rules.Colors {
		used := false
		for _, p := range m.order {
			if p.Color == c {
				used = true
				break
			}
		}
		if !used {
			return c
		}
	}
	return m.rules.Colors[len(m.order)%len(m.rules.Colors)]
}

func (m *Match) lobbyEvent(waiting bool) Event {
	return Event{Kind: EventLobby, Players: m.Players(), Waiting: waiting}
}
