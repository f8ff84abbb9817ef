package game

import "time"

// speedOverride replaces a player's move interval until the match clock
// passes Until
type speedOverride struct {
	Interval time.Duration
	Until    time.Duration
}

// Player is one connection's seat in the match
type Player struct {
	ID      string
	Name    string
	Snake   []Coord // index 0 = head
	Heading Direction
	Alive   bool
	Score   int
	Color   string

	override *speedOverride
	acc      time.Duration // time banked toward the next move
}

// newPlayer creates a single-segment snake at start, heading right
func newPlayer(id, name, color string, start Coord) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Snake:   []Coord{start},
		Heading: Right,
		Alive:   true,
		Color:   color,
	}
}

// Head returns the head segment
func (p *Player) Head() Coord {
	return p.Snake[0]
}

// Len returns the number of segments
func (p *Player) Len() int {
	return len(p.Snake)
}

// respawn puts the player back to a fresh single-segment snake at start
func (p *Player) respawn(start Coord) {
	p.Snake = []Coord{start}
	p.Heading = Right
	p.Alive = true
	p.Score = 0
	p.override = nil
	p.acc = 0
}

// interval returns the move interval in effect at clock time now
func (p *Player) interval(base, now time.Duration) time.Duration {
	if p.override != nil && now < p.override.Until {
		return p.override.Interval
	}
	return base
}

// expireOverride drops an override whose window has closed
func (p *Player) expireOverride(now time.Duration) {
	if p.override != nil && now >= p.override.Until {
		p.override = nil
	}
}

// advance prepends head. The tail is kept when grow is set.
func (p *Player) advance(head Coord, grow bool) {
	if grow {
		p.Snake = append([]Coord{head}, p.Snake...)
		return
	}
	// Shift segments: prepend new head, drop last
	p.Snake = append([]Coord{head}, p.Snake[:len(p.Snake)-1]...)
}

// shrink removes up to n tail segments, never below one, and takes the same
// n off the score, never below zero. Returns segments actually removed.
func (p *Player) shrink(n int) int {
	keep := len(p.Snake) - n
	if keep < 1 {
		keep = 1
	}
	removed := len(p.Snake) - keep
	p.Snake = p.Snake[:keep]
	p.Score -= n
	if p.Score < 0 {
		p.Score = 0
	}
	return removed
}

// PlayerView is a copy of a player's public state
type PlayerView struct {
	ID        string
	Name      string
	Snake     []Coord
	Direction Direction
	Color     string
	Alive     bool
	Score     int
}

// View copies the player's public state
func (p *Player) View() PlayerView {
	body := make([]Coord, len(p.Snake))
	copy(body, p.Snake)
	return PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		Snake:     body,
		Direction: p.Heading,
		Color:     p.Color,
		Alive:     p.Alive,
		Score:     p.Score,
	}
}
