package game

import (
	"log"
	"time"
)

// Step advances the match clock by dt and moves every living player whose
// move interval has elapsed. Collisions with other snakes are judged
// against the bodies as they stood before anyone moved this step, so the
// outcome does not depend on which player is processed first.
func (m *Match) Step(dt time.Duration) []Event {
	if m.phase != Running {
		return nil
	}
	m.clock += dt

	// 1. Pick movers from each player's own cadence
	movers := make([]*Player, 0, len(m.order))
	for _, p := range m.order {
		p.expireOverride(m.clock)
		if !p.Alive {
			continue
		}
		interval := p.interval(m.rules.BaseInterval, m.clock)
		p.acc += dt
		if p.acc < interval {
			continue
		}
		p.acc -= interval
		if p.acc > interval {
			p.acc = interval
		}
		movers = append(movers, p)
	}
	if len(movers) == 0 {
		return nil
	}

	// 2. Snapshot bodies before any movement
	m.grid.Clear()
	for _, p := range m.order {
		m.grid.InsertSnake(p.ID, p.Snake)
	}

	// 3. Move in join order
	var events []Event
	for _, p := range movers {
		if ev, ok := m.move(p); ok {
			events = append(events, ev)
		}
	}

	snapshot := m.Players()
	events = append(events, Event{Kind: EventPlayers, Players: snapshot})

	// 4. Game over when at most one snake survives
	if m.AliveCount() <= 1 {
		m.phase = Over
		log.Printf("match over: %d alive", m.AliveCount())
		events = append(events, Event{Kind: EventGameOver, Players: snapshot})
	}
	return events
}

// move advances one player a single cell. Returns a food event when the
// player ate.
func (m *Match) move(p *Player) (Event, bool) {
	head := p.Head().Add(p.Heading)

	switch {
	case !head.In(m.rules.MapSize):
		p.Alive = false
		return Event{}, false
	case m.grid.OccupiedBy(head, p.ID):
		p.Alive = false
		return Event{}, false
	case m.grid.OccupiedByOther(head, p.ID):
		p.Alive = false
		return Event{}, false
	}

	ate := m.food != nil && *m.food == head
	p.advance(head, ate)
	if !ate {
		return Event{}, false
	}
	p.Score++
	food := m.spawnFood()
	return Event{Kind: EventFood, Food: &food}, true
}
