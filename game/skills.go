package game

import (
	"log"
	"strings"
	"time"
)

// Skill is a player-triggered ability
type Skill uint8

const (
	SpeedUp Skill = iota
	SlowEnemy
	ReduceEnemy
)

var skillNames = [...]string{SpeedUp: "speedUp", SlowEnemy: "slowEnemy", ReduceEnemy: "reduceEnemy"}

func (s Skill) String() string {
	if int(s) < len(skillNames) {
		return skillNames[s]
	}
	return "unknown"
}

// ParseSkill maps a wire name to a Skill
func ParseSkill(s string) (Skill, bool) {
	for i, name := range skillNames {
		if strings.EqualFold(s, name) {
			return Skill(i), true
		}
	}
	return 0, false
}

// UseSkill applies a skill for the player id. It takes effect immediately,
// not on the next step, and is ignored unless both seats are filled.
func (m *Match) UseSkill(id string, skill Skill) []Event {
	if len(m.order) < 2 {
		return nil
	}
	actor, ok := m.players[id]
	if !ok {
		return nil
	}
	opp, ok := m.opponent(id)
	if !ok {
		return nil
	}

	switch skill {
	case SpeedUp:
		return []Event{m.setSpeed(actor, m.rules.FastInterval, m.rules.SpeedUpDuration)}
	case SlowEnemy:
		return []Event{m.setSpeed(opp, m.rules.SlowInterval, m.rules.SlowDuration)}
	case ReduceEnemy:
		return m.reduce(actor, opp)
	}
	return nil
}

// setSpeed (re)starts a speed window; repeated use restarts it, never stacks
func (m *Match) setSpeed(p *Player, interval, d time.Duration) Event {
	p.override = &speedOverride{Interval: interval, Until: m.clock + d}
	return Event{
		Kind:     EventSpeedChange,
		To:       p.ID,
		Duration: d,
		Interval: interval,
	}
}

func (m *Match) reduce(actor, opp *Player) []Event {
	if m.rng.Float64() >= m.rules.ReduceChance {
		return nil
	}
	cut := m.rng.Intn(m.rules.ReduceMax + 1)
	if cut == 0 {
		return nil
	}
	removed := opp.shrink(cut)
	log.Printf("%s cut %s by %d (removed %d segments)", actor.Name, opp.Name, cut, removed)
	return []Event{{Kind: EventPlayers, Players: m.Players()}}
}
