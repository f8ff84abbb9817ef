package game

import "testing"

// scriptedRand replays fixed values, then falls back to zero
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// newRunningMatch seats "a" and "b" and returns a running match
func newRunningMatch(t *testing.T, rng Rand) *Match {
	t.Helper()
	m := NewMatch(DefaultRules(), rng)
	if _, err := m.AddPlayer("a", "alice"); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := m.AddPlayer("b", "bob"); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if m.Phase() != Running {
		t.Fatalf("phase = %s, want running", m.Phase())
	}
	return m
}

// place overwrites a player's body and heading
func place(t *testing.T, m *Match, id string, heading Direction, body ...Coord) *Player {
	t.Helper()
	p, ok := m.Player(id)
	if !ok {
		t.Fatalf("no player %q", id)
	}
	p.Snake = body
	p.Heading = heading
	return p
}

// setFood moves the food to c
func setFood(m *Match, c Coord) {
	m.food = &c
}

func findEvent(events []Event, kind EventKind) (Event, bool) {
	for _, ev := range events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func viewOf(views []PlayerView, id string) (PlayerView, bool) {
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
	}
	return PlayerView{}, false
}
