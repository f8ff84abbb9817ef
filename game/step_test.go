package game

import (
	"testing"
	"time"
)

const tick = 200 * time.Millisecond

func TestStepMovesOneCell(t *testing.T) {
	m := newRunningMatch(t, &scriptedRand{})
	setFood(m, Coord{19, 19})
	a := place(t, m, "a", Right, Coord{5, 5}, Coord{4, 5})
	place(t, m, "b", Down, Coord{10, 10})

	events := m.Step(tick)

	if a.Head() != (Coord{6, 5}) || a.Len() != 2 {
		t.Fatalf("a = %v, want head (6,5) length 2", a.Snake)
	}
	if a.Snake[1] != (Coord{5, 5}) {
		t.Fatalf("tail should follow head, got %v", a.Snake)
	}
	if _, ok := findEvent(events, EventPlayers); !ok {
		t.Fatalf("expected players snapshot after a move")
	}
}

func TestStepWaitsForInterval(t *testing.T) {
	m := newRunningMatch(t, &scriptedRand{})
	setFood(m, Coord{19, 19})
	a := place(t, m, "a", Right, Coord{5, 5})
	place(t, m, "b", Right, Coord{5, 10})

	for i := 0; i < 3; i++ {
		if ev := m.Step(50 * time.Millisecond); ev != nil {
			t.Fatalf("step %d produced events before the interval elapsed: %v", i, ev)
		}
	}
	if a.Head() != (Coord{5, 5}) {
		t.Fatalf("a moved early: %v", a.Snake)
	}
	m.Step(50 * time.Millisecond)
	if a.Head() != (Coord{6, 5}) {
		t.Fatalf("a should move after 200ms, got %v", a.Snake)
	}
}

func TestBoundaryKillsAndLeavesSnake(t *testing.T) {
	m := newRunningMatch(t, &scriptedRand{})
	setFood(m, Coord{0, 0})
	a := place(t, m, "a", Right, Coord{19, 5}, Coord{18, 5})
	place(t, m, "b", Down, Coord{3, 3})

	m.Step(tick)

	if a.Alive {
		t.Fatalf("a should die leaving the board")
	}
	if len(a.Snake) != 2 || a.Snake[0] != (Coord{19, 5}) || a.Snake[1] != (Coord{18, 5}) {
		t.Fatalf("dead snake changed: %v", a.Snake)
	}
}

func TestBoundaryAllEdges(t *testing.T) {
	cases := []struct {
		head Coord
		dir  Direction
	}{
		{Coord{0, 7}, Left},
		{Coord{19, 7}, Right},
		{Coord{7, 0}, Up},
		{Coord{7, 19}, Down},
	}
	for _, c := range cases {
		m := newRunningMatch(t, &scriptedRand{})
		setFood(m, Coord{10, 10})
		a := place(t, m, "a", c.dir, c.head)
		place(t, m, "b", Down, Coord{12, 2})
		m.Step(tick)
		if a.Alive {
			t.Fatalf("%v heading %s should die", c.head, c.dir)
		}
	}
}

func TestSelfCollision(t *testing.T) {
	m := newRunningMatch(t, &scriptedRand{})
	setFood(m, Coord{0, 0})
	a := place(t, m, "a", Right, Coord{5, 5}, Coord{6, 5})
	place(t, m, "b", Down, Coord{10, 1})

	m.Step(tick)

	if a.Alive {
		t.Fatalf("moving into own second segment should kill")
	}
}

func TestSingleSegmentNeverSelfCollides(t *testing.T) {
	for _, dir := range []Direction{Up, Down, Left, Right} {
		m := newRunningMatch(t, &scriptedRand{})
		setFood(m, Coord{0, 0})
		a := place(t, m, "a", dir, Coord{10, 10})
		place(t, m, "b", Down, Coord{1, 1})
		m.Step(tick)
		if !a.Alive {
			t.Fatalf("length-1 snake heading %s died", dir)
		}
	}
}

func TestOpponentCollisionIsSymmetric(t *testing.T) {
	m := newRunningMatch(t, &scriptedRand{})
	setFood(m, Coord{0, 0})
	a := place(t, m, "a", Right, Coord{5, 5}, Coord{4, 5})
	b := place(t, m, "b", Left, Coord{6, 5}, Coord{7, 5})

	events := m.Step(tick)

	if a.Alive || b.Alive {
		t.Fatalf("both should die: a=%v b=%v", a.Alive, b.Alive)
	}
	if m.Phase() != Over {
		t.Fatalf("phase = %s, want over", m.Phase())
	}
	over, ok := findEvent(events, EventGameOver)
	if !ok {
		t.Fatalf("expected gameOver event")
	}
	for _, v := range over.Players {
		if v.Alive {
			t.Fatalf("gameOver shows %s alive", v.ID)
		}
	}
}

func TestOpponentCollisionUsesPreTickBodies(t *testing.T) {
	// b moves first and its tail leaves (6,6); a still dies there because
	// bodies are judged as they stood before movement.
	m := newRunningMatch(t, &scriptedRand{})
	setFood(m, Coord{0, 0})
	m.order[0], m.order[1] = m.order[1], m.order[0]
	a := place(t, m, "a", Down, Coord{6, 5})
	b := place(t, m, "b", Right, Coord{7, 7}, Coord{7, 6}, Coord{6, 6})

	m.Step(tick)

	if a.Alive {
		t.Fatalf("a should die on b's pre-step tail")
	}
	if !b.Alive || b.Head() != (Coord{8, 7}) {
		t.Fatalf("b should survive and move: %v", b.Snake)
	}
}

func TestOrderDoesNotDecideOpponentCollision(t *testing.T) {
	// a moves first in join order; b then moves onto a's old head cell
	run := func(swap bool) (bool, bool) {
		m := newRunningMatch(t, &scriptedRand{})
		setFood(m, Coord{0, 0})
		if swap {
			m.order[0], m.order[1] = m.order[1], m.order[0]
		}
		a := place(t, m, "a", Up, Coord{5, 5})
		b := place(t, m, "b", Left, Coord{6, 5})
		m.Step(tick)
		return a.Alive, b.Alive
	}
	a1, b1 := run(false)
	a2, b2 := run(true)
	if a1 != a2 || b1 != b2 {
		t.Fatalf("outcome depends on order: (%v,%v) vs (%v,%v)", a1, b1, a2, b2)
	}
	if !a1 || b1 {
		t.Fatalf("want a alive, b dead; got a=%v b=%v", a1, b1)
	}
}

func TestFoodGrowsAndRelocates(t *testing.T) {
	rng := &scriptedRand{}
	m := newRunningMatch(t, rng)
	setFood(m, Coord{6, 5})
	a := place(t, m, "a", Right, Coord{5, 5}, Coord{4, 5})
	place(t, m, "b", Down, Coord{15, 1})
	rng.ints = []int{12, 13}

	events := m.Step(tick)

	if a.Len() != 3 {
		t.Fatalf("length = %d, want 3", a.Len())
	}
	if a.Score != 1 {
		t.Fatalf("score = %d, want 1", a.Score)
	}
	food, ok := m.Food()
	if !ok || food != (Coord{12, 13}) {
		t.Fatalf("food = %v %v, want (12,13)", food, ok)
	}
	ev, ok := findEvent(events, EventFood)
	if !ok || ev.Food == nil || *ev.Food != food {
		t.Fatalf("expected food event at %v, got %+v", food, ev)
	}
	if a.Snake[len(a.Snake)-1] != (Coord{4, 5}) {
		t.Fatalf("tail should stay when eating: %v", a.Snake)
	}
}

func TestStepIdleUnlessRunning(t *testing.T) {
	m := NewMatch(DefaultRules(), &scriptedRand{})
	m.AddPlayer("a", "alice")
	if ev := m.Step(tick); ev != nil {
		t.Fatalf("lobby step produced events: %v", ev)
	}
	p, _ := m.Player("a")
	if p.Head() != (Coord{0, 0}) {
		t.Fatalf("player moved while awaiting players: %v", p.Snake)
	}
}

func TestDeadPlayersStayPut(t *testing.T) {
	m := newRunningMatch(t, &scriptedRand{})
	setFood(m, Coord{0, 0})
	a := place(t, m, "a", Right, Coord{19, 5})
	b := place(t, m, "b", Down, Coord{3, 3})
	m.Step(tick)
	if a.Alive || !b.Alive || m.Phase() != Over {
		t.Fatalf("setup: a=%v b=%v phase=%s", a.Alive, b.Alive, m.Phase())
	}
	if ev := m.Step(tick); ev != nil {
		t.Fatalf("step after game over produced %v", ev)
	}
}
