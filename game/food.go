package game

import (
	"math/rand"
	"time"
)

// Rand is the random source the match draws spawn cells and skill rolls from.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a source seeded from the clock
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// randomCell picks any cell on the board. Occupancy is not consulted.
func randomCell(rng Rand, size int) Coord {
	return Coord{X: rng.Intn(size), Y: rng.Intn(size)}
}

// spawnFood places the single food item, replacing any previous one
func (m *Match) spawnFood() Coord {
	c := randomCell(m.rng, m.rules.MapSize)
	m.food = &c
	return c
}
