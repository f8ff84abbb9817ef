package game

import "strings"

// Coord is a grid cell
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// In reports whether c lies on a size×size board
func (c Coord) In(size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// Add returns the neighbouring cell in direction d
func (c Coord) Add(d Direction) Coord {
	switch d {
	case Up:
		c.Y--
	case Down:
		c.Y++
	case Left:
		c.X--
	case Right:
		c.X++
	}
	return c
}

// Direction is a snake heading. Screen coordinates: up decreases Y.
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

var directionNames = [...]string{Right: "right", Left: "left", Up: "up", Down: "down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// ParseDirection maps a wire name to a Direction
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), true
		}
	}
	return 0, false
}

// OccupancyGrid maps cells to the players whose bodies cover them.
// It is rebuilt from a snapshot and never updated in place, so queries
// answer "who was here when the grid was built".
type OccupancyGrid struct {
	cells map[Coord][]string
}

// NewOccupancyGrid creates an empty grid
func NewOccupancyGrid() *OccupancyGrid {
	return &OccupancyGrid{cells: make(map[Coord][]string)}
}

// Clear resets all cells
func (g *OccupancyGrid) Clear() {
	g.cells = make(map[Coord][]string)
}

// InsertSnake adds every segment of a snake, head included
func (g *OccupancyGrid) InsertSnake(ownerID string, body []Coord) {
	for _, seg := range body {
		if owners := g.cells[seg]; len(owners) > 0 && owners[len(owners)-1] == ownerID {
			continue
		}
		g.cells[seg] = append(g.cells[seg], ownerID)
	}
}

// Occupants returns the owners covering c
func (g *OccupancyGrid) Occupants(c Coord) []string {
	return g.cells[c]
}

// OccupiedBy reports whether ownerID covers c
func (g *OccupancyGrid) OccupiedBy(c Coord, ownerID string) bool {
	for _, id := range g.cells[c] {
		if id == ownerID {
			return true
		}
	}
	return false
}

// OccupiedByOther reports whether any owner other than ownerID covers c
func (g *OccupancyGrid) OccupiedByOther(c Coord, ownerID string) bool {
	for _, id := range g.cells[c] {
		if id != ownerID {
			return true
		}
	}
	return false
}
