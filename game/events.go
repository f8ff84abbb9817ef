package game

import "time"

// EventKind names an outbound notification produced by a match operation
type EventKind uint8

const (
	EventLobby       EventKind = iota // Players, Waiting
	EventStart                        // Food
	EventPlayers                      // Players
	EventFood                         // Food
	EventSpeedChange                  // To, Duration, Interval
	EventGameOver                     // Players
)

var eventNames = [...]string{
	EventLobby:       "lobby",
	EventStart:       "start",
	EventPlayers:     "players",
	EventFood:        "food",
	EventSpeedChange: "speedChange",
	EventGameOver:    "gameOver",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one notification. An empty To means every connection.
type Event struct {
	Kind     EventKind
	To       string
	Players  []PlayerView
	Waiting  bool
	Food     *Coord
	Duration time.Duration
	Interval time.Duration
}
