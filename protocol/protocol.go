package protocol

// Every frame is an envelope {"t": kind, "p": payload}. The payload shape is
// fixed per kind; kinds without a payload omit "p".
//
//   Client → Server:
//     "setName"  {"name":"alice"}
//     "move"     {"dir":"up"}            up | down | left | right
//     "useSkill" {"skill":"speedUp"}     speedUp | slowEnemy | reduceEnemy
//     "restart"  -
//   Server → Client:
//     "welcome"     {"id":"uuid","mapSize":20}
//     "full"        -                    followed by close
//     "lobby"       {"players":[...],"waiting":true}
//     "start"       {"food":{"x":1,"y":2}}
//     "players"     [player, ...]
//     "food"        {"x":1,"y":2}
//     "speedChange" {"duration":1000,"interval":100}   milliseconds
//     "gameOver"    [player, ...]
//     "error"       {"message":"..."}    followed by close
//
// player: {"id","name","snake":[{"x","y"}],"direction","color","alive","score"}

// Message kinds, client to server
const (
	MsgSetName  = "setName"
	MsgMove     = "move"
	MsgUseSkill = "useSkill"
	MsgRestart  = "restart"
)

// Message kinds, server to client
const (
	MsgWelcome     = "welcome"
	MsgFull        = "full"
	MsgLobby       = "lobby"
	MsgStart       = "start"
	MsgPlayers     = "players"
	MsgFood        = "food"
	MsgSpeedChange = "speedChange"
	MsgGameOver    = "gameOver"
	MsgError       = "error"
)

// SetName registers the sender as a player
type SetName struct {
	Name string `json:"name"`
}

// Move changes the sender's heading
type Move struct {
	Dir string `json:"dir"`
}

// UseSkill triggers an ability
type UseSkill struct {
	Skill string `json:"skill"`
}

// Welcome is sent once a connection is admitted
type Welcome struct {
	ID      string `json:"id"`
	MapSize int    `json:"mapSize"`
}

// Point is a grid cell
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerDTO is one player's public state
type PlayerDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Snake     []Point `json:"snake"`
	Direction string  `json:"direction"`
	Color     string  `json:"color"`
	Alive     bool    `json:"alive"`
	Score     int     `json:"score"`
}

// Lobby lists seated players; Waiting is true until both seats fill
type Lobby struct {
	Players []PlayerDTO `json:"players"`
	Waiting bool        `json:"waiting"`
}

// Start announces a fresh round
type Start struct {
	Food Point `json:"food"`
}

// SpeedChange tells a player their move interval changed for Duration ms
type SpeedChange struct {
	Duration int64 `json:"duration"`
	Interval int64 `json:"interval"`
}

// Error explains why the server is closing the connection
type Error struct {
	Message string `json:"message"`
}
