package server

import (
	"snakeduel/game"
	"snakeduel/protocol"
)

// encodeEvent maps a match event to its wire kind and payload
func encodeEvent(ev game.Event) (string, any) {
	switch ev.Kind {
	case game.EventLobby:
		return protocol.MsgLobby, protocol.Lobby{Players: playerDTOs(ev.Players), Waiting: ev.Waiting}
	case game.EventStart:
		var food protocol.Point
		if ev.Food != nil {
			food = pointDTO(*ev.Food)
		}
		return protocol.MsgStart, protocol.Start{Food: food}
	case game.EventPlayers:
		return protocol.MsgPlayers, playerDTOs(ev.Players)
	case game.EventFood:
		var food protocol.Point
		if ev.Food != nil {
			food = pointDTO(*ev.Food)
		}
		return protocol.MsgFood, food
	case game.EventSpeedChange:
		return protocol.MsgSpeedChange, protocol.SpeedChange{
			Duration: ev.Duration.Milliseconds(),
			Interval: ev.Interval.Milliseconds(),
		}
	case game.EventGameOver:
		return protocol.MsgGameOver, playerDTOs(ev.Players)
	}
	return ev.Kind.String(), nil
}

func pointDTO(c game.Coord) protocol.Point {
	return protocol.Point{X: c.X, Y: c.Y}
}

func playerDTOs(views []game.PlayerView) []protocol.PlayerDTO {
	out := make([]protocol.PlayerDTO, 0, len(views))
	for _, v := range views {
		snake := make([]protocol.Point, len(v.Snake))
		for i, c := range v.Snake {
			snake[i] = pointDTO(c)
		}
		out = append(out, protocol.PlayerDTO{
			ID:        v.ID,
			Name:      v.Name,
			Snake:     snake,
			Direction: v.Direction.String(),
			Color:     v.Color,
			Alive:     v.Alive,
			Score:     v.Score,
		})
	}
	return out
}
