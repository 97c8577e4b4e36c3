package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-arena/internal/arena"
)

// Message is one WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// inbound payloads

type MovePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type SoloStartPayload struct {
	Difficulty string `json:"difficulty"`
}

// outbound payloads, one fixed-field struct per message type

// WaitingAck tells the creator of a fresh room to sit tight.
type WaitingAck struct {
	RoomID string `json:"room_id"`
	Status string `json:"status"`
}

// GameStartAck is sent to each participant individually once a room pairs
// up, so everyone learns their own mark and seat.
type GameStartAck struct {
	RoomID      string            `json:"room_id"`
	YourMark    string            `json:"your_mark"`
	YourSeat    arena.Seat        `json:"your_seat"`
	Turn        string            `json:"turn"`
	LeftPlayer  *arena.PlayerInfo `json:"left_player"`
	RightPlayer *arena.PlayerInfo `json:"right_player"`
	Scores      arena.Scores      `json:"scores"`
	RoundCount  int               `json:"round_count"`
}

// MoveAck reports a move result. Rejected moves go back to the sender only;
// accepted ones are broadcast to the room.
type MoveAck struct {
	Accepted       bool         `json:"accepted"`
	Board          [9]string    `json:"board"`
	Turn           string       `json:"turn"`
	Winner         string       `json:"winner"`
	WinningLines   [][3]int     `json:"winning_lines,omitempty"`
	Scores         arena.Scores `json:"scores"`
	RoundCount     int          `json:"round_count"`
	SeriesFinished bool         `json:"series_finished"`
}

// RoundResetAck announces the next round of a series.
type RoundResetAck struct {
	Turn           string       `json:"turn"`
	Scores         arena.Scores `json:"scores"`
	RoundCount     int          `json:"round_count"`
	SeriesFinished bool         `json:"series_finished"`
	FirstMover     arena.Seat   `json:"first_mover"`
}

// SeriesStartAck announces a brand new series with its fresh seat and mark
// assignment.
type SeriesStartAck struct {
	Turn        string            `json:"turn"`
	Scores      arena.Scores      `json:"scores"`
	RoundCount  int               `json:"round_count"`
	FirstMover  arena.Seat        `json:"first_mover"`
	LeftPlayer  *arena.PlayerInfo `json:"left_player"`
	RightPlayer *arena.PlayerInfo `json:"right_player"`
}

// OpponentLeftAck tells the survivor their room is gone.
type OpponentLeftAck struct {
	RoomID string `json:"room_id"`
}

// NoticeAck carries a human-readable refusal, e.g. "game in progress".
type NoticeAck struct {
	Message string `json:"message"`
}

// SoloAck is the full solo game state after any solo action.
type SoloAck struct {
	Board        [9]string `json:"board"`
	Turn         string    `json:"turn"`
	Winner       string    `json:"winner"`
	WinningLines [][3]int  `json:"winning_lines,omitempty"`
	Started      bool      `json:"started"`
}
