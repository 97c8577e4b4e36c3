package arena

// PlayerInfo is the transport-facing view of one seated player.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mark string `json:"mark"`
}

// RoomState is a point-in-time snapshot of a room with a fixed field set.
// Handlers hold on to snapshots, never to live rooms, so nothing escapes the
// registry's lock.
type RoomState struct {
	RoomID  string       `json:"room_id"`
	Players []PlayerInfo `json:"players"`

	Board        [9]string `json:"board"`
	Turn         string    `json:"turn"`
	Winner       string    `json:"winner"`
	WinningLines [][3]int  `json:"winning_lines,omitempty"`
	Waiting      bool      `json:"waiting"`
	Started      bool      `json:"started"`

	Scores         Scores `json:"scores"`
	RoundCount     int    `json:"round_count"`
	SeriesFinished bool   `json:"series_finished"`
	FirstMover     Seat   `json:"first_mover"`

	LeftPlayer  *PlayerInfo `json:"left_player,omitempty"`
	RightPlayer *PlayerInfo `json:"right_player,omitempty"`
}

// State - snapshots the room.
func (that *Room) State() *RoomState {
	state := &RoomState{
		RoomID:         that.ID,
		Players:        make([]PlayerInfo, 0, len(that.Players)),
		Board:          that.Game.Board,
		Turn:           that.Game.Turn,
		Winner:         that.Game.Winner,
		WinningLines:   that.Game.WinningLines(),
		Waiting:        that.Waiting,
		Started:        that.Game.Started,
		Scores:         that.Scores,
		RoundCount:     that.RoundCount,
		SeriesFinished: that.SeriesFinished,
		FirstMover:     that.FirstMover,
	}

	for _, player := range that.Players {
		state.Players = append(state.Players, PlayerInfo{ID: player.ID, Name: player.Name, Mark: player.Mark})
	}

	if that.LeftPlayer != nil {
		state.LeftPlayer = &PlayerInfo{ID: that.LeftPlayer.ID, Name: that.LeftPlayer.Name, Mark: that.LeftPlayer.Mark}
	}

	if that.RightPlayer != nil {
		state.RightPlayer = &PlayerInfo{ID: that.RightPlayer.ID, Name: that.RightPlayer.Name, Mark: that.RightPlayer.Mark}
	}

	return state
}
