package arena

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Seat is one of the two fixed sides of a room. Seats are independent of
// marks and track first-mover alternation across a series.
type Seat string

const (
	SeatLeft  Seat = "left"
	SeatRight Seat = "right"
)

const (
	maxRounds  = 5
	winsToTake = 3

	maxPlayers = 2
)

// Scores is the best-of-five series tally.
type Scores struct {
	Left  int `json:"left"`
	Right int `json:"right"`
	Draw  int `json:"draw"`
}

// Room owns one game and at most two seated players, plus the bookkeeping of
// a best-of-five series. The registry serializes all access; a Room itself is
// not safe for concurrent use.
type Room struct {
	ID      string
	Game    *entity.Game
	Players []*entity.Player
	Waiting bool

	Scores         Scores
	RoundCount     int
	SeriesFinished bool
	FirstMover     Seat

	LeftPlayer  *entity.Player
	RightPlayer *entity.Player
}

// NewRoom - creates a waiting room seated by its creator. The creator's mark
// stays unassigned until an opponent arrives.
func NewRoom(id string, creator *entity.Player) *Room {
	return &Room{
		ID:         id,
		Game:       entity.NewGame(),
		Players:    []*entity.Player{creator},
		Waiting:    true,
		FirstMover: SeatLeft,
	}
}

// AddPlayer - seats the second player. Both seats and both marks are drawn at
// random, and round 0 starts with the left seat as first mover.
func (that *Room) AddPlayer(player *entity.Player) error {
	if len(that.Players) >= maxPlayers {
		return apperror.ErrRoomFull
	}

	that.Players = append(that.Players, player)
	that.Waiting = false

	that.assignSeatsAndMarks()

	that.FirstMover = SeatLeft
	that.Game.Start(that.LeftPlayer.Mark)

	return nil
}

// RemovePlayer - unseats the player with the given identity.
func (that *Room) RemovePlayer(playerID string) bool {
	for i, player := range that.Players {
		if player.ID == playerID {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return true
		}
	}

	return false
}

// PlayerByID - returns the seated player with the given identity, or nil.
func (that *Room) PlayerByID(playerID string) *entity.Player {
	for _, player := range that.Players {
		if player.ID == playerID {
			return player
		}
	}

	return nil
}

// assignSeatsAndMarks draws seats and marks independently, each a uniform
// choice over the two orderings. The players slice shares the same structs,
// so the marks stay consistent by construction.
func (that *Room) assignSeatsAndMarks() {
	first, second := that.Players[0], that.Players[1]
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		that.LeftPlayer, that.RightPlayer = first, second
	} else {
		that.LeftPlayer, that.RightPlayer = second, first
	}

	that.LeftPlayer.Mark, that.RightPlayer.Mark = entity.RandomMarks()
}

// MakeMove - applies a move by the given player at (row, col), then settles
// the round if the move decided it.
func (that *Room) MakeMove(playerID string, row, col int) error {
	player := that.PlayerByID(playerID)
	if player == nil {
		return apperror.ErrNotInRoom
	}

	if that.Game.Turn != player.Mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Game.ApplyMoveAt(row, col, player.Mark); err != nil {
		return err
	}

	if that.Game.IsDecided() {
		that.settleRound()
	}

	return nil
}

// settleRound updates the series tally after a decided round. Reaching three
// wins finishes the series no matter the round count; otherwise playing out
// the fifth round does.
func (that *Room) settleRound() {
	switch that.Game.Winner {
	case entity.PlayerTie:
		that.Scores.Draw++
	case that.LeftPlayer.Mark:
		that.Scores.Left++
	case that.RightPlayer.Mark:
		that.Scores.Right++
	}

	if that.Scores.Left >= winsToTake || that.Scores.Right >= winsToTake {
		that.SeriesFinished = true
	} else if that.RoundCount >= maxRounds-1 {
		that.SeriesFinished = true
	}
}

// ResetRound - starts the next round of the series: bumps the round counter,
// hands the first move to the other seat and restarts the game. A no-op once
// the series is finished.
func (that *Room) ResetRound() {
	if that.SeriesFinished {
		return
	}

	if that.Scores.Left >= winsToTake || that.Scores.Right >= winsToTake || that.RoundCount >= maxRounds-1 {
		that.SeriesFinished = true
		return
	}

	that.RoundCount++

	if that.FirstMover == SeatLeft {
		that.FirstMover = SeatRight
	} else {
		that.FirstMover = SeatLeft
	}

	firstMark := that.LeftPlayer.Mark
	if that.FirstMover == SeatRight {
		firstMark = that.RightPlayer.Mark
	}

	that.Game.Start(firstMark)
}

// NewSeries - wipes the series state and starts over with a fresh random
// seat and mark draw, the left seat moving first by convention.
func (that *Room) NewSeries() {
	that.Scores = Scores{}
	that.RoundCount = 0
	that.SeriesFinished = false

	that.assignSeatsAndMarks()

	that.FirstMover = SeatLeft
	that.Game.Start(that.LeftPlayer.Mark)
}

// IsStarted - reports whether the room holds a started two-player game. Used
// to tell new joiners that a game is already in progress, which is a
// different notion from merely "not waiting".
func (that *Room) IsStarted() bool {
	return len(that.Players) == maxPlayers && that.Game.Started && !that.Waiting
}
