package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/arena"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/usecase"
)

func (that *Server) handleJoinPVP(_ context.Context, c *client, _ json.RawMessage) error {
	result, err := that.arena.Join(c.id, c.name)

	switch {
	case errors.Is(err, apperror.ErrGameInProgress):
		return c.send("game_in_progress", NoticeAck{Message: "a game is already in progress, try again later"})
	case errors.Is(err, apperror.ErrRoomFull):
		return c.send("room_full", NoticeAck{Message: "the room filled up, try again"})
	case err != nil:
		return fmt.Errorf("failed to join matchmaking: %w", err)
	}

	if result.Status == usecase.JoinStatusWaiting {
		return c.send("waiting_for_opponent", WaitingAck{RoomID: result.RoomID, Status: result.Status})
	}

	// every participant gets a personalized start so they learn their own
	// mark and seat
	state := result.State
	for _, player := range state.Players {
		seat := arena.SeatRight
		if state.LeftPlayer != nil && player.ID == state.LeftPlayer.ID {
			seat = arena.SeatLeft
		}

		that.sendTo(player.ID, "game_start", GameStartAck{
			RoomID:      state.RoomID,
			YourMark:    player.Mark,
			YourSeat:    seat,
			Turn:        state.Turn,
			LeftPlayer:  state.LeftPlayer,
			RightPlayer: state.RightPlayer,
			Scores:      state.Scores,
			RoundCount:  state.RoundCount,
		})
	}

	return nil
}

func (that *Server) handleMakeMove(_ context.Context, c *client, payload json.RawMessage) error {
	var move MovePayload
	if err := json.Unmarshal(payload, &move); err != nil {
		return fmt.Errorf("failed to unmarshal move payload: %w", err)
	}

	state, err := that.arena.MakeMove(c.id, move.Row, move.Col)
	if err != nil {
		// rejected moves are expected client behavior; only the sender hears
		// about them, with the room's actual state so their display stays
		// truthful
		ack := MoveAck{Accepted: false}
		if current, stateErr := that.arena.RoomState(c.id); stateErr == nil {
			ack = moveAck(false, current)
		}

		return c.send("move_rejected", ack)
	}

	that.broadcast(state, "game_update", moveAck(true, state))

	return nil
}

func (that *Server) handleResetGame(_ context.Context, c *client, _ json.RawMessage) error {
	state, err := that.arena.ResetRound(c.id)
	if err != nil {
		return fmt.Errorf("failed to reset round: %w", err)
	}

	that.broadcast(state, "game_reset", RoundResetAck{
		Turn:           state.Turn,
		Scores:         state.Scores,
		RoundCount:     state.RoundCount,
		SeriesFinished: state.SeriesFinished,
		FirstMover:     state.FirstMover,
	})

	return nil
}

func (that *Server) handleNewSeries(_ context.Context, c *client, _ json.RawMessage) error {
	state, err := that.arena.NewSeries(c.id)
	if err != nil {
		return fmt.Errorf("failed to start new series: %w", err)
	}

	that.broadcast(state, "new_match_started", SeriesStartAck{
		Turn:        state.Turn,
		Scores:      state.Scores,
		RoundCount:  state.RoundCount,
		FirstMover:  state.FirstMover,
		LeftPlayer:  state.LeftPlayer,
		RightPlayer: state.RightPlayer,
	})

	return nil
}

func (that *Server) handleSoloStart(ctx context.Context, c *client, payload json.RawMessage) error {
	difficulty := that.defaultDifficulty
	if len(payload) > 0 {
		var start SoloStartPayload
		if err := json.Unmarshal(payload, &start); err != nil {
			return fmt.Errorf("failed to unmarshal solo start payload: %w", err)
		}
		if start.Difficulty != "" {
			difficulty = start.Difficulty
		}
	}

	game, err := that.solo.StartGame(ctx, c.id, difficulty)
	if err != nil {
		return fmt.Errorf("failed to start solo game: %w", err)
	}

	return c.send("solo_update", soloAck(game))
}

func (that *Server) handleSoloMove(ctx context.Context, c *client, payload json.RawMessage) error {
	var move MovePayload
	if err := json.Unmarshal(payload, &move); err != nil {
		return fmt.Errorf("failed to unmarshal move payload: %w", err)
	}

	game, err := that.solo.MakeTurn(ctx, c.id, move.Row, move.Col)
	if err != nil && game == nil {
		return fmt.Errorf("failed to make solo turn: %w", err)
	}

	if err != nil {
		rejection := soloAck(game)

		return c.send("move_rejected", MoveAck{Accepted: false, Board: rejection.Board, Turn: rejection.Turn, Winner: rejection.Winner, WinningLines: rejection.WinningLines})
	}

	return c.send("solo_update", soloAck(game))
}

func (that *Server) handleSoloReset(ctx context.Context, c *client, _ json.RawMessage) error {
	game, err := that.solo.ResetGame(ctx, c.id)
	if err != nil {
		return fmt.Errorf("failed to reset solo game: %w", err)
	}

	return c.send("solo_update", soloAck(game))
}

func moveAck(accepted bool, state *arena.RoomState) MoveAck {
	return MoveAck{
		Accepted:       accepted,
		Board:          state.Board,
		Turn:           state.Turn,
		Winner:         state.Winner,
		WinningLines:   state.WinningLines,
		Scores:         state.Scores,
		RoundCount:     state.RoundCount,
		SeriesFinished: state.SeriesFinished,
	}
}

func soloAck(game *entity.Game) SoloAck {
	return SoloAck{
		Board:        game.Board,
		Turn:         game.Turn,
		Winner:       game.Winner,
		WinningLines: game.WinningLines(),
		Started:      game.Started,
	}
}
