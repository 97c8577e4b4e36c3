package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/bot"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type sessionRepo interface {
	Save(ctx context.Context, session *entity.Session) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Session, error)
	DeleteByPlayerID(ctx context.Context, playerID string) error
}

// SoloManager runs single-player games against the computer. There is no
// room: the whole state lives in a serialized session per player identity,
// and the computer's reply is synthesized synchronously after each accepted
// player move. The player is always X and moves first; the computer plays O.
type SoloManager struct {
	logger   *slog.Logger
	sessions sessionRepo
}

func NewSoloManager(logger *slog.Logger, sessions sessionRepo) *SoloManager {
	return &SoloManager{
		logger:   logger,
		sessions: sessions,
	}
}

// StartGame - begins a fresh solo game at the given difficulty, replacing
// any session the player already had.
func (that *SoloManager) StartGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error) {
	game := entity.NewGame()
	game.Start(entity.PlayerX)

	session := &entity.Session{
		PlayerID:   playerID,
		Difficulty: difficulty,
		Game:       game,
	}

	if err := that.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the player's move and, while the round is still open,
// the computer's answer, then stores the updated session.
func (that *SoloManager) MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	session, err := that.sessions.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	game := session.Game

	if err = game.ApplyMoveAt(row, col, entity.PlayerX); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsDecided() {
		if err = that.answerMove(game, session.Difficulty); err != nil {
			return nil, err
		}
	}

	if err = that.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return game, nil
}

func (that *SoloManager) answerMove(game *entity.Game, difficulty string) error {
	cell, err := bot.PickMove(game.Board, entity.PlayerO, difficulty)
	if errors.Is(err, bot.ErrNoAvailableMoves) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to pick computer move: %w", err)
	}

	if err = game.ApplyMove(cell, entity.PlayerO); err != nil {
		return fmt.Errorf("computer failed to make turn: %w", err)
	}

	return nil
}

// ResetGame - restarts the player's solo game at its stored difficulty.
func (that *SoloManager) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	session, err := that.sessions.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Game.Start(entity.PlayerX)

	if err = that.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session.Game, nil
}

// Forget - drops the player's solo session, if any.
func (that *SoloManager) Forget(ctx context.Context, playerID string) {
	log := that.logger.With("method", "Forget", "playerID", playerID)

	if err := that.sessions.DeleteByPlayerID(ctx, playerID); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		log.Error("failed to delete session", "error", err)
	}
}
