package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/bot"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveAndGet(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a mid-round solo session
	game := entity.NewGame()
	game.Start(entity.PlayerX)
	require.NoError(t, game.ApplyMove(4, entity.EmptyCell))

	session := &entity.Session{
		PlayerID:   "player-123",
		Difficulty: bot.DifficultyHard,
		Game:       game,
	}

	// When: saving and reloading it
	require.NoError(t, sessionRepo.Save(ctx, session))

	retrieved, err := sessionRepo.GetByPlayerID(ctx, session.PlayerID)

	// Then: the whole session survives the round trip
	require.NoError(t, err)
	assert.Equal(t, session.PlayerID, retrieved.PlayerID)
	assert.Equal(t, session.Difficulty, retrieved.Difficulty)
	assert.Equal(t, *game, *retrieved.Game)
}

func TestSessionRepository_GetByPlayerID_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// When: looking up an identity that never played
	_, err := sessionRepo.GetByPlayerID(ctx, "nobody")

	// Then: the sentinel not-found error comes back
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSessionRepository_DeleteByPlayerID(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a stored session
	game := entity.NewGame()
	game.Start(entity.PlayerX)
	session := &entity.Session{PlayerID: "player-123", Difficulty: bot.DifficultySimple, Game: game}
	require.NoError(t, sessionRepo.Save(ctx, session))

	// When: deleting it
	require.NoError(t, sessionRepo.DeleteByPlayerID(ctx, session.PlayerID))

	// Then: the lookup misses
	_, err := sessionRepo.GetByPlayerID(ctx, session.PlayerID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
