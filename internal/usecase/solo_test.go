package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/bot"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepo keeps sessions in a map, standing in for Redis.
type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (that *fakeSessionRepo) Save(_ context.Context, session *entity.Session) error {
	that.sessions[session.PlayerID] = session
	return nil
}

func (that *fakeSessionRepo) GetByPlayerID(_ context.Context, playerID string) (*entity.Session, error) {
	session, ok := that.sessions[playerID]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}
	return session, nil
}

func (that *fakeSessionRepo) DeleteByPlayerID(_ context.Context, playerID string) error {
	delete(that.sessions, playerID)
	return nil
}

func newSoloManager() (*SoloManager, *fakeSessionRepo) {
	repo := newFakeSessionRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSoloManager(logger, repo), repo
}

func TestSoloManager_StartGame(t *testing.T) {
	ctx := context.Background()
	manager, repo := newSoloManager()

	// When: starting a solo game
	game, err := manager.StartGame(ctx, "p1", bot.DifficultyHard)

	// Then: the player is X and the session was stored with its difficulty
	require.NoError(t, err)
	assert.True(t, game.Started)
	assert.Equal(t, entity.PlayerX, game.Turn)

	stored, err := repo.GetByPlayerID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, bot.DifficultyHard, stored.Difficulty)
}

func TestSoloManager_MakeTurn(t *testing.T) {
	t.Run("Computer answers while the round is open", func(t *testing.T) {
		ctx := context.Background()
		manager, _ := newSoloManager()

		_, err := manager.StartGame(ctx, "p1", bot.DifficultyNormal)
		require.NoError(t, err)

		// When: the player opens with the center
		game, err := manager.MakeTurn(ctx, "p1", 1, 1)

		// Then: the computer answered and the turn is back with the player
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[4])
		assert.Len(t, game.AvailableMoves(), 7)
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Rejected move reaches the caller and skips the computer", func(t *testing.T) {
		ctx := context.Background()
		manager, _ := newSoloManager()

		_, err := manager.StartGame(ctx, "p1", bot.DifficultyNormal)
		require.NoError(t, err)

		_, err = manager.MakeTurn(ctx, "p1", 1, 1)
		require.NoError(t, err)

		// When: the player replays the center
		game, err := manager.MakeTurn(ctx, "p1", 1, 1)

		// Then: the rejection surfaces and no extra mark appeared
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Len(t, game.AvailableMoves(), 7)
	})

	t.Run("No session yet", func(t *testing.T) {
		ctx := context.Background()
		manager, _ := newSoloManager()

		_, err := manager.MakeTurn(ctx, "ghost", 0, 0)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Hard computer denies the player a win over a full game", func(t *testing.T) {
		ctx := context.Background()
		manager, _ := newSoloManager()

		game, err := manager.StartGame(ctx, "p1", bot.DifficultyHard)
		require.NoError(t, err)

		// When: the player takes the first free cell every turn
		for !game.IsDecided() {
			moves := game.AvailableMoves()
			require.NotEmpty(t, moves)

			cell := moves[0]
			game, err = manager.MakeTurn(ctx, "p1", cell/3, cell%3)
			require.NoError(t, err)
		}

		// Then: the player never beats the exhaustive search
		assert.NotEqual(t, entity.PlayerX, game.Winner)
	})
}

func TestSoloManager_ResetGame(t *testing.T) {
	ctx := context.Background()
	manager, repo := newSoloManager()

	_, err := manager.StartGame(ctx, "p1", bot.DifficultySimple)
	require.NoError(t, err)

	_, err = manager.MakeTurn(ctx, "p1", 0, 0)
	require.NoError(t, err)

	// When: resetting the game
	game, err := manager.ResetGame(ctx, "p1")

	// Then: the board is fresh, the player moves first and difficulty sticks
	require.NoError(t, err)
	assert.Equal(t, [9]string{}, game.Board)
	assert.Equal(t, entity.PlayerX, game.Turn)

	stored, err := repo.GetByPlayerID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, bot.DifficultySimple, stored.Difficulty)
}

func TestSoloManager_Forget(t *testing.T) {
	ctx := context.Background()
	manager, repo := newSoloManager()

	_, err := manager.StartGame(ctx, "p1", bot.DifficultyNormal)
	require.NoError(t, err)

	// When: the player disconnects
	manager.Forget(ctx, "p1")

	// Then: the session is gone, and forgetting again does not blow up
	_, err = repo.GetByPlayerID(ctx, "p1")
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)

	manager.Forget(ctx, "p1")
}
