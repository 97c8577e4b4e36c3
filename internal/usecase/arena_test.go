package usecase

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArenaManager() *ArenaManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewArenaManager(logger, arena.NewRegistry())
}

func TestArenaManager_Join(t *testing.T) {
	t.Run("First joiner waits, second gets paired", func(t *testing.T) {
		manager := newArenaManager()

		// When: the first player joins matchmaking
		first, err := manager.Join("p1", "alice")

		// Then: they end up waiting in a fresh room
		require.NoError(t, err)
		assert.Equal(t, JoinStatusWaiting, first.Status)
		assert.NotEmpty(t, first.RoomID)
		assert.Nil(t, first.State)

		// When: a second player joins
		second, err := manager.Join("p2", "bob")

		// Then: they are paired into the same room
		require.NoError(t, err)
		assert.Equal(t, JoinStatusPaired, second.Status)
		assert.Equal(t, first.RoomID, second.RoomID)
		require.NotNil(t, second.State)
		assert.True(t, second.State.Started)
	})

	t.Run("Concurrent joiners always pair up", func(t *testing.T) {
		// the whole join decision runs in one registry critical section, so
		// two racing joiners must never both open waiting rooms
		for i := 0; i < 200; i++ {
			manager := newArenaManager()

			results := make(chan *JoinResult, 2)

			var wg sync.WaitGroup
			for _, playerID := range []string{"p1", "p2"} {
				wg.Add(1)
				go func(playerID string) {
					defer wg.Done()

					result, err := manager.Join(playerID, playerID)
					assert.NoError(t, err)
					results <- result
				}(playerID)
			}
			wg.Wait()
			close(results)

			first := <-results
			second := <-results
			require.Equal(t, first.RoomID, second.RoomID)
			assert.ElementsMatch(t,
				[]string{JoinStatusWaiting, JoinStatusPaired},
				[]string{first.Status, second.Status})
		}
	})

	t.Run("Refused while a game is in progress", func(t *testing.T) {
		// Given: a started two-player game and no waiting rooms
		manager := newArenaManager()
		_, err := manager.Join("p1", "alice")
		require.NoError(t, err)
		_, err = manager.Join("p2", "bob")
		require.NoError(t, err)

		// When: a third player tries to join
		_, err = manager.Join("p3", "carol")

		// Then: they are told a game is already running
		require.ErrorIs(t, err, apperror.ErrGameInProgress)
	})
}

func TestArenaManager_MoveAndLeave(t *testing.T) {
	// Given: a paired room
	manager := newArenaManager()
	_, err := manager.Join("p1", "alice")
	require.NoError(t, err)
	paired, err := manager.Join("p2", "bob")
	require.NoError(t, err)

	// When: the player on turn moves
	mover := paired.State.Players[0].ID
	if paired.State.Players[0].Mark != paired.State.Turn {
		mover = paired.State.Players[1].ID
	}

	state, err := manager.MakeMove(mover, 1, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, state.Board[4])

	// And when: the opponent disconnects
	roomID, shed := manager.Leave("p1")

	// Then: the room is vacated and the survivor is reported
	assert.Equal(t, paired.RoomID, roomID)
	assert.Equal(t, []string{"p2"}, shed)

	_, err = manager.MakeMove("p2", 0, 0)
	require.ErrorIs(t, err, apperror.ErrNotInRoom)
}
