package usecase

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/arena"
)

const (
	JoinStatusWaiting = "waiting"
	JoinStatusPaired  = "paired"
)

// JoinResult is the outcome of a matchmaking request. State is set once the
// room is paired; a waiting creator only learns the room id.
type JoinResult struct {
	RoomID string
	Status string
	State  *arena.RoomState
}

// ArenaManager drives player-vs-player matchmaking on top of the room
// registry.
type ArenaManager struct {
	logger   *slog.Logger
	registry *arena.Registry
}

func NewArenaManager(logger *slog.Logger, registry *arena.Registry) *ArenaManager {
	return &ArenaManager{
		logger:   logger,
		registry: registry,
	}
}

// Join - pairs the player into a waiting room when one exists; otherwise
// creates one, unless a started game is already running, in which case the
// joiner is refused. The join-else-refuse-else-create decision runs in a
// single registry critical section, so concurrent joiners always pair up.
func (that *ArenaManager) Join(playerID, name string) (*JoinResult, error) {
	log := that.logger.With("method", "Join", "playerID", playerID)

	state, err := that.registry.JoinOrCreate(playerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to join matchmaking: %w", err)
	}

	if state.Waiting {
		log.Info("created waiting room", "roomID", state.RoomID)

		return &JoinResult{RoomID: state.RoomID, Status: JoinStatusWaiting}, nil
	}

	log.Info("paired into room", "roomID", state.RoomID)

	return &JoinResult{RoomID: state.RoomID, Status: JoinStatusPaired, State: state}, nil
}

// MakeMove - routes a move to the player's room.
func (that *ArenaManager) MakeMove(playerID string, row, col int) (*arena.RoomState, error) {
	state, err := that.registry.RouteMove(playerID, row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to route move: %w", err)
	}

	return state, nil
}

// ResetRound - starts the next round in the player's room. A no-op state
// comes back once the series is finished.
func (that *ArenaManager) ResetRound(playerID string) (*arena.RoomState, error) {
	state, err := that.registry.ResetRound(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset round: %w", err)
	}

	return state, nil
}

// NewSeries - restarts the series in the player's room with fresh seats and
// marks.
func (that *ArenaManager) NewSeries(playerID string) (*arena.RoomState, error) {
	state, err := that.registry.NewSeries(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start new series: %w", err)
	}

	return state, nil
}

// RoomState - snapshots the current state of the player's room.
func (that *ArenaManager) RoomState(playerID string) (*arena.RoomState, error) {
	state, err := that.registry.RoomStateFor(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot room: %w", err)
	}

	return state, nil
}

// Leave - removes the player from their room on disconnect. Returns the
// vacated room id and the identities of any opponents left behind, so the
// transport can tell them.
func (that *ArenaManager) Leave(playerID string) (string, []string) {
	roomID, shed := that.registry.Leave(playerID)
	if roomID != "" {
		that.logger.Info("player left room", "method", "Leave", "playerID", playerID, "roomID", roomID)
	}

	return roomID, shed
}
