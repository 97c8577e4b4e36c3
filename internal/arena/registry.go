package arena

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Registry is the process-wide room authority. It exclusively owns the room
// map and the player-to-room reverse index, and one mutex serializes every
// mutation: connection handlers run concurrently, but joins, moves and
// leaves apply one at a time.
type Registry struct {
	mu         sync.Mutex
	rooms      map[string]*Room
	playerRoom map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:      make(map[string]*Room),
		playerRoom: make(map[string]string),
	}
}

// CreateRoom - allocates a waiting room seated by the given player and
// returns its id.
func (that *Registry) CreateRoom(playerID, name string) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID := that.newRoomID(playerID)

	that.rooms[roomID] = NewRoom(roomID, &entity.Player{ID: playerID, Name: name})
	that.playerRoom[playerID] = roomID

	return roomID
}

// newRoomID derives an id from the creator's identity plus a random suffix,
// retrying on the off chance of a collision. Callers hold the lock.
func (that *Registry) newRoomID(playerID string) string {
	prefix := playerID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}

	for {
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			continue
		}

		roomID := fmt.Sprintf("room_%s_%04d", prefix, n)
		if _, exists := that.rooms[roomID]; !exists {
			return roomID
		}
	}
}

// JoinRoom - seats the player in the given room and triggers the room's
// pairing transition.
func (that *Registry) JoinRoom(roomID, playerID, name string) (*RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	if err := room.AddPlayer(&entity.Player{ID: playerID, Name: name}); err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", roomID, err)
	}

	that.playerRoom[playerID] = roomID

	return room.State(), nil
}

// JoinAvailableRoom - seats the player in some waiting single-player room.
// Which waiting room wins is unspecified beyond "one of them".
func (that *Registry) JoinAvailableRoom(playerID, name string) (*RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room := that.availableRoom()
	if room == nil {
		return nil, apperror.ErrNoWaitingRooms
	}

	if err := room.AddPlayer(&entity.Player{ID: playerID, Name: name}); err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", room.ID, err)
	}

	that.playerRoom[playerID] = room.ID

	return room.State(), nil
}

// JoinOrCreate - resolves a whole matchmaking request in one critical
// section: seats the player in some waiting room; when none exists, refuses
// the joiner if a started game is already running, and otherwise opens a
// fresh waiting room for them. Concurrent joiners therefore pair up instead
// of both opening waiting rooms.
func (that *Registry) JoinOrCreate(playerID, name string) (*RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if room := that.availableRoom(); room != nil {
		if err := room.AddPlayer(&entity.Player{ID: playerID, Name: name}); err != nil {
			return nil, fmt.Errorf("failed to join room %s: %w", room.ID, err)
		}

		that.playerRoom[playerID] = room.ID

		return room.State(), nil
	}

	for _, room := range that.rooms {
		if room.IsStarted() {
			return nil, apperror.ErrGameInProgress
		}
	}

	roomID := that.newRoomID(playerID)
	room := NewRoom(roomID, &entity.Player{ID: playerID, Name: name})

	that.rooms[roomID] = room
	that.playerRoom[playerID] = roomID

	return room.State(), nil
}

// AvailableRoomID - returns the id of some waiting single-player room.
func (that *Registry) AvailableRoomID() (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room := that.availableRoom()
	if room == nil {
		return "", false
	}

	return room.ID, true
}

func (that *Registry) availableRoom() *Room {
	for _, room := range that.rooms {
		if room.Waiting && len(room.Players) == 1 {
			return room
		}
	}

	return nil
}

// RouteMove - resolves the player's room through the reverse index and
// applies the move there.
func (that *Registry) RouteMove(playerID string, row, col int) (*RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomOf(playerID)
	if err != nil {
		return nil, err
	}

	if err = room.MakeMove(playerID, row, col); err != nil {
		return nil, fmt.Errorf("failed to make move in room %s: %w", room.ID, err)
	}

	return room.State(), nil
}

// ResetRound - advances the player's room to the next round of its series.
func (that *Registry) ResetRound(playerID string) (*RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomOf(playerID)
	if err != nil {
		return nil, err
	}

	room.ResetRound()

	return room.State(), nil
}

// NewSeries - restarts the series in the player's room from scratch.
func (that *Registry) NewSeries(playerID string) (*RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomOf(playerID)
	if err != nil {
		return nil, err
	}

	room.NewSeries()

	return room.State(), nil
}

// RoomStateFor - snapshots the room the player is seated in.
func (that *Registry) RoomStateFor(playerID string) (*RoomState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomOf(playerID)
	if err != nil {
		return nil, err
	}

	return room.State(), nil
}

// Leave - removes the player from their room. When membership drops to one
// or less, the room is deleted and every shed participant's reverse-index
// entry is purged along with the leaver's. Returns the vacated room id and
// the identities of the participants left behind.
func (that *Registry) Leave(playerID string) (string, []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, ok := that.playerRoom[playerID]
	if !ok {
		return "", nil
	}

	delete(that.playerRoom, playerID)

	room, ok := that.rooms[roomID]
	if !ok {
		return roomID, nil
	}

	room.RemovePlayer(playerID)

	var shed []string
	if len(room.Players) <= 1 {
		for _, player := range room.Players {
			shed = append(shed, player.ID)
			delete(that.playerRoom, player.ID)
		}
		delete(that.rooms, roomID)
	}

	return roomID, shed
}

// RoomCount - the number of rooms, waiting or not.
func (that *Registry) RoomCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}

// WaitingRoomCount - the number of rooms still waiting for an opponent.
func (that *Registry) WaitingRoomCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for _, room := range that.rooms {
		if room.Waiting {
			count++
		}
	}

	return count
}

// ActiveRoomCount - the number of rooms no longer waiting.
func (that *Registry) ActiveRoomCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for _, room := range that.rooms {
		if !room.Waiting {
			count++
		}
	}

	return count
}

// StartedGameCount - the number of rooms with two players and a started
// game.
func (that *Registry) StartedGameCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for _, room := range that.rooms {
		if room.IsStarted() {
			count++
		}
	}

	return count
}

func (that *Registry) roomOf(playerID string) (*Room, error) {
	roomID, ok := that.playerRoom[playerID]
	if !ok {
		return nil, apperror.ErrNotInRoom
	}

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return room, nil
}
