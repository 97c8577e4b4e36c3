package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")

	ErrRoomFull       = errors.New("room is already full")
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotInRoom      = errors.New("player is not in a room")
	ErrNoWaitingRooms = errors.New("no waiting rooms")
	ErrGameInProgress = errors.New("a game is already in progress")

	ErrSessionNotFound = errors.New("session not found")
)
