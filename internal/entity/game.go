package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	boardSide = 3
)

// WinCombos lists the eight winning lines: rows first, then columns, then diagonals.
// The scan order is fixed so that result checks stay deterministic.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game is the state of one 3x3 board. Cells are addressed either by a flat
// index 0-8 or by (row, col) coordinates; both resolve to the same cell via
// row*3+col.
type Game struct {
	Board   [9]string `json:"board"`
	Turn    string    `json:"turn"`
	Winner  string    `json:"winner"`
	Started bool      `json:"started"`
}

func NewGame() *Game {
	return &Game{
		Turn: PlayerX,
	}
}

// Reset - returns the game to its pristine, not-yet-started state.
func (that *Game) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = EmptyCell
	that.Started = false
}

// Start - clears the board and begins a round with firstMover to move.
// An empty firstMover defaults to X.
func (that *Game) Start(firstMover string) {
	that.Reset()
	if firstMover != EmptyCell {
		that.Turn = firstMover
	}
	that.Started = true
}

// ApplyMove - places mark on the given cell. An empty mark places whoever's
// turn it currently is. Rejected moves return a sentinel error and leave the
// game untouched.
func (that *Game) ApplyMove(cell int, mark string) error {
	if !that.Started {
		return apperror.ErrGameIsNotStarted
	}

	if that.Winner != EmptyCell {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	if mark == EmptyCell {
		mark = that.Turn
	}

	that.Board[cell] = mark
	that.Winner = BoardResult(that.Board)

	// the turn only passes while the round is still undecided
	if that.Winner == EmptyCell {
		that.Turn = toggleMark(that.Turn)
	}

	return nil
}

// ApplyMoveAt - coordinate form of ApplyMove, row and col in [0,2].
func (that *Game) ApplyMoveAt(row, col int, mark string) error {
	if row < 0 || row >= boardSide || col < 0 || col >= boardSide {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	return that.ApplyMove(row*boardSide+col, mark)
}

// AvailableMoves - returns the indices of all empty cells in ascending order.
// Recomputed on every call because the board mutates between calls.
func (that *Game) AvailableMoves() []int {
	moves := make([]int, 0, len(that.Board))
	for i, cell := range that.Board {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

// WinningLines - returns every completed line belonging to the winner, in
// scan order, so clients can highlight them. Nil while the round is open or
// when it ended in a tie.
func (that *Game) WinningLines() [][3]int {
	if that.Winner == EmptyCell || that.Winner == PlayerTie {
		return nil
	}

	var lines [][3]int
	for _, combo := range WinCombos {
		if that.Board[combo[0]] == that.Winner && that.Board[combo[1]] == that.Winner && that.Board[combo[2]] == that.Winner {
			lines = append(lines, combo)
		}
	}

	return lines
}

// IsDecided - reports whether the round has a winner or ended in a tie.
func (that *Game) IsDecided() bool {
	return that.Winner != EmptyCell
}

// BoardResult - scans the winning lines in their fixed order and returns the
// winning mark, PlayerTie for a full board without a winner, or an empty
// string while the round is still open.
func BoardResult(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == EmptyCell {
			return EmptyCell
		}
	}

	return PlayerTie
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
