package bot

import (
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	// DifficultySimple picks a uniformly random empty cell.
	DifficultySimple = "simple"
	// DifficultyNormal plays win > block > center > corner > random.
	DifficultyNormal = "normal"
	// DifficultyHard runs a full minimax search and never loses.
	DifficultyHard = "hard"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// corner cells of the 3x3 board; the center is index 4.
var corners = []int{0, 2, 6, 8}

const centerCell = 4

// PickMove - selects a cell for the engine playing mark on the given board.
// The board is taken by value, so trial moves never leak back to the caller.
// An unknown difficulty falls back to DifficultyNormal.
func PickMove(board [9]string, mark, difficulty string) (int, error) {
	available := availableMoves(board)
	if len(available) == 0 {
		return 0, ErrNoAvailableMoves
	}

	switch difficulty {
	case DifficultySimple:
		return randomMove(available), nil
	case DifficultyHard:
		return hardMove(board, mark, available), nil
	default:
		return normalMove(board, mark, available), nil
	}
}

func availableMoves(board [9]string) []int {
	moves := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

func randomMove(available []int) int {
	return available[rand.Intn(len(available))] //nolint: gosec // it's ok
}

// normalMove applies the rule ladder in strict priority order: the first rule
// that yields a cell wins.
func normalMove(board [9]string, mark string, available []int) int {
	if cell, ok := findWinningMove(board, mark); ok {
		return cell
	}

	if cell, ok := findWinningMove(board, opponentOf(mark)); ok {
		return cell
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell
	}

	var openCorners []int
	for _, corner := range corners {
		if board[corner] == entity.EmptyCell {
			openCorners = append(openCorners, corner)
		}
	}
	if len(openCorners) > 0 {
		return randomMove(openCorners)
	}

	return randomMove(available)
}

// hardMove runs minimax over the remaining game tree. The tree is at most
// nine plies deep, so plain recursion is safe.
func hardMove(board [9]string, mark string, available []int) int {
	_, cell := minimax(board, mark, mark)
	if cell < 0 {
		return randomMove(available)
	}

	return cell
}

// findWinningMove returns a cell that completes a line for mark, if any.
// Ties break toward the lowest cell index.
func findWinningMove(board [9]string, mark string) (int, bool) {
	for _, cell := range availableMoves(board) {
		board[cell] = mark
		won := entity.BoardResult(board) == mark
		board[cell] = entity.EmptyCell

		if won {
			return cell, true
		}
	}

	return 0, false
}

// minimax scores the position for the engine playing own: +1 for an engine
// win, -1 for an opponent win, 0 for a tie. The engine maximizes on its own
// turn and minimizes on the opponent's; ties break toward the first move
// encountered in ascending cell order. Returns -1 as the cell on terminal
// positions.
func minimax(board [9]string, current, own string) (int, int) {
	switch entity.BoardResult(board) {
	case own:
		return 1, -1
	case opponentOf(own):
		return -1, -1
	case entity.PlayerTie:
		return 0, -1
	}

	bestCell := -1

	if current == own {
		bestScore := -2
		for _, cell := range availableMoves(board) {
			board[cell] = current
			score, _ := minimax(board, opponentOf(current), own)
			board[cell] = entity.EmptyCell

			if score > bestScore {
				bestScore = score
				bestCell = cell
			}
		}

		return bestScore, bestCell
	}

	bestScore := 2
	for _, cell := range availableMoves(board) {
		board[cell] = current
		score, _ := minimax(board, opponentOf(current), own)
		board[cell] = entity.EmptyCell

		if score < bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	return bestScore, bestCell
}

func opponentOf(mark string) string {
	if mark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}
