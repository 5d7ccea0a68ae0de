package entity

import (
	"errors"
	"fmt"
)

// Mark is the content of a single board cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

// Outcome is derived from the board contents and never stored on its own.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWinnerX    Outcome = "winner_x"
	OutcomeWinnerO    Outcome = "winner_o"
	OutcomeTie        Outcome = "tie"
)

var ErrInvalidCell = errors.New("invalid cell index")

// Line is a triple of cell indexes.
type Line [3]int

// WinLines are checked in this order: rows, columns, diagonals.
var WinLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds cells in row-major order: index = row*3 + col.
type Board [BoardSize]Mark

// Result is the classification of a board.
type Result struct {
	Outcome Outcome
	Line    *Line
}

func (that Result) IsTerminal() bool {
	return that.Outcome != OutcomeInProgress
}

// Winner returns the winning mark, or EmptyCell for a tie or an unfinished game.
func (that Result) Winner() Mark {
	switch that.Outcome {
	case OutcomeWinnerX:
		return PlayerX
	case OutcomeWinnerO:
		return PlayerO
	default:
		return EmptyCell
	}
}

// CheckWinner reports the first complete line, a tie on a full board, or a game in progress.
func CheckWinner(board Board) Result {
	for i := range WinLines {
		line := WinLines[i]
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{Outcome: outcomeFor(a), Line: &line}
		}
	}

	// the game will continue until all the squares are full
	if board.HasEmpty() {
		return Result{Outcome: OutcomeInProgress}
	}

	return Result{Outcome: OutcomeTie}
}

func outcomeFor(mark Mark) Outcome {
	if mark == PlayerX {
		return OutcomeWinnerX
	}
	return OutcomeWinnerO
}

func (that *Board) HasEmpty() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return true
		}
	}
	return false
}

// EmptyCells lists free cells in index order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that *Board) Reset() {
	for i := range that {
		that[i] = EmptyCell
	}
}

// CellIndex maps a zero-based grid position to a cell index.
func CellIndex(row, col int) (int, error) {
	if row < 0 || row >= BoardSide || col < 0 || col >= BoardSide {
		return 0, fmt.Errorf("%w: row %d col %d", ErrInvalidCell, row, col)
	}

	return row*BoardSide + col, nil
}

func ValidCell(cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}
	return nil
}

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}
