package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// State is the position of a game in its turn cycle.
type State string

const (
	StateAwaitingHuman  State = "awaiting_human_move"
	StateComputerToMove State = "computer_to_move"
	StateGameOver       State = "game_over"
)

const (
	HumanMark    = PlayerO
	ComputerMark = PlayerX
)

type Game struct {
	ID               string  `json:"id"`
	Board            Board   `json:"board"`
	State            State   `json:"state"`
	Outcome          Outcome `json:"outcome"`
	WinLine          *Line   `json:"win_line,omitempty"`
	LastComputerMove *int    `json:"last_computer_move,omitempty"`
	HumanMark        Mark    `json:"human_mark"`
	ComputerMark     Mark    `json:"computer_mark"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:           id,
		State:        StateAwaitingHuman,
		Outcome:      OutcomeInProgress,
		HumanMark:    HumanMark,
		ComputerMark: ComputerMark,
	}
}

// PlaceHuman puts the human mark on cell. The game is unchanged on error.
func (that *Game) PlaceHuman(cell int) error {
	if err := that.confirmTurn(StateAwaitingHuman); err != nil {
		return err
	}

	if err := that.place(HumanMark, cell); err != nil {
		return err
	}

	that.advance(StateComputerToMove)

	return nil
}

// PlaceComputer puts the computer mark on cell. The game is unchanged on error.
func (that *Game) PlaceComputer(cell int) error {
	if err := that.confirmTurn(StateComputerToMove); err != nil {
		return err
	}

	if err := that.place(ComputerMark, cell); err != nil {
		return err
	}

	that.LastComputerMove = &cell
	that.advance(StateAwaitingHuman)

	return nil
}

// Restart empties the board and clears the outcome and winning line.
func (that *Game) Restart() {
	that.Board.Reset()
	that.State = StateAwaitingHuman
	that.Outcome = OutcomeInProgress
	that.WinLine = nil
	that.LastComputerMove = nil
}

func (that *Game) IsOver() bool {
	return that.State == StateGameOver
}

func (that *Game) IsHumanTurn() bool {
	return that.State == StateAwaitingHuman
}

func (that *Game) IsComputerTurn() bool {
	return that.State == StateComputerToMove
}

// Winner returns the winning mark, or EmptyCell when nobody has won.
func (that *Game) Winner() Mark {
	return Result{Outcome: that.Outcome}.Winner()
}

func (that *Game) confirmTurn(expected State) error {
	switch that.State {
	case expected:
		return nil
	case StateGameOver:
		return apperror.ErrGameFinished
	case StateAwaitingHuman, StateComputerToMove:
		return apperror.ErrNotYourTurn
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameState, that.State)
	}
}

func (that *Game) place(mark Mark, cell int) error {
	if err := ValidCell(cell); err != nil {
		return err
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = mark

	return nil
}

// advance moves to next unless the last placement ended the game.
func (that *Game) advance(next State) {
	result := CheckWinner(that.Board)
	that.Outcome = result.Outcome

	if result.IsTerminal() {
		that.State = StateGameOver
		that.WinLine = result.Line
		return
	}

	that.State = next
}
