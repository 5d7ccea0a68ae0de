package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Turn records the placements made by one MakeTurn call.
type Turn struct {
	HumanCell    int
	ComputerCell *int
	Score        int
}

// moveChooser picks the computer's cell and its minimax score.
type moveChooser func(board *entity.Board) (int, int, error)

// MakeTurn applies the human move and, unless it ended the game, answers with the computer's move.
// On error the game is left as it was before the call.
func MakeTurn(game *entity.Game, cell int) (Turn, error) {
	return makeTurn(game, cell, BestMove)
}

func makeTurn(game *entity.Game, cell int, choose moveChooser) (Turn, error) {
	before := *game

	if err := game.PlaceHuman(cell); err != nil {
		return Turn{}, fmt.Errorf("invalid turn: %w", err)
	}

	turn := Turn{HumanCell: cell}
	if game.IsOver() {
		turn.Score = Evaluate(entity.CheckWinner(game.Board))
		return turn, nil
	}

	computerCell, score, err := choose(&game.Board)
	if err == nil {
		err = game.PlaceComputer(computerCell)
	}

	if err != nil {
		*game = before
		return Turn{}, fmt.Errorf("computer failed to make turn: %w", err)
	}

	turn.ComputerCell = &computerCell
	turn.Score = score

	return turn, nil
}

// Restart resets the game to an empty board awaiting the human.
func Restart(game *entity.Game) {
	game.Restart()
}
