package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTurn(t *testing.T) {
	t.Run("Computer answers a non-terminal human move", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123")

		// When: the human plays the center
		turn, err := MakeTurn(game, 4)
		require.NoError(t, err)

		// Then: the computer has replied and the human is to move again
		assert.Equal(t, entity.StateAwaitingHuman, game.State)
		assert.Equal(t, 4, turn.HumanCell)
		require.NotNil(t, turn.ComputerCell)
		require.NotNil(t, game.LastComputerMove)
		assert.Equal(t, *turn.ComputerCell, *game.LastComputerMove)
		assert.Equal(t, 0, turn.Score)
		assert.Equal(t, entity.PlayerX, game.Board[*game.LastComputerMove])
		assert.Len(t, game.Board.EmptyCells(), 7)
	})

	t.Run("Computer takes a winning cell", func(t *testing.T) {
		// Given: X threatens the top row and it is the human's turn
		game := entity.NewGame("123")
		game.Board = entity.Board{x, x, e, o, e, e, o, e, e}

		// When: the human does not block
		turn, err := MakeTurn(game, 8)
		require.NoError(t, err)

		// Then: the computer completes the row and the game is over
		require.NotNil(t, turn.ComputerCell)
		assert.Equal(t, 2, *turn.ComputerCell)
		assert.Equal(t, 1, turn.Score)
		assert.Equal(t, entity.StateGameOver, game.State)
		assert.Equal(t, entity.OutcomeWinnerX, game.Outcome)
		require.NotNil(t, game.WinLine)
		assert.Equal(t, entity.Line{0, 1, 2}, *game.WinLine)
	})

	t.Run("Game ends without a computer reply when the human fills the board", func(t *testing.T) {
		// Given: one free cell and the human to move
		game := entity.NewGame("123")
		game.Board = entity.Board{x, o, x, x, o, o, o, x, e}

		// When: the human fills it
		turn, err := MakeTurn(game, 8)
		require.NoError(t, err)

		// Then: the game is a tie and the computer did not move
		assert.Nil(t, turn.ComputerCell)
		assert.Equal(t, entity.StateGameOver, game.State)
		assert.Equal(t, entity.OutcomeTie, game.Outcome)
		assert.Nil(t, game.LastComputerMove)
	})

	t.Run("Error on cell already occupied leaves the game unchanged", func(t *testing.T) {
		// Given: a game in progress
		game := entity.NewGame("123")
		_, err := MakeTurn(game, 0)
		require.NoError(t, err)
		before := *game

		// When: the human plays the computer's cell
		_, err = MakeTurn(game, *game.LastComputerMove)

		// Then: ErrCellOccupied is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before.Board, game.Board)
		assert.Equal(t, before.State, game.State)
	})

	t.Run("Invalid cell", func(t *testing.T) {
		game := entity.NewGame("123")

		_, err := MakeTurn(game, 20)

		assert.ErrorIs(t, err, entity.ErrInvalidCell)
	})

	t.Run("Move after game finished", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGame("123")
		game.Board = entity.Board{x, x, x, e, o, e, e, o, e}
		game.State = entity.StateGameOver
		game.Outcome = entity.OutcomeWinnerX

		// When: the human tries to move
		_, err := MakeTurn(game, 3)

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestMakeTurn_ComputerFailureRestoresGame(t *testing.T) {
	cases := map[string]moveChooser{
		"Chooser error": func(*entity.Board) (int, int, error) {
			return 0, 0, ErrNoAvailableMoves
		},
		"Chooser picks the human's cell": func(*entity.Board) (int, int, error) {
			return 4, 0, nil
		},
	}

	for name, choose := range cases {
		t.Run(name, func(t *testing.T) {
			// Given: a new game
			game := entity.NewGame("123")
			before := *game

			// When: the computer cannot answer the human move in the center
			turn, err := makeTurn(game, 4, choose)

			// Then: the human move is undone and the human is still to move
			require.Error(t, err)
			assert.Equal(t, Turn{}, turn)
			assert.Equal(t, before, *game)
			assert.Equal(t, entity.EmptyCell, game.Board[4])
			assert.Equal(t, entity.StateAwaitingHuman, game.State)
		})
	}
}

func TestRestart(t *testing.T) {
	// Given: a game that the computer has won
	game := entity.NewGame("123")
	game.Board = entity.Board{x, x, e, o, e, e, o, e, e}
	_, err := MakeTurn(game, 8)
	require.NoError(t, err)
	require.True(t, game.IsOver())

	// When: the game is restarted
	Restart(game)

	// Then: the board is empty and the human can move again
	assert.Equal(t, entity.NewGame("123"), game)
	_, err = MakeTurn(game, 0)
	require.NoError(t, err)
}

func TestMakeTurn_ComputerNeverLoses(t *testing.T) {
	var play func(game entity.Game)
	play = func(game entity.Game) {
		for _, cell := range game.Board.EmptyCells() {
			// Given: any legal human move
			next := game

			// When: the turn is played
			_, err := MakeTurn(&next, cell)
			require.NoError(t, err)

			// Then: the human never wins
			require.NotEqual(t, entity.OutcomeWinnerO, next.Outcome, "board %v", next.Board)

			if !next.IsOver() {
				play(next)
			}
		}
	}

	play(*entity.NewGame("123"))
}
