package tictactoe

import (
	"errors"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// FullDepth covers every ply of a 3x3 game.
const FullDepth = entity.BoardSize

const (
	scoreWinX = 1
	scoreWinO = -1
	scoreDraw = 0
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Evaluate scores a classified position from X's point of view.
func Evaluate(result entity.Result) int {
	switch result.Outcome {
	case entity.OutcomeWinnerX:
		return scoreWinX
	case entity.OutcomeWinnerO:
		return scoreWinO
	default:
		return scoreDraw
	}
}

// Minimax returns the value of the position under optimal play, X maximizing and O minimizing.
// Cells are tried in index order and every speculative placement is undone before returning.
func Minimax(board *entity.Board, depth, alpha, beta int, maximizing bool) int {
	result := entity.CheckWinner(*board)
	if result.IsTerminal() || depth <= 0 {
		return Evaluate(result)
	}

	if maximizing {
		best := math.MinInt
		for cell := range board {
			if board[cell] != entity.EmptyCell {
				continue
			}

			board[cell] = entity.PlayerX
			score := Minimax(board, depth-1, alpha, beta, false)
			board[cell] = entity.EmptyCell

			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = entity.PlayerO
		score := Minimax(board, depth-1, alpha, beta, true)
		board[cell] = entity.EmptyCell

		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// BestMove picks X's move on board. The first cell wins ties.
func BestMove(board *entity.Board) (int, int, error) {
	bestCell, bestScore := -1, math.MinInt

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = entity.PlayerX
		score := Minimax(board, FullDepth, math.MinInt, math.MaxInt, false)
		board[cell] = entity.EmptyCell

		if score > bestScore {
			bestCell, bestScore = cell, score
		}
	}

	if bestCell < 0 {
		return 0, 0, ErrNoAvailableMoves
	}

	return bestCell, bestScore, nil
}
