package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("cell is required")
)

func (that *Server) handleNewGame(ctx context.Context, _ *RequestPayload) (*entity.Game, error) {
	return that.game.NewGame(ctx)
}

func (that *Server) handleGetGame(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.game.GetGame(ctx, req.GameID)
}

func (that *Server) handleTurn(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	if req.Cell == nil {
		return nil, errCellRequired
	}

	return that.game.MakeTurn(ctx, req.GameID, *req.Cell)
}

func (that *Server) handleRestart(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.game.Restart(ctx, req.GameID)
}

// handleQuit replies without a game once the session is gone.
func (that *Server) handleQuit(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return nil, that.game.QuitGame(ctx, req.GameID)
}

// publicError hides unexpected errors from clients and logs them instead.
func (that *Server) publicError(action string, err error) string {
	for _, known := range []error{
		errGameIDRequired,
		errCellRequired,
		repository.ErrGameNotFound,
		entity.ErrInvalidCell,
		apperror.ErrCellOccupied,
		apperror.ErrNotYourTurn,
		apperror.ErrGameFinished,
		repository.ErrConcurrentUpdate,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	that.logger.Error("failed to process message", "action", action, "error", err)

	return "internal error"
}
