package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

type turnRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(ctx *gin.Context) {
	ctx.String(http.StatusOK, "pong")
}

func (that *Server) handleNewGame(ctx *gin.Context) {
	game, err := that.game.NewGame(ctx.Request.Context())
	if err != nil {
		that.sendError(ctx, "handleNewGame", err)
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

func (that *Server) handleGetGame(ctx *gin.Context) {
	game, err := that.game.GetGame(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.sendError(ctx, "handleGetGame", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

func (that *Server) handleTurn(ctx *gin.Context) {
	var req turnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	game, err := that.game.MakeTurn(ctx.Request.Context(), ctx.Param("id"), *req.Cell)
	if err != nil {
		that.sendError(ctx, "handleTurn", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

func (that *Server) handleRestart(ctx *gin.Context) {
	game, err := that.game.Restart(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.sendError(ctx, "handleRestart", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

func (that *Server) handleQuit(ctx *gin.Context) {
	if err := that.game.QuitGame(ctx.Request.Context(), ctx.Param("id")); err != nil {
		that.sendError(ctx, "handleQuit", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (that *Server) sendError(ctx *gin.Context, method string, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	ctx.JSON(status, errorResponse{Error: message})
}

// errorStatus maps domain errors to a status code and a message safe to show to clients.
func errorStatus(err error) (int, string) {
	for _, known := range []struct {
		err    error
		status int
	}{
		{repository.ErrGameNotFound, http.StatusNotFound},
		{entity.ErrInvalidCell, http.StatusBadRequest},
		{apperror.ErrCellOccupied, http.StatusConflict},
		{apperror.ErrNotYourTurn, http.StatusConflict},
		{apperror.ErrGameFinished, http.StatusConflict},
		{repository.ErrConcurrentUpdate, http.StatusConflict},
	} {
		if errors.Is(err, known.err) {
			return known.status, known.err.Error()
		}
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
