package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/server"
)

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	QuitGame(ctx context.Context, id string) error
}

type Server struct {
	logger *slog.Logger
	game   gameUseCase
	router *gin.Engine
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	gin.SetMode(gin.ReleaseMode)

	that := &Server{
		logger: logger.With("component", "rest"),
		game:   game,
		router: gin.New(),
	}

	that.router.Use(gin.Recovery(), that.requestLogger())

	that.router.GET("/ping", that.handlePing)

	games := that.router.Group("/games")
	games.POST("", that.handleNewGame)
	games.GET("/:id", that.handleGetGame)
	games.POST("/:id/turns", that.handleTurn)
	games.POST("/:id/restart", that.handleRestart)
	games.DELETE("/:id", that.handleQuit)

	return that
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	return server.Run(ctx, port, that.router)
}

func (that *Server) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		that.logger.Debug("request served",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
