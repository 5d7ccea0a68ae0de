package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/events"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, events ...events.Event)
}

type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	publisher eventPublisher
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, publisher eventPublisher) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		gameRepo:  gameRepo,
		publisher: publisher,
	}
}

// NewGame starts an empty game where the human moves first.
func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.publisher.Publish(ctx, events.NewEvent(events.GameStarted, game))

	that.logger.Info("game created", "method", "NewGame", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays the human move on cell and the computer's answer. A rejected move is not stored.
// Concurrent turns on one game are serialized by the repository; the turn is replayed on the newer game.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	var turn tictactoe.Turn
	game, err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		var turnErr error
		turn, turnErr = tictactoe.MakeTurn(game, cell)
		return turnErr
	})
	if err != nil {
		log.Debug("turn rejected", "cell", cell, "error", err)
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	that.publisher.Publish(ctx, turnEvents(game, turn)...)

	log.Debug("turn played", "cell", cell, "computer", turn.ComputerCell, "score", turn.Score, "state", game.State)

	if game.IsOver() {
		log.Info("game finished", "outcome", game.Outcome)
	}

	return game, nil
}

// Restart clears the board of an existing game.
func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		tictactoe.Restart(game)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	that.publisher.Publish(ctx, events.NewEvent(events.GameRestarted, game))

	that.logger.Info("game restarted", "method", "Restart", "gameID", id)

	return game, nil
}

// QuitGame drops the game session.
func (that *GameManager) QuitGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "QuitGame", "gameID", id)

	return nil
}

func turnEvents(game *entity.Game, turn tictactoe.Turn) []events.Event {
	result := []events.Event{
		events.NewEvent(events.GameTurn, game).WithMove(game.HumanMark, turn.HumanCell),
	}

	if turn.ComputerCell != nil {
		result = append(result, events.NewEvent(events.GameTurn, game).WithMove(game.ComputerMark, *turn.ComputerCell))
	}

	if game.IsOver() {
		result = append(result, events.NewEvent(events.GameFinished, game))
	}

	return result
}
