package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/events"
)

type mockGameRepo struct {
	mock.Mock

	updateErr error
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// Update runs the transaction against the GetByID and CreateOrUpdate expectations.
// A non-nil updateErr simulates a transaction that gave up before reading the game.
func (that *mockGameRepo) Update(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error) {
	if that.updateErr != nil {
		return nil, that.updateErr
	}

	game, err := that.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = update(game); err != nil {
		return nil, err
	}

	if err = that.CreateOrUpdate(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type recordingPublisher struct {
	events []events.Event
}

func (that *recordingPublisher) Publish(_ context.Context, evts ...events.Event) {
	that.events = append(that.events, evts...)
}

func (that *recordingPublisher) types() []string {
	types := make([]string, 0, len(that.events))
	for _, event := range that.events {
		types = append(types, event.Type)
	}
	return types
}
