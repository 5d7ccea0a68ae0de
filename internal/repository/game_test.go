package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	t.Run("Stores the game with a ttl", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a new game
		game := entity.NewGame("123")

		// When: CreateOrUpdate is called
		err := gameRepo.CreateOrUpdate(ctx, game)

		// Then: the key exists and expires
		require.NoError(t, err)

		ttl, err := st.Storage.TTL(ctx, "game:123").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Hour)
	})

	t.Run("Overwrites an existing game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a stored game
		game := entity.NewGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the game changes and is stored again
		require.NoError(t, game.PlaceHuman(4))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// Then: the stored copy has the new board
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, stored.Board[4])
		assert.Equal(t, entity.StateComputerToMove, stored.State)
	})
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a finished game with a winning line and a computer move
		game := entity.NewGame("123")
		game.Board = entity.Board{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}
		game.State = entity.StateGameOver
		game.Outcome = entity.OutcomeWinnerX
		line := entity.WinLines[0]
		game.WinLine = &line
		move := 2
		game.LastComputerMove = &move

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		require.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_Update(t *testing.T) {
	t.Run("Stores the updated game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a stored game
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123")))

		// When: the human move is applied through Update
		updated, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			return game.PlaceHuman(4)
		})

		// Then: the returned and the stored game both carry the move
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, updated.Board[4])

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, updated, stored)

		ttl, err := st.Storage.TTL(ctx, "game:123").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("Failed update stores nothing", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)
		errRejected := errors.New("rejected")

		// Given: a stored game
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123")))

		// When: the update changes the game and then fails
		updated, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			game.Board[0] = entity.PlayerX
			return errRejected
		})

		// Then: the error is returned as is and the stored game is untouched
		require.ErrorIs(t, err, errRejected)
		assert.Nil(t, updated)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, stored.Board[0])
	})

	t.Run("Unknown game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		_, err := gameRepo.Update(ctx, "missing", func(*entity.Game) error { return nil })

		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Concurrent updates are not lost", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a stored game
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123")))

		// When: several writers mark different cells at the same time
		writers := []int{0, 2, 4, 6, 8}
		errs := make(chan error, len(writers))

		var wg sync.WaitGroup
		for _, cell := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
					game.Board[cell] = entity.PlayerO
					return nil
				})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		// Then: every write is kept
		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		for _, cell := range writers {
			assert.Equal(t, entity.PlayerO, stored.Board[cell], "cell %d", cell)
		}
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a stored game
		game := entity.NewGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
