package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy of the game", func(t *testing.T) {
		// Given: an empty store and a game
		gameRepo := NewMemoryGameRepository(0)
		game := sampleGame("abc")

		// When: saving and then changing the caller's copy
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))
		game.History[1].Board[0] = entity.PlayerO

		// Then: the stored game is unaffected
		stored, err := gameRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, stored.History[1].Board[0])
		assert.Equal(t, 1, stored.Cursor)
	})

	t.Run("Unknown game is not found", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)

		_, err := gameRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, sampleGame("abc")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "abc"))

		_, err := gameRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		require.ErrorIs(t, gameRepo.DeleteByID(ctx, "abc"), apperror.ErrGameNotFound)
	})

	t.Run("Games expire after the ttl", func(t *testing.T) {
		// Given: a store with a controllable clock
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		gameRepo := NewMemoryGameRepository(time.Minute).(*memoryGame)
		gameRepo.now = func() time.Time { return now }
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, sampleGame("abc")))

		// When: the ttl has not passed yet
		now = now.Add(59 * time.Second)
		_, err := gameRepo.GetByID(ctx, "abc")

		// Then: the game is still there
		require.NoError(t, err)

		// When: the ttl has passed
		now = now.Add(time.Second)
		_, err = gameRepo.GetByID(ctx, "abc")

		// Then: the game is gone
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Update changes the stored game", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(0)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, sampleGame("abc")))

		// When: Update changes the sort order
		err := gameRepo.Update(ctx, "abc", func(game *entity.GameState) error {
			game.Ascending = false
			return nil
		})

		// Then: the change is visible to the next reader
		require.NoError(t, err)
		stored, err := gameRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.False(t, stored.Ascending)
	})

	t.Run("Concurrent updates are all applied", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)
		game := sampleGame("abc")
		game.Cursor = 0
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		advanceConcurrently(ctx, t, "abc", 50, gameRepo)

		stored, err := gameRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, 50, stored.Cursor)
	})

	t.Run("Failed update keeps the stored game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, sampleGame("abc")))
		errRejected := errors.New("rejected")

		err := gameRepo.Update(ctx, "abc", func(game *entity.GameState) error {
			game.Cursor = 0
			return errRejected
		})

		require.ErrorIs(t, err, errRejected)
		stored, err := gameRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Cursor)
	})

	t.Run("Updating an unknown game fails", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)

		err := gameRepo.Update(ctx, "missing", func(*entity.GameState) error { return nil })

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
