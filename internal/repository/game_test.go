package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/testing/suite"
)

func newTestGame(t *testing.T, id, playerOne, playerTwo string) *entity.Game {
	t.Helper()

	game, err := entity.NewGame(id, playerOne, playerTwo)
	require.NoError(t, err)

	return game
}

func TestGameRepository_Save(t *testing.T) {
	t.Run("Save_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a new game
		game := newTestGame(t, "123", "alice", "bob")

		// When: Save is called
		err := gameRepo.Save(ctx, game)

		// Then: no error is returned and the version is bumped
		require.NoError(t, err)
		assert.Equal(t, int64(1), game.Version)
	})

	t.Run("Save_StaleVersion", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game loaded twice
		game := newTestGame(t, "123", "alice", "bob")
		require.NoError(t, gameRepo.Save(ctx, game))

		first, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		second, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: both copies are modified and saved
		require.NoError(t, first.ApplyMove(0, 0))
		require.NoError(t, gameRepo.Save(ctx, first))

		require.NoError(t, second.ApplyMove(1, 1))
		err = gameRepo.Save(ctx, second)

		// Then: the second save is rejected and the first move is kept
		require.ErrorIs(t, err, apperror.ErrConflict)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, stored.Board[0][0])
		assert.True(t, stored.Board.IsEmpty(1, 1))
		assert.Equal(t, int64(2), stored.Version)
	})
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game with a move
		game := newTestGame(t, "123", "alice", "bob")
		require.NoError(t, game.ApplyMove(1, 2))
		require.NoError(t, gameRepo.Save(ctx, game))

		// When: GetByID is called with the existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game matches the saved game
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_FindActive(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: two active games for alice and one cancelled game
	first := newTestGame(t, "g1", "alice", "bob")
	second := newTestGame(t, "g2", "carol", "alice")
	third := newTestGame(t, "g3", "alice", "dave")

	for _, game := range []*entity.Game{first, second, third} {
		require.NoError(t, gameRepo.Save(ctx, game))
	}

	require.NoError(t, third.MarkCancelled())
	require.NoError(t, gameRepo.Save(ctx, third))

	t.Run("FindActiveByPlayer", func(t *testing.T) {
		// When: listing alice's active games
		games, err := gameRepo.FindActiveByPlayer(ctx, "alice")

		// Then: only the active ones are returned
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "g1", games[0].ID)
		assert.Equal(t, "g2", games[1].ID)
	})

	t.Run("FindActiveByPlayer_NoGames", func(t *testing.T) {
		games, err := gameRepo.FindActiveByPlayer(ctx, "nobody")

		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("FindActive", func(t *testing.T) {
		// When: listing every active game
		games, err := gameRepo.FindActive(ctx)

		// Then: the cancelled game is not part of it
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "g1", games[0].ID)
		assert.Equal(t, "g2", games[1].ID)
	})
}

func TestGameRepository_Wins(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: two games won by alice and one by bob
	for _, id := range []string{"g1", "g2"} {
		game := newTestGame(t, id, "alice", "bob")
		require.NoError(t, game.ApplyMove(0, 0))
		require.NoError(t, game.MarkWon())
		require.NoError(t, gameRepo.Save(ctx, game))
	}

	game := newTestGame(t, "g3", "bob", "alice")
	require.NoError(t, game.ApplyMove(0, 0))
	require.NoError(t, game.MarkWon())
	require.NoError(t, gameRepo.Save(ctx, game))

	// And: the already won game is saved once more
	require.NoError(t, gameRepo.Save(ctx, game))

	// When: reading the win counters
	wins, err := gameRepo.Wins(ctx)

	// Then: each won game is counted once
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, wins)
}
