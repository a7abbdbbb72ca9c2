package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepository(t *testing.T) (context.Context, UserRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := storage.NewSQLiteStorage(ctx, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init(ctx))

	t.Cleanup(func() {
		_ = st.Close()
	})

	return ctx, NewUserRepository(st.Connection)
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		ctx, userRepo := newUserRepository(t)

		// Given: a new user
		user := &entity.User{Name: "alice", Email: "alice@example.com"}

		// When: Create is called
		err := userRepo.Create(ctx, user)

		// Then: no error is returned and the creation time is set
		require.NoError(t, err)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("Create_AlreadyExists", func(t *testing.T) {
		ctx, userRepo := newUserRepository(t)

		// Given: an existing user
		require.NoError(t, userRepo.Create(ctx, &entity.User{Name: "alice"}))

		// When: the same name is registered again
		err := userRepo.Create(ctx, &entity.User{Name: "alice", Email: "other@example.com"})

		// Then: ErrAlreadyExists is returned
		require.ErrorIs(t, err, apperror.ErrAlreadyExists)
	})

	t.Run("Create_NamesAreCaseSensitive", func(t *testing.T) {
		ctx, userRepo := newUserRepository(t)

		// Given: an existing user
		require.NoError(t, userRepo.Create(ctx, &entity.User{Name: "alice"}))

		// When: a name differing only in case is registered
		err := userRepo.Create(ctx, &entity.User{Name: "Alice"})

		// Then: it is a different user
		require.NoError(t, err)
	})
}

func TestUserRepository_FindByName(t *testing.T) {
	t.Run("FindByName_Success", func(t *testing.T) {
		ctx, userRepo := newUserRepository(t)

		// Given: a stored user
		require.NoError(t, userRepo.Create(ctx, &entity.User{Name: "alice", Email: "alice@example.com"}))

		// When: FindByName is called
		user, err := userRepo.FindByName(ctx, "alice")

		// Then: the stored user is returned
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("FindByName_NotFound", func(t *testing.T) {
		ctx, userRepo := newUserRepository(t)

		// When: FindByName is called for an unknown name
		user, err := userRepo.FindByName(ctx, "nobody")

		// Then: ErrNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, user)
	})
}

func TestUserRepository_All(t *testing.T) {
	ctx, userRepo := newUserRepository(t)

	// Given: users registered in a known order
	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, userRepo.Create(ctx, &entity.User{Name: name}))
	}

	// When: All is called
	users, err := userRepo.All(ctx)

	// Then: users come back in registration order
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "carol", users[0].Name)
	assert.Equal(t, "alice", users[1].Name)
	assert.Equal(t, "bob", users[2].Name)
}
