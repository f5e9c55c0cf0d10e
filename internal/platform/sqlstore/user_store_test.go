package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/grindboard-api/internal/store"
	"github.com/phrazzld/grindboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { sqlstore.NewUserStore(nil, nil, nil) })
}

func TestUserStore(t *testing.T) {
	testdb.ForEachDialect(t, func(t *testing.T, db *sql.DB, dialect store.Dialect) {
		ctx := context.Background()
		s := newStores(db, dialect)

		user := createUser(t, s, "  alice  ")
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)

		t.Run("get by id and username", func(t *testing.T) {
			byID, err := s.users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, "alice", byID.Username)
			assert.Equal(t, user.PasswordHash, byID.PasswordHash)
			assert.WithinDuration(t, user.CreatedAt, byID.CreatedAt, time.Second)

			byName, err := s.users.GetByUsername(ctx, " alice")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byName.ID)
		})

		t.Run("duplicate username", func(t *testing.T) {
			dup, err := domain.NewUser("alice", "password123")
			require.NoError(t, err)
			dup.PasswordHash = "x"
			err = s.users.Create(ctx, dup)
			assert.ErrorIs(t, err, store.ErrUsernameExists)
			assert.ErrorIs(t, err, store.ErrDuplicate)
		})

		t.Run("missing hash", func(t *testing.T) {
			u, err := domain.NewUser("bob", "password123")
			require.NoError(t, err)
			assert.ErrorIs(t, s.users.Create(ctx, u), store.ErrInvalidEntity)
		})

		t.Run("not found", func(t *testing.T) {
			_, err := s.users.GetByID(ctx, 9999)
			assert.ErrorIs(t, err, store.ErrUserNotFound)
			_, err = s.users.GetByUsername(ctx, "nobody")
			assert.ErrorIs(t, err, store.ErrNotFound)
			assert.ErrorIs(t, s.users.Delete(ctx, 9999), store.ErrUserNotFound)
		})

		t.Run("delete cascades", func(t *testing.T) {
			carol := createUser(t, s, "carol")
			task := createTask(t, s, carol.ID, "Water plants", 1)
			createTag(t, s, carol.ID, "home")

			require.NoError(t, s.users.Delete(ctx, carol.ID))

			_, err := s.tasks.GetByID(ctx, carol.ID, task.ID)
			assert.ErrorIs(t, err, store.ErrTaskNotFound)
			tags, err := s.tags.ListByUser(ctx, carol.ID)
			require.NoError(t, err)
			assert.Empty(t, tags)
		})
	})
}
