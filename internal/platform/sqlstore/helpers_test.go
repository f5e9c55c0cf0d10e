package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/grindboard-api/internal/store"
	"github.com/stretchr/testify/require"
)

type stores struct {
	users  *sqlstore.UserStore
	tasks  *sqlstore.TaskStore
	tags   *sqlstore.TagStore
	tokens *sqlstore.TokenStore
}

func newStores(db *sql.DB, dialect store.Dialect) stores {
	return stores{
		users:  sqlstore.NewUserStore(db, dialect, nil),
		tasks:  sqlstore.NewTaskStore(db, dialect, nil),
		tags:   sqlstore.NewTagStore(db, dialect, nil),
		tokens: sqlstore.NewTokenStore(db, dialect, nil),
	}
}

func createUser(t *testing.T, s stores, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "password123")
	require.NoError(t, err)
	user.PasswordHash = "pbkdf2_sha256$1$00$00"
	require.NoError(t, s.users.Create(context.Background(), user))
	return user
}

func createTask(t *testing.T, s stores, userID int64, title string, position float64) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(userID, title, "", position)
	require.NoError(t, err)
	require.NoError(t, s.tasks.Create(context.Background(), task))
	return task
}

func createTag(t *testing.T, s stores, userID int64, name string) *domain.Tag {
	t.Helper()
	tag, err := domain.NewTag(userID, name)
	require.NoError(t, err)
	require.NoError(t, s.tags.Create(context.Background(), tag))
	return tag
}
