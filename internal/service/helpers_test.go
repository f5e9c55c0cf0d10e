package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/grindboard-api/internal/service"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
	"github.com/phrazzld/grindboard-api/internal/testdb"
	"github.com/stretchr/testify/require"
)

// fixture wires every service onto one migrated SQLite database.
type fixture struct {
	users service.UserService
	tasks service.TaskService
	tags  service.TagService

	taskStore *sqlstore.TaskStore
	tagStore  *sqlstore.TagStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, dialect := testdb.NewSQLite(t)
	userStore := sqlstore.NewUserStore(db, dialect, nil)
	taskStore := sqlstore.NewTaskStore(db, dialect, nil)
	tagStore := sqlstore.NewTagStore(db, dialect, nil)

	hasher, err := auth.NewPasswordHasher(auth.SchemeBcrypt)
	require.NoError(t, err)

	users, err := service.NewUserService(db, userStore, hasher, true, nil)
	require.NoError(t, err)
	tasks, err := service.NewTaskService(db, taskStore, tagStore, nil)
	require.NoError(t, err)
	tags, err := service.NewTagService(db, taskStore, tagStore, nil)
	require.NoError(t, err)

	return fixture{users: users, tasks: tasks, tags: tags, taskStore: taskStore, tagStore: tagStore}
}

func (f fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), username, "password123")
	require.NoError(t, err)
	return user
}

func (f fixture) task(t *testing.T, userID int64, title string) *domain.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), userID, service.NewTask{Title: title})
	require.NoError(t, err)
	return task
}

func (f fixture) titles(t *testing.T, userID int64) []string {
	t.Helper()
	tasks, err := f.tasks.List(context.Background(), userID)
	require.NoError(t, err)
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	return titles
}

func (f fixture) positions(t *testing.T, userID int64) map[int64]float64 {
	t.Helper()
	tasks, err := f.taskStore.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	positions := make(map[int64]float64, len(tasks))
	for _, task := range tasks {
		positions[task.ID] = task.Position
	}
	return positions
}

func ptr[T any](v T) *T {
	return &v
}
