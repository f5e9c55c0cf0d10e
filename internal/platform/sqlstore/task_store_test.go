package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/store"
	"github.com/phrazzld/grindboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStore(t *testing.T) {
	testdb.ForEachDialect(t, func(t *testing.T, db *sql.DB, dialect store.Dialect) {
		ctx := context.Background()
		s := newStores(db, dialect)
		alice := createUser(t, s, "alice")
		bob := createUser(t, s, "bob")

		t.Run("max position of empty list", func(t *testing.T) {
			maxPos, ok, err := s.tasks.MaxPosition(ctx, alice.ID)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Zero(t, maxPos)
		})

		a := createTask(t, s, alice.ID, "A", 2)
		b := createTask(t, s, alice.ID, "B", 1)
		c := createTask(t, s, alice.ID, "C", 1.5)
		createTask(t, s, bob.ID, "Bob's", 10)

		t.Run("list orders by position", func(t *testing.T) {
			tasks, err := s.tasks.ListByUser(ctx, alice.ID)
			require.NoError(t, err)
			require.Len(t, tasks, 3)
			assert.Equal(t, []int64{b.ID, c.ID, a.ID}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
		})

		t.Run("max position", func(t *testing.T) {
			maxPos, ok, err := s.tasks.MaxPosition(ctx, alice.ID)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 2.0, maxPos)
		})

		t.Run("ownership", func(t *testing.T) {
			_, err := s.tasks.GetByID(ctx, bob.ID, a.ID)
			assert.ErrorIs(t, err, store.ErrTaskNotFound)
			assert.ErrorIs(t, s.tasks.UpdatePosition(ctx, bob.ID, a.ID, 7), store.ErrTaskNotFound)
			assert.ErrorIs(t, s.tasks.Delete(ctx, bob.ID, a.ID), store.ErrTaskNotFound)
		})

		t.Run("update fields", func(t *testing.T) {
			got, err := s.tasks.GetByID(ctx, alice.ID, a.ID)
			require.NoError(t, err)

			got.Title = "A2"
			got.Description = "details"
			got.Completed = true
			got.UpdatedAt = time.Now().UTC()
			require.NoError(t, s.tasks.Update(ctx, got))

			reloaded, err := s.tasks.GetByID(ctx, alice.ID, a.ID)
			require.NoError(t, err)
			assert.Equal(t, "A2", reloaded.Title)
			assert.Equal(t, "details", reloaded.Description)
			assert.True(t, reloaded.Completed)
			assert.Equal(t, 2.0, reloaded.Position)
		})

		t.Run("update position only", func(t *testing.T) {
			before, err := s.tasks.GetByID(ctx, alice.ID, c.ID)
			require.NoError(t, err)

			require.NoError(t, s.tasks.UpdatePosition(ctx, alice.ID, c.ID, 0.25))

			after, err := s.tasks.GetByID(ctx, alice.ID, c.ID)
			require.NoError(t, err)
			assert.Equal(t, 0.25, after.Position)
			assert.Equal(t, before.Title, after.Title)
			assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
		})

		t.Run("create for unknown user", func(t *testing.T) {
			task, err := domain.NewTask(424242, "orphan", "", 1)
			require.NoError(t, err)
			assert.ErrorIs(t, s.tasks.Create(ctx, task), store.ErrInvalidEntity)
		})

		t.Run("invalid task is rejected before the database", func(t *testing.T) {
			task := &domain.Task{UserID: alice.ID}
			assert.ErrorIs(t, s.tasks.Create(ctx, task), domain.ErrValidation)
		})

		t.Run("delete removes links", func(t *testing.T) {
			tag := createTag(t, s, alice.ID, "work")
			require.NoError(t, s.tags.AddLink(ctx, b.ID, tag.ID))

			require.NoError(t, s.tasks.Delete(ctx, alice.ID, b.ID))

			ids, err := s.tags.LinkedTaskIDs(ctx, tag.ID)
			require.NoError(t, err)
			assert.Empty(t, ids)
			assert.ErrorIs(t, s.tasks.Delete(ctx, alice.ID, b.ID), store.ErrTaskNotFound)
		})
	})
}
