package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagNames(tags []domain.Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

func TestTagCreateIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	user := f.user(t, "alice")

	first, err := f.tags.Create(ctx, user.ID, "work")
	require.NoError(t, err)
	again, err := f.tags.Create(ctx, user.ID, "  work ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// Precomposed and decomposed forms normalize to the same name.
	composed, err := f.tags.Create(ctx, user.ID, "caf\u00e9")
	require.NoError(t, err)
	decomposed, err := f.tags.Create(ctx, user.ID, "cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed.ID, decomposed.ID)

	list, err := f.tags.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.tags.Create(ctx, user.ID, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTagNamesAreScopedPerUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	a, err := f.tags.Create(ctx, alice.ID, "work")
	require.NoError(t, err)
	b, err := f.tags.Create(ctx, bob.ID, "work")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTagRenameWithoutConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	user := f.user(t, "alice")

	tag, err := f.tags.Create(ctx, user.ID, "wrok")
	require.NoError(t, err)

	renamed, err := f.tags.Rename(ctx, tag.ID, user.ID, " work ")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, renamed.ID)
	assert.Equal(t, "work", renamed.Name)

	same, err := f.tags.Rename(ctx, tag.ID, user.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, same.ID, "renaming to its own name is not a merge")

	_, err = f.tags.Rename(ctx, tag.ID, user.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTagRenameMerges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	user := f.user(t, "alice")

	t1 := f.task(t, user.ID, "T1")
	t2 := f.task(t, user.ID, "T2")

	work, err := f.tags.CreateAndAddToTask(ctx, t1.ID, user.ID, "work")
	require.NoError(t, err)
	job, err := f.tags.CreateAndAddToTask(ctx, t1.ID, user.ID, "job")
	require.NoError(t, err)
	_, err = f.tags.AddToTask(ctx, t2.ID, job.ID, user.ID)
	require.NoError(t, err)

	survivor, err := f.tags.Rename(ctx, job.ID, user.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, work.ID, survivor.ID)
	assert.Equal(t, "work", survivor.Name)

	_, err = f.tagStore.GetByID(ctx, user.ID, job.ID)
	assert.ErrorIs(t, err, store.ErrTagNotFound)

	tasks, err := f.tasks.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, []string{"work"}, tagNames(tasks[0].Tags), "T1 keeps a single link")
	assert.Equal(t, []string{"work"}, tagNames(tasks[1].Tags))

	list, err := f.tags.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, work.ID, list[0].ID)
}

func TestTagOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	aliceTask := f.task(t, alice.ID, "mine")
	aliceTag, err := f.tags.Create(ctx, alice.ID, "work")
	require.NoError(t, err)
	bobTask := f.task(t, bob.ID, "theirs")
	bobTag, err := f.tags.Create(ctx, bob.ID, "work")
	require.NoError(t, err)

	_, err = f.tags.Rename(ctx, aliceTag.ID, bob.ID, "other")
	assert.ErrorIs(t, err, store.ErrTagNotFound)

	assert.ErrorIs(t, f.tags.Delete(ctx, aliceTag.ID, bob.ID), store.ErrTagNotFound)

	_, err = f.tags.AddToTask(ctx, aliceTask.ID, bobTag.ID, alice.ID)
	assert.ErrorIs(t, err, store.ErrTagNotFound)

	_, err = f.tags.AddToTask(ctx, bobTask.ID, aliceTag.ID, alice.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = f.tags.CreateAndAddToTask(ctx, bobTask.ID, alice.ID, "sneaky")
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	assert.ErrorIs(t, f.tags.RemoveFromTask(ctx, bobTask.ID, bobTag.ID, alice.ID), store.ErrTaskNotFound)

	list, err := f.tags.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed create-and-add left no tag behind")
}

func TestTagLinkLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	user := f.user(t, "alice")

	task := f.task(t, user.ID, "T")
	tag, err := f.tags.Create(ctx, user.ID, "work")
	require.NoError(t, err)

	added, err := f.tags.AddToTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, added.ID)

	_, err = f.tags.AddToTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err, "adding twice is a no-op")

	got, err := f.tasks.Get(ctx, task.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 1)

	require.NoError(t, f.tags.RemoveFromTask(ctx, task.ID, tag.ID, user.ID))
	got, err = f.tasks.Get(ctx, task.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	require.NoError(t, f.tags.RemoveFromTask(ctx, task.ID, tag.ID, user.ID), "removing a missing link is a no-op")
}

func TestTagDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	user := f.user(t, "alice")

	task := f.task(t, user.ID, "T")
	tag, err := f.tags.CreateAndAddToTask(ctx, task.ID, user.ID, "work")
	require.NoError(t, err)

	require.NoError(t, f.tags.Delete(ctx, tag.ID, user.ID))

	got, err := f.tasks.Get(ctx, task.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	assert.ErrorIs(t, f.tags.Delete(ctx, tag.ID, user.ID), store.ErrTagNotFound)
}
