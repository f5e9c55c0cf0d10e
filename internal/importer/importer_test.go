package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/importer"
	"github.com/phrazzld/grindboard-api/internal/mocks"
	"github.com/phrazzld/grindboard-api/internal/platform/sqlstore"
	"github.com/phrazzld/grindboard-api/internal/service"
	"github.com/phrazzld/grindboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `
tasks:
  - title: Write report
    description: quarterly numbers
    tags: [work, urgent]
  - title: Buy milk
    completed: true
    tags: [home, work]
  - title: Call mom
`

func TestImportYAML(t *testing.T) {
	ctx := context.Background()
	db, dialect := testdb.NewSQLite(t)
	userStore := sqlstore.NewUserStore(db, dialect, nil)
	taskStore := sqlstore.NewTaskStore(db, dialect, nil)
	tagStore := sqlstore.NewTagStore(db, dialect, nil)

	user, err := domain.NewUser("alice", "password123")
	require.NoError(t, err)
	user.PasswordHash = "pbkdf2_sha256$1$00$00"
	require.NoError(t, userStore.Create(ctx, user))

	tasks, err := service.NewTaskService(db, taskStore, tagStore, nil)
	require.NoError(t, err)
	tags, err := service.NewTagService(db, taskStore, tagStore, nil)
	require.NoError(t, err)

	result, err := importer.ImportYAML(ctx, strings.NewReader(document), user.ID, tasks, tags)
	require.NoError(t, err)
	assert.Equal(t, importer.ImportResult{Tasks: 3, Tags: 4}, result)

	list, err := tasks.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Write report", list[0].Title)
	assert.Equal(t, "quarterly numbers", list[0].Description)
	assert.False(t, list[0].Completed)
	assert.Equal(t, []string{"urgent", "work"}, tagNames(list[0].Tags))

	assert.Equal(t, "Buy milk", list[1].Title)
	assert.True(t, list[1].Completed)
	assert.Equal(t, []string{"home", "work"}, tagNames(list[1].Tags))

	assert.Equal(t, "Call mom", list[2].Title)
	assert.Empty(t, list[2].Tags)

	all, err := tags.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImportYAMLRejectsEmptyTitleBeforeWriting(t *testing.T) {
	tasks := &mocks.MockTaskService{}
	created := 0
	tasks.CreateFn = func(ctx context.Context, userID int64, input service.NewTask) (*domain.Task, error) {
		created++
		return &domain.Task{ID: int64(created)}, nil
	}

	doc := "tasks:\n  - title: ok\n  - title: \"  \"\n"
	_, err := importer.ImportYAML(context.Background(), strings.NewReader(doc), 1, tasks, &mocks.MockTagService{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "tasks[2].title")
	assert.Zero(t, created)
}

func TestImportYAMLRejectsInvalidEntriesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	db, dialect := testdb.NewSQLite(t)
	userStore := sqlstore.NewUserStore(db, dialect, nil)
	taskStore := sqlstore.NewTaskStore(db, dialect, nil)
	tagStore := sqlstore.NewTagStore(db, dialect, nil)

	user, err := domain.NewUser("bob", "password123")
	require.NoError(t, err)
	user.PasswordHash = "pbkdf2_sha256$1$00$00"
	require.NoError(t, userStore.Create(ctx, user))

	tasks, err := service.NewTaskService(db, taskStore, tagStore, nil)
	require.NoError(t, err)
	tags, err := service.NewTagService(db, taskStore, tagStore, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		doc   string
		field string
		cause error
	}{
		{
			name:  "title too long",
			doc:   "tasks:\n  - title: first\n  - title: " + strings.Repeat("x", domain.MaxTitleLength+1) + "\n",
			field: "tasks[2].title",
			cause: domain.ErrTitleTooLong,
		},
		{
			name:  "description too long",
			doc:   "tasks:\n  - title: first\n    description: " + strings.Repeat("d", domain.MaxDescriptionLength+1) + "\n",
			field: "tasks[1].description",
			cause: domain.ErrDescriptionTooLong,
		},
		{
			name:  "blank tag",
			doc:   "tasks:\n  - title: first\n    tags: [work, \"   \"]\n",
			field: "tasks[1].tags[2]",
			cause: domain.ErrEmptyTagName,
		},
		{
			name:  "tag too long",
			doc:   "tasks:\n  - title: first\n  - title: second\n    tags: [" + strings.Repeat("t", domain.MaxTagNameLength+1) + "]\n",
			field: "tasks[2].tags[1]",
			cause: domain.ErrTagNameTooLong,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := importer.ImportYAML(ctx, strings.NewReader(tc.doc), user.ID, tasks, tags)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.cause)
			assert.Contains(t, err.Error(), tc.field)
			assert.Equal(t, importer.ImportResult{}, result)

			list, err := tasks.List(ctx, user.ID)
			require.NoError(t, err)
			assert.Empty(t, list)

			all, err := tags.List(ctx, user.ID)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		doc, err := importer.Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, doc.Tasks)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := importer.Parse(strings.NewReader("tasks:\n  - title: a\n    priority: 1\n"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := importer.Parse(strings.NewReader("tasks: [\n"))
		require.Error(t, err)
	})
}

func tagNames(tags []domain.Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}
