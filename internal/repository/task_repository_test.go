package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"task-api/configs"
	"task-api/internal/models"
	"task-api/pkg/database"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) (*TaskRepository, *sql.DB) {
	m := database.NewManager(configs.Config{
		DBDriver: configs.DriverSQLite,
		DBName:   filepath.Join(t.TempDir(), "tasks.db"),
	})
	db, err := m.Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	require.NoError(t, CreateTableIfNotExists(context.Background(), db, configs.DriverSQLite))
	return NewTaskRepository(db, configs.DriverSQLite), db
}

func TestSQLiteTaskRepository(t *testing.T) {
	repo, db := setupSQLite(t)
	runRepositoryTests(t, repo, db)
}

func TestCreateTableIfNotExistsIsIdempotent(t *testing.T) {
	_, db := setupSQLite(t)
	assert.NoError(t, CreateTableIfNotExists(context.Background(), db, configs.DriverSQLite))
}

func TestUpdateEmptyPatch(t *testing.T) {
	repo, _ := setupSQLite(t)
	_, err := repo.Update(context.Background(), 1, models.TaskPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$3", NewTaskRepository(nil, configs.DriverPostgres).placeholder(3))
	assert.Equal(t, "?", NewTaskRepository(nil, configs.DriverSQLite).placeholder(3))
}

func TestClosedPoolReturnsError(t *testing.T) {
	repo, db := setupSQLite(t)
	require.NoError(t, db.Close())

	_, err := repo.List(context.Background())
	assert.Error(t, err)
	_, err = repo.Create(context.Background(), "x", nil)
	assert.Error(t, err)
	err = repo.Delete(context.Background(), 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTaskNotFound)
}

// runRepositoryTests checks the behaviour both dialects must share.
func runRepositoryTests(t *testing.T, repo *TaskRepository, db *sql.DB) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("create returns stored row", func(t *testing.T) {
		task, err := repo.Create(ctx, "Buy milk", strPtr("two litres"))
		require.NoError(t, err)

		assert.Greater(t, task.ID, int64(0))
		assert.Equal(t, "Buy milk", task.Title)
		require.NotNil(t, task.Description)
		assert.Equal(t, "two litres", *task.Description)
		assert.False(t, task.Completed)

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, tasks, task)
	})

	t.Run("create without description stores null", func(t *testing.T) {
		task, err := repo.Create(ctx, "No details", nil)
		require.NoError(t, err)
		assert.Nil(t, task.Description)
	})

	t.Run("list is newest first", func(t *testing.T) {
		a, err := repo.Create(ctx, "A", nil)
		require.NoError(t, err)
		b, err := repo.Create(ctx, "B", nil)
		require.NoError(t, err)

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(tasks), 2)
		assert.Equal(t, b.ID, tasks[0].ID)
		assert.Equal(t, a.ID, tasks[1].ID)
	})

	t.Run("completed only leaves other fields alone", func(t *testing.T) {
		created, err := repo.Create(ctx, "Walk dog", strPtr("around the block"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, models.TaskPatch{Completed: models.Some(true)})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Description, updated.Description)

		updated, err = repo.Update(ctx, created.ID, models.TaskPatch{Completed: models.Some(false)})
		require.NoError(t, err)
		assert.False(t, updated.Completed)
	})

	t.Run("null completed stores false", func(t *testing.T) {
		created, err := repo.Create(ctx, "Toggle", nil)
		require.NoError(t, err)
		_, err = repo.Update(ctx, created.ID, models.TaskPatch{Completed: models.Some(true)})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, models.TaskPatch{Completed: models.Null[bool]()})
		require.NoError(t, err)
		assert.False(t, updated.Completed)
		assert.Equal(t, "Toggle", updated.Title)

		var flag int64
		require.NoError(t, db.QueryRowContext(ctx,
			"SELECT completed FROM tasks WHERE id = "+repo.placeholder(1), created.ID).Scan(&flag))
		assert.Equal(t, int64(0), flag)
	})

	t.Run("empty title is written", func(t *testing.T) {
		created, err := repo.Create(ctx, "Rename me", nil)
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, models.TaskPatch{Title: models.Some("")})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Title)
	})

	t.Run("long title is stored", func(t *testing.T) {
		title := strings.Repeat("x", 300)
		created, err := repo.Create(ctx, title, nil)
		require.NoError(t, err)
		assert.Equal(t, title, created.Title)
	})

	t.Run("description can be cleared", func(t *testing.T) {
		created, err := repo.Create(ctx, "Read", strPtr("chapter 3"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, models.TaskPatch{
			Title:       models.Some("Read book"),
			Description: models.Null[string](),
		})
		require.NoError(t, err)
		assert.Equal(t, "Read book", updated.Title)
		assert.Nil(t, updated.Description)
		assert.False(t, updated.Completed)
	})

	t.Run("stored flag is normalised to bool", func(t *testing.T) {
		created, err := repo.Create(ctx, "Raw flag", nil)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, "UPDATE tasks SET completed = 1 WHERE id = "+repo.placeholder(1), created.ID)
		require.NoError(t, err)

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		for _, task := range tasks {
			if task.ID == created.ID {
				assert.True(t, task.Completed)
				return
			}
		}
		t.Fatalf("task %d not listed", created.ID)
	})

	t.Run("missing id is not found without side effects", func(t *testing.T) {
		before, err := repo.List(ctx)
		require.NoError(t, err)

		_, err = repo.Update(ctx, 999999, models.TaskPatch{Title: models.Some("ghost")})
		assert.ErrorIs(t, err, ErrTaskNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 999999), ErrTaskNotFound)

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("deleted ids are not reused", func(t *testing.T) {
		doomed, err := repo.Create(ctx, "Temporary", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, doomed.ID))

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		for _, task := range tasks {
			assert.NotEqual(t, doomed.ID, task.ID)
		}
		assert.ErrorIs(t, repo.Delete(ctx, doomed.ID), ErrTaskNotFound)

		next, err := repo.Create(ctx, "Next", nil)
		require.NoError(t, err)
		assert.Greater(t, next.ID, doomed.ID)
	})
}
