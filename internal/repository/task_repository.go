package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"task-api/configs"
	"task-api/internal/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyPatch   = errors.New("no fields to update")
)

const taskColumns = "id, title, description, completed"

var updatableColumns = map[string]bool{
	"title":       true,
	"description": true,
	"completed":   true,
}

// TaskRepository runs the task statements against a shared pool. All values
// are bound parameters; only whitelisted column names are ever spliced in.
type TaskRepository struct {
	db     *sql.DB
	driver string
}

func NewTaskRepository(db *sql.DB, driver string) *TaskRepository {
	return &TaskRepository{db: db, driver: driver}
}

func (r *TaskRepository) placeholder(n int) string {
	if r.driver == configs.DriverSQLite {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// List returns every task, newest first.
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a task that is not completed yet and returns the stored row.
func (r *TaskRepository) Create(ctx context.Context, title string, description *string) (models.Task, error) {
	query := fmt.Sprintf(
		"INSERT INTO tasks (title, description, completed) VALUES (%s, %s, 0) RETURNING %s",
		r.placeholder(1), r.placeholder(2), taskColumns,
	)
	var desc any
	if description != nil {
		desc = *description
	}
	task, err := scanTask(r.db.QueryRowContext(ctx, query, title, desc))
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// Update writes exactly the fields present in patch and returns the row as
// it is after the update.
func (r *TaskRepository) Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return models.Task{}, ErrEmptyPatch
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		if !updatableColumns[f.Column] {
			return models.Task{}, fmt.Errorf("column %q cannot be updated", f.Column)
		}
		v := f.Value
		if f.Column == "completed" {
			// null disimpan sebagai 0
			b, _ := v.(bool)
			v = boolToFlag(b)
		}
		sets = append(sets, f.Column+" = "+r.placeholder(i+1))
		args = append(args, v)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = %s RETURNING %s",
		strings.Join(sets, ", "), r.placeholder(len(args)), taskColumns)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return task, nil
}

// Delete removes the task for good.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = "+r.placeholder(1), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask is the one place where the stored 0/1 flag becomes a bool.
func scanTask(row rowScanner) (models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
		flag        int64
	)
	if err := row.Scan(&task.ID, &task.Title, &description, &flag); err != nil {
		return models.Task{}, err
	}
	if description.Valid {
		task.Description = &description.String
	}
	task.Completed = flag != 0
	return task, nil
}

func boolToFlag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
