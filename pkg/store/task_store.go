package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskvault/taskvault/pkg/errkind"
	"github.com/taskvault/taskvault/pkg/model"
)

// PostgresTaskStore implements TaskStore on PostgreSQL.
type PostgresTaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a PostgreSQL-backed task store.
func NewTaskStore(db *sql.DB) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

const taskColumns = "id, title, priority, due_date, status, owner_id, created_at, updated_at"

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.Title, &t.Priority, &t.DueDate, &t.Status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresTaskStore) CreateTask(ctx context.Context, t *model.Task) error {
	query := `
		INSERT INTO tasks (title, priority, due_date, status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, t.Title, t.Priority, t.DueDate, t.Status, t.OwnerID).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if isPQCode(err, codeForeignKeyViolation) {
		return errkind.Wrap(errkind.NotFound, "User not found", err)
	}
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *PostgresTaskStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errkind.New(errkind.NotFound, "Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (s *PostgresTaskStore) GetTaskOwnedBy(ctx context.Context, id, ownerID int64) (*model.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1 AND owner_id = $2", taskColumns)

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, errkind.New(errkind.NotFound, "Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (s *PostgresTaskStore) ListTasks(ctx context.Context) ([]*model.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks ORDER BY created_at DESC", taskColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *PostgresTaskStore) UpdateTask(ctx context.Context, t *model.Task) error {
	query := `
		UPDATE tasks SET title = $1, priority = $2, due_date = $3, status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, t.Title, t.Priority, t.DueDate, t.Status, t.ID).
		Scan(&t.UpdatedAt)
	if err == sql.ErrNoRows {
		return errkind.New(errkind.NotFound, "Task not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (s *PostgresTaskStore) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return errkind.New(errkind.NotFound, "Task not found")
	}
	return nil
}
