package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/pkg/errkind"
	"github.com/taskvault/taskvault/pkg/model"
)

var taskCols = []string{"id", "title", "priority", "due_date", "status", "owner_id", "created_at", "updated_at"}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestTaskStore_CreateTask(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewTaskStore(db)
	now := time.Now()
	due := mustDate(t, "2024-10-01")

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs("write report", model.PriorityHigh, due, model.StatusPending, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	task := &model.Task{Title: "write report", Priority: model.PriorityHigh, DueDate: due, Status: model.StatusPending, OwnerID: 7}
	require.NoError(t, store.CreateTask(context.Background(), task))
	assert.Equal(t, int64(3), task.ID)
}

func TestTaskStore_CreateTask_OwnerGone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewTaskStore(db)

	mock.ExpectQuery("INSERT INTO tasks").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "tasks_owner_id_fkey"})

	task := &model.Task{Title: "orphan", Priority: model.PriorityLow, DueDate: mustDate(t, "2024-10-01"), Status: model.StatusPending, OwnerID: 999}
	err = store.CreateTask(context.Background(), task)

	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.NotFound))
	assert.Equal(t, "User not found", err.Error())
}

func TestTaskStore_GetTaskOwnedBy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewTaskStore(db)
	now := time.Now()
	due := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

	t.Run("owned task found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = \\$1 AND owner_id = \\$2").
			WithArgs(int64(3), int64(7)).
			WillReturnRows(sqlmock.NewRows(taskCols).
				AddRow(int64(3), "write report", "high", due, "pending", int64(7), now, now))

		task, err := store.GetTaskOwnedBy(context.Background(), 3, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(3), task.ID)
		assert.Equal(t, int64(7), task.OwnerID)
		assert.Equal(t, "2024-10-01", task.DueDate.String())
	})

	t.Run("other owner is reported as not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = \\$1 AND owner_id = \\$2").
			WithArgs(int64(3), int64(8)).
			WillReturnRows(sqlmock.NewRows(taskCols))

		_, err := store.GetTaskOwnedBy(context.Background(), 3, 8)
		require.Error(t, err)
		assert.True(t, errkind.Is(err, errkind.NotFound))
	})
}

func TestTaskStore_UpdateTask_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewTaskStore(db)
	task := &model.Task{ID: 42, Title: "x", Priority: model.PriorityLow, DueDate: mustDate(t, "2024-10-01"), Status: model.StatusPending}

	mock.ExpectQuery("UPDATE tasks SET").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err = store.UpdateTask(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.NotFound))
	assert.Equal(t, "Task not found", err.Error())
}

func TestTaskStore_DeleteTask(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewTaskStore(db)

	t.Run("deletes existing task", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks WHERE id").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.DeleteTask(context.Background(), 3))
	})

	t.Run("missing task is not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks WHERE id").
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.DeleteTask(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, errkind.Is(err, errkind.NotFound))
	})
}

func TestTaskStore_ListTasks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewTaskStore(db)
	now := time.Now()
	due := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM tasks ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(int64(1), "a", "low", due, "pending", int64(7), now, now).
			AddRow(int64(2), "b", "high", due, "completed", int64(8), now, now))

	tasks, err := store.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(7), tasks[0].OwnerID)
	assert.Equal(t, int64(8), tasks[1].OwnerID)
}
