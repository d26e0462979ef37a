// Package store persists users and tasks in PostgreSQL. Every lookup that
// can miss fails with a kind-tagged not-found error, uniqueness violations
// map to conflicts, and foreign-key violations map to the missing parent,
// so callers never inspect driver errors directly.
package store

import (
	"context"

	"github.com/taskvault/taskvault/pkg/model"
)

// UserStore persists user records.
type UserStore interface {
	// CreateUser inserts a user and fills its id and timestamps. Fails
	// with a Conflict error if the email is already registered.
	CreateUser(ctx context.Context, u *model.User) error

	// GetUserByID fetches a user, failing with NotFound if absent.
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	// GetUserByEmail fetches a user by unique email, failing with
	// NotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateUser persists name changes, failing with NotFound if the
	// user no longer exists.
	UpdateUser(ctx context.Context, u *model.User) error
}

// TaskStore persists task records.
type TaskStore interface {
	// CreateTask inserts a task and fills its id and timestamps. Fails
	// with NotFound if the owner foreign key is rejected.
	CreateTask(ctx context.Context, t *model.Task) error

	// GetTask fetches a task by id alone, failing with NotFound if
	// absent.
	GetTask(ctx context.Context, id int64) (*model.Task, error)

	// GetTaskOwnedBy fetches a task by id filtered by owner. A task
	// owned by someone else is indistinguishable from a missing one:
	// both fail with NotFound.
	GetTaskOwnedBy(ctx context.Context, id, ownerID int64) (*model.Task, error)

	// ListTasks returns all tasks, unscoped.
	ListTasks(ctx context.Context) ([]*model.Task, error)

	// UpdateTask persists field changes, failing with NotFound if the
	// task no longer exists.
	UpdateTask(ctx context.Context, t *model.Task) error

	// DeleteTask removes a task, failing with NotFound if it no longer
	// exists.
	DeleteTask(ctx context.Context, id int64) error
}
