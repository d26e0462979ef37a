package api

import (
	"context"
	"time"

	"github.com/taskvault/taskvault/pkg/errkind"
	"github.com/taskvault/taskvault/pkg/model"
)

// memUserStore and memTaskStore are in-memory stores backing the
// end-to-end handler tests.
type memUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (s *memUserStore) CreateUser(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return errkind.New(errkind.Conflict, "Email already registered")
		}
	}
	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *memUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errkind.New(errkind.NotFound, "User not found")
	}
	copied := *u
	return &copied, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errkind.New(errkind.NotFound, "User not found")
}

func (s *memUserStore) UpdateUser(_ context.Context, u *model.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return errkind.New(errkind.NotFound, "User not found")
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

type memTaskStore struct {
	tasks  map[int64]*model.Task
	nextID int64
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[int64]*model.Task), nextID: 1}
}

func (s *memTaskStore) CreateTask(_ context.Context, t *model.Task) error {
	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	copied := *t
	s.tasks[t.ID] = &copied
	return nil
}

func (s *memTaskStore) GetTask(_ context.Context, id int64) (*model.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, errkind.New(errkind.NotFound, "Task not found")
	}
	copied := *t
	return &copied, nil
}

func (s *memTaskStore) GetTaskOwnedBy(_ context.Context, id, ownerID int64) (*model.Task, error) {
	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, errkind.New(errkind.NotFound, "Task not found")
	}
	copied := *t
	return &copied, nil
}

func (s *memTaskStore) ListTasks(_ context.Context) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range s.tasks {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (s *memTaskStore) UpdateTask(_ context.Context, t *model.Task) error {
	if _, ok := s.tasks[t.ID]; !ok {
		return errkind.New(errkind.NotFound, "Task not found")
	}
	copied := *t
	s.tasks[t.ID] = &copied
	return nil
}

func (s *memTaskStore) DeleteTask(_ context.Context, id int64) error {
	if _, ok := s.tasks[id]; !ok {
		return errkind.New(errkind.NotFound, "Task not found")
	}
	delete(s.tasks, id)
	return nil
}
