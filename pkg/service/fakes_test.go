package service

import (
	"context"
	"time"

	"github.com/taskvault/taskvault/pkg/errkind"
	"github.com/taskvault/taskvault/pkg/model"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (s *fakeUserStore) CreateUser(_ context.Context, u *model.User) error {
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

func (s *fakeUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errkind.New(errkind.NotFound, "User not found")
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errkind.New(errkind.NotFound, "User not found")
}

func (s *fakeUserStore) UpdateUser(_ context.Context, u *model.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return errkind.New(errkind.NotFound, "User not found")
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

// fakeTaskStore is an in-memory TaskStore that records which mutating
// calls ran, so tests can assert that existence checks short-circuit.
type fakeTaskStore struct {
	tasks       map[int64]*model.Task
	nextID      int64
	createCalls int
	updateCalls int
	deleteCalls int

	// failCreateWithFK simulates a rejected owner foreign key.
	failCreateWithFK bool
	// dropBeforeMutate simulates a concurrent delete between the
	// existence check and the mutation.
	dropBeforeMutate bool
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*model.Task), nextID: 1}
}

func (s *fakeTaskStore) CreateTask(_ context.Context, t *model.Task) error {
	s.createCalls++
	if s.failCreateWithFK {
		return errkind.New(errkind.NotFound, "User not found")
	}
	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	copied := *t
	s.tasks[t.ID] = &copied
	return nil
}

func (s *fakeTaskStore) GetTask(_ context.Context, id int64) (*model.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, errkind.New(errkind.NotFound, "Task not found")
	}
	copied := *t
	return &copied, nil
}

func (s *fakeTaskStore) GetTaskOwnedBy(_ context.Context, id, ownerID int64) (*model.Task, error) {
	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, errkind.New(errkind.NotFound, "Task not found")
	}
	copied := *t
	return &copied, nil
}

func (s *fakeTaskStore) ListTasks(_ context.Context) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range s.tasks {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeTaskStore) UpdateTask(_ context.Context, t *model.Task) error {
	s.updateCalls++
	if s.dropBeforeMutate {
		delete(s.tasks, t.ID)
	}
	if _, ok := s.tasks[t.ID]; !ok {
		return errkind.New(errkind.NotFound, "Task not found")
	}
	copied := *t
	s.tasks[t.ID] = &copied
	return nil
}

func (s *fakeTaskStore) DeleteTask(_ context.Context, id int64) error {
	s.deleteCalls++
	if s.dropBeforeMutate {
		delete(s.tasks, id)
	}
	if _, ok := s.tasks[id]; !ok {
		return errkind.New(errkind.NotFound, "Task not found")
	}
	delete(s.tasks, id)
	return nil
}
