package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/errkind"
	"github.com/taskvault/taskvault/pkg/model"
	"github.com/taskvault/taskvault/pkg/store"
)

// CreateTaskInput carries the caller-supplied fields for task creation.
// Status is absent on purpose: new tasks always start as pending.
type CreateTaskInput struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
}

// UpdateTaskInput carries a partial task update; nil fields are untouched.
type UpdateTaskInput struct {
	Title    *string `json:"title"`
	Priority *string `json:"priority"`
	DueDate  *string `json:"dueDate"`
	Status   *string `json:"status"`
}

// TaskService performs task CRUD with domain validation. Ownership is not
// checked here; the guard decides access before these operations run.
type TaskService struct {
	tasks store.TaskStore
	log   *logrus.Logger
}

// NewTaskService creates a task service. A nil logger falls back to the
// logrus default.
func NewTaskService(tasks store.TaskStore, log *logrus.Logger) *TaskService {
	if log == nil {
		log = logrus.New()
	}
	return &TaskService{tasks: tasks, log: log}
}

// Create validates input and persists a new task owned by ownerID. The
// initial status is forced to pending regardless of caller input. Fails
// with NotFound if the owner no longer exists (mapped from the store's
// referential-integrity failure, not an explicit existence check).
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput, ownerID int64) (*model.Task, error) {
	if in.Title == "" {
		return nil, errkind.New(errkind.Validation, "title is required")
	}

	priority := model.Priority(in.Priority)
	if !priority.Valid() {
		return nil, errkind.Newf(errkind.Validation, "invalid priority %q: must be low, medium, or high", in.Priority)
	}

	dueDate, err := model.ParseDate(in.DueDate)
	if err != nil {
		return nil, errkind.Wrap(errkind.Validation, err.Error(), err)
	}

	task := &model.Task{
		Title:    in.Title,
		Priority: priority,
		DueDate:  dueDate,
		Status:   model.StatusPending,
		OwnerID:  ownerID,
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"operation": "task.create", "task_id": task.ID, "owner_id": ownerID}).Info("task created")
	return task, nil
}

// GetByID fetches a task, failing with NotFound if absent.
func (s *TaskService) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	return s.tasks.GetTask(ctx, id)
}

// List returns all tasks, unscoped. The missing owner filter matches the
// original transport contract; see DESIGN.md.
func (s *TaskService) List(ctx context.Context) ([]*model.Task, error) {
	return s.tasks.ListTasks(ctx)
}

// Update asserts the task exists, validates and merges the partial input,
// and persists the result. The existence check runs before any mutation so
// a missing task fails with NotFound without touching the store's update.
// A concurrent delete between the check and the write surfaces as the same
// NotFound from the store.
func (s *TaskService) Update(ctx context.Context, id int64, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, errkind.New(errkind.Validation, "title must not be empty")
		}
		task.Title = *in.Title
	}
	if in.Priority != nil {
		priority := model.Priority(*in.Priority)
		if !priority.Valid() {
			return nil, errkind.Newf(errkind.Validation, "invalid priority %q: must be low, medium, or high", *in.Priority)
		}
		task.Priority = priority
	}
	if in.DueDate != nil {
		dueDate, err := model.ParseDate(*in.DueDate)
		if err != nil {
			return nil, errkind.Wrap(errkind.Validation, err.Error(), err)
		}
		task.DueDate = dueDate
	}
	if in.Status != nil {
		status := model.Status(*in.Status)
		if !status.Valid() {
			return nil, errkind.Newf(errkind.Validation, "invalid status %q: must be pending, in_progress, or completed", *in.Status)
		}
		task.Status = status
	}

	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"operation": "task.update", "task_id": task.ID}).Info("task updated")
	return task, nil
}

// Delete asserts the task exists, removes it, and returns its last known
// value. A concurrent delete between the check and the removal surfaces as
// the same NotFound the check would have produced.
func (s *TaskService) Delete(ctx context.Context, id int64) (*model.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.DeleteTask(ctx, id); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"operation": "task.delete", "task_id": id}).Info("task deleted")
	return task, nil
}
