package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/contextkeys"
	"github.com/taskvault/taskvault/pkg/httputil"
	"github.com/taskvault/taskvault/pkg/service"
)

// TaskHandlers handles task CRUD routes.
type TaskHandlers struct {
	tasks *service.TaskService
	log   *logrus.Logger
}

// NewTaskHandlers creates a new task handlers instance.
func NewTaskHandlers(tasks *service.TaskService, log *logrus.Logger) *TaskHandlers {
	return &TaskHandlers{tasks: tasks, log: log}
}

// RegisterCollectionRoutes registers the routes that target no specific
// instance and sit behind authentication only.
func (h *TaskHandlers) RegisterCollectionRoutes(router *mux.Router) {
	router.HandleFunc("/task/save", h.save).Methods("POST")
	router.HandleFunc("/task/all", h.all).Methods("GET")
}

// RegisterInstanceRoutes registers the ownership-guarded routes.
func (h *TaskHandlers) RegisterInstanceRoutes(router *mux.Router) {
	router.HandleFunc("/task/update/{id}", h.update).Methods("PATCH")
	router.HandleFunc("/task/details/{id}", h.details).Methods("GET")
	router.HandleFunc("/task/delete/{id}", h.delete).Methods("DELETE")
}

// save handles POST /task/save
func (h *TaskHandlers) save(w http.ResponseWriter, r *http.Request) {
	principal, ok := contextkeys.PrincipalFrom(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "missing authorization header")
		return
	}

	var req service.CreateTaskInput
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), req, principal.SubjectID)
	if err != nil {
		httputil.WriteAppError(w, h.log, "task.save", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully task created", map[string]interface{}{
		"task": task,
	})
}

// update handles PATCH /task/update/{id}
func (h *TaskHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var req service.UpdateTaskInput
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	updatedTask, err := h.tasks.Update(r.Context(), id, req)
	if err != nil {
		httputil.WriteAppError(w, h.log, "task.update", err)
		return
	}

	httputil.WriteSuccess(w, fmt.Sprintf("Successfully updated task of Task ID %d", updatedTask.ID), map[string]interface{}{
		"updatedTask": updatedTask,
	})
}

// details handles GET /task/details/{id}
func (h *TaskHandlers) details(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteAppError(w, h.log, "task.details", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully retrieved task", map[string]interface{}{
		"task": task,
	})
}

// all handles GET /task/all
func (h *TaskHandlers) all(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		httputil.WriteAppError(w, h.log, "task.all", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully retrieved all tasks", map[string]interface{}{
		"tasks": tasks,
	})
}

// delete handles DELETE /task/delete/{id}
func (h *TaskHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Delete(r.Context(), id)
	if err != nil {
		httputil.WriteAppError(w, h.log, "task.delete", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully deleted the task", map[string]interface{}{
		"task": task,
	})
}
