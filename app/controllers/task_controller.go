package controllers

import (
	"net/http"
	"time"

	"taskdesk/app/models"
	"taskdesk/app/services"
	"taskdesk/app/view"
)

// TaskController handles HTTP requests for tasks.
type TaskController struct {
	Service    *services.TaskService
	Categories *services.CategoryService
	Now        func() time.Time
}

// NewTaskController creates a new TaskController.
func NewTaskController(service *services.TaskService, categories *services.CategoryService) *TaskController {
	return &TaskController{Service: service, Categories: categories, Now: time.Now}
}

// GetTasks handles GET /tasks?category=&q=.
func (c *TaskController) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	q := view.Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}
	writeJSON(w, http.StatusOK, view.Tasks(tasks, q, c.Now()))
}

// CreateTask handles POST /tasks.
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if !decode(w, r, &patch) {
		return
	}
	task, err := c.Service.Create(r.Context(), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// GetTaskByID handles GET /tasks/{id}.
func (c *TaskController) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{id}.
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.TaskPatch
	if !decode(w, r, &patch) {
		return
	}
	task, err := c.Service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}. Subtasks go with it.
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSubtasks handles GET /tasks/{id}/subtasks.
func (c *TaskController) GetSubtasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	subtasks, err := c.Service.Subtasks(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if subtasks == nil {
		subtasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, subtasks)
}

// GetProgress handles GET /tasks/{id}/progress.
func (c *TaskController) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	progress, err := c.Service.Progress(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// GetCounts handles GET /tasks/counts.
func (c *TaskController) GetCounts(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	categories, err := c.Categories.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Counts(tasks, categories, c.Now()))
}

// GetStats handles GET /tasks/stats.
func (c *TaskController) GetStats(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":           len(tasks),
		"completion_rate": view.CompletionRate(tasks),
	})
}

// GetCategories handles GET /categories.
func (c *TaskController) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Categories.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
