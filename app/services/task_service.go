package services

import (
	"context"
	"time"

	"taskdesk/app/models"
)

const (
	DefaultPriority = models.PriorityMedium
	DefaultCategory = "personal"
)

// TaskService handles task-related operations.
type TaskService struct {
	*CRUD[models.Task, models.TaskPatch]
	recurrence Recurrence
}

// NewTaskService creates a new instance of TaskService seeded with tasks.
func NewTaskService(seed []models.Task, recurrence Recurrence, opts Options) *TaskService {
	return &TaskService{
		CRUD:       NewCRUD(taskSchema(), seed, opts),
		recurrence: recurrence,
	}
}

// Create adds a new task, and for a recurring task with a due date its
// future instances, in a single step. A parent, if given, must exist.
func (s *TaskService) Create(ctx context.Context, p models.TaskPatch) (models.Task, error) {
	if err := s.latency.Wait(ctx, OpCreate); err != nil {
		return models.Task{}, err
	}
	out, err := s.insert(func(current []models.Task) ([]models.Task, error) {
		if p.ParentTaskID != nil && *p.ParentTaskID != 0 {
			if err := checkParent(current, 0, *p.ParentTaskID); err != nil {
				return nil, err
			}
		}
		task := buildTask(s.store.NextID(), p, s.now())
		return append([]models.Task{task}, s.recurrence.Expand(task, s.store.NextID)...), nil
	})
	if err != nil {
		return models.Task{}, err
	}
	if len(out) > 1 {
		s.log.Debug("recurring instances generated", "id", out[0].ID, "count", len(out)-1)
	}
	return out[0], nil
}

// SetCompleted marks a task done or not done. Its parent is left alone.
func (s *TaskService) SetCompleted(ctx context.Context, id int64, done bool) (models.Task, error) {
	return s.Update(ctx, id, models.TaskPatch{Completed: &done})
}

// Subtasks returns the direct subtasks of parentID in store order.
func (s *TaskService) Subtasks(ctx context.Context, parentID int64) ([]models.Task, error) {
	return s.Where(ctx, func(t models.Task) bool {
		return t.ParentTaskID != nil && *t.ParentTaskID == parentID
	})
}

// Progress counts the completed and total subtasks of parentID.
func (s *TaskService) Progress(ctx context.Context, parentID int64) (Progress, error) {
	subtasks, err := s.Subtasks(ctx, parentID)
	if err != nil {
		return Progress{}, err
	}
	return SubtaskProgress(subtasks, parentID), nil
}

func taskSchema() Schema[models.Task, models.TaskPatch] {
	return Schema[models.Task, models.TaskPatch]{
		Entity:   "task",
		NotFound: ErrTaskNotFound,
		ID:       func(t models.Task) int64 { return t.ID },
		Clone:    models.Task.Clone,
		Build:    buildTask,
		Merge:    mergeTask,
		Check: func(cur models.Task, p models.TaskPatch, all []models.Task) error {
			if p.ParentTaskID == nil || *p.ParentTaskID == 0 {
				return nil
			}
			return checkParent(all, cur.ID, *p.ParentTaskID)
		},
		Related: func(id int64, all []models.Task) []int64 {
			return Descendants(all, id)
		},
		Fields: func(t models.Task) []string {
			return []string{t.Title, t.Description}
		},
	}
}

func buildTask(id int64, p models.TaskPatch, now time.Time) models.Task {
	t := models.Task{
		ID:                   id,
		Title:                orDefault(p.Title, ""),
		Description:          replace(p.Description, ""),
		GeneratedDescription: replace(p.GeneratedDescription, ""),
		Priority:             orDefault(p.Priority, DefaultPriority),
		Completed:            replace(p.Completed, false),
		ParentTaskID:         optionalID(p.ParentTaskID),
		IsRecurring:          replace(p.IsRecurring, false),
		RecurrenceFrequency:  orDefault(p.RecurrenceFrequency, ""),
		Category:             orDefault(p.Category, DefaultCategory),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if p.DueDate != nil && !p.DueDate.IsZero() {
		due := *p.DueDate
		t.DueDate = &due
	}
	if t.Completed {
		t.CompletedAt = completedAt(p.CompletedAt, now)
	}
	return t
}

func mergeTask(cur models.Task, p models.TaskPatch, now time.Time) models.Task {
	cur.Title = keep(p.Title, cur.Title)
	cur.Description = replace(p.Description, cur.Description)
	cur.GeneratedDescription = replace(p.GeneratedDescription, cur.GeneratedDescription)
	cur.Priority = keep(p.Priority, cur.Priority)
	cur.IsRecurring = replace(p.IsRecurring, cur.IsRecurring)
	cur.RecurrenceFrequency = keep(p.RecurrenceFrequency, cur.RecurrenceFrequency)
	cur.Category = keep(p.Category, cur.Category)

	switch {
	case p.ClearDueDate:
		cur.DueDate = nil
	case p.DueDate != nil && !p.DueDate.IsZero():
		due := *p.DueDate
		cur.DueDate = &due
	}

	// parent_task_id 0 promotes the task to top level
	if p.ParentTaskID != nil {
		cur.ParentTaskID = optionalID(p.ParentTaskID)
	}

	if p.Completed != nil {
		switch {
		case !*p.Completed:
			cur.CompletedAt = nil
		case !cur.Completed || p.CompletedAt != nil:
			cur.CompletedAt = completedAt(p.CompletedAt, now)
		}
		cur.Completed = *p.Completed
	}

	cur.UpdatedAt = now
	return cur
}

func completedAt(p *time.Time, now time.Time) *time.Time {
	if p != nil && !p.IsZero() {
		at := *p
		return &at
	}
	return &now
}
