package models

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for sorting. Unknown values rank as low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Frequency is the recurrence rule of a recurring task.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Task represents a task with optional parent ID.
type Task struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	GeneratedDescription string     `json:"generated_description,omitempty"`
	Priority             Priority   `json:"priority"`
	Completed            bool       `json:"completed"`
	CompletedAt          *time.Time `json:"completed_at"`
	DueDate              *Date      `json:"due_date"`
	ParentTaskID         *int64     `json:"parent_task_id"`
	IsRecurring          bool       `json:"is_recurring"`
	RecurrenceFrequency  Frequency  `json:"recurrence_frequency,omitempty"`
	Category             string     `json:"category"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// IsTopLevel reports whether the task has no parent.
func (t Task) IsTopLevel() bool {
	return t.ParentTaskID == nil
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	out.CompletedAt = cloneTime(t.CompletedAt)
	out.DueDate = cloneDate(t.DueDate)
	out.ParentTaskID = cloneID(t.ParentTaskID)
	return out
}

// TaskPatch carries the fields of a create or update request. Nil means the
// field was not sent.
type TaskPatch struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	GeneratedDescription *string    `json:"generated_description"`
	Priority             *Priority  `json:"priority"`
	Completed            *bool      `json:"completed"`
	CompletedAt          *time.Time `json:"completed_at"`
	DueDate              *Date      `json:"due_date"`
	ClearDueDate         bool       `json:"clear_due_date"`
	ParentTaskID         *int64     `json:"parent_task_id"`
	IsRecurring          *bool      `json:"is_recurring"`
	RecurrenceFrequency  *Frequency `json:"recurrence_frequency"`
	Category             *string    `json:"category"`
}

// Category groups tasks for navigation counts.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
