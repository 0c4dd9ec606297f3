package fixtures

import (
	"testing"
	"testing/fstest"
	"time"

	"taskdesk/app/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestEmbedded(t *testing.T) {
	set, err := Embedded()
	if err != nil {
		t.Fatalf("load embedded fixtures: %v", err)
	}
	if len(set.Tasks) != 7 || len(set.Categories) != 4 {
		t.Fatalf("expected 7 tasks and 4 categories, got %d and %d", len(set.Tasks), len(set.Categories))
	}
	if len(set.Contacts) != 3 || len(set.Companies) != 3 || len(set.Deals) != 3 || len(set.Leads) != 3 {
		t.Fatalf("expected 3 of each CRM entity, got %d/%d/%d/%d",
			len(set.Contacts), len(set.Companies), len(set.Deals), len(set.Leads))
	}

	ids := map[int64]bool{}
	for _, task := range set.Tasks {
		if ids[task.ID] {
			t.Fatalf("duplicate task id %d", task.ID)
		}
		ids[task.ID] = true
	}
	for _, task := range set.Tasks {
		if task.ParentTaskID != nil && !ids[*task.ParentTaskID] {
			t.Fatalf("task %d points at missing parent %d", task.ID, *task.ParentTaskID)
		}
	}

	first := set.Tasks[0]
	if first.DueDate == nil || !first.DueDate.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected due date 2024-07-15, got %v", first.DueDate)
	}
	if first.Priority != models.PriorityHigh {
		t.Fatalf("expected high priority, got %s", first.Priority)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	fsys := fstest.MapFS{
		"tasks.json": {Data: []byte(`[]`)},
	}
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected error for missing fixture files")
	}
}

func TestLoad_BadJSON(t *testing.T) {
	fsys := fstest.MapFS{}
	for _, name := range []string{"tasks.json", "categories.json", "contacts.json", "companies.json", "deals.json", "leads.json"} {
		fsys[name] = &fstest.MapFile{Data: []byte(`[]`)}
	}
	fsys["deals.json"] = &fstest.MapFile{Data: []byte(`{not json`)}
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTaskFromRecord(t *testing.T) {
	record := &neo4j.Record{
		Keys: []string{"id", "title", "description", "priority", "completed", "due_date",
			"is_recurring", "recurrence_frequency", "category", "created_at", "parent_id"},
		Values: []any{int64(12), "Renew passport", "", "urgent", false,
			neo4j.Date(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)),
			true, "monthly", "personal", "2024-07-01T08:00:00Z", int64(3)},
	}
	task, err := taskFromRecord(record)
	if err != nil {
		t.Fatalf("task from record: %v", err)
	}
	if task.ID != 12 || task.Title != "Renew passport" || task.Priority != models.PriorityUrgent {
		t.Fatalf("unexpected task %+v", task)
	}
	if !task.IsRecurring || task.RecurrenceFrequency != models.FrequencyMonthly {
		t.Fatalf("expected monthly recurrence, got %+v", task)
	}
	if task.DueDate == nil || task.DueDate.Year() != 2024 || task.DueDate.Month() != time.September {
		t.Fatalf("expected due date in September 2024, got %v", task.DueDate)
	}
	if !task.CreatedAt.Equal(time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at %v", task.CreatedAt)
	}
	if task.ParentTaskID == nil || *task.ParentTaskID != 3 {
		t.Fatalf("expected parent 3, got %v", task.ParentTaskID)
	}
}

func TestTaskFromRecord_NullsAndDefaults(t *testing.T) {
	record := &neo4j.Record{
		Keys:   []string{"id", "title", "priority", "due_date", "parent_id"},
		Values: []any{int64(1), "Bare", nil, nil, nil},
	}
	task, err := taskFromRecord(record)
	if err != nil {
		t.Fatalf("task from record: %v", err)
	}
	if task.Priority != models.PriorityMedium || task.DueDate != nil || task.ParentTaskID != nil {
		t.Fatalf("expected defaults for missing values, got %+v", task)
	}

	if _, err := taskFromRecord(&neo4j.Record{Keys: []string{"id"}, Values: []any{"x"}}); err == nil {
		t.Fatalf("expected error for non-integer id")
	}
}
