package fixtures

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"taskdesk/app/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const readTasksQuery = "MATCH (t:Task) " +
	"OPTIONAL MATCH (t)-[:HAS_PARENT]->(p:Task) " +
	"RETURN t.id AS id, t.title AS title, t.description AS description, " +
	"t.priority AS priority, t.completed AS completed, t.due_date AS due_date, " +
	"t.is_recurring AS is_recurring, t.recurrence_frequency AS recurrence_frequency, " +
	"t.category AS category, t.created_at AS created_at, p.id AS parent_id " +
	"ORDER BY t.created_at, t.id"

// Neo4jSource reads seed tasks once from a graph of (:Task) nodes linked by
// HAS_PARENT relationships. Nothing is ever written back.
type Neo4jSource struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jSource creates a new Neo4jSource.
func NewNeo4jSource(driver neo4j.DriverWithContext) *Neo4jSource {
	return &Neo4jSource{driver: driver}
}

// Tasks retrieves all tasks from the graph.
func (s *Neo4jSource) Tasks(ctx context.Context) ([]models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, readTasksQuery, nil)
		if err != nil {
			return nil, err
		}
		var tasks []models.Task
		for res.Next(ctx) {
			task, err := taskFromRecord(res.Record())
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks from neo4j: %w", err)
	}
	tasks, _ := result.([]models.Task)
	return tasks, nil
}

// Load returns the embedded seed set with its tasks replaced by the graph's.
func (s *Neo4jSource) Load(ctx context.Context) (Set, error) {
	set, err := Embedded()
	if err != nil {
		return Set{}, err
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return Set{}, err
	}
	set.Tasks = tasks
	return set, nil
}

func taskFromRecord(record *neo4j.Record) (models.Task, error) {
	var t models.Task
	id, isNil, err := neo4j.GetRecordValue[int64](record, "id")
	if err != nil || isNil {
		return t, fmt.Errorf("task node without integer id: %v", err)
	}
	t.ID = id
	t.Title = stringValue(record, "title")
	t.Description = stringValue(record, "description")
	t.Priority = models.Priority(stringValue(record, "priority"))
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.Completed = boolValue(record, "completed")
	t.IsRecurring = boolValue(record, "is_recurring")
	t.RecurrenceFrequency = models.Frequency(stringValue(record, "recurrence_frequency"))
	t.Category = stringValue(record, "category")

	if v, ok := record.Get("due_date"); ok && v != nil {
		due, err := timeValue(v)
		if err != nil {
			return t, fmt.Errorf("task %d due_date: %w", id, err)
		}
		t.DueDate = &models.Date{Time: due}
	}
	if v, ok := record.Get("created_at"); ok && v != nil {
		created, err := timeValue(v)
		if err != nil {
			return t, fmt.Errorf("task %d created_at: %w", id, err)
		}
		t.CreatedAt = created
		t.UpdatedAt = created
	}
	if parent, isNil, err := neo4j.GetRecordValue[int64](record, "parent_id"); err == nil && !isNil {
		t.ParentTaskID = &parent
	}
	return t, nil
}

func stringValue(record *neo4j.Record, key string) string {
	v, _, _ := neo4j.GetRecordValue[string](record, key)
	return v
}

func boolValue(record *neo4j.Record, key string) bool {
	v, _, _ := neo4j.GetRecordValue[bool](record, key)
	return v
}

func timeValue(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case neo4j.Date:
		return x.Time(), nil
	case neo4j.LocalDateTime:
		return x.Time(), nil
	case string:
		var d models.Date
		if err := d.UnmarshalJSON([]byte(strconv.Quote(x))); err != nil {
			return time.Time{}, err
		}
		return d.Time, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported value %T", v)
	}
}
