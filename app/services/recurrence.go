package services

import (
	"time"

	"taskdesk/app/models"
)

// DefaultRecurrenceInstances is the number of future tasks generated for a
// new recurring task.
const DefaultRecurrenceInstances = 5

// Recurrence projects future instances of recurring tasks.
type Recurrence struct {
	Instances int
}

// Next returns the due dates following base for freq, step by step. It
// returns nil for an unknown frequency.
func (r Recurrence) Next(base time.Time, freq models.Frequency) []time.Time {
	if r.Instances <= 0 {
		return nil
	}
	out := make([]time.Time, 0, r.Instances)
	for i := 1; i <= r.Instances; i++ {
		switch freq {
		case models.FrequencyDaily:
			out = append(out, base.AddDate(0, 0, i))
		case models.FrequencyWeekly:
			out = append(out, base.AddDate(0, 0, 7*i))
		case models.FrequencyMonthly:
			out = append(out, addMonths(base, i))
		default:
			return nil
		}
	}
	return out
}

// Expand returns the instances generated for task, which must already carry
// its own id. Tasks that are not recurring or have no due date yield none.
func (r Recurrence) Expand(task models.Task, nextID func() int64) []models.Task {
	if !task.IsRecurring || task.DueDate == nil || task.DueDate.IsZero() {
		return nil
	}
	var out []models.Task
	for _, due := range r.Next(task.DueDate.Time, task.RecurrenceFrequency) {
		inst := task.Clone()
		inst.ID = nextID()
		inst.DueDate = &models.Date{Time: due}
		inst.IsRecurring = false
		inst.RecurrenceFrequency = ""
		inst.Completed = false
		inst.CompletedAt = nil
		out = append(out, inst)
	}
	return out
}

// addMonths adds n calendar months, clamping the day to the end of the
// target month instead of overflowing into the next one.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
