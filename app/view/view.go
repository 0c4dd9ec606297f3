// Package view derives the visible task list and navigation counts from the
// full task set.
package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"taskdesk/app/models"
)

// Special selectors. Any other selector is a category id.
const (
	All     = "all"
	Today   = "today"
	Overdue = "overdue"
)

// Query selects the visible tasks.
type Query struct {
	Category string
	Search   string
}

// Tasks filters and sorts tasks for q as of now. The input is not modified.
func Tasks(tasks []models.Task, q Query, now time.Time) []models.Task {
	out := Filter(tasks, q, now)
	Sort(out)
	return out
}

// Filter keeps the tasks matching the selector and then the search term.
func Filter(tasks []models.Task, q Query, now time.Time) []models.Task {
	term := strings.ToLower(q.Search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !Selects(t, q.Category, now) {
			continue
		}
		if term != "" && !matches(t, term) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Selects reports whether t belongs to selector as of now.
func Selects(t models.Task, selector string, now time.Time) bool {
	switch selector {
	case "", All:
		return true
	case Today:
		return IsDueToday(t, now)
	case Overdue:
		return IsOverdue(t, now)
	default:
		return t.Category == selector
	}
}

// IsDueToday reports whether t is incomplete and due on now's calendar day.
func IsDueToday(t models.Task, now time.Time) bool {
	due, ok := dueIn(t, now.Location())
	if !ok {
		return false
	}
	dy, dm, dd := due.Date()
	ny, nm, nd := now.Date()
	return dy == ny && dm == nm && dd == nd
}

// IsOverdue reports whether t is incomplete and due strictly before now.
func IsOverdue(t models.Task, now time.Time) bool {
	due, ok := dueIn(t, now.Location())
	return ok && due.Before(now)
}

// dueIn returns the due date of an incomplete task in loc. A date without a
// time of day means midnight local to loc.
func dueIn(t models.Task, loc *time.Location) (time.Time, bool) {
	if t.Completed || t.DueDate == nil || t.DueDate.IsZero() {
		return time.Time{}, false
	}
	if t.DueDate.IsDateOnly() {
		y, m, d := t.DueDate.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}
	return t.DueDate.In(loc), true
}

func matches(t models.Task, term string) bool {
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// Sort orders tasks in place: incomplete first, then higher priority, then
// earlier due date with undated last, then newest first. Equal tasks keep
// their relative order.
func Sort(tasks []models.Task) {
	slices.SortStableFunc(tasks, Compare)
}

// Compare is the ordering used by Sort.
func Compare(a, b models.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}
	aDue := a.DueDate != nil && !a.DueDate.IsZero()
	bDue := b.DueDate != nil && !b.DueDate.IsZero()
	switch {
	case aDue && bDue:
		if c := a.DueDate.Compare(b.DueDate.Time); c != 0 {
			return c
		}
	case aDue:
		return -1
	case bDue:
		return 1
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// Counts returns the number of incomplete top-level tasks under each
// navigation entry: all, today, overdue and every category id.
func Counts(tasks []models.Task, categories []models.Category, now time.Time) map[string]int {
	counts := map[string]int{All: 0, Today: 0, Overdue: 0}
	for _, c := range categories {
		counts[c.ID] = 0
	}
	for _, t := range tasks {
		if !t.IsTopLevel() || t.Completed {
			continue
		}
		counts[All]++
		if IsDueToday(t, now) {
			counts[Today]++
		}
		if IsOverdue(t, now) {
			counts[Overdue]++
		}
		if _, ok := counts[t.Category]; ok && !isSpecial(t.Category) {
			counts[t.Category]++
		}
	}
	return counts
}

func isSpecial(id string) bool {
	return id == All || id == Today || id == Overdue
}

// CompletionRate returns the percentage of completed tasks, subtasks
// included. An empty set is 0.
func CompletionRate(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}
