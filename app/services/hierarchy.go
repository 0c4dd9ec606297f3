package services

import "taskdesk/app/models"

// Progress is the completion tally of a task's direct subtasks.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Subtasks returns the direct children of parentID, in order.
func Subtasks(tasks []models.Task, parentID int64) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.ParentTaskID != nil && *t.ParentTaskID == parentID {
			out = append(out, t)
		}
	}
	return out
}

// SubtaskProgress counts the completed and total direct subtasks of parentID.
func SubtaskProgress(tasks []models.Task, parentID int64) Progress {
	var p Progress
	for _, t := range Subtasks(tasks, parentID) {
		p.Total++
		if t.Completed {
			p.Completed++
		}
	}
	return p
}

// Descendants returns the ids of every task below rootID, at any depth.
func Descendants(tasks []models.Task, rootID int64) []int64 {
	children := make(map[int64][]int64)
	for _, t := range tasks {
		if t.ParentTaskID != nil {
			children[*t.ParentTaskID] = append(children[*t.ParentTaskID], t.ID)
		}
	}
	var out []int64
	seen := map[int64]bool{rootID: true}
	queue := []int64{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range children[id] {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

// checkParent validates that parentID exists and, for an existing task,
// that it does not sit in the task's own subtree.
func checkParent(tasks []models.Task, taskID, parentID int64) error {
	found := false
	for _, t := range tasks {
		if t.ID == parentID {
			found = true
			break
		}
	}
	if !found {
		return ErrInvalidParent
	}
	if taskID == 0 {
		return nil
	}
	if parentID == taskID {
		return ErrInvalidParent
	}
	for _, id := range Descendants(tasks, taskID) {
		if id == parentID {
			return ErrInvalidParent
		}
	}
	return nil
}
