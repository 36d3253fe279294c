package view

import (
	"cmp"
	"time"

	"github.com/slok/cpm/internal/model"
)

// TaskSortKey selects the task ordering.
type TaskSortKey string

const (
	TaskSortNone     TaskSortKey = ""
	TaskSortTitle    TaskSortKey = "title"
	TaskSortDueDate  TaskSortKey = "dueDate"
	TaskSortPriority TaskSortKey = "priority"
	TaskSortProgress TaskSortKey = "progress"
	TaskSortStatus   TaskSortKey = "status"
)

// TaskSortKeys are the valid task sort keys.
var TaskSortKeys = []TaskSortKey{
	TaskSortTitle,
	TaskSortDueDate,
	TaskSortPriority,
	TaskSortProgress,
	TaskSortStatus,
}

// ParseTaskSortKey parses a user provided sort key, case insensitive.
func ParseTaskSortKey(s string) (TaskSortKey, error) {
	return parseKey(s, TaskSortKeys, "task")
}

// TaskFilter selects the tasks of a view.
type TaskFilter struct {
	// Search matches title or description, case insensitive.
	Search    string
	Status    string
	Priority  string
	ProjectID string
}

// DeriveTasks returns the tasks matching the filter in the sort key order.
func DeriveTasks(tasks []model.Task, f TaskFilter, sortKey TaskSortKey) []model.Task {
	match := func(t model.Task) bool {
		return matchesText(f.Search, t.Title, t.Description) &&
			matchesEnum(f.Status, t.Status) &&
			matchesEnum(f.Priority, t.Priority) &&
			(f.ProjectID == "" || f.ProjectID == t.ProjectID)
	}

	return derive(tasks, match, taskComparator(sortKey))
}

func taskComparator(key TaskSortKey) func(a, b model.Task) int {
	switch key {
	case TaskSortTitle:
		return func(a, b model.Task) int { return cmp.Compare(a.Title, b.Title) }
	case TaskSortDueDate:
		return func(a, b model.Task) int { return compareDates(a.DueDate, b.DueDate) }
	case TaskSortPriority:
		return func(a, b model.Task) int { return descending(a.Priority.Rank(), b.Priority.Rank()) }
	case TaskSortProgress:
		return func(a, b model.Task) int { return descending(a.Progress, b.Progress) }
	case TaskSortStatus:
		return func(a, b model.Task) int { return cmp.Compare(a.Status, b.Status) }
	}
	return nil
}

// TaskStats are the aggregated task statistics.
type TaskStats struct {
	Total       int                        `json:"total"`
	ByStatus    map[model.TaskStatus]int   `json:"byStatus"`
	ByPriority  map[model.TaskPriority]int `json:"byPriority"`
	AvgProgress int                        `json:"avgProgress"`
	Overdue     int                        `json:"overdue"`
}

// ComputeTaskStats aggregates the tasks. A task is overdue when it's not completed
// and its due date is before the day of now.
func ComputeTaskStats(tasks []model.Task, now time.Time) TaskStats {
	stats := TaskStats{
		Total:      len(tasks),
		ByStatus:   make(map[model.TaskStatus]int, len(model.TaskStatuses)),
		ByPriority: make(map[model.TaskPriority]int, len(model.TaskPriorities)),
	}
	for _, s := range model.TaskStatuses {
		stats.ByStatus[s] = 0
	}
	for _, p := range model.TaskPriorities {
		stats.ByPriority[p] = 0
	}

	today := model.NewDate(now.Year(), now.Month(), now.Day())
	progress := 0
	for _, t := range tasks {
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
		progress += t.Progress
		if t.Status != model.TaskStatusCompleted && !t.DueDate.IsZero() && t.DueDate.Before(today) {
			stats.Overdue++
		}
	}
	stats.AvgProgress = average(progress, len(tasks))

	return stats
}
