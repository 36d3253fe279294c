package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// TaskStatus represents the state of a project task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// TaskStatuses lists every valid task status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusBlocked,
}

// Valid returns true if the status is a known task status.
func (s TaskStatus) Valid() bool { return slices.Contains(TaskStatuses, s) }

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskPriorities lists every valid task priority from lowest to highest.
var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
}

// Valid returns true if the priority is a known task priority.
func (p TaskPriority) Valid() bool { return slices.Contains(TaskPriorities, p) }

// Rank returns a comparable weight, higher is more urgent. Unknown priorities rank 0.
func (p TaskPriority) Rank() int {
	return slices.Index(TaskPriorities, p) + 1
}

// Task represents a unit of work inside a project.
type Task struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"projectId"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	AssignedTo    []string     `json:"assignedTo"`
	StartDate     Date         `json:"startDate"`
	DueDate       Date         `json:"dueDate"`
	CompletedDate *Date        `json:"completedDate,omitempty"`
	Dependencies  []string     `json:"dependencies"`
	Progress      int          `json:"progress"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// EntityID returns the task identifier.
func (t Task) EntityID() string { return t.ID }

// Validate validates a complete task.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}
	if slices.Contains(t.Dependencies, t.ID) {
		return fmt.Errorf("task %s can't depend on itself: %w", t.ID, ErrNotValid)
	}

	return validateTaskFields(t.ProjectID, t.Title, t.Status, t.Priority, t.Progress, t.StartDate, t.DueDate)
}

// TaskCreate is the payload to create a task.
type TaskCreate struct {
	ProjectID     string       `json:"projectId"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	AssignedTo    []string     `json:"assignedTo"`
	StartDate     Date         `json:"startDate"`
	DueDate       Date         `json:"dueDate"`
	CompletedDate *Date        `json:"completedDate,omitempty"`
	Dependencies  []string     `json:"dependencies"`
	Progress      int          `json:"progress"`
}

// Validate validates the task creation payload.
func (c TaskCreate) Validate() error {
	return validateTaskFields(c.ProjectID, c.Title, c.Status, c.Priority, c.Progress, c.StartDate, c.DueDate)
}

// ToTask builds the full task from the payload.
func (c TaskCreate) ToTask(id string, now time.Time) Task {
	return Task{
		ID:            id,
		ProjectID:     c.ProjectID,
		Title:         c.Title,
		Description:   c.Description,
		Status:        c.Status,
		Priority:      c.Priority,
		AssignedTo:    slices.Clone(c.AssignedTo),
		StartDate:     c.StartDate,
		DueDate:       c.DueDate,
		CompletedDate: c.CompletedDate,
		Dependencies:  slices.Clone(c.Dependencies),
		Progress:      c.Progress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TaskUpdate is a partial task update, only the set fields are changed.
type TaskUpdate struct {
	ID            string        `json:"id"`
	ProjectID     *string       `json:"projectId,omitempty"`
	Title         *string       `json:"title,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Status        *TaskStatus   `json:"status,omitempty"`
	Priority      *TaskPriority `json:"priority,omitempty"`
	AssignedTo    *[]string     `json:"assignedTo,omitempty"`
	StartDate     *Date         `json:"startDate,omitempty"`
	DueDate       *Date         `json:"dueDate,omitempty"`
	CompletedDate *Date         `json:"completedDate,omitempty"`
	Dependencies  *[]string     `json:"dependencies,omitempty"`
	Progress      *int          `json:"progress,omitempty"`
}

// Validate validates the fields present on the update.
func (u TaskUpdate) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}
	if u.ProjectID != nil && *u.ProjectID == "" {
		return fmt.Errorf("task project id can't be empty: %w", ErrNotValid)
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return fmt.Errorf("task title can't be empty: %w", ErrNotValid)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("unknown task status %q: %w", *u.Status, ErrNotValid)
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return fmt.Errorf("unknown task priority %q: %w", *u.Priority, ErrNotValid)
	}
	if u.Progress != nil {
		if err := validateProgress(*u.Progress); err != nil {
			return err
		}
	}
	if u.Dependencies != nil && slices.Contains(*u.Dependencies, u.ID) {
		return fmt.Errorf("task %s can't depend on itself: %w", u.ID, ErrNotValid)
	}
	if u.StartDate != nil && u.DueDate != nil {
		if err := validateDateRange(*u.StartDate, *u.DueDate, "due date"); err != nil {
			return err
		}
	}

	return nil
}

// Apply returns a copy of t with the update fields applied.
func (u TaskUpdate) Apply(t Task) Task {
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.AssignedTo != nil {
		t.AssignedTo = slices.Clone(*u.AssignedTo)
	}
	if u.StartDate != nil {
		t.StartDate = *u.StartDate
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.CompletedDate != nil {
		d := *u.CompletedDate
		t.CompletedDate = &d
	}
	if u.Dependencies != nil {
		t.Dependencies = slices.Clone(*u.Dependencies)
	}
	if u.Progress != nil {
		t.Progress = *u.Progress
	}

	return t
}

func validateTaskFields(projectID, title string, status TaskStatus, priority TaskPriority, progress int, start, due Date) error {
	if projectID == "" {
		return fmt.Errorf("task project id is required: %w", ErrNotValid)
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("task title is required: %w", ErrNotValid)
	}
	if !status.Valid() {
		return fmt.Errorf("unknown task status %q: %w", status, ErrNotValid)
	}
	if !priority.Valid() {
		return fmt.Errorf("unknown task priority %q: %w", priority, ErrNotValid)
	}
	if err := validateProgress(progress); err != nil {
		return err
	}

	return validateDateRange(start, due, "due date")
}
