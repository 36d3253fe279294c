package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ProjectStatus represents the lifecycle status of a construction project.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

// ProjectStatuses lists every valid project status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusOnHold,
}

// Valid returns true if the status is a known project status.
func (s ProjectStatus) Valid() bool { return slices.Contains(ProjectStatuses, s) }

// Project represents a construction project.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   Date          `json:"startDate"`
	EndDate     Date          `json:"endDate"`
	Status      ProjectStatus `json:"status"`
	Budget      float64       `json:"budget"`
	Location    string        `json:"location"`
	Manager     string        `json:"manager"`
	Progress    int           `json:"progress"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// EntityID returns the project identifier.
func (p Project) EntityID() string { return p.ID }

// Validate validates a complete project.
func (p Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("project id is required: %w", ErrNotValid)
	}

	return validateProjectFields(p.Name, p.Status, p.Budget, p.Progress, p.StartDate, p.EndDate)
}

// ProjectCreate is the payload to create a project, the server assigns the
// identifier and the timestamps.
type ProjectCreate struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   Date          `json:"startDate"`
	EndDate     Date          `json:"endDate"`
	Status      ProjectStatus `json:"status"`
	Budget      float64       `json:"budget"`
	Location    string        `json:"location"`
	Manager     string        `json:"manager"`
	Progress    *int          `json:"progress,omitempty"`
}

// Validate validates the project creation payload.
func (c ProjectCreate) Validate() error {
	progress := 0
	if c.Progress != nil {
		progress = *c.Progress
	}

	return validateProjectFields(c.Name, c.Status, c.Budget, progress, c.StartDate, c.EndDate)
}

// ToProject builds the full project from the payload.
func (c ProjectCreate) ToProject(id string, now time.Time) Project {
	p := Project{
		ID:          id,
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Status:      c.Status,
		Budget:      c.Budget,
		Location:    c.Location,
		Manager:     c.Manager,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Progress != nil {
		p.Progress = *c.Progress
	}

	return p
}

// ProjectUpdate is a partial project update, only the set fields are changed.
type ProjectUpdate struct {
	ID          string         `json:"id"`
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	StartDate   *Date          `json:"startDate,omitempty"`
	EndDate     *Date          `json:"endDate,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Budget      *float64       `json:"budget,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Manager     *string        `json:"manager,omitempty"`
	Progress    *int           `json:"progress,omitempty"`
}

// Validate validates the fields present on the update.
func (u ProjectUpdate) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("project id is required: %w", ErrNotValid)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("project name can't be empty: %w", ErrNotValid)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("unknown project status %q: %w", *u.Status, ErrNotValid)
	}
	if u.Budget != nil && *u.Budget < 0 {
		return fmt.Errorf("budget can't be negative: %w", ErrNotValid)
	}
	if u.Progress != nil {
		if err := validateProgress(*u.Progress); err != nil {
			return err
		}
	}
	if u.StartDate != nil && u.EndDate != nil {
		if err := validateDateRange(*u.StartDate, *u.EndDate, "end date"); err != nil {
			return err
		}
	}

	return nil
}

// Apply returns a copy of p with the update fields applied.
func (u ProjectUpdate) Apply(p Project) Project {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.StartDate != nil {
		p.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		p.EndDate = *u.EndDate
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Budget != nil {
		p.Budget = *u.Budget
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Manager != nil {
		p.Manager = *u.Manager
	}
	if u.Progress != nil {
		p.Progress = *u.Progress
	}

	return p
}

func validateProjectFields(name string, status ProjectStatus, budget float64, progress int, start, end Date) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name is required: %w", ErrNotValid)
	}
	if !status.Valid() {
		return fmt.Errorf("unknown project status %q: %w", status, ErrNotValid)
	}
	if budget < 0 {
		return fmt.Errorf("budget can't be negative: %w", ErrNotValid)
	}
	if err := validateProgress(progress); err != nil {
		return err
	}

	return validateDateRange(start, end, "end date")
}

func validateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress %d is out of the [0, 100] range: %w", progress, ErrNotValid)
	}
	return nil
}
