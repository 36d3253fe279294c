package view

import (
	"cmp"

	"github.com/slok/cpm/internal/model"
)

// ProjectSortKey selects the project ordering.
type ProjectSortKey string

const (
	// ProjectSortNone keeps the cache order.
	ProjectSortNone      ProjectSortKey = ""
	ProjectSortName      ProjectSortKey = "name"
	ProjectSortStartDate ProjectSortKey = "startDate"
	ProjectSortEndDate   ProjectSortKey = "endDate"
	ProjectSortBudget    ProjectSortKey = "budget"
	ProjectSortProgress  ProjectSortKey = "progress"
	ProjectSortStatus    ProjectSortKey = "status"
)

// ProjectSortKeys are the valid project sort keys.
var ProjectSortKeys = []ProjectSortKey{
	ProjectSortName,
	ProjectSortStartDate,
	ProjectSortEndDate,
	ProjectSortBudget,
	ProjectSortProgress,
	ProjectSortStatus,
}

// ParseProjectSortKey parses a user provided sort key, case insensitive.
func ParseProjectSortKey(s string) (ProjectSortKey, error) {
	return parseKey(s, ProjectSortKeys, "project")
}

// ProjectFilter selects the projects of a view.
type ProjectFilter struct {
	// Search matches name or description, case insensitive.
	Search string
	// Status is a project status or "all".
	Status string
}

// DeriveProjects returns the projects matching the filter in the sort key order.
// Equal keys keep their relative input order.
func DeriveProjects(projects []model.Project, f ProjectFilter, sortKey ProjectSortKey) []model.Project {
	match := func(p model.Project) bool {
		return matchesText(f.Search, p.Name, p.Description) && matchesEnum(f.Status, p.Status)
	}

	return derive(projects, match, projectComparator(sortKey))
}

func projectComparator(key ProjectSortKey) func(a, b model.Project) int {
	switch key {
	case ProjectSortName:
		return func(a, b model.Project) int { return cmp.Compare(a.Name, b.Name) }
	case ProjectSortStartDate:
		return func(a, b model.Project) int { return compareDates(a.StartDate, b.StartDate) }
	case ProjectSortEndDate:
		return func(a, b model.Project) int { return compareDates(a.EndDate, b.EndDate) }
	case ProjectSortBudget:
		return func(a, b model.Project) int { return descending(a.Budget, b.Budget) }
	case ProjectSortProgress:
		return func(a, b model.Project) int { return descending(a.Progress, b.Progress) }
	case ProjectSortStatus:
		return func(a, b model.Project) int { return cmp.Compare(a.Status, b.Status) }
	}
	return nil
}

// ProjectStats are the aggregated project statistics.
type ProjectStats struct {
	Total       int                         `json:"total"`
	ByStatus    map[model.ProjectStatus]int `json:"byStatus"`
	TotalBudget float64                     `json:"totalBudget"`
	AvgProgress int                         `json:"avgProgress"`
}

// ComputeProjectStats aggregates the projects. Every known status is present on
// the per status counts, even with 0.
func ComputeProjectStats(projects []model.Project) ProjectStats {
	stats := ProjectStats{
		Total:    len(projects),
		ByStatus: make(map[model.ProjectStatus]int, len(model.ProjectStatuses)),
	}
	for _, s := range model.ProjectStatuses {
		stats.ByStatus[s] = 0
	}

	progress := 0
	for _, p := range projects {
		stats.ByStatus[p.Status]++
		stats.TotalBudget += p.Budget
		progress += p.Progress
	}
	stats.AvgProgress = average(progress, len(projects))

	return stats
}
