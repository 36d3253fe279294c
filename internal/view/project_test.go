package view_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/view"
)

func stavangerProjects() []model.Project {
	return []model.Project{
		{ID: "1", Name: "Stavanger Sentrum Office Complex", Description: "Modern 8-story sustainable office building in downtown Stavanger with green energy systems", StartDate: model.MustParseDate("2024-03-15"), EndDate: model.MustParseDate("2025-11-30"), Status: model.ProjectStatusInProgress, Budget: 185000000, Progress: 68},
		{ID: "2", Name: "Forus Business Park Expansion", Description: "Expansion of Forus industrial area with new logistics and tech facilities", StartDate: model.MustParseDate("2024-05-01"), EndDate: model.MustParseDate("2026-08-31"), Status: model.ProjectStatusInProgress, Budget: 320000000, Progress: 42},
		{ID: "3", Name: "Ryfast Tunnel Maintenance", Description: "Major maintenance and safety upgrades to the Ryfast undersea tunnel system", StartDate: model.MustParseDate("2024-01-10"), EndDate: model.MustParseDate("2024-12-20"), Status: model.ProjectStatusInProgress, Budget: 95000000, Progress: 75},
		{ID: "4", Name: "Hillevåg Residential Development", Description: "Sustainable residential complex with 180 apartments and community facilities", StartDate: model.MustParseDate("2023-09-01"), EndDate: model.MustParseDate("2024-10-15"), Status: model.ProjectStatusCompleted, Budget: 425000000, Progress: 100},
		{ID: "5", Name: "Stavanger University Hospital Extension", Description: "New medical wing with advanced treatment facilities and research center", StartDate: model.MustParseDate("2024-02-01"), EndDate: model.MustParseDate("2026-06-30"), Status: model.ProjectStatusPlanning, Budget: 580000000, Progress: 18},
		{ID: "6", Name: "Sandnes Town Square Renovation", Description: "Complete renovation of historic town square with modern public spaces", StartDate: model.MustParseDate("2024-04-01"), EndDate: model.MustParseDate("2025-05-31"), Status: model.ProjectStatusOnHold, Budget: 78000000, Progress: 28},
		{ID: "7", Name: "Offshore Wind Port Facility", Description: "New port infrastructure for offshore wind turbine assembly and maintenance", StartDate: model.MustParseDate("2024-06-01"), EndDate: model.MustParseDate("2026-12-31"), Status: model.ProjectStatusPlanning, Budget: 890000000, Progress: 12},
		{ID: "8", Name: "Eiganes School Modernization", Description: "Complete modernization of Eiganes school with sustainable design", StartDate: model.MustParseDate("2024-01-15"), EndDate: model.MustParseDate("2025-08-20"), Status: model.ProjectStatusInProgress, Budget: 125000000, Progress: 55},
	}
}

func projectIDs(ps []model.Project) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestDeriveProjects(t *testing.T) {
	zetaAlpha := []model.Project{
		{ID: "1", Name: "Zeta", Budget: 100, Progress: 20},
		{ID: "2", Name: "Alpha", Budget: 500, Progress: 90},
	}

	tests := map[string]struct {
		projects []model.Project
		filter   view.ProjectFilter
		sortKey  view.ProjectSortKey
		expIDs   []string
	}{
		"Sorting by budget should order from highest to lowest.": {
			projects: zetaAlpha,
			sortKey:  view.ProjectSortBudget,
			expIDs:   []string{"2", "1"},
		},

		"Sorting by name should order alphabetically.": {
			projects: zetaAlpha,
			sortKey:  view.ProjectSortName,
			expIDs:   []string{"2", "1"},
		},

		"Without sort key the input order should be kept.": {
			projects: zetaAlpha,
			expIDs:   []string{"1", "2"},
		},

		"Searching should match the name case insensitive.": {
			projects: stavangerProjects(),
			filter:   view.ProjectFilter{Search: "tunnel", Status: view.FilterAll},
			expIDs:   []string{"3"},
		},

		"Searching should match the description.": {
			projects: stavangerProjects(),
			filter:   view.ProjectFilter{Search: "SUSTAINABLE"},
			sortKey:  view.ProjectSortName,
			expIDs:   []string{"8", "4", "1"},
		},

		"Filtering by status should only return projects with that status.": {
			projects: stavangerProjects(),
			filter:   view.ProjectFilter{Status: string(model.ProjectStatusPlanning)},
			expIDs:   []string{"5", "7"},
		},

		"Search and status should be both applied.": {
			projects: stavangerProjects(),
			filter:   view.ProjectFilter{Search: "stavanger", Status: string(model.ProjectStatusPlanning)},
			expIDs:   []string{"5"},
		},

		"Sorting by start date should be chronological.": {
			projects: stavangerProjects(),
			filter:   view.ProjectFilter{Status: string(model.ProjectStatusInProgress)},
			sortKey:  view.ProjectSortStartDate,
			expIDs:   []string{"3", "8", "1", "2"},
		},

		"Sorting by end date should be chronological.": {
			projects: stavangerProjects(),
			filter:   view.ProjectFilter{Status: string(model.ProjectStatusPlanning)},
			sortKey:  view.ProjectSortEndDate,
			expIDs:   []string{"5", "7"},
		},

		"Sorting by progress should order from highest to lowest.": {
			projects: stavangerProjects(),
			sortKey:  view.ProjectSortProgress,
			expIDs:   []string{"4", "3", "1", "8", "2", "6", "5", "7"},
		},

		"Sorting by status should be stable for equal statuses.": {
			projects: stavangerProjects(),
			sortKey:  view.ProjectSortStatus,
			expIDs:   []string{"4", "1", "2", "3", "8", "6", "5", "7"},
		},

		"Equal budgets should keep the input order.": {
			projects: []model.Project{
				{ID: "a", Budget: 10},
				{ID: "b", Budget: 20},
				{ID: "c", Budget: 10},
				{ID: "d", Budget: 20},
			},
			sortKey: view.ProjectSortBudget,
			expIDs:  []string{"b", "d", "a", "c"},
		},

		"No matches should return an empty sequence.": {
			projects: stavangerProjects(),
			filter:   view.ProjectFilter{Search: "bridge"},
			expIDs:   []string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			input := slices.Clone(test.projects)
			got := view.DeriveProjects(test.projects, test.filter, test.sortKey)

			assert.Equal(test.expIDs, projectIDs(got))
			assert.Equal(input, test.projects, "input must not be mutated")
		})
	}
}

func TestDeriveProjectsProperties(t *testing.T) {
	projects := stavangerProjects()
	searches := []string{"", "stavanger", "a", "tunnel", "zzz"}
	statuses := []string{view.FilterAll, "planning", "in-progress", "completed", "on-hold"}

	for _, search := range searches {
		for _, status := range statuses {
			for _, key := range view.ProjectSortKeys {
				got := view.DeriveProjects(projects, view.ProjectFilter{Search: search, Status: status}, key)

				for _, p := range got {
					assert.Contains(t, projects, p)
					assert.True(t, search == "" ||
						strings.Contains(strings.ToLower(p.Name), search) ||
						strings.Contains(strings.ToLower(p.Description), search))
					assert.True(t, status == view.FilterAll || string(p.Status) == status)
				}

				for i := 1; i < len(got); i++ {
					switch key {
					case view.ProjectSortBudget:
						assert.GreaterOrEqual(t, got[i-1].Budget, got[i].Budget)
					case view.ProjectSortProgress:
						assert.GreaterOrEqual(t, got[i-1].Progress, got[i].Progress)
					case view.ProjectSortName:
						assert.LessOrEqual(t, got[i-1].Name, got[i].Name)
					}
				}
			}
		}
	}
}

func TestComputeProjectStats(t *testing.T) {
	tests := map[string]struct {
		projects []model.Project
		exp      view.ProjectStats
	}{
		"Empty collection should not divide by zero.": {
			projects: nil,
			exp: view.ProjectStats{
				ByStatus: map[model.ProjectStatus]int{
					model.ProjectStatusPlanning:   0,
					model.ProjectStatusInProgress: 0,
					model.ProjectStatusCompleted:  0,
					model.ProjectStatusOnHold:     0,
				},
			},
		},

		"Average progress should be rounded.": {
			projects: []model.Project{
				{Status: model.ProjectStatusPlanning, Budget: 100, Progress: 10},
				{Status: model.ProjectStatusPlanning, Budget: 50.5, Progress: 15},
			},
			exp: view.ProjectStats{
				Total: 2,
				ByStatus: map[model.ProjectStatus]int{
					model.ProjectStatusPlanning:   2,
					model.ProjectStatusInProgress: 0,
					model.ProjectStatusCompleted:  0,
					model.ProjectStatusOnHold:     0,
				},
				TotalBudget: 150.5,
				AvgProgress: 13,
			},
		},

		"Mock data should be aggregated.": {
			projects: stavangerProjects(),
			exp: view.ProjectStats{
				Total: 8,
				ByStatus: map[model.ProjectStatus]int{
					model.ProjectStatusPlanning:   2,
					model.ProjectStatusInProgress: 4,
					model.ProjectStatusCompleted:  1,
					model.ProjectStatusOnHold:     1,
				},
				TotalBudget: 2698000000,
				AvgProgress: 50,
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, view.ComputeProjectStats(test.projects))
		})
	}
}

func TestParseProjectSortKey(t *testing.T) {
	tests := map[string]struct {
		key    string
		expKey view.ProjectSortKey
		expErr bool
	}{
		"Empty should be no sort.":         {key: "", expKey: view.ProjectSortNone},
		"A valid key should be parsed.":    {key: "budget", expKey: view.ProjectSortBudget},
		"Keys should be case insensitive.": {key: "STARTDATE", expKey: view.ProjectSortStartDate},
		"An unknown key should fail.":      {key: "cost", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			got, err := view.ParseProjectSortKey(test.key)
			if test.expErr {
				require.Error(err)
				assert.ErrorIs(err, model.ErrNotValid)
				return
			}
			require.NoError(err)
			assert.Equal(test.expKey, got)
		})
	}
}
