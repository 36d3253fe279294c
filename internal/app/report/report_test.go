package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/app/project"
	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/app/resource"
	"github.com/slok/cpm/internal/app/task"
	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
	"github.com/slok/cpm/internal/remote/remotemock"
	"github.com/slok/cpm/internal/view"
)

type nopNotifier struct{}

func (nopNotifier) Show(string, notify.Severity) {}

type mocks struct {
	projects  *remotemock.MockProjectClient
	tasks     *remotemock.MockTaskClient
	resources *remotemock.MockResourceClient
}

func newTestService(t *testing.T, m mocks) (*report.Service, *cache.Store) {
	require := require.New(t)

	store, err := cache.NewStore(cache.StoreConfig{})
	require.NoError(err)

	projectSvc, err := project.NewService(project.ServiceConfig{Client: m.projects, Store: store, Notifier: nopNotifier{}})
	require.NoError(err)
	taskSvc, err := task.NewService(task.ServiceConfig{Client: m.tasks, Store: store, Notifier: nopNotifier{}})
	require.NoError(err)
	resourceSvc, err := resource.NewService(resource.ServiceConfig{Client: m.resources, Store: store, Notifier: nopNotifier{}})
	require.NoError(err)

	svc, err := report.NewService(report.ServiceConfig{
		Projects:  projectSvc,
		Tasks:     taskSvc,
		Resources: resourceSvc,
		Store:     store,
		Now:       func() time.Time { return time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(err)

	return svc, store
}

var (
	zeta  = model.Project{ID: "1", Name: "Zeta", Status: model.ProjectStatusPlanning, Budget: 100, Progress: 20}
	alpha = model.Project{ID: "2", Name: "Alpha", Status: model.ProjectStatusInProgress, Budget: 500, Progress: 90}
)

func TestServiceRunDashboard(t *testing.T) {
	tests := map[string]struct {
		mock        func(m mocks)
		req         report.Request
		expProjects []model.Project
		expStats    view.ProjectStats
		expErr      bool
	}{
		"The projects should be loaded and sorted.": {
			mock: func(m mocks) {
				m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta, alpha}, nil)
			},
			req:         report.Request{Sort: view.ProjectSortBudget},
			expProjects: []model.Project{alpha, zeta},
			expStats: view.ProjectStats{
				Total: 2,
				ByStatus: map[model.ProjectStatus]int{
					model.ProjectStatusPlanning:   1,
					model.ProjectStatusInProgress: 1,
					model.ProjectStatusCompleted:  0,
					model.ProjectStatusOnHold:     0,
				},
				TotalBudget: 600,
				AvgProgress: 55,
			},
		},

		"The filter should not change the stats.": {
			mock: func(m mocks) {
				m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta, alpha}, nil)
			},
			req:         report.Request{Filter: view.ProjectFilter{Status: "planning"}},
			expProjects: []model.Project{zeta},
			expStats: view.ProjectStats{
				Total: 2,
				ByStatus: map[model.ProjectStatus]int{
					model.ProjectStatusPlanning:   1,
					model.ProjectStatusInProgress: 1,
					model.ProjectStatusCompleted:  0,
					model.ProjectStatusOnHold:     0,
				},
				TotalBudget: 600,
				AvgProgress: 55,
			},
		},

		"A failure loading the projects should fail.": {
			mock: func(m mocks) {
				m.projects.On("List", mock.Anything).Once().Return(nil, &remote.Error{Kind: remote.KindNetwork, Message: "connection refused"})
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			m := mocks{
				projects:  &remotemock.MockProjectClient{},
				tasks:     &remotemock.MockTaskClient{},
				resources: &remotemock.MockResourceClient{},
			}
			test.mock(m)
			svc, _ := newTestService(t, m)

			got, err := svc.Run(context.Background(), test.req)
			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expProjects, got.Projects)
				assert.Equal(test.expStats, got.ProjectStats)
				assert.Nil(got.Project)
			}
			m.projects.AssertExpectations(t)
		})
	}
}

func TestServiceRunCachedProjectsAreNotReloaded(t *testing.T) {
	m := mocks{projects: &remotemock.MockProjectClient{}, tasks: &remotemock.MockTaskClient{}, resources: &remotemock.MockResourceClient{}}
	m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta}, nil)
	svc, _ := newTestService(t, m)

	_, err := svc.Run(context.Background(), report.Request{})
	require.NoError(t, err)
	_, err = svc.Run(context.Background(), report.Request{})
	require.NoError(t, err)

	m.projects.AssertExpectations(t)
}

func TestServiceRunReloadsUnloadedProjects(t *testing.T) {
	tests := map[string]struct {
		mock     func(m mocks, cancel func())
	}{
		"After a failed load the projects should be loaded again.": {
			mock: func(m mocks, _ func()) {
				m.projects.On("List", mock.Anything).Once().Return(nil, &remote.Error{Kind: remote.KindUnknown, Message: "boom"})
				m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta, alpha}, nil)
			},
		},

		"After an abandoned load the projects should be loaded again.": {
			mock: func(m mocks, cancel func()) {
				m.projects.On("List", mock.Anything).Once().Run(func(mock.Arguments) { cancel() }).Return([]model.Project{zeta}, nil)
				m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta, alpha}, nil)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := mocks{projects: &remotemock.MockProjectClient{}, tasks: &remotemock.MockTaskClient{}, resources: &remotemock.MockResourceClient{}}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			test.mock(m, cancel)
			svc, store := newTestService(t, m)

			_, err := svc.Run(ctx, report.Request{})
			require.Error(err)
			assert.False(store.Projects.State().Loading)

			got, err := svc.Run(context.Background(), report.Request{})
			require.NoError(err)
			assert.Equal(2, got.ProjectStats.Total)
			assert.Len(got.Projects, 2)

			m.projects.AssertExpectations(t)
		})
	}
}

func TestServiceRunProjectDetail(t *testing.T) {
	due := model.MustParseDate("2024-07-01")
	t1 := model.Task{ID: "t1", ProjectID: "2", Title: "Late", Status: model.TaskStatusTodo, Priority: model.TaskPriorityHigh, DueDate: due, Progress: 50}
	r1 := model.Resource{ID: "r1", Name: "Crane", Type: model.ResourceTypeEquipment, Availability: model.AvailabilityInUse, Cost: 10, Quantity: 3}

	tests := map[string]struct {
		mock      func(m mocks)
		projectID string
		exp       func(t *testing.T, d *report.ProjectDetail)
		expErr    bool
	}{
		"The detail should have the project tasks and resources.": {
			mock: func(m mocks) {
				m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta, alpha}, nil)
				m.tasks.On("ListByProject", mock.Anything, "2").Once().Return([]model.Task{t1}, nil)
				m.resources.On("ListByProject", mock.Anything, "2").Once().Return([]model.Resource{r1}, nil)
			},
			projectID: "2",
			exp: func(t *testing.T, d *report.ProjectDetail) {
				assert.Equal(t, alpha, d.Project)
				assert.Equal(t, []model.Task{t1}, d.Tasks)
				assert.Equal(t, 1, d.TaskStats.Overdue)
				assert.Equal(t, 50, d.TaskStats.AvgProgress)
				assert.Equal(t, []model.Resource{r1}, d.Resources)
				assert.InDelta(t, 30.0, d.ResourceStats.TotalValue, 0.001)
				assert.Empty(t, d.TasksError)
				assert.Empty(t, d.ResourcesError)
			},
		},

		"A failure loading resources should not fail the detail.": {
			mock: func(m mocks) {
				m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta, alpha}, nil)
				m.tasks.On("ListByProject", mock.Anything, "2").Once().Return([]model.Task{t1}, nil)
				m.resources.On("ListByProject", mock.Anything, "2").Once().Return(nil, &remote.Error{Kind: remote.KindNotFound, Message: "not implemented"})
			},
			projectID: "2",
			exp: func(t *testing.T, d *report.ProjectDetail) {
				assert.Equal(t, []model.Task{t1}, d.Tasks)
				assert.Equal(t, []model.Resource{}, d.Resources)
				assert.Equal(t, "not implemented", d.ResourcesError)
			},
		},

		"A missing project should fail.": {
			mock: func(m mocks) {
				m.projects.On("List", mock.Anything).Once().Return([]model.Project{zeta}, nil)
			},
			projectID: "2",
			expErr:    true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := mocks{
				projects:  &remotemock.MockProjectClient{},
				tasks:     &remotemock.MockTaskClient{},
				resources: &remotemock.MockResourceClient{},
			}
			test.mock(m)
			svc, store := newTestService(t, m)

			got, err := svc.Run(context.Background(), report.Request{ProjectID: test.projectID})
			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotFound)
				assert.Empty(t, store.Projects.State().SelectedID)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got.Project)
				test.exp(t, got.Project)

				selected, ok := store.Projects.Selected()
				assert.True(t, ok)
				assert.Equal(t, test.projectID, selected.ID)
			}

			m.projects.AssertExpectations(t)
			m.tasks.AssertExpectations(t)
			m.resources.AssertExpectations(t)
		})
	}
}
