package project_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/app/project"
	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
	"github.com/slok/cpm/internal/remote/remotemock"
)

type shown struct {
	Message  string
	Severity notify.Severity
}

type testNotifier struct {
	shown []shown
}

func (n *testNotifier) Show(message string, severity notify.Severity) {
	n.shown = append(n.shown, shown{Message: message, Severity: severity})
}

func ptr[T any](v T) *T { return &v }

func testProject(id, name string) model.Project {
	return model.Project{
		ID:        id,
		Name:      name,
		Status:    model.ProjectStatusPlanning,
		StartDate: model.MustParseDate("2024-01-01"),
		EndDate:   model.MustParseDate("2024-12-31"),
		Progress:  10,
	}
}

func TestNewService(t *testing.T) {
	store, err := cache.NewStore(cache.StoreConfig{})
	require.NoError(t, err)

	tests := map[string]struct {
		config project.ServiceConfig
		expErr bool
	}{
		"A valid config should create the service.": {
			config: project.ServiceConfig{Client: &remotemock.MockProjectClient{}, Store: store, Notifier: &testNotifier{}},
		},
		"A missing client should fail.": {
			config: project.ServiceConfig{Store: store, Notifier: &testNotifier{}},
			expErr: true,
		},
		"A missing store should fail.": {
			config: project.ServiceConfig{Client: &remotemock.MockProjectClient{}, Notifier: &testNotifier{}},
			expErr: true,
		},
		"A missing notifier should fail.": {
			config: project.ServiceConfig{Client: &remotemock.MockProjectClient{}, Store: store},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := project.NewService(test.config)
			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestServiceFetch(t *testing.T) {
	tests := map[string]struct {
		initial   []model.Project
		mock      func(m *remotemock.MockProjectClient)
		expState  cache.State[model.Project]
		expShown  []shown
		expErr    bool
		expErrKnd remote.Kind
	}{
		"A successful fetch should replace the cached projects.": {
			initial: []model.Project{testProject("old", "Old")},
			mock: func(m *remotemock.MockProjectClient) {
				m.On("List", mock.Anything).Once().Return([]model.Project{testProject("1", "A"), testProject("2", "B")}, nil)
			},
			expState: cache.State[model.Project]{
				Items:  []model.Project{testProject("1", "A"), testProject("2", "B")},
				Status: cache.StatusLoaded,
			},
		},

		"A failed fetch should keep the cached projects and set the blocking error.": {
			initial: []model.Project{testProject("old", "Old")},
			mock: func(m *remotemock.MockProjectClient) {
				m.On("List", mock.Anything).Once().Return(nil, &remote.Error{Kind: remote.KindNetwork, Message: "connection refused"})
			},
			expState: cache.State[model.Project]{
				Items:  []model.Project{testProject("old", "Old")},
				Status: cache.StatusFailed,
				Error:  "connection refused",
			},
			expErr:    true,
			expErrKnd: remote.KindNetwork,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &remotemock.MockProjectClient{}
			test.mock(m)
			store, err := cache.NewStore(cache.StoreConfig{})
			require.NoError(err)
			store.Projects.FetchSucceeded(test.initial)
			n := &testNotifier{}

			svc, err := project.NewService(project.ServiceConfig{Client: m, Store: store, Notifier: n})
			require.NoError(err)

			_, err = svc.Fetch(context.Background())
			if test.expErr {
				assert.Error(err)
				assert.Equal(test.expErrKnd, remote.KindOf(err))
			} else {
				assert.NoError(err)
			}

			assert.Equal(test.expState, store.Projects.State())
			assert.Equal(test.expShown, n.shown)
			m.AssertExpectations(t)
		})
	}
}

func TestServiceMutations(t *testing.T) {
	created := testProject("3", "New")

	tests := map[string]struct {
		mock     func(m *remotemock.MockProjectClient)
		run      func(ctx context.Context, svc *project.Service) error
		expItems []model.Project
		expTasks []model.Task
		expMutEr string
		expShown []shown
		expErr   bool
	}{
		"Creating should append the project and notify success.": {
			mock: func(m *remotemock.MockProjectClient) {
				m.On("Create", mock.Anything, mock.Anything).Once().Return(&created, nil)
			},
			run: func(ctx context.Context, svc *project.Service) error {
				_, err := svc.Create(ctx, model.ProjectCreate{Name: "New", Status: model.ProjectStatusPlanning})
				return err
			},
			expItems: []model.Project{testProject("1", "A"), testProject("2", "B"), created},
			expTasks: []model.Task{{ID: "t1", ProjectID: "1"}, {ID: "t2", ProjectID: "2"}},
			expShown: []shown{{Message: "Project created successfully", Severity: notify.SeveritySuccess}},
		},

		"A failed create should leave the cache untouched and notify the error.": {
			mock: func(m *remotemock.MockProjectClient) {
				m.On("Create", mock.Anything, mock.Anything).Once().Return(nil, &remote.Error{Kind: remote.KindValidation, Message: "name is required"})
			},
			run: func(ctx context.Context, svc *project.Service) error {
				_, err := svc.Create(ctx, model.ProjectCreate{})
				return err
			},
			expItems: []model.Project{testProject("1", "A"), testProject("2", "B")},
			expTasks: []model.Task{{ID: "t1", ProjectID: "1"}, {ID: "t2", ProjectID: "2"}},
			expMutEr: "Failed to create project: name is required",
			expShown: []shown{{Message: "Failed to create project: name is required", Severity: notify.SeverityError}},
			expErr:   true,
		},

		"Updating should replace the project in place.": {
			mock: func(m *remotemock.MockProjectClient) {
				updated := testProject("1", "A2")
				m.On("Update", mock.Anything, "1", model.ProjectUpdate{ID: "1", Name: ptr("A2")}).Once().Return(&updated, nil)
			},
			run: func(ctx context.Context, svc *project.Service) error {
				_, err := svc.Update(ctx, model.ProjectUpdate{ID: "1", Name: ptr("A2")})
				return err
			},
			expItems: []model.Project{testProject("1", "A2"), testProject("2", "B")},
			expTasks: []model.Task{{ID: "t1", ProjectID: "1"}, {ID: "t2", ProjectID: "2"}},
			expShown: []shown{{Message: "Project updated successfully", Severity: notify.SeveritySuccess}},
		},

		"An update producing an invalid project should fail without calling the backend.": {
			mock: func(m *remotemock.MockProjectClient) {},
			run: func(ctx context.Context, svc *project.Service) error {
				_, err := svc.Update(ctx, model.ProjectUpdate{ID: "1", EndDate: ptr(model.MustParseDate("2023-01-01"))})
				return err
			},
			expItems: []model.Project{testProject("1", "A"), testProject("2", "B")},
			expTasks: []model.Task{{ID: "t1", ProjectID: "1"}, {ID: "t2", ProjectID: "2"}},
			expMutEr: "Failed to update project: updated project would be invalid: end date 2023-01-01 is before start date 2024-01-01: not valid",
			expShown: []shown{{Message: "Failed to update project: updated project would be invalid: end date 2023-01-01 is before start date 2024-01-01: not valid", Severity: notify.SeverityError}},
			expErr:   true,
		},

		"A failed update should leave the cache untouched.": {
			mock: func(m *remotemock.MockProjectClient) {
				m.On("Update", mock.Anything, "2", mock.Anything).Once().Return(nil, &remote.Error{Kind: remote.KindNotFound, Message: "project not found"})
			},
			run: func(ctx context.Context, svc *project.Service) error {
				_, err := svc.Update(ctx, model.ProjectUpdate{ID: "2", Progress: ptr(50)})
				return err
			},
			expItems: []model.Project{testProject("1", "A"), testProject("2", "B")},
			expTasks: []model.Task{{ID: "t1", ProjectID: "1"}, {ID: "t2", ProjectID: "2"}},
			expMutEr: "Failed to update project: project not found",
			expShown: []shown{{Message: "Failed to update project: project not found", Severity: notify.SeverityError}},
			expErr:   true,
		},

		"Deleting should remove the project and its cached tasks.": {
			mock: func(m *remotemock.MockProjectClient) {
				m.On("Delete", mock.Anything, "1").Once().Return(nil)
			},
			run: func(ctx context.Context, svc *project.Service) error {
				return svc.Delete(ctx, "1")
			},
			expItems: []model.Project{testProject("2", "B")},
			expTasks: []model.Task{{ID: "t2", ProjectID: "2"}},
			expShown: []shown{{Message: "Project deleted successfully", Severity: notify.SeveritySuccess}},
		},

		"A failed delete should leave the cache untouched.": {
			mock: func(m *remotemock.MockProjectClient) {
				m.On("Delete", mock.Anything, "1").Once().Return(fmt.Errorf("boom"))
			},
			run: func(ctx context.Context, svc *project.Service) error {
				return svc.Delete(ctx, "1")
			},
			expItems: []model.Project{testProject("1", "A"), testProject("2", "B")},
			expTasks: []model.Task{{ID: "t1", ProjectID: "1"}, {ID: "t2", ProjectID: "2"}},
			expMutEr: "Failed to delete project: boom",
			expShown: []shown{{Message: "Failed to delete project: boom", Severity: notify.SeverityError}},
			expErr:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &remotemock.MockProjectClient{}
			test.mock(m)
			store, err := cache.NewStore(cache.StoreConfig{})
			require.NoError(err)
			store.Projects.FetchSucceeded([]model.Project{testProject("1", "A"), testProject("2", "B")})
			store.Tasks.FetchSucceeded([]model.Task{{ID: "t1", ProjectID: "1"}, {ID: "t2", ProjectID: "2"}})
			n := &testNotifier{}

			svc, err := project.NewService(project.ServiceConfig{Client: m, Store: store, Notifier: n})
			require.NoError(err)

			err = test.run(context.Background(), svc)
			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}

			state := store.Projects.State()
			assert.Equal(test.expItems, state.Items)
			assert.Equal(test.expMutEr, state.MutationError)
			assert.Equal(test.expTasks, store.Tasks.Items())
			assert.Equal(test.expShown, n.shown)
			m.AssertExpectations(t)
		})
	}
}

func TestServiceSelect(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	p := testProject("9", "Selected")
	m := &remotemock.MockProjectClient{}
	m.On("Get", mock.Anything, "9").Once().Return(&p, nil)
	store, err := cache.NewStore(cache.StoreConfig{})
	require.NoError(err)

	svc, err := project.NewService(project.ServiceConfig{Client: m, Store: store, Notifier: &testNotifier{}})
	require.NoError(err)

	_, err = svc.Select(context.Background(), "9")
	require.NoError(err)

	got, ok := store.Projects.Selected()
	assert.True(ok)
	assert.Equal(p, got)
	m.AssertExpectations(t)
}

func TestServiceDiscardsLateCompletions(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	created := testProject("3", "Late")

	m := &remotemock.MockProjectClient{}
	m.On("Create", mock.Anything, mock.Anything).Once().Run(func(mock.Arguments) { cancel() }).Return(&created, nil)
	store, err := cache.NewStore(cache.StoreConfig{})
	require.NoError(err)
	n := &testNotifier{}

	svc, err := project.NewService(project.ServiceConfig{Client: m, Store: store, Notifier: n})
	require.NoError(err)

	_, err = svc.Create(ctx, model.ProjectCreate{Name: "Late", Status: model.ProjectStatusPlanning})

	assert.ErrorIs(err, context.Canceled)
	assert.Empty(store.Projects.Items())
	assert.Empty(n.shown)
}

func TestServiceFetchDiscardedOnCancel(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())

	m := &remotemock.MockProjectClient{}
	m.On("List", mock.Anything).Once().Run(func(mock.Arguments) { cancel() }).Return([]model.Project{testProject("9", "Late")}, nil)
	store, err := cache.NewStore(cache.StoreConfig{})
	require.NoError(err)
	store.Projects.FetchSucceeded([]model.Project{testProject("1", "A")})

	svc, err := project.NewService(project.ServiceConfig{Client: m, Store: store, Notifier: &testNotifier{}})
	require.NoError(err)

	_, err = svc.Fetch(ctx)
	assert.ErrorIs(err, context.Canceled)

	state := store.Projects.State()
	assert.False(state.Loading)
	assert.Equal(cache.StatusLoaded, state.Status)
	assert.Equal([]model.Project{testProject("1", "A")}, state.Items)
}
