// Package remotemock has testify mocks of the remote clients.
package remotemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/remote"
)

var (
	_ remote.ProjectClient  = &MockProjectClient{}
	_ remote.TaskClient     = &MockTaskClient{}
	_ remote.ResourceClient = &MockResourceClient{}
)

// MockProjectClient is a mock for remote.ProjectClient.
type MockProjectClient struct {
	mock.Mock
}

func (m *MockProjectClient) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]model.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectClient) Get(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectClient) Create(ctx context.Context, c model.ProjectCreate) (*model.Project, error) {
	args := m.Called(ctx, c)
	if p, ok := args.Get(0).(*model.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectClient) Update(ctx context.Context, id string, u model.ProjectUpdate) (*model.Project, error) {
	args := m.Called(ctx, id, u)
	if p, ok := args.Get(0).(*model.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectClient) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskClient is a mock for remote.TaskClient.
type MockTaskClient struct {
	mock.Mock
}

func (m *MockTaskClient) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]model.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) Get(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*model.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) Create(ctx context.Context, c model.TaskCreate) (*model.Task, error) {
	args := m.Called(ctx, c)
	if t, ok := args.Get(0).(*model.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) Update(ctx context.Context, id string, u model.TaskUpdate) (*model.Task, error) {
	args := m.Called(ctx, id, u)
	if t, ok := args.Get(0).(*model.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskClient) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResourceClient is a mock for remote.ResourceClient.
type MockResourceClient struct {
	mock.Mock
}

func (m *MockResourceClient) List(ctx context.Context) ([]model.Resource, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]model.Resource); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceClient) ListAvailable(ctx context.Context) ([]model.Resource, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]model.Resource); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceClient) ListByProject(ctx context.Context, projectID string) ([]model.Resource, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]model.Resource); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceClient) Get(ctx context.Context, id string) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*model.Resource); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceClient) Create(ctx context.Context, c model.ResourceCreate) (*model.Resource, error) {
	args := m.Called(ctx, c)
	if r, ok := args.Get(0).(*model.Resource); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceClient) Update(ctx context.Context, id string, u model.ResourceUpdate) (*model.Resource, error) {
	args := m.Called(ctx, id, u)
	if r, ok := args.Get(0).(*model.Resource); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceClient) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
