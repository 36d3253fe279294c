package storage

import (
	"context"

	"github.com/slok/cpm/internal/model"
)

// ProjectRepository is the interface for project persistence.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	CreateProject(ctx context.Context, p model.Project) error
	UpdateProject(ctx context.Context, p model.Project) error
	// DeleteProject deletes the project and its tasks, it's also unassigned from resources.
	DeleteProject(ctx context.Context, id string) error
}

// ListTasksOpts are the options to list tasks.
type ListTasksOpts struct {
	// ProjectID only lists the tasks of the project, all if empty.
	ProjectID string
}

// TaskRepository is the interface for task persistence.
type TaskRepository interface {
	ListTasks(ctx context.Context, opts ListTasksOpts) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	CreateTask(ctx context.Context, t model.Task) error
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id string) error
}

// ListResourcesOpts are the options to list resources.
type ListResourcesOpts struct {
	// ProjectID only lists the resources assigned to the project.
	ProjectID string
	// Availability only lists the resources with the availability.
	Availability model.Availability
}

// ResourceRepository is the interface for resource persistence.
type ResourceRepository interface {
	ListResources(ctx context.Context, opts ListResourcesOpts) ([]model.Resource, error)
	GetResource(ctx context.Context, id string) (*model.Resource, error)
	CreateResource(ctx context.Context, r model.Resource) error
	UpdateResource(ctx context.Context, r model.Resource) error
	DeleteResource(ctx context.Context, id string) error
}

// Repository is the whole backend persistence.
type Repository interface {
	ProjectRepository
	TaskRepository
	ResourceRepository
}

// Seed is the initial data of a repository.
type Seed struct {
	Projects  []model.Project
	Tasks     []model.Task
	Resources []model.Resource
}
