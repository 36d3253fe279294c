package remote

import (
	"context"
	"net/http"

	"github.com/slok/cpm/internal/model"
)

const tasksCollection = "tasks"

// Tasks is the HTTP implementation of TaskClient.
type Tasks struct {
	client *Client
}

// NewTasks returns the tasks HTTP client.
func NewTasks(c *Client) *Tasks {
	return &Tasks{client: c}
}

var _ TaskClient = &Tasks{}

// ListByProject returns the tasks of a project.
func (t *Tasks) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	if err := checkID("project", projectID); err != nil {
		return nil, err
	}
	return list[model.Task](ctx, t.client, entityPath(projectsCollection, projectID)+"/"+tasksCollection)
}

// Get returns a single task.
func (t *Tasks) Get(ctx context.Context, id string) (*model.Task, error) {
	if err := checkID("task", id); err != nil {
		return nil, err
	}
	return send[model.Task](ctx, t.client, http.MethodGet, entityPath(tasksCollection, id), nil)
}

// Create creates a task and returns it as stored by the server.
func (t *Tasks) Create(ctx context.Context, c model.TaskCreate) (*model.Task, error) {
	if err := c.Validate(); err != nil {
		return nil, validationError(err)
	}
	return send[model.Task](ctx, t.client, http.MethodPost, "/"+tasksCollection, c)
}

// Update applies a partial update and returns the updated task as stored by the server.
func (t *Tasks) Update(ctx context.Context, id string, u model.TaskUpdate) (*model.Task, error) {
	if err := checkID("task", id); err != nil {
		return nil, err
	}
	u.ID = id
	if err := u.Validate(); err != nil {
		return nil, validationError(err)
	}
	return send[model.Task](ctx, t.client, http.MethodPut, entityPath(tasksCollection, id), u)
}

// Delete deletes a task.
func (t *Tasks) Delete(ctx context.Context, id string) error {
	if err := checkID("task", id); err != nil {
		return err
	}
	return t.client.Do(ctx, http.MethodDelete, entityPath(tasksCollection, id), nil, nil)
}
