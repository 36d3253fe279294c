package lib

import "context"

// FetchTasks loads the tasks of a project replacing the cached ones.
func (c *Client) FetchTasks(ctx context.Context, projectID string) ([]Task, error) {
	tasks, err := c.tasks.Fetch(ctx, projectID)
	if err != nil {
		return nil, mapError(err)
	}
	return tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, t TaskCreate) (*Task, error) {
	created, err := c.tasks.Create(ctx, t)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateTask updates the set fields of a task.
func (c *Client) UpdateTask(ctx context.Context, u TaskUpdate) (*Task, error) {
	updated, err := c.tasks.Update(ctx, u)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return mapError(c.tasks.Delete(ctx, id))
}

// Tasks returns a copy of the cached tasks state.
func (c *Client) Tasks() CollectionState[Task] {
	return c.store.Tasks.State()
}
