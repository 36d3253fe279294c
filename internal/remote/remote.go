package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/slok/cpm/internal/model"
)

// ProjectClient is the remote access to projects.
type ProjectClient interface {
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, p model.ProjectCreate) (*model.Project, error)
	Update(ctx context.Context, id string, u model.ProjectUpdate) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

// TaskClient is the remote access to tasks.
type TaskClient interface {
	ListByProject(ctx context.Context, projectID string) ([]model.Task, error)
	Get(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, t model.TaskCreate) (*model.Task, error)
	Update(ctx context.Context, id string, u model.TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

// ResourceClient is the remote access to resources.
type ResourceClient interface {
	List(ctx context.Context) ([]model.Resource, error)
	ListAvailable(ctx context.Context) ([]model.Resource, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Resource, error)
	Get(ctx context.Context, id string) (*model.Resource, error)
	Create(ctx context.Context, r model.ResourceCreate) (*model.Resource, error)
	Update(ctx context.Context, id string, u model.ResourceUpdate) (*model.Resource, error)
	Delete(ctx context.Context, id string) error
}

type identified interface {
	EntityID() string
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var items []T
	if err := c.Do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func send[T identified](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var item T
	if err := c.Do(ctx, method, path, body, &item); err != nil {
		return nil, err
	}

	// The cache stores server entities verbatim, an entity without identifier can't be tracked.
	if item.EntityID() == "" {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("%s %s: the API returned an entity without id", method, path)}
	}
	return &item, nil
}

func checkID(kind, id string) error {
	if id == "" {
		return validationError(fmt.Errorf("%s id is required: %w", kind, model.ErrNotValid))
	}
	return nil
}
