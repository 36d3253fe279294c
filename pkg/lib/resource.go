package lib

import (
	"context"

	"github.com/slok/cpm/internal/app/resource"
)

// ResourceQuery selects the resources to fetch.
type ResourceQuery struct {
	// ProjectID limits the resources to the ones assigned to the project.
	ProjectID string
	// AvailableOnly limits the resources to the available ones. Ignored with ProjectID.
	AvailableOnly bool
}

// FetchResources loads the resources replacing the cached ones.
func (c *Client) FetchResources(ctx context.Context, q ResourceQuery) ([]Resource, error) {
	resources, err := c.resources.Fetch(ctx, resource.FetchRequest{
		ProjectID:     q.ProjectID,
		AvailableOnly: q.AvailableOnly,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return resources, nil
}

// CreateResource creates a resource.
func (c *Client) CreateResource(ctx context.Context, r ResourceCreate) (*Resource, error) {
	created, err := c.resources.Create(ctx, r)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateResource updates the set fields of a resource.
func (c *Client) UpdateResource(ctx context.Context, u ResourceUpdate) (*Resource, error) {
	updated, err := c.resources.Update(ctx, u)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteResource deletes a resource.
func (c *Client) DeleteResource(ctx context.Context, id string) error {
	return mapError(c.resources.Delete(ctx, id))
}

// Resources returns a copy of the cached resources state.
func (c *Client) Resources() CollectionState[Resource] {
	return c.store.Resources.State()
}
