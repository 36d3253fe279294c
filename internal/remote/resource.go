package remote

import (
	"context"
	"net/http"

	"github.com/slok/cpm/internal/model"
)

const resourcesCollection = "resources"

// Resources is the HTTP implementation of ResourceClient.
type Resources struct {
	client *Client
}

// NewResources returns the resources HTTP client.
func NewResources(c *Client) *Resources {
	return &Resources{client: c}
}

var _ ResourceClient = &Resources{}

// List returns all the resources.
func (r *Resources) List(ctx context.Context) ([]model.Resource, error) {
	return list[model.Resource](ctx, r.client, "/"+resourcesCollection)
}

// ListAvailable returns the resources ready to be used.
func (r *Resources) ListAvailable(ctx context.Context) ([]model.Resource, error) {
	return list[model.Resource](ctx, r.client, "/"+resourcesCollection+"/available")
}

// ListByProject returns the resources assigned to a project.
func (r *Resources) ListByProject(ctx context.Context, projectID string) ([]model.Resource, error) {
	if err := checkID("project", projectID); err != nil {
		return nil, err
	}
	return list[model.Resource](ctx, r.client, entityPath(projectsCollection, projectID)+"/"+resourcesCollection)
}

// Get returns a single resource.
func (r *Resources) Get(ctx context.Context, id string) (*model.Resource, error) {
	if err := checkID("resource", id); err != nil {
		return nil, err
	}
	return send[model.Resource](ctx, r.client, http.MethodGet, entityPath(resourcesCollection, id), nil)
}

// Create creates a resource and returns it as stored by the server.
func (r *Resources) Create(ctx context.Context, c model.ResourceCreate) (*model.Resource, error) {
	if err := c.Validate(); err != nil {
		return nil, validationError(err)
	}
	return send[model.Resource](ctx, r.client, http.MethodPost, "/"+resourcesCollection, c)
}

// Update applies a partial update and returns the updated resource as stored by the server.
func (r *Resources) Update(ctx context.Context, id string, u model.ResourceUpdate) (*model.Resource, error) {
	if err := checkID("resource", id); err != nil {
		return nil, err
	}
	u.ID = id
	if err := u.Validate(); err != nil {
		return nil, validationError(err)
	}
	return send[model.Resource](ctx, r.client, http.MethodPut, entityPath(resourcesCollection, id), u)
}

// Delete deletes a resource.
func (r *Resources) Delete(ctx context.Context, id string) error {
	if err := checkID("resource", id); err != nil {
		return err
	}
	return r.client.Do(ctx, http.MethodDelete, entityPath(resourcesCollection, id), nil, nil)
}
