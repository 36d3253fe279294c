package remote

import (
	"context"
	"net/http"

	"github.com/slok/cpm/internal/model"
)

const projectsCollection = "projects"

// Projects is the HTTP implementation of ProjectClient.
type Projects struct {
	client *Client
}

// NewProjects returns the projects HTTP client.
func NewProjects(c *Client) *Projects {
	return &Projects{client: c}
}

var _ ProjectClient = &Projects{}

// List returns all the projects.
func (p *Projects) List(ctx context.Context) ([]model.Project, error) {
	return list[model.Project](ctx, p.client, "/"+projectsCollection)
}

// Get returns a single project.
func (p *Projects) Get(ctx context.Context, id string) (*model.Project, error) {
	if err := checkID("project", id); err != nil {
		return nil, err
	}
	return send[model.Project](ctx, p.client, http.MethodGet, entityPath(projectsCollection, id), nil)
}

// Create creates a project and returns it as stored by the server.
func (p *Projects) Create(ctx context.Context, c model.ProjectCreate) (*model.Project, error) {
	if err := c.Validate(); err != nil {
		return nil, validationError(err)
	}
	return send[model.Project](ctx, p.client, http.MethodPost, "/"+projectsCollection, c)
}

// Update applies a partial update and returns the updated project as stored by the server.
func (p *Projects) Update(ctx context.Context, id string, u model.ProjectUpdate) (*model.Project, error) {
	if err := checkID("project", id); err != nil {
		return nil, err
	}
	u.ID = id
	if err := u.Validate(); err != nil {
		return nil, validationError(err)
	}
	return send[model.Project](ctx, p.client, http.MethodPut, entityPath(projectsCollection, id), u)
}

// Delete deletes a project.
func (p *Projects) Delete(ctx context.Context, id string) error {
	if err := checkID("project", id); err != nil {
		return err
	}
	return p.client.Do(ctx, http.MethodDelete, entityPath(projectsCollection, id), nil, nil)
}
