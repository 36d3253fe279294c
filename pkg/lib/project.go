package lib

import "context"

// FetchProjects loads all the projects replacing the cached ones. On failure the
// cached projects are kept and the error is also on [Client.Projects].
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	projects, err := c.projects.Fetch(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return projects, nil
}

// SelectProject loads a project and makes it the selected one.
func (c *Client) SelectProject(ctx context.Context, id string) (*Project, error) {
	p, err := c.projects.Select(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// SelectedProject returns the selected project, if it's still cached.
func (c *Client) SelectedProject() (Project, bool) {
	return c.store.Projects.Selected()
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, p ProjectCreate) (*Project, error) {
	created, err := c.projects.Create(ctx, p)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateProject updates the set fields of a project.
func (c *Client) UpdateProject(ctx context.Context, u ProjectUpdate) (*Project, error) {
	updated, err := c.projects.Update(ctx, u)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteProject deletes a project, its cached tasks are removed too.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return mapError(c.projects.Delete(ctx, id))
}

// Projects returns a copy of the cached projects state.
func (c *Client) Projects() CollectionState[Project] {
	return c.store.Projects.State()
}
