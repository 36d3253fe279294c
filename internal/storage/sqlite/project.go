package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/slok/cpm/internal/model"
)

// ListProjects returns all projects by creation order.
func (r *Repository) ListProjects(ctx context.Context) ([]model.Project, error) {
	return listDocs[model.Project](ctx, r.db, `SELECT data FROM projects ORDER BY created_at, id`)
}

// GetProject retrieves a project by ID.
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	p, err := getDoc[model.Project](ctx, r.db, `SELECT data FROM projects WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query project: %w", err)
	}

	return &p, nil
}

// CreateProject creates a new project.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	data, err := encode(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (id, status, created_at, data) VALUES (?, ?, ?, ?)`,
		p.ID, p.Status, p.CreatedAt.UnixNano(), data,
	)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("project with id %s: %w", p.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert project: %w", err)
	}

	r.logger.Debugf("Created project in repository: %s", p.ID)
	return nil
}

// UpdateProject updates an existing project.
func (r *Repository) UpdateProject(ctx context.Context, p model.Project) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	data, err := encode(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `UPDATE projects SET status = ?, data = ? WHERE id = ?`, p.Status, data, p.ID)
	if err != nil {
		return fmt.Errorf("could not update project: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("project %s: %w", p.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated project in repository: %s", p.ID)
	return nil
}

// DeleteProject deletes a project with its tasks and unassigns it from its resources.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "projects", id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("project %s: %w", id, model.ErrNotFound)
		}

		assigned, err := listDocs[model.Resource](ctx, tx, `
			SELECT r.data FROM resources r
			JOIN resource_projects rp ON rp.resource_id = r.id
			WHERE rp.project_id = ?`, id)
		if err != nil {
			return err
		}
		for _, res := range assigned {
			res.AssignedProjects = slices.DeleteFunc(res.AssignedProjects, func(pid string) bool { return pid == id })
			data, err := encode(res)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `UPDATE resources SET data = ? WHERE id = ?`, data, res.ID); err != nil {
				return fmt.Errorf("could not unassign resource %s: %w", res.ID, err)
			}
		}

		// Tasks and resource assignments are removed by the foreign key cascade.
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
			return fmt.Errorf("could not delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Deleted project from repository: %s", id)
	return nil
}
