package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

// ListResources returns the resources by creation order.
func (r *Repository) ListResources(ctx context.Context, opts storage.ListResourcesOpts) ([]model.Resource, error) {
	var (
		where []string
		args  []any
	)

	if opts.ProjectID != "" {
		ok, err := exists(ctx, r.db, "projects", opts.ProjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("project %s: %w", opts.ProjectID, model.ErrNotFound)
		}
		where = append(where, `id IN (SELECT resource_id FROM resource_projects WHERE project_id = ?)`)
		args = append(args, opts.ProjectID)
	}
	if opts.Availability != "" {
		where = append(where, `availability = ?`)
		args = append(args, opts.Availability)
	}

	query := `SELECT data FROM resources`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at, id`

	return listDocs[model.Resource](ctx, r.db, query, args...)
}

// GetResource retrieves a resource by ID.
func (r *Repository) GetResource(ctx context.Context, id string) (*model.Resource, error) {
	res, err := getDoc[model.Resource](ctx, r.db, `SELECT data FROM resources WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("resource %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query resource: %w", err)
	}

	return &res, nil
}

// CreateResource creates a new resource.
func (r *Repository) CreateResource(ctx context.Context, res model.Resource) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := validateResource(ctx, tx, res); err != nil {
			return err
		}

		data, err := encode(res)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO resources (id, availability, created_at, data) VALUES (?, ?, ?, ?)`,
			res.ID, res.Availability, res.CreatedAt.UnixNano(), data,
		)
		if err != nil {
			if isUniqueErr(err) {
				return fmt.Errorf("resource with id %s: %w", res.ID, model.ErrAlreadyExists)
			}
			return fmt.Errorf("could not insert resource: %w", err)
		}

		return assignProjects(ctx, tx, res)
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Created resource in repository: %s", res.ID)
	return nil
}

// UpdateResource updates an existing resource.
func (r *Repository) UpdateResource(ctx context.Context, res model.Resource) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := validateResource(ctx, tx, res); err != nil {
			return err
		}

		data, err := encode(res)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `UPDATE resources SET availability = ?, data = ? WHERE id = ?`, res.Availability, data, res.ID)
		if err != nil {
			return fmt.Errorf("could not update resource: %w", err)
		}
		ok, err := affected(result)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("resource %s: %w", res.ID, model.ErrNotFound)
		}

		return assignProjects(ctx, tx, res)
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Updated resource in repository: %s", res.ID)
	return nil
}

// DeleteResource deletes a resource.
func (r *Repository) DeleteResource(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete resource: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("resource %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted resource from repository: %s", id)
	return nil
}

// assignProjects replaces the project assignments of the resource.
func assignProjects(ctx context.Context, tx *sql.Tx, res model.Resource) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM resource_projects WHERE resource_id = ?`, res.ID); err != nil {
		return fmt.Errorf("could not clear resource assignments: %w", err)
	}
	for _, pid := range res.AssignedProjects {
		_, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO resource_projects (resource_id, project_id) VALUES (?, ?)`, res.ID, pid)
		if err != nil {
			return fmt.Errorf("could not assign resource to project %s: %w", pid, err)
		}
	}
	return nil
}

func validateResource(ctx context.Context, q querier, res model.Resource) error {
	if err := res.Validate(); err != nil {
		return fmt.Errorf("invalid resource: %w", err)
	}
	for _, pid := range res.AssignedProjects {
		ok, err := exists(ctx, q, "projects", pid)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("assigned project %s doesn't exist: %w", pid, model.ErrNotValid)
		}
	}
	return nil
}
