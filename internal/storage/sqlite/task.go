package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

// ListTasks returns the tasks by creation order.
func (r *Repository) ListTasks(ctx context.Context, opts storage.ListTasksOpts) ([]model.Task, error) {
	if opts.ProjectID == "" {
		return listDocs[model.Task](ctx, r.db, `SELECT data FROM tasks ORDER BY created_at, id`)
	}

	ok, err := exists(ctx, r.db, "projects", opts.ProjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("project %s: %w", opts.ProjectID, model.ErrNotFound)
	}

	return listDocs[model.Task](ctx, r.db, `SELECT data FROM tasks WHERE project_id = ? ORDER BY created_at, id`, opts.ProjectID)
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	t, err := getDoc[model.Task](ctx, r.db, `SELECT data FROM tasks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	return &t, nil
}

// CreateTask creates a new task, the project must exist.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := validateTask(ctx, tx, t); err != nil {
			return err
		}

		data, err := encode(t)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO tasks (id, project_id, created_at, data) VALUES (?, ?, ?, ?)`,
			t.ID, t.ProjectID, t.CreatedAt.UnixNano(), data,
		)
		if err != nil {
			if isUniqueErr(err) {
				return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
			}
			return fmt.Errorf("could not insert task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Created task in repository: %s", t.ID)
	return nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := validateTask(ctx, tx, t); err != nil {
			return err
		}

		data, err := encode(t)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `UPDATE tasks SET project_id = ?, data = ? WHERE id = ?`, t.ProjectID, data, t.ID)
		if err != nil {
			return fmt.Errorf("could not update task: %w", err)
		}
		ok, err := affected(res)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %s: %w", t.ID, model.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Updated task in repository: %s", t.ID)
	return nil
}

// DeleteTask deletes a task, it's removed from the dependencies of the other tasks.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("could not delete task: %w", err)
		}
		ok, err := affected(res)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
		}

		tasks, err := listDocs[model.Task](ctx, tx, `SELECT data FROM tasks`)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if !slices.Contains(t.Dependencies, id) {
				continue
			}
			t.Dependencies = slices.DeleteFunc(t.Dependencies, func(dep string) bool { return dep == id })
			data, err := encode(t)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `UPDATE tasks SET data = ? WHERE id = ?`, data, t.ID); err != nil {
				return fmt.Errorf("could not remove dependency from task %s: %w", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Deleted task from repository: %s", id)
	return nil
}

func validateTask(ctx context.Context, q querier, t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	ok, err := exists(ctx, q, "projects", t.ProjectID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("task project %s doesn't exist: %w", t.ProjectID, model.ErrNotValid)
	}

	for _, dep := range t.Dependencies {
		ok, err := exists(ctx, q, "tasks", dep)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task dependency %s doesn't exist: %w", dep, model.ErrNotValid)
		}
	}
	return nil
}
