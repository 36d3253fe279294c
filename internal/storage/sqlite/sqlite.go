package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/storage"
	"github.com/slok/cpm/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	// Seed is loaded only when the database has no projects.
	Seed   storage.Seed
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return errors.New("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
// Entities are stored as JSON documents, the columns next to them are the ones used to filter, sort and relate.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

var _ storage.Repository = &Repository{}

// NewRepository opens (or creates) the database, migrates it and loads the seed if empty.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// Single writer, avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if _, err := migrator.Up(); err != nil {
		db.Close()
		return nil, err
	}

	r := &Repository{db: db, logger: cfg.Logger}
	if err := r.seed(ctx, cfg.Seed); err != nil {
		db.Close()
		return nil, err
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return r, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) seed(ctx context.Context, seed storage.Seed) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return fmt.Errorf("could not count projects: %w", err)
	}
	if count > 0 {
		r.logger.Debugf("Database already has %d projects, seed ignored", count)
		return nil
	}

	for _, p := range seed.Projects {
		if err := r.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("could not seed project: %w", err)
		}
	}
	for _, t := range seed.Tasks {
		if err := r.CreateTask(ctx, t); err != nil {
			return fmt.Errorf("could not seed task: %w", err)
		}
	}
	for _, res := range seed.Resources {
		if err := r.CreateResource(ctx, res); err != nil {
			return fmt.Errorf("could not seed resource: %w", err)
		}
	}

	r.logger.Debugf("Database seeded with %d projects, %d tasks and %d resources", len(seed.Projects), len(seed.Tasks), len(seed.Resources))
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repository) withTx(ctx context.Context, f func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := f(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			r.logger.Errorf("could not rollback transaction: %s", rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// getDoc returns sql.ErrNoRows when the query has no result.
func getDoc[T any](ctx context.Context, q querier, query string, args ...any) (T, error) {
	var (
		v    T
		data string
	)
	if err := q.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return v, fmt.Errorf("could not decode document: %w", err)
	}
	return v, nil
}

func listDocs[T any](ctx context.Context, q querier, query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query documents: %w", err)
	}
	defer rows.Close()

	docs := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("could not scan document: %w", err)
		}
		var v T
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return nil, fmt.Errorf("could not decode document: %w", err)
		}
		docs = append(docs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate documents: %w", err)
	}

	return docs, nil
}

func exists(ctx context.Context, q querier, table, id string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("could not check %s existence: %w", table, err)
	}
	return n > 0, nil
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("could not encode document: %w", err)
	}
	return string(data), nil
}

func isUniqueErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get affected rows: %w", err)
	}
	return n > 0, nil
}
