package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/slok/cpm/internal/apiserver"
	"github.com/slok/cpm/internal/conventions"
	"github.com/slok/cpm/internal/storage"
	storageio "github.com/slok/cpm/internal/storage/io"
	"github.com/slok/cpm/internal/storage/memory"
	"github.com/slok/cpm/internal/storage/sqlite"
)

// ServeCommand runs the development API backend.
type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddr      string
	basePath        string
	seedPath        string
	dbPath          string
	persist         bool
	noSeed          bool
	shutdownTimeout time.Duration
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("serve", "Run the development API backend.")
	c.Cmd.Flag("listen", "HTTP listen address.").Default(":3001").StringVar(&c.listenAddr)
	c.Cmd.Flag("base-path", "Path prefix of the API routes.").Default(apiserver.DefaultBasePath).StringVar(&c.basePath)
	c.Cmd.Flag("seed", "YAML seed file, the built-in Stavanger projects are used when missing.").StringVar(&c.seedPath)
	c.Cmd.Flag("db", "SQLite database file, storage is in-memory when missing. The seed is only loaded on an empty database.").StringVar(&c.dbPath)
	c.Cmd.Flag("persist", "Use the SQLite database of the data directory when --db is missing.").BoolVar(&c.persist)
	c.Cmd.Flag("no-seed", "Start with empty storage.").BoolVar(&c.noSeed)
	c.Cmd.Flag("shutdown-timeout", "Max time to wait for in-flight requests on shutdown.").Default("5s").DurationVar(&c.shutdownTimeout)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	seed, err := c.loadSeed(ctx)
	if err != nil {
		return err
	}

	repo, closeRepo, err := c.newRepository(ctx, seed)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer closeRepo()

	handler, err := apiserver.NewHandler(apiserver.HandlerConfig{
		Repository: repo,
		BasePath:   c.basePath,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create API handler: %w", err)
	}

	server := &http.Server{
		Addr:              c.listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group

	// HTTP server.
	{
		g.Add(
			func() error {
				logger.Infof("API listening on %s%s", c.listenAddr, c.basePath)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			},
			func(_ error) {
				ctx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(ctx); err != nil {
					logger.Errorf("could not shutdown http server: %s", err)
				}
			},
		)
	}

	// Context cancellation (from parent signal handling).
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				<-ctx.Done()
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

func (c ServeCommand) newRepository(ctx context.Context, seed storage.Seed) (storage.Repository, func(), error) {
	logger := c.rootCmd.Logger

	dbPath := c.dbPath
	if dbPath == "" && c.persist {
		dbPath = conventions.DatabasePath(c.rootCmd.DataDir)
	}

	if dbPath == "" {
		memRepo, err := memory.NewRepository(memory.RepositoryConfig{
			Seed:   seed,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("Using in-memory storage (%d projects, %d tasks, %d resources)", len(seed.Projects), len(seed.Tasks), len(seed.Resources))
		return memRepo, func() {}, nil
	}

	sqliteRepo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: dbPath,
		Seed:   seed,
		Logger: logger,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("Using SQLite storage at %s", dbPath)

	return sqliteRepo, func() {
		if err := sqliteRepo.Close(); err != nil {
			logger.Errorf("could not close database: %s", err)
		}
	}, nil
}

func (c ServeCommand) loadSeed(ctx context.Context) (storage.Seed, error) {
	switch {
	case c.noSeed:
		return storage.Seed{}, nil
	case c.seedPath != "":
		repo := storageio.NewSeedYAMLRepository(os.DirFS(filepath.Dir(c.seedPath)))
		seed, err := repo.GetSeed(ctx, filepath.Base(c.seedPath))
		if err != nil {
			return storage.Seed{}, fmt.Errorf("could not load seed %s: %w", c.seedPath, err)
		}
		return seed, nil
	default:
		seed, err := storageio.DefaultSeed(ctx)
		if err != nil {
			return storage.Seed{}, fmt.Errorf("could not load default seed: %w", err)
		}
		return seed, nil
	}
}
