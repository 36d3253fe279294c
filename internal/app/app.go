// Package app is the client application root: one cache store and one
// notification relay shared by every use case.
package app

import (
	"fmt"
	"time"

	"github.com/slok/cpm/internal/app/project"
	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/app/resource"
	"github.com/slok/cpm/internal/app/task"
	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
)

// Config is the configuration of the application root.
type Config struct {
	// Remote configures the API client, its logger is the root one.
	Remote               remote.ClientConfig
	NotificationDuration time.Duration
	// OnNotification is called after every notification change.
	OnNotification func(notify.State)
	// Now is used for the time dependent reports, defaults to time.Now.
	Now    func() time.Time
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Remote.Logger = c.Logger

	if c.Now == nil {
		c.Now = time.Now
	}

	return nil
}

// App has the use cases wired to the same store and relay.
type App struct {
	API       *remote.Client
	Store     *cache.Store
	Relay     *notify.Relay
	Projects  *project.Service
	Tasks     *task.Service
	Resources *resource.Service
	Report    *report.Service
}

// New wires the application.
func New(cfg Config) (*App, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	api, err := remote.NewClient(cfg.Remote)
	if err != nil {
		return nil, fmt.Errorf("could not create API client: %w", err)
	}

	store, err := cache.NewStore(cache.StoreConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create store: %w", err)
	}

	relay, err := notify.NewRelay(notify.RelayConfig{
		Duration: cfg.NotificationDuration,
		OnChange: cfg.OnNotification,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create notification relay: %w", err)
	}

	projectSvc, err := project.NewService(project.ServiceConfig{
		Client:   remote.NewProjects(api),
		Store:    store,
		Notifier: relay,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create project service: %w", err)
	}

	taskSvc, err := task.NewService(task.ServiceConfig{
		Client:   remote.NewTasks(api),
		Store:    store,
		Notifier: relay,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create task service: %w", err)
	}

	resourceSvc, err := resource.NewService(resource.ServiceConfig{
		Client:   remote.NewResources(api),
		Store:    store,
		Notifier: relay,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create resource service: %w", err)
	}

	reportSvc, err := report.NewService(report.ServiceConfig{
		Projects:  projectSvc,
		Tasks:     taskSvc,
		Resources: resourceSvc,
		Store:     store,
		Now:       cfg.Now,
		Logger:    cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create report service: %w", err)
	}

	return &App{
		API:       api,
		Store:     store,
		Relay:     relay,
		Projects:  projectSvc,
		Tasks:     taskSvc,
		Resources: resourceSvc,
		Report:    reportSvc,
	}, nil
}
