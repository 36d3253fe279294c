package lib

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slok/cpm/internal/app"
	"github.com/slok/cpm/internal/app/project"
	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/app/resource"
	"github.com/slok/cpm/internal/app/task"
	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
	"github.com/slok/cpm/internal/view"
)

// DefaultAPIURL is the API used when [Config].APIURL is empty.
const DefaultAPIURL = remote.DefaultBaseURL

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. An empty Config{} talks to
// the API at [DefaultAPIURL].
type Config struct {
	// APIURL is the API base URL.
	// Default: http://localhost:3001/api.
	APIURL string

	// HTTPClient is used for the API requests. When set, Timeout is ignored.
	HTTPClient *http.Client

	// Timeout of each API request attempt.
	// Default: 10s.
	Timeout time.Duration

	// Retries is the number of extra attempts on reads that failed at network level.
	// Default: 2.
	Retries int

	// DisableRetries disables the retries of failed reads.
	DisableRetries bool

	// NotificationDuration is the time a notification stays visible.
	// Default: 6s.
	NotificationDuration time.Duration

	// OnNotification is called with the notification state after every change,
	// including the auto dismiss.
	OnNotification func(Notification)

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.NotificationDuration < 0 {
		return fmt.Errorf("notification duration can't be negative: %w", ErrNotValid)
	}

	return nil
}

// Client is the main SDK entry point.
//
// Create a Client with [New]. A Client is safe for concurrent use.
type Client struct {
	store     *cache.Store
	relay     *notify.Relay
	projects  *project.Service
	tasks     *task.Service
	resources *resource.Service
	report    *report.Service
	now       func() time.Time
}

// New creates a new SDK client with an empty cache and no visible notification.
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a, err := app.New(app.Config{
		Remote: remote.ClientConfig{
			BaseURL:        cfg.APIURL,
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			Retries:        cfg.Retries,
			DisableRetries: cfg.DisableRetries,
		},
		NotificationDuration: cfg.NotificationDuration,
		OnNotification:       cfg.OnNotification,
		Logger:               cfg.Logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &Client{
		store:     a.Store,
		relay:     a.Relay,
		projects:  a.Projects,
		tasks:     a.Tasks,
		resources: a.Resources,
		report:    a.Report,
		now:       time.Now,
	}, nil
}

// Notification returns the current notification.
func (c *Client) Notification() Notification { return c.relay.State() }

// DismissNotification hides the current notification.
func (c *Client) DismissNotification() { c.relay.Dismiss() }

// Notify shows an application notification, replacing the current one.
func (c *Client) Notify(message string, severity Severity) { c.relay.Show(message, severity) }

// DashboardRequest configures the dashboard.
type DashboardRequest struct {
	Filter ProjectFilter
	Sort   ProjectSortKey
	// ProjectID adds the detail of the project with its tasks and resources.
	ProjectID string
	// Refresh reloads the projects even if they are already cached.
	Refresh bool
}

// Dashboard returns the projects overview with statistics, and the detail of
// one project when requested.
func (c *Client) Dashboard(ctx context.Context, req DashboardRequest) (*Dashboard, error) {
	d, err := c.report.Run(ctx, report.Request{
		Filter:    req.Filter,
		Sort:      req.Sort,
		ProjectID: req.ProjectID,
		Refresh:   req.Refresh,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

// ProjectView returns the cached projects matching the filter in the sort key order.
func (c *Client) ProjectView(f ProjectFilter, sortKey ProjectSortKey) []Project {
	return view.DeriveProjects(c.store.Projects.Items(), f, sortKey)
}

// ProjectStats returns the statistics of all the cached projects.
func (c *Client) ProjectStats() ProjectStats {
	return view.ComputeProjectStats(c.store.Projects.Items())
}

// TaskView returns the cached tasks matching the filter in the sort key order.
func (c *Client) TaskView(f TaskFilter, sortKey TaskSortKey) []Task {
	return view.DeriveTasks(c.store.Tasks.Items(), f, sortKey)
}

// TaskStats returns the statistics of the cached tasks.
func (c *Client) TaskStats() TaskStats {
	return view.ComputeTaskStats(c.store.Tasks.Items(), c.now())
}

// ResourceView returns the cached resources matching the filter in the sort key order.
func (c *Client) ResourceView(f ResourceFilter, sortKey ResourceSortKey) []Resource {
	return view.DeriveResources(c.store.Resources.Items(), f, sortKey)
}

// ResourceStats returns the statistics of the cached resources.
func (c *Client) ResourceStats() ResourceStats {
	return view.ComputeResourceStats(c.store.Resources.Items())
}
