package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slok/cpm/internal/app/resource"
	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/remote"
	"github.com/slok/cpm/internal/view"
)

// ProjectFetcher loads the projects into the cache.
type ProjectFetcher interface {
	Fetch(ctx context.Context) ([]model.Project, error)
}

// TaskFetcher loads the tasks of a project into the cache.
type TaskFetcher interface {
	Fetch(ctx context.Context, projectID string) ([]model.Task, error)
}

// ResourceFetcher loads resources into the cache.
type ResourceFetcher interface {
	Fetch(ctx context.Context, req resource.FetchRequest) ([]model.Resource, error)
}

// ServiceConfig is the configuration for the report service.
type ServiceConfig struct {
	Projects  ProjectFetcher
	Tasks     TaskFetcher
	Resources ResourceFetcher
	Store     *cache.Store
	// Now is used to know the overdue tasks, defaults to time.Now.
	Now    func() time.Time
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Projects == nil {
		return fmt.Errorf("project fetcher is required")
	}

	if c.Tasks == nil {
		return fmt.Errorf("task fetcher is required")
	}

	if c.Resources == nil {
		return fmt.Errorf("resource fetcher is required")
	}

	if c.Store == nil {
		return fmt.Errorf("store is required")
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.report.Service"})

	return nil
}

// Service builds the dashboard reports from the cache, loading what's missing.
type Service struct {
	projects  ProjectFetcher
	tasks     TaskFetcher
	resources ResourceFetcher
	store     *cache.Store
	now       func() time.Time
	logger    log.Logger
}

// NewService creates a new report service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		projects:  cfg.Projects,
		tasks:     cfg.Tasks,
		resources: cfg.Resources,
		store:     cfg.Store,
		now:       cfg.Now,
		logger:    cfg.Logger,
	}, nil
}

// Request is the dashboard request.
type Request struct {
	Filter view.ProjectFilter
	Sort   view.ProjectSortKey
	// ProjectID adds the detail of one project to the dashboard.
	ProjectID string
	// Refresh reloads the projects even if they are already cached.
	Refresh bool
}

// Dashboard is the overview of the projects.
type Dashboard struct {
	Projects     []model.Project   `json:"projects"`
	ProjectStats view.ProjectStats `json:"projectStats"`
	Project      *ProjectDetail    `json:"project,omitempty"`
}

// ProjectDetail is the detail of a single project. Tasks and resources failures
// don't fail the whole detail, they are reported on their own.
type ProjectDetail struct {
	Project        model.Project      `json:"project"`
	Tasks          []model.Task       `json:"tasks"`
	TaskStats      view.TaskStats     `json:"taskStats"`
	TasksError     string             `json:"tasksError,omitempty"`
	Resources      []model.Resource   `json:"resources"`
	ResourceStats  view.ResourceStats `json:"resourceStats"`
	ResourcesError string             `json:"resourcesError,omitempty"`
}

// Run builds the dashboard.
func (s *Service) Run(ctx context.Context, req Request) (*Dashboard, error) {
	// Only a completed load is reused, failed or abandoned ones are retried.
	if req.Refresh || s.store.Projects.State().Status != cache.StatusLoaded {
		if _, err := s.projects.Fetch(ctx); err != nil {
			return nil, fmt.Errorf("could not load projects: %w", err)
		}
	}

	projects := s.store.Projects.Items()
	d := &Dashboard{
		Projects:     view.DeriveProjects(projects, req.Filter, req.Sort),
		ProjectStats: view.ComputeProjectStats(projects),
	}

	if req.ProjectID == "" {
		return d, nil
	}

	detail, err := s.projectDetail(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	d.Project = detail

	return d, nil
}

func (s *Service) projectDetail(ctx context.Context, id string) (*ProjectDetail, error) {
	p, ok := s.store.Projects.Get(id)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}
	s.store.Projects.Select(id)

	detail := &ProjectDetail{Project: p}

	// Tasks and resources are independent, load them at the same time.
	var g errgroup.Group
	g.Go(func() error {
		if _, err := s.tasks.Fetch(ctx, id); err != nil {
			detail.TasksError = remote.Message(err)
			s.logger.Warningf("could not load tasks of project %s: %s", id, err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := s.resources.Fetch(ctx, resource.FetchRequest{ProjectID: id}); err != nil {
			detail.ResourcesError = remote.Message(err)
			s.logger.Warningf("could not load resources of project %s: %s", id, err)
		}
		return nil
	})
	_ = g.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	detail.Tasks = []model.Task{}
	if detail.TasksError == "" {
		detail.Tasks = view.DeriveTasks(s.store.Tasks.Items(), view.TaskFilter{ProjectID: id}, view.TaskSortDueDate)
	}
	detail.TaskStats = view.ComputeTaskStats(detail.Tasks, s.now())

	detail.Resources = []model.Resource{}
	if detail.ResourcesError == "" {
		detail.Resources = s.store.Resources.Items()
	}
	detail.ResourceStats = view.ComputeResourceStats(detail.Resources)

	return detail, nil
}
