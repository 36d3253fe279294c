package project

import (
	"context"
	"fmt"

	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
)

// ServiceConfig is the configuration for the project service.
type ServiceConfig struct {
	Client   remote.ProjectClient
	Store    *cache.Store
	Notifier notify.Notifier
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}

	if c.Store == nil {
		return fmt.Errorf("store is required")
	}

	if c.Notifier == nil {
		return fmt.Errorf("notifier is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.project.Service"})

	return nil
}

// Service runs the project use cases. Every operation calls the backend and applies
// the result to the cache, the user is notified of mutation results.
type Service struct {
	client   remote.ProjectClient
	store    *cache.Store
	notifier notify.Notifier
	logger   log.Logger
}

// NewService creates a new project service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client:   cfg.Client,
		store:    cfg.Store,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}, nil
}

// Fetch loads all the projects replacing the cached ones. A failure is recorded as
// the blocking error of the collection.
func (s *Service) Fetch(ctx context.Context) ([]model.Project, error) {
	s.store.Projects.FetchStarted()

	projects, err := s.client.List(ctx)
	if ctx.Err() != nil {
		s.logger.Debugf("discarding projects fetch result, context is done")
		s.store.Projects.FetchAbandoned()
		return nil, ctx.Err()
	}
	if err != nil {
		msg := remote.Message(err)
		if msg == "" {
			msg = "Failed to fetch projects"
		}
		s.store.Projects.FetchFailed(msg)
		return nil, fmt.Errorf("could not fetch projects: %w", err)
	}

	s.store.Projects.FetchSucceeded(projects)
	s.logger.Debugf("fetched %d projects", len(projects))

	return s.store.Projects.Items(), nil
}

// Select loads one project, caches it and makes it the selected project.
func (s *Service) Select(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.client.Get(ctx, id)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.notifier.Show(fmt.Sprintf("Failed to load project: %s", remote.Message(err)), notify.SeverityError)
		return nil, fmt.Errorf("could not get project %s: %w", id, err)
	}

	s.store.Projects.CreateSucceeded(*p)
	s.store.Projects.Select(p.ID)

	return p, nil
}

// Create creates a project on the backend and adds it to the cache.
func (s *Service) Create(ctx context.Context, c model.ProjectCreate) (*model.Project, error) {
	p, err := s.client.Create(ctx, c)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.mutationFailed("create", err)
		return nil, fmt.Errorf("could not create project: %w", err)
	}

	s.store.Projects.CreateSucceeded(*p)
	s.notifier.Show("Project created successfully", notify.SeveritySuccess)
	s.logger.Infof("project %s created", p.ID)

	return p, nil
}

// Update applies a partial update. When the project is cached the merged result is
// validated before calling the backend.
func (s *Service) Update(ctx context.Context, u model.ProjectUpdate) (*model.Project, error) {
	if err := s.validateUpdate(u); err != nil {
		s.mutationFailed("update", err)
		return nil, fmt.Errorf("could not update project: %w", err)
	}

	p, err := s.client.Update(ctx, u.ID, u)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.mutationFailed("update", err)
		return nil, fmt.Errorf("could not update project: %w", err)
	}

	s.store.Projects.UpdateSucceeded(*p)
	s.notifier.Show("Project updated successfully", notify.SeveritySuccess)
	s.logger.Infof("project %s updated", p.ID)

	return p, nil
}

// Delete deletes a project, the cached tasks of the project are removed too.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.client.Delete(ctx, id)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.mutationFailed("delete", err)
		return fmt.Errorf("could not delete project %s: %w", id, err)
	}

	s.store.Projects.DeleteSucceeded(id)
	s.store.Tasks.RemoveWhere(func(t model.Task) bool { return t.ProjectID == id })
	s.notifier.Show("Project deleted successfully", notify.SeveritySuccess)
	s.logger.Infof("project %s deleted", id)

	return nil
}

func (s *Service) validateUpdate(u model.ProjectUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	cached, ok := s.store.Projects.Get(u.ID)
	if !ok {
		return nil
	}
	if err := u.Apply(cached).Validate(); err != nil {
		return fmt.Errorf("updated project would be invalid: %w", err)
	}

	return nil
}

func (s *Service) mutationFailed(op string, err error) {
	msg := fmt.Sprintf("Failed to %s project: %s", op, remote.Message(err))
	s.store.Projects.MutationFailed(msg)
	s.notifier.Show(msg, notify.SeverityError)
	s.logger.Warningf("%s", msg)
}
