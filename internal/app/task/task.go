package task

import (
	"context"
	"fmt"

	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
)

// ServiceConfig is the configuration for the task service.
type ServiceConfig struct {
	Client   remote.TaskClient
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.task.Service"})

	return nil
}

// Service runs the task use cases.
type Service struct {
	client   remote.TaskClient
	store    *cache.Store
	notifier notify.Notifier
	logger   log.Logger
}

// NewService creates a new task service.
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

// Fetch loads the tasks of a project, the cached tasks are replaced by them.
func (s *Service) Fetch(ctx context.Context, projectID string) ([]model.Task, error) {
	s.store.Tasks.FetchStarted()

	tasks, err := s.client.ListByProject(ctx, projectID)
	if ctx.Err() != nil {
		s.logger.Debugf("discarding tasks fetch result, context is done")
		s.store.Tasks.FetchAbandoned()
		return nil, ctx.Err()
	}
	if err != nil {
		msg := remote.Message(err)
		if msg == "" {
			msg = "Failed to fetch tasks"
		}
		s.store.Tasks.FetchFailed(msg)
		return nil, fmt.Errorf("could not fetch tasks of project %s: %w", projectID, err)
	}

	s.store.Tasks.FetchSucceeded(tasks)
	s.logger.Debugf("fetched %d tasks of project %s", len(tasks), projectID)

	return s.store.Tasks.Items(), nil
}

// Create creates a task and adds it to the cache.
func (s *Service) Create(ctx context.Context, c model.TaskCreate) (*model.Task, error) {
	t, err := s.client.Create(ctx, c)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.mutationFailed("create", err)
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	s.store.Tasks.CreateSucceeded(*t)
	s.notifier.Show("Task created successfully", notify.SeveritySuccess)
	s.logger.Infof("task %s created on project %s", t.ID, t.ProjectID)

	return t, nil
}

// Update applies a partial update, validating the merged task when it's cached.
func (s *Service) Update(ctx context.Context, u model.TaskUpdate) (*model.Task, error) {
	if err := s.validateUpdate(u); err != nil {
		s.mutationFailed("update", err)
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	t, err := s.client.Update(ctx, u.ID, u)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.mutationFailed("update", err)
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	s.store.Tasks.UpdateSucceeded(*t)
	s.notifier.Show("Task updated successfully", notify.SeveritySuccess)
	s.logger.Infof("task %s updated", t.ID)

	return t, nil
}

// Delete deletes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.client.Delete(ctx, id)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.mutationFailed("delete", err)
		return fmt.Errorf("could not delete task %s: %w", id, err)
	}

	s.store.Tasks.DeleteSucceeded(id)
	s.notifier.Show("Task deleted successfully", notify.SeveritySuccess)
	s.logger.Infof("task %s deleted", id)

	return nil
}

func (s *Service) validateUpdate(u model.TaskUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	cached, ok := s.store.Tasks.Get(u.ID)
	if !ok {
		return nil
	}
	if err := u.Apply(cached).Validate(); err != nil {
		return fmt.Errorf("updated task would be invalid: %w", err)
	}

	return nil
}

func (s *Service) mutationFailed(op string, err error) {
	msg := fmt.Sprintf("Failed to %s task: %s", op, remote.Message(err))
	s.store.Tasks.MutationFailed(msg)
	s.notifier.Show(msg, notify.SeverityError)
	s.logger.Warningf("%s", msg)
}
