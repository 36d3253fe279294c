package resource

import (
	"context"
	"fmt"

	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
)

// ServiceConfig is the configuration for the resource service.
type ServiceConfig struct {
	Client   remote.ResourceClient
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.resource.Service"})

	return nil
}

// Service runs the resource use cases.
type Service struct {
	client   remote.ResourceClient
	store    *cache.Store
	notifier notify.Notifier
	logger   log.Logger
}

// NewService creates a new resource service.
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

// FetchRequest selects the resources to fetch.
type FetchRequest struct {
	// ProjectID limits the resources to the ones assigned to a project, all when empty.
	ProjectID string
	// AvailableOnly limits the resources to the available ones, ignored with ProjectID.
	AvailableOnly bool
}

// Fetch loads the resources replacing the cached ones.
func (s *Service) Fetch(ctx context.Context, req FetchRequest) ([]model.Resource, error) {
	s.store.Resources.FetchStarted()

	var (
		resources []model.Resource
		err       error
	)
	switch {
	case req.ProjectID != "":
		resources, err = s.client.ListByProject(ctx, req.ProjectID)
	case req.AvailableOnly:
		resources, err = s.client.ListAvailable(ctx)
	default:
		resources, err = s.client.List(ctx)
	}
	if ctx.Err() != nil {
		s.logger.Debugf("discarding resources fetch result, context is done")
		s.store.Resources.FetchAbandoned()
		return nil, ctx.Err()
	}
	if err != nil {
		msg := remote.Message(err)
		if msg == "" {
			msg = "Failed to fetch resources"
		}
		s.store.Resources.FetchFailed(msg)
		return nil, fmt.Errorf("could not fetch resources: %w", err)
	}

	s.store.Resources.FetchSucceeded(resources)
	s.logger.Debugf("fetched %d resources", len(resources))

	return s.store.Resources.Items(), nil
}

// Create creates a resource and adds it to the cache.
func (s *Service) Create(ctx context.Context, c model.ResourceCreate) (*model.Resource, error) {
	r, err := s.client.Create(ctx, c)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.mutationFailed("create", err)
		return nil, fmt.Errorf("could not create resource: %w", err)
	}

	s.store.Resources.CreateSucceeded(*r)
	s.notifier.Show("Resource created successfully", notify.SeveritySuccess)
	s.logger.Infof("resource %s created", r.ID)

	return r, nil
}

// Update applies a partial update, validating the merged resource when it's cached.
func (s *Service) Update(ctx context.Context, u model.ResourceUpdate) (*model.Resource, error) {
	if err := s.validateUpdate(u); err != nil {
		s.mutationFailed("update", err)
		return nil, fmt.Errorf("could not update resource: %w", err)
	}

	r, err := s.client.Update(ctx, u.ID, u)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		s.mutationFailed("update", err)
		return nil, fmt.Errorf("could not update resource: %w", err)
	}

	s.store.Resources.UpdateSucceeded(*r)
	s.notifier.Show("Resource updated successfully", notify.SeveritySuccess)
	s.logger.Infof("resource %s updated", r.ID)

	return r, nil
}

// Delete deletes a resource.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.client.Delete(ctx, id)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.mutationFailed("delete", err)
		return fmt.Errorf("could not delete resource %s: %w", id, err)
	}

	s.store.Resources.DeleteSucceeded(id)
	s.notifier.Show("Resource deleted successfully", notify.SeveritySuccess)
	s.logger.Infof("resource %s deleted", id)

	return nil
}

func (s *Service) validateUpdate(u model.ResourceUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	cached, ok := s.store.Resources.Get(u.ID)
	if !ok {
		return nil
	}
	if err := u.Apply(cached).Validate(); err != nil {
		return fmt.Errorf("updated resource would be invalid: %w", err)
	}

	return nil
}

func (s *Service) mutationFailed(op string, err error) {
	msg := fmt.Sprintf("Failed to %s resource: %s", op, remote.Message(err))
	s.store.Resources.MutationFailed(msg)
	s.notifier.Show(msg, notify.SeverityError)
	s.logger.Warningf("%s", msg)
}
