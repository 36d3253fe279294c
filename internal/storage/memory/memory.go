package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	// Seed is loaded on creation.
	Seed   storage.Seed
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	projects  map[string]model.Project
	tasks     map[string]model.Task
	resources map[string]model.Resource
	mu        sync.RWMutex
	logger    log.Logger
}

var _ storage.Repository = &Repository{}

// NewRepository creates a new memory repository loaded with the seed.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Repository{
		projects:  make(map[string]model.Project),
		tasks:     make(map[string]model.Task),
		resources: make(map[string]model.Resource),
		logger:    cfg.Logger,
	}

	ctx := context.Background()
	for _, p := range cfg.Seed.Projects {
		if err := r.CreateProject(ctx, p); err != nil {
			return nil, fmt.Errorf("could not seed project: %w", err)
		}
	}
	for _, t := range cfg.Seed.Tasks {
		if err := r.CreateTask(ctx, t); err != nil {
			return nil, fmt.Errorf("could not seed task: %w", err)
		}
	}
	for _, res := range cfg.Seed.Resources {
		if err := r.CreateResource(ctx, res); err != nil {
			return nil, fmt.Errorf("could not seed resource: %w", err)
		}
	}

	r.logger.Debugf("Repository seeded with %d projects, %d tasks and %d resources", len(r.projects), len(r.tasks), len(r.resources))

	return r, nil
}

// ListProjects returns all projects by creation order.
func (r *Repository) ListProjects(ctx context.Context) ([]model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := slices.Collect(maps.Values(r.projects))
	slices.SortFunc(projects, func(a, b model.Project) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	return projects, nil
}

// GetProject retrieves a project by ID.
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}

	return &p, nil
}

// CreateProject creates a new project.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	if _, ok := r.projects[p.ID]; ok {
		return fmt.Errorf("project with id %s: %w", p.ID, model.ErrAlreadyExists)
	}

	r.projects[p.ID] = p
	r.logger.Debugf("Created project in repository: %s", p.ID)

	return nil
}

// UpdateProject updates an existing project.
func (r *Repository) UpdateProject(ctx context.Context, p model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	if _, ok := r.projects[p.ID]; !ok {
		return fmt.Errorf("project %s: %w", p.ID, model.ErrNotFound)
	}

	r.projects[p.ID] = p
	r.logger.Debugf("Updated project in repository: %s", p.ID)

	return nil
}

// DeleteProject deletes a project with its tasks.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}

	delete(r.projects, id)
	maps.DeleteFunc(r.tasks, func(_ string, t model.Task) bool { return t.ProjectID == id })
	for rid, res := range r.resources {
		if slices.Contains(res.AssignedProjects, id) {
			res.AssignedProjects = slices.DeleteFunc(slices.Clone(res.AssignedProjects), func(pid string) bool { return pid == id })
			r.resources[rid] = res
		}
	}
	r.logger.Debugf("Deleted project from repository: %s", id)

	return nil
}

// ListTasks returns the tasks by creation order.
func (r *Repository) ListTasks(ctx context.Context, opts storage.ListTasksOpts) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if opts.ProjectID != "" {
		if _, ok := r.projects[opts.ProjectID]; !ok {
			return nil, fmt.Errorf("project %s: %w", opts.ProjectID, model.ErrNotFound)
		}
	}

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if opts.ProjectID == "" || t.ProjectID == opts.ProjectID {
			tasks = append(tasks, copyTask(t))
		}
	}
	slices.SortFunc(tasks, func(a, b model.Task) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	return tasks, nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	t = copyTask(t)
	return &t, nil
}

// CreateTask creates a new task, the project must exist.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validateTask(t); err != nil {
		return err
	}

	if _, ok := r.tasks[t.ID]; ok {
		return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
	}

	r.tasks[t.ID] = copyTask(t)
	r.logger.Debugf("Created task in repository: %s", t.ID)

	return nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validateTask(t); err != nil {
		return err
	}

	if _, ok := r.tasks[t.ID]; !ok {
		return fmt.Errorf("task %s: %w", t.ID, model.ErrNotFound)
	}

	r.tasks[t.ID] = copyTask(t)
	r.logger.Debugf("Updated task in repository: %s", t.ID)

	return nil
}

// DeleteTask deletes a task, it's removed from the dependencies of the other tasks.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	delete(r.tasks, id)
	for tid, t := range r.tasks {
		if slices.Contains(t.Dependencies, id) {
			t.Dependencies = slices.DeleteFunc(slices.Clone(t.Dependencies), func(dep string) bool { return dep == id })
			r.tasks[tid] = t
		}
	}
	r.logger.Debugf("Deleted task from repository: %s", id)

	return nil
}

func (r *Repository) validateTask(t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if _, ok := r.projects[t.ProjectID]; !ok {
		return fmt.Errorf("task project %s doesn't exist: %w", t.ProjectID, model.ErrNotValid)
	}
	for _, dep := range t.Dependencies {
		if _, ok := r.tasks[dep]; !ok {
			return fmt.Errorf("task dependency %s doesn't exist: %w", dep, model.ErrNotValid)
		}
	}
	return nil
}

// ListResources returns the resources by creation order.
func (r *Repository) ListResources(ctx context.Context, opts storage.ListResourcesOpts) ([]model.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if opts.ProjectID != "" {
		if _, ok := r.projects[opts.ProjectID]; !ok {
			return nil, fmt.Errorf("project %s: %w", opts.ProjectID, model.ErrNotFound)
		}
	}

	resources := make([]model.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		if opts.ProjectID != "" && !slices.Contains(res.AssignedProjects, opts.ProjectID) {
			continue
		}
		if opts.Availability != "" && res.Availability != opts.Availability {
			continue
		}
		resources = append(resources, copyResource(res))
	}
	slices.SortFunc(resources, func(a, b model.Resource) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	return resources, nil
}

// GetResource retrieves a resource by ID.
func (r *Repository) GetResource(ctx context.Context, id string) (*model.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", id, model.ErrNotFound)
	}

	res = copyResource(res)
	return &res, nil
}

// CreateResource creates a new resource.
func (r *Repository) CreateResource(ctx context.Context, res model.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validateResource(res); err != nil {
		return err
	}

	if _, ok := r.resources[res.ID]; ok {
		return fmt.Errorf("resource with id %s: %w", res.ID, model.ErrAlreadyExists)
	}

	r.resources[res.ID] = copyResource(res)
	r.logger.Debugf("Created resource in repository: %s", res.ID)

	return nil
}

// UpdateResource updates an existing resource.
func (r *Repository) UpdateResource(ctx context.Context, res model.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validateResource(res); err != nil {
		return err
	}

	if _, ok := r.resources[res.ID]; !ok {
		return fmt.Errorf("resource %s: %w", res.ID, model.ErrNotFound)
	}

	r.resources[res.ID] = copyResource(res)
	r.logger.Debugf("Updated resource in repository: %s", res.ID)

	return nil
}

// DeleteResource deletes a resource.
func (r *Repository) DeleteResource(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[id]; !ok {
		return fmt.Errorf("resource %s: %w", id, model.ErrNotFound)
	}

	delete(r.resources, id)
	r.logger.Debugf("Deleted resource from repository: %s", id)

	return nil
}

func (r *Repository) validateResource(res model.Resource) error {
	if err := res.Validate(); err != nil {
		return fmt.Errorf("invalid resource: %w", err)
	}
	for _, pid := range res.AssignedProjects {
		if _, ok := r.projects[pid]; !ok {
			return fmt.Errorf("assigned project %s doesn't exist: %w", pid, model.ErrNotValid)
		}
	}
	return nil
}

// copyTask returns a copy not sharing slices with the original.
func copyTask(t model.Task) model.Task {
	t.AssignedTo = slices.Clone(t.AssignedTo)
	t.Dependencies = slices.Clone(t.Dependencies)
	if t.CompletedDate != nil {
		d := *t.CompletedDate
		t.CompletedDate = &d
	}
	return t
}

func copyResource(r model.Resource) model.Resource {
	r.AssignedProjects = slices.Clone(r.AssignedProjects)
	r.Specifications = maps.Clone(r.Specifications)
	return r
}
