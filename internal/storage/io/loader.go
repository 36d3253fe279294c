package io

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

//go:embed seed/stavanger.yaml
var defaultSeedFS embed.FS

const defaultSeedPath = "seed/stavanger.yaml"

// DefaultSeed returns the built-in seed, construction projects around Stavanger.
func DefaultSeed(ctx context.Context) (storage.Seed, error) {
	return NewSeedYAMLRepository(defaultSeedFS).GetSeed(ctx, defaultSeedPath)
}

// SeedYAMLRepository loads repository seeds from YAML files.
type SeedYAMLRepository struct {
	fs  fs.FS
	now func() time.Time
}

// NewSeedYAMLRepository creates a new YAML seed repository.
func NewSeedYAMLRepository(filesystem fs.FS) *SeedYAMLRepository {
	return &SeedYAMLRepository{
		fs:  filesystem,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// GetSeed loads a seed from a YAML file. Entities without creation time get the load time.
func (r *SeedYAMLRepository) GetSeed(ctx context.Context, path string) (storage.Seed, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return storage.Seed{}, fmt.Errorf("reading seed file: %w", err)
	}

	if ctx.Err() != nil {
		return storage.Seed{}, ctx.Err()
	}

	var seed Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return storage.Seed{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := seed.validate(); err != nil {
		return storage.Seed{}, fmt.Errorf("invalid seed: %w", err)
	}

	return seed.toModel(r.now())
}

// Seed represents the YAML structure of a seed.
type Seed struct {
	Projects  []Project  `yaml:"projects"`
	Tasks     []Task     `yaml:"tasks"`
	Resources []Resource `yaml:"resources"`
}

// Project represents the YAML structure of a project.
type Project struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	StartDate   string    `yaml:"start_date"`
	EndDate     string    `yaml:"end_date"`
	Status      string    `yaml:"status"`
	Budget      float64   `yaml:"budget"`
	Location    string    `yaml:"location"`
	Manager     string    `yaml:"manager"`
	Progress    int       `yaml:"progress"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// Task represents the YAML structure of a task.
type Task struct {
	ID            string    `yaml:"id"`
	ProjectID     string    `yaml:"project_id"`
	Title         string    `yaml:"title"`
	Description   string    `yaml:"description"`
	Status        string    `yaml:"status"`
	Priority      string    `yaml:"priority"`
	AssignedTo    []string  `yaml:"assigned_to"`
	StartDate     string    `yaml:"start_date"`
	DueDate       string    `yaml:"due_date"`
	CompletedDate string    `yaml:"completed_date"`
	Dependencies  []string  `yaml:"dependencies"`
	Progress      int       `yaml:"progress"`
	CreatedAt     time.Time `yaml:"created_at"`
}

// Resource represents the YAML structure of a resource.
type Resource struct {
	ID               string            `yaml:"id"`
	Name             string            `yaml:"name"`
	Type             string            `yaml:"type"`
	Category         string            `yaml:"category"`
	Availability     string            `yaml:"availability"`
	Cost             float64           `yaml:"cost"`
	Unit             string            `yaml:"unit"`
	Quantity         float64           `yaml:"quantity"`
	Location         string            `yaml:"location"`
	AssignedProjects []string          `yaml:"assigned_projects"`
	Specifications   map[string]string `yaml:"specifications"`
	CreatedAt        time.Time         `yaml:"created_at"`
}

func (s Seed) validate() error {
	if err := uniqueIDs("project", s.Projects, func(p Project) string { return p.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("task", s.Tasks, func(t Task) string { return t.ID }); err != nil {
		return err
	}
	return uniqueIDs("resource", s.Resources, func(r Resource) string { return r.ID })
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := map[string]bool{}
	for i, it := range items {
		v := id(it)
		if v == "" {
			return fmt.Errorf("%s %d: id is required", kind, i)
		}
		if seen[v] {
			return fmt.Errorf("%s id %s is duplicated", kind, v)
		}
		seen[v] = true
	}
	return nil
}

func (s Seed) toModel(now time.Time) (storage.Seed, error) {
	seed := storage.Seed{
		Projects:  make([]model.Project, 0, len(s.Projects)),
		Tasks:     make([]model.Task, 0, len(s.Tasks)),
		Resources: make([]model.Resource, 0, len(s.Resources)),
	}

	for _, p := range s.Projects {
		start, err := parseDate(p.StartDate)
		if err != nil {
			return storage.Seed{}, fmt.Errorf("project %s start_date: %w", p.ID, err)
		}
		end, err := parseDate(p.EndDate)
		if err != nil {
			return storage.Seed{}, fmt.Errorf("project %s end_date: %w", p.ID, err)
		}
		createdAt := orNow(p.CreatedAt, now)

		seed.Projects = append(seed.Projects, model.Project{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			StartDate:   start,
			EndDate:     end,
			Status:      model.ProjectStatus(p.Status),
			Budget:      p.Budget,
			Location:    p.Location,
			Manager:     p.Manager,
			Progress:    p.Progress,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		})
	}

	for _, t := range s.Tasks {
		start, err := parseDate(t.StartDate)
		if err != nil {
			return storage.Seed{}, fmt.Errorf("task %s start_date: %w", t.ID, err)
		}
		due, err := parseDate(t.DueDate)
		if err != nil {
			return storage.Seed{}, fmt.Errorf("task %s due_date: %w", t.ID, err)
		}
		createdAt := orNow(t.CreatedAt, now)

		task := model.Task{
			ID:           t.ID,
			ProjectID:    t.ProjectID,
			Title:        t.Title,
			Description:  t.Description,
			Status:       model.TaskStatus(t.Status),
			Priority:     model.TaskPriority(t.Priority),
			AssignedTo:   nonNil(t.AssignedTo),
			StartDate:    start,
			DueDate:      due,
			Dependencies: nonNil(t.Dependencies),
			Progress:     t.Progress,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}
		if t.CompletedDate != "" {
			completed, err := parseDate(t.CompletedDate)
			if err != nil {
				return storage.Seed{}, fmt.Errorf("task %s completed_date: %w", t.ID, err)
			}
			task.CompletedDate = &completed
		}
		seed.Tasks = append(seed.Tasks, task)
	}

	for _, r := range s.Resources {
		createdAt := orNow(r.CreatedAt, now)
		specs := r.Specifications
		if specs == nil {
			specs = map[string]string{}
		}

		seed.Resources = append(seed.Resources, model.Resource{
			ID:               r.ID,
			Name:             r.Name,
			Type:             model.ResourceType(r.Type),
			Category:         r.Category,
			Availability:     model.Availability(r.Availability),
			Cost:             r.Cost,
			Unit:             r.Unit,
			Quantity:         r.Quantity,
			Location:         r.Location,
			AssignedProjects: nonNil(r.AssignedProjects),
			Specifications:   specs,
			CreatedAt:        createdAt,
			UpdatedAt:        createdAt,
		})
	}

	return seed, nil
}

func parseDate(s string) (model.Date, error) {
	if s == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(s)
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
