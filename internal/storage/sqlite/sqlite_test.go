package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
	"github.com/slok/cpm/internal/storage/sqlite"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newProject(id string, createdAt time.Time) model.Project {
	return model.Project{ID: id, Name: "Project " + id, Status: model.ProjectStatusPlanning, Budget: 1000, CreatedAt: createdAt, UpdatedAt: createdAt}
}

func newTask(id, projectID string, deps ...string) model.Task {
	return model.Task{ID: id, ProjectID: projectID, Title: "Task " + id, Status: model.TaskStatusTodo, Priority: model.TaskPriorityLow, Dependencies: deps, DueDate: model.NewDate(2024, 3, 1), CreatedAt: t0}
}

func newResource(id string, availability model.Availability, projects ...string) model.Resource {
	return model.Resource{ID: id, Name: "Resource " + id, Type: model.ResourceTypeMaterial, Availability: availability, AssignedProjects: projects, Specifications: map[string]string{"grade": "B45"}, CreatedAt: t0}
}

var testSeed = storage.Seed{
	Projects: []model.Project{
		newProject("p2", t0.Add(time.Hour)),
		newProject("p1", t0),
	},
	Tasks: []model.Task{
		newTask("t1", "p1"),
		newTask("t2", "p1", "t1"),
		newTask("t3", "p2"),
	},
	Resources: []model.Resource{
		newResource("r1", model.AvailabilityAvailable, "p1", "p2"),
		newResource("r2", model.AvailabilityInUse, "p2"),
	},
}

func newTestRepository(t *testing.T, dbPath string) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: dbPath,
		Seed:   testSeed,
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestNewRepository(t *testing.T) {
	tests := map[string]struct {
		cfg    sqlite.RepositoryConfig
		expErr bool
	}{
		"A missing db path should fail.": {
			cfg:    sqlite.RepositoryConfig{},
			expErr: true,
		},

		"A seed with dangling references should fail.": {
			cfg: sqlite.RepositoryConfig{
				Seed: storage.Seed{Tasks: []model.Task{newTask("t1", "p1")}},
			},
			expErr: true,
		},

		"A valid config should open the database.": {
			cfg: sqlite.RepositoryConfig{Seed: testSeed},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if test.cfg.Seed.Tasks != nil || test.cfg.Seed.Projects != nil {
				test.cfg.DBPath = filepath.Join(t.TempDir(), "cpm.db")
			}

			repo, err := sqlite.NewRepository(context.Background(), test.cfg)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, repo.Close())
		})
	}
}

func TestRepositoryPersistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "cpm.db")

	repo := newTestRepository(t, dbPath)
	p := newProject("p3", t0.Add(2*time.Hour))
	require.NoError(t, repo.CreateProject(ctx, p))
	require.NoError(t, repo.Close())

	// Reopening should keep the data and ignore the seed.
	repo = newTestRepository(t, dbPath)
	ps, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "p3", ps[2].ID)
	assert.Equal(t, p, ps[2])
}

func TestRepositoryProjects(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *sqlite.Repository)
	}{
		"Projects should be listed by creation order.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				ps, err := repo.ListProjects(ctx)
				require.NoError(t, err)
				require.Len(t, ps, 2)
				assert.Equal(t, "p1", ps[0].ID)
				assert.Equal(t, "p2", ps[1].ID)
			},
		},

		"Creating a duplicated project should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.CreateProject(ctx, newProject("p1", t0))
				assert.ErrorIs(t, err, model.ErrAlreadyExists)
			},
		},

		"Creating an invalid project should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				p := newProject("p9", t0)
				p.Progress = 101
				err := repo.CreateProject(ctx, p)
				assert.ErrorIs(t, err, model.ErrNotValid)
			},
		},

		"Updating a project should replace it.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				p := newProject("p1", t0)
				p.Name = "Renamed"
				require.NoError(t, repo.UpdateProject(ctx, p))

				got, err := repo.GetProject(ctx, "p1")
				require.NoError(t, err)
				assert.Equal(t, "Renamed", got.Name)
			},
		},

		"Updating a missing project should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.UpdateProject(ctx, newProject("p9", t0))
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},

		"Deleting a project should delete its tasks and unassign its resources.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				require.NoError(t, repo.DeleteProject(ctx, "p1"))

				_, err := repo.GetProject(ctx, "p1")
				assert.ErrorIs(t, err, model.ErrNotFound)

				tasks, err := repo.ListTasks(ctx, storage.ListTasksOpts{})
				require.NoError(t, err)
				require.Len(t, tasks, 1)
				assert.Equal(t, "t3", tasks[0].ID)

				r1, err := repo.GetResource(ctx, "r1")
				require.NoError(t, err)
				assert.Equal(t, []string{"p2"}, r1.AssignedProjects)
			},
		},

		"Deleting a missing project should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.DeleteProject(ctx, "p9")
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t, filepath.Join(t.TempDir(), "cpm.db"))
			test.actions(context.Background(), t, repo)
		})
	}
}

func TestRepositoryTasks(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *sqlite.Repository)
	}{
		"Listing tasks of a project should only return its tasks.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				tasks, err := repo.ListTasks(ctx, storage.ListTasksOpts{ProjectID: "p1"})
				require.NoError(t, err)
				require.Len(t, tasks, 2)
				assert.Equal(t, "t1", tasks[0].ID)
				assert.Equal(t, "t2", tasks[1].ID)
				assert.Equal(t, model.NewDate(2024, 3, 1), tasks[0].DueDate)
			},
		},

		"Listing tasks of a missing project should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				_, err := repo.ListTasks(ctx, storage.ListTasksOpts{ProjectID: "p9"})
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},

		"Creating a task on a missing project should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.CreateTask(ctx, newTask("t9", "p9"))
				assert.ErrorIs(t, err, model.ErrNotValid)
			},
		},

		"Creating a task with a missing dependency should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.CreateTask(ctx, newTask("t9", "p1", "t8"))
				assert.ErrorIs(t, err, model.ErrNotValid)
			},
		},

		"Creating a duplicated task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.CreateTask(ctx, newTask("t1", "p1"))
				assert.ErrorIs(t, err, model.ErrAlreadyExists)
			},
		},

		"Updating a task should be able to move it to another project.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				require.NoError(t, repo.UpdateTask(ctx, newTask("t3", "p1")))

				tasks, err := repo.ListTasks(ctx, storage.ListTasksOpts{ProjectID: "p2"})
				require.NoError(t, err)
				assert.Empty(t, tasks)
			},
		},

		"Updating a missing task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.UpdateTask(ctx, newTask("t9", "p1"))
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},

		"Deleting a task should remove it from the other task dependencies.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				require.NoError(t, repo.DeleteTask(ctx, "t1"))

				t2, err := repo.GetTask(ctx, "t2")
				require.NoError(t, err)
				assert.Empty(t, t2.Dependencies)
			},
		},

		"Deleting a missing task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) {
				err := repo.DeleteTask(ctx, "t9")
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t, filepath.Join(t.TempDir(), "cpm.db"))
			test.actions(context.Background(), t, repo)
		})
	}
}

func TestRepositoryResources(t *testing.T) {
	tests := map[string]struct {
		opts   storage.ListResourcesOpts
		expIDs []string
		expErr error
	}{
		"Listing all resources should return them by creation order.": {
			expIDs: []string{"r1", "r2"},
		},

		"Listing by project should only return the assigned resources.": {
			opts:   storage.ListResourcesOpts{ProjectID: "p1"},
			expIDs: []string{"r1"},
		},

		"Listing by availability should filter the resources.": {
			opts:   storage.ListResourcesOpts{Availability: model.AvailabilityInUse},
			expIDs: []string{"r2"},
		},

		"Listing by project and availability should combine the filters.": {
			opts:   storage.ListResourcesOpts{ProjectID: "p2", Availability: model.AvailabilityAvailable},
			expIDs: []string{"r1"},
		},

		"Listing by a missing project should fail.": {
			opts:   storage.ListResourcesOpts{ProjectID: "p9"},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t, filepath.Join(t.TempDir(), "cpm.db"))

			got, err := repo.ListResources(context.Background(), test.opts)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
				return
			}
			require.NoError(t, err)

			ids := []string{}
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, test.expIDs, ids)
		})
	}
}

func TestRepositoryResourceMutations(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, filepath.Join(t.TempDir(), "cpm.db"))

	// Assigned to a missing project.
	err := repo.CreateResource(ctx, newResource("r3", model.AvailabilityAvailable, "p9"))
	assert.ErrorIs(t, err, model.ErrNotValid)

	// Reassign r2 from p2 to p1.
	r2 := newResource("r2", model.AvailabilityMaintenance, "p1")
	require.NoError(t, repo.UpdateResource(ctx, r2))
	got, err := repo.ListResources(ctx, storage.ListResourcesOpts{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, r2, got[1])

	err = repo.UpdateResource(ctx, newResource("r9", model.AvailabilityAvailable))
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.DeleteResource(ctx, "r1"))
	_, err = repo.GetResource(ctx, "r1")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteResource(ctx, "r1"), model.ErrNotFound)
}
