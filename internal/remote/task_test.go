package remote_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/remote"
)

func TestTasksEndpoints(t *testing.T) {
	type call struct{ method, path string }
	var got []call

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, call{r.Method, r.URL.Path})
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/api/projects/p1/tasks" {
				writeJSON(w, http.StatusOK, []map[string]any{{"id": "t1", "projectId": "p1", "title": "Dig"}})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"id": "t1", "projectId": "p1", "title": "Dig"})
		case http.MethodPost, http.MethodPut:
			writeJSON(w, http.StatusOK, map[string]any{"id": "t1", "projectId": "p1", "title": "Dig", "status": "todo"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	tasks := remote.NewTasks(c)
	ctx := context.Background()

	list, err := tasks.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "t1", list[0].ID)

	_, err = tasks.Get(ctx, "t1")
	require.NoError(t, err)

	_, err = tasks.Create(ctx, model.TaskCreate{
		ProjectID: "p1",
		Title:     "Dig",
		Status:    model.TaskStatusTodo,
		Priority:  model.TaskPriorityLow,
	})
	require.NoError(t, err)

	status := model.TaskStatusCompleted
	_, err = tasks.Update(ctx, "t1", model.TaskUpdate{Status: &status})
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(ctx, "t1"))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/projects/p1/tasks"},
		{http.MethodGet, "/api/tasks/t1"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPut, "/api/tasks/t1"},
		{http.MethodDelete, "/api/tasks/t1"},
	}, got)
}

func TestResourcesEndpoints(t *testing.T) {
	type call struct{ method, path string }
	var got []call

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, call{r.Method, r.URL.Path})
		switch {
		case r.Method == http.MethodGet && (r.URL.Path == "/api/resources" || r.URL.Path == "/api/resources/available" || r.URL.Path == "/api/projects/p1/resources"):
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "r1", "name": "Crane", "specifications": map[string]string{"reach": "60m"}}})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusOK, map[string]any{"id": "r1", "name": "Crane"})
		}
	}))
	resources := remote.NewResources(c)
	ctx := context.Background()

	all, err := resources.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, map[string]string{"reach": "60m"}, all[0].Specifications)

	_, err = resources.ListAvailable(ctx)
	require.NoError(t, err)

	_, err = resources.ListByProject(ctx, "p1")
	require.NoError(t, err)

	_, err = resources.Create(ctx, model.ResourceCreate{
		Name:         "Crane",
		Type:         model.ResourceTypeEquipment,
		Availability: model.AvailabilityAvailable,
	})
	require.NoError(t, err)

	qty := 3.0
	_, err = resources.Update(ctx, "r1", model.ResourceUpdate{Quantity: &qty})
	require.NoError(t, err)

	require.NoError(t, resources.Delete(ctx, "r1"))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/resources"},
		{http.MethodGet, "/api/resources/available"},
		{http.MethodGet, "/api/projects/p1/resources"},
		{http.MethodPost, "/api/resources"},
		{http.MethodPut, "/api/resources/r1"},
		{http.MethodDelete, "/api/resources/r1"},
	}, got)
}
