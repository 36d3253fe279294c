package apiserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

func (h handler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repo.ListTasks(r.Context(), storage.ListTasksOpts{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h handler) getTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.repo.GetTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h handler) createTask(w http.ResponseWriter, r *http.Request) {
	var c model.TaskCreate
	if err := decodeBody(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, err)
		return
	}

	t := c.ToTask(h.newID(), h.now())
	if err := h.repo.CreateTask(r.Context(), t); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Infof("Task %s created on project %s", t.ID, t.ProjectID)

	writeJSON(w, http.StatusCreated, t)
}

func (h handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var u model.TaskUpdate
	if err := decodeBody(r, &u); err != nil {
		writeError(w, err)
		return
	}
	if err := checkBodyID(id, u.ID); err != nil {
		writeError(w, err)
		return
	}
	u.ID = id
	if err := u.Validate(); err != nil {
		writeError(w, err)
		return
	}

	current, err := h.repo.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	t := u.Apply(*current)
	t.UpdatedAt = h.now()
	if err := h.repo.UpdateTask(r.Context(), t); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (h handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteTask(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
