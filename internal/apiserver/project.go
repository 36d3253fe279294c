package apiserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

func (h handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repo.ListProjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h handler) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h handler) createProject(w http.ResponseWriter, r *http.Request) {
	var c model.ProjectCreate
	if err := decodeBody(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, err)
		return
	}

	p := c.ToProject(h.newID(), h.now())
	if err := h.repo.CreateProject(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Infof("Project %s created", p.ID)

	writeJSON(w, http.StatusCreated, p)
}

func (h handler) updateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var u model.ProjectUpdate
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

	current, err := h.repo.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	p := u.Apply(*current)
	p.UpdatedAt = h.now()
	if err := h.repo.UpdateProject(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteProject(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) listProjectTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repo.ListTasks(r.Context(), storage.ListTasksOpts{ProjectID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h handler) listProjectResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.repo.ListResources(r.Context(), storage.ListResourcesOpts{ProjectID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}
