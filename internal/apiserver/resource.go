package apiserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

func (h handler) listResources(w http.ResponseWriter, r *http.Request) {
	h.writeResources(w, r, storage.ListResourcesOpts{})
}

func (h handler) listAvailableResources(w http.ResponseWriter, r *http.Request) {
	h.writeResources(w, r, storage.ListResourcesOpts{Availability: model.AvailabilityAvailable})
}

func (h handler) writeResources(w http.ResponseWriter, r *http.Request, opts storage.ListResourcesOpts) {
	resources, err := h.repo.ListResources(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h handler) getResource(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetResource(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h handler) createResource(w http.ResponseWriter, r *http.Request) {
	var c model.ResourceCreate
	if err := decodeBody(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, err)
		return
	}

	res := c.ToResource(h.newID(), h.now())
	if err := h.repo.CreateResource(r.Context(), res); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Infof("Resource %s created", res.ID)

	writeJSON(w, http.StatusCreated, res)
}

func (h handler) updateResource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var u model.ResourceUpdate
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

	current, err := h.repo.GetResource(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	res := u.Apply(*current)
	res.UpdatedAt = h.now()
	if err := h.repo.UpdateResource(r.Context(), res); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h handler) deleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteResource(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
