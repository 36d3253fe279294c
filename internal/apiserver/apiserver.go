// Package apiserver is the REST backend used for development. It serves the
// projects, tasks and resources of a storage.Repository as JSON.
package apiserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"

	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/storage"
)

// DefaultBasePath is the path prefix of every route.
const DefaultBasePath = "/api"

// HandlerConfig is the configuration of the API handler.
type HandlerConfig struct {
	Repository storage.Repository
	// BasePath prefixes all the routes, defaults to DefaultBasePath.
	BasePath string
	// IDGenerator returns new entity identifiers, defaults to ULIDs.
	IDGenerator func() string
	// Now returns the current time, defaults to time.Now in UTC.
	Now    func() time.Time
	Logger log.Logger
}

func (c *HandlerConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	c.BasePath = "/" + strings.Trim(c.BasePath, "/")
	if c.BasePath == "/" {
		c.BasePath = ""
	}

	if c.IDGenerator == nil {
		c.IDGenerator = func() string { return ulid.Make().String() }
	}

	if c.Now == nil {
		c.Now = func() time.Time { return time.Now().UTC() }
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "apiserver.Handler"})

	return nil
}

type handler struct {
	repo   storage.Repository
	newID  func() string
	now    func() time.Time
	logger log.Logger
}

// NewHandler returns the HTTP handler of the API.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	h := handler{
		repo:   cfg.Repository,
		newID:  cfg.IDGenerator,
		now:    cfg.Now,
		logger: cfg.Logger,
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, fmt.Errorf("route %s: %w", r.URL.Path, model.ErrNotFound))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "method not allowed"})
	})
	router.Use(h.logMiddleware)

	api := router.PathPrefix(cfg.BasePath).Subrouter()
	h.registerRoutes(api)

	return router, nil
}

func (h handler) registerRoutes(r *mux.Router) {
	r.HandleFunc("/projects", h.listProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects", h.createProject).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}", h.getProject).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", h.updateProject).Methods(http.MethodPut)
	r.HandleFunc("/projects/{id}", h.deleteProject).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/tasks", h.listProjectTasks).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}/resources", h.listProjectResources).Methods(http.MethodGet)

	r.HandleFunc("/tasks", h.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks", h.createTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", h.getTask).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", h.updateTask).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}", h.deleteTask).Methods(http.MethodDelete)

	r.HandleFunc("/resources", h.listResources).Methods(http.MethodGet)
	r.HandleFunc("/resources", h.createResource).Methods(http.MethodPost)
	r.HandleFunc("/resources/available", h.listAvailableResources).Methods(http.MethodGet)
	r.HandleFunc("/resources/{id}", h.getResource).Methods(http.MethodGet)
	r.HandleFunc("/resources/{id}", h.updateResource).Methods(http.MethodPut)
	r.HandleFunc("/resources/{id}", h.deleteResource).Methods(http.MethodDelete)
}

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h handler) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(requestIDHeader); id != "" {
			w.Header().Set(requestIDHeader, id)
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.WithValues(log.Kv{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
			"request-id": r.Header.Get(requestIDHeader),
		}).Debugf("Request served")
	})
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrNotValid):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrAlreadyExists):
		status = http.StatusConflict
	}

	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request payload: %s: %w", err, model.ErrNotValid)
	}
	return nil
}

// checkBodyID fails when the body identifier doesn't match the path one.
func checkBodyID(pathID, bodyID string) error {
	if bodyID != "" && bodyID != pathID {
		return fmt.Errorf("body id %s doesn't match path id %s: %w", bodyID, pathID, model.ErrNotValid)
	}
	return nil
}
