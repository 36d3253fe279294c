package cache

import (
	"fmt"

	"github.com/slok/cpm/internal/log"
	"github.com/slok/cpm/internal/model"
)

// StoreConfig is the configuration of the cache store.
type StoreConfig struct {
	Logger log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "cache.Store"})

	return nil
}

// Store owns the in-memory copy of every entity type. It's created once by the
// application root and passed to whoever needs it.
type Store struct {
	Projects  *Collection[model.Project]
	Tasks     *Collection[model.Task]
	Resources *Collection[model.Resource]
}

// NewStore returns an empty store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		Projects:  NewCollection[model.Project](cfg.Logger.WithValues(log.Kv{"collection": "projects"})),
		Tasks:     NewCollection[model.Task](cfg.Logger.WithValues(log.Kv{"collection": "tasks"})),
		Resources: NewCollection[model.Resource](cfg.Logger.WithValues(log.Kv{"collection": "resources"})),
	}, nil
}
