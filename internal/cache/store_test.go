package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/model"
)

func TestNewStore(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	s, err := cache.NewStore(cache.StoreConfig{})
	require.NoError(err)

	assert.Equal(cache.StatusIdle, s.Projects.State().Status)
	assert.Equal(cache.StatusIdle, s.Tasks.State().Status)
	assert.Equal(cache.StatusIdle, s.Resources.State().Status)

	// Collections are independent.
	s.Projects.FetchSucceeded([]model.Project{{ID: "1"}})
	s.Tasks.FetchFailed("boom")
	assert.Len(s.Projects.Items(), 1)
	assert.Empty(s.Tasks.Items())
	assert.Empty(s.Projects.State().Error)
	assert.Equal("boom", s.Tasks.State().Error)
}
