package config_test

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/config"
)

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		files       fstest.MapFS
		path        string
		expConfig   config.Config
		expErr      bool
		expNotExist bool
	}{
		"A complete config file should be loaded.": {
			files: fstest.MapFS{"config.yaml": {Data: []byte(`
api_url: http://cpm.example.com/api
timeout: 5s
retries: 4
notification_duration: 3s
`)}},
			path: "config.yaml",
			expConfig: config.Config{
				APIURL:               "http://cpm.example.com/api",
				Timeout:              5 * time.Second,
				Retries:              ptr(4),
				NotificationDuration: 3 * time.Second,
			},
		},
		"Zero retries should be kept as an explicit value.": {
			files:     fstest.MapFS{"config.yaml": {Data: []byte("retries: 0\n")}},
			path:      "config.yaml",
			expConfig: config.Config{Retries: ptr(0)},
		},
		"A partial config file should leave the rest unset.": {
			files:     fstest.MapFS{"config.yaml": {Data: []byte("api_url: http://localhost:9000/api\n")}},
			path:      "config.yaml",
			expConfig: config.Config{APIURL: "http://localhost:9000/api"},
		},
		"An empty config file should be an empty config.": {
			files:     fstest.MapFS{"config.yaml": {Data: []byte("")}},
			path:      "config.yaml",
			expConfig: config.Config{},
		},
		"A missing config file should fail with not exist.": {
			files:     fstest.MapFS{},
			path:      "config.yaml",
			expErr:      true,
			expNotExist: true,
		},
		"Unknown keys should fail.": {
			files:  fstest.MapFS{"config.yaml": {Data: []byte("api_ur1: http://localhost:9000/api\n")}},
			path:   "config.yaml",
			expErr: true,
		},
		"An invalid duration should fail.": {
			files:  fstest.MapFS{"config.yaml": {Data: []byte("timeout: soon\n")}},
			path:   "config.yaml",
			expErr: true,
		},
		"A negative notification duration should fail.": {
			files:  fstest.MapFS{"config.yaml": {Data: []byte("notification_duration: -1s\n")}},
			path:   "config.yaml",
			expErr: true,
		},
		"Negative retries should fail.": {
			files:  fstest.MapFS{"config.yaml": {Data: []byte("retries: -1\n")}},
			path:   "config.yaml",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			cfg, err := config.Load(test.files, test.path)

			if test.expErr {
				require.Error(err)
				assert.Equal(test.expNotExist, errors.Is(err, fs.ErrNotExist))
				return
			}
			require.NoError(err)
			assert.Equal(test.expConfig, cfg)
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := config.Config{APIURL: "http://a/api", Timeout: time.Second, Retries: ptr(1)}
	got := base.Merge(config.Config{APIURL: "http://b/api", NotificationDuration: 2 * time.Second})

	assert.Equal(t, config.Config{
		APIURL:               "http://b/api",
		Timeout:              time.Second,
		Retries:              ptr(1),
		NotificationDuration: 2 * time.Second,
	}, got)

	got = base.Merge(config.Config{Retries: ptr(0)})
	assert.Equal(t, ptr(0), got.Retries)
}

func TestConfigRetries(t *testing.T) {
	tests := map[string]struct {
		cfg         config.Config
		expAttempts int
		expDisabled bool
	}{
		"Unset retries should use the client default.": {
			cfg:         config.Config{},
			expAttempts: 0,
			expDisabled: false,
		},
		"Zero retries should disable the retries.": {
			cfg:         config.Config{Retries: ptr(0)},
			expAttempts: 0,
			expDisabled: true,
		},
		"Set retries should be used.": {
			cfg:         config.Config{Retries: ptr(3)},
			expAttempts: 3,
			expDisabled: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expAttempts, test.cfg.RetryAttempts())
			assert.Equal(t, test.expDisabled, test.cfg.RetriesDisabled())
		})
	}
}

func ptr[T any](v T) *T { return &v }
