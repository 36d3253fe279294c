package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration. Zero values mean "not set" so the
// components apply their own defaults.
type Config struct {
	APIURL               string
	Timeout              time.Duration
	// Retries is nil when not set, an explicit 0 disables the retries.
	Retries              *int
	NotificationDuration time.Duration
}

// RetryAttempts returns the configured retries, 0 means the client default.
func (c Config) RetryAttempts() int {
	if c.Retries == nil {
		return 0
	}
	return *c.Retries
}

// RetriesDisabled returns true when the retries are explicitly set to 0.
func (c Config) RetriesDisabled() bool {
	return c.Retries != nil && *c.Retries == 0
}

// Merge returns c with the set fields of o overriding it.
func (c Config) Merge(o Config) Config {
	if o.APIURL != "" {
		c.APIURL = o.APIURL
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Retries != nil {
		c.Retries = o.Retries
	}
	if o.NotificationDuration != 0 {
		c.NotificationDuration = o.NotificationDuration
	}
	return c
}

// file is the YAML structure of the config file.
type file struct {
	APIURL               string `yaml:"api_url"`
	Timeout              string `yaml:"timeout"`
	Retries              *int   `yaml:"retries"`
	NotificationDuration string `yaml:"notification_duration"`
}

// Load loads the config from a YAML file. A missing file returns an error
// wrapping fs.ErrNotExist.
func Load(fsys fs.FS, path string) (Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing YAML: %w", err)
	}

	return f.toConfig()
}

func (f file) toConfig() (Config, error) {
	if f.Retries != nil && *f.Retries < 0 {
		return Config{}, errors.New("retries can't be negative")
	}

	timeout, err := parseDuration("timeout", f.Timeout)
	if err != nil {
		return Config{}, err
	}

	notificationDuration, err := parseDuration("notification_duration", f.NotificationDuration)
	if err != nil {
		return Config{}, err
	}

	return Config{
		APIURL:               f.APIURL,
		Timeout:              timeout,
		Retries:              f.Retries,
		NotificationDuration: notificationDuration,
	}, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s can't be negative", field)
	}

	return d, nil
}
