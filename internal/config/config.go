// Package config loads and saves the client configuration from YAML.
// Everything here is passed explicitly into constructors; nothing reads
// ambient global state.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/azverev/relaycal/internal/model"
)

// Config is the top-level client configuration.
type Config struct {
	// Relays lists the relay URLs the network client connects to.
	Relays []string `yaml:"relays"`

	// QueryTimeoutMS / PublishTimeoutMS bound the two network suspension
	// points of a mutation attempt, in milliseconds.
	QueryTimeoutMS   int `yaml:"query_timeout_ms"`
	PublishTimeoutMS int `yaml:"publish_timeout_ms"`

	// WeeklySeedPolicy selects what happens when a weekly recurrence's seed
	// date is not among the selected weekdays: "snap" or "strict".
	WeeklySeedPolicy string `yaml:"weekly_seed_policy"`

	// CalendarSlug is the default calendar container slug for mutations.
	CalendarSlug string `yaml:"calendar_slug"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Relays:           []string{},
		QueryTimeoutMS:   5000,
		PublishTimeoutMS: 5000,
		WeeklySeedPolicy: string(model.SeedSnapForward),
		CalendarSlug:     "calendar",
	}
}

// Normalize fills in missing/zero values so partially filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.Relays == nil {
		c.Relays = []string{}
	}
	if c.QueryTimeoutMS <= 0 {
		c.QueryTimeoutMS = 5000
	}
	if c.PublishTimeoutMS <= 0 {
		c.PublishTimeoutMS = 5000
	}
	switch c.WeeklySeedPolicy {
	case string(model.SeedSnapForward), string(model.SeedStrict):
	default:
		c.WeeklySeedPolicy = string(model.SeedSnapForward)
	}
	if c.CalendarSlug == "" {
		c.CalendarSlug = "calendar"
	}
}

// QueryTimeout returns the query bound as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMS) * time.Millisecond
}

// PublishTimeout returns the publish bound as a duration.
func (c *Config) PublishTimeout() time.Duration {
	return time.Duration(c.PublishTimeoutMS) * time.Millisecond
}

// SeedPolicy returns the typed weekly seed policy.
func (c *Config) SeedPolicy() model.SeedPolicy {
	return model.SeedPolicy(c.WeeklySeedPolicy)
}

// Load reads configuration from the given YAML path. A missing file is a
// first run: a default config is written with 0600 perms and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename, 0600).
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".relaycal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
