// Package config loads and saves the tool's YAML configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"icaldump/internal/render"
)

// CalendarConfig describes one subscribed iCalendar feed.
type CalendarConfig struct {
	// Name is the label used to select the calendar on the command line.
	Name string `yaml:"name"`
	// URL is the feed endpoint.
	URL string `yaml:"url"`
}

// Config is the top-level configuration.
type Config struct {
	// Calendars is the list of subscribed feeds.
	Calendars []CalendarConfig `yaml:"calendars"`

	// Template is the output template applied per task; see package
	// render for the placeholder vocabulary.
	Template string `yaml:"template"`

	// CacheDir is where fetched feed bodies are cached between runs.
	CacheDir string `yaml:"cache_dir"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Calendars: []CalendarConfig{},
		Template:  render.DefaultTemplate,
		CacheDir:  defaultCacheDir(),
	}
}

func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "icaldump")
	}
	return "./var/ics-cache"
}

// Normalize fills missing values with defaults so partially filled
// configs still behave.
func (c *Config) Normalize() {
	if c.Calendars == nil {
		c.Calendars = []CalendarConfig{}
	}
	if c.Template == "" {
		c.Template = render.DefaultTemplate
	}
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir()
	}
}

// Calendar looks up a feed by name. An empty name selects the first
// configured feed.
func (c *Config) Calendar(name string) (CalendarConfig, bool) {
	if name == "" {
		if len(c.Calendars) == 0 {
			return CalendarConfig{}, false
		}
		return c.Calendars[0], true
	}
	for _, cal := range c.Calendars {
		if cal.Name == name {
			return cal, true
		}
	}
	return CalendarConfig{}, false
}

// Load reads the YAML config at path. On first run (file missing) it
// writes and returns the defaults.
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

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory when needed.
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

	tmp, err := os.CreateTemp(dir, ".icaldump-config-*.tmp")
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
