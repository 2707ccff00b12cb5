package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const stateDirName = ".studytrack"

type Config struct {
	DataDir   string
	StatePath string
	DBPath    string
	User      string
	Timezone  string
	Location  *time.Location
	LogLevel  string
	LogFormat string
	Notify    bool
}

// fileConfig mirrors .studytrack/config.yaml. Pointer fields distinguish
// "unset" from zero values.
type fileConfig struct {
	User      *string `yaml:"user"`
	Timezone  *string `yaml:"timezone"`
	LogLevel  *string `yaml:"log_level"`
	LogFormat *string `yaml:"log_format"`
	Notify    *bool   `yaml:"notify"`
}

// New returns defaults for dataDir without touching the filesystem.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	state := filepath.Join(dataDir, stateDirName)
	return Config{
		DataDir:   dataDir,
		StatePath: state,
		DBPath:    filepath.Join(state, "index.db"),
		Location:  time.Local,
		LogLevel:  "warn",
		LogFormat: "text",
	}, nil
}

// Load applies defaults, then the optional config.yaml, then a non-empty user override.
func Load(dataDir, userOverride string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.overlayFile(cfg.FilePath()); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(userOverride) != "" {
		cfg.User = strings.TrimSpace(userOverride)
	}
	return cfg, nil
}

func (c Config) FilePath() string {
	return filepath.Join(c.StatePath, "config.yaml")
}

func (c *Config) overlayFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if fc.User != nil {
		c.User = strings.TrimSpace(*fc.User)
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		c.LogFormat = *fc.LogFormat
	}
	if fc.Notify != nil {
		c.Notify = *fc.Notify
	}
	if fc.Timezone != nil && strings.TrimSpace(*fc.Timezone) != "" {
		loc, err := time.LoadLocation(strings.TrimSpace(*fc.Timezone))
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
		c.Timezone = loc.String()
		c.Location = loc
	}
	return nil
}

// SaveDefaultUser persists user into config.yaml, keeping other keys intact.
func (c Config) SaveDefaultUser(user string) error {
	doc := map[string]any{}
	payload, err := os.ReadFile(c.FilePath())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(payload, &doc); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	doc["user"] = user
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(c.StatePath, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(c.FilePath(), out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
