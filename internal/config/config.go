package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/nibzard/taskinder-go/internal/render"
	"github.com/nibzard/taskinder-go/internal/taskdir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceExplicit ConfigSource = "config file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Field names as they appear in TOML files.
const (
	FieldStoreFile     = "store_file"
	FieldTemplate      = "template"
	FieldLock          = "lock"
	FieldLogLevel      = "log_level"
	FieldLogFormat     = "log_format"
	FieldLogTimestamps = "log_timestamps"
	FieldLogCaller     = "log_caller"
)

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{
		FieldStoreFile,
		FieldTemplate,
		FieldLock,
		FieldLogLevel,
		FieldLogFormat,
		FieldLogTimestamps,
		FieldLogCaller,
	}
}

// Config holds the full configuration for taskinder.
type Config struct {
	// Store file path (supports ~ expansion; relative paths resolve against WorkDir)
	StoreFile string `toml:"store_file"`

	// Display template used by list and show
	Template string `toml:"template"`

	// Hold an exclusive file lock around every store operation
	Lock bool `toml:"lock"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Explicit config file (flag or environment, not persisted)
	ConfigFile string `toml:"-"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	Files   []string // Config files that were read, in load order
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskinder/taskinder.toml or OS-specific config dir)
// 3. Project config file (taskinder.toml or .taskinder.toml in the working directory)
// 4. Explicit config file (--config or TASKINDER_CONFIG)
// 5. Environment variables
// 6. CLI flags
//
// fs may be nil when no flags apply.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cws, err := LoadWithSources(fs)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *pflag.FlagSet) (*ConfigWithSources, error) {
	cfg := &Config{}
	cws := &ConfigWithSources{
		Config:  cfg,
		Sources: make(map[string]ConfigSource),
	}

	// 1. Defaults
	setDefaults(cfg)
	for _, field := range Fields() {
		cws.Sources[field] = SourceDefault
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg.WorkDir = wd

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := cws.loadFile(path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(wd); path != "" {
		if err := cws.loadFile(path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Explicit config file
	cfg.ConfigFile = explicitConfigFile(fs)
	if cfg.ConfigFile != "" {
		path := expandPath(cfg.ConfigFile)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cws.loadFile(path, SourceExplicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 5. Environment
	loadFromEnv(cfg, cws.Sources)

	// 6. Flags
	if err := applyFlags(cfg, fs, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Derived values
	finalizeConfig(cfg)

	return cws, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StoreFile = taskdir.StorePath("~")
	cfg.Template = render.DefaultTemplate
	cfg.Lock = false
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// loadFile decodes a TOML file over the current config and records the
// source of every key the file defines.
func (cws *ConfigWithSources) loadFile(path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for _, field := range Fields() {
		if md.IsDefined(field) {
			cws.Sources[field] = source
		}
	}
	cws.Files = append(cws.Files, path)
	return nil
}

// finalizeConfig computes derived values.
func finalizeConfig(cfg *Config) {
	cfg.StoreFile = expandPath(cfg.StoreFile)
	if !filepath.IsAbs(cfg.StoreFile) {
		cfg.StoreFile = filepath.Join(cfg.WorkDir, cfg.StoreFile)
	}
}

// LockFile returns the lock file path guarding the store file.
func (c *Config) LockFile() string {
	return taskdir.LockPath(c.StoreFile)
}

// Value returns the display value of a field.
func (c *Config) Value(field string) string {
	switch field {
	case FieldStoreFile:
		return c.StoreFile
	case FieldTemplate:
		return c.Template
	case FieldLock:
		return fmt.Sprintf("%t", c.Lock)
	case FieldLogLevel:
		return c.LogLevel
	case FieldLogFormat:
		return c.LogFormat
	case FieldLogTimestamps:
		return fmt.Sprintf("%t", c.LogTimestamps)
	case FieldLogCaller:
		return fmt.Sprintf("%t", c.LogCaller)
	default:
		return ""
	}
}
