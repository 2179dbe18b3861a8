package config

import (
	"os"

	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig   = "config"
	FlagStore    = "store"
	FlagTemplate = "template"
	FlagLock     = "lock"
	FlagLogLevel = "log-level"
)

// RegisterFlags defines the global configuration flags on fs.
// Defaults are left empty so that only explicitly set flags override
// lower layers.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to a config file")
	fs.String(FlagStore, "", "Path to the task store file")
	fs.String(FlagTemplate, "", "Display template (default, detailed, all)")
	fs.Bool(FlagLock, false, "Hold an exclusive file lock around store access")
	fs.String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
}

// explicitConfigFile returns the config file named by flag or environment.
func explicitConfigFile(fs *pflag.FlagSet) string {
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	return os.Getenv(EnvConfig)
}

// applyFlags overrides config with flags that were explicitly set.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}

	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}

	if changed(FlagStore) {
		v, err := fs.GetString(FlagStore)
		if err != nil {
			return err
		}
		cfg.StoreFile = v
		sources[FieldStoreFile] = SourceFlag
	}
	if changed(FlagTemplate) {
		v, err := fs.GetString(FlagTemplate)
		if err != nil {
			return err
		}
		cfg.Template = v
		sources[FieldTemplate] = SourceFlag
	}
	if changed(FlagLock) {
		v, err := fs.GetBool(FlagLock)
		if err != nil {
			return err
		}
		cfg.Lock = v
		sources[FieldLock] = SourceFlag
	}
	if changed(FlagLogLevel) {
		v, err := fs.GetString(FlagLogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = v
		sources[FieldLogLevel] = SourceFlag
	}
	return nil
}
