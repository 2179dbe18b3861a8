package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvConfig        = "TASKINDER_CONFIG"
	EnvStore         = "TASKINDER_STORE"
	EnvTemplate      = "TASKINDER_TEMPLATE"
	EnvLock          = "TASKINDER_LOCK"
	EnvLogLevel      = "TASKINDER_LOG_LEVEL"
	EnvLogFormat     = "TASKINDER_LOG_FORMAT"
	EnvLogTimestamps = "TASKINDER_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKINDER_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvStore); v != "" {
		cfg.StoreFile = v
		set(FieldStoreFile)
	}
	if v := os.Getenv(EnvTemplate); v != "" {
		cfg.Template = v
		set(FieldTemplate)
	}
	if v := os.Getenv(EnvLock); v != "" {
		cfg.Lock = boolFromString(v)
		set(FieldLock)
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		set(FieldLogLevel)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		set(FieldLogFormat)
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set(FieldLogTimestamps)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set(FieldLogCaller)
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
