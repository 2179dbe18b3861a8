// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskinder/taskinder.toml or OS-specific config directory)
// 3. Project config file (taskinder.toml or .taskinder.toml in the working directory)
// 4. Explicit config file (--config or TASKINDER_CONFIG)
// 5. Environment variables (TASKINDER_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.taskinder/taskinder.toml (preferred)
// - Windows: %APPDATA%\taskinder\taskinder.toml
// - macOS: ~/Library/Application Support/taskinder/taskinder.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskinder/taskinder.toml or ~/.config/taskinder/taskinder.toml
//
// Unknown keys in a config file are rejected.
package config
