package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskinder configuration file
# Values can be overridden by TASKINDER_* environment variables or CLI flags

# Task store (supports ~ expansion; relative paths resolve against the working directory)
store_file = "~/.taskinder/tasks.json"

# Display template: default, detailed, all
template = "default"

# Hold an exclusive lock file around every store operation
lock = false

# Logging: debug, info, warn, error
log_level = "warn"

# Log output format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
