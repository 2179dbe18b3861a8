// Package taskdir provides constants and utilities for the .taskinder directory structure.
package taskdir

import "path/filepath"

const (
	// Dir is the name of the taskinder state directory.
	Dir = ".taskinder"

	// DefaultStoreFile is the default store file name (inside .taskinder).
	DefaultStoreFile = "tasks.json"

	// DefaultConfigFile is the default config file name (inside .taskinder).
	DefaultConfigFile = "taskinder.toml"

	// LockSuffix is appended to a store path to name its lock file.
	LockSuffix = ".lock"
)

// StorePath returns the full path to the store file within a base directory.
func StorePath(baseDir string) string {
	return joinPath(baseDir, DefaultStoreFile)
}

// ConfigPath returns the full path to the config file within a base directory.
func ConfigPath(baseDir string) string {
	return joinPath(baseDir, DefaultConfigFile)
}

// DirPath returns the full path to the .taskinder directory within a base directory.
func DirPath(baseDir string) string {
	if baseDir == "." || baseDir == "" {
		return Dir
	}
	return filepath.Join(baseDir, Dir)
}

// LockPath returns the lock file path guarding storePath.
func LockPath(storePath string) string {
	return storePath + LockSuffix
}

func joinPath(baseDir, file string) string {
	return filepath.Join(DirPath(baseDir), file)
}
