package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nibzard/taskinder-go/internal/taskdir"
)

const appName = "taskinder"

// projectConfigNames lists project-level config files in preference order.
var projectConfigNames = []string{
	appName + ".toml",
	"." + appName + ".toml",
}

// expandPath expands environment variables and a leading ~ in p.
// On Windows it also accepts ~\ and %VAR% references.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		expanded = expandPercentVars(expanded)
	}

	rest, ok := cutHome(expanded)
	if !ok {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}

// cutHome reports whether p starts with the home shorthand and returns the remainder.
func cutHome(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return rest, true
	}
	if runtime.GOOS == "windows" {
		if rest, ok := strings.CutPrefix(p, `~\`); ok {
			return rest, true
		}
	}
	return "", false
}

// expandPercentVars replaces %NAME% with the value of NAME. Unknown names
// are left untouched.
func expandPercentVars(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}
	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			b.WriteString(p)
			return b.String()
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			b.WriteString(p)
			return b.String()
		}
		end += start + 1

		b.WriteString(p[:start])
		key := p[start+1 : end]
		if val, ok := os.LookupEnv(key); ok && key != "" {
			b.WriteString(val)
		} else {
			b.WriteString(p[start : end+1])
		}
		p = p[end+1:]
	}
}

// findUserConfigFile returns the first user-level config file that exists.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, taskdir.ConfigPath(home))
	}
	if dir := osUserConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, appName, appName+".toml"))
	}
	return firstExisting(candidates)
}

// osUserConfigDir returns the platform config directory, honoring
// XDG_CONFIG_HOME on Unix-like systems.
func osUserConfigDir() string {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

// findProjectConfigFile returns the project config file in workDir, if any.
func findProjectConfigFile(workDir string) string {
	candidates := make([]string, 0, len(projectConfigNames))
	for _, name := range projectConfigNames {
		candidates = append(candidates, filepath.Join(workDir, name))
	}
	return firstExisting(candidates)
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// UserConfigPath returns the preferred user-level config file location.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return taskdir.ConfigPath(home), nil
}

// ProjectConfigPath returns the preferred project-level config file in workDir.
func ProjectConfigPath(workDir string) string {
	return filepath.Join(workDir, projectConfigNames[0])
}
