// Package config resolves the directories and files promptdeck operates on.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/promptdeck/promptdeck/internal/scope"
)

// Tool identifies one of the managed AI coding-assistant CLIs. Each tool owns
// a dotted namespace directory under the user's home and under project roots.
type Tool string

const (
	ToolClaude Tool = "claude"
	ToolCodex  Tool = "codex"
)

// Namespace returns the tool's dotted directory name, e.g. ".claude".
func (t Tool) Namespace() string {
	return "." + string(t)
}

// GetDeckDir resolves the base directory for promptdeck's own storage. It
// checks PROMPTDECK_DIR first, then XDG paths, and finally falls back to the
// user's home directory.
func GetDeckDir() string {
	if explicit := os.Getenv("PROMPTDECK_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "promptdeck")
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "promptdeck")
}

// GetDBPath returns the absolute path to the SQLite catalog database.
func GetDBPath() string {
	return filepath.Join(GetDeckDir(), "catalog.db")
}

// HomeDir returns the user's home directory, honoring the PROMPTDECK_HOME
// override used by tests.
func HomeDir() string {
	if explicit := os.Getenv("PROMPTDECK_HOME"); explicit != "" {
		return explicit
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}

// ToolRoot returns the tool namespace directory for the given scope. User
// scope lives under the home directory; project scope under projectRoot.
func ToolRoot(tool Tool, sc scope.Scope, projectRoot string) string {
	if sc == scope.Project {
		if projectRoot == "" {
			projectRoot = "."
		}
		return filepath.Join(projectRoot, tool.Namespace())
	}
	return filepath.Join(HomeDir(), tool.Namespace())
}

// PromptsDir returns the directory holding *.md record files for the given
// tool and scope.
func PromptsDir(tool Tool, sc scope.Scope, projectRoot string) string {
	return filepath.Join(ToolRoot(tool, sc, projectRoot), "prompts")
}

// ToolConfigPath returns the path of the tool-level config.json.
func ToolConfigPath(tool Tool, sc scope.Scope, projectRoot string) string {
	return filepath.Join(ToolRoot(tool, sc, projectRoot), "config.json")
}

// ParseTool converts a string into a Tool, rejecting unknown values.
func ParseTool(value string) (Tool, bool) {
	switch Tool(value) {
	case ToolClaude, ToolCodex:
		return Tool(value), true
	default:
		return "", false
	}
}
