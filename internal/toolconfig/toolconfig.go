// Package toolconfig reads and writes the config.json each managed tool keeps
// at the root of its namespace directory, and sets up the directory layout a
// freshly initialized namespace needs.
package toolconfig

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

// Version is written to newly created tool configs.
const Version = "1.0.0"

// ToolConfig is the persistent state a tool namespace keeps about itself.
// LastModified is refreshed on every save.
type ToolConfig struct {
	Version      string           `json:"version"`
	Prompts      []catalog.Record `json:"prompts"`
	LastModified time.Time        `json:"lastModified"`
}

// Manager performs config and layout operations through the system access
// service, so callers can run it against a real or in-memory filesystem.
type Manager struct {
	sys sysaccess.Service
}

func NewManager(sys sysaccess.Service) *Manager {
	return &Manager{sys: sys}
}

// Read loads the config.json for the tool namespace. A missing file yields a
// nil config and no error; a present but unparsable file is an error.
func (m *Manager) Read(tool config.Tool, sc scope.Scope, projectRoot string) (*ToolConfig, error) {
	path := config.ToolConfigPath(tool, sc, projectRoot)

	exists, err := m.sys.PathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	text, err := m.sys.ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ToolConfig
	if err := json.Unmarshal([]byte(text), &cfg); err != nil {
		return nil, fmt.Errorf("toolconfig: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Write saves the config.json for the tool namespace, stamping LastModified.
// The namespace directory is created if needed.
func (m *Manager) Write(tool config.Tool, sc scope.Scope, projectRoot string, cfg ToolConfig) error {
	path := config.ToolConfigPath(tool, sc, projectRoot)
	if err := m.sys.MakeDirectory(filepath.Dir(path), true); err != nil {
		return err
	}

	cfg.LastModified = time.Now().UTC()
	if cfg.Prompts == nil {
		cfg.Prompts = []catalog.Record{}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("toolconfig: encode %s: %w", path, err)
	}
	return m.sys.WriteTextFile(path, string(data))
}

// Setup creates the directory layout for a tool namespace and writes a
// default config.json when none exists yet. An existing config is left
// untouched. Returns the namespace root.
func (m *Manager) Setup(tool config.Tool, sc scope.Scope, projectRoot string) (string, error) {
	root := config.ToolRoot(tool, sc, projectRoot)

	dirs := []string{root, config.PromptsDir(tool, sc, projectRoot)}
	for _, sub := range layoutDirs(tool) {
		dirs = append(dirs, filepath.Join(root, sub))
	}
	for _, dir := range dirs {
		if err := m.sys.MakeDirectory(dir, true); err != nil {
			return "", err
		}
	}

	existing, err := m.Read(tool, sc, projectRoot)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return root, nil
	}

	if err := m.Write(tool, sc, projectRoot, ToolConfig{Version: Version}); err != nil {
		return "", err
	}
	return root, nil
}

// Installed reports whether a tool namespace directory already exists.
func (m *Manager) Installed(tool config.Tool, sc scope.Scope, projectRoot string) (bool, error) {
	return m.sys.PathExists(config.ToolRoot(tool, sc, projectRoot))
}

func layoutDirs(tool config.Tool) []string {
	switch tool {
	case config.ToolClaude:
		return []string{"projects", "settings"}
	case config.ToolCodex:
		return []string{"templates"}
	default:
		return nil
	}
}
