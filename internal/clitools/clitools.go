// Package clitools manages the external AI CLIs promptdeck integrates with:
// install and update via npm, installation and version probes, and launch
// command construction for registered projects.
package clitools

import (
	"fmt"
	"strings"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

// Definition describes one managed CLI: the binary it installs and the npm
// package that ships it. BypassFlag is empty for tools without an
// approval-bypass mode.
type Definition struct {
	Tool       config.Tool
	Binary     string
	Package    string
	BypassFlag string
}

var definitions = map[config.Tool]Definition{
	config.ToolClaude: {
		Tool:    config.ToolClaude,
		Binary:  "claude",
		Package: "@anthropic-ai/claude-code",
	},
	config.ToolCodex: {
		Tool:       config.ToolCodex,
		Binary:     "codex",
		Package:    "@openai/codex",
		BypassFlag: "--dangerously-bypass-approvals-and-sandbox",
	},
}

// Lookup returns the definition for a tool.
func Lookup(tool config.Tool) (Definition, bool) {
	def, ok := definitions[tool]
	return def, ok
}

// Definitions returns every managed tool definition.
func Definitions() []Definition {
	return []Definition{definitions[config.ToolClaude], definitions[config.ToolCodex]}
}

// Manager runs tool probes and npm operations through the system access
// service.
type Manager struct {
	sys sysaccess.Service
}

func NewManager(sys sysaccess.Service) *Manager {
	return &Manager{sys: sys}
}

// Installed reports whether the tool's binary responds to --version.
func (m *Manager) Installed(tool config.Tool) bool {
	_, err := m.Version(tool)
	return err == nil
}

// Version returns the trimmed --version output of the tool's binary.
func (m *Manager) Version(tool config.Tool) (string, error) {
	def, ok := definitions[tool]
	if !ok {
		return "", fmt.Errorf("clitools: unknown tool %q", tool)
	}

	out, err := m.sys.RunProcess(def.Binary, "--version")
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(out)
	if version == "" {
		return "", fmt.Errorf("clitools: %s reported no version", def.Binary)
	}
	return version, nil
}

// Install installs the tool globally via npm.
func (m *Manager) Install(tool config.Tool) error {
	return m.npm(tool, "install")
}

// Update updates the tool's global npm installation.
func (m *Manager) Update(tool config.Tool) error {
	return m.npm(tool, "update")
}

func (m *Manager) npm(tool config.Tool, verb string) error {
	def, ok := definitions[tool]
	if !ok {
		return fmt.Errorf("clitools: unknown tool %q", tool)
	}
	if _, err := m.sys.RunProcess("npm", verb, "-g", def.Package); err != nil {
		return fmt.Errorf("clitools: npm %s %s: %w", verb, def.Package, err)
	}
	return nil
}

// LaunchCommand builds the argv for starting a tool inside a project. Bypass
// mode adds the tool's bypass flag; tools without one launch normally.
func LaunchCommand(tool config.Tool, mode catalog.LaunchMode) ([]string, error) {
	def, ok := definitions[tool]
	if !ok {
		return nil, fmt.Errorf("clitools: unknown tool %q", tool)
	}

	argv := []string{def.Binary}
	if mode == catalog.LaunchBypass && def.BypassFlag != "" {
		argv = append(argv, def.BypassFlag)
	}
	return argv, nil
}

// ParseEnvironment parses the KEY=VALUE-per-line environment text stored on
// a project. Blank lines and #-comments are skipped; a line without "=" or
// with an empty key is an error.
func ParseEnvironment(text string) ([]string, error) {
	var env []string
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("clitools: invalid environment line %d: %q", i+1, line)
		}
		env = append(env, strings.TrimSpace(key)+"="+value)
	}
	return env, nil
}
