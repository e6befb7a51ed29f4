// Package catalog provides data types for catalog records and operations.
package catalog

import (
	"time"

	"github.com/promptdeck/promptdeck/internal/scope"
)

// Kind distinguishes the logical collections stored in the catalog.
type Kind string

const (
	KindPrompt  Kind = "prompt"
	KindCommand Kind = "command"
)

// ArgumentType enumerates the value types a record argument may declare.
type ArgumentType string

const (
	ArgumentString  ArgumentType = "string"
	ArgumentNumber  ArgumentType = "number"
	ArgumentBoolean ArgumentType = "boolean"
)

// Argument describes one positional parameter a record's content expects.
type Argument struct {
	Name         string       `json:"name"`
	Type         ArgumentType `json:"type"`
	Required     bool         `json:"required"`
	Description  string       `json:"description,omitempty"`
	DefaultValue string       `json:"defaultValue,omitempty"`
}

// Record is a prompt or command definition. ID is assigned once at creation
// and never mutated. Category is a pointer because "no category" is distinct
// from a category named "".
type Record struct {
	ID           string            `json:"id"`
	Kind         Kind              `json:"kind"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Content      string            `json:"content"`
	Scope        scope.Scope       `json:"scope"`
	Category     *string           `json:"category,omitempty"`
	FilePath     string            `json:"filePath,omitempty"`
	AllowedTools []string          `json:"allowedTools,omitempty"`
	Arguments    []Argument        `json:"arguments,omitempty"`
	Extra        map[string]string `json:"-"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// CategoryOrDefault returns the record's category, or fallback when unset.
func (r *Record) CategoryOrDefault(fallback string) string {
	if r.Category == nil || *r.Category == "" {
		return fallback
	}
	return *r.Category
}

// LaunchMode controls how an external CLI is started inside a project.
type LaunchMode string

const (
	LaunchNormal LaunchMode = "normal"
	LaunchBypass LaunchMode = "bypass"
)

// Project is a registered working directory for the managed CLIs. Path is
// unique within the store. EnvironmentVariables holds raw KEY=VALUE lines.
type Project struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Path                 string     `json:"path"`
	Description          string     `json:"description,omitempty"`
	LaunchMode           LaunchMode `json:"launchMode"`
	EnvironmentVariables string     `json:"environmentVariables,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// SearchOptions specifies filtering and ordering for catalog searches.
type SearchOptions struct {
	Query     string
	Scope     string // "user", "project", or "all"
	Category  *string
	SortBy    string // "name", "createdAt", "updatedAt"
	SortOrder string // "asc" or "desc"
}

// Bundle is the versioned container used for import/export of a record set.
// Records are grouped per kind, matching the on-disk bundle schema.
type Bundle struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Prompts    []Record  `json:"prompts,omitempty"`
	Commands   []Record  `json:"commands,omitempty"`
}

// Records returns every record in the bundle, prompts first.
func (b *Bundle) Records() []Record {
	out := make([]Record, 0, len(b.Prompts)+len(b.Commands))
	out = append(out, b.Prompts...)
	out = append(out, b.Commands...)
	return out
}

// Add places rec into the per-kind group it belongs to.
func (b *Bundle) Add(rec Record) {
	if rec.Kind == KindCommand {
		b.Commands = append(b.Commands, rec)
		return
	}
	b.Prompts = append(b.Prompts, rec)
}

// BundleVersion is written to newly exported bundles. Imports accept both
// "1.0" and "1.0.0" era bundles.
const BundleVersion = "1.0.0"
