// Package scope defines the storage scopes a catalog record can live in.
package scope

import "fmt"

// Scope determines which root directory a file-backed record lives under.
type Scope string

const (
	// User records apply globally and live under the user's home namespace.
	User Scope = "user"
	// Project records are local to one working directory.
	Project Scope = "project"
)

// All is the pseudo-scope accepted by search filters.
const All = "all"

// Parse converts a string into a Scope, rejecting unknown values.
func Parse(value string) (Scope, error) {
	switch Scope(value) {
	case User, Project:
		return Scope(value), nil
	default:
		return "", fmt.Errorf("invalid scope: %s (valid values: user, project)", value)
	}
}

// ParseFilter accepts the values valid in a search filter: user, project,
// all, or empty (treated as all).
func ParseFilter(value string) (string, error) {
	switch value {
	case "", All:
		return All, nil
	case string(User), string(Project):
		return value, nil
	default:
		return "", fmt.Errorf("invalid scope filter: %s (valid values: user, project, all)", value)
	}
}

// Validate reports whether s is one of the known scopes.
func Validate(s Scope) error {
	switch s {
	case User, Project:
		return nil
	default:
		return fmt.Errorf("invalid scope: %s", s)
	}
}
