package sqldb

import "database/sql"

// Record mirrors a row of the records table. JSON-encoded columns
// (allowed_tools, arguments) and RFC 3339 timestamps are decoded by the
// database package's mapping layer.
type Record struct {
	ID           string
	Kind         string
	Name         string
	Description  string
	Content      string
	Scope        string
	Category     sql.NullString
	FilePath     string
	AllowedTools string
	Arguments    string
	CreatedAt    string
	UpdatedAt    string
}

// Project mirrors a row of the projects table.
type Project struct {
	ID                   string
	Name                 string
	Path                 string
	Description          string
	LaunchMode           string
	EnvironmentVariables string
	CreatedAt            string
	UpdatedAt            string
}
