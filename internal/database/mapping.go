package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/promptdeck/promptdeck/internal/catalog"
	sqldb "github.com/promptdeck/promptdeck/internal/database/sqlc"
	"github.com/promptdeck/promptdeck/internal/scope"
)

// Timestamps are stored as RFC 3339 text so that lexical index order matches
// chronological order.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func decodeStrings(text string) []string {
	if text == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(text), &values); err != nil {
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func encodeArguments(args []catalog.Argument) string {
	if args == nil {
		args = []catalog.Argument{}
	}
	data, _ := json.Marshal(args)
	return string(data)
}

func decodeArguments(text string) []catalog.Argument {
	if text == "" {
		return nil
	}
	var args []catalog.Argument
	if err := json.Unmarshal([]byte(text), &args); err != nil {
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	return args
}

func categoryToNull(category *string) sql.NullString {
	if category == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *category, Valid: true}
}

func categoryFromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	value := ns.String
	return &value
}

func recordFromRow(row sqldb.Record) (catalog.Record, error) {
	sc, err := scope.Parse(row.Scope)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("record %s: %w", row.ID, err)
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("record %s: %w", row.ID, err)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("record %s: %w", row.ID, err)
	}

	return catalog.Record{
		ID:           row.ID,
		Kind:         catalog.Kind(row.Kind),
		Name:         row.Name,
		Description:  row.Description,
		Content:      row.Content,
		Scope:        sc,
		Category:     categoryFromNull(row.Category),
		FilePath:     row.FilePath,
		AllowedTools: decodeStrings(row.AllowedTools),
		Arguments:    decodeArguments(row.Arguments),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func projectFromRow(row sqldb.Project) (catalog.Project, error) {
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return catalog.Project{}, fmt.Errorf("project %s: %w", row.ID, err)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return catalog.Project{}, fmt.Errorf("project %s: %w", row.ID, err)
	}

	return catalog.Project{
		ID:                   row.ID,
		Name:                 row.Name,
		Path:                 row.Path,
		Description:          row.Description,
		LaunchMode:           catalog.LaunchMode(row.LaunchMode),
		EnvironmentVariables: row.EnvironmentVariables,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}, nil
}
