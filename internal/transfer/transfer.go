// Package transfer converts record sets to and from portable bundles: a JSON
// container, single Markdown files, folders of Markdown files, and zip
// archives. Imports reconcile against the store by (name, scope).
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/promptfile"
	"github.com/promptdeck/promptdeck/internal/scope"
)

// ImportFailure records one record that could not be imported.
type ImportFailure struct {
	Name string
	Err  error
}

// PartialImportError reports the records that failed during a batch import.
// The batch itself is not aborted; successes are returned alongside.
type PartialImportError struct {
	Failures []ImportFailure
}

func (e *PartialImportError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Name
	}
	return fmt.Sprintf("transfer: %d record(s) failed to import: %s", len(e.Failures), strings.Join(names, ", "))
}

// Engine performs import and export against the catalog store.
type Engine struct {
	store *database.Store
	files *filestore.Store
}

// NewEngine creates an Engine over the store. The file store is used only
// for folder imports.
func NewEngine(store *database.Store, files *filestore.Store) *Engine {
	return &Engine{store: store, files: files}
}

// Export builds a bundle from records. When selectedIDs is non-nil only the
// records whose id appears in it are included.
func Export(records []catalog.Record, selectedIDs []string) catalog.Bundle {
	bundle := catalog.Bundle{
		Version:    catalog.BundleVersion,
		ExportDate: time.Now().UTC(),
	}

	var selected map[string]bool
	if selectedIDs != nil {
		selected = make(map[string]bool, len(selectedIDs))
		for _, id := range selectedIDs {
			selected[id] = true
		}
	}

	for _, rec := range records {
		if selected != nil && !selected[rec.ID] {
			continue
		}
		bundle.Add(rec)
	}
	return bundle
}

// MarshalBundle renders a bundle as indented JSON.
func MarshalBundle(bundle catalog.Bundle) ([]byte, error) {
	return json.MarshalIndent(bundle, "", "  ")
}

// UnmarshalBundle parses bundle JSON. Both "1.0" and "1.0.0" era bundles are
// accepted; anything else is rejected.
func UnmarshalBundle(data []byte) (catalog.Bundle, error) {
	var bundle catalog.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return catalog.Bundle{}, fmt.Errorf("transfer: invalid bundle: %w", err)
	}
	switch bundle.Version {
	case "1.0", "1.0.0":
	default:
		return catalog.Bundle{}, fmt.Errorf("transfer: unsupported bundle version %q", bundle.Version)
	}
	return bundle, nil
}

// Import reconciles every bundle record into the store. An incoming record
// matching an existing (name, scope) updates it in place and keeps the
// existing id; otherwise it is inserted with a fresh id and timestamps,
// discarding whatever identity the bundle carried. Per-record failures do
// not abort the batch: the successfully imported records are returned, with
// a PartialImportError describing the rest.
func (e *Engine) Import(ctx context.Context, bundle catalog.Bundle) ([]catalog.Record, error) {
	var (
		imported []catalog.Record
		failures []ImportFailure
	)

	importGroup := func(records []catalog.Record, kind catalog.Kind) {
		for _, rec := range records {
			rec.Kind = kind
			stored, err := e.importOne(ctx, rec)
			if err != nil {
				failures = append(failures, ImportFailure{Name: rec.Name, Err: err})
				continue
			}
			imported = append(imported, stored)
		}
	}
	importGroup(bundle.Prompts, catalog.KindPrompt)
	importGroup(bundle.Commands, catalog.KindCommand)

	if len(failures) > 0 {
		return imported, &PartialImportError{Failures: failures}
	}
	return imported, nil
}

func (e *Engine) importOne(ctx context.Context, rec catalog.Record) (catalog.Record, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return catalog.Record{}, fmt.Errorf("record has no name")
	}
	if err := scope.Validate(rec.Scope); err != nil {
		return catalog.Record{}, err
	}
	repo := database.NewRecordRepository(e.store, rec.Kind)

	existing, err := repo.FindByNameScope(ctx, rec.Name, rec.Scope)
	if err != nil {
		return catalog.Record{}, err
	}

	if existing == nil {
		rec.ID = ""
		rec.CreatedAt = time.Time{}
		rec.UpdatedAt = time.Time{}
		return repo.Add(ctx, rec)
	}

	if fieldsEqual(*existing, rec) {
		return *existing, nil
	}

	update := database.RecordUpdate{
		Description:  &rec.Description,
		Content:      &rec.Content,
		AllowedTools: rec.AllowedTools,
		Arguments:    rec.Arguments,
	}
	if rec.AllowedTools == nil {
		update.AllowedTools = []string{}
	}
	if rec.Arguments == nil {
		update.Arguments = []catalog.Argument{}
	}
	if rec.Category != nil {
		update.Category = rec.Category
	} else {
		update.ClearCategory = true
	}

	// The existing id is preserved; the incoming one is never adopted.
	return repo.Update(ctx, existing.ID, update)
}

// fieldsEqual reports whether an import would change nothing, which makes
// re-importing an exported bundle a no-op.
func fieldsEqual(existing, incoming catalog.Record) bool {
	if existing.Description != incoming.Description || existing.Content != incoming.Content {
		return false
	}
	if (existing.Category == nil) != (incoming.Category == nil) {
		return false
	}
	if existing.Category != nil && *existing.Category != *incoming.Category {
		return false
	}
	if !stringsEqual(existing.AllowedTools, incoming.AllowedTools) {
		return false
	}
	return reflect.DeepEqual(normalizeArgs(existing.Arguments), normalizeArgs(incoming.Arguments))
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func normalizeArgs(args []catalog.Argument) []catalog.Argument {
	if len(args) == 0 {
		return nil
	}
	return args
}

// ImportMarkdown wraps a single bare Markdown file into a one-record bundle
// and imports it. The record is named after the file, scoped to user.
func (e *Engine) ImportMarkdown(ctx context.Context, text, fileName string) ([]catalog.Record, error) {
	rec, err := promptfile.Decode(text, fileName, "")
	if err != nil {
		return nil, err
	}

	bundle := catalog.Bundle{Version: catalog.BundleVersion, ExportDate: time.Now().UTC()}
	bundle.Add(*rec)
	return e.Import(ctx, bundle)
}

// ImportFolder scans a directory of Markdown files through the file store
// and imports every record found, stamped with the given scope.
func (e *Engine) ImportFolder(ctx context.Context, root string, sc scope.Scope) ([]catalog.Record, error) {
	records, err := e.files.List(root, sc)
	if err != nil {
		return nil, err
	}

	bundle := catalog.Bundle{Version: catalog.BundleVersion, ExportDate: time.Now().UTC()}
	for _, rec := range records {
		bundle.Add(rec)
	}
	return e.Import(ctx, bundle)
}
