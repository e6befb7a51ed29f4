// Package services exposes high-level catalog operations that keep the
// database and the file-backed representation in step.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/search"
)

// ErrNotFound is returned when a requested record is not found.
var ErrNotFound = errors.New("record not found")

// FileCleanupError reports that a record's database row was removed but its
// backing file could not be. There is no compensating transaction; the
// caller surfaces this as a warning.
type FileCleanupError struct {
	Path string
	Err  error
}

func (e *FileCleanupError) Error() string {
	return fmt.Sprintf("failed to delete backing file %s: %v", e.Path, e.Err)
}

func (e *FileCleanupError) Unwrap() error { return e.Err }

// Roots maps each scope to the prompts directory where its file-backed
// records live.
type Roots struct {
	User    string
	Project string
}

// Dir returns the directory for the given scope.
func (r Roots) Dir(sc scope.Scope) string {
	if sc == scope.Project {
		return r.Project
	}
	return r.User
}

// CatalogService is the mutation path for one record kind: every write goes
// to the database and is mirrored through the file store.
type CatalogService struct {
	repo  *database.RecordRepository
	files *filestore.Store
	roots Roots
}

// NewCatalogService creates a CatalogService for the given kind.
func NewCatalogService(store *database.Store, files *filestore.Store, kind catalog.Kind, roots Roots) *CatalogService {
	return &CatalogService{
		repo:  database.NewRecordRepository(store, kind),
		files: files,
		roots: roots,
	}
}

// Create persists rec and writes its backing file. The stored record,
// including the written file path, is returned.
func (s *CatalogService) Create(ctx context.Context, rec catalog.Record) (catalog.Record, error) {
	stored, err := s.repo.Add(ctx, rec)
	if err != nil {
		return catalog.Record{}, err
	}

	path, err := s.files.Write(&stored, s.roots.Dir(stored.Scope))
	if err != nil {
		return catalog.Record{}, err
	}

	return s.repo.Update(ctx, stored.ID, database.RecordUpdate{FilePath: &path})
}

// Update merges fields into the record and rewrites its backing file. A
// rename or a scope change relocates the file: the old one is removed and a
// new one written under the target directory.
func (s *CatalogService) Update(ctx context.Context, id string, update database.RecordUpdate) (catalog.Record, error) {
	before, err := s.repo.Get(ctx, id)
	if err != nil {
		return catalog.Record{}, err
	}
	if before == nil {
		return catalog.Record{}, ErrNotFound
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return catalog.Record{}, err
	}

	relocated := updated.Name != before.Name || updated.Scope != before.Scope
	if relocated {
		if err := s.files.Delete(before); err != nil {
			return catalog.Record{}, err
		}
	}

	path, err := s.files.Write(&updated, s.roots.Dir(updated.Scope))
	if err != nil {
		return catalog.Record{}, err
	}
	if path != updated.FilePath {
		return s.repo.Update(ctx, id, database.RecordUpdate{FilePath: &path})
	}
	return updated, nil
}

// Delete removes the database row and the backing file. Both sub-operations
// are attempted; a file that cannot be removed after the row is gone is
// reported as a FileCleanupError, not rolled back.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}

	rowErr := s.repo.Delete(ctx, id)

	var fileErr error
	if err := s.files.Delete(rec); err != nil {
		fileErr = &FileCleanupError{Path: rec.FilePath, Err: err}
	}

	if rowErr != nil {
		rowErr = fmt.Errorf("failed to delete record: %w", rowErr)
	}
	return errors.Join(rowErr, fileErr)
}

// Get returns the record with the given id, or ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, id string) (*catalog.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// List returns the full working set in storage order.
func (s *CatalogService) List(ctx context.Context) ([]catalog.Record, error) {
	return s.repo.GetAll(ctx)
}

// Search returns the working set filtered and ordered per opts.
func (s *CatalogService) Search(ctx context.Context, opts catalog.SearchOptions) ([]catalog.Record, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.Search(records, opts), nil
}

// FindByNameScope looks a record up by its import identity key.
func (s *CatalogService) FindByNameScope(ctx context.Context, name string, sc scope.Scope) (*catalog.Record, error) {
	return s.repo.FindByNameScope(ctx, name, sc)
}

// Repository exposes the underlying per-kind repository for callers that
// need raw access (import reconciliation, sync).
func (s *CatalogService) Repository() *database.RecordRepository {
	return s.repo
}
