// Package syncer reconciles file-backed records with the catalog database
// and produces the unified working set.
package syncer

import (
	"context"
	"fmt"
	"log"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/scope"
)

// Root is one directory the synchronizer scans, together with the scope its
// records belong to.
type Root struct {
	Path  string
	Scope scope.Scope
}

// Syncer merges the file stores' knowledge into the database. The database
// is the final source of truth for what callers see.
type Syncer struct {
	store *database.Store
	files *filestore.Store
	kind  catalog.Kind
	roots []Root
}

// New builds a Syncer for one record kind over the given roots.
func New(store *database.Store, files *filestore.Store, kind catalog.Kind, roots []Root) *Syncer {
	return &Syncer{store: store, files: files, kind: kind, roots: roots}
}

// Sync loads records from every root, inserts the ones the database has not
// seen (matched by their deterministic id, with a (name, scope) fallback, so
// re-scanning never inserts twice), and returns the database's full contents. A database that cannot
// be initialized is fatal; unreadable roots and files are skipped.
func (s *Syncer) Sync(ctx context.Context) ([]catalog.Record, error) {
	if err := s.store.Init(); err != nil {
		return nil, fmt.Errorf("syncer: database init: %w", err)
	}

	repo := database.NewRecordRepository(s.store, s.kind)

	for _, root := range s.roots {
		records, err := s.files.List(root.Path, root.Scope)
		if err != nil {
			log.Printf("syncer: skipping root %s: %v", root.Path, err)
			continue
		}

		for _, rec := range records {
			rec.Kind = s.kind
			rec.ID = catalog.StableID(s.kind, rec.Scope, rec.Name)

			existing, err := repo.Get(ctx, rec.ID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				continue
			}

			// Records created through CatalogService carry a random id,
			// not the deterministic one, so the id lookup misses even
			// though the row is already there. Match on (name, scope)
			// before inserting so a scan never duplicates such a row.
			byName, err := repo.FindByNameScope(ctx, rec.Name, rec.Scope)
			if err != nil {
				return nil, err
			}
			if byName != nil {
				continue
			}

			if _, err := repo.Add(ctx, rec); err != nil {
				return nil, err
			}
		}
	}

	return repo.GetAll(ctx)
}
