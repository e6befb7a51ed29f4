package services

import (
	"context"
	"errors"
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

func setupCatalog(t *testing.T) (*CatalogService, *sysaccess.Memory) {
	t.Helper()
	store := database.NewStore(":memory:")
	if err := store.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("Close error: %v", err)
		}
	})

	sys := sysaccess.NewMemory()
	roots := Roots{User: "/home/.claude/prompts", Project: "/proj/.claude/prompts"}
	svc := NewCatalogService(store, filestore.New(sys), catalog.KindPrompt, roots)
	return svc, sys
}

func TestCreateMirrorsToFile(t *testing.T) {
	svc, sys := setupCatalog(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, catalog.Record{
		Name:    "deploy",
		Content: "echo hi",
		Scope:   scope.User,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.FilePath != "/home/.claude/prompts/deploy.md" {
		t.Fatalf("unexpected file path %q", rec.FilePath)
	}

	if _, err := sys.ReadTextFile(rec.FilePath); err != nil {
		t.Fatalf("backing file missing: %v", err)
	}
}

func TestUpdateRelocatesOnRename(t *testing.T) {
	svc, sys := setupCatalog(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, catalog.Record{Name: "old", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	oldPath := rec.FilePath

	name := "new"
	updated, err := svc.Update(ctx, rec.ID, database.RecordUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != rec.ID {
		t.Fatal("update must preserve the id")
	}
	if updated.FilePath == oldPath {
		t.Fatalf("rename should relocate the file, still at %q", oldPath)
	}

	if exists, _ := sys.PathExists(oldPath); exists {
		t.Fatal("old backing file should be removed")
	}
	if exists, _ := sys.PathExists(updated.FilePath); !exists {
		t.Fatal("new backing file should exist")
	}
}

func TestUpdateRelocatesOnScopeChange(t *testing.T) {
	svc, sys := setupCatalog(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, catalog.Record{Name: "move", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	target := scope.Project
	updated, err := svc.Update(ctx, rec.ID, database.RecordUpdate{Scope: &target})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.FilePath != "/proj/.claude/prompts/move.md" {
		t.Fatalf("expected relocation to project root, got %q", updated.FilePath)
	}
	if exists, _ := sys.PathExists("/home/.claude/prompts/move.md"); exists {
		t.Fatal("user-scope file should be removed after scope change")
	}
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	svc, sys := setupCatalog(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, catalog.Record{Name: "bye", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if exists, _ := sys.PathExists(rec.FilePath); exists {
		t.Fatal("backing file should be gone")
	}
}

func TestDeleteSurfacesFileCleanupFailure(t *testing.T) {
	svc, sys := setupCatalog(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, catalog.Record{Name: "stuck", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sys.FailRemoves = true
	err = svc.Delete(ctx, rec.ID)

	var cleanup *FileCleanupError
	if !errors.As(err, &cleanup) {
		t.Fatalf("expected FileCleanupError, got %v", err)
	}

	// The row must be gone even though the file removal failed.
	if _, err := svc.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("row should be deleted despite file failure, got %v", err)
	}
}

func TestSearchOverWorkingSet(t *testing.T) {
	svc, _ := setupCatalog(t)
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta"} {
		if _, err := svc.Create(ctx, catalog.Record{Name: name, Content: "x", Scope: scope.User}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := svc.Search(ctx, catalog.SearchOptions{Query: "alp"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "alpha" {
		t.Fatalf("unexpected search result: %#v", got)
	}
}
