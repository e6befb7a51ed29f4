package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(":memory:")
	if err := store.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("Close error: %v", err)
		}
	})
	return store
}

func TestRecordAddAssignsIdentity(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewRecordRepository(store, catalog.KindPrompt)

	rec, err := repo.Add(ctx, catalog.Record{
		Name:    "deploy",
		Content: "echo hi",
		Scope:   scope.User,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Add must assign an id")
	}
	if !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("createdAt and updatedAt must match on creation: %v vs %v", rec.CreatedAt, rec.UpdatedAt)
	}

	got, err := repo.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Name != "deploy" || got.Content != "echo hi" {
		t.Fatalf("unexpected record: %#v", got)
	}
}

func TestRecordUpdatePreservesIdentity(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewRecordRepository(store, catalog.KindPrompt)

	rec, err := repo.Add(ctx, catalog.Record{Name: "a", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	name := "renamed"
	updated, err := repo.Update(ctx, rec.ID, RecordUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != rec.ID {
		t.Fatalf("id changed on update: %s -> %s", rec.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatal("createdAt changed on update")
	}
	if updated.UpdatedAt.Before(rec.UpdatedAt) {
		t.Fatal("updatedAt went backwards")
	}
	if updated.Name != "renamed" || updated.Content != "c" {
		t.Fatalf("merge wrong: %#v", updated)
	}
}

func TestRecordUpdateMissingIsNotFound(t *testing.T) {
	store := setupStore(t)
	repo := NewRecordRepository(store, catalog.KindPrompt)

	name := "x"
	if _, err := repo.Update(context.Background(), "no-such-id", RecordUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordDeleteIsIdempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewRecordRepository(store, catalog.KindPrompt)

	rec, err := repo.Add(ctx, catalog.Record{Name: "gone", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("second Delete should not error: %v", err)
	}

	got, err := repo.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("record still present after delete: %#v", got)
	}
}

func TestRecordCategoryAbsentVsEmpty(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewRecordRepository(store, catalog.KindPrompt)

	empty := ""
	withEmpty, err := repo.Add(ctx, catalog.Record{Name: "e", Content: "c", Scope: scope.User, Category: &empty})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	without, err := repo.Add(ctx, catalog.Record{Name: "n", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	gotEmpty, err := repo.Get(ctx, withEmpty.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotEmpty.Category == nil || *gotEmpty.Category != "" {
		t.Fatalf("empty-string category lost: %#v", gotEmpty.Category)
	}

	gotNone, err := repo.Get(ctx, without.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotNone.Category != nil {
		t.Fatalf("absent category should stay absent, got %q", *gotNone.Category)
	}
}

func TestRecordFindByNameScope(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewRecordRepository(store, catalog.KindPrompt)

	// Same name in both scopes must coexist; scope is part of the key.
	if _, err := repo.Add(ctx, catalog.Record{Name: "a", Content: "u", Scope: scope.User}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := repo.Add(ctx, catalog.Record{Name: "a", Content: "p", Scope: scope.Project}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	user, err := repo.FindByNameScope(ctx, "a", scope.User)
	if err != nil {
		t.Fatalf("FindByNameScope failed: %v", err)
	}
	if user == nil || user.Content != "u" {
		t.Fatalf("wrong user record: %#v", user)
	}

	project, err := repo.FindByNameScope(ctx, "a", scope.Project)
	if err != nil {
		t.Fatalf("FindByNameScope failed: %v", err)
	}
	if project == nil || project.Content != "p" {
		t.Fatalf("wrong project record: %#v", project)
	}

	missing, err := repo.FindByNameScope(ctx, "zzz", scope.User)
	if err != nil {
		t.Fatalf("FindByNameScope failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing record, got %#v", missing)
	}
}

func TestRecordKindsAreSeparateCollections(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	prompts := NewRecordRepository(store, catalog.KindPrompt)
	commands := NewRecordRepository(store, catalog.KindCommand)

	if _, err := prompts.Add(ctx, catalog.Record{Name: "shared", Content: "p", Scope: scope.User}); err != nil {
		t.Fatal(err)
	}
	if _, err := commands.Add(ctx, catalog.Record{Name: "shared", Content: "c", Scope: scope.User}); err != nil {
		t.Fatal(err)
	}

	got, err := prompts.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Kind != catalog.KindPrompt {
		t.Fatalf("prompt collection polluted: %#v", got)
	}
}

func TestProjectPathUniqueness(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewProjectRepository(store)

	first, err := repo.Add(ctx, catalog.Project{Name: "app", Path: "/work/app"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if first.LaunchMode != catalog.LaunchNormal {
		t.Fatalf("default launch mode should be normal, got %s", first.LaunchMode)
	}

	if _, err := repo.Add(ctx, catalog.Project{Name: "other", Path: "/work/app"}); !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("expected ErrDuplicatePath, got %v", err)
	}

	second, err := repo.Add(ctx, catalog.Project{Name: "api", Path: "/work/api"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	path := "/work/app"
	if _, err := repo.Update(ctx, second.ID, ProjectUpdate{Path: &path}); !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("expected ErrDuplicatePath on update, got %v", err)
	}
}

func TestProjectUpdateAndDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewProjectRepository(store)

	project, err := repo.Add(ctx, catalog.Project{Name: "app", Path: "/work/app", EnvironmentVariables: "A=1"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	mode := catalog.LaunchBypass
	updated, err := repo.Update(ctx, project.ID, ProjectUpdate{LaunchMode: &mode})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.LaunchMode != catalog.LaunchBypass || updated.EnvironmentVariables != "A=1" {
		t.Fatalf("merge wrong: %#v", updated)
	}

	if err := repo.Delete(ctx, project.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, project.ID); err != nil {
		t.Fatalf("second Delete should not error: %v", err)
	}
}

func TestRecordGetFailsOnCorruptTimestamp(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := NewRecordRepository(store, catalog.KindPrompt)

	rec, err := repo.Add(ctx, catalog.Record{Name: "deploy", Content: "c", Scope: scope.User})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	dbCtx, err := store.context()
	if err != nil {
		t.Fatalf("context error: %v", err)
	}
	if _, err := dbCtx.DB.Exec("UPDATE records SET updated_at = 'yesterday' WHERE id = ?", rec.ID); err != nil {
		t.Fatalf("corrupting row failed: %v", err)
	}

	if _, err := repo.Get(ctx, rec.ID); err == nil {
		t.Fatal("expected an error for an unparseable timestamp")
	} else if !strings.Contains(err.Error(), rec.ID) {
		t.Fatalf("error should name the offending record: %v", err)
	}
}
