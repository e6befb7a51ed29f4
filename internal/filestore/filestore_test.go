package filestore

import (
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

func setupStore(t *testing.T) (*Store, *sysaccess.Memory) {
	t.Helper()
	sys := sysaccess.NewMemory()
	return New(sys), sys
}

func TestWriteThenList(t *testing.T) {
	store, _ := setupStore(t)

	rec := &catalog.Record{
		Kind:        catalog.KindPrompt,
		Name:        "deploy",
		Description: "ship it",
		Content:     "echo hi",
		Scope:       scope.User,
	}

	path, err := store.Write(rec, "/home/u/.claude/prompts")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != "/home/u/.claude/prompts/deploy.md" {
		t.Fatalf("unexpected path %q", path)
	}
	if rec.FilePath != path {
		t.Fatalf("FilePath not recorded on record: %q", rec.FilePath)
	}

	records, err := store.List("/home/u/.claude/prompts", scope.User)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.Name != "deploy" || got.Content != "echo hi" || got.Description != "ship it" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	if got.Scope != scope.User {
		t.Fatalf("expected user scope, got %s", got.Scope)
	}
}

func TestListMissingRootIsEmpty(t *testing.T) {
	store, _ := setupStore(t)

	records, err := store.List("/does/not/exist", scope.User)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestListRecursesAndSkipsNonMarkdown(t *testing.T) {
	store, sys := setupStore(t)

	if err := sys.MakeDirectory("/root/prompts/ops", true); err != nil {
		t.Fatalf("MakeDirectory failed: %v", err)
	}
	mustWrite(t, sys, "/root/prompts/a.md", "alpha body")
	mustWrite(t, sys, "/root/prompts/ops/b.md", "beta body")
	mustWrite(t, sys, "/root/prompts/notes.txt", "ignored")

	records, err := store.List("/root/prompts", scope.Project)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestListStampsStableIDPerScope(t *testing.T) {
	store, sys := setupStore(t)

	if err := sys.MakeDirectory("/u", true); err != nil {
		t.Fatal(err)
	}
	if err := sys.MakeDirectory("/p", true); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, sys, "/u/a.md", "body")
	mustWrite(t, sys, "/p/a.md", "body")

	user, err := store.List("/u", scope.User)
	if err != nil {
		t.Fatal(err)
	}
	project, err := store.List("/p", scope.Project)
	if err != nil {
		t.Fatal(err)
	}

	if user[0].ID == project[0].ID {
		t.Fatal("records with the same name in different scopes must not share an id")
	}

	again, err := store.List("/u", scope.User)
	if err != nil {
		t.Fatal(err)
	}
	if again[0].ID != user[0].ID {
		t.Fatal("re-scanning the same file must reproduce the same id")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := setupStore(t)

	rec := &catalog.Record{Kind: catalog.KindPrompt, Name: "gone", Content: "x"}
	if _, err := store.Write(rec, "/d"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if err := store.Delete(rec); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(rec); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"deploy", "deploy"},
		{"my prompt/v2", "my_prompt_v2"},
		{"部署脚本", "部署脚本"},
		{"fix-bug!", "fix_bug_"},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func mustWrite(t *testing.T, sys *sysaccess.Memory, path, body string) {
	t.Helper()
	if err := sys.WriteTextFile(path, body); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
