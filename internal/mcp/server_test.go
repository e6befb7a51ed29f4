package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/services"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

func setupServer(t *testing.T) *Server {
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

	files := filestore.New(sysaccess.NewMemory())
	roots := services.Roots{
		User:    "/home/.claude/prompts",
		Project: "/proj/.claude/prompts",
	}
	return &Server{
		store: store,
		deck:  services.NewCatalogService(store, files, catalog.KindPrompt, roots),
	}
}

func TestHandleSetCreatesThenUpdates(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, created, err := s.handleSet(ctx, nil, SetInput{Name: "deploy", Content: "v1"})
	if err != nil {
		t.Fatalf("handleSet failed: %v", err)
	}
	if created.ID == "" || !strings.HasPrefix(created.Message, "Created") {
		t.Fatalf("unexpected output: %#v", created)
	}

	_, updated, err := s.handleSet(ctx, nil, SetInput{Name: "deploy", Content: "v2"})
	if err != nil {
		t.Fatalf("handleSet failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update must keep the id: %q vs %q", updated.ID, created.ID)
	}
	if !strings.HasPrefix(updated.Message, "Updated") {
		t.Fatalf("unexpected message %q", updated.Message)
	}

	_, got, err := s.handleGet(ctx, nil, GetInput{Name: "deploy"})
	if err != nil {
		t.Fatalf("handleGet failed: %v", err)
	}
	if got.Content != "v2" {
		t.Fatalf("unexpected content %q", got.Content)
	}
}

func TestHandleGetMissingPrompt(t *testing.T) {
	s := setupServer(t)

	if _, _, err := s.handleGet(context.Background(), nil, GetInput{Name: "missing"}); err == nil {
		t.Fatal("missing prompt must be an error")
	}
}

func TestHandleSearchFilters(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	for _, name := range []string{"deploy-api", "review-code"} {
		if _, _, err := s.handleSet(ctx, nil, SetInput{Name: name, Content: name}); err != nil {
			t.Fatalf("handleSet failed: %v", err)
		}
	}

	_, out, err := s.handleSearch(ctx, nil, SearchInput{Query: "deploy"})
	if err != nil {
		t.Fatalf("handleSearch failed: %v", err)
	}
	if len(out.Prompts) != 1 || out.Prompts[0].Name != "deploy-api" {
		t.Fatalf("unexpected search result: %#v", out.Prompts)
	}

	_, all, err := s.handleList(ctx, nil, ListInput{})
	if err != nil {
		t.Fatalf("handleList failed: %v", err)
	}
	if len(all.Prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(all.Prompts))
	}
}

func TestHandleDelete(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	if _, _, err := s.handleSet(ctx, nil, SetInput{Name: "deploy", Content: "x"}); err != nil {
		t.Fatalf("handleSet failed: %v", err)
	}

	if _, _, err := s.handleDelete(ctx, nil, DeleteInput{Name: "deploy"}); err != nil {
		t.Fatalf("handleDelete failed: %v", err)
	}

	if _, _, err := s.handleGet(ctx, nil, GetInput{Name: "deploy"}); err == nil {
		t.Fatal("deleted prompt must not resolve")
	}
}
