// Package mcp exposes the prompt catalog to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/services"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

// Server wraps the MCP server with catalog-specific functionality.
type Server struct {
	server *mcp.Server
	store  *database.Store
	deck   *services.CatalogService
}

// NewServer creates an MCP server over the catalog database. Records are
// mirrored into the claude namespace, project scope resolving against the
// current working directory.
func NewServer() (*Server, error) {
	store := database.NewStore("")
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}
	roots := services.Roots{
		User:    config.PromptsDir(config.ToolClaude, scope.User, ""),
		Project: config.PromptsDir(config.ToolClaude, scope.Project, workingDir),
	}

	files := filestore.New(sysaccess.NewOS())
	deck := services.NewCatalogService(store, files, catalog.KindPrompt, roots)

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "promptdeck",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		server: mcpServer,
		store:  store,
		deck:   deck,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	defer s.store.Close()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	// deck_set
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deck_set",
		Description: "Create or update a prompt in the catalog",
	}, s.handleSet)

	// deck_get
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deck_get",
		Description: "Retrieve a prompt's content by name",
	}, s.handleGet)

	// deck_list
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deck_list",
		Description: "List prompts in the catalog",
	}, s.handleList)

	// deck_search
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deck_search",
		Description: "Search prompts by text, scope, and category",
	}, s.handleSearch)

	// deck_delete
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deck_delete",
		Description: "Delete a prompt from the catalog",
	}, s.handleDelete)
}

// Input/Output types for each tool

type SetInput struct {
	Name        string  `json:"name" jsonschema:"required,description=The prompt name"`
	Content     string  `json:"content" jsonschema:"required,description=The prompt content"`
	Description *string `json:"description,omitempty" jsonschema:"description=Optional description"`
	Category    *string `json:"category,omitempty" jsonschema:"description=Optional category"`
	Scope       *string `json:"scope,omitempty" jsonschema:"enum=user;project,description=Scope (user if not specified)"`
}

type SetOutput struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Path    string `json:"path,omitempty"`
}

type GetInput struct {
	Name  string  `json:"name" jsonschema:"required,description=The prompt name"`
	Scope *string `json:"scope,omitempty" jsonschema:"enum=user;project,description=Scope (user if not specified)"`
}

type GetOutput struct {
	Content string `json:"content"`
}

type ListInput struct {
	Scope *string `json:"scope,omitempty" jsonschema:"enum=user;project;all,description=Scope filter (all if not specified)"`
}

type ListOutput struct {
	Prompts []ListEntry `json:"prompts"`
}

type ListEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Scope       string `json:"scope"`
	Category    string `json:"category,omitempty"`
	UpdatedAt   string `json:"updatedAt"`
}

type SearchInput struct {
	Query     string  `json:"query,omitempty" jsonschema:"description=Text matched against name, description and content"`
	Scope     *string `json:"scope,omitempty" jsonschema:"enum=user;project;all,description=Scope filter (all if not specified)"`
	Category  *string `json:"category,omitempty" jsonschema:"description=Category filter (empty string matches prompts without a category)"`
	SortBy    *string `json:"sortBy,omitempty" jsonschema:"enum=name;createdAt;updatedAt,description=Sort key (updatedAt if not specified)"`
	SortOrder *string `json:"sortOrder,omitempty" jsonschema:"enum=asc;desc,description=Sort direction"`
}

type SearchOutput struct {
	Prompts []ListEntry `json:"prompts"`
}

type DeleteInput struct {
	Name  string  `json:"name" jsonschema:"required,description=The prompt name to delete"`
	Scope *string `json:"scope,omitempty" jsonschema:"enum=user;project,description=Scope (user if not specified)"`
}

type DeleteOutput struct {
	Message string `json:"message"`
}

func scopeFromInput(value *string) (scope.Scope, error) {
	if value == nil || *value == "" {
		return scope.User, nil
	}
	return scope.Parse(*value)
}

// Tool handlers

func (s *Server) handleSet(ctx context.Context, req *mcp.CallToolRequest, input SetInput) (*mcp.CallToolResult, SetOutput, error) {
	sc, err := scopeFromInput(input.Scope)
	if err != nil {
		return nil, SetOutput{}, err
	}

	existing, err := s.deck.FindByNameScope(ctx, input.Name, sc)
	if err != nil {
		return nil, SetOutput{}, fmt.Errorf("failed to look up prompt: %w", err)
	}

	if existing != nil {
		update := database.RecordUpdate{Content: &input.Content}
		if input.Description != nil {
			update.Description = input.Description
		}
		if input.Category != nil {
			update.Category = input.Category
		}
		rec, err := s.deck.Update(ctx, existing.ID, update)
		if err != nil {
			return nil, SetOutput{}, fmt.Errorf("failed to update prompt: %w", err)
		}
		return nil, SetOutput{
			Message: fmt.Sprintf("Updated prompt '%s'", rec.Name),
			ID:      rec.ID,
			Path:    rec.FilePath,
		}, nil
	}

	rec := catalog.Record{
		Name:    input.Name,
		Content: input.Content,
		Scope:   sc,
	}
	if input.Description != nil {
		rec.Description = *input.Description
	}
	if input.Category != nil {
		rec.Category = input.Category
	}

	created, err := s.deck.Create(ctx, rec)
	if err != nil {
		return nil, SetOutput{}, fmt.Errorf("failed to create prompt: %w", err)
	}

	return nil, SetOutput{
		Message: fmt.Sprintf("Created prompt '%s'", created.Name),
		ID:      created.ID,
		Path:    created.FilePath,
	}, nil
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetOutput, error) {
	sc, err := scopeFromInput(input.Scope)
	if err != nil {
		return nil, GetOutput{}, err
	}

	rec, err := s.deck.FindByNameScope(ctx, input.Name, sc)
	if err != nil {
		return nil, GetOutput{}, fmt.Errorf("failed to get prompt: %w", err)
	}
	if rec == nil {
		return nil, GetOutput{}, fmt.Errorf("prompt not found: %s", input.Name)
	}

	return nil, GetOutput{Content: rec.Content}, nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	opts := catalog.SearchOptions{Scope: scope.All}
	if input.Scope != nil {
		opts.Scope = *input.Scope
	}

	records, err := s.deck.Search(ctx, opts)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("failed to list prompts: %w", err)
	}

	return nil, ListOutput{Prompts: listEntries(records)}, nil
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	opts := catalog.SearchOptions{
		Query:    input.Query,
		Scope:    scope.All,
		Category: input.Category,
	}
	if input.Scope != nil {
		opts.Scope = *input.Scope
	}
	if input.SortBy != nil {
		opts.SortBy = *input.SortBy
	}
	if input.SortOrder != nil {
		opts.SortOrder = *input.SortOrder
	}

	records, err := s.deck.Search(ctx, opts)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to search prompts: %w", err)
	}

	return nil, SearchOutput{Prompts: listEntries(records)}, nil
}

func (s *Server) handleDelete(ctx context.Context, req *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	sc, err := scopeFromInput(input.Scope)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	rec, err := s.deck.FindByNameScope(ctx, input.Name, sc)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to look up prompt: %w", err)
	}
	if rec == nil {
		return nil, DeleteOutput{}, fmt.Errorf("prompt not found: %s", input.Name)
	}

	if err := s.deck.Delete(ctx, rec.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete prompt: %w", err)
	}

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted prompt '%s'", rec.Name),
	}, nil
}

func listEntries(records []catalog.Record) []ListEntry {
	entries := make([]ListEntry, 0, len(records))
	for _, rec := range records {
		entry := ListEntry{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Scope:       string(rec.Scope),
			UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
		}
		if rec.Category != nil {
			entry.Category = *rec.Category
		}
		entries = append(entries, entry)
	}
	return entries
}
