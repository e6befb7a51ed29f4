package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/database"
)

// ProjectService manages registered projects. Paths are unique; duplicates
// are rejected before insert.
type ProjectService struct {
	repo *database.ProjectRepository
}

// NewProjectService creates a ProjectService over the store.
func NewProjectService(store *database.Store) *ProjectService {
	return &ProjectService{repo: database.NewProjectRepository(store)}
}

// Create validates and registers a project.
func (s *ProjectService) Create(ctx context.Context, project catalog.Project) (catalog.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return catalog.Project{}, errors.New("project name is required")
	}
	if strings.TrimSpace(project.Path) == "" {
		return catalog.Project{}, errors.New("project path is required")
	}
	if project.LaunchMode != "" && project.LaunchMode != catalog.LaunchNormal && project.LaunchMode != catalog.LaunchBypass {
		return catalog.Project{}, fmt.Errorf("invalid launch mode: %s (valid values: normal, bypass)", project.LaunchMode)
	}
	return s.repo.Add(ctx, project)
}

// Update merges fields into an existing project.
func (s *ProjectService) Update(ctx context.Context, id string, update database.ProjectUpdate) (catalog.Project, error) {
	if update.LaunchMode != nil && *update.LaunchMode != catalog.LaunchNormal && *update.LaunchMode != catalog.LaunchBypass {
		return catalog.Project{}, fmt.Errorf("invalid launch mode: %s (valid values: normal, bypass)", *update.LaunchMode)
	}
	return s.repo.Update(ctx, id, update)
}

// Get returns the project with the given id, or database.ErrNotFound.
func (s *ProjectService) Get(ctx context.Context, id string) (*catalog.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, database.ErrNotFound
	}
	return project, nil
}

// GetByPath returns the project registered at path, or nil.
func (s *ProjectService) GetByPath(ctx context.Context, path string) (*catalog.Project, error) {
	return s.repo.FindByPath(ctx, path)
}

// List returns every registered project.
func (s *ProjectService) List(ctx context.Context) ([]catalog.Project, error) {
	return s.repo.GetAll(ctx)
}

// Delete removes a project registration; the working directory itself is
// untouched.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
