package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/promptdeck/promptdeck/internal/catalog"
	sqldb "github.com/promptdeck/promptdeck/internal/database/sqlc"
)

// ProjectRepository is the collection of registered projects. Project paths
// are unique; Add rejects collisions before insert.
type ProjectRepository struct {
	store *Store
}

// NewProjectRepository returns the projects repository.
func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

// Add persists project with a fresh id and timestamps. Returns
// ErrDuplicatePath when the path is already registered.
func (r *ProjectRepository) Add(ctx context.Context, project catalog.Project) (catalog.Project, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return catalog.Project{}, err
	}

	existing, err := r.FindByPath(ctx, project.Path)
	if err != nil {
		return catalog.Project{}, err
	}
	if existing != nil {
		return catalog.Project{}, ErrDuplicatePath
	}

	if project.ID == "" {
		project.ID = catalog.NewID()
	}
	if project.LaunchMode == "" {
		project.LaunchMode = catalog.LaunchNormal
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	err = dbCtx.Queries.InsertProject(ctx, sqldb.InsertProjectParams{
		ID:                   project.ID,
		Name:                 project.Name,
		Path:                 project.Path,
		Description:          project.Description,
		LaunchMode:           string(project.LaunchMode),
		EnvironmentVariables: project.EnvironmentVariables,
		CreatedAt:            formatTime(project.CreatedAt),
		UpdatedAt:            formatTime(project.UpdatedAt),
	})
	if err != nil {
		return catalog.Project{}, err
	}
	return project, nil
}

// ProjectUpdate carries the fields to merge into an existing project. Nil
// pointers leave the field unchanged.
type ProjectUpdate struct {
	Name                 *string
	Path                 *string
	Description          *string
	LaunchMode           *catalog.LaunchMode
	EnvironmentVariables *string
}

// Update merges fields into the project with the given id, keeping the id
// and refreshing updatedAt. Moving to a path held by another project fails
// with ErrDuplicatePath.
func (r *ProjectRepository) Update(ctx context.Context, id string, update ProjectUpdate) (catalog.Project, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return catalog.Project{}, err
	}

	existing, err := r.Get(ctx, id)
	if err != nil {
		return catalog.Project{}, err
	}
	if existing == nil {
		return catalog.Project{}, ErrNotFound
	}

	merged := *existing
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Path != nil && *update.Path != merged.Path {
		holder, err := r.FindByPath(ctx, *update.Path)
		if err != nil {
			return catalog.Project{}, err
		}
		if holder != nil {
			return catalog.Project{}, ErrDuplicatePath
		}
		merged.Path = *update.Path
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.LaunchMode != nil {
		merged.LaunchMode = *update.LaunchMode
	}
	if update.EnvironmentVariables != nil {
		merged.EnvironmentVariables = *update.EnvironmentVariables
	}

	now := time.Now().UTC()
	if now.Before(merged.UpdatedAt) {
		now = merged.UpdatedAt
	}
	merged.UpdatedAt = now

	affected, err := dbCtx.Queries.UpdateProject(ctx, sqldb.UpdateProjectParams{
		Name:                 merged.Name,
		Path:                 merged.Path,
		Description:          merged.Description,
		LaunchMode:           string(merged.LaunchMode),
		EnvironmentVariables: merged.EnvironmentVariables,
		UpdatedAt:            formatTime(merged.UpdatedAt),
		ID:                   id,
	})
	if err != nil {
		return catalog.Project{}, err
	}
	if affected == 0 {
		return catalog.Project{}, ErrNotFound
	}
	return merged, nil
}

// Get returns the project with the given id, or nil when absent.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*catalog.Project, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return nil, err
	}

	row, err := dbCtx.Queries.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	project, err := projectFromRow(row)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetAll returns every registered project in storage order.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]catalog.Project, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return nil, err
	}

	rows, err := dbCtx.Queries.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]catalog.Project, 0, len(rows))
	for _, row := range rows {
		project, err := projectFromRow(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

// Delete removes the project with the given id; absent ids are a no-op.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	dbCtx, err := r.store.context()
	if err != nil {
		return err
	}

	_, err = dbCtx.Queries.DeleteProjectByID(ctx, id)
	return err
}

// FindByPath returns the project registered at path, or nil.
func (r *ProjectRepository) FindByPath(ctx context.Context, path string) (*catalog.Project, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return nil, err
	}

	row, err := dbCtx.Queries.FindProjectByPath(ctx, path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	project, err := projectFromRow(row)
	if err != nil {
		return nil, err
	}
	return &project, nil
}
