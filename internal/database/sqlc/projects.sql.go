package sqldb

import (
	"context"
	"database/sql"
)

const projectColumns = `id, name, path, description, launch_mode, environment_variables, created_at, updated_at`

const insertProject = `INSERT INTO projects (` + projectColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type InsertProjectParams struct {
	ID                   string
	Name                 string
	Path                 string
	Description          string
	LaunchMode           string
	EnvironmentVariables string
	CreatedAt            string
	UpdatedAt            string
}

func (q *Queries) InsertProject(ctx context.Context, arg InsertProjectParams) error {
	_, err := q.db.ExecContext(ctx, insertProject,
		arg.ID, arg.Name, arg.Path, arg.Description, arg.LaunchMode,
		arg.EnvironmentVariables, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updateProject = `UPDATE projects
SET name = ?, path = ?, description = ?, launch_mode = ?,
    environment_variables = ?, updated_at = ?
WHERE id = ?`

type UpdateProjectParams struct {
	Name                 string
	Path                 string
	Description          string
	LaunchMode           string
	EnvironmentVariables string
	UpdatedAt            string
	ID                   string
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateProject,
		arg.Name, arg.Path, arg.Description, arg.LaunchMode,
		arg.EnvironmentVariables, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getProjectByID = `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

func (q *Queries) GetProjectByID(ctx context.Context, id string) (Project, error) {
	row := q.db.QueryRowContext(ctx, getProjectByID, id)
	return scanProject(row)
}

const listProjects = `SELECT ` + projectColumns + ` FROM projects`

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Path, &p.Description,
			&p.LaunchMode, &p.EnvironmentVariables, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const findProjectByPath = `SELECT ` + projectColumns + ` FROM projects WHERE path = ?`

func (q *Queries) FindProjectByPath(ctx context.Context, path string) (Project, error) {
	row := q.db.QueryRowContext(ctx, findProjectByPath, path)
	return scanProject(row)
}

const deleteProjectByID = `DELETE FROM projects WHERE id = ?`

func (q *Queries) DeleteProjectByID(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteProjectByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanProject(row *sql.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.Path, &p.Description, &p.LaunchMode,
		&p.EnvironmentVariables, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
