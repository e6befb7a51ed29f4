package sqldb

import (
	"context"
	"database/sql"
)

const recordColumns = `id, kind, name, description, content, scope, category, file_path, allowed_tools, arguments, created_at, updated_at`

const insertRecord = `INSERT INTO records (` + recordColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type InsertRecordParams struct {
	ID           string
	Kind         string
	Name         string
	Description  string
	Content      string
	Scope        string
	Category     sql.NullString
	FilePath     string
	AllowedTools string
	Arguments    string
	CreatedAt    string
	UpdatedAt    string
}

func (q *Queries) InsertRecord(ctx context.Context, arg InsertRecordParams) error {
	_, err := q.db.ExecContext(ctx, insertRecord,
		arg.ID, arg.Kind, arg.Name, arg.Description, arg.Content, arg.Scope,
		arg.Category, arg.FilePath, arg.AllowedTools, arg.Arguments,
		arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updateRecord = `UPDATE records
SET name = ?, description = ?, content = ?, scope = ?, category = ?,
    file_path = ?, allowed_tools = ?, arguments = ?, updated_at = ?
WHERE id = ?`

type UpdateRecordParams struct {
	Name         string
	Description  string
	Content      string
	Scope        string
	Category     sql.NullString
	FilePath     string
	AllowedTools string
	Arguments    string
	UpdatedAt    string
	ID           string
}

func (q *Queries) UpdateRecord(ctx context.Context, arg UpdateRecordParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateRecord,
		arg.Name, arg.Description, arg.Content, arg.Scope, arg.Category,
		arg.FilePath, arg.AllowedTools, arg.Arguments, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getRecordByID = `SELECT ` + recordColumns + ` FROM records WHERE id = ?`

func (q *Queries) GetRecordByID(ctx context.Context, id string) (Record, error) {
	row := q.db.QueryRowContext(ctx, getRecordByID, id)
	return scanRecord(row)
}

const listRecordsByKind = `SELECT ` + recordColumns + ` FROM records WHERE kind = ?`

func (q *Queries) ListRecordsByKind(ctx context.Context, kind string) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, listRecordsByKind, kind)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectRecords(rows)
}

const findRecordByNameScope = `SELECT ` + recordColumns + ` FROM records
WHERE kind = ? AND name = ? AND scope = ?`

type FindRecordByNameScopeParams struct {
	Kind  string
	Name  string
	Scope string
}

func (q *Queries) FindRecordByNameScope(ctx context.Context, arg FindRecordByNameScopeParams) (Record, error) {
	row := q.db.QueryRowContext(ctx, findRecordByNameScope, arg.Kind, arg.Name, arg.Scope)
	return scanRecord(row)
}

const deleteRecordByID = `DELETE FROM records WHERE id = ?`

func (q *Queries) DeleteRecordByID(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteRecordByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanRecord(row *sql.Row) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.Kind, &r.Name, &r.Description, &r.Content,
		&r.Scope, &r.Category, &r.FilePath, &r.AllowedTools, &r.Arguments,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Kind, &r.Name, &r.Description, &r.Content,
			&r.Scope, &r.Category, &r.FilePath, &r.AllowedTools, &r.Arguments,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
