package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/promptdeck/promptdeck/internal/catalog"
	sqldb "github.com/promptdeck/promptdeck/internal/database/sqlc"
	"github.com/promptdeck/promptdeck/internal/scope"
)

// RecordRepository is the per-kind collection of catalog records. Each
// operation is a single atomic statement.
type RecordRepository struct {
	store *Store
	kind  catalog.Kind
}

// NewRecordRepository returns the repository for one record kind.
func NewRecordRepository(store *Store, kind catalog.Kind) *RecordRepository {
	return &RecordRepository{store: store, kind: kind}
}

// Kind reports which collection this repository serves.
func (r *RecordRepository) Kind() catalog.Kind { return r.kind }

// Add persists rec and returns the stored form. A missing id gets a freshly
// generated one; missing timestamps are set to now. The record's kind is
// forced to the repository's kind.
func (r *RecordRepository) Add(ctx context.Context, rec catalog.Record) (catalog.Record, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return catalog.Record{}, err
	}

	if rec.ID == "" {
		rec.ID = catalog.NewID()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	rec.Kind = r.kind

	err = dbCtx.Queries.InsertRecord(ctx, sqldb.InsertRecordParams{
		ID:           rec.ID,
		Kind:         string(rec.Kind),
		Name:         rec.Name,
		Description:  rec.Description,
		Content:      rec.Content,
		Scope:        string(rec.Scope),
		Category:     categoryToNull(rec.Category),
		FilePath:     rec.FilePath,
		AllowedTools: encodeStrings(rec.AllowedTools),
		Arguments:    encodeArguments(rec.Arguments),
		CreatedAt:    formatTime(rec.CreatedAt),
		UpdatedAt:    formatTime(rec.UpdatedAt),
	})
	if err != nil {
		return catalog.Record{}, err
	}
	return rec, nil
}

// RecordUpdate carries the fields to merge into an existing record. Nil
// pointers leave the field unchanged. A nil AllowedTools/Arguments slice is
// unchanged; an empty non-nil slice clears the field. ClearCategory removes
// the category; it wins over Category.
type RecordUpdate struct {
	Name          *string
	Description   *string
	Content       *string
	Scope         *scope.Scope
	Category      *string
	ClearCategory bool
	FilePath      *string
	AllowedTools  []string
	Arguments     []catalog.Argument
}

// Update merges fields into the record with the given id and refreshes its
// updatedAt. The id itself is never changed. Returns ErrNotFound when the id
// is absent.
func (r *RecordRepository) Update(ctx context.Context, id string, update RecordUpdate) (catalog.Record, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return catalog.Record{}, err
	}

	existing, err := r.Get(ctx, id)
	if err != nil {
		return catalog.Record{}, err
	}
	if existing == nil {
		return catalog.Record{}, ErrNotFound
	}

	merged := *existing
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Content != nil {
		merged.Content = *update.Content
	}
	if update.Scope != nil {
		merged.Scope = *update.Scope
	}
	if update.ClearCategory {
		merged.Category = nil
	} else if update.Category != nil {
		category := *update.Category
		merged.Category = &category
	}
	if update.FilePath != nil {
		merged.FilePath = *update.FilePath
	}
	if update.AllowedTools != nil {
		merged.AllowedTools = update.AllowedTools
	}
	if update.Arguments != nil {
		merged.Arguments = update.Arguments
	}

	now := time.Now().UTC()
	if now.Before(merged.UpdatedAt) {
		now = merged.UpdatedAt
	}
	merged.UpdatedAt = now

	affected, err := dbCtx.Queries.UpdateRecord(ctx, sqldb.UpdateRecordParams{
		Name:         merged.Name,
		Description:  merged.Description,
		Content:      merged.Content,
		Scope:        string(merged.Scope),
		Category:     categoryToNull(merged.Category),
		FilePath:     merged.FilePath,
		AllowedTools: encodeStrings(merged.AllowedTools),
		Arguments:    encodeArguments(merged.Arguments),
		UpdatedAt:    formatTime(merged.UpdatedAt),
		ID:           id,
	})
	if err != nil {
		return catalog.Record{}, err
	}
	if affected == 0 {
		return catalog.Record{}, ErrNotFound
	}
	return merged, nil
}

// Get returns the record with the given id, or nil when absent.
func (r *RecordRepository) Get(ctx context.Context, id string) (*catalog.Record, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return nil, err
	}

	row, err := dbCtx.Queries.GetRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rec, err := recordFromRow(row)
	if err != nil {
		return nil, err
	}
	if rec.Kind != r.kind {
		return nil, nil
	}
	return &rec, nil
}

// GetAll returns every record of the repository's kind, in storage order.
func (r *RecordRepository) GetAll(ctx context.Context) ([]catalog.Record, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return nil, err
	}

	rows, err := dbCtx.Queries.ListRecordsByKind(ctx, string(r.kind))
	if err != nil {
		return nil, err
	}

	records := make([]catalog.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the record with the given id. Deleting an absent id is not
// an error.
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	dbCtx, err := r.store.context()
	if err != nil {
		return err
	}

	_, err = dbCtx.Queries.DeleteRecordByID(ctx, id)
	return err
}

// FindByNameScope looks up a record by its (name, scope) pair, the identity
// key used during import reconciliation. Returns nil when absent.
func (r *RecordRepository) FindByNameScope(ctx context.Context, name string, sc scope.Scope) (*catalog.Record, error) {
	dbCtx, err := r.store.context()
	if err != nil {
		return nil, err
	}

	row, err := dbCtx.Queries.FindRecordByNameScope(ctx, sqldb.FindRecordByNameScopeParams{
		Kind:  string(r.kind),
		Name:  name,
		Scope: string(sc),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rec, err := recordFromRow(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
