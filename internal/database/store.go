package database

import "sync"

// Store is the process-wide handle to the catalog database. Init is
// idempotent and safe to race: the first caller opens the connection, later
// callers observe the already-open state. Every repository operation before
// Init fails with ErrNotInitialized.
type Store struct {
	mu   sync.Mutex
	path string
	ctx  *Context
}

// NewStore creates an uninitialized store for the given database path. An
// empty path uses the configured catalog location; ":memory:" is accepted
// for tests.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init opens the database and applies migrations. Calling it again after a
// successful open is a no-op.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil {
		return nil
	}

	ctx, err := CreateDatabase(s.path)
	if err != nil {
		return err
	}
	s.ctx = ctx
	return nil
}

// Close releases the underlying connection. The store can be re-initialized
// afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx == nil {
		return nil
	}
	err := CloseDatabase(s.ctx)
	s.ctx = nil
	return err
}

// Clear removes all rows from every collection.
func (s *Store) Clear() error {
	dbCtx, err := s.context()
	if err != nil {
		return err
	}
	return ClearDatabase(dbCtx)
}

func (s *Store) context() (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx == nil {
		return nil, ErrNotInitialized
	}
	return s.ctx, nil
}
