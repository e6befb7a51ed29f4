package database

import "errors"

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("database: not found")

// ErrNotInitialized indicates an operation ran before Store.Init completed.
var ErrNotInitialized = errors.New("database: not initialized")

// ErrDuplicatePath indicates a project path collides with an existing one.
var ErrDuplicatePath = errors.New("database: project path already registered")
