// Package sysaccess is the privileged host bridge: filesystem primitives and
// external process execution behind a single interface so the catalog layers
// never touch the OS directly.
package sysaccess

import (
	"fmt"
	"os"
)

// DirEntry describes one child of a directory listing.
type DirEntry struct {
	Name        string
	IsFile      bool
	IsDirectory bool
}

// Service is the host bridge contract. Every call is a suspension point from
// the caller's perspective; operations run to completion or failure.
type Service interface {
	ReadTextFile(path string) (string, error)
	WriteTextFile(path, text string) error
	PathExists(path string) (bool, error)
	ListDirectory(path string) ([]DirEntry, error)
	MakeDirectory(path string, recursive bool) error
	RemoveFile(path string) error
	RunProcess(name string, args ...string) (string, error)
}

// IOError carries the failed operation and path alongside the underlying
// error, so callers can distinguish what was being attempted.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("sysaccess: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// OS is the real host bridge backed by the operating system.
type OS struct{}

// NewOS returns the OS-backed service.
func NewOS() *OS { return &OS{} }

func (*OS) ReadTextFile(path string) (string, error) {
	//nolint:gosec // G304: paths come from the catalog, controlled by the application
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

func (*OS) WriteTextFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (*OS) PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &IOError{Op: "stat", Path: path, Err: err}
}

func (*OS) ListDirectory(path string) ([]DirEntry, error) {
	children, err := os.ReadDir(path)
	if err != nil {
		return nil, &IOError{Op: "readdir", Path: path, Err: err}
	}

	entries := make([]DirEntry, 0, len(children))
	for _, child := range children {
		entries = append(entries, DirEntry{
			Name:        child.Name(),
			IsFile:      child.Type().IsRegular(),
			IsDirectory: child.IsDir(),
		})
	}
	return entries, nil
}

func (*OS) MakeDirectory(path string, recursive bool) error {
	var err error
	if recursive {
		err = os.MkdirAll(path, 0o750)
	} else {
		err = os.Mkdir(path, 0o750)
	}
	if err != nil {
		return &IOError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// RemoveFile deletes a file; a path that is already absent is not an error.
func (*OS) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &IOError{Op: "remove", Path: path, Err: err}
	}
	return nil
}
