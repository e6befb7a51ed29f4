// Package filestore lists, writes, and deletes the Markdown files backing
// catalog records under a scope's prompts directory.
package filestore

import (
	"log"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/promptfile"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

// Store adapts catalog records onto the host filesystem through the system
// access service. Decode errors are skipped; I/O errors propagate.
type Store struct {
	sys sysaccess.Service
}

// New creates a Store over the given system access service.
func New(sys sysaccess.Service) *Store {
	return &Store{sys: sys}
}

// List walks root depth-first and decodes every *.md file into a record
// stamped with the given scope. A missing root yields an empty slice. Files
// that fail to decode are logged and skipped; directory read errors abort
// the walk.
func (s *Store) List(root string, sc scope.Scope) ([]catalog.Record, error) {
	exists, err := s.sys.PathExists(root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return s.walk(root, sc)
}

func (s *Store) walk(dir string, sc scope.Scope) ([]catalog.Record, error) {
	entries, err := s.sys.ListDirectory(dir)
	if err != nil {
		return nil, err
	}

	var records []catalog.Record
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name)

		if entry.IsDirectory {
			sub, err := s.walk(path, sc)
			if err != nil {
				return nil, err
			}
			records = append(records, sub...)
			continue
		}

		if !entry.IsFile || !strings.HasSuffix(entry.Name, ".md") {
			continue
		}

		text, err := s.sys.ReadTextFile(path)
		if err != nil {
			log.Printf("filestore: skipping %s: %v", path, err)
			continue
		}

		rec, err := promptfile.Decode(text, entry.Name, dir)
		if err != nil {
			log.Printf("filestore: skipping %s: %v", path, err)
			continue
		}

		rec.Scope = sc
		rec.ID = catalog.StableID(rec.Kind, sc, rec.Name)
		rec.FilePath = path
		records = append(records, *rec)
	}

	return records, nil
}

// Write encodes rec and stores it under dir using a sanitized file name. The
// directory is created if needed. The written path is returned and recorded
// on rec.
func (s *Store) Write(rec *catalog.Record, dir string) (string, error) {
	if err := s.sys.MakeDirectory(dir, true); err != nil {
		return "", err
	}

	path := filepath.Join(dir, SanitizeName(rec.Name)+".md")
	if err := s.sys.WriteTextFile(path, promptfile.Encode(rec)); err != nil {
		return "", err
	}

	rec.FilePath = path
	return path, nil
}

// Delete removes the file backing rec. Records without a backing file, or
// whose file is already gone, are a no-op.
func (s *Store) Delete(rec *catalog.Record) error {
	if rec.FilePath == "" {
		return nil
	}

	exists, err := s.sys.PathExists(rec.FilePath)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.sys.RemoveFile(rec.FilePath)
}

// SanitizeName maps a record name onto a safe file name: letters, digits and
// CJK characters are kept, everything else becomes '_'.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
