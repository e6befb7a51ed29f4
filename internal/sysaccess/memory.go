package sysaccess

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory Service used in tests. It stores text files and
// directories in maps and replays scripted process outputs.
type Memory struct {
	mu    sync.Mutex
	files map[string]string
	dirs  map[string]bool

	// ProcessOutput maps "name arg1 arg2" to canned stdout. Commands not
	// present fail with ErrProcessNotScripted.
	ProcessOutput map[string]string

	// FailWrites makes every WriteTextFile call fail, for error-path tests.
	FailWrites bool
	// FailRemoves makes every RemoveFile call fail.
	FailRemoves bool
}

// ErrProcessNotScripted is returned for process invocations without a canned
// output.
var ErrProcessNotScripted = errors.New("sysaccess: process not scripted")

// NewMemory returns an empty in-memory service.
func NewMemory() *Memory {
	return &Memory{
		files:         map[string]string{},
		dirs:          map[string]bool{"/": true},
		ProcessOutput: map[string]string{},
	}
}

func (m *Memory) ReadTextFile(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	text, ok := m.files[clean(path)]
	if !ok {
		return "", &IOError{Op: "read", Path: path, Err: errors.New("file does not exist")}
	}
	return text, nil
}

func (m *Memory) WriteTextFile(path, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return &IOError{Op: "write", Path: path, Err: errors.New("write failure injected")}
	}
	p := clean(path)
	if !m.dirs[filepath.Dir(p)] {
		return &IOError{Op: "write", Path: path, Err: errors.New("parent directory does not exist")}
	}
	m.files[p] = text
	return nil
}

func (m *Memory) PathExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := clean(path)
	if _, ok := m.files[p]; ok {
		return true, nil
	}
	return m.dirs[p], nil
}

func (m *Memory) ListDirectory(path string) ([]DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := clean(path)
	if !m.dirs[p] {
		return nil, &IOError{Op: "readdir", Path: path, Err: errors.New("directory does not exist")}
	}

	seen := map[string]DirEntry{}
	for file := range m.files {
		if filepath.Dir(file) == p {
			name := filepath.Base(file)
			seen[name] = DirEntry{Name: name, IsFile: true}
		}
	}
	for dir := range m.dirs {
		if dir != p && filepath.Dir(dir) == p {
			name := filepath.Base(dir)
			seen[name] = DirEntry{Name: name, IsDirectory: true}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, seen[name])
	}
	return entries, nil
}

func (m *Memory) MakeDirectory(path string, recursive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := clean(path)
	if recursive {
		for dir := p; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
			m.dirs[dir] = true
		}
		return nil
	}
	if !m.dirs[filepath.Dir(p)] {
		return &IOError{Op: "mkdir", Path: path, Err: errors.New("parent directory does not exist")}
	}
	m.dirs[p] = true
	return nil
}

func (m *Memory) RemoveFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailRemoves {
		return &IOError{Op: "remove", Path: path, Err: errors.New("remove failure injected")}
	}
	delete(m.files, clean(path))
	return nil
}

func (m *Memory) RunProcess(name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	out, ok := m.ProcessOutput[key]
	if !ok {
		return "", &ProcessError{Command: key, Err: ErrProcessNotScripted}
	}
	return out, nil
}

// FileCount reports the number of stored files.
func (m *Memory) FileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func clean(path string) string {
	return filepath.Clean(path)
}
