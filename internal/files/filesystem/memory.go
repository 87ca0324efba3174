package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return DefaultFileMode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements Provider for in-memory testing.
// Paths are normalized to forward slashes, so "C:\a.sql" and "C:/a.sql"
// name the same file.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	mod   map[string]time.Time

	// FailWrites makes every WriteFile call fail without storing anything.
	FailWrites bool
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		mod:   make(map[string]time.Time),
	}
}

// AddFile stores content at p, replacing any existing file.
func (m *MemoryFileSystem) AddFile(p, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := normalize(p)
	m.files[key] = []byte(content)
	m.mod[key] = time.Now()
}

// Has reports whether a file exists at p.
func (m *MemoryFileSystem) Has(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[normalize(p)]
	return ok
}

// Paths returns every stored path in sorted order.
func (m *MemoryFileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[normalize(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryFileSystem) WriteFile(p string, data []byte) error {
	if m.FailWrites {
		return &fs.PathError{Op: "write", Path: p, Err: fmt.Errorf("simulated write failure")}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := normalize(p)
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[key] = stored
	m.mod[key] = time.Now()
	return nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := normalize(p)
	data, ok := m.files[key]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{
		name:    path.Base(key),
		size:    int64(len(data)),
		modTime: m.mod[key],
	}, nil
}

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

var _ Provider = (*MemoryFileSystem)(nil)
