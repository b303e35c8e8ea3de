// Package sink persists printed source files.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/txtar"
)

// ErrExist is returned when a sink refuses to replace an existing file.
var ErrExist = errors.New("file already exists")

// Sink receives generated files. Paths are slash-separated and relative to
// the project root. Implementations must be safe for concurrent use.
type Sink interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes files below Root.
type FilesystemSink struct {
	Root string

	// Mode is the permission of created files. Zero means 0644.
	Mode os.FileMode

	// Overwrite replaces existing files. Without it a write to an existing
	// path fails with ErrExist.
	Overwrite bool
}

// NewFilesystemSink returns a sink rooted at root.
func NewFilesystemSink(root string, overwrite bool) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0o644, Overwrite: overwrite}
}

// WriteFile writes content atomically: it lands in a temporary file in the
// destination directory which is then renamed, or linked when Overwrite is
// off so an existing file is never clobbered.
func (s *FilesystemSink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return fmt.Errorf("invalid path %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	full := filepath.Join(root, filepath.FromSlash(name))
	if !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return fmt.Errorf("path escapes root directory: %q", name)
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0o644
	}

	tmp, err := os.CreateTemp(dir, ".expressgen-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	switch {
	case writeErr != nil:
		cleanup()
		return fmt.Errorf("write temp file: %w", writeErr)
	case closeErr != nil:
		cleanup()
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, full); err != nil {
			cleanup()
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	}
	// Link fails with EEXIST instead of racing a stat and a rename.
	err = os.Link(tmpPath, full)
	cleanup()
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %q", ErrExist, name)
		}
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// MemorySink keeps files in memory. Tests and the archive output use it.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under name.
func (s *MemorySink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return fmt.Errorf("invalid path %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := append([]byte(nil), content...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
	return nil
}

// Get returns a copy of the file stored under name, or nil.
func (s *MemorySink) Get(name string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	if !ok {
		return nil
	}
	return append([]byte(nil), data...)
}

// Paths returns the stored paths in sorted order.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Files returns a copy of every stored file.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.files))
	for p, data := range s.files {
		out[p] = append([]byte(nil), data...)
	}
	return out
}

// Reset removes every stored file.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
}

// Archive returns the stored files as a txtar archive sorted by path.
func (s *MemorySink) Archive(comment string) *txtar.Archive {
	ar := &txtar.Archive{}
	if comment != "" {
		ar.Comment = []byte(strings.TrimRight(comment, "\n") + "\n")
	}
	for _, p := range s.Paths() {
		data := s.Get(p)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		ar.Files = append(ar.Files, txtar.File{Name: p, Data: data})
	}
	return ar
}

// ValidatePath reports whether name is a clean, relative, slash-separated
// path that stays inside the project root.
func ValidatePath(name string) error {
	if name == "" || name == "." {
		return errors.New("path is empty")
	}
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return errors.New("absolute paths not allowed")
	}
	if len(name) >= 2 && name[1] == ':' && isLetter(name[0]) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(name, `\`) {
		return errors.New("backslashes not allowed")
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if cleaned := path.Clean(name); cleaned != name {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, name)
	}
	return nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
