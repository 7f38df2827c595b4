package home

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidMemoryName is returned for memory file names other than
// MEMORY.md or YYYY-MM-DD.md.
var ErrInvalidMemoryName = fmt.Errorf("invalid memory name")

// MemoryFile describes one dated memory file in the workspace.
type MemoryFile struct {
	Name     string
	Path     string
	Modified int64 // mtime in unix seconds, 0 when unknown
}

// MemoryContent is the content of one memory file.
type MemoryContent struct {
	Name    string
	Path    string
	Content string
	Exists  bool
}

// isDateMemoryName reports whether name has the exact YYYY-MM-DD.md shape.
func isDateMemoryName(name string) bool {
	if len(name) != 13 {
		return false
	}
	for _, idx := range []int{0, 1, 2, 3, 5, 6, 8, 9} {
		if name[idx] < '0' || name[idx] > '9' {
			return false
		}
	}
	return name[4] == '-' && name[7] == '-' && strings.HasSuffix(name, ".md")
}

// ValidateMemoryName accepts MEMORY.md and dated YYYY-MM-DD.md names only.
func ValidateMemoryName(name string) error {
	if name == "MEMORY.md" || isDateMemoryName(name) {
		return nil
	}
	return ErrInvalidMemoryName
}

// ListMemoryFiles returns the dated memory files, newest name first.
// MEMORY.md is addressed directly and never listed. A missing memory
// directory is not an error.
func (h *Home) ListMemoryFiles() ([]MemoryFile, error) {
	dir := h.MemoryDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading memory dir: %w", err)
	}

	var files []MemoryFile
	for _, entry := range entries {
		if entry.IsDir() || !isDateMemoryName(entry.Name()) {
			continue
		}
		mf := MemoryFile{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())}
		if info, infoErr := entry.Info(); infoErr == nil {
			mf.Modified = info.ModTime().Unix()
		}
		files = append(files, mf)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name > files[j].Name
	})
	return files, nil
}

// ReadMemoryFile returns the content of one memory file. A file that does
// not exist yet resolves to empty content with Exists false.
func (h *Home) ReadMemoryFile(name string) (MemoryContent, error) {
	if err := ValidateMemoryName(name); err != nil {
		return MemoryContent{}, err
	}
	path := filepath.Join(h.MemoryDir(), name)
	mc := MemoryContent{Name: name, Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return mc, nil
		}
		return MemoryContent{}, fmt.Errorf("reading memory file %s: %w", name, err)
	}
	mc.Content = string(data)
	mc.Exists = true
	return mc, nil
}

// SaveMemoryFile writes a memory file, creating the memory directory if
// needed.
func (h *Home) SaveMemoryFile(name, content string) error {
	if err := ValidateMemoryName(name); err != nil {
		return err
	}
	dir := h.MemoryDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write memory file %s: %w", name, err)
	}
	return nil
}

// DeleteMemoryFile removes a dated memory file. MEMORY.md cannot be
// deleted. Deleting a file that does not exist is not an error.
func (h *Home) DeleteMemoryFile(name string) error {
	if err := ValidateMemoryName(name); err != nil {
		return err
	}
	if name == "MEMORY.md" {
		return fmt.Errorf("cannot delete MEMORY.md")
	}
	path := filepath.Join(h.MemoryDir(), name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete memory file %s: %w", name, err)
	}
	return nil
}
