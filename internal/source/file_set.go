// Package source manages the set of files touched by one conversion.
package source

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
)

// File is one loaded source file.
type File struct {
	// Path is the normalized absolute path (slash-separated).
	Path    string
	Content []byte
	Hash    [sha256.Size]byte
}

// FileSet loads and caches files for one conversion. A path is read at
// most once; repeat loads return the cached file.
type FileSet struct {
	reader Reader
	files  []*File
	index  map[string]*File
}

// NewFileSet creates a FileSet over the given reader; a nil reader means
// the OS filesystem.
func NewFileSet(r Reader) *FileSet {
	if r == nil {
		r = OSReader{}
	}
	return &FileSet{reader: r, index: make(map[string]*File)}
}

// Reader exposes the underlying reader for existence probing.
func (fs *FileSet) Reader() Reader {
	return fs.reader
}

// Load reads the file at path (or returns the cached copy).
func (fs *FileSet) Load(path string) (*File, error) {
	norm := NormalizePath(path)
	if f, ok := fs.index[norm]; ok {
		return f, nil
	}
	content, err := fs.reader.ReadFile(norm)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", norm, err)
	}
	f := &File{
		Path:    norm,
		Content: content,
		Hash:    sha256.Sum256(content),
	}
	fs.files = append(fs.files, f)
	fs.index[norm] = f
	return f, nil
}

// Files returns the loaded files in load order.
func (fs *FileSet) Files() []*File {
	return fs.files
}

// NormalizePath cleans a path and converts separators to slashes so the
// visited-set and cache keys compare equal across spellings.
func NormalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
