package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every file of one compilation and resolves spans against
// them. Adding the same path twice keeps both versions; Latest points at the
// newest.
type FileSet struct {
	files   []*File
	latest  map[string]FileID
	baseDir string
}

// NewFileSet returns an empty set whose base directory is the working
// directory.
func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// SetBaseDir sets the directory relative paths are shown against.
func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the configured base directory or the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Add registers content under path as a new file. content must already be
// normalized (see Normalize). Files past 4 GiB cannot be addressed by Span
// and panic.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id := FileID(n)
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("%s: file too large: %w", path, err))
	}
	clean := normalizePath(path)
	fs.files = append(fs.files, &File{
		ID:      id,
		Path:    clean,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.latest[clean] = id
	return id
}

// AddVirtual adds in-memory content as is, marked FileVirtual.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk, normalizes it and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- путь задаёт пользователь
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(content)
	return fs.Add(path, content, flags), nil
}

// Normalize strips a BOM and folds \r\n into \n, reporting each change in
// the returned flags. Other bytes are left alone.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	steps := []struct {
		fn   func([]byte) ([]byte, bool)
		flag FileFlags
	}{
		{removeBOM, FileHadBOM},
		{normalizeCRLF, FileNormalizedCRLF},
	}
	for _, st := range steps {
		var changed bool
		if content, changed = st.fn(content); changed {
			flags |= st.flag
		}
	}
	return content, flags
}

// Get returns the file with id, or nil.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// Latest returns the newest file added under path.
func (fs *FileSet) Latest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve turns span into start and end positions. Spans of unknown files
// resolve to zero positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}
