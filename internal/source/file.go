package source

import (
	"path/filepath"
	"strconv"
)

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags record how a file's bytes were obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // stdin, tests, editor buffers
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // \r\n became \n
)

// File is one loaded .spl source. Content is already normalized; every
// offset in the pipeline points into it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}

// LineCol is a 1-based position. Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return strconv.FormatUint(uint64(lc.Line), 10) + ":" + strconv.FormatUint(uint64(lc.Col), 10)
}

// Line returns the text of 1-based line n without its newline; out of range
// gives "".
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// PathStyle selects how DisplayPath renders a file path.
type PathStyle uint8

const (
	PathAuto     PathStyle = iota // as given, shortened to the base name when long and absolute
	PathAbsolute
	PathRelative // relative to the base directory, absolute when outside it
	PathBase
)

// longPath is the length past which PathAuto drops the directories.
const longPath = 40

// DisplayPath renders f.Path in style. baseDir only matters for PathRelative;
// empty means the working directory.
func (f *File) DisplayPath(style PathStyle, baseDir string) string {
	switch style {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathRelative:
		if baseDir == "" {
			baseDir = "."
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBase:
		return BaseName(f.Path)
	case PathAuto:
		if len(f.Path) >= longPath && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
