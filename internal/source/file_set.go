package source

// FileSet is an append-only registry of files addressed by FileID, plus the
// line index needed to translate byte offsets into LineCol for diagnostics.
// Loading files from disk is the front end's job; FileSet only stores bytes
// it is handed.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers content under path and returns a fresh FileID. Re-adding the
// same path creates a new FileID and updates the path index to point at it,
// matching how an editor replaces a document on every keystroke.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	id := FileID(len(fs.files))
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
	})
	fs.index[path] = id
	return id
}

// AddVirtual registers an in-memory document (test fixture or LSP buffer).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file metadata for id. Panics on an out-of-range id, mirroring
// the arena-style accessors used elsewhere in the checker.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetByPath returns the most recently added file registered under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[path]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts a span into human-readable line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i))
		}
	}
	return idx
}

// toLineCol converts a byte offset into a 1-based LineCol using a sorted
// list of newline offsets, the same layout FileSet.LineIdx produces.
func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) / 2
		if lineIdx[mid] < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := uint32(lo) + 1
	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return LineCol{Line: line, Col: offset - lineStart + 1}
}
