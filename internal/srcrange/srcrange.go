// Package srcrange tracks byte offsets and resolves them to file/line/column
// locations on demand.
//
// The model is a direct generalization of a single-module compiler's file
// table: ranges are cheap half-open byte intervals computed during lexing,
// and line/column resolution — needed only when a diagnostic or a
// source-range invariant check actually asks for it — happens lazily against
// a table of newline offsets built once per file.
package srcrange

import "fmt"

// Range is a half-open byte interval [Start, End) within the concatenated
// text of a Files set.
type Range struct {
	Start, End int
}

// Contains reports whether o lies entirely within r.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Empty reports whether the range spans zero bytes.
func (r Range) Empty() bool { return r.Start == r.End }

// Join returns the smallest range containing both r and o.
func (r Range) Join(o Range) Range {
	start, end := r.Start, r.End
	if o.Start < start {
		start = o.Start
	}
	if o.End > end {
		end = o.End
	}
	return Range{start, end}
}

// Loc is a resolved file location: a path plus 1-based line and 0-based
// column pairs for the start and end of a Range.
type Loc struct {
	Path string
	Line [2]int
	Col  [2]int
}

func (l Loc) String() string {
	if l.Line[0] == l.Line[1] && l.Col[0] == l.Col[1] {
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line[0], l.Col[0])
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.Path, l.Line[0], l.Col[0], l.Line[1], l.Col[1])
}

// File records the byte offset, length and newline table of one source
// file within a Files set.
type File struct {
	Path  string
	Offs  int
	Len   int
	Lines []int // byte offsets of '\n' within the file, absolute (Offs already added)
}

// Files tracks locations across an ordered set of source files, in the
// order they were added.
type Files []File

// Len returns the total length in bytes of all files added so far.
func (fs Files) Len() int {
	if len(fs) == 0 {
		return 0
	}
	last := fs[len(fs)-1]
	return last.Offs + last.Len
}

// Add records a new file's text and returns the Range spanning it in the
// shared offset space.
func (fs *Files) Add(path, text string) Range {
	offs := fs.Len()
	var lines []int
	for i, r := range text {
		if r == '\n' {
			lines = append(lines, offs+i)
		}
	}
	*fs = append(*fs, File{Path: path, Offs: offs, Len: len(text), Lines: lines})
	return Range{offs, offs + len(text)}
}

// Resolve returns the Loc for r, or nil if r falls outside every added
// file.
func (fs Files) Resolve(r Range) *Loc {
	if len(fs) == 0 || r.Start < 0 || r.End > fs.Len() {
		return nil
	}
	var l Loc
	var spath, epath string
	spath, l.Line[0], l.Col[0] = fs.loc1(r.Start)
	epath, l.Line[1], l.Col[1] = fs.loc1(r.End)
	if spath != epath {
		// A range never straddles two files; callers build ranges from a
		// single lexer instance bound to one file.
		epath = spath
	}
	l.Path = spath
	return &l
}

func (fs Files) loc1(p int) (path string, line, col int) {
	file := fs[0]
	for _, f := range fs {
		if f.Offs > p {
			break
		}
		file = f
	}
	line, lineStart := 1, file.Offs
	for _, nl := range file.Lines {
		if nl >= p {
			break
		}
		lineStart = nl + 1
		line++
	}
	return file.Path, line, p - lineStart
}
