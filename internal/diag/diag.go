// Package diag is the diagnostics sink shared by the Objective-C lexer,
// parser and intention builder. It never causes a caller to unwind: every
// recoverable problem is appended here and the pipeline keeps going.
package diag

import (
	"fmt"
	"sort"

	"github.com/eaburns/objc2swift/internal/srcrange"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "diagnostic"
	}
}

// Diagnostic is a single reported problem, always carrying a source range.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    srcrange.Range
	Loc      *srcrange.Loc
}

func (d Diagnostic) String() string {
	if d.Loc != nil {
		return fmt.Sprintf("%s: %s: %s", d.Loc, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Sink accumulates diagnostics for one parser/builder session, partitioned
// by severity as required by the observable contract: callers only ever
// need the count and content of Errors().
type Sink struct {
	files                       *srcrange.Files
	errors, warnings, notes     []Diagnostic
	recoveredAtLeastOnceInParse bool
}

// NewSink returns a Sink that resolves ranges against files. files may be
// nil, in which case diagnostics carry a nil Loc.
func NewSink(files *srcrange.Files) *Sink {
	return &Sink{files: files}
}

func (s *Sink) resolve(r srcrange.Range) *srcrange.Loc {
	if s.files == nil {
		return nil
	}
	return s.files.Resolve(r)
}

// Errorf appends an error diagnostic and marks the session as having
// recovered from at least one syntax problem.
func (s *Sink) Errorf(r srcrange.Range, format string, args ...interface{}) {
	s.recoveredAtLeastOnceInParse = true
	s.errors = append(s.errors, Diagnostic{Error, fmt.Sprintf(format, args...), r, s.resolve(r)})
}

// Warningf appends a warning diagnostic. Warnings never mark recovery —
// they report semantic mismatches that are not syntax errors.
func (s *Sink) Warningf(r srcrange.Range, format string, args ...interface{}) {
	s.warnings = append(s.warnings, Diagnostic{Warning, fmt.Sprintf(format, args...), r, s.resolve(r)})
}

// Notef appends a note, typically attached to a preceding error for extra
// context (e.g. pointing at the unmatched '<').
func (s *Sink) Notef(r srcrange.Range, format string, args ...interface{}) {
	s.notes = append(s.notes, Diagnostic{Note, fmt.Sprintf(format, args...), r, s.resolve(r)})
}

// Errors returns the accumulated error diagnostics in report order.
func (s *Sink) Errors() []Diagnostic { return s.errors }

// Warnings returns the accumulated warning diagnostics in report order.
func (s *Sink) Warnings() []Diagnostic { return s.warnings }

// Notes returns the accumulated note diagnostics in report order.
func (s *Sink) Notes() []Diagnostic { return s.notes }

// HasErrors reports whether any error diagnostic has been recorded.
func (s *Sink) HasErrors() bool { return len(s.errors) > 0 }

// RecoveredDuringParse reports whether the parser invoked panic-mode
// recovery at least once during the session backing this sink.
func (s *Sink) RecoveredDuringParse() bool { return s.recoveredAtLeastOnceInParse }

// SortAndDedup orders every partition by (path, line, col) and removes
// adjacent duplicates, mirroring the report-order discipline of a checked
// compiler pass that visits files in a fixed order but may reach the same
// mistake from more than one direction.
func (s *Sink) SortAndDedup() {
	s.errors = sortDedup(s.errors)
	s.warnings = sortDedup(s.warnings)
	s.notes = sortDedup(s.notes)
}

func sortDedup(ds []Diagnostic) []Diagnostic {
	if len(ds) == 0 {
		return ds
	}
	sort.SliceStable(ds, func(i, j int) bool {
		li, lj := ds[i].Loc, ds[j].Loc
		if li == nil || lj == nil {
			return ds[i].Range.Start < ds[j].Range.Start
		}
		if li.Path != lj.Path {
			return li.Path < lj.Path
		}
		if li.Line[0] != lj.Line[0] {
			return li.Line[0] < lj.Line[0]
		}
		return li.Col[0] < lj.Col[0]
	})
	dedup := ds[:1]
	for _, d := range ds[1:] {
		last := dedup[len(dedup)-1]
		if d.Range != last.Range || d.Message != last.Message {
			dedup = append(dedup, d)
		}
	}
	return dedup
}
