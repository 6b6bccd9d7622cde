// Package objc2swift transpiles Objective-C source into Swift text: a
// lexer/parser front end builds a concrete tree per file, an intention
// builder merges header/implementation pairs into a language-neutral
// graph, and a Swift emitter walks that graph to produce output files.
// Rewrite is the single entry point wiring the three stages together.
package objc2swift

import (
	"context"
	"fmt"
	"io"

	"github.com/eaburns/objc2swift/internal/config"
	"github.com/eaburns/objc2swift/internal/diag"
	"github.com/eaburns/objc2swift/internal/intent"
	"github.com/eaburns/objc2swift/internal/objc/ast"
	"github.com/eaburns/objc2swift/internal/objclog"
	"github.com/eaburns/objc2swift/internal/srcrange"
	"github.com/eaburns/objc2swift/internal/swift"
)

// InputSource is one named unit of Objective-C source, loaded lazily.
type InputSource interface {
	SourceName() string
	LoadSource(ctx context.Context) (CodeSource, error)
}

// InputSourcesProvider supplies the ordered set of files Rewrite
// processes; visitation and therefore output ordering follows the order
// this returns.
type InputSourcesProvider interface {
	Sources(ctx context.Context) ([]InputSource, error)
}

// CodeSource is any byte-addressable view of UTF-8 text.
type CodeSource interface {
	Bytes() []byte
}

// WriterOutput creates the per-path outputs Rewrite writes emitted
// Swift files to.
type WriterOutput interface {
	CreateFile(path string) (FileOutput, error)
}

// FileOutput is one open output file. Rewrite writes the whole file,
// including the "// End of file <path>" trailer, to OutputTarget and then
// calls Close exactly once; Close itself appends nothing.
type FileOutput interface {
	OutputTarget() RewriterOutputTarget
	Close() error
}

// RewriterOutputTarget is the streaming sink FileOutput.OutputTarget
// exposes for incremental writes.
type RewriterOutputTarget interface {
	io.Writer
}

// Options configures one Rewrite run. A zero Options uses the documented
// defaults (internal access, four-space indentation, no verbose output).
type Options struct {
	Config *config.Config
	Log    *objclog.Logger
}

func (o Options) indent() string {
	if o.Config != nil {
		return o.Config.IndentString()
	}
	return "    "
}

func (o Options) logger() *objclog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return objclog.Discard()
}

func (o Options) overridePath(path string) string {
	if o.Config == nil {
		return path
	}
	return o.Config.OverridePath(path)
}

func (o Options) accessLevel() intent.AccessLevel {
	if o.Config == nil {
		return intent.AccessInternal
	}
	return o.Config.AccessLevel()
}

// Result carries a Rewrite run's diagnostics for a caller that wants to
// report them; the only stable contract is Sink.Errors's count.
type Result struct {
	Sink *diag.Sink
}

// Rewrite reads every source from provider, transpiles it, and writes
// the resulting Swift files through output. It returns a non-nil error,
// and a nil Result, only for a fatal driver error — an I/O failure or an
// unrecoverable parse state. Recoverable syntax errors are recorded in the
// returned Result's Sink; the Swift files for whatever could be parsed
// are still written.
func Rewrite(ctx context.Context, provider InputSourcesProvider, output WriterOutput, opts Options) (*Result, error) {
	log := opts.logger()
	sources, err := provider.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	var files srcrange.Files
	sink := diag.NewSink(&files)
	var parsed []intent.ParsedFile

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Verbosef("reading %s", src.SourceName())
		code, err := src.LoadSource(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.SourceName(), err)
		}
		text := string(code.Bytes())
		rng := files.Add(src.SourceName(), text)

		log.Verbosef("parsing %s", src.SourceName())
		p := ast.NewParser(src.SourceName(), text, rng.Start, sink)
		root, err := p.Parse()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", src.SourceName(), err)
		}
		parsed = append(parsed, intent.ParsedFile{
			Path:           src.SourceName(),
			Root:           root,
			NonnullRegions: p.NonnullRegions(),
		})
	}

	log.Verbosef("building intention graph from %d file(s)", len(parsed))
	graph := intent.Build(parsed, sink, opts.accessLevel())
	sink.SortAndDedup()

	indent := opts.indent()
	for _, f := range graph.Files {
		outPath := opts.overridePath(f.Path)
		log.Verbosef("emitting %s", outPath)
		fo, err := output.CreateFile(outPath)
		if err != nil {
			return nil, fmt.Errorf("creating output %s: %w", outPath, err)
		}
		e := swift.NewEmitter(fo.OutputTarget(), indent)
		writeErr := e.WriteFile(f)
		closeErr := fo.Close()
		if writeErr != nil {
			return nil, fmt.Errorf("emitting %s: %w", outPath, writeErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("closing %s: %w", outPath, closeErr)
		}
	}

	return &Result{Sink: sink}, nil
}
