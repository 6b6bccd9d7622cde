// Command objc2swift is a thin driver over the objc2swift core: it
// walks the given Objective-C files, calls Rewrite, and writes the
// emitted Swift files next to (or under an output directory relative
// to) the sources. It is explicitly outside the core's own scope —
// interactive CLI/menu/colour output is a concern of this binary alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eaburns/peggy/peg"
	"github.com/eaburns/pretty"

	"github.com/eaburns/objc2swift"
	"github.com/eaburns/objc2swift/internal/config"
	"github.com/eaburns/objc2swift/internal/diag"
	"github.com/eaburns/objc2swift/internal/intent"
	"github.com/eaburns/objc2swift/internal/objc/ast"
	"github.com/eaburns/objc2swift/internal/objclog"
)

var (
	outDir         = flag.String("o", "", "output directory (default: alongside each source file)")
	configPath     = flag.String("config", "", "path to an objc2swift.yaml run configuration")
	verbose        = flag.Bool("v", false, "enable verbose output")
	dumpAST        = flag.Bool("dump-ast", false, "print each file's parsed concrete tree instead of emitting Swift")
	dumpIntentions = flag.Bool("dump-intentions", false, "print the built intention graph instead of emitting Swift")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	pretty.Indent = "    "

	var cfg *config.Config
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			die(err)
		}
		cfg = c
	}

	provider := fsInputSources(flag.Args())

	if *dumpAST || *dumpIntentions {
		dump(provider, cfg)
		return
	}

	opts := objc2swift.Options{
		Config: cfg,
		Log:    objclog.New(os.Stderr, *verbose),
	}
	result, err := objc2swift.Rewrite(context.Background(), provider, fsWriterOutput{dir: *outDir}, opts)
	if err != nil {
		die(err)
	}
	for _, d := range result.Sink.Errors() {
		fmt.Fprintln(os.Stderr, d)
	}
	for _, d := range result.Sink.Warnings() {
		fmt.Fprintln(os.Stderr, d)
	}
	if result.Sink.HasErrors() {
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <source.h|source.m> ...\n", os.Args[0])
	flag.PrintDefaults()
}

func die(err error) {
	if pe, ok := err.(interface{ Tree() *peg.Fail }); ok {
		peg.PrettyWrite(os.Stderr, pe.Tree())
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// fsInputSources implements objc2swift.InputSourcesProvider over a
// fixed list of filesystem paths.
type fsInputSources []string

func (fs fsInputSources) Sources(ctx context.Context) ([]objc2swift.InputSource, error) {
	srcs := make([]objc2swift.InputSource, len(fs))
	for i, path := range fs {
		srcs[i] = fsInputSource{path: path}
	}
	return srcs, nil
}

type fsInputSource struct{ path string }

func (s fsInputSource) SourceName() string { return s.path }

func (s fsInputSource) LoadSource(ctx context.Context) (objc2swift.CodeSource, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return bytesSource(data), nil
}

type bytesSource []byte

func (b bytesSource) Bytes() []byte { return b }

// fsWriterOutput implements objc2swift.WriterOutput by creating a real
// file on disk, under dir when dir is non-empty.
type fsWriterOutput struct{ dir string }

func (w fsWriterOutput) CreateFile(path string) (objc2swift.FileOutput, error) {
	target := path
	if filepath.Ext(target) != ".swift" {
		// The emitted path names the Objective-C source; write beside it
		// rather than over it.
		target += ".swift"
	}
	if w.dir != "" {
		target = filepath.Join(w.dir, filepath.Base(path))
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(target)
	if err != nil {
		return nil, err
	}
	return fsFileOutput{f: f}, nil
}

type fsFileOutput struct{ f *os.File }

func (o fsFileOutput) OutputTarget() objc2swift.RewriterOutputTarget { return o.f }
func (o fsFileOutput) Close() error                                 { return o.f.Close() }

// dump parses (and, for -dump-intentions, builds) every source and
// pretty-prints the requested stage instead of emitting Swift.
func dump(provider fsInputSources, cfg *config.Config) {
	sink := diag.NewSink(nil)
	var parsed []intent.ParsedFile
	for _, path := range provider {
		data, err := os.ReadFile(path)
		if err != nil {
			die(err)
		}
		p := ast.NewParser(path, string(data), 0, sink)
		root, err := p.Parse()
		if err != nil {
			die(err)
		}
		if *dumpAST {
			fmt.Printf("// %s\n", path)
			pretty.Print(root)
			fmt.Println()
			continue
		}
		parsed = append(parsed, intent.ParsedFile{Path: path, Root: root, NonnullRegions: p.NonnullRegions()})
	}
	if *dumpIntentions {
		access := intent.AccessInternal
		if cfg != nil {
			access = cfg.AccessLevel()
		}
		graph := intent.Build(parsed, sink, access)
		sink.SortAndDedup()
		fmt.Println(intent.DebugString(graph))
		for _, d := range sink.Warnings() {
			fmt.Fprintln(os.Stderr, d)
		}
	}
}
