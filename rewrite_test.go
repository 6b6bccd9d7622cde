package objc2swift

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/eaburns/objc2swift/internal/config"
)

type memSource struct {
	name string
	text string
}

func (m memSource) SourceName() string { return m.name }
func (m memSource) LoadSource(ctx context.Context) (CodeSource, error) {
	return memCode(m.text), nil
}

type memCode string

func (c memCode) Bytes() []byte { return []byte(c) }

type memProvider []InputSource

func (p memProvider) Sources(ctx context.Context) ([]InputSource, error) { return p, nil }

type memWriter struct {
	files map[string]*bytes.Buffer
}

func newMemWriter() *memWriter { return &memWriter{files: map[string]*bytes.Buffer{}} }

func (w *memWriter) CreateFile(path string) (FileOutput, error) {
	buf := &bytes.Buffer{}
	w.files[path] = buf
	return memFileOutput{buf: buf}, nil
}

type memFileOutput struct{ buf *bytes.Buffer }

func (o memFileOutput) OutputTarget() RewriterOutputTarget { return o.buf }
func (o memFileOutput) Close() error                       { return nil }

func TestRewriteInterfaceOnlyProducesSwift(t *testing.T) {
	src := "@interface MyClass\n- (void)myMethod;\n@end\n"
	provider := memProvider{memSource{name: "objc.h", text: src}}
	out := newMemWriter()

	result, err := Rewrite(context.Background(), provider, out, Options{})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if result.Sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", result.Sink.Errors())
	}
	buf, ok := out.files["objc.h"]
	if !ok {
		t.Fatalf("no file written for objc.h, wrote: %v", keysOf(out.files))
	}
	got := buf.String()
	for _, want := range []string{
		"class MyClass: NSObject {",
		"func myMethod() {",
		"// End of file objc.h",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestRewriteHeaderAndImplementationCollapse(t *testing.T) {
	header := "@interface MyClass\n- (void)myMethod;\n@end\n"
	impl := "@implementation MyClass\n- (void)myMethod {\n}\n@end\n"
	provider := memProvider{
		memSource{name: "objc.h", text: header},
		memSource{name: "objc.m", text: impl},
	}
	out := newMemWriter()

	result, err := Rewrite(context.Background(), provider, out, Options{})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if result.Sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", result.Sink.Errors())
	}
	if _, ok := out.files["objc.h"]; ok {
		t.Errorf("header must not be re-emitted, wrote: %v", keysOf(out.files))
	}
	buf, ok := out.files["objc.m"]
	if !ok {
		t.Fatalf("expected one output file at objc.m, wrote: %v", keysOf(out.files))
	}
	got := buf.String()
	if !strings.Contains(got, "// End of file objc.m") {
		t.Errorf("expected trailer naming objc.m, got:\n%s", got)
	}
}

func TestRewriteAssumeNonnullResolvesInSecondFile(t *testing.T) {
	first := "@interface Other\n- (void)noop;\n@end\n"
	second := "NS_ASSUME_NONNULL_BEGIN\n" +
		"@interface MyClass\n@property (nonatomic, strong) NSString *name;\n@end\n" +
		"NS_ASSUME_NONNULL_END\n"
	provider := memProvider{
		memSource{name: "other.h", text: first},
		memSource{name: "objc.h", text: second},
	}
	out := newMemWriter()

	result, err := Rewrite(context.Background(), provider, out, Options{})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if result.Sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", result.Sink.Errors())
	}
	buf, ok := out.files["objc.h"]
	if !ok {
		t.Fatalf("no file written for objc.h, wrote: %v", keysOf(out.files))
	}
	got := buf.String()
	if !strings.Contains(got, "var name: String") {
		t.Errorf("expected a non-optional String from the assume-nonnull region even though objc.h is not the first file in the batch, got:\n%s", got)
	}
	if strings.Contains(got, "String!") || strings.Contains(got, "String?") {
		t.Errorf("nonnull region must not degrade to an optional once its file has a non-zero base offset, got:\n%s", got)
	}
}

func TestRewriteConfigDefaultAccessAppliesToDeclarations(t *testing.T) {
	src := "@interface MyClass\n- (void)myMethod;\n@end\n"
	provider := memProvider{memSource{name: "objc.h", text: src}}
	out := newMemWriter()
	opts := Options{Config: &config.Config{DefaultAccess: "public"}}

	result, err := Rewrite(context.Background(), provider, out, opts)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if result.Sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", result.Sink.Errors())
	}
	buf, ok := out.files["objc.h"]
	if !ok {
		t.Fatalf("no file written for objc.h, wrote: %v", keysOf(out.files))
	}
	got := buf.String()
	for _, want := range []string{"public class MyClass: NSObject {", "public func myMethod() {"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q for default_access: public, got:\n%s", want, got)
		}
	}
}

func keysOf(m map[string]*bytes.Buffer) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}
