package swift

import (
	"strings"
	"testing"

	"github.com/eaburns/objc2swift/internal/intent"
	"github.com/eaburns/objc2swift/internal/objc/ast"
)

// interfaceOnlyGraph builds the graph an "objc.h" containing
//
//	@interface MyClass
//	- (void)myMethod;
//	@end
//
// merges to: one Type with no superclass and one bodyless void method.
func interfaceOnlyGraph() *intent.File {
	myMethod := &intent.Method{
		Header:     intent.Header{Kind: intent.KindMethod, AccessLevel: intent.AccessInternal},
		Selector:   []ast.SelectorPart{{Keyword: "myMethod"}},
		ReturnType: ast.StructType{Name: "void"},
	}
	myClass := &intent.Type{
		Header:  intent.Header{Kind: intent.KindType, AccessLevel: intent.AccessInternal},
		Name:    "MyClass",
		Methods: []*intent.Method{myMethod},
	}
	return &intent.File{
		Header: intent.Header{Kind: intent.KindFile},
		Path:   "objc.h",
		Types:  []*intent.Type{myClass},
	}
}

func TestWriteFileInterfaceOnlyDefaultsToNSObject(t *testing.T) {
	var buf strings.Builder
	e := NewEmitter(&buf, "    ")
	if err := e.WriteFile(interfaceOnlyGraph()); err != nil {
		t.Fatalf("WriteFile: %v", err)
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
	if strings.Contains(got, "-> Void") {
		t.Errorf("void return type must be omitted, got:\n%s", got)
	}
}

// headerAndImplGraph models objc.h + objc.m both declaring/defining
// `-(void)myMethod`: the builder collapses this to one intention whose
// output path is derived from the .m file, and HasBody comes from the
// implementation.
func headerAndImplGraph() *intent.File {
	myMethod := &intent.Method{
		Header:     intent.Header{Kind: intent.KindMethod, AccessLevel: intent.AccessInternal},
		Selector:   []ast.SelectorPart{{Keyword: "myMethod"}},
		ReturnType: ast.StructType{Name: "void"},
		HasBody:    true,
	}
	myClass := &intent.Type{
		Header:  intent.Header{Kind: intent.KindType, AccessLevel: intent.AccessInternal},
		Name:    "MyClass",
		Methods: []*intent.Method{myMethod},
	}
	return &intent.File{
		Header: intent.Header{Kind: intent.KindFile},
		Path:   "objc.m",
		Types:  []*intent.Type{myClass},
	}
}

func TestWriteFileHeaderAndImplCollapseToImplPath(t *testing.T) {
	var buf strings.Builder
	e := NewEmitter(&buf, "    ")
	if err := e.WriteFile(headerAndImplGraph()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "// End of file objc.m") {
		t.Errorf("expected trailer naming objc.m, got:\n%s", got)
	}
	if strings.Contains(got, "objc.h") {
		t.Errorf("header must not be re-emitted, got:\n%s", got)
	}
}

func TestWriteFilePropertyModifiersAndOwnership(t *testing.T) {
	weakProp := &intent.Property{
		Header:            intent.Header{Kind: intent.KindProperty, AccessLevel: intent.AccessInternal},
		Name:              "delegate",
		ObjCType:          ast.IDType{},
		Nullability:       intent.NullabilityNullable,
		Storage:           intent.ValueStorage{Ownership: intent.Weak},
		SetterAccessLevel: intent.AccessInternal,
	}
	readonlyProp := &intent.Property{
		Header:            intent.Header{Kind: intent.KindProperty, AccessLevel: intent.AccessInternal},
		Name:              "name",
		ObjCType:          ast.PointerType{Elem: ast.StructType{Name: "NSString"}},
		Nullability:       intent.NullabilityNonnull,
		Storage:           intent.ValueStorage{Ownership: intent.Strong},
		SetterAccessLevel: intent.AccessPrivate,
		IsReadonly:        true,
	}
	dynamicProp := &intent.Property{
		Header:    intent.Header{Kind: intent.KindProperty, AccessLevel: intent.AccessInternal},
		Name:      "computed",
		ObjCType:  ast.StructType{Name: "NSInteger"},
		IsDynamic: true,
	}
	typ := &intent.Type{
		Header:     intent.Header{Kind: intent.KindType, AccessLevel: intent.AccessInternal},
		Name:       "Thing",
		Properties: []*intent.Property{weakProp, readonlyProp, dynamicProp},
	}
	f := &intent.File{Header: intent.Header{Kind: intent.KindFile}, Path: "thing.h", Types: []*intent.Type{typ}}

	var buf strings.Builder
	if err := NewEmitter(&buf, "    ").WriteFile(f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"weak var delegate: AnyObject?",
		"private(set) var name: String",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "computed") {
		t.Errorf("@dynamic property must be suppressed, got:\n%s", got)
	}
}

func TestFuncNameAndParamsLabelsFollowingKeywords(t *testing.T) {
	selector := []ast.SelectorPart{
		{Keyword: "initWithThing", ParamName: "thing", ParamType: ast.StructType{Name: "NSInteger"}},
		{Keyword: "andThat", ParamName: "y", ParamType: ast.StructType{Name: "NSInteger"}},
	}
	params := []intent.Param{
		{Keyword: "initWithThing", Name: "thing", ObjCType: ast.StructType{Name: "NSInteger"}, Nullability: intent.NullabilityNonnull},
		{Keyword: "andThat", Name: "y", ObjCType: ast.StructType{Name: "NSInteger"}, Nullability: intent.NullabilityNonnull},
	}
	name, plist := funcNameAndParams(selector, params)
	if name != "initWithThing" {
		t.Errorf("name = %q, want initWithThing", name)
	}
	want := "(_ thing: Int, andThat y: Int)"
	if plist != want {
		t.Errorf("plist = %q, want %q", plist, want)
	}
}
