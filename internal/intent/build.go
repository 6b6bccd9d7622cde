package intent

import (
	"strings"

	"github.com/eaburns/objc2swift/internal/diag"
	"github.com/eaburns/objc2swift/internal/objc/ast"
	"github.com/eaburns/objc2swift/internal/srcrange"
)

// ParsedFile is one input file's concrete tree, plus the lexer's
// NS_ASSUME_NONNULL region scan needed to resolve nullability that no
// explicit specifier settles.
type ParsedFile struct {
	Path           string
	Root           *ast.GlobalContextNode
	NonnullRegions []srcrange.Range
}

// Graph is the complete Intention graph produced by Build: every File
// that the emitter will eventually walk, in the order their names were
// first encountered.
type Graph struct {
	Files []*File
}

// classState accumulates everything known about one class name while
// files are visited, before the merge resolves it into a single *Type.
type classState struct {
	name         string
	iface        *ast.ClassInterface
	ifacePath    string
	ifaceRegions []srcrange.Range
	impl         *ast.ClassImplementation
	implPath     string
	categories   []*ast.ClassCategory
	catPaths     []string
}

// Build folds every input file's concrete tree into one Intention graph,
// merging same-named @interface/@implementation pairs. Order of files
// determines merge precedence and output ordering.
func Build(files []ParsedFile, sink *diag.Sink, defaultAccess AccessLevel) *Graph {
	var order []string
	states := map[string]*classState{}
	var protocols []*ProtocolBuild

	stateFor := func(name string) *classState {
		if s, ok := states[name]; ok {
			return s
		}
		s := &classState{name: name}
		states[name] = s
		order = append(order, name)
		return s
	}

	for _, f := range files {
		for _, decl := range f.Root.Decls {
			switch n := decl.(type) {
			case *ast.ClassForwardDecl:
				// Legal on its own, produces no intention.
			case *ast.ClassInterface:
				s := stateFor(n.Name.Name)
				s.iface = n
				s.ifacePath = f.Path
				s.ifaceRegions = f.NonnullRegions
			case *ast.ClassImplementation:
				s := stateFor(n.Name.Name)
				s.impl = n
				s.implPath = f.Path
			case *ast.ClassCategory:
				s := stateFor(n.Name.Name)
				s.categories = append(s.categories, n)
				s.catPaths = append(s.catPaths, f.Path)
			case *ast.ProtocolDecl:
				protocols = append(protocols, &ProtocolBuild{Node: n, Path: f.Path, Regions: f.NonnullRegions})
			}
		}
	}

	byPath := map[string]*File{}
	var fileOrder []string
	fileFor := func(path string) *File {
		if fl, ok := byPath[path]; ok {
			return fl
		}
		fl := &File{Header: Header{Kind: KindFile}, Path: path}
		byPath[path] = fl
		fileOrder = append(fileOrder, path)
		return fl
	}

	for _, name := range order {
		s := states[name]
		typ := buildType(s, sink, defaultAccess)
		if typ == nil {
			continue
		}
		outPath := swiftPath(s)
		fl := fileFor(outPath)
		fl.Types = append(fl.Types, typ)
	}
	for _, pb := range protocols {
		p := buildProtocol(pb, defaultAccess)
		fl := fileFor(swiftPathFromSource(pb.Path))
		fl.Protocols = append(fl.Protocols, p)
	}

	g := &Graph{}
	for _, path := range fileOrder {
		g.Files = append(g.Files, byPath[path])
	}
	return g
}

// ProtocolBuild carries one @protocol's raw material through Build.
type ProtocolBuild struct {
	Node    *ast.ProtocolDecl
	Path    string
	Regions []srcrange.Range
}

// swiftPath implements the header-only-vs-implementation file naming
// rule: an implementation file's name wins whenever one exists; the
// header is not re-emitted.
func swiftPath(s *classState) string {
	if s.impl != nil {
		return swiftPathFromSource(s.implPath)
	}
	if s.iface != nil {
		return swiftPathFromSource(s.ifacePath)
	}
	return swiftPathFromSource(s.catPaths[0])
}

// swiftPathFromSource derives the emitted file's path from an input
// path: unchanged. The "// End of file <name>" trailer names the source
// file the emitted declarations were derived from, header or
// implementation, verbatim.
func swiftPathFromSource(path string) string {
	return path
}

func buildType(s *classState, sink *diag.Sink, defaultAccess AccessLevel) *Type {
	if s.iface == nil && s.impl == nil && len(s.categories) == 0 {
		return nil
	}
	t := &Type{Header: Header{Kind: KindType, AccessLevel: defaultAccess}, Name: s.name}
	if s.iface != nil {
		t.Header.Source = s.iface
		if s.iface.Superclass != nil {
			t.Superclass = s.iface.Superclass.Name
		}
		if s.iface.Protocols != nil {
			for _, p := range s.iface.Protocols.Protocols {
				t.Conformances = append(t.Conformances, p.Name)
			}
		}
		buildPropertiesFromInterface(t, s.iface, s.ifaceRegions, defaultAccess)
	}

	// Method merge by selector equality: interface methods keep their
	// declared shape; a body attaches when the implementation declares
	// the same selector. Implementation-only selectors — those absent
	// from the interface, or present when there is no interface at all —
	// become members too, with a warning rather than an error in the
	// mismatch case.
	implBySelector := map[string]*ast.MethodSignature{}
	if s.impl != nil {
		for _, m := range s.impl.Methods {
			implBySelector[methodKey(m)] = m
		}
	}
	seen := map[string]bool{}
	if s.iface != nil {
		for _, m := range s.iface.Methods {
			key := methodKey(m)
			seen[key] = true
			impl := implBySelector[key]
			addMethodOrInit(t, m, impl != nil, s.ifaceRegions, defaultAccess)
		}
	}
	if s.impl != nil {
		for _, m := range s.impl.Methods {
			key := methodKey(m)
			if seen[key] {
				continue
			}
			if s.iface != nil {
				sink.Warningf(m.Range(), "@implementation declares selector %q not present in @interface for %s", m.SelectorString(), s.name)
			}
			addMethodOrInit(t, m, true, s.ifaceRegions, defaultAccess)
			seen[key] = true
		}
	}
	for _, cat := range s.categories {
		for _, m := range cat.Methods {
			key := methodKey(m)
			if seen[key] {
				continue
			}
			addMethodOrInit(t, m, m.HasBody, s.ifaceRegions, defaultAccess)
			seen[key] = true
		}
		for _, p := range cat.Properties {
			regions := s.ifaceRegions
			t.Properties = append(t.Properties, buildProperty(p, regions, defaultAccess))
		}
		if t.Header.Source == nil {
			t.Header.Source = cat
		}
	}
	if s.iface == nil && s.impl != nil {
		t.Header.Source = s.impl
	}
	applyPropertyImpls(t, s.impl)
	return t
}

func methodKey(m *ast.MethodSignature) string {
	prefix := "-"
	if m.IsClassMethod {
		prefix = "+"
	}
	return prefix + m.SelectorString()
}

func addMethodOrInit(t *Type, m *ast.MethodSignature, hasBody bool, regions []srcrange.Range, defaultAccess AccessLevel) {
	if isInitSelector(m) {
		init := &Init{
			Header:        Header{Kind: KindInit, Source: m, AccessLevel: defaultAccess},
			Selector:      m.Selector,
			Params:        selectorParams(m.Selector, regions),
			IsConvenience: t.Superclass != "",
			IsFailable:    isNullableReturn(m.ReturnType),
			HasBody:       hasBody,
		}
		t.Inits = append(t.Inits, init)
		return
	}
	meth := &Method{
		Header:        Header{Kind: KindMethod, Source: m, AccessLevel: defaultAccess},
		Selector:      m.Selector,
		Params:        selectorParams(m.Selector, regions),
		IsClassMethod: m.IsClassMethod,
		ReturnType:    m.ReturnType,
		ReturnNull:    resolveNullability(m.ReturnType, m.Range(), regions),
		HasBody:       hasBody,
	}
	t.Methods = append(t.Methods, meth)
}

// isInitSelector recognises Objective-C's initializer convention: a
// selector's first keyword is exactly "init" or starts with "initWith",
// returning instancetype or id. This is a naming convention, not a
// grammar rule — Objective-C has no dedicated initializer syntax — so it
// is documented here rather than in the parser.
func isInitSelector(m *ast.MethodSignature) bool {
	if m.IsClassMethod || len(m.Selector) == 0 {
		return false
	}
	kw := m.Selector[0].Keyword
	if kw != "init" && !strings.HasPrefix(kw, "initWith") {
		return false
	}
	switch t := ast.Unwrap(m.ReturnType).(type) {
	case ast.StructType:
		return t.Name == "instancetype" || t.Name == "id"
	case ast.IDType:
		return true
	default:
		return false
	}
}

func isNullableReturn(t ast.ObjcType) bool {
	return ast.HasSpecifier(t, "nullable") || ast.HasSpecifier(t, "_Nullable")
}

func selectorParams(parts []ast.SelectorPart, regions []srcrange.Range) []Param {
	var params []Param
	for _, p := range parts {
		if p.ParamType == nil {
			continue
		}
		params = append(params, Param{Keyword: p.Keyword, Name: p.ParamName, ObjCType: p.ParamType, Nullability: explicitOrUnspecified(p.ParamType)})
	}
	return params
}

func explicitOrUnspecified(t ast.ObjcType) Nullability {
	switch {
	case ast.HasSpecifier(t, "_Nonnull") || ast.HasSpecifier(t, "nonnull"):
		return NullabilityNonnull
	case ast.HasSpecifier(t, "_Nullable") || ast.HasSpecifier(t, "nullable"):
		return NullabilityNullable
	default:
		return NullabilityUnspecified
	}
}

func resolveNullability(t ast.ObjcType, declRange srcrange.Range, regions []srcrange.Range) Nullability {
	if n := explicitOrUnspecified(t); n != NullabilityUnspecified {
		return n
	}
	for _, r := range regions {
		if r.Start <= declRange.Start && declRange.Start < r.End {
			return NullabilityNonnull
		}
	}
	return NullabilityUnspecified
}

// buildPropertiesFromInterface takes @property declarations verbatim and
// additionally promotes ivars: ivars in the interface's block that no
// @property already names become stored properties in their own right,
// in source order ahead of the declared @property members (ivar blocks
// are lexically first).
func buildPropertiesFromInterface(t *Type, iface *ast.ClassInterface, regions []srcrange.Range, defaultAccess AccessLevel) {
	declared := map[string]bool{}
	for _, p := range iface.Properties {
		declared[strings.TrimPrefix(p.Name.Name, "_")] = true
	}
	if iface.Ivars != nil {
		for _, iv := range iface.Ivars.Ivars {
			key := strings.TrimPrefix(iv.Name.Name, "_")
			if declared[key] {
				continue
			}
			t.Properties = append(t.Properties, buildIvarProperty(iv, regions, defaultAccess))
		}
	}
	for _, p := range iface.Properties {
		t.Properties = append(t.Properties, buildProperty(p, regions, defaultAccess))
	}
}

func buildIvarProperty(iv *ast.IVarDecl, regions []srcrange.Range, defaultAccess AccessLevel) *Property {
	access := defaultAccess
	switch iv.Visibility {
	case ast.Private:
		access = AccessPrivate
	case ast.Public:
		access = AccessPublic
	}
	return &Property{
		Header:            Header{Kind: KindProperty, Source: iv, AccessLevel: access},
		Name:              iv.Name.Name,
		ObjCType:          iv.Type,
		Nullability:       resolveNullability(iv.Type, iv.Range(), regions),
		Storage:           ValueStorage{Ownership: InferOwnership(iv.Type, nil)},
		SetterAccessLevel: access,
	}
}

func buildProperty(p *ast.PropertyDeclaration, regions []srcrange.Range, defaultAccess AccessLevel) *Property {
	readonly := IsReadonly(p.Attrs)
	access := defaultAccess
	setterAccess := access
	if readonly {
		setterAccess = AccessPrivate
	}
	prop := &Property{
		Header:            Header{Kind: KindProperty, Source: p, AccessLevel: access},
		Name:              p.Name.Name,
		ObjCType:          p.Type,
		Nullability:       resolveNullability(p.Type, p.Range(), regions),
		Storage:           ValueStorage{Ownership: InferOwnership(p.Type, p.Attrs)},
		SetterAccessLevel: setterAccess,
		IsReadonly:        readonly,
	}
	if g, ok := p.Attr("getter"); ok {
		prop.GetterName = g.Value
	}
	if st, ok := p.Attr("setter"); ok {
		prop.SetterName = st.Value
	}
	return prop
}

// applyPropertyImpls resolves @synthesize/@dynamic statements from the
// implementation against the type's already-built properties: @dynamic
// suppresses storage generation; @synthesize's explicit `=ivar` backing
// name is not tracked further since nothing downstream emits a separate
// ivar declaration alongside a property.
func applyPropertyImpls(t *Type, impl *ast.ClassImplementation) {
	if impl == nil {
		return
	}
	dynamic := map[string]bool{}
	for _, pi := range impl.PropertyImpls {
		if pi.Kind != ast.Dynamic {
			continue
		}
		for _, item := range pi.Items {
			dynamic[item.Name] = true
		}
	}
	if len(dynamic) == 0 {
		return
	}
	for _, p := range t.Properties {
		if dynamic[p.Name] {
			p.IsDynamic = true
		}
	}
}

func buildProtocol(pb *ProtocolBuild, defaultAccess AccessLevel) *Protocol {
	n := pb.Node
	p := &Protocol{Header: Header{Kind: KindProtocol, Source: n, AccessLevel: defaultAccess}, Name: n.Name.Name}
	if n.Protocols != nil {
		for _, ref := range n.Protocols.Protocols {
			p.Inherits = append(p.Inherits, ref.Name)
		}
	}
	for _, prop := range n.Properties {
		p.Properties = append(p.Properties, buildProperty(prop, pb.Regions, defaultAccess))
	}
	for i, m := range n.Methods {
		meth := &Method{
			Header:        Header{Kind: KindMethod, Source: m, AccessLevel: defaultAccess},
			Selector:      m.Selector,
			Params:        selectorParams(m.Selector, pb.Regions),
			IsClassMethod: m.IsClassMethod,
			ReturnType:    m.ReturnType,
			ReturnNull:    resolveNullability(m.ReturnType, m.Range(), pb.Regions),
		}
		if i < len(n.OptionalFrom) {
			meth.IsOptional = n.OptionalFrom[i]
		}
		p.Methods = append(p.Methods, meth)
	}
	return p
}
