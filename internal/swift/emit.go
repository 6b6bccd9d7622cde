package swift

import (
	"fmt"
	"io"
	"strings"

	"github.com/eaburns/objc2swift/internal/intent"
	"github.com/eaburns/objc2swift/internal/objc/ast"
)

// Emitter writes one Swift file's text with a guaranteed-balanced
// indentation discipline: every Indent is followed by a matching Deindent
// in the same function, which has no return path between the two. The
// calls are direct; no defer is used.
type Emitter struct {
	w      io.Writer
	indent string
	depth  int
	err    error
}

// NewEmitter returns an Emitter writing to w, indenting each nested
// level by indent (four spaces unless internal/config overrides it).
func NewEmitter(w io.Writer, indent string) *Emitter {
	return &Emitter{w: w, indent: indent}
}

func (e *Emitter) Indent()   { e.depth++ }
func (e *Emitter) Deindent() { e.depth-- }

func (e *Emitter) line(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, err := fmt.Fprintf(e.w, "%s%s\n", strings.Repeat(e.indent, e.depth), fmt.Sprintf(format, args...))
	if err != nil {
		e.err = err
	}
}

func (e *Emitter) blank() {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
	}
}

// WriteFile renders f in full, ending with an "// End of file" trailer
// naming the emitted path.
func (e *Emitter) WriteFile(f *intent.File) error {
	first := true
	sep := func() {
		if !first {
			e.blank()
		}
		first = false
	}
	for _, ta := range f.Typealiases {
		sep()
		e.writeTypealias(ta)
	}
	for _, v := range f.Vars {
		sep()
		e.writeGlobalVar(v)
	}
	for _, fn := range f.Funcs {
		sep()
		e.writeGlobalFn(fn)
	}
	for _, t := range f.Types {
		sep()
		e.writeType(t)
	}
	for _, p := range f.Protocols {
		sep()
		e.writeProtocol(p)
	}
	e.line("// End of file %s", f.Path)
	return e.err
}

// writeTypealias, writeGlobalVar and writeGlobalFn give File's other
// three member kinds an emission path alongside writeType/writeProtocol,
// even though nothing in the current front end populates them yet.
func (e *Emitter) writeTypealias(t *intent.Typealias) {
	decl := "typealias " + t.Name + " = " + t.Underlying
	e.line("%s", withModifiers(decl, intent.HeaderOf(t)))
}

func (e *Emitter) writeGlobalVar(v *intent.GlobalVar) {
	kw := "var"
	if v.Storage.IsConstant {
		kw = "let"
	}
	swType := MapType(v.ObjCType, v.Nullability)
	decl := kw + " " + v.Name + ": " + swType
	e.line("%s", withModifiers(decl, intent.HeaderOf(v)))
}

func (e *Emitter) writeGlobalFn(fn *intent.GlobalFn) {
	var b strings.Builder
	b.WriteString("func ")
	b.WriteString(fn.Name)
	b.WriteByte('(')
	for i, name := range fn.ParamNames {
		if i > 0 {
			b.WriteString(", ")
		}
		swType := ""
		if i < len(fn.ParamSwift) {
			swType = fn.ParamSwift[i]
		}
		fmt.Fprintf(&b, "_ %s: %s", name, swType)
	}
	b.WriteByte(')')
	if !isVoidReturn(fn.ReturnSwift) {
		b.WriteString(" -> ")
		b.WriteString(fn.ReturnSwift)
	}
	e.line("%s {", withModifiers(b.String(), intent.HeaderOf(fn)))
	e.Indent()
	e.Deindent()
	e.line("}")
}

func (e *Emitter) writeType(t *intent.Type) {
	e.line("%s {", classHeader(t))
	e.Indent()
	e.writeMembers(t.Properties, t.Inits, t.Methods)
	e.Deindent()
	e.line("}")
}

func (e *Emitter) writeProtocol(p *intent.Protocol) {
	e.line("%s {", protocolHeader(p))
	e.Indent()
	for _, prop := range p.Properties {
		e.writeProtocolProperty(prop)
	}
	for _, m := range p.Methods {
		e.writeProtocolMethod(m)
	}
	e.Deindent()
	e.line("}")
}

func classHeader(t *intent.Type) string {
	super := t.Superclass
	if super == "" {
		super = "NSObject" // Swift's implicit default made explicit at emission.
	}
	parts := append([]string{super}, t.Conformances...)
	head := "class " + t.Name + ": " + strings.Join(parts, ", ")
	return withModifiers(head, intent.HeaderOf(t))
}

func protocolHeader(p *intent.Protocol) string {
	head := "protocol " + p.Name
	if len(p.Inherits) > 0 {
		head += ": " + strings.Join(p.Inherits, ", ")
	}
	return withModifiers(head, intent.HeaderOf(p))
}

func withModifiers(head string, h *intent.Header) string {
	if h.AccessLevel == intent.AccessInternal {
		return head
	}
	return h.AccessLevel.String() + " " + head
}

func (e *Emitter) writeMembers(props []*intent.Property, inits []*intent.Init, methods []*intent.Method) {
	for _, p := range props {
		e.writeProperty(p)
	}
	for _, init := range inits {
		e.writeInit(init)
	}
	for _, m := range methods {
		e.writeMethod(m)
	}
}

func (e *Emitter) writeProperty(p *intent.Property) {
	if p.IsDynamic {
		return // @dynamic: storage generation suppressed.
	}
	mods := Modifiers(p)
	swType := MapType(p.ObjCType, p.Nullability)
	decl := "var " + p.Name + ": " + swType
	e.line("%s", joinModifiers(mods, decl))
}

func (e *Emitter) writeInit(i *intent.Init) {
	mods := Modifiers(i)
	sig := "init" + paramList(i.Selector, i.Params)
	if i.IsFailable {
		sig = "init?" + paramList(i.Selector, i.Params)
	}
	e.line("%s {", joinModifiers(mods, sig))
	e.Indent()
	e.Deindent()
	e.line("}")
}

func (e *Emitter) writeMethod(m *intent.Method) {
	mods := Modifiers(m)
	name, plist := funcNameAndParams(m.Selector, m.Params)
	ret := MapType(m.ReturnType, m.ReturnNull)
	sig := "func " + name + plist
	if !isVoidReturn(ret) {
		sig += " -> " + ret
	}
	e.line("%s {", joinModifiers(mods, sig))
	e.Indent()
	e.Deindent()
	e.line("}")
}

func (e *Emitter) writeProtocolProperty(p *intent.Property) {
	mods := Modifiers(p)
	swType := MapType(p.ObjCType, p.Nullability)
	accessor := "{ get }"
	if !p.IsReadonly {
		accessor = "{ get set }"
	}
	e.line("%s", joinModifiers(mods, fmt.Sprintf("var %s: %s %s", p.Name, swType, accessor)))
}

func (e *Emitter) writeProtocolMethod(m *intent.Method) {
	mods := Modifiers(m)
	name, plist := funcNameAndParams(m.Selector, m.Params)
	ret := MapType(m.ReturnType, m.ReturnNull)
	sig := "func " + name + plist
	if !isVoidReturn(ret) {
		sig += " -> " + ret
	}
	e.line("%s", joinModifiers(mods, sig))
}

func isVoidReturn(swType string) bool {
	return swType == "Void" || swType == "Void!" || swType == "Void?"
}

func joinModifiers(mods []string, tail string) string {
	if len(mods) == 0 {
		return tail
	}
	return strings.Join(mods, " ") + " " + tail
}

// funcNameAndParams derives a Swift method name and parenthesised
// parameter list from an Objective-C selector: the first keyword becomes
// the base name, its own argument (if any) is unlabeled, and every
// following keyword becomes that argument's external label — the
// convention a bridging header importer uses.
func funcNameAndParams(selector []ast.SelectorPart, params []intent.Param) (string, string) {
	if len(selector) == 0 {
		return "", "()"
	}
	name := selector[0].Keyword
	if len(params) == 0 {
		return name, "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		swType := MapType(p.ObjCType, p.Nullability)
		if i == 0 {
			fmt.Fprintf(&b, "_ %s: %s", p.Name, swType)
		} else {
			fmt.Fprintf(&b, "%s %s: %s", p.Keyword, p.Name, swType)
		}
	}
	b.WriteByte(')')
	return name, b.String()
}

// paramList renders just the parenthesised parameter list for an
// initializer, whose base name is always "init".
func paramList(selector []ast.SelectorPart, params []intent.Param) string {
	_, plist := funcNameAndParams(selector, params)
	return plist
}
