// Package ast defines the concrete syntax tree produced by the
// Objective-C parser: class interfaces, implementations, categories,
// protocols, ivar blocks, properties, method signatures and the small
// type-expression sum. Every node carries its source range; containers
// that the parser builds with the temporary-context pattern also carry a
// Children slice holding every child — including the KeywordNodes for
// at-keywords like @interface/@end — in source order, so callers (the
// emitter, or a test) can recover any one of them by filtered lookup
// instead of the parser having to expose a bespoke accessor per keyword.
package ast

import "github.com/eaburns/objc2swift/internal/srcrange"

// Node is anything with a source range. Parent links are intentionally
// absent: the concrete tree is walked top-down by the intention builder,
// which never needs to walk upward, so there is nothing to keep in sync
// and nothing that could become a reference cycle.
type Node interface {
	Range() srcrange.Range
}

type base struct{ rng srcrange.Range }

func (b base) Range() srcrange.Range { return b.rng }

func newBase(r srcrange.Range) base { return base{r} }

// KeywordNode records one at-keyword or structural keyword token
// (@interface, @end, @property, @synthesize, @dynamic, <, >) as a
// first-class child so it survives into Children lists.
type KeywordNode struct {
	base
	Text string
}

func NewKeyword(r srcrange.Range, text string) *KeywordNode {
	return &KeywordNode{newBase(r), text}
}

// Ident is a bare identifier reference (a class name, protocol name,
// ivar name, or property name).
type Ident struct {
	base
	Name string
}

func NewIdent(r srcrange.Range, name string) Ident { return Ident{newBase(r), name} }

// GlobalContextNode is the root of one file's concrete tree, produced by
// ParseMain.
type GlobalContextNode struct {
	base
	Decls []Node
}

// ClassForwardDecl models `@class A, B;` — legal on its own, standing for
// no more than a promise that the name exists, and produces no intention.
type ClassForwardDecl struct {
	base
	Children []Node // KeywordNode(@class), Idents, KeywordNode(;)
	Names    []Ident
}

// ProtocolReferenceList is `<P1, P2, ...>`. Recovery on a malformed list
// still returns a list with whatever protocols were successfully parsed
// before the follow-set token, and keeps the angle-bracket tokens as
// children regardless.
type ProtocolReferenceList struct {
	base
	LAngle    *KeywordNode
	RAngle    *KeywordNode
	Protocols []Ident
}

// Visibility is an ivar's access, defaulting to Protected when no
// @private/@public/@package marker precedes it.
type Visibility int

const (
	Protected Visibility = iota
	Private
	Public
	Package
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "@private"
	case Public:
		return "@public"
	case Package:
		return "@package"
	default:
		return "@protected"
	}
}

// IVarDecl is one `Type name;` inside an ivar block.
type IVarDecl struct {
	base
	Visibility Visibility
	Type       ObjcType
	Name       Ident
}

// IVarsList is the `{ ... }` block following a class interface's name
// (and optional superclass/protocol list) or an implementation's name.
// Categories do not parse an ivar block.
type IVarsList struct {
	base
	Children []Node
	LBrace   *KeywordNode
	RBrace   *KeywordNode
	Ivars    []*IVarDecl
}

// PropertyAttr is one paren-delimited attribute of a @property
// declaration: a bare keyword (nonatomic, copy, strong, ...) or a
// key-value attribute (getter=, setter=), where Value is non-empty only
// for the latter.
type PropertyAttr struct {
	Name  string
	Value string
}

// PropertyDeclaration is `@property (attrs) Type name;`.
type PropertyDeclaration struct {
	base
	AtProperty *KeywordNode
	Attrs      []PropertyAttr
	Type       ObjcType
	Name       Ident
}

func (p *PropertyDeclaration) Attr(name string) (PropertyAttr, bool) {
	for _, a := range p.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return PropertyAttr{}, false
}

// SelectorPart is one keyword:type name component of a method selector,
// or — when it is the sole element with an empty ParamName and nil
// ParamType — a bare unary selector whose entire name lives in Keyword.
type SelectorPart struct {
	Keyword   string
	ParamType ObjcType
	ParamName string
}

// SelectorString renders the selector the way Objective-C source would:
// "foo" for a unary selector, "initWithThing:" / "initWithThing:andThat:"
// for a keyword selector.
func SelectorString(parts []SelectorPart) string {
	if len(parts) == 1 && parts[0].ParamName == "" && parts[0].ParamType == nil {
		return parts[0].Keyword
	}
	s := ""
	for _, p := range parts {
		s += p.Keyword + ":"
	}
	return s
}

// MethodSignature is one `- (RetType)sel:(T)name ...;` or `... { ... }`.
// HasBody is true when a `{ ... }` body followed the signature (inside an
// interface or protocol that body is also reported as an error);
// BodyRange then spans the balanced `{ ... }` verbatim — the pipeline
// never interprets statements inside it, so nothing beyond "a body was
// present" survives into the intention graph.
type MethodSignature struct {
	base
	IsClassMethod bool
	ReturnType    ObjcType
	Selector      []SelectorPart
	HasBody       bool
	BodyRange     srcrange.Range
}

func (m *MethodSignature) SelectorString() string { return SelectorString(m.Selector) }

// ClassInterface is `@interface Name : Super <Protos> { ivars } props methods @end`.
type ClassInterface struct {
	base
	Children   []Node
	Name       Ident
	Superclass *Ident
	Protocols  *ProtocolReferenceList
	Ivars      *IVarsList
	Properties []*PropertyDeclaration
	Methods    []*MethodSignature
}

// Keyword returns the first child KeywordNode whose text matches, or nil.
func (c *ClassInterface) Keyword(text string) *KeywordNode { return findKeyword(c.Children, text) }

// ClassImplementation is `@implementation Name (ivars) propimpls methods @end`.
type ClassImplementation struct {
	base
	Children      []Node
	Name          Ident
	Ivars         *IVarsList
	PropertyImpls []*PropertyImplementation
	Methods       []*MethodSignature
}

func (c *ClassImplementation) Keyword(text string) *KeywordNode { return findKeyword(c.Children, text) }

// ClassCategory is `@interface Name (CategoryName) <Protos> methods @end`
// or the matching @implementation form; CategoryName is nil for a class
// extension (`@interface Name () ... @end`).
type ClassCategory struct {
	base
	Children     []Node
	IsImpl       bool
	Name         Ident
	CategoryName *Ident
	Protocols    *ProtocolReferenceList
	Properties   []*PropertyDeclaration
	Methods      []*MethodSignature
}

func (c *ClassCategory) Keyword(text string) *KeywordNode { return findKeyword(c.Children, text) }

// ProtocolDecl is `@protocol Name <Supers> @required/@optional methods @end`.
type ProtocolDecl struct {
	base
	Children   []Node
	Name       Ident
	Protocols  *ProtocolReferenceList
	Properties []*PropertyDeclaration
	Methods    []*MethodSignature
	// OptionalFrom holds, for each entry in Methods at the same index,
	// whether it followed an @optional marker rather than @required
	// (or the implicit @required at the top of the protocol body).
	OptionalFrom []bool
}

func (c *ProtocolDecl) Keyword(text string) *KeywordNode { return findKeyword(c.Children, text) }

// PropImplKind distinguishes @synthesize from @dynamic.
type PropImplKind int

const (
	Synthesize PropImplKind = iota
	Dynamic
)

// PropertyImplItem is one comma-separated entry of a @synthesize/@dynamic
// statement. Ivar is nil unless the source explicitly wrote `name=ivar`.
type PropertyImplItem struct {
	Name string
	Ivar *string
}

// PropertyImplementation is one `@synthesize a, b=c;` or `@dynamic d;` statement.
type PropertyImplementation struct {
	base
	Kind      PropImplKind
	AtKeyword *KeywordNode
	Items     []PropertyImplItem
}

func findKeyword(children []Node, text string) *KeywordNode {
	for _, c := range children {
		if kw, ok := c.(*KeywordNode); ok && kw.Text == text {
			return kw
		}
	}
	return nil
}

// AllKeywords returns every KeywordNode among children, in order.
func AllKeywords(children []Node) []*KeywordNode {
	var out []*KeywordNode
	for _, c := range children {
		if kw, ok := c.(*KeywordNode); ok {
			out = append(out, kw)
		}
	}
	return out
}
