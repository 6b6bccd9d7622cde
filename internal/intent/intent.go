// Package intent implements the Intention graph: the language-neutral,
// semantically enriched intermediate representation between the
// Objective-C parser and the Swift emitter. Build folds the concrete
// trees of every input file into one graph, merging each @interface with
// its matching @implementation and promoting ivars to stored properties
// where the interface doesn't already declare them.
//
// Intentions are a tagged sum rather than a class hierarchy: every
// concrete intention embeds Header, and decorators (package swift)
// dispatch by type assertion on the concrete intention instead of on a
// virtual method.
package intent

import "github.com/eaburns/objc2swift/internal/objc/ast"

// Kind tags a concrete intention.
type Kind int

const (
	KindFile Kind = iota
	KindType
	KindProtocol
	KindProperty
	KindMethod
	KindInit
	KindGlobalFn
	KindGlobalVar
	KindTypealias
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindType:
		return "type"
	case KindProtocol:
		return "protocol"
	case KindProperty:
		return "property"
	case KindMethod:
		return "method"
	case KindInit:
		return "init"
	case KindGlobalFn:
		return "globalFn"
	case KindGlobalVar:
		return "globalVar"
	case KindTypealias:
		return "typealias"
	default:
		return "intention"
	}
}

// AccessLevel is a Swift access modifier, ordered from most to least
// restrictive so callers can compare narrowing with plain "<".
type AccessLevel int

const (
	AccessPrivate AccessLevel = iota
	AccessFilePrivate
	AccessInternal
	AccessPublic
	AccessOpen
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessFilePrivate:
		return "fileprivate"
	case AccessInternal:
		return "internal"
	case AccessPublic:
		return "public"
	case AccessOpen:
		return "open"
	default:
		return "internal"
	}
}

// Ownership is a property's memory-management discipline.
type Ownership int

const (
	Strong Ownership = iota
	Weak
	UnownedSafe
	UnownedUnsafe
)

func (o Ownership) String() string {
	switch o {
	case Weak:
		return "weak"
	case UnownedSafe:
		return "unowned(safe)"
	case UnownedUnsafe:
		return "unowned(unsafe)"
	default:
		return "strong"
	}
}

// Nullability resolves a three-way question: explicit nullable/nonnull
// annotation on the type itself, or — absent one — whichever
// NS_ASSUME_NONNULL region the declaration falls in, or Unspecified if
// neither applies (which the type mapper renders as an
// implicitly-unwrapped optional).
type Nullability int

const (
	NullabilityUnspecified Nullability = iota
	NullabilityNonnull
	NullabilityNullable
)

// ValueStorage is the storage discipline of a stored property or ivar.
type ValueStorage struct {
	Type       string
	Ownership  Ownership
	IsConstant bool
}

// Header is the common record every intention embeds: its originating
// AST node (nil for synthesized intentions), a weak parent link used
// only for context (never for ownership — the graph owns its intentions
// through slices, top-down), the resolved access level and any known
// attributes carried through from the source.
type Header struct {
	Kind            Kind
	Source          ast.Node
	Parent          Intention
	AccessLevel     AccessLevel
	KnownAttributes map[string]bool
}

func (h *Header) intentionHeader() *Header { return h }

// Intention is any node of the graph. The header accessor is what lets
// package swift's decorators inspect Kind/AccessLevel/KnownAttributes
// without a type switch on every concrete type.
type Intention interface {
	intentionHeader() *Header
}

// HeaderOf returns i's Header regardless of concrete type.
func HeaderOf(i Intention) *Header { return i.intentionHeader() }

// File is the root of one output Swift file: everything that will be
// written before the "// End of file" trailer.
type File struct {
	Header
	Path        string
	Types       []*Type
	Protocols   []*Protocol
	Funcs       []*GlobalFn
	Vars        []*GlobalVar
	Typealiases []*Typealias
}

// Type is a class-shaped intention: the merged result of an @interface,
// its @implementation (if any) and any categories on the same name.
type Type struct {
	Header
	Name         string
	Superclass   string // "" means Swift's implicit NSObject default
	Conformances []string
	Properties   []*Property
	Methods      []*Method
	Inits        []*Init
}

// Property is one stored or synthesized member. Its Swift type text is
// computed at emission time from ObjCType and Nullability (a pure
// function of the two) rather than stored precomputed, so the
// type-mapping table has exactly one implementation.
type Property struct {
	Header
	Name              string
	ObjCType          ast.ObjcType
	Nullability       Nullability
	Storage           ValueStorage
	SetterAccessLevel AccessLevel
	IsReadonly        bool
	IsDynamic         bool // @dynamic: storage generation is suppressed
	GetterName        string
	SetterName        string
}

// Param is one method/initializer parameter. Keyword is the selector
// keyword that preceded it in Objective-C (e.g. "andThat" in
// "andThat:(NSInteger)y"), used to derive the Swift external label for
// every parameter after the first.
type Param struct {
	Keyword     string
	Name        string
	ObjCType    ast.ObjcType
	Nullability Nullability
}

// Method is a non-initializer member function.
type Method struct {
	Header
	Selector      []ast.SelectorPart
	Params        []Param
	IsClassMethod bool
	IsOverride    bool
	IsOptional    bool // protocol methods only, from @optional
	ReturnType    ast.ObjcType
	ReturnNull    Nullability
	HasBody       bool
}

// SelectorString renders the Objective-C selector the method was built from.
func (m *Method) SelectorString() string { return ast.SelectorString(m.Selector) }

// Init is an initializer: an instance method whose first selector keyword
// is exactly "init" or starts with "initWith" and whose return type is
// instancetype/id, mapped to Swift's `init(...)`
// rather than `func init...(...)`.
type Init struct {
	Header
	Selector      []ast.SelectorPart
	Params        []Param
	IsConvenience bool
	IsFailable    bool
	HasBody       bool
}

func (i *Init) SelectorString() string { return ast.SelectorString(i.Selector) }

// Protocol is a @protocol declaration, kept as its own graph root rather
// than merged into any Type.
type Protocol struct {
	Header
	Name       string
	Inherits   []string
	Properties []*Property
	Methods    []*Method
}

// GlobalFn, GlobalVar and Typealias complete File's member sum. The
// Objective-C grammar this pipeline parses has no production for bare C
// function/variable/typedef declarations — only class/category/protocol
// constructs — so the builder never populates these from source; they
// exist so a future front-end extension has somewhere to attach them.
type GlobalFn struct {
	Header
	Name        string
	ParamNames  []string
	ParamSwift  []string
	ReturnSwift string
}

type GlobalVar struct {
	Header
	Name        string
	ObjCType    ast.ObjcType
	Nullability Nullability
	Storage     ValueStorage
}

type Typealias struct {
	Header
	Name       string
	Underlying string
}
