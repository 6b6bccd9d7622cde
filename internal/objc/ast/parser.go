package ast

import (
	"fmt"

	"github.com/eaburns/objc2swift/internal/diag"
	"github.com/eaburns/objc2swift/internal/objc/lexer"
	"github.com/eaburns/objc2swift/internal/objc/token"
	"github.com/eaburns/objc2swift/internal/srcrange"
)

// specifierKeywords is the closed set of type specifier prefixes
// recognised ahead of a base type name.
var specifierKeywords = map[string]bool{
	"__weak":              true,
	"__strong":            true,
	"__unsafe_unretained": true,
	"const":               true,
	"volatile":            true,
	"_Nullable":           true,
	"_Nonnull":            true,
	"nullable":            true,
	"nonnull":             true,
}

// Parser is a hand-written recursive-descent parser for one Objective-C
// file. It never throws on a recoverable syntax error: it reports a
// Diagnostic through its Sink and resynchronises to the nearest
// follow-set token for the nonterminal it was parsing (panic mode with
// sentinel sets), returning a partially-populated node so the caller
// still gets whatever parsed successfully. It is pull-based, with one
// token of lookahead.
type Parser struct {
	path string
	lex  *lexer.Lexer
	sink *diag.Sink

	cur      token.Token
	peekTok  token.Token
	havePeek bool

	ctxDepth int
}

// NewParser returns a Parser over src, whose bytes begin at base within
// the shared srcrange.Files offset space. Diagnostics go to sink.
func NewParser(path, src string, base int, sink *diag.Sink) *Parser {
	p := &Parser{path: path, lex: lexer.New(path, src, base, sink), sink: sink}
	p.cur = p.lex.Next()
	return p
}

// NonnullRegions exposes the lexer's scanned NS_ASSUME_NONNULL region
// list, consulted by the intention builder when resolving nullability
// that no explicit specifier settles.
func (p *Parser) NonnullRegions() []srcrange.Range { return p.lex.NonnullRegions }

// Parse runs ParseMain, converting a fatal parse error into a returned
// error instead of a panic escaping to the caller.
func (p *Parser) Parse() (root *GlobalContextNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*fatalParseError)
			if !ok {
				panic(r)
			}
			err = fe
		}
	}()
	return p.ParseMain(), nil
}

func (p *Parser) peek() token.Token {
	if !p.havePeek {
		p.peekTok = p.lex.Next()
		p.havePeek = true
	}
	return p.peekTok
}

func (p *Parser) advance() {
	if p.havePeek {
		p.cur, p.havePeek = p.peekTok, false
		return
	}
	p.cur = p.lex.Next()
}

// pushTempContext / popTempContext implement the temporary-context
// pattern: each construct-level entry point pushes a fresh context on
// entry and pops it on every exit path via defer, mirroring a scoped
// acquisition whose release is guaranteed regardless of success or a
// recovered error.
func (p *Parser) pushTempContext() int {
	p.ctxDepth++
	return p.ctxDepth
}

func (p *Parser) popTempContext(depth int) {
	if p.ctxDepth != depth {
		panic("parser: temporary context unwound out of order")
	}
	p.ctxDepth--
}

func (p *Parser) fatalf(r srcrange.Range, rule, format string, args ...interface{}) {
	panic(&fatalParseError{Path: p.path, Rule: rule, Range: r, msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) recoverTo(fs followSet) {
	for !fs[p.cur.Kind] && p.cur.Kind != token.EOF {
		p.advance()
	}
}

func (p *Parser) consumeIdent() Ident {
	if p.cur.Kind != token.Ident {
		p.sink.Errorf(p.cur.Range, "expected identifier, got %s", p.cur.Kind)
		return NewIdent(p.cur.Range, "")
	}
	id := NewIdent(p.cur.Range, p.cur.Lexeme)
	p.advance()
	return id
}

// keywordHere builds a KeywordNode from the current token (whose kind the
// caller has already checked) and advances past it.
func (p *Parser) keywordHere(text string) *KeywordNode {
	kw := NewKeyword(p.cur.Range, text)
	p.advance()
	return kw
}

func (p *Parser) expectSemicolon(fs followSet) *KeywordNode {
	if p.cur.Kind == token.Semicolon {
		return p.keywordHere(";")
	}
	p.sink.Errorf(p.cur.Range, "expected ';', got %s", p.cur.Kind)
	p.recoverTo(fs)
	if p.cur.Kind == token.Semicolon {
		return p.keywordHere(";")
	}
	return nil
}

// ParseMain consumes the whole token stream and returns the file's root.
func (p *Parser) ParseMain() *GlobalContextNode {
	startRange := p.cur.Range
	var decls []Node
	for p.cur.Kind != token.EOF {
		switch p.cur.Kind {
		case token.AtClass:
			decls = append(decls, p.parseClassForwardDecl())
		case token.AtInterface:
			decls = append(decls, p.parseInterfaceOrCategory())
		case token.AtImplementation:
			decls = append(decls, p.parseImplementationOrCategory())
		case token.AtProtocol:
			if n := p.parseProtocolDecl(); n != nil {
				decls = append(decls, n)
			}
		case token.Ident:
			// NS_ASSUME_NONNULL_BEGIN/END are handled by the lexer's
			// up-front region scan; any other identifier is an error.
			if p.cur.Lexeme != "NS_ASSUME_NONNULL_BEGIN" && p.cur.Lexeme != "NS_ASSUME_NONNULL_END" {
				p.sink.Errorf(p.cur.Range, "unexpected top-level token %s", p.cur.Kind)
			}
			p.advance()
		default:
			p.sink.Errorf(p.cur.Range, "unexpected top-level token %s", p.cur.Kind)
			p.advance()
		}
	}
	return &GlobalContextNode{base: newBase(startRange.Join(p.cur.Range)), Decls: decls}
}

// --- @class ---

func (p *Parser) parseClassForwardDecl() *ClassForwardDecl {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)

	start := p.cur.Range
	kw := p.keywordHere("@class")
	children := []Node{kw}
	var names []Ident
	for {
		id := p.consumeIdent()
		names = append(names, id)
		children = append(children, id)
		if p.cur.Kind != token.Comma {
			break
		}
		children = append(children, p.keywordHere(","))
	}
	if semi := p.expectSemicolon(followTopLevel); semi != nil {
		children = append(children, semi)
	}
	return &ClassForwardDecl{base: newBase(start.Join(p.cur.Range)), Children: children, Names: names}
}

// --- @interface / @implementation dispatch (class vs category) ---

func (p *Parser) parseInterfaceOrCategory() Node {
	start := p.cur.Range
	atKw := p.keywordHere("@interface")
	name := p.consumeIdent()
	if p.cur.Kind == token.LParen {
		return p.parseClassCategoryNode(start, atKw, name, false)
	}
	return p.parseClassInterfaceNode(start, atKw, name)
}

func (p *Parser) parseImplementationOrCategory() Node {
	start := p.cur.Range
	atKw := p.keywordHere("@implementation")
	name := p.consumeIdent()
	if p.cur.Kind == token.LParen {
		return p.parseClassCategoryNode(start, atKw, name, true)
	}
	return p.parseClassImplementationNode(start, atKw, name)
}

// ParseClassInterfaceNode is a targeted entry point that parses just
// `@interface Name ... @end`, exposed for focused testing. It runs in
// its own temporary context, independent of ParseMain.
func (p *Parser) ParseClassInterfaceNode() *ClassInterface {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)
	start := p.cur.Range
	atKw := p.keywordHere("@interface")
	name := p.consumeIdent()
	return p.parseClassInterfaceNode(start, atKw, name)
}

func (p *Parser) parseClassInterfaceNode(start srcrange.Range, atKw *KeywordNode, name Ident) *ClassInterface {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)

	children := []Node{atKw, name}
	var superclass *Ident
	if p.cur.Kind == token.Colon {
		children = append(children, p.keywordHere(":"))
		s := p.consumeIdent()
		superclass = &s
		children = append(children, s)
	}
	var protoList *ProtocolReferenceList
	if p.cur.Kind == token.Lt {
		protoList = p.parseProtocolReferenceList()
		children = append(children, protoList)
	}
	var ivars *IVarsList
	if p.cur.Kind == token.LBrace {
		ivars = p.parseIVarsList()
		children = append(children, ivars)
	}

	var props []*PropertyDeclaration
	var methods []*MethodSignature
	for !followClassBody[p.cur.Kind] {
		switch {
		case p.cur.Kind == token.AtProperty:
			pd := p.parsePropertyDeclaration()
			props = append(props, pd)
			children = append(children, pd)
		case p.cur.Kind == token.Plus || p.cur.Kind == token.Minus:
			m := p.parseMethodSignature(false)
			methods = append(methods, m)
			children = append(children, m)
		default:
			p.sink.Errorf(p.cur.Range, "unexpected token in interface body: %s", p.cur.Kind)
			p.recoverTo(followClassBodyRecover)
			if !followClassBodyRecover[p.cur.Kind] {
				p.advance()
			}
		}
	}
	if p.cur.Kind == token.AtEnd {
		endKw := p.keywordHere("@end")
		children = append(children, endKw)
	} else {
		p.sink.Errorf(p.cur.Range, "missing @end for interface %s", name.Name)
	}
	return &ClassInterface{
		base: newBase(start.Join(p.cur.Range)), Children: children,
		Name: name, Superclass: superclass, Protocols: protoList,
		Ivars: ivars, Properties: props, Methods: methods,
	}
}

// ParseClassImplementation is a targeted entry point mirroring
// ParseClassInterfaceNode for `@implementation`.
func (p *Parser) ParseClassImplementation() *ClassImplementation {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)
	start := p.cur.Range
	atKw := p.keywordHere("@implementation")
	name := p.consumeIdent()
	return p.parseClassImplementationNode(start, atKw, name)
}

func (p *Parser) parseClassImplementationNode(start srcrange.Range, atKw *KeywordNode, name Ident) *ClassImplementation {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)

	children := []Node{atKw, name}
	var ivars *IVarsList
	if p.cur.Kind == token.LBrace {
		ivars = p.parseIVarsList()
		children = append(children, ivars)
	}
	var propImpls []*PropertyImplementation
	var methods []*MethodSignature
	for !followClassBody[p.cur.Kind] {
		switch {
		case p.cur.Kind == token.AtSynthesize || p.cur.Kind == token.AtDynamic:
			pi := p.parsePropertyImplementation()
			propImpls = append(propImpls, pi)
			children = append(children, pi)
		case p.cur.Kind == token.Plus || p.cur.Kind == token.Minus:
			m := p.parseMethodSignature(true)
			methods = append(methods, m)
			children = append(children, m)
		default:
			p.sink.Errorf(p.cur.Range, "unexpected token in implementation body: %s", p.cur.Kind)
			p.recoverTo(followClassBodyRecover)
			if !followClassBodyRecover[p.cur.Kind] {
				p.advance()
			}
		}
	}
	if p.cur.Kind == token.AtEnd {
		endKw := p.keywordHere("@end")
		children = append(children, endKw)
	} else {
		p.sink.Errorf(p.cur.Range, "missing @end for implementation %s", name.Name)
	}
	return &ClassImplementation{
		base: newBase(start.Join(p.cur.Range)), Children: children,
		Name: name, Ivars: ivars, PropertyImpls: propImpls, Methods: methods,
	}
}

// ParseClassCategoryNode is a targeted entry point for `@interface
// Name (Category) <Protos> ... @end` / the matching @implementation form.
func (p *Parser) ParseClassCategoryNode(isImpl bool) *ClassCategory {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)
	start := p.cur.Range
	var atKw *KeywordNode
	if isImpl {
		atKw = p.keywordHere("@implementation")
	} else {
		atKw = p.keywordHere("@interface")
	}
	name := p.consumeIdent()
	return p.parseClassCategoryNode(start, atKw, name, isImpl)
}

func (p *Parser) parseClassCategoryNode(start srcrange.Range, atKw *KeywordNode, name Ident, isImpl bool) *ClassCategory {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)

	children := []Node{atKw, name}
	lparen := p.keywordHere("(")
	children = append(children, lparen)
	var catName *Ident
	if p.cur.Kind != token.RParen {
		c := p.consumeIdent()
		catName = &c
		children = append(children, c)
	}
	if p.cur.Kind == token.RParen {
		children = append(children, p.keywordHere(")"))
	} else {
		p.sink.Errorf(p.cur.Range, "expected ')' to close category name")
	}
	var protoList *ProtocolReferenceList
	if !isImpl && p.cur.Kind == token.Lt {
		protoList = p.parseProtocolReferenceList()
		children = append(children, protoList)
	}
	var props []*PropertyDeclaration
	var methods []*MethodSignature
	for !followClassBody[p.cur.Kind] {
		switch {
		case !isImpl && p.cur.Kind == token.AtProperty:
			pd := p.parsePropertyDeclaration()
			props = append(props, pd)
			children = append(children, pd)
		case p.cur.Kind == token.Plus || p.cur.Kind == token.Minus:
			m := p.parseMethodSignature(isImpl)
			methods = append(methods, m)
			children = append(children, m)
		default:
			p.sink.Errorf(p.cur.Range, "unexpected token in category body: %s", p.cur.Kind)
			p.recoverTo(followClassBodyRecover)
			if !followClassBodyRecover[p.cur.Kind] {
				p.advance()
			}
		}
	}
	if p.cur.Kind == token.AtEnd {
		children = append(children, p.keywordHere("@end"))
	} else {
		p.sink.Errorf(p.cur.Range, "missing @end for category on %s", name.Name)
	}
	return &ClassCategory{
		base: newBase(start.Join(p.cur.Range)), Children: children, IsImpl: isImpl,
		Name: name, CategoryName: catName, Protocols: protoList, Properties: props, Methods: methods,
	}
}

// --- @protocol ---

func (p *Parser) parseProtocolDecl() *ProtocolDecl {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)

	start := p.cur.Range
	atKw := p.keywordHere("@protocol")
	name := p.consumeIdent()
	children := []Node{atKw, name}

	if p.cur.Kind == token.Semicolon {
		// Forward declaration: `@protocol Named;` — legal, produces no
		// protocol body, symmetric with @class.
		children = append(children, p.keywordHere(";"))
		return nil
	}

	var protoList *ProtocolReferenceList
	if p.cur.Kind == token.Lt {
		protoList = p.parseProtocolReferenceList()
		children = append(children, protoList)
	}

	var props []*PropertyDeclaration
	var methods []*MethodSignature
	var optionalFrom []bool
	optional := false
	for !followClassBody[p.cur.Kind] {
		switch {
		case p.cur.Kind == token.AtOptional:
			optional = true
			children = append(children, p.keywordHere("@optional"))
		case p.cur.Kind == token.AtRequired:
			optional = false
			children = append(children, p.keywordHere("@required"))
		case p.cur.Kind == token.AtProperty:
			pd := p.parsePropertyDeclaration()
			props = append(props, pd)
			children = append(children, pd)
		case p.cur.Kind == token.Plus || p.cur.Kind == token.Minus:
			m := p.parseMethodSignature(false)
			methods = append(methods, m)
			optionalFrom = append(optionalFrom, optional)
			children = append(children, m)
		default:
			p.sink.Errorf(p.cur.Range, "unexpected token in protocol body: %s", p.cur.Kind)
			p.recoverTo(followClassBodyRecover)
			if !followClassBodyRecover[p.cur.Kind] {
				p.advance()
			}
		}
	}
	if p.cur.Kind == token.AtEnd {
		children = append(children, p.keywordHere("@end"))
	} else {
		p.sink.Errorf(p.cur.Range, "missing @end for protocol %s", name.Name)
	}
	return &ProtocolDecl{
		base: newBase(start.Join(p.cur.Range)), Children: children,
		Name: name, Protocols: protoList, Properties: props, Methods: methods, OptionalFrom: optionalFrom,
	}
}

// --- protocol reference list ---

// ParseProtocolReferenceList is a targeted entry point for `<P1, P2>`,
// exercising its comma-recovery behaviour directly.
func (p *Parser) ParseProtocolReferenceList() *ProtocolReferenceList {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)
	return p.parseProtocolReferenceList()
}

func (p *Parser) parseProtocolReferenceList() *ProtocolReferenceList {
	start := p.cur.Range
	lAngle := p.keywordHere("<")

	var protocols []Ident
	for p.cur.Kind == token.Ident {
		protocols = append(protocols, p.consumeIdent())
		if p.cur.Kind != token.Comma {
			break
		}
		commaRange := p.cur.Range
		p.advance() // consume ','
		if p.cur.Kind != token.Ident {
			p.sink.Errorf(commaRange, "expected a protocol name after ','")
			break
		}
	}
	if p.cur.Kind != token.Gt {
		p.sink.Errorf(p.cur.Range, "expected '>' to close protocol reference list, got %s", p.cur.Kind)
		p.recoverTo(followProtoList)
	}
	var rAngle *KeywordNode
	if p.cur.Kind == token.Gt {
		rAngle = p.keywordHere(">")
	}
	return &ProtocolReferenceList{
		base: newBase(start.Join(p.cur.Range)), LAngle: lAngle, RAngle: rAngle, Protocols: protocols,
	}
}

// --- ivars ---

func (p *Parser) parseIVarsList() *IVarsList {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)

	start := p.cur.Range
	lBrace := p.keywordHere("{")
	children := []Node{lBrace}
	var ivars []*IVarDecl
	visibility := Protected
	for p.cur.Kind != token.RBrace && p.cur.Kind != token.AtEnd && p.cur.Kind != token.EOF {
		switch p.cur.Kind {
		case token.AtPrivate:
			visibility = Private
			children = append(children, p.keywordHere("@private"))
		case token.AtProtected:
			visibility = Protected
			children = append(children, p.keywordHere("@protected"))
		case token.AtPackage:
			visibility = Package
			children = append(children, p.keywordHere("@package"))
		case token.AtPublic:
			visibility = Public
			children = append(children, p.keywordHere("@public"))
		case token.Ident:
			iv := p.parseIVarDecl(visibility)
			ivars = append(ivars, iv)
			children = append(children, iv)
		default:
			p.sink.Errorf(p.cur.Range, "unexpected token in ivar block: %s", p.cur.Kind)
			p.recoverTo(followIvarBlock)
			if p.cur.Kind != token.RBrace && p.cur.Kind != token.AtEnd {
				p.advance()
			}
		}
	}
	var rBrace *KeywordNode
	if p.cur.Kind == token.RBrace {
		rBrace = p.keywordHere("}")
		children = append(children, rBrace)
	} else {
		p.sink.Errorf(p.cur.Range, "missing '}' to close ivar block")
	}
	return &IVarsList{base: newBase(start.Join(p.cur.Range)), Children: children, LBrace: lBrace, RBrace: rBrace, Ivars: ivars}
}

func (p *Parser) parseIVarDecl(vis Visibility) *IVarDecl {
	start := p.cur.Range
	typ := p.parseObjcType()
	name := p.consumeIdent()
	p.expectSemicolon(followIvarBlock)
	return &IVarDecl{base: newBase(start.Join(p.cur.Range)), Visibility: vis, Type: typ, Name: name}
}

// --- types ---

func (p *Parser) parseObjcType() ObjcType {
	var specifiers []string
	for p.cur.Kind == token.Ident && specifierKeywords[p.cur.Lexeme] {
		specifiers = append(specifiers, p.cur.Lexeme)
		p.advance()
	}
	if p.cur.Kind == token.EOF {
		p.fatalf(p.cur.Range, "Type", "unexpected end of file while parsing a type")
	}

	var base ObjcType
	switch {
	case p.cur.IsIdentText("id"):
		p.advance()
		var protos []string
		if p.cur.Kind == token.Lt {
			p.advance()
			for p.cur.Kind == token.Ident {
				protos = append(protos, p.cur.Lexeme)
				p.advance()
				if p.cur.Kind == token.Comma {
					p.advance()
					continue
				}
				break
			}
			if p.cur.Kind == token.Gt {
				p.advance()
			} else {
				p.sink.Errorf(p.cur.Range, "expected '>' to close id<...> protocol list")
			}
		}
		base = IDType{Protocols: protos}
	case p.cur.Kind == token.Ident:
		name := p.cur.Lexeme
		p.advance()
		if p.cur.Kind == token.Lt {
			p.advance()
			var args []ObjcType
			for p.cur.Kind != token.Gt && p.cur.Kind != token.EOF {
				args = append(args, p.parseObjcType())
				if p.cur.Kind == token.Comma {
					p.advance()
					continue
				}
				break
			}
			if p.cur.Kind == token.Gt {
				p.advance()
			} else {
				p.sink.Errorf(p.cur.Range, "expected '>' to close generic argument list")
			}
			base = GenericType{Name: name, Args: args}
		} else {
			base = StructType{Name: name}
		}
	default:
		p.sink.Errorf(p.cur.Range, "expected a type, got %s", p.cur.Kind)
		base = StructType{Name: ""}
		return base
	}

	for p.cur.Kind == token.Star {
		p.advance()
		base = PointerType{Elem: base}
	}
	// Trailing specifiers (e.g. `NSString * _Nullable`) apply the same
	// way leading ones do.
	for p.cur.Kind == token.Ident && specifierKeywords[p.cur.Lexeme] {
		specifiers = append(specifiers, p.cur.Lexeme)
		p.advance()
	}
	if len(specifiers) > 0 {
		base = SpecifiedType{Specifiers: specifiers, Elem: base}
	}
	return base
}

// --- properties ---

func (p *Parser) parsePropertyDeclaration() *PropertyDeclaration {
	start := p.cur.Range
	atProp := p.keywordHere("@property")
	var attrs []PropertyAttr
	if p.cur.Kind == token.LParen {
		p.advance()
		for p.cur.Kind != token.RParen && p.cur.Kind != token.EOF {
			name := p.consumeIdent()
			attr := PropertyAttr{Name: name.Name}
			if p.cur.Kind == token.Equal {
				p.advance()
				val := p.consumeIdent()
				attr.Value = val.Name
			}
			attrs = append(attrs, attr)
			if p.cur.Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
		if p.cur.Kind == token.RParen {
			p.advance()
		} else {
			p.sink.Errorf(p.cur.Range, "expected ')' to close @property attribute list")
		}
	}
	typ := p.parseObjcType()
	name := p.consumeIdent()
	p.expectSemicolon(followProperty)
	return &PropertyDeclaration{
		base: newBase(start.Join(p.cur.Range)), AtProperty: atProp, Attrs: attrs, Type: typ, Name: name,
	}
}

func (p *Parser) parsePropertyImplementation() *PropertyImplementation {
	start := p.cur.Range
	kind := Synthesize
	var atKw *KeywordNode
	if p.cur.Kind == token.AtSynthesize {
		atKw = p.keywordHere("@synthesize")
	} else {
		kind = Dynamic
		atKw = p.keywordHere("@dynamic")
	}
	var items []PropertyImplItem
	for {
		name := p.consumeIdent()
		item := PropertyImplItem{Name: name.Name}
		if p.cur.Kind == token.Equal {
			p.advance()
			ivar := p.consumeIdent()
			item.Ivar = &ivar.Name
		}
		items = append(items, item)
		if p.cur.Kind != token.Comma {
			break
		}
		p.advance()
	}
	p.expectSemicolon(followProperty)
	return &PropertyImplementation{base: newBase(start.Join(p.cur.Range)), Kind: kind, AtKeyword: atKw, Items: items}
}

// --- methods ---

func (p *Parser) parseMethodSignature(inImplementation bool) *MethodSignature {
	depth := p.pushTempContext()
	defer p.popTempContext(depth)

	start := p.cur.Range
	isClassMethod := p.cur.Kind == token.Plus
	p.advance() // consume '+' or '-'

	var ret ObjcType = StructType{Name: "id"}
	if p.cur.Kind == token.LParen {
		p.advance()
		ret = p.parseObjcType()
		if p.cur.Kind == token.RParen {
			p.advance()
		} else {
			p.sink.Errorf(p.cur.Range, "expected ')' after method return type")
		}
	}

	var parts []SelectorPart
	if p.cur.Kind == token.Ident && p.peek().Kind != token.Colon {
		id := p.consumeIdent()
		parts = append(parts, SelectorPart{Keyword: id.Name})
	} else {
		for p.cur.Kind == token.Ident && p.peek().Kind == token.Colon {
			kw := p.consumeIdent()
			p.advance() // consume ':'
			var ptype ObjcType
			if p.cur.Kind == token.LParen {
				p.advance()
				ptype = p.parseObjcType()
				if p.cur.Kind == token.RParen {
					p.advance()
				} else {
					p.sink.Errorf(p.cur.Range, "expected ')' after parameter type")
				}
			}
			pname := p.consumeIdent()
			parts = append(parts, SelectorPart{Keyword: kw.Name, ParamType: ptype, ParamName: pname.Name})
		}
	}
	if p.cur.Kind == token.Comma {
		// Variadic tail (`, ...`): not otherwise represented; consumed so
		// it doesn't derail recovery.
		p.advance()
		if p.cur.Kind == token.Ellipsis {
			p.advance()
		}
	}

	m := &MethodSignature{IsClassMethod: isClassMethod, ReturnType: ret, Selector: parts}
	switch {
	case p.cur.Kind == token.Semicolon:
		p.advance()
	case p.cur.Kind == token.LBrace && inImplementation:
		m.HasBody = true
		m.BodyRange = p.skipBalancedBraces()
	case p.cur.Kind == token.LBrace:
		p.sink.Errorf(p.cur.Range, "method body not allowed in an interface declaration")
		m.HasBody = true
		m.BodyRange = p.skipBalancedBraces()
	default:
		p.sink.Errorf(p.cur.Range, "expected ';' or '{' after method signature, got %s", p.cur.Kind)
		p.recoverTo(followMethodSig)
		if p.cur.Kind == token.Semicolon {
			p.advance()
		} else if p.cur.Kind == token.LBrace {
			m.HasBody = true
			m.BodyRange = p.skipBalancedBraces()
		}
	}
	m.base = newBase(start.Join(p.cur.Range))
	return m
}

// skipBalancedBraces assumes the current token is '{' and consumes up to
// and including its matching '}', returning the byte range of the whole
// block. The pipeline never interprets what is inside: only the fact
// that a body exists survives into the intention graph. An EOF before
// the closing brace is unrecoverable — there is no sentinel above "end
// of file" to resynchronise to — and is reported as a fatal driver error.
func (p *Parser) skipBalancedBraces() srcrange.Range {
	start := p.cur.Range.Start
	depth := 0
	for {
		switch p.cur.Kind {
		case token.LBrace:
			depth++
			p.advance()
		case token.RBrace:
			depth--
			end := p.cur.Range.End
			p.advance()
			if depth == 0 {
				return srcrange.Range{Start: start, End: end}
			}
		case token.EOF:
			p.fatalf(srcrange.Range{Start: start, End: p.cur.Range.End}, "MethodBody", "unexpected end of file inside method body")
		default:
			p.advance()
		}
	}
}
