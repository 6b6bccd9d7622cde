// Package swift renders the Intention graph as Swift source text: a
// type-mapping table, a modifier decorator chain that assembles each
// member's leading keyword sequence in a fixed order, and an indenting
// emitter that writes the text of one intent.File at a time.
package swift

import (
	"strings"

	"github.com/eaburns/objc2swift/internal/intent"
	"github.com/eaburns/objc2swift/internal/objc/ast"
)

// builtinTypes maps common Foundation/C base type names to their Swift
// equivalents. Anything absent (a project-defined class or protocol
// name) passes through unchanged, since Objective-C class names are
// already valid Swift identifiers.
var builtinTypes = map[string]string{
	"NSString":            "String",
	"NSMutableString":     "String",
	"NSNumber":            "NSNumber",
	"NSInteger":           "Int",
	"NSUInteger":          "UInt",
	"CGFloat":             "CGFloat",
	"BOOL":                "Bool",
	"bool":                "Bool",
	"int":                 "Int",
	"unsigned int":        "UInt",
	"long":                "Int",
	"float":               "Float",
	"double":              "Double",
	"void":                "Void",
	"instancetype":        "Self",
	"NSObject":            "NSObject",
	"NSError":             "Error",
	"NSArray":             "Array",
	"NSMutableArray":      "Array",
	"NSDictionary":        "Dictionary",
	"NSMutableDictionary": "Dictionary",
	"NSSet":               "Set",
	"NSMutableSet":        "Set",
	"SEL":                 "Selector",
	"Class":               "AnyClass",
}

// MapType renders t's Swift spelling and appends the optional/IUO suffix
// implied by n: "?" when the type is explicitly or contextually
// nullable, "!" when nullability could not be resolved at all
// (implicitly-unwrapped optional), nothing when explicitly nonnull.
func MapType(t ast.ObjcType, n intent.Nullability) string {
	base := mapCore(t)
	switch n {
	case intent.NullabilityNullable:
		return base + "?"
	case intent.NullabilityUnspecified:
		return base + "!"
	default:
		return base
	}
}

// mapCore is the pure recursive type-mapping function, ignoring
// nullability: it renders the base Swift spelling of an Objective-C type
// expression.
func mapCore(t ast.ObjcType) string {
	switch v := t.(type) {
	case nil:
		return "Any"
	case ast.SpecifiedType:
		return mapCore(v.Elem)
	case ast.PointerType:
		return mapCore(v.Elem)
	case ast.IDType:
		switch len(v.Protocols) {
		case 0:
			return "AnyObject"
		case 1:
			return v.Protocols[0]
		default:
			return strings.Join(v.Protocols, " & ")
		}
	case ast.GenericType:
		return mapGeneric(v)
	case ast.StructType:
		if sw, ok := builtinTypes[v.Name]; ok {
			return sw
		}
		return v.Name
	default:
		return "Any"
	}
}

func mapGeneric(g ast.GenericType) string {
	swiftName, known := builtinTypes[g.Name]
	switch {
	case known && swiftName == "Array" && len(g.Args) == 1:
		return "[" + mapCore(g.Args[0]) + "]"
	case known && swiftName == "Dictionary" && len(g.Args) == 2:
		return "[" + mapCore(g.Args[0]) + ": " + mapCore(g.Args[1]) + "]"
	case known && swiftName == "Set" && len(g.Args) == 1:
		return "Set<" + mapCore(g.Args[0]) + ">"
	}
	name := g.Name
	if known {
		name = swiftName
	}
	if len(g.Args) == 0 {
		return name
	}
	args := make([]string, len(g.Args))
	for i, a := range g.Args {
		args[i] = mapCore(a)
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}
