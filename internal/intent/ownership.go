package intent

import "github.com/eaburns/objc2swift/internal/objc/ast"

// InferOwnership implements the property attribute to storage mapping:
// weak → weak; unsafe_unretained/assign on an object type → unownedUnsafe;
// absence of an ownership attribute on an object type → strong. Value
// types (BOOL, NSInteger, and friends) carry no meaningful ownership;
// Strong is returned for them too since the emitter's ownership decorator
// emits nothing for Strong, so the choice is inert for a value-typed
// property.
func InferOwnership(t ast.ObjcType, attrs []ast.PropertyAttr) Ownership {
	if hasAttr(attrs, "weak") {
		return Weak
	}
	unsafe := hasAttr(attrs, "unsafe_unretained") || hasAttr(attrs, "assign")
	if unsafe && IsObjectType(t) {
		return UnownedUnsafe
	}
	return Strong
}

func hasAttr(attrs []ast.PropertyAttr, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// IsObjectType reports whether t denotes a reference type in
// Objective-C's model: a pointer, `id`, or a generic collection type.
// A bare struct name (NSInteger, BOOL, a plain C struct) is a value
// type. Specifiers are transparent to this question.
func IsObjectType(t ast.ObjcType) bool {
	switch v := t.(type) {
	case ast.SpecifiedType:
		return IsObjectType(v.Elem)
	case ast.PointerType:
		return true
	case ast.IDType:
		return true
	case ast.GenericType:
		return true
	default:
		return false
	}
}

// IsReadonly reports whether attrs contains the `readonly` keyword.
func IsReadonly(attrs []ast.PropertyAttr) bool { return hasAttr(attrs, "readonly") }
