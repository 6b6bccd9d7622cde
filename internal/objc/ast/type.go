package ast

// ObjcType is the small sum of Objective-C type expressions this
// pipeline needs to represent: struct(name), id(protocols),
// pointer(ObjcType), generic(name, [ObjcType]), specified(specifiers,
// ObjcType). It has no method set beyond the marker below — callers
// switch on the concrete type, the same way the emitter's type mapper
// must.
type ObjcType interface {
	isObjcType()
}

// StructType is a bare named type: `NSObject`, `int`, `MyStruct`.
type StructType struct {
	Name string
}

// IDType is `id` or `id<P1, P2>`.
type IDType struct {
	Protocols []string
}

// PointerType is `T *`.
type PointerType struct {
	Elem ObjcType
}

// GenericType is `Name<Arg1, Arg2>` (e.g. `NSArray<NSString *>`).
type GenericType struct {
	Name string
	Args []ObjcType
}

// SpecifiedType is a type carrying one or more specifier keywords, written
// before the base type or after its `*`s: __weak, __strong,
// __unsafe_unretained, const, volatile, and the nullability specifiers
// _Nullable/_Nonnull/nullable/nonnull, attached here rather than modelled
// separately since the parser recognises them in the same positions.
type SpecifiedType struct {
	Specifiers []string
	Elem       ObjcType
}

func (StructType) isObjcType()    {}
func (IDType) isObjcType()        {}
func (PointerType) isObjcType()   {}
func (GenericType) isObjcType()   {}
func (SpecifiedType) isObjcType() {}

// HasSpecifier reports whether t carries the named specifier anywhere in
// a chain of SpecifiedType wrappers.
func HasSpecifier(t ObjcType, name string) bool {
	s, ok := t.(SpecifiedType)
	if !ok {
		return false
	}
	for _, spec := range s.Specifiers {
		if spec == name {
			return true
		}
	}
	return HasSpecifier(s.Elem, name)
}

// Unwrap strips SpecifiedType and PointerType wrappers to reach the
// underlying named/id/generic type, used when a decision (e.g. initializer
// recognition by return type) only cares about the base type's shape.
func Unwrap(t ObjcType) ObjcType {
	for {
		switch v := t.(type) {
		case SpecifiedType:
			t = v.Elem
		case PointerType:
			t = v.Elem
		default:
			return t
		}
	}
}
