package swift

import (
	"testing"

	"github.com/eaburns/objc2swift/internal/intent"
	"github.com/eaburns/objc2swift/internal/objc/ast"
)

func TestMapTypeTable(t *testing.T) {
	tests := []struct {
		name string
		typ  ast.ObjcType
		null intent.Nullability
		want string
	}{
		{"BOOL", ast.StructType{Name: "BOOL"}, intent.NullabilityNonnull, "Bool"},
		{"NSInteger", ast.StructType{Name: "NSInteger"}, intent.NullabilityNonnull, "Int"},
		{"NSUInteger", ast.StructType{Name: "NSUInteger"}, intent.NullabilityNonnull, "UInt"},
		{
			"NSString nonnull",
			ast.PointerType{Elem: ast.StructType{Name: "NSString"}},
			intent.NullabilityNonnull,
			"String",
		},
		{
			"NSString nullable",
			ast.PointerType{Elem: ast.StructType{Name: "NSString"}},
			intent.NullabilityNullable,
			"String?",
		},
		{
			"NSArray<T*> nonnull",
			ast.GenericType{Name: "NSArray", Args: []ast.ObjcType{ast.PointerType{Elem: ast.StructType{Name: "MyThing"}}}},
			intent.NullabilityNonnull,
			"[MyThing]",
		},
		{"id", ast.IDType{}, intent.NullabilityUnspecified, "AnyObject!"},
		{"id<P>", ast.IDType{Protocols: []string{"MyProtocol"}}, intent.NullabilityNonnull, "MyProtocol"},
		{"instancetype", ast.StructType{Name: "instancetype"}, intent.NullabilityNonnull, "Self"},
		{"void", ast.StructType{Name: "void"}, intent.NullabilityUnspecified, "Void!"},
		{"unspecified is IUO", ast.StructType{Name: "NSInteger"}, intent.NullabilityUnspecified, "Int!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapType(tt.typ, tt.null); got != tt.want {
				t.Errorf("MapType(%v, %v) = %q, want %q", tt.typ, tt.null, got, tt.want)
			}
		})
	}
}

func TestMapTypeNSDictionaryAndSet(t *testing.T) {
	dict := ast.GenericType{Name: "NSDictionary", Args: []ast.ObjcType{
		ast.PointerType{Elem: ast.StructType{Name: "NSString"}},
		ast.PointerType{Elem: ast.StructType{Name: "NSNumber"}},
	}}
	if got, want := MapType(dict, intent.NullabilityNonnull), "[String: NSNumber]"; got != want {
		t.Errorf("MapType(NSDictionary) = %q, want %q", got, want)
	}
	set := ast.GenericType{Name: "NSSet", Args: []ast.ObjcType{ast.PointerType{Elem: ast.StructType{Name: "NSString"}}}}
	if got, want := MapType(set, intent.NullabilityNonnull), "Set<String>"; got != want {
		t.Errorf("MapType(NSSet) = %q, want %q", got, want)
	}
}

func TestMapTypeUnknownGenericPassesThroughName(t *testing.T) {
	g := ast.GenericType{Name: "MyBox", Args: []ast.ObjcType{ast.StructType{Name: "MyThing"}}}
	if got, want := MapType(g, intent.NullabilityNonnull), "MyBox<MyThing>"; got != want {
		t.Errorf("MapType(MyBox<MyThing>) = %q, want %q", got, want)
	}
}
