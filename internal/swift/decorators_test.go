package swift

import (
	"reflect"
	"testing"

	"github.com/eaburns/objc2swift/internal/intent"
)

func TestModifiersOrderIsFixed(t *testing.T) {
	m := &intent.Method{
		Header:        intent.Header{Kind: intent.KindMethod, AccessLevel: intent.AccessPublic},
		IsClassMethod: true,
		IsOverride:    true,
		IsOptional:    true,
	}
	got := Modifiers(m)
	want := []string{"public", "optional", "static", "override"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Modifiers = %v, want %v", got, want)
	}
}

func TestModifiersOmitsInternalAndStrong(t *testing.T) {
	p := &intent.Property{
		Header:            intent.Header{Kind: intent.KindProperty, AccessLevel: intent.AccessInternal},
		SetterAccessLevel: intent.AccessInternal,
		Storage:           intent.ValueStorage{Ownership: intent.Strong},
	}
	got := Modifiers(p)
	if len(got) != 0 {
		t.Errorf("Modifiers = %v, want empty", got)
	}
}

func TestModifiersConvenienceInit(t *testing.T) {
	i := &intent.Init{
		Header:        intent.Header{Kind: intent.KindInit, AccessLevel: intent.AccessInternal},
		IsConvenience: true,
	}
	got := Modifiers(i)
	want := []string{"convenience"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Modifiers = %v, want %v", got, want)
	}
}

func TestModifiersUnownedProperty(t *testing.T) {
	p := &intent.Property{
		Header:            intent.Header{Kind: intent.KindProperty, AccessLevel: intent.AccessInternal},
		SetterAccessLevel: intent.AccessInternal,
		Storage:           intent.ValueStorage{Ownership: intent.UnownedUnsafe},
	}
	got := Modifiers(p)
	want := []string{"unowned(unsafe)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Modifiers = %v, want %v", got, want)
	}
}
