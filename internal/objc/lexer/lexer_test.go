package lexer

import (
	"testing"

	"github.com/eaburns/objc2swift/internal/diag"
	"github.com/eaburns/objc2swift/internal/objc/token"
	"github.com/eaburns/objc2swift/internal/srcrange"
	"github.com/google/go-cmp/cmp"
)

func scanAll(t *testing.T, src string) ([]token.Token, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(nil)
	l := New("t.m", src, 0, sink)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, sink
}

func kinds(toks []token.Token) []token.Kind {
	var ks []token.Kind
	for _, t := range toks {
		ks = append(ks, t.Kind)
	}
	return ks
}

func TestLexerAtKeywords(t *testing.T) {
	toks, sink := scanAll(t, "@interface MyClass @end")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []token.Kind{token.AtInterface, token.Ident, token.AtEnd, token.EOF}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerComments(t *testing.T) {
	toks, sink := scanAll(t, "// comment\nid /* block */ x;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []token.Kind{token.Ident, token.Ident, token.Semicolon, token.EOF}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerNumbers(t *testing.T) {
	toks, sink := scanAll(t, "0x1F 010 3.14 2e10")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []token.Kind{token.IntLiteral, token.IntLiteral, token.FloatLiteral, token.FloatLiteral, token.EOF}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerString(t *testing.T) {
	toks, sink := scanAll(t, `"a\"b" "c"`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(toks) != 3 || toks[0].Kind != token.StringLiteral || toks[1].Kind != token.StringLiteral {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, sink := scanAll(t, `"abc`)
	if !sink.HasErrors() {
		t.Fatalf("expected an error for unterminated string")
	}
}

func TestLexerUnknownCharacter(t *testing.T) {
	_, sink := scanAll(t, "id x = ^;")
	if !sink.HasErrors() {
		t.Fatalf("expected an error for unrecognised character")
	}
	if len(sink.Errors()) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(sink.Errors()))
	}
}

func TestLexerNonnullRegions(t *testing.T) {
	src := "a\nNS_ASSUME_NONNULL_BEGIN\nb\nNS_ASSUME_NONNULL_END\nc"
	l := New("t.h", src, 0, diag.NewSink(nil))
	if len(l.NonnullRegions) != 1 {
		t.Fatalf("expected one nonnull region, got %d", len(l.NonnullRegions))
	}
	r := l.NonnullRegions[0]
	got := src[r.Start:r.End]
	if diff := cmp.Diff("\nb\n", got); diff != "" {
		t.Errorf("region text mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerRangesWithinFile(t *testing.T) {
	toks, _ := scanAll(t, "@interface X @end")
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		if !(srcrange.Range{Start: 0, End: len("@interface X @end")}).Contains(tok.Range) {
			t.Errorf("token %+v range escapes file bounds", tok)
		}
	}
}
