package ast

import (
	"fmt"

	"github.com/eaburns/objc2swift/internal/objc/token"
	"github.com/eaburns/objc2swift/internal/srcrange"
	"github.com/eaburns/peggy/peg"
)

// fatalParseError is the "impossible to recover" case: EOF inside a
// construct with no sentinel to resync to (an unterminated
// ivar-block type, an unterminated method body). It is never reported as
// a Diagnostic — it unwinds the parser via panic/recover back to Parse
// and comes out as a plain error, aborting the pipeline for
// that file. Rule names the nonterminal being parsed when EOF struck, and
// backs Tree's single-node failure the same way a generated peggy parser's
// deepest failure node would.
type fatalParseError struct {
	Path  string
	Rule  string
	Range srcrange.Range
	msg   string
}

func (e *fatalParseError) Error() string {
	return fmt.Sprintf("%s: fatal: %s", e.Path, e.msg)
}

// Tree reports the point of failure as a one-node peg.Fail, the same
// shape a generated parser's deepest recorded failure takes, so a driver
// that already knows how to pretty-print a peggy parse error (peg.
// PrettyWrite) renders a hand-written parser's fatal errors identically.
// There is no wider failure tree to report: unlike a memoizing PEG
// parser, this parser does not retain the alternatives it backtracked
// out of, only the single unrecoverable point it panicked at.
func (e *fatalParseError) Tree() *peg.Fail {
	return &peg.Fail{
		Name: e.Rule,
		Pos:  e.Range.Start,
		Want: e.msg,
	}
}

// followSet is the set of token kinds at which panic-mode recovery for a
// given nonterminal stops (the first such token is left un-consumed).
type followSet map[token.Kind]bool

func follows(kinds ...token.Kind) followSet {
	fs := make(followSet, len(kinds))
	for _, k := range kinds {
		fs[k] = true
	}
	return fs
}

// Named follow sets, one per nonterminal that can trigger recovery.
var (
	// followClassBody is the class/category/protocol body's own exit
	// test: @end, a sibling top-level construct, or EOF.
	followClassBody = follows(token.AtEnd, token.AtInterface, token.AtImplementation, token.EOF)
	// followClassBodyRecover is the resync target for panic-mode
	// recovery from an unexpected token inside a class, category or
	// protocol body: followClassBody plus every member-start token
	// (+/-, @property, @synthesize/@dynamic, @optional/@required), so
	// one bad token resyncs to the next member instead of skipping the
	// rest of the body outright.
	followClassBodyRecover = follows(token.AtEnd, token.AtInterface, token.AtImplementation, token.EOF,
		token.Plus, token.Minus, token.AtProperty, token.AtSynthesize, token.AtDynamic,
		token.AtOptional, token.AtRequired)
	followIvarBlock = follows(token.RBrace, token.AtEnd)
	followProperty  = follows(token.Semicolon)
	followMethodSig = follows(token.Semicolon, token.LBrace, token.AtEnd, token.EOF)
	followProtoList = follows(token.Gt, token.Semicolon, token.LBrace)
	followTopLevel  = follows(token.AtClass, token.AtInterface, token.AtImplementation, token.AtProtocol, token.EOF)
)
